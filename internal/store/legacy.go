package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
)

// Keys written by the note-taking era of the app. Read at most once during
// startup, never written by the current version.
const (
	legacyKeyTodos = "todos"
	legacyKeyNotes = "notes"
)

// ParseLegacyItems validates raw as the prior single-collection item format:
// a JSON array of objects each carrying a string "text" field. It returns
// the trimmed non-empty texts and true, or nil and false when the payload is
// not legacy-shaped. Structural validation is all-or-nothing; a single entry
// without a text field rejects the whole payload.
func ParseLegacyItems(raw string) ([]string, bool) {
	var items []struct {
		Text *string `json:"text"`
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, false
	}
	texts := make([]string, 0, len(items))
	for _, item := range items {
		if item.Text == nil {
			return nil, false
		}
		if t := strings.TrimSpace(*item.Text); t != "" {
			texts = append(texts, t)
		}
	}
	return texts, true
}

// ImportLegacyNotes reads both legacy keys and returns every note text
// found, in key order. Absent or malformed payloads contribute nothing;
// this is a best-effort migration with no rollback.
func (a *Adapter) ImportLegacyNotes(ctx context.Context) []string {
	var texts []string
	for _, name := range []string{legacyKeyTodos, legacyKeyNotes} {
		raw, err := a.kv.Get(ctx, a.key(name))
		if err != nil {
			continue
		}
		parsed, ok := ParseLegacyItems(raw)
		if !ok {
			slog.WarnContext(ctx, "Skipping malformed legacy payload", "key", name)
			continue
		}
		texts = append(texts, parsed...)
	}
	return texts
}
