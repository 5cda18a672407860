package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"debtbook/internal/core"
)

// requestBody reads a request body once and serves field lookups over either
// JSON or form-encoded payloads, so the same handlers work for programmatic
// clients and plain HTML forms.
type requestBody struct {
	jsonData map[string]any
	formData url.Values
}

func parseRequestBody(r *http.Request) (*requestBody, error) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	b := &requestBody{formData: url.Values{}}
	if len(raw) == 0 {
		return b, nil
	}

	contentType := r.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		if err := json.Unmarshal(raw, &b.jsonData); err != nil {
			return nil, fmt.Errorf("decode json body: %w", err)
		}
		return b, nil
	}

	values, err := url.ParseQuery(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse form body: %w", err)
	}
	b.formData = values
	return b, nil
}

// String returns the sanitized string value for key, or "" when absent.
func (b *requestBody) String(key string) string {
	if b.jsonData != nil {
		if v, ok := b.jsonData[key].(string); ok {
			return sanitizeInput(v)
		}
		return ""
	}
	return sanitizeInput(b.formData.Get(key))
}

// Amount returns the strictly positive numeric value for key. JSON numbers
// are taken as-is; everything else goes through core.ParseAmount.
func (b *requestBody) Amount(key string) (float64, error) {
	if b.jsonData != nil {
		switch v := b.jsonData[key].(type) {
		case float64:
			if v <= 0 {
				return 0, core.ErrInvalidAmount
			}
			return v, nil
		case string:
			return core.ParseAmount(v)
		default:
			return 0, core.ErrInvalidAmount
		}
	}
	return core.ParseAmount(b.formData.Get(key))
}

// StartingDebt returns the non-negative numeric value for key; absent means
// zero.
func (b *requestBody) StartingDebt(key string) (float64, error) {
	if b.jsonData != nil {
		switch v := b.jsonData[key].(type) {
		case nil:
			return 0, nil
		case float64:
			if v < 0 {
				return 0, core.ErrNegativeDebt
			}
			return v, nil
		case string:
			return core.ParseStartingDebt(v)
		default:
			return 0, core.ErrInvalidAmount
		}
	}
	return core.ParseStartingDebt(b.formData.Get(key))
}
