// debtbook-export dumps the stored collections as JSON to stdout, for
// backups and offline inspection. It opens the same store as the server and
// never writes to it.
package main

import (
	"context"
	"encoding/json"
	"os"

	"debtbook/internal/cli"
	"debtbook/internal/core"
	"debtbook/internal/services"
	"debtbook/internal/store"
)

type export struct {
	Accounts     []core.Account     `json:"accounts"`
	Transactions []core.Transaction `json:"transactions"`
	Theme        string             `json:"theme"`
}

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	result := cli.InitBackend(logger, cfg)
	defer func() {
		if result.Cleanup != nil {
			_ = result.Cleanup()
		}
	}()

	ctx := context.Background()
	adapter := store.NewAdapter(result.Store, cfg.StorePrefix)

	out := export{
		Accounts:     store.Load(ctx, adapter, store.KeyAccounts, []core.Account{}),
		Transactions: store.Load(ctx, adapter, store.KeyTransactions, []core.Transaction{}),
		Theme:        store.Load(ctx, adapter, store.KeyTheme, services.ThemeLight),
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logger.Error("Failed to encode export", "error", err)
		os.Exit(1)
	}
}
