package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mpandit/prepterm/internal/app"
	"github.com/mpandit/prepterm/internal/bank"
	"github.com/mpandit/prepterm/internal/store"
)

// runApp opens the store, loads the question bank, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	b, err := loadBank(cmd, cfg.BankPath)
	if err != nil {
		return err
	}

	opts := app.Options{
		Bank:   b,
		Config: cfg.Session,
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		// The interview itself does not need the database.
		fmt.Fprintln(os.Stderr, "warning: store unavailable, history disabled:", err)
	} else {
		defer st.Close()
		repo, err := st.Transcripts()
		if err != nil {
			return fmt.Errorf("open transcripts: %w", err)
		}
		opts.Transcripts = repo
	}

	return app.Run(opts)
}

// loadBank returns the custom bank from --bank or the config file, or
// the built-in one.
func loadBank(cmd *cobra.Command, configPath string) (*bank.Bank, error) {
	path, _ := cmd.Flags().GetString("bank")
	if path == "" {
		path = configPath
	}
	if path == "" {
		return bank.Default(), nil
	}
	b, err := bank.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load question bank: %w", err)
	}
	return b, nil
}
