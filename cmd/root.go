package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mpandit/prepterm/internal/config"
	"github.com/mpandit/prepterm/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "prepterm",
	Short: "Terminal mock interview coach",
	Long:  "PrepTerm — practice technical and behavioral interviews in your terminal, with STAR-based feedback and adaptive difficulty.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	// Optional .env for PREPTERM_DB and friends; absence is fine.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides PREPTERM_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to prepterm.yaml (default: ./prepterm.yaml, then XDG config dir)")
	rootCmd.PersistentFlags().String("bank", "", "Path to a custom question bank (JSON)")

	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves the config file from the --config flag or the
// default search path.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(path)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then the config file, then PREPTERM_DB, then the default
// XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
