package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mpandit/prepterm/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past interview sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		repo, closeStore, err := openTranscripts(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		sessions, err := repo.ListSessions(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions yet.")
			return nil
		}

		fmt.Printf("%-36s  %-16s  %-30s  %5s  %s\n", "SESSION", "STARTED", "ROLE", "TURNS", "AVG")
		for _, s := range sessions {
			role := s.Role
			if s.Company != "" {
				role += " @ " + s.Company
			}
			avg := "-"
			if s.Turns > 0 {
				avg = fmt.Sprintf("%.2f", s.AverageScore)
			}
			fmt.Printf("%-36s  %-16s  %-30s  %5d  %s\n",
				s.ID, s.StartedAt.Local().Format("2006-01-02 15:04"), role, s.Turns, avg)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of sessions to list (0 for all)")
}

// openTranscripts opens the store for the read-only commands.
func openTranscripts(cmd *cobra.Command) (*store.TranscriptRepo, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	repo, err := st.Transcripts()
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	return repo, func() { st.Close() }, nil
}
