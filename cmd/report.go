package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mpandit/prepterm/internal/store"
)

var reportCmd = &cobra.Command{
	Use:   "report [session-id]",
	Short: "Print a saved interview report (latest by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, closeStore, err := openTranscripts(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		var row store.ReportRow
		if len(args) == 1 {
			row, err = repo.SessionReport(cmd.Context(), args[0])
		} else {
			row, err = repo.LatestReport(cmd.Context())
		}
		if errors.Is(err, store.ErrNotFound) {
			fmt.Println("No report found. Finish an interview first.")
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Print(row.Body)
		return nil
	},
}
