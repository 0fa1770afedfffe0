package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/nikbrunner/lbl/internal/storage"
	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent classify and undo actions",
		Long:  `List the most recent entries of the action journal, newest first.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.Journal == "" {
				return errors.New("journal is disabled")
			}

			journal, err := storage.NewSQLiteJournal(cfg.Journal)
			if err != nil {
				return fmt.Errorf("failed to open journal: %w", err)
			}
			defer journal.Close()

			entries, err := journal.Recent(limit)
			if err != nil {
				return fmt.Errorf("failed to read journal: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, dimStyle.Render("No actions recorded yet."))
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintln(w, "TIME\tSESSION\tACTION\tIMAGE\tCATEGORY\tPREVIOUS")
			for _, e := range entries {
				previous := e.Previous
				if previous == "" {
					previous = "-"
				}
				session := e.SessionID
				if len(session) > 8 {
					session = session[:8]
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					e.At.Local().Format("2006-01-02 15:04:05"),
					session,
					e.Action,
					e.Image,
					e.Category,
					previous,
				)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show")
	return cmd
}
