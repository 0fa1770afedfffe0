package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/nikbrunner/lbl/internal/audit"
	"github.com/spf13/cobra"
)

func verifyCmd() *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check the output directory against the source images",
		Long: `Report images whose copies are missing, duplicated across categories,
placed in an unexpected category, or differ in size from the source.
Exits with status 1 when any problem is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := requireSession()
			if err != nil {
				return err
			}

			errOut := cmd.ErrOrStderr()
			results, err := audit.Check(audit.Params{
				Fs:          s.Fs(),
				SourceDir:   s.SourceDir(),
				OutputDir:   s.OutputDir(),
				Categories:  s.CategoryNames(),
				Labels:      s.Labels(),
				Concurrency: workers,
				OnProgress: func(completed, total int) {
					fmt.Fprintf(errOut, "\rChecking %d/%d", completed, total)
				},
			})
			if len(results) > 0 {
				fmt.Fprintln(errOut)
			}
			if err != nil {
				return fmt.Errorf("failed to verify: %w", err)
			}

			out := cmd.OutOrStdout()
			problems := audit.Problems(results)
			if len(problems) == 0 {
				fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("All %d copies OK", len(results))))
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "STATUS\tIMAGE\tFOUND IN\tDETAIL")
			for _, r := range problems {
				found := strings.Join(r.Found, ",")
				if found == "" {
					found = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Status, r.Image, found, r.Detail)
			}
			w.Flush()

			counts := audit.Summarize(results)
			var parts []string
			for _, st := range []audit.Status{audit.Missing, audit.Stray, audit.Duplicate, audit.Stale} {
				if counts[st] > 0 {
					parts = append(parts, fmt.Sprintf("%d %s", counts[st], st))
				}
			}
			fmt.Fprintln(out, warnStyle.Render(strings.Join(parts, ", ")))

			return fmt.Errorf("%d problems found", len(problems))
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 8, "number of concurrent checks")
	return cmd
}
