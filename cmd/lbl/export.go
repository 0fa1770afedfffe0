package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/nikbrunner/lbl/internal/exporter"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: "Write an HTML gallery of the classified images",
		Long: `Render every category with its images into a single HTML page.
The default path is <output>/index.html, which keeps image links relative.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := requireSession()
			if err != nil {
				return err
			}

			path := exporter.DefaultExportPath(s.OutputDir())
			if len(args) == 1 {
				path = args[0]
			}

			report := exporter.Report{
				Title:       filepath.Base(s.OutputDir()),
				Categories:  s.CategoryNames(),
				Labels:      s.Labels(),
				Total:       s.Len(),
				GeneratedAt: time.Now(),
			}
			if err := exporter.WriteFile(s.Fs(), path, report); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(
				fmt.Sprintf("Exported %d of %d images to %s", s.Classified(), s.Len(), path)))
			return nil
		},
	}
}
