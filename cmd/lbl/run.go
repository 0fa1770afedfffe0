package main

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/lbl/internal/config"
	"github.com/nikbrunner/lbl/internal/labeler"
	"github.com/nikbrunner/lbl/internal/storage"
	"github.com/nikbrunner/lbl/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runTUI runs the interactive labeler. Incomplete configuration opens the
// setup form instead of failing.
func runTUI(cmd *cobra.Command, _ []string) error {
	journal, err := storage.OpenJournal(cfg.Journal)
	if err != nil {
		logger.Warn("journal unavailable, continuing without it", zap.String("path", cfg.Journal), zap.Error(err))
		journal = storage.NopJournal{}
	}
	defer journal.Close()

	var session *labeler.Session
	if err := cfg.Validate(); err == nil {
		session, err = openSession(cfg, journal)
		if err != nil {
			return err
		}
	} else if !errors.Is(err, config.ErrIncomplete) {
		return err
	}

	open := func(source, output string, categories []string, start int) (*labeler.Session, error) {
		c := *cfg
		c.Categories = categories
		c.StartIndex = start
		var err error
		if c.Source, err = config.ExpandPath(source); err != nil {
			return nil, err
		}
		if c.Output, err = config.ExpandPath(output); err != nil {
			return nil, err
		}
		return openSession(&c, journal)
	}

	app := tui.NewApp(tui.AppParams{
		Session:     session,
		Open:        open,
		Source:      cfg.Source,
		Output:      cfg.Output,
		Categories:  cfg.Categories,
		StartIndex:  cfg.StartIndex,
		AutoAdvance: cfg.AutoAdvance,
		Logger:      logger,
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	finalModel, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running app: %w", err)
	}

	finalApp, ok := finalModel.(tui.App)
	if !ok || finalApp.Session() == nil {
		return nil
	}

	s := finalApp.Session()
	if err := s.Close(); err != nil {
		logger.Warn("saving position", zap.Error(err))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Classified %d of %d images in %s\n", s.Classified(), s.Len(), s.OutputDir())

	return nil
}
