package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/tunetype/internal/player"
	"github.com/desertthunder/tunetype/internal/repositories"
	"github.com/desertthunder/tunetype/internal/shared"
	"github.com/desertthunder/tunetype/internal/tasks"
	"github.com/desertthunder/tunetype/internal/ui"
)

// TUI launches the interactive picker.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	catalog, err := r.requireCatalog()
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Logging.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, shared.ParseLogLevel(r.config.Logging.Level))
	r.SetLogger(fileLogger)

	db, err := r.database()
	if err != nil {
		return err
	}
	session, err := r.newSession(db)
	if err != nil {
		return err
	}

	payloads := repositories.NewPayloadRepository(db)
	ctrl := player.NewController(
		r.audioFactory(shared.WithLogger(fileLogger, "component", "audio")),
		r.config.DefaultPreviewDuration(),
		r.config.UI.AlbumArtOffset,
	)
	defer ctrl.Stop()

	opts := ui.Options{
		Catalog:       catalog,
		Resolver:      tasks.NewPreviewResolver(r.lookup, shared.WithLogger(fileLogger, "component", "preview")),
		Submitter:     tasks.NewSubmitter(r.classifier, payloads, session.ID(), shared.WithLogger(fileLogger, "component", "submit")),
		Results:       payloads,
		Player:        ctrl,
		Probe:         player.NewProbe(r.httpClient, r.config.Preview.ProbeMaxBytes),
		FrameInterval: r.config.FrameInterval(),
		NewSession: func() (string, error) {
			s, err := r.newSession(db)
			if err != nil {
				return "", err
			}
			return s.ID(), nil
		},
		Logger: shared.WithLogger(fileLogger, "component", "ui"),
	}

	if r.config.UI.OpenBrowser {
		addr := r.config.ServerAddr()
		opts.OpenResult = func(location string) error {
			target, err := shared.ServerResultURL(addr, location, opts.Submitter.SessionID())
			if err != nil {
				return err
			}
			return shared.OpenBrowser(target)
		}
	}

	model := ui.NewModel(ctx, opts)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
