package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/tunetype/internal/player"
	"github.com/desertthunder/tunetype/internal/shared"
)

// Play plays one preview and redraws a progress bar every frame until it ends or is interrupted.
func (r *Runner) Play(ctx context.Context, cmd *cli.Command) error {
	url := cmd.StringArg("url")
	if url == "" {
		return fmt.Errorf("%w: url", shared.ErrMissingArgument)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	logger := shared.WithLogger(r.logger, "component", "player")
	ctrl := player.NewController(r.audioFactory(logger), r.config.DefaultPreviewDuration(), 0)
	ctrl.SetRowWidth(cmd.Int("width"))

	started, err := ctrl.Play(ctx, 0, url)
	if err != nil {
		return err
	}
	defer ctrl.Stop()

	durations := make(chan time.Duration, 1)
	if !cmd.Bool("no-probe") {
		probe := player.NewProbe(r.httpClient, r.config.Preview.ProbeMaxBytes)
		go func() {
			d, err := probe.Duration(ctx, url)
			if err != nil {
				logger.Debug("keeping default duration", "error", err)
				return
			}
			durations <- d
		}()
	}

	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = ctrl.TrackWidth()

	ticker := time.NewTicker(r.config.FrameInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return r.writePlain("\n")
		case d := <-durations:
			ctrl.Metadata(started.Handle, d)
		case <-started.Done:
			ctrl.Ended(started.Handle)
			return r.drawPlayback(bar, ctrl, true)
		case <-ticker.C:
			if !ctrl.Frame(started.Animation) {
				if err := r.drawPlayback(bar, ctrl, true); err != nil {
					return err
				}
				// the bar is done but the player may still be flushing its tail
				select {
				case <-started.Done:
					ctrl.Ended(started.Handle)
				case <-ctx.Done():
				}
				return nil
			}
			if err := r.drawPlayback(bar, ctrl, false); err != nil {
				return err
			}
		}
	}
}

func (r *Runner) drawPlayback(bar progress.Model, ctrl *player.Controller, final bool) error {
	total := ctrl.Duration()
	ratio := ctrl.Ratio(0)
	if final {
		ratio = 1
	}
	elapsed := time.Duration(ratio * float64(total))

	line := fmt.Sprintf("\r%s %s / %s", bar.ViewAs(ratio), shared.FormatDuration(elapsed), shared.FormatDuration(total))
	if final {
		line += "\n"
	}
	return r.writePlain("%s", line)
}
