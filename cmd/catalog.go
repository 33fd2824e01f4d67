package main

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/tunetype/internal/formatter"
	"github.com/desertthunder/tunetype/internal/shared"
	"github.com/desertthunder/tunetype/internal/tasks"
)

const minQueryLength = 2

// Search prints the track and artist suggestions for a query.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}
	if utf8.RuneCountInString(trimmed) < minQueryLength {
		return fmt.Errorf("%w: %q", shared.ErrQueryTooShort, query)
	}

	format, err := r.outputFormat(cmd)
	if err != nil {
		return err
	}
	catalog, err := r.requireCatalog()
	if err != nil {
		return err
	}

	r.logger.Debug("searching", "query", query, "catalog", catalog.Name())
	results, err := catalog.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	data, err := formatter.SearchResults(results, format)
	if err != nil {
		return err
	}
	return r.writeOutput(cmd, data)
}

// ArtistTracks prints an artist's top tracks.
func (r *Runner) ArtistTracks(ctx context.Context, cmd *cli.Command) error {
	artistID := cmd.StringArg("id")
	if artistID == "" {
		return fmt.Errorf("%w: artist id", shared.ErrMissingArgument)
	}

	format, err := r.outputFormat(cmd)
	if err != nil {
		return err
	}
	catalog, err := r.requireCatalog()
	if err != nil {
		return err
	}

	tracks, err := catalog.ArtistTracks(ctx, artistID)
	if err != nil {
		return fmt.Errorf("artist tracks failed: %w", err)
	}

	if cmd.Bool("previews") {
		resolver := tasks.NewPreviewResolver(r.lookup, shared.WithLogger(r.logger, "component", "preview"))
		urls := resolver.ResolveAll(ctx, tracks, cmd.Int("workers"), nil)
		for i := range tracks {
			tracks[i].PreviewURL = urls[i]
		}
	}

	data, err := formatter.Tracks("Top tracks for "+artistID, tracks, format)
	if err != nil {
		return err
	}
	return r.writeOutput(cmd, data)
}

// Preview prints the looked-up preview URL of a track.
func (r *Runner) Preview(ctx context.Context, cmd *cli.Command) error {
	track := cmd.StringArg("track")
	artist := cmd.StringArg("artist")
	if track == "" {
		return fmt.Errorf("%w: track", shared.ErrMissingArgument)
	}

	format, err := r.outputFormat(cmd)
	if err != nil {
		return err
	}

	resolver := tasks.NewPreviewResolver(r.lookup, shared.WithLogger(r.logger, "component", "preview"))
	url := resolver.Resolve(ctx, track, artist)

	data, err := formatter.PreviewLookup(formatter.Preview{
		Track:     track,
		Artist:    artist,
		URL:       url,
		Available: url != "",
	}, format)
	if err != nil {
		return err
	}
	return r.writeOutput(cmd, data)
}
