package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/tunetype/internal/formatter"
	"github.com/desertthunder/tunetype/internal/models"
	"github.com/desertthunder/tunetype/internal/repositories"
	"github.com/desertthunder/tunetype/internal/shared"
	"github.com/desertthunder/tunetype/internal/tasks"
)

// Submit classifies five track IDs in a new session and prints the result address.
func (r *Runner) Submit(ctx context.Context, cmd *cli.Command) error {
	ids := cmd.Args().Slice()
	if len(ids) != tasks.MaxSelections {
		return fmt.Errorf("%w: submit needs exactly %d track ids, got %d", shared.ErrInvalidArgument, tasks.MaxSelections, len(ids))
	}

	format, err := r.outputFormat(cmd)
	if err != nil {
		return err
	}

	db, err := r.database()
	if err != nil {
		return err
	}
	session, err := r.newSession(db)
	if err != nil {
		return err
	}

	store := repositories.NewPayloadRepository(db)
	submitter := tasks.NewSubmitter(r.classifier, store, session.ID(), shared.WithLogger(r.logger, "component", "submit"))

	sub, err := submitter.Submit(ctx, ids)
	if err != nil {
		return err
	}

	location, err := shared.ServerResultURL(r.config.ServerAddr(), sub.ResultURL, session.ID())
	if err != nil {
		return err
	}

	scores, err := sub.Payload.Scores()
	if err != nil && !errors.Is(err, shared.ErrPayloadNotFound) {
		r.logger.Warn("unreadable analysis payload", "error", err)
	}

	data, err := formatter.ClassificationResult(formatter.Result{
		Group:       sub.Group,
		Explanation: sub.Explanation,
		URL:         location,
		Scores:      scores,
	}, format)
	if err != nil {
		return err
	}
	if err := r.writeOutput(cmd, data); err != nil {
		return err
	}

	if cmd.Bool("open") {
		if err := shared.OpenBrowser(location); err != nil {
			r.logger.Warn("failed to open browser", "url", location, "error", err)
		}
	}
	return nil
}

// Result consumes the stored analysis payload of a session and prints its scores.
func (r *Runner) Result(ctx context.Context, cmd *cli.Command) error {
	sessionID := cmd.StringArg("session")
	if sessionID == "" {
		return fmt.Errorf("%w: session id", shared.ErrMissingArgument)
	}

	format, err := r.outputFormat(cmd)
	if err != nil {
		return err
	}

	db, err := r.database()
	if err != nil {
		return err
	}

	payload, err := repositories.NewPayloadRepository(db).Take(sessionID, models.AnalysisKey)
	if err != nil {
		return err
	}

	scores, err := models.AnalysisPayload(payload).Scores()
	if err != nil {
		return err
	}

	group := cmd.String("group")
	if group == "" && len(scores) > 0 {
		group = scores[0].Group
	}

	data, err := formatter.ClassificationResult(formatter.Result{
		Group:       group,
		Explanation: cmd.String("explanation"),
		Scores:      scores,
	}, format)
	if err != nil {
		return err
	}
	return r.writeOutput(cmd, data)
}

// sessionSummary is one row of `sessions list`.
type sessionSummary struct {
	ID       string     `json:"id"`
	Sequence int        `json:"sequence"`
	Created  time.Time  `json:"created_at"`
	Closed   *time.Time `json:"closed_at,omitempty"`
	Pending  []string   `json:"pending"`
}

// SessionsList prints stored sessions with the keys of their unread payloads.
func (r *Runner) SessionsList(ctx context.Context, cmd *cli.Command) error {
	db, err := r.database()
	if err != nil {
		return err
	}

	criteria := map[string]any{}
	if cmd.Bool("open") {
		criteria["open"] = true
	}

	sessions, err := repositories.NewSessionRepository(db).List(criteria)
	if err != nil {
		return err
	}

	payloads := repositories.NewPayloadRepository(db)
	summaries := make([]sessionSummary, 0, len(sessions))
	for _, s := range sessions {
		pending, err := payloads.Pending(s.ID())
		if err != nil {
			return err
		}
		summaries = append(summaries, sessionSummary{
			ID:       s.ID(),
			Sequence: s.Sequence(),
			Created:  s.CreatedAt(),
			Closed:   s.ClosedAt(),
			Pending:  pending,
		})
	}

	if cmd.Bool("json") {
		return r.writeJSON(summaries, true)
	}

	if len(summaries) == 0 {
		return r.writePlain("No sessions.\n")
	}
	for _, s := range summaries {
		state := "open"
		if s.Closed != nil {
			state = "closed"
		}
		if err := r.writePlain("%d. %s [%s] %s pending=%d\n",
			s.Sequence, s.ID, state, s.Created.Format(time.RFC3339), len(s.Pending)); err != nil {
			return err
		}
	}
	return nil
}

// SessionsClose marks a session closed.
func (r *Runner) SessionsClose(ctx context.Context, cmd *cli.Command) error {
	sessionID := cmd.StringArg("session")
	if sessionID == "" {
		return fmt.Errorf("%w: session id", shared.ErrMissingArgument)
	}

	db, err := r.database()
	if err != nil {
		return err
	}
	if err := repositories.NewSessionRepository(db).Close(sessionID); err != nil {
		return err
	}
	return r.writePlain("Closed session %s\n", sessionID)
}
