package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/tunetype/internal/models"
	"github.com/desertthunder/tunetype/internal/services"
	"github.com/desertthunder/tunetype/internal/shared"
)

// PayloadStore receives the analysis payload for the result screen.
type PayloadStore interface {
	Put(sessionID, key string, payload []byte) error
}

// Submission is a successful classification and where to show it.
type Submission struct {
	Group       string
	Explanation string
	ResultURL   string
	Payload     models.AnalysisPayload
	Stored      bool
}

// Submitter sends a completed selection to the classifier.
type Submitter struct {
	classifier services.Classifier
	store      PayloadStore
	sessionID  string
	logger     *log.Logger

	// Progress, when set, receives non-blocking phase updates.
	Progress chan<- ProgressUpdate
}

// NewSubmitter creates a Submitter that stores payloads under sessionID. store may be nil.
func NewSubmitter(classifier services.Classifier, store PayloadStore, sessionID string, logger *log.Logger) *Submitter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Submitter{classifier: classifier, store: store, sessionID: sessionID, logger: logger}
}

// SessionID is the session the payload is stored under.
func (s *Submitter) SessionID() string { return s.sessionID }

// SetSession moves later submissions to a new session.
func (s *Submitter) SetSession(id string) { s.sessionID = id }

// Submit classifies exactly [MaxSelections] track IDs in selection order with a single request.
//
// Any classifier failure is returned wrapped in [shared.ErrClassificationFailed]; nothing is retried.
// A store failure is logged and the submission still succeeds with Stored false.
func (s *Submitter) Submit(ctx context.Context, ids []string) (*Submission, error) {
	if len(ids) != MaxSelections {
		return nil, fmt.Errorf("%w: expected %d track ids, got %d", shared.ErrInvalidInput, MaxSelections, len(ids))
	}
	if s.classifier == nil {
		return nil, fmt.Errorf("%w: classifier not initialized", shared.ErrServiceUnavailable)
	}

	sendProgress(s.Progress, classifyingUpdate(len(ids)))

	result, err := s.classifier.Classify(ctx, ids)
	if err != nil {
		s.logger.Error("classification failed", "error", err)
		if !errors.Is(err, shared.ErrClassificationFailed) {
			err = fmt.Errorf("%w: %w", shared.ErrClassificationFailed, err)
		}
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("%w: empty response", shared.ErrClassificationFailed)
	}

	sub := &Submission{
		Group:       result.Group,
		Explanation: result.Explanation,
		ResultURL:   ResultURL(result.Group, result.Explanation),
		Payload:     result.AnalysisData,
	}

	sendProgress(s.Progress, storingUpdate(models.AnalysisKey))
	switch err := s.storePayload(result.AnalysisData); {
	case errors.Is(err, errNoPayload):
		s.logger.Warn("classifier returned no analysis payload", "session", s.sessionID)
	case err != nil:
		s.logger.Warn("failed to store analysis payload", "session", s.sessionID, "error", err)
	default:
		sub.Stored = s.store != nil
	}

	sendProgress(s.Progress, completeUpdate(result.Group))
	return sub, nil
}

var errNoPayload = errors.New("no analysis payload")

// storePayload writes the payload once; an absent or null payload is never stored.
func (s *Submitter) storePayload(payload models.AnalysisPayload) error {
	if payload.Empty() {
		return errNoPayload
	}
	if s.store == nil {
		return nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode analysis payload: %w", err)
	}
	return s.store.Put(s.sessionID, models.AnalysisKey, data)
}

// ResultURL builds the relative result address with both values component-encoded.
func ResultURL(group, explanation string) string {
	return "/result?group=" + encodeComponent(group) + "&explanation=" + encodeComponent(explanation)
}

// encodeComponent escapes s for a query value, using %20 rather than + for spaces.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
