// Package web renders the local result page.
//
// # Routes
//
//	GET /result?group=&explanation=&session=  → result page
//
// The group and explanation come straight from the query string, as they do in the TUI's
// result address. When a session is given, the stored analysis payload for that session is
// consumed and its final group scores are drawn as bars; a second visit finds nothing and shows
// the "analysis data not found" message instead.
//
// Templates are embedded from templates/ and parsed once at construction.
package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/tunetype/internal/models"
	"github.com/desertthunder/tunetype/internal/shared"
)

//go:embed templates/*.html
var templateFS embed.FS

// DefaultGroup is shown when the address carries no group.
const DefaultGroup = "UNKNOWN"

// PayloadTaker hands out a stored payload once.
type PayloadTaker interface {
	Take(sessionID, key string) ([]byte, error)
}

// ScoreBar is one rendered row of the score chart.
type ScoreBar struct {
	Group   string
	Score   float64
	Percent int
}

// ResultPage is the data for templates/result.html.
type ResultPage struct {
	Group       string
	Explanation string
	Image       string
	Scores      []ScoreBar
	HasSession  bool
	Missing     bool
}

// ResultHandler serves the result page.
type ResultHandler struct {
	store  PayloadTaker
	tmpl   *template.Template
	logger *log.Logger
}

// NewResultHandler parses the embedded templates. store may be nil, in which case scores are never shown.
func NewResultHandler(store PayloadTaker, logger *log.Logger) (*ResultHandler, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &ResultHandler{store: store, tmpl: tmpl, logger: logger}, nil
}

func (h *ResultHandler) Routes() []string {
	return []string{"/result"}
}

func (h *ResultHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := ResultPage{
		Group:       q.Get("group"),
		Explanation: q.Get("explanation"),
	}
	if page.Group == "" {
		page.Group = DefaultGroup
	}
	page.Image = models.GroupImage(page.Group)

	if session := q.Get("session"); session != "" {
		page.HasSession = true
		scores, err := h.loadScores(session)
		if err != nil {
			page.Missing = true
			if !errors.Is(err, shared.ErrPayloadNotFound) {
				h.logger.Error("failed to load analysis payload", "session", session, "error", err)
			}
		} else {
			page.Scores = scoreBars(scores)
		}
	}

	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, "result.html", page); err != nil {
		h.logger.Error("failed to render result page", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (h *ResultHandler) loadScores(session string) ([]models.GroupScore, error) {
	if h.store == nil {
		return nil, shared.ErrPayloadNotFound
	}
	data, err := h.store.Take(session, models.AnalysisKey)
	if err != nil {
		return nil, err
	}
	return models.AnalysisPayload(data).Scores()
}

// scoreBars scales every score against the highest one.
func scoreBars(scores []models.GroupScore) []ScoreBar {
	if len(scores) == 0 {
		return nil
	}
	top := scores[0].Score

	bars := make([]ScoreBar, 0, len(scores))
	for _, s := range scores {
		pct := 0
		if top > 0 {
			pct = int(s.Score / top * 100)
		}
		bars = append(bars, ScoreBar{Group: s.Group, Score: s.Score, Percent: max(pct, 0)})
	}
	return bars
}
