package ui

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/desertthunder/tunetype/internal/models"
	"github.com/desertthunder/tunetype/internal/shared"
)

const noticeAnalysisMissing = "Analysis data not found."

// parseResultLocation reads group and explanation back out of a result address.
func parseResultLocation(location string) (group, explanation string) {
	u, err := url.Parse(location)
	if err != nil {
		return "", ""
	}
	q := u.Query()
	return q.Get("group"), q.Get("explanation")
}

func (m *Model) applyResult(msg resultLoadedMsg) {
	m.resultLoaded = true

	switch {
	case msg.external:
		m.setNotice(noticeResultOpened, false)
		return
	case errors.Is(msg.err, shared.ErrPayloadNotFound):
		m.setNotice(noticeAnalysisMissing, true)
		return
	case msg.err != nil:
		m.logger.Error("failed to load analysis payload", "error", msg.err)
		m.setNotice(noticeAnalysisMissing, true)
		return
	}

	scores, err := models.AnalysisPayload(msg.payload).Scores()
	if err != nil {
		if !errors.Is(err, shared.ErrPayloadNotFound) {
			m.logger.Warn("unreadable analysis payload", "error", err)
		}
		m.setNotice(noticeAnalysisMissing, true)
		return
	}
	m.scores = scores
}

func (m *Model) renderResult() string {
	if m.group == "" {
		return styles.err.Render("No result to show.")
	}

	var b strings.Builder
	b.WriteString(styles.muted.Render("Your music type is") + "\n")
	b.WriteString(styles.ok.Render(m.group) + "\n")
	b.WriteString(styles.muted.Render(models.GroupImage(m.group)) + "\n\n")
	b.WriteString(lipgloss.NewStyle().Width(max(m.width-4, 20)).Render(m.explanation))

	if len(m.scores) > 0 {
		b.WriteString("\n\n" + styles.heading.Render("Group scores"))
		b.WriteString("\n" + m.renderScores())
	}
	return b.String()
}

// renderScores draws one bar per group scaled to the highest score.
func (m *Model) renderScores() string {
	nameWidth := 0
	for _, s := range m.scores {
		nameWidth = max(nameWidth, lipgloss.Width(s.Group))
	}
	top := m.scores[0].Score
	barWidth := max(m.width-nameWidth-16, 10)

	lines := make([]string, 0, len(m.scores))
	for _, s := range m.scores {
		ratio := 0.0
		if top > 0 {
			ratio = s.Score / top
		}
		bar := m.bar
		bar.Width = barWidth
		name := s.Group + strings.Repeat(" ", nameWidth-lipgloss.Width(s.Group))
		lines = append(lines, fmt.Sprintf("%s  %s %6.2f", name, bar.ViewAs(ratio), s.Score))
	}
	return strings.Join(lines, "\n")
}
