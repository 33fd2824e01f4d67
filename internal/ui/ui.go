package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/desertthunder/tunetype/internal/models"
	"github.com/desertthunder/tunetype/internal/player"
	"github.com/desertthunder/tunetype/internal/services"
	"github.com/desertthunder/tunetype/internal/shared"
	"github.com/desertthunder/tunetype/internal/tasks"
)

// ViewState represents the current screen in the TUI.
type ViewState int

const (
	SearchView ViewState = iota
	ResultView
)

// focusArea is the panel receiving key input in [SearchView].
type focusArea int

const (
	focusInput focusArea = iota
	focusTracks
	focusArtists
	focusDrilldown
	focusSelection
)

const (
	minQueryLength       = 2
	defaultFrameInterval = 33 * time.Millisecond
	panelHeight          = 12
)

const (
	noticeSelectionFull  = "5 tracks are already selected."
	noticeNoPreview      = "This track does not support preview."
	noticePreviewPending = "Still looking up a preview for this track."
	noticeSearchFailed   = "Search unavailable. Please try again."
	noticeClassifyFailed = "Classification failed. Please try again."
	noticeResultOpened   = "Result opened in your browser."
)

// ResultSource hands out the stored analysis payload once.
type ResultSource interface {
	Take(sessionID, key string) ([]byte, error)
}

// DurationProbe measures the real length of a preview.
type DurationProbe interface {
	Duration(ctx context.Context, url string) (time.Duration, error)
}

// Options wires the model's collaborators. Only Catalog, Submitter and Player are required for a useful session.
type Options struct {
	Catalog       services.Catalog
	Resolver      *tasks.PreviewResolver
	Submitter     *tasks.Submitter
	Results       ResultSource
	Player        *player.Controller
	Probe         DurationProbe
	FrameInterval time.Duration

	// OpenResult, when set, hands the result location to an external viewer,
	// which then owns the stored payload.
	OpenResult func(location string) error

	// NewSession, when set, starts a fresh session when the user starts over.
	NewSession func() (string, error)

	Logger *log.Logger
}

// Model is the root TUI model.
type Model struct {
	ctx           context.Context
	catalog       services.Catalog
	resolver      *tasks.PreviewResolver
	submitter     *tasks.Submitter
	results       ResultSource
	player        *player.Controller
	probe         DurationProbe
	frameInterval time.Duration
	openResult    func(string) error
	newSession    func() (string, error)
	logger        *log.Logger

	keys   keyMap
	help   help.Model
	view   ViewState
	focus  focusArea
	width  int
	height int

	input     textinput.Model
	tracks    list.Model
	artists   list.Model
	drilldown list.Model
	spinner   spinner.Model
	bar       progress.Model

	searchSeq          uint64
	drillSeq           uint64
	suggestionsVisible bool
	drilldownVisible   bool

	selection  *tasks.SelectionSet
	generation uint64
	cursor     int

	loading      bool
	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate

	notice    string
	noticeErr bool

	submission   *tasks.Submission
	group        string
	explanation  string
	scores       []models.GroupScore
	resultLoaded bool
}

// NewModel creates the TUI model with a focused search input.
func NewModel(ctx context.Context, opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	interval := opts.FrameInterval
	if interval <= 0 {
		interval = defaultFrameInterval
	}

	input := textinput.New()
	input.Placeholder = "Search for a song or an artist"
	input.Prompt = "> "
	input.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.heading

	m := &Model{
		ctx:           ctx,
		catalog:       opts.Catalog,
		resolver:      opts.Resolver,
		submitter:     opts.Submitter,
		results:       opts.Results,
		player:        opts.Player,
		probe:         opts.Probe,
		frameInterval: interval,
		openResult:    opts.OpenResult,
		newSession:    opts.NewSession,
		logger:        logger,
		keys:          newKeyMap(),
		help:          help.New(),
		input:         input,
		tracks:        newSuggestionList("Tracks"),
		artists:       newSuggestionList("Artists"),
		drilldown:     newSuggestionList("Artist tracks"),
		spinner:       s,
		bar:           progress.New(progress.WithSolidFill(styles.barColor), progress.WithoutPercentage()),
		selection:     tasks.NewSelectionSet(),
	}
	m.resize(80, 40)
	return m
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) {
			m.stopPlayback()
			return m, tea.Quit
		}
		if m.loading {
			return m, nil
		}
		if m.view == ResultView {
			return m.handleResultKeys(msg)
		}
		return m.handleSearchKeys(msg)
	case searchResultsMsg:
		m.applySearchResults(msg)
		return m, nil
	case artistTracksMsg:
		m.applyArtistTracks(msg)
		return m, nil
	case previewResolvedMsg:
		if msg.gen == m.generation {
			m.selection.SetPreview(msg.order, msg.url)
		}
		return m, nil
	case frameMsg:
		if m.player != nil && m.player.Frame(msg.id) {
			return m, m.frameTick(msg.id)
		}
		return m, nil
	case playbackEndedMsg:
		if m.player != nil {
			m.player.Ended(msg.handle)
		}
		return m, nil
	case metadataMsg:
		if m.player != nil {
			m.player.Metadata(msg.handle, msg.duration)
		}
		return m, nil
	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()
	case submittedMsg:
		return m, m.handleSubmitted(msg)
	case resultLoadedMsg:
		m.applyResult(msg)
		return m, nil
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) View() string {
	if m.loading {
		return m.renderLoading()
	}

	var body string
	switch m.view {
	case ResultView:
		body = m.renderResult()
	default:
		body = m.renderSearch()
	}

	parts := []string{styles.title.Render("tunetype"), body}
	if m.notice != "" {
		style := styles.warn
		if m.noticeErr {
			style = styles.err
		}
		parts = append(parts, style.Render(m.notice))
	}
	parts = append(parts, "", m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.next):
		m.cycleFocus()
		return m, m.syncInputFocus()
	case key.Matches(msg, m.keys.back):
		switch {
		case m.drilldownVisible:
			m.closeDrilldown()
		case m.focus == focusInput:
			m.input.SetValue("")
			m.resetSuggestions()
		}
		m.focus = focusInput
		return m, m.syncInputFocus()
	}

	switch m.focus {
	case focusTracks, focusArtists, focusDrilldown:
		return m.handleListKeys(msg)
	case focusSelection:
		return m.handleSelectionKeys(msg)
	default:
		return m.updateInput(msg)
	}
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter || msg.Type == tea.KeyDown {
		if m.drilldownVisible {
			m.focus = focusDrilldown
		} else if m.suggestionsVisible {
			m.focus = focusTracks
		}
		return m, m.syncInputFocus()
	}

	prev := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == prev {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.queryChanged())
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	l := m.activeList()
	if l == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.enter):
		item, ok := l.SelectedItem().(suggestionItem)
		if !ok {
			return m, nil
		}
		return m, m.choose(item.payload)
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	*l, cmd = l.Update(msg)
	return m, cmd
}

func (m *Model) handleSelectionKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.down):
		if m.cursor < m.selection.Len()-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.enter), key.Matches(msg, m.keys.play):
		return m, m.playRow(m.cursor)
	case key.Matches(msg, m.keys.stop):
		m.stopPlayback()
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.restart), key.Matches(msg, m.keys.back):
		return m, m.restart()
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// queryChanged reacts to an edit of the search input.
func (m *Model) queryChanged() tea.Cmd {
	query := m.input.Value()
	if utf8.RuneCountInString(strings.TrimSpace(query)) < minQueryLength {
		m.resetSuggestions()
		return nil
	}
	m.searchSeq++
	return m.search(m.searchSeq, query)
}

func (m *Model) search(seq uint64, query string) tea.Cmd {
	catalog, ctx := m.catalog, m.ctx
	return func() tea.Msg {
		if catalog == nil {
			return searchResultsMsg{seq: seq, query: query, err: shared.ErrServiceUnavailable}
		}
		results, err := catalog.Search(ctx, query)
		return searchResultsMsg{seq: seq, query: query, results: results, err: err}
	}
}

func (m *Model) fetchArtistTracks(seq uint64, artist models.Artist) tea.Cmd {
	catalog, ctx := m.catalog, m.ctx
	return func() tea.Msg {
		if catalog == nil {
			return artistTracksMsg{seq: seq, artist: artist, err: shared.ErrServiceUnavailable}
		}
		tracks, err := catalog.ArtistTracks(ctx, artist.ID)
		return artistTracksMsg{seq: seq, artist: artist, tracks: tracks, err: err}
	}
}

func (m *Model) applySearchResults(msg searchResultsMsg) {
	if msg.seq != m.searchSeq {
		m.logger.Debug("dropping stale search results", "query", msg.query)
		return
	}
	if msg.err != nil {
		m.logger.Warn("search failed", "query", msg.query, "error", msg.err)
		m.setNotice(noticeSearchFailed, true)
		return
	}

	m.tracks.SetItems(renderSuggestions(models.KindTrack, msg.results))
	m.tracks.ResetSelected()
	m.artists.SetItems(renderSuggestions(models.KindArtist, msg.results))
	m.artists.ResetSelected()
	m.closeDrilldown()
	m.suggestionsVisible = true
	m.clearNotice()
}

func (m *Model) applyArtistTracks(msg artistTracksMsg) {
	if msg.seq != m.drillSeq {
		m.logger.Debug("dropping stale artist tracks", "artist", msg.artist.Name)
		return
	}
	if msg.err != nil {
		m.logger.Warn("artist tracks failed", "artist", msg.artist.ID, "error", msg.err)
		m.setNotice(noticeSearchFailed, true)
		// choose hid the suggestions before the fetch; bring them back so the user can retry.
		m.suggestionsVisible = len(m.tracks.Items())+len(m.artists.Items()) > 0
		return
	}

	m.drilldown.Title = "Tracks by " + msg.artist.Name
	m.drilldown.SetItems(renderSuggestions(models.KindArtistTrack, &models.SearchResults{Tracks: msg.tracks}))
	m.drilldown.ResetSelected()
	m.drilldownVisible = true
	m.suggestionsVisible = false
	m.focus = focusDrilldown
	m.input.Blur()
	m.clearNotice()
}

// choose acts on an activated suggestion row.
func (m *Model) choose(s suggestion) tea.Cmd {
	switch s.kind {
	case models.KindArtist:
		m.suggestionsVisible = false
		m.focus = focusInput
		m.drillSeq++
		return tea.Batch(m.syncInputFocus(), m.fetchArtistTracks(m.drillSeq, s.artist))
	case models.KindArtistTrack:
		cmd, ok := m.addTrack(s.track)
		if !ok {
			return nil
		}
		m.closeDrilldown()
		m.input.SetValue("")
		m.focus = focusInput
		return tea.Batch(m.syncInputFocus(), cmd)
	default:
		cmd, ok := m.addTrack(s.track)
		if !ok {
			return nil
		}
		m.resetSuggestions()
		m.input.SetValue("")
		m.focus = focusInput
		return tea.Batch(m.syncInputFocus(), cmd)
	}
}

// addTrack appends a row, starts its preview lookup and submits once the selection seals.
func (m *Model) addTrack(track models.Track) (tea.Cmd, bool) {
	entry, sealed, err := m.selection.Add(track)
	if err != nil {
		m.setNotice(noticeSelectionFull, true)
		return nil, false
	}
	m.clearNotice()

	cmds := []tea.Cmd{m.resolvePreview(m.generation, entry.Order, track)}
	if sealed {
		cmds = append(cmds, m.submit())
	}
	return tea.Batch(cmds...), true
}

func (m *Model) resolvePreview(gen uint64, order int, track models.Track) tea.Cmd {
	resolver, ctx := m.resolver, m.ctx
	return func() tea.Msg {
		url := ""
		if resolver != nil {
			url = resolver.Resolve(ctx, track.Name, track.Artist)
		}
		return previewResolvedMsg{gen: gen, order: order, url: url}
	}
}

func (m *Model) submit() tea.Cmd {
	m.loading = true
	m.progress = tasks.ProgressUpdate{Phase: tasks.Classify, Message: "Analyzing your picks..."}
	m.progressChan = make(chan tasks.ProgressUpdate, 8)

	submitter, ctx, ch := m.submitter, m.ctx, m.progressChan
	ids := m.selection.TrackIDs()
	if submitter != nil {
		submitter.Progress = ch
	}

	run := func() tea.Msg {
		defer close(ch)
		if submitter == nil {
			return submittedMsg{err: fmt.Errorf("%w: no classifier configured", shared.ErrServiceUnavailable)}
		}
		sub, err := submitter.Submit(ctx, ids)
		return submittedMsg{submission: sub, err: err}
	}
	return tea.Batch(run, m.spinner.Tick, m.waitForProgress())
}

// waitForProgress listens for the next submission update.
func (m *Model) waitForProgress() tea.Cmd {
	ch := m.progressChan
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		update, ok := <-ch
		if !ok {
			return nil
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) handleSubmitted(msg submittedMsg) tea.Cmd {
	m.loading = false
	m.progressChan = nil

	if msg.err != nil || msg.submission == nil {
		m.logger.Error("submission failed", "error", msg.err)
		m.setNotice(noticeClassifyFailed, true)
		return nil
	}

	m.stopPlayback()
	m.submission = msg.submission
	m.group, m.explanation = parseResultLocation(msg.submission.ResultURL)
	m.scores = nil
	m.resultLoaded = false
	m.view = ResultView
	m.clearNotice()
	m.input.Blur()
	return m.showResult(msg.submission.ResultURL)
}

// showResult opens location externally when configured and otherwise consumes the payload here.
func (m *Model) showResult(location string) tea.Cmd {
	open, results, logger := m.openResult, m.results, m.logger
	sessionID := ""
	if m.submitter != nil {
		sessionID = m.submitter.SessionID()
	}

	return func() tea.Msg {
		if open != nil {
			err := open(location)
			if err == nil {
				return resultLoadedMsg{external: true}
			}
			logger.Warn("failed to open result page", "location", location, "error", err)
		}
		if results == nil {
			return resultLoadedMsg{err: shared.ErrPayloadNotFound}
		}
		payload, err := results.Take(sessionID, models.AnalysisKey)
		return resultLoadedMsg{payload: payload, err: err}
	}
}

// playRow starts the preview of a selection row.
func (m *Model) playRow(row int) tea.Cmd {
	entry, ok := m.selection.Entry(row)
	if !ok {
		return nil
	}
	if !entry.PreviewResolved {
		m.setNotice(noticePreviewPending, false)
		return nil
	}
	if m.player == nil {
		m.setNotice(shared.ErrPlayerNotFound.Error(), true)
		return nil
	}

	url := tasks.ChoosePreviewURL(entry.ResolvedPreviewURL, entry.CatalogPreviewURL)
	started, err := m.player.Play(m.ctx, row, url)
	if errors.Is(err, shared.ErrNoPreview) {
		m.setNotice(noticeNoPreview, true)
		return nil
	}
	if err != nil {
		m.logger.Error("failed to start preview", "track", entry.TrackID, "error", err)
		m.setNotice(fmt.Sprintf("Could not play %s.", entry.DisplayName), true)
		return nil
	}

	m.clearNotice()
	return tea.Batch(
		m.frameTick(started.Animation),
		waitForEnd(started.Handle, started.Done),
		m.probeDuration(started.Handle, started.URL),
	)
}

func (m *Model) frameTick(id player.AnimationID) tea.Cmd {
	return tea.Tick(m.frameInterval, func(time.Time) tea.Msg {
		return frameMsg{id: id}
	})
}

func waitForEnd(h player.Handle, done <-chan struct{}) tea.Cmd {
	if done == nil {
		return nil
	}
	return func() tea.Msg {
		<-done
		return playbackEndedMsg{handle: h}
	}
}

func (m *Model) probeDuration(h player.Handle, url string) tea.Cmd {
	if m.probe == nil {
		return nil
	}
	probe, ctx, logger := m.probe, m.ctx, m.logger
	return func() tea.Msg {
		d, err := probe.Duration(ctx, url)
		if err != nil {
			logger.Debug("keeping default preview duration", "url", url, "error", err)
			return nil
		}
		return metadataMsg{handle: h, duration: d}
	}
}

func (m *Model) stopPlayback() {
	if m.player != nil {
		m.player.Stop()
	}
}

// restart discards the result and begins a new selection.
func (m *Model) restart() tea.Cmd {
	m.stopPlayback()
	m.selection.Reset()
	m.generation++
	m.cursor = 0
	m.submission = nil
	m.group, m.explanation = "", ""
	m.scores = nil
	m.resultLoaded = false
	m.view = SearchView
	m.clearNotice()

	m.input.SetValue("")
	m.resetSuggestions()
	m.closeDrilldown()

	if m.newSession != nil && m.submitter != nil {
		id, err := m.newSession()
		if err != nil {
			m.logger.Error("failed to start session", "error", err)
			m.setNotice("Could not start a new session.", true)
		} else {
			m.submitter.SetSession(id)
		}
	}

	m.focus = focusInput
	return m.syncInputFocus()
}

// resetSuggestions hides and empties both suggestion panels and drops in-flight searches.
func (m *Model) resetSuggestions() {
	m.searchSeq++
	m.suggestionsVisible = false
	m.tracks.SetItems(nil)
	m.artists.SetItems(nil)
	if m.focus == focusTracks || m.focus == focusArtists {
		m.focus = focusInput
	}
}

func (m *Model) closeDrilldown() {
	m.drillSeq++
	m.drilldownVisible = false
	m.drilldown.SetItems(nil)
	if m.focus == focusDrilldown {
		m.focus = focusInput
	}
}

// cycleFocus moves to the next visible panel.
func (m *Model) cycleFocus() {
	order := []focusArea{focusInput}
	switch {
	case m.drilldownVisible:
		order = append(order, focusDrilldown)
	case m.suggestionsVisible:
		order = append(order, focusTracks, focusArtists)
	}
	if m.selection.Len() > 0 {
		order = append(order, focusSelection)
	}

	for i, f := range order {
		if f == m.focus {
			m.focus = order[(i+1)%len(order)]
			return
		}
	}
	m.focus = focusInput
}

func (m *Model) syncInputFocus() tea.Cmd {
	if m.focus == focusInput {
		return m.input.Focus()
	}
	m.input.Blur()
	return nil
}

func (m *Model) activeList() *list.Model {
	switch m.focus {
	case focusTracks:
		return &m.tracks
	case focusArtists:
		return &m.artists
	case focusDrilldown:
		return &m.drilldown
	default:
		return nil
	}
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.help.Width = w

	inner := w - 4
	half := inner/2 - 2
	m.tracks.SetSize(half, panelHeight)
	m.artists.SetSize(half, panelHeight)
	m.drilldown.SetSize(inner-2, panelHeight)
	m.input.Width = inner - 4

	if m.player != nil {
		m.player.SetRowWidth(inner - 2)
	}
}

func (m *Model) setNotice(text string, isErr bool) {
	m.notice, m.noticeErr = text, isErr
}

func (m *Model) clearNotice() {
	m.notice, m.noticeErr = "", false
}

func (m *Model) panel(content string, focused bool, width int) string {
	style := styles.panel
	if focused {
		style = styles.focused
	}
	return style.Width(width).Render(content)
}

func (m *Model) renderSearch() string {
	inner := m.width - 4
	parts := []string{m.panel(m.input.View(), m.focus == focusInput, inner)}

	switch {
	case m.drilldownVisible:
		parts = append(parts, m.panel(m.drilldown.View(), m.focus == focusDrilldown, inner))
	case m.suggestionsVisible:
		half := inner / 2
		parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top,
			m.panel(m.tracks.View(), m.focus == focusTracks, half),
			m.panel(m.artists.View(), m.focus == focusArtists, half),
		))
	}

	parts = append(parts, m.panel(m.renderSelection(), m.focus == focusSelection, inner))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) renderSelection() string {
	var b strings.Builder
	b.WriteString(styles.heading.Render(fmt.Sprintf("Your picks (%d/%d)", m.selection.Len(), tasks.MaxSelections)))

	entries := m.selection.Entries()
	if len(entries) == 0 {
		b.WriteString("\n" + styles.muted.Render("Pick five tracks you love."))
		return b.String()
	}

	for i, e := range entries {
		b.WriteString("\n" + m.renderSelectionRow(i, e))
	}
	return b.String()
}

// renderSelectionRow draws the title line and the progress track of one row.
func (m *Model) renderSelectionRow(row int, e models.SelectionEntry) string {
	cursor := "  "
	if m.focus == focusSelection && row == m.cursor {
		cursor = styles.cursor.Render("> ")
	}

	status := ""
	if !e.PreviewResolved {
		status = styles.muted.Render("  looking up preview")
	} else if m.player != nil {
		if r, ok := m.player.PlayingRow(); ok && r == row {
			status = styles.ok.Render("  playing")
		}
	}

	line := fmt.Sprintf("%s%d. %s%s", cursor, row+1, e.DisplayName, status)
	if m.player == nil || m.player.TrackWidth() == 0 {
		return line
	}

	offset := strings.Repeat(" ", max(m.width-6-m.player.TrackWidth(), 0))
	bar := m.bar
	bar.Width = m.player.TrackWidth()
	return line + "\n" + styles.art.Render(offset) + bar.ViewAs(m.player.Ratio(row))
}

func (m *Model) renderLoading() string {
	message := m.progress.Message
	if message == "" {
		message = m.progress.Phase.String()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.title.Render("tunetype"),
		fmt.Sprintf("%s %s", m.spinner.View(), message),
	)
}
