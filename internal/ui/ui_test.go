package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/tunetype/internal/models"
	"github.com/desertthunder/tunetype/internal/player"
	"github.com/desertthunder/tunetype/internal/shared"
	"github.com/desertthunder/tunetype/internal/tasks"
	tu "github.com/desertthunder/tunetype/internal/testing"
)

type harness struct {
	model      *Model
	catalog    *tu.MockCatalog
	lookup     *tu.MockLookup
	classifier *tu.MockClassifier
	store      *tu.MockStore
	audio      []*tu.FakeAudio
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		catalog: &tu.MockCatalog{
			Results:       map[string]*models.SearchResults{},
			ArtistResults: map[string][]models.Track{},
		},
		lookup: &tu.MockLookup{URLs: map[string]string{}},
		classifier: &tu.MockClassifier{Result: &models.ClassificationResult{
			Group:        "칠 가이",
			Explanation:  "relaxed & warm",
			AnalysisData: models.AnalysisPayload(`{"final_group_scores":{"칠 가이":0.7,"클러버":0.2}}`),
		}},
		store: tu.NewMockStore(),
	}

	factory := func(url string) player.Audio {
		a := tu.NewFakeAudio(url)
		h.audio = append(h.audio, a)
		return a
	}

	h.model = NewModel(context.Background(), Options{
		Catalog:   h.catalog,
		Resolver:  tasks.NewPreviewResolver(h.lookup, nil),
		Submitter: tasks.NewSubmitter(h.classifier, h.store, "session-1", nil),
		Results:   h.store,
		Player:    player.NewController(factory, 30*time.Second, 6),
	})
	h.model.input.Cursor.SetMode(cursor.CursorStatic)
	return h
}

// collect executes cmd and any batches it expands to.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, collect(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

// run feeds the application messages produced by cmd back into the model until it settles.
func (h *harness) run(cmd tea.Cmd) {
	for _, msg := range collect(cmd) {
		switch msg.(type) {
		case searchResultsMsg, artistTracksMsg, previewResolvedMsg, submittedMsg, resultLoadedMsg, progressUpdateMsg:
			_, next := h.model.Update(msg)
			h.run(next)
		}
	}
}

func (h *harness) search(query string) {
	h.model.input.SetValue(query)
	h.run(h.model.queryChanged())
}

func track(i int) models.Track {
	return models.Track{
		ID:         fmt.Sprintf("t%d", i),
		Name:       fmt.Sprintf("Song %d", i),
		Artist:     "Band",
		PreviewURL: fmt.Sprintf("https://cdn.example.com/%d.mp3", i),
	}
}

func titles(items []list.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.(list.DefaultItem).Title())
	}
	return out
}

func TestRenderSuggestions(t *testing.T) {
	results := &models.SearchResults{
		Tracks:  []models.Track{track(1), track(2)},
		Artists: []models.Artist{{ID: "a1", Name: "Band"}},
	}

	tests := []struct {
		name    string
		kind    models.SuggestionKind
		results *models.SearchResults
		want    []string
	}{
		{"tracks", models.KindTrack, results, []string{"Song 1 - Band", "Song 2 - Band"}},
		{"artists", models.KindArtist, results, []string{"Band"}},
		{"no tracks", models.KindTrack, &models.SearchResults{}, []string{noTracksText}},
		{"no artists", models.KindArtist, &models.SearchResults{}, []string{noArtistsText}},
		{"no artist tracks", models.KindArtistTrack, &models.SearchResults{}, []string{noArtistTracksText}},
		{"nil results", models.KindTrack, nil, []string{noTracksText}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := titles(renderSuggestions(tt.kind, tt.results))
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}

	t.Run("placeholder is not selectable", func(t *testing.T) {
		items := renderSuggestions(models.KindArtist, &models.SearchResults{})
		if _, ok := items[0].(suggestionItem); ok {
			t.Error("expected placeholder row")
		}
	})
}

func TestSearch(t *testing.T) {
	t.Run("short query clears suggestions without a request", func(t *testing.T) {
		h := newHarness(t)
		h.catalog.Results["imagine"] = &models.SearchResults{Tracks: []models.Track{track(1)}}
		h.search("imagine")

		if !h.model.suggestionsVisible {
			t.Fatal("expected suggestions to be visible")
		}

		h.model.input.SetValue(" i ")
		if cmd := h.model.queryChanged(); cmd != nil {
			t.Error("expected no search for a short query")
		}
		if h.model.suggestionsVisible {
			t.Error("expected suggestions to be hidden")
		}
		if n := len(h.model.tracks.Items()); n != 0 {
			t.Errorf("expected empty track panel, got %d rows", n)
		}
		if len(h.catalog.Queries) != 1 {
			t.Errorf("expected 1 request, got %v", h.catalog.Queries)
		}
	})

	t.Run("raw query is sent", func(t *testing.T) {
		h := newHarness(t)
		h.search("  abc ")

		if len(h.catalog.Queries) != 1 || h.catalog.Queries[0] != "  abc " {
			t.Errorf("expected raw query, got %q", h.catalog.Queries)
		}
	})

	t.Run("typing triggers a search", func(t *testing.T) {
		h := newHarness(t)
		_, cmd := h.model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab")})
		h.run(cmd)

		if len(h.catalog.Queries) != 1 || h.catalog.Queries[0] != "ab" {
			t.Errorf("expected search for ab, got %q", h.catalog.Queries)
		}
		if got := titles(h.model.tracks.Items()); len(got) != 1 || got[0] != noTracksText {
			t.Errorf("expected placeholder, got %v", got)
		}
	})

	t.Run("stale response is dropped", func(t *testing.T) {
		h := newHarness(t)
		h.catalog.Results["im"] = &models.SearchResults{Tracks: []models.Track{track(1)}}
		h.catalog.Results["imagine"] = &models.SearchResults{Tracks: []models.Track{track(2)}}

		h.model.input.SetValue("im")
		first := h.model.queryChanged()
		h.model.input.SetValue("imagine")
		second := h.model.queryChanged()

		h.run(second)
		h.run(first)

		got := titles(h.model.tracks.Items())
		if len(got) != 1 || got[0] != "Song 2 - Band" {
			t.Errorf("expected only latest results, got %v", got)
		}
	})

	t.Run("response after reset is dropped", func(t *testing.T) {
		h := newHarness(t)
		h.catalog.Results["ab"] = &models.SearchResults{Tracks: []models.Track{track(1)}}

		h.model.input.SetValue("ab")
		pending := h.model.queryChanged()
		h.model.input.SetValue("a")
		h.model.queryChanged()
		h.run(pending)

		if h.model.suggestionsVisible {
			t.Error("expected suggestions to stay hidden")
		}
	})

	t.Run("failure shows a notice", func(t *testing.T) {
		h := newHarness(t)
		h.catalog.Err = fmt.Errorf("%w: boom", shared.ErrAPIRequest)
		h.search("abc")

		if h.model.notice != noticeSearchFailed {
			t.Errorf("expected search notice, got %q", h.model.notice)
		}
		if h.model.suggestionsVisible {
			t.Error("expected suggestions to stay hidden")
		}
	})
}

func TestSelectionFlow(t *testing.T) {
	t.Run("track suggestion is added and suggestions reset", func(t *testing.T) {
		h := newHarness(t)
		h.lookup.URLs["Song 1 Band"] = "https://itunes.example.com/1.m4a"
		h.catalog.Results["song"] = &models.SearchResults{Tracks: []models.Track{track(1)}}
		h.search("song")

		h.run(h.model.choose(suggestion{kind: models.KindTrack, track: track(1)}))

		if h.model.selection.Len() != 1 {
			t.Fatalf("expected 1 selection, got %d", h.model.selection.Len())
		}
		if h.model.suggestionsVisible || len(h.model.tracks.Items()) != 0 {
			t.Error("expected suggestions to be reset")
		}
		if h.model.input.Value() != "" {
			t.Errorf("expected cleared input, got %q", h.model.input.Value())
		}
		entry, _ := h.model.selection.Entry(0)
		if !entry.PreviewResolved || entry.ResolvedPreviewURL != "https://itunes.example.com/1.m4a" {
			t.Errorf("expected resolved preview, got %+v", entry)
		}
	})

	t.Run("artist drilldown", func(t *testing.T) {
		h := newHarness(t)
		artist := models.Artist{ID: "a1", Name: "Band"}
		h.catalog.Results["band"] = &models.SearchResults{Artists: []models.Artist{artist}}
		h.catalog.ArtistResults["a1"] = []models.Track{track(3), track(4)}
		h.search("band")

		h.run(h.model.choose(suggestion{kind: models.KindArtist, artist: artist}))

		if h.model.suggestionsVisible {
			t.Error("expected suggestions hidden")
		}
		if !h.model.drilldownVisible || h.model.focus != focusDrilldown {
			t.Fatal("expected focused drilldown")
		}
		if got := titles(h.model.drilldown.Items()); len(got) != 2 {
			t.Fatalf("expected 2 artist tracks, got %v", got)
		}

		h.run(h.model.choose(suggestion{kind: models.KindArtistTrack, track: track(4)}))

		if h.model.drilldownVisible || len(h.model.drilldown.Items()) != 0 {
			t.Error("expected drilldown closed and emptied")
		}
		if h.model.input.Value() != "" {
			t.Error("expected cleared input")
		}
		if ids := h.model.selection.TrackIDs(); len(ids) != 1 || ids[0] != "t4" {
			t.Errorf("expected t4 selected, got %v", ids)
		}
	})

	t.Run("artist tracks failure restores suggestions", func(t *testing.T) {
		h := newHarness(t)
		artist := models.Artist{ID: "a1", Name: "Band"}
		h.catalog.Results["band"] = &models.SearchResults{Artists: []models.Artist{artist}}
		h.search("band")
		h.catalog.Err = fmt.Errorf("%w: boom", shared.ErrAPIRequest)

		h.run(h.model.choose(suggestion{kind: models.KindArtist, artist: artist}))

		if h.model.drilldownVisible {
			t.Error("expected drilldown hidden")
		}
		if !h.model.suggestionsVisible {
			t.Error("expected suggestions shown again")
		}
		if h.model.notice != noticeSearchFailed {
			t.Errorf("expected failure notice, got %q", h.model.notice)
		}
		if got := titles(h.model.artists.Items()); len(got) != 1 {
			t.Errorf("expected artist suggestion kept, got %v", got)
		}
	})

	t.Run("artist without tracks shows placeholder", func(t *testing.T) {
		h := newHarness(t)
		h.run(h.model.choose(suggestion{kind: models.KindArtist, artist: models.Artist{ID: "none"}}))

		if got := titles(h.model.drilldown.Items()); len(got) != 1 || got[0] != noArtistTracksText {
			t.Errorf("expected placeholder, got %v", got)
		}
	})

	t.Run("fifth track submits once", func(t *testing.T) {
		h := newHarness(t)
		for i := 1; i <= tasks.MaxSelections; i++ {
			h.run(h.model.choose(suggestion{kind: models.KindTrack, track: track(i)}))
		}

		if n := h.classifier.CallCount(); n != 1 {
			t.Fatalf("expected 1 classification, got %d", n)
		}
		if got := strings.Join(h.classifier.Calls[0], ","); got != "t1,t2,t3,t4,t5" {
			t.Errorf("expected ids in order, got %s", got)
		}
		if h.model.view != ResultView {
			t.Fatalf("expected result view, got %v", h.model.view)
		}
		if h.model.loading {
			t.Error("expected loading to finish")
		}
		if h.model.group != "칠 가이" || h.model.explanation != "relaxed & warm" {
			t.Errorf("unexpected result %q %q", h.model.group, h.model.explanation)
		}
		if len(h.model.scores) != 2 || h.model.scores[0].Group != "칠 가이" {
			t.Errorf("expected scores, got %+v", h.model.scores)
		}
		if _, err := h.store.Take("session-1", models.AnalysisKey); !errors.Is(err, shared.ErrPayloadNotFound) {
			t.Error("expected payload to be consumed")
		}

		h.run(h.model.choose(suggestion{kind: models.KindTrack, track: track(6)}))
		if h.classifier.CallCount() != 1 {
			t.Error("expected no second submission")
		}
	})

	t.Run("sixth track shows capacity notice", func(t *testing.T) {
		h := newHarness(t)
		h.classifier.Result = nil
		h.classifier.Err = errors.New("down")
		for i := 1; i <= tasks.MaxSelections; i++ {
			h.run(h.model.choose(suggestion{kind: models.KindTrack, track: track(i)}))
		}

		h.run(h.model.choose(suggestion{kind: models.KindTrack, track: track(6)}))

		if h.model.notice != noticeSelectionFull {
			t.Errorf("expected capacity notice, got %q", h.model.notice)
		}
		if h.model.selection.Len() != tasks.MaxSelections {
			t.Errorf("expected selection unchanged, got %d", h.model.selection.Len())
		}
	})

	t.Run("classification failure keeps the selection", func(t *testing.T) {
		h := newHarness(t)
		h.classifier.Result = nil
		h.classifier.Err = errors.New("503")
		for i := 1; i <= tasks.MaxSelections; i++ {
			h.run(h.model.choose(suggestion{kind: models.KindTrack, track: track(i)}))
		}

		if h.model.view != SearchView {
			t.Error("expected to stay on search view")
		}
		if h.model.notice != noticeClassifyFailed {
			t.Errorf("expected failure notice, got %q", h.model.notice)
		}
		if h.model.loading {
			t.Error("expected loading to finish")
		}
		if h.model.selection.Len() != tasks.MaxSelections {
			t.Error("expected selection kept")
		}
		if h.classifier.CallCount() != 1 {
			t.Error("expected exactly one attempt")
		}
	})

	t.Run("missing payload shows notice", func(t *testing.T) {
		h := newHarness(t)
		h.store.Err = errors.New("disk")
		for i := 1; i <= tasks.MaxSelections; i++ {
			h.run(h.model.choose(suggestion{kind: models.KindTrack, track: track(i)}))
		}

		if h.model.view != ResultView {
			t.Fatal("expected navigation despite store failure")
		}
		if h.model.notice != noticeAnalysisMissing {
			t.Errorf("expected missing analysis notice, got %q", h.model.notice)
		}
	})

	t.Run("classifier without analysis shows notice", func(t *testing.T) {
		h := newHarness(t)
		h.classifier.Result = &models.ClassificationResult{Group: "클러버", Explanation: "loud"}
		for i := 1; i <= tasks.MaxSelections; i++ {
			h.run(h.model.choose(suggestion{kind: models.KindTrack, track: track(i)}))
		}

		if h.model.view != ResultView {
			t.Fatalf("expected result view, got %v", h.model.view)
		}
		if h.model.group != "클러버" {
			t.Errorf("expected group, got %q", h.model.group)
		}
		if h.model.notice != noticeAnalysisMissing {
			t.Errorf("expected missing analysis notice, got %q", h.model.notice)
		}
		if len(h.model.scores) != 0 {
			t.Errorf("expected no scores, got %+v", h.model.scores)
		}
		if len(h.store.Payloads) != 0 {
			t.Errorf("expected nothing stored, got %v", h.store.Payloads)
		}
	})

	t.Run("external result viewer", func(t *testing.T) {
		h := newHarness(t)
		var opened string
		h.model.openResult = func(location string) error {
			opened = location
			return nil
		}
		for i := 1; i <= tasks.MaxSelections; i++ {
			h.run(h.model.choose(suggestion{kind: models.KindTrack, track: track(i)}))
		}

		want := "/result?group=%EC%B9%A0%20%EA%B0%80%EC%9D%B4&explanation=relaxed%20%26%20warm"
		if opened != want {
			t.Errorf("expected %s, got %s", want, opened)
		}
		if _, err := h.store.Take("session-1", models.AnalysisKey); err != nil {
			t.Error("expected payload left for the external viewer")
		}
	})

	t.Run("restart starts a new session", func(t *testing.T) {
		h := newHarness(t)
		h.model.newSession = func() (string, error) { return "session-2", nil }
		for i := 1; i <= tasks.MaxSelections; i++ {
			h.run(h.model.choose(suggestion{kind: models.KindTrack, track: track(i)}))
		}

		h.run(h.model.restart())

		if h.model.view != SearchView || h.model.selection.Len() != 0 {
			t.Error("expected empty search view")
		}
		if h.model.submitter.SessionID() != "session-2" {
			t.Errorf("expected new session, got %s", h.model.submitter.SessionID())
		}

		h.model.Update(previewResolvedMsg{gen: 0, order: 0, url: "stale"})
		if h.model.selection.Len() != 0 {
			t.Error("expected stale preview ignored")
		}
	})
}

func TestPlayback(t *testing.T) {
	setup := func(t *testing.T) *harness {
		h := newHarness(t)
		for i := 1; i <= 2; i++ {
			if _, ok := h.model.addTrack(track(i)); !ok {
				t.Fatal("expected track added")
			}
		}
		return h
	}

	t.Run("pending preview", func(t *testing.T) {
		h := setup(t)
		if cmd := h.model.playRow(0); cmd != nil {
			t.Error("expected no playback")
		}
		if h.model.notice != noticePreviewPending {
			t.Errorf("expected pending notice, got %q", h.model.notice)
		}
		if len(h.audio) != 0 {
			t.Error("expected no audio created")
		}
	})

	t.Run("no preview", func(t *testing.T) {
		h := setup(t)
		h.model.selection.Reset()
		h.model.addTrack(models.Track{ID: "x", Name: "Quiet"})
		h.model.Update(previewResolvedMsg{gen: 0, order: 0, url: ""})

		h.model.playRow(0)
		if h.model.notice != noticeNoPreview {
			t.Errorf("expected no preview notice, got %q", h.model.notice)
		}
		if h.model.player.State() != player.Idle {
			t.Errorf("expected idle player, got %v", h.model.player.State())
		}
	})

	t.Run("frames fill the row and switching rows cancels", func(t *testing.T) {
		h := setup(t)
		h.model.Update(previewResolvedMsg{gen: 0, order: 0, url: "https://itunes.example.com/1.m4a"})
		h.model.Update(previewResolvedMsg{gen: 0, order: 1, url: ""})

		if cmd := h.model.playRow(0); cmd == nil {
			t.Fatal("expected playback commands")
		}
		if h.audio[0].URL != "https://itunes.example.com/1.m4a" {
			t.Errorf("expected resolved url, got %s", h.audio[0].URL)
		}

		width := h.model.player.TrackWidth()
		h.audio[0].Advance(15 * time.Second)
		if _, cmd := h.model.Update(frameMsg{id: 1}); cmd == nil {
			t.Error("expected next frame scheduled")
		}
		if got := h.model.player.Progress(0); got != width/2 {
			t.Errorf("expected %d cells, got %d", width/2, got)
		}

		h.model.playRow(1)
		if h.audio[1].URL != "https://cdn.example.com/2.mp3" {
			t.Errorf("expected catalog fallback, got %s", h.audio[1].URL)
		}
		if !h.audio[0].IsPaused() {
			t.Error("expected first audio paused")
		}
		if h.model.player.Progress(0) != 0 {
			t.Error("expected first row reset")
		}
		if _, cmd := h.model.Update(frameMsg{id: 1}); cmd != nil {
			t.Error("expected stale frame ignored")
		}
		if h.model.player.LiveAudio() != 1 {
			t.Errorf("expected one live audio, got %d", h.model.player.LiveAudio())
		}
	})

	t.Run("end of media", func(t *testing.T) {
		h := setup(t)
		h.model.Update(previewResolvedMsg{gen: 0, order: 0, url: "https://itunes.example.com/1.m4a"})
		h.model.playRow(0)
		h.audio[0].Advance(10 * time.Second)
		h.model.Update(frameMsg{id: 1})

		h.audio[0].Finish()
		h.model.Update(playbackEndedMsg{handle: 1})

		if h.model.player.State() != player.Ended {
			t.Errorf("expected ended, got %v", h.model.player.State())
		}
		if h.model.player.Progress(0) != 0 {
			t.Error("expected row reset")
		}
		if h.audio[0].IsPaused() || h.model.player.LiveAudio() != 0 {
			t.Error("expected finished audio released without a pause")
		}
	})

	t.Run("bar reaching its duration leaves audio running", func(t *testing.T) {
		h := setup(t)
		h.model.Update(previewResolvedMsg{gen: 0, order: 0, url: "https://itunes.example.com/1.m4a"})
		h.model.playRow(0)
		h.audio[0].Advance(45 * time.Second)

		if _, cmd := h.model.Update(frameMsg{id: 1}); cmd != nil {
			t.Error("expected no further frames")
		}
		if h.model.player.Progress(0) != 0 || h.model.player.LiveAnimations() != 0 {
			t.Error("expected row reset and animation cleared")
		}
		if h.audio[0].IsPaused() {
			t.Error("expected audio left to finish")
		}

		h.model.playRow(0)
		if !h.audio[0].IsPaused() || h.model.player.LiveAudio() != 1 {
			t.Error("expected replay to stop the draining audio")
		}
	})

	t.Run("metadata shortens the bar duration", func(t *testing.T) {
		h := setup(t)
		h.model.Update(previewResolvedMsg{gen: 0, order: 0, url: "https://itunes.example.com/1.m4a"})
		h.model.playRow(0)

		h.model.Update(metadataMsg{handle: 1, duration: 20 * time.Second})
		h.audio[0].Advance(10 * time.Second)
		h.model.Update(frameMsg{id: 1})

		if got, want := h.model.player.Progress(0), h.model.player.TrackWidth()/2; got != want {
			t.Errorf("expected %d cells, got %d", want, got)
		}
	})
}

func TestView(t *testing.T) {
	h := newHarness(t)
	h.model.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	h.model.addTrack(track(1))

	out := h.model.View()
	for _, want := range []string{"tunetype", "Your picks (1/5)", "Song 1 - Band", "looking up preview"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}

	h.model.loading = true
	h.model.progress = tasks.ProgressUpdate{Phase: tasks.Classify, Message: "Classifying 5 tracks..."}
	if out := h.model.View(); !strings.Contains(out, "Classifying 5 tracks...") {
		t.Errorf("expected loading view, got %q", out)
	}
}
