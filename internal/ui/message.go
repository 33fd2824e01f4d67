package ui

import (
	"time"

	"github.com/desertthunder/tunetype/internal/models"
	"github.com/desertthunder/tunetype/internal/player"
	"github.com/desertthunder/tunetype/internal/tasks"
)

// searchResultsMsg answers the search issued with seq.
type searchResultsMsg struct {
	seq     uint64
	query   string
	results *models.SearchResults
	err     error
}

// artistTracksMsg answers the drilldown issued with seq.
type artistTracksMsg struct {
	seq    uint64
	artist models.Artist
	tracks []models.Track
	err    error
}

// previewResolvedMsg carries the lookup result for one selection row of generation gen.
type previewResolvedMsg struct {
	gen   uint64
	order int
	url   string
}

type frameMsg struct {
	id player.AnimationID
}

type playbackEndedMsg struct {
	handle player.Handle
}

type metadataMsg struct {
	handle   player.Handle
	duration time.Duration
}

type progressUpdateMsg tasks.ProgressUpdate

type submittedMsg struct {
	submission *tasks.Submission
	err        error
}

// resultLoadedMsg carries the consumed analysis payload for the result view.
// external is set when another viewer took the result over.
type resultLoadedMsg struct {
	payload  []byte
	external bool
	err      error
}
