package tasks

import (
	"fmt"

	"github.com/desertthunder/tunetype/internal/models"
	"github.com/desertthunder/tunetype/internal/shared"
)

// MaxSelections is the number of tracks that completes a selection.
const MaxSelections = 5

// SelectionSet is the ordered list of chosen tracks.
//
// Not safe for concurrent use; the TUI mutates it only from its update loop.
type SelectionSet struct {
	entries []models.SelectionEntry
	sealed  bool
}

// NewSelectionSet returns an empty set.
func NewSelectionSet() *SelectionSet {
	return &SelectionSet{entries: make([]models.SelectionEntry, 0, MaxSelections)}
}

// Add appends track and returns the new entry.
//
// sealed is true only for the append that fills the set; a full set rejects the track with
// [shared.ErrSelectionFull] and stays unchanged. The same track may be added more than once.
func (s *SelectionSet) Add(track models.Track) (models.SelectionEntry, bool, error) {
	if len(s.entries) >= MaxSelections {
		return models.SelectionEntry{}, false, fmt.Errorf("%w: %d tracks already selected", shared.ErrSelectionFull, MaxSelections)
	}

	entry := models.NewSelectionEntry(track, len(s.entries))
	s.entries = append(s.entries, entry)

	sealed := false
	if len(s.entries) == MaxSelections && !s.sealed {
		s.sealed = true
		sealed = true
	}
	return entry, sealed, nil
}

// SetPreview records the resolved preview URL of the entry at order.
func (s *SelectionSet) SetPreview(order int, url string) bool {
	if order < 0 || order >= len(s.entries) {
		return false
	}
	s.entries[order].ResolvedPreviewURL = url
	s.entries[order].PreviewResolved = true
	return true
}

// Entry returns the entry at order.
func (s *SelectionSet) Entry(order int) (models.SelectionEntry, bool) {
	if order < 0 || order >= len(s.entries) {
		return models.SelectionEntry{}, false
	}
	return s.entries[order], true
}

// Entries returns a copy of the entries in selection order.
func (s *SelectionSet) Entries() []models.SelectionEntry {
	out := make([]models.SelectionEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// TrackIDs returns the selected track IDs in selection order.
func (s *SelectionSet) TrackIDs() []string {
	ids := make([]string, len(s.entries))
	for i, e := range s.entries {
		ids[i] = e.TrackID
	}
	return ids
}

func (s *SelectionSet) Len() int     { return len(s.entries) }
func (s *SelectionSet) Full() bool   { return len(s.entries) >= MaxSelections }
func (s *SelectionSet) Sealed() bool { return s.sealed }

// Reset empties the set and allows it to seal again.
func (s *SelectionSet) Reset() {
	s.entries = s.entries[:0]
	s.sealed = false
}
