package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/desertthunder/tunetype/internal/models"
)

var (
	_ list.DefaultItem = suggestionItem{}
	_ list.DefaultItem = placeholderItem{}
)

// Placeholder rows for empty panels.
const (
	noTracksText       = "No tracks found."
	noArtistsText      = "No artists found."
	noArtistTracksText = "No tracks found for this artist."
)

// suggestion is the payload a row hands to selection handling.
type suggestion struct {
	kind   models.SuggestionKind
	track  models.Track
	artist models.Artist
}

// suggestionItem wraps a [suggestion] to implement [list.Item].
type suggestionItem struct {
	payload suggestion
}

func (i suggestionItem) FilterValue() string { return i.Title() }

func (i suggestionItem) Title() string {
	if i.payload.kind == models.KindArtist {
		return i.payload.artist.Name
	}
	return i.payload.track.DisplayName()
}

func (i suggestionItem) Description() string {
	if i.payload.kind == models.KindArtist {
		return fmt.Sprintf("%d followers", i.payload.artist.Followers)
	}
	if i.payload.track.PreviewURL != "" {
		return "preview available"
	}
	return ""
}

// placeholderItem is a non-selectable row shown when a panel has no results.
type placeholderItem struct {
	text string
}

func (i placeholderItem) FilterValue() string { return "" }
func (i placeholderItem) Title() string       { return i.text }
func (i placeholderItem) Description() string { return "" }

// renderSuggestions turns one panel's results into rows.
//
// Every result becomes exactly one row; an empty panel becomes exactly one placeholder.
func renderSuggestions(kind models.SuggestionKind, results *models.SearchResults) []list.Item {
	var items []list.Item

	switch kind {
	case models.KindArtist:
		if results != nil {
			for _, a := range results.Artists {
				items = append(items, suggestionItem{payload: suggestion{kind: kind, artist: a}})
			}
		}
		if len(items) == 0 {
			return []list.Item{placeholderItem{text: noArtistsText}}
		}
	default:
		if results != nil {
			for _, t := range results.Tracks {
				items = append(items, suggestionItem{payload: suggestion{kind: kind, track: t}})
			}
		}
		if len(items) == 0 {
			text := noTracksText
			if kind == models.KindArtistTrack {
				text = noArtistTracksText
			}
			return []list.Item{placeholderItem{text: text}}
		}
	}
	return items
}

// newSuggestionList builds an unfiltered list panel for suggestion rows.
func newSuggestionList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(0)

	l := list.New(nil, delegate, 0, 0)
	l.Title = title
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}
