package models

// Track is a catalog track as returned by search and artist drilldown.
type Track struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Artist     string `json:"artist"`
	AlbumImage string `json:"album_image,omitempty"`
	PreviewURL string `json:"preview_url,omitempty"`
}

// DisplayName is the row label: "<name> - <artist>".
func (t Track) DisplayName() string {
	if t.Artist == "" {
		return t.Name
	}
	return t.Name + " - " + t.Artist
}

// Artist is a catalog artist.
type Artist struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Image     string `json:"image,omitempty"`
	Followers int    `json:"followers"`
}

// SearchResults holds the response to a single query.
type SearchResults struct {
	Tracks  []Track  `json:"tracks"`
	Artists []Artist `json:"artists"`
}

// SuggestionKind distinguishes the suggestion panels.
type SuggestionKind int

const (
	KindTrack SuggestionKind = iota
	KindArtist
	KindArtistTrack
)

func (k SuggestionKind) String() string {
	switch k {
	case KindTrack:
		return "track"
	case KindArtist:
		return "artist"
	case KindArtistTrack:
		return "artist-track"
	default:
		return "unknown"
	}
}

// SelectionEntry is one chosen track.
//
// Order is assigned at insertion and never changes.
// ResolvedPreviewURL stays empty until preview resolution finishes (PreviewResolved).
type SelectionEntry struct {
	TrackID            string `json:"track_id"`
	DisplayName        string `json:"display_name"`
	AlbumImage         string `json:"album_image,omitempty"`
	CatalogPreviewURL  string `json:"catalog_preview_url,omitempty"`
	ResolvedPreviewURL string `json:"resolved_preview_url,omitempty"`
	PreviewResolved    bool   `json:"preview_resolved"`
	Order              int    `json:"order"`
}

// NewSelectionEntry builds an unresolved entry for track at the given order.
func NewSelectionEntry(track Track, order int) SelectionEntry {
	return SelectionEntry{
		TrackID:           track.ID,
		DisplayName:       track.DisplayName(),
		AlbumImage:        track.AlbumImage,
		CatalogPreviewURL: track.PreviewURL,
		Order:             order,
	}
}
