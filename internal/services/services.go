// package services defines the interfaces tunetype uses to reach HTTP APIs
//
// Backend (search + classification), Spotify Web API (direct catalog), iTunes Search (previews)
package services

import (
	"context"

	"github.com/desertthunder/tunetype/internal/models"
)

// Catalog is a source of search suggestions and artist drilldowns.
type Catalog interface {
	// Search returns the tracks and artists matching query. The query is sent as typed.
	Search(ctx context.Context, query string) (*models.SearchResults, error)

	// ArtistTracks returns the tracks offered for an artist drilldown.
	ArtistTracks(ctx context.Context, artistID string) ([]models.Track, error)

	// Name returns the name of the catalog (e.g., "backend", "Spotify")
	Name() string
}

// Classifier assigns a taste group to an ordered list of track IDs.
type Classifier interface {
	Classify(ctx context.Context, trackIDs []string) (*models.ClassificationResult, error)
}

// PreviewLookup finds a playable preview URL for a free-text term.
//
// An empty string with a nil error means the lookup ran and found nothing.
type PreviewLookup interface {
	LookupPreview(ctx context.Context, term string) (string, error)
}
