package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/desertthunder/tunetype/internal/models"
	"github.com/desertthunder/tunetype/internal/shared"
)

// BackendService talks to the search/classification backend:
//
//	GET  /search?q=...
//	GET  /artist_tracks?artist_id=...
//	POST /mbti {"track_ids": [...]}
type BackendService struct {
	api *APIService
}

// NewBackendService creates a BackendService for baseURL.
func NewBackendService(baseURL string, client *http.Client) *BackendService {
	return &BackendService{api: NewAPIService(baseURL, client)}
}

func (b *BackendService) Name() string { return "backend" }

// Search sends query unmodified; callers decide what is long enough to search.
func (b *BackendService) Search(ctx context.Context, query string) (*models.SearchResults, error) {
	resp, err := b.api.Get(ctx, "/search", url.Values{"q": {query}})
	if err != nil {
		return nil, fmt.Errorf("%w: search: %w", shared.ErrAPIRequest, err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("%w: search returned status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	var results models.SearchResults
	if err := resp.Decode(&results); err != nil {
		return nil, fmt.Errorf("%w: search: %w", shared.ErrAPIRequest, err)
	}
	if results.Tracks == nil {
		results.Tracks = []models.Track{}
	}
	if results.Artists == nil {
		results.Artists = []models.Artist{}
	}
	return &results, nil
}

func (b *BackendService) ArtistTracks(ctx context.Context, artistID string) ([]models.Track, error) {
	resp, err := b.api.Get(ctx, "/artist_tracks", url.Values{"artist_id": {artistID}})
	if err != nil {
		return nil, fmt.Errorf("%w: artist tracks: %w", shared.ErrAPIRequest, err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("%w: artist tracks returned status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	tracks := []models.Track{}
	if err := resp.Decode(&tracks); err != nil {
		return nil, fmt.Errorf("%w: artist tracks: %w", shared.ErrAPIRequest, err)
	}
	if tracks == nil {
		tracks = []models.Track{}
	}
	return tracks, nil
}

// Classify posts the ordered track IDs to /mbti.
//
// Transport errors, non-2xx statuses and undecodable bodies all wrap [shared.ErrClassificationFailed].
func (b *BackendService) Classify(ctx context.Context, trackIDs []string) (*models.ClassificationResult, error) {
	body, err := json.Marshal(models.ClassificationRequest{TrackIDs: trackIDs})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrClassificationFailed, err)
	}

	resp, err := b.api.Post(ctx, "/mbti", body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrClassificationFailed, err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("%w: status %d", shared.ErrClassificationFailed, resp.StatusCode)
	}

	var result models.ClassificationResult
	if err := resp.Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrClassificationFailed, err)
	}
	return &result, nil
}
