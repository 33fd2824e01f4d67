// Spotify Web API implementation of [Catalog]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/desertthunder/tunetype/internal/models"
	"github.com/desertthunder/tunetype/internal/shared"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"
)

type followers struct {
	Total int `json:"total"`
}

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Artists    []SpotifyArtist `json:"artists"`
	Album      SpotifyAlbum    `json:"album"`
	PreviewURL *string         `json:"preview_url"`
	DurationMS int             `json:"duration_ms"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Images    []SpotifyImage `json:"images"`
	Followers followers      `json:"followers"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Images []SpotifyImage `json:"images"`
}

type spotifySearchResponse struct {
	Tracks struct {
		Items []SpotifyTrack `json:"items"`
	} `json:"tracks"`
	Artists struct {
		Items []SpotifyArtist `json:"items"`
	} `json:"artists"`
}

type spotifyTopTracksResponse struct {
	Tracks []SpotifyTrack `json:"tracks"`
}

// SpotifyOptions configures a [SpotifyCatalog].
//
// TokenURL, BaseURL and HTTPClient default to the public Spotify endpoints and http.DefaultClient.
type SpotifyOptions struct {
	ClientID     string
	ClientSecret string
	Market       string
	Limit        int
	TokenURL     string
	BaseURL      string
	HTTPClient   *http.Client
}

// SpotifyCatalog queries the Spotify Web API directly with app-only (client credentials) tokens.
type SpotifyCatalog struct {
	baseURL    string
	market     string
	limit      int
	httpClient *http.Client
}

// NewSpotifyCatalog builds a catalog whose HTTP client fetches and refreshes tokens on demand.
//
// ctx governs token requests for the lifetime of the catalog.
func NewSpotifyCatalog(ctx context.Context, opts SpotifyOptions) (*SpotifyCatalog, error) {
	if opts.ClientID == "" || opts.ClientSecret == "" {
		return nil, fmt.Errorf("%w: spotify client_id and client_secret are required", shared.ErrMissingCredentials)
	}
	if opts.TokenURL == "" {
		opts.TokenURL = spotifyTokenURL
	}
	if opts.BaseURL == "" {
		opts.BaseURL = spotifyBaseURL
	}
	if opts.Market == "" {
		opts.Market = "US"
	}
	if opts.Limit <= 0 {
		opts.Limit = 5
	}
	if opts.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, opts.HTTPClient)
	}

	config := &clientcredentials.Config{
		ClientID:     opts.ClientID,
		ClientSecret: opts.ClientSecret,
		TokenURL:     opts.TokenURL,
	}

	return &SpotifyCatalog{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		market:     opts.Market,
		limit:      opts.Limit,
		httpClient: config.Client(ctx),
	}, nil
}

func (s *SpotifyCatalog) Name() string { return "Spotify" }

// doRequest performs an authenticated GET against the Web API and decodes the body into result.
func (s *SpotifyCatalog) doRequest(ctx context.Context, endpoint string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: spotify: %w", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: spotify API error: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: failed to decode response: %w", shared.ErrAPIRequest, err)
	}
	return nil
}

// Search returns up to limit tracks and limit artists. A blank query returns empty results without a request.
func (s *SpotifyCatalog) Search(ctx context.Context, query string) (*models.SearchResults, error) {
	results := &models.SearchResults{Tracks: []models.Track{}, Artists: []models.Artist{}}
	if strings.TrimSpace(query) == "" {
		return results, nil
	}

	params := url.Values{
		"q":     {query},
		"type":  {"track,artist"},
		"limit": {strconv.Itoa(s.limit)},
	}

	var response spotifySearchResponse
	if err := s.doRequest(ctx, "/search?"+params.Encode(), &response); err != nil {
		return nil, err
	}

	for _, t := range response.Tracks.Items {
		results.Tracks = append(results.Tracks, t.toTrack())
	}
	for _, a := range response.Artists.Items {
		results.Artists = append(results.Artists, a.toArtist())
	}
	return results, nil
}

// ArtistTracks returns the artist's top tracks for the configured market.
func (s *SpotifyCatalog) ArtistTracks(ctx context.Context, artistID string) ([]models.Track, error) {
	tracks := []models.Track{}
	if artistID == "" {
		return tracks, nil
	}

	endpoint := fmt.Sprintf("/artists/%s/top-tracks?market=%s", url.PathEscape(artistID), url.QueryEscape(s.market))

	var response spotifyTopTracksResponse
	if err := s.doRequest(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	for _, t := range response.Tracks {
		tracks = append(tracks, t.toTrack())
	}
	return tracks, nil
}

func firstImage(images []SpotifyImage) string {
	if len(images) == 0 {
		return ""
	}
	return images[0].URL
}

func (t SpotifyTrack) toTrack() models.Track {
	names := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		names = append(names, a.Name)
	}

	track := models.Track{
		ID:         t.ID,
		Name:       t.Name,
		Artist:     strings.Join(names, ", "),
		AlbumImage: firstImage(t.Album.Images),
	}
	if t.PreviewURL != nil {
		track.PreviewURL = *t.PreviewURL
	}
	return track
}

func (a SpotifyArtist) toArtist() models.Artist {
	return models.Artist{
		ID:        a.ID,
		Name:      a.Name,
		Image:     firstImage(a.Images),
		Followers: a.Followers.Total,
	}
}
