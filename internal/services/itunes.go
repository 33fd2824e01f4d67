package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/desertthunder/tunetype/internal/shared"
)

const defaultLookupURL = "https://itunes.apple.com/search"

// ITunesService resolves preview URLs through the iTunes Search API.
type ITunesService struct {
	lookupURL  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewITunesService creates a lookup client allowing requestsPerMinute calls; zero disables the limit.
func NewITunesService(lookupURL string, requestsPerMinute float64, client *http.Client) *ITunesService {
	if lookupURL == "" {
		lookupURL = defaultLookupURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	limit := rate.Inf
	if requestsPerMinute > 0 {
		limit = rate.Every(time.Duration(float64(time.Minute) / requestsPerMinute))
	}

	return &ITunesService{
		lookupURL:  lookupURL,
		httpClient: client,
		limiter:    rate.NewLimiter(limit, 1),
	}
}

type itunesResult struct {
	TrackName  string `json:"trackName"`
	ArtistName string `json:"artistName"`
	PreviewURL string `json:"previewUrl"`
}

type itunesResponse struct {
	ResultCount int            `json:"resultCount"`
	Results     []itunesResult `json:"results"`
}

// LookupPreview returns the previewUrl of the single best music track match for term, or "".
func (s *ITunesService) LookupPreview(ctx context.Context, term string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	params := url.Values{
		"term":   {term},
		"entity": {"musicTrack"},
		"limit":  {"1"},
	}

	api := NewAPIService(s.lookupURL, s.httpClient)
	resp, err := api.Get(ctx, "", params)
	if err != nil {
		return "", fmt.Errorf("%w: preview lookup: %w", shared.ErrAPIRequest, err)
	}
	if !resp.OK() {
		return "", fmt.Errorf("%w: preview lookup returned status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	var body itunesResponse
	if err := resp.Decode(&body); err != nil {
		return "", fmt.Errorf("%w: preview lookup: %w", shared.ErrAPIRequest, err)
	}
	if len(body.Results) == 0 {
		return "", nil
	}
	return body.Results[0].PreviewURL, nil
}
