// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/desertthunder/tunetype/internal/models"
	"github.com/desertthunder/tunetype/internal/shared"
)

// MockCatalog is a test double for services.Catalog.
//
// Results are looked up by exact query or artist ID; calls are recorded in order.
type MockCatalog struct {
	mu            sync.Mutex
	Results       map[string]*models.SearchResults
	ArtistResults map[string][]models.Track
	Err           error
	Queries       []string
	ArtistIDs     []string
}

func (m *MockCatalog) Search(ctx context.Context, query string) (*models.SearchResults, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Queries = append(m.Queries, query)
	if m.Err != nil {
		return nil, m.Err
	}
	if r, ok := m.Results[query]; ok {
		return r, nil
	}
	return &models.SearchResults{Tracks: []models.Track{}, Artists: []models.Artist{}}, nil
}

func (m *MockCatalog) ArtistTracks(ctx context.Context, artistID string) ([]models.Track, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArtistIDs = append(m.ArtistIDs, artistID)
	if m.Err != nil {
		return nil, m.Err
	}
	if tracks, ok := m.ArtistResults[artistID]; ok {
		return tracks, nil
	}
	return []models.Track{}, nil
}

func (m *MockCatalog) Name() string { return "mock" }

// MockClassifier is a test double for services.Classifier that records every call.
type MockClassifier struct {
	mu     sync.Mutex
	Result *models.ClassificationResult
	Err    error
	Calls  [][]string
}

func (m *MockClassifier) Classify(ctx context.Context, trackIDs []string) (*models.ClassificationResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, append([]string(nil), trackIDs...))
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}

// CallCount returns how many times Classify ran.
func (m *MockClassifier) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockLookup is a test double for services.PreviewLookup keyed by term.
type MockLookup struct {
	mu    sync.Mutex
	URLs  map[string]string
	Err   error
	Terms []string
}

func (m *MockLookup) LookupPreview(ctx context.Context, term string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Terms = append(m.Terms, term)
	if m.Err != nil {
		return "", m.Err
	}
	return m.URLs[term], nil
}

// MockStore is an in-memory write-once, read-once payload store.
type MockStore struct {
	mu       sync.Mutex
	Payloads map[string][]byte
	Err      error
}

func NewMockStore() *MockStore {
	return &MockStore{Payloads: map[string][]byte{}}
}

func (m *MockStore) Put(sessionID, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Payloads[sessionID+"/"+key] = append([]byte(nil), payload...)
	return nil
}

func (m *MockStore) Take(sessionID, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.Payloads[sessionID+"/"+key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrPayloadNotFound, key)
	}
	delete(m.Payloads, sessionID+"/"+key)
	return p, nil
}

// FakeAudio is an audio handle that never touches a device.
//
// Position advances only through Advance; Finish closes Done.
type FakeAudio struct {
	mu       sync.Mutex
	URL      string
	Started  bool
	Paused   bool
	PlayErr  error
	position time.Duration
	done     chan struct{}
	once     sync.Once
}

func NewFakeAudio(url string) *FakeAudio {
	return &FakeAudio{URL: url, done: make(chan struct{})}
}

func (f *FakeAudio) Play(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.PlayErr != nil {
		return f.PlayErr
	}
	f.Started = true
	return nil
}

func (f *FakeAudio) Pause() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Paused = true
}

func (f *FakeAudio) Position() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.position
}

func (f *FakeAudio) Done() <-chan struct{} { return f.done }

// Advance moves the playback position forward by d.
func (f *FakeAudio) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.position += d
}

// Finish signals end of media.
func (f *FakeAudio) Finish() {
	f.once.Do(func() { close(f.done) })
}

// IsPaused reports whether Pause was called.
func (f *FakeAudio) IsPaused() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Paused
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
