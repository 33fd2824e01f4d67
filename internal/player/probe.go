package player

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dhowden/tag"
	"github.com/tcolgate/mp3"

	"github.com/desertthunder/tunetype/internal/shared"
)

// ErrUnsupportedFormat is returned for previews whose duration cannot be measured.
var ErrUnsupportedFormat = errors.New("unsupported preview format")

const defaultProbeMaxBytes = 2 << 20

// Probe measures preview durations by downloading them.
type Probe struct {
	client   *http.Client
	maxBytes int64
}

// NewProbe creates a Probe reading at most maxBytes per preview.
func NewProbe(client *http.Client, maxBytes int64) *Probe {
	if client == nil {
		client = http.DefaultClient
	}
	if maxBytes <= 0 {
		maxBytes = defaultProbeMaxBytes
	}
	return &Probe{client: client, maxBytes: maxBytes}
}

// Duration downloads url and returns its playing time.
func (p *Probe) Duration(ctx context.Context, url string) (time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: preview download: %w", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("%w: preview download returned status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, p.maxBytes+1))
	if err != nil {
		return 0, fmt.Errorf("failed to read preview: %w", err)
	}
	if int64(len(data)) > p.maxBytes {
		return 0, fmt.Errorf("preview exceeds %d bytes", p.maxBytes)
	}

	return Duration(bytes.NewReader(data))
}

// Duration identifies the container of r and measures it. Only MPEG audio is measured.
//
// Untagged streams are tried as MPEG audio since tag identification needs a tag to succeed.
func Duration(r io.ReadSeeker) (time.Duration, error) {
	_, fileType, err := tag.Identify(r)
	if err == nil && fileType != tag.MP3 {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, fileType)
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("failed to rewind preview: %w", err)
	}
	return mp3Duration(r)
}

// mp3Duration sums frame durations; a partially decodable stream counts the frames read.
func mp3Duration(r io.Reader) (time.Duration, error) {
	dec := mp3.NewDecoder(r)

	var (
		total   time.Duration
		skipped int
		frames  int
	)
	for {
		var fr mp3.Frame
		if err := dec.Decode(&fr, &skipped); err != nil {
			if errors.Is(err, io.EOF) || frames > 0 {
				break
			}
			return 0, fmt.Errorf("%w: no MPEG frames", ErrUnsupportedFormat)
		}
		total += fr.Duration()
		frames++
	}

	if frames == 0 {
		return 0, fmt.Errorf("%w: no MPEG frames", ErrUnsupportedFormat)
	}
	return total, nil
}
