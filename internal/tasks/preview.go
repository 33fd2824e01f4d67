package tasks

import (
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/tunetype/internal/models"
	"github.com/desertthunder/tunetype/internal/services"
)

// PreviewResolver looks up preview URLs and never fails: problems are logged and resolve to "".
type PreviewResolver struct {
	lookup services.PreviewLookup
	logger *log.Logger
}

// NewPreviewResolver creates a resolver; a nil logger discards output.
func NewPreviewResolver(lookup services.PreviewLookup, logger *log.Logger) *PreviewResolver {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &PreviewResolver{lookup: lookup, logger: logger}
}

// Resolve returns the preview URL for the first lookup match of "<trackName> <artistName>", or "".
func (r *PreviewResolver) Resolve(ctx context.Context, trackName, artistName string) string {
	if r.lookup == nil {
		return ""
	}

	term := trackName + " " + artistName
	url, err := r.lookup.LookupPreview(ctx, term)
	if err != nil {
		r.logger.Warn("preview lookup failed", "term", term, "error", err)
		return ""
	}
	if url == "" {
		r.logger.Debug("no preview found", "term", term)
	}
	return url
}

// ChoosePreviewURL prefers the looked-up URL, then the catalog URL. "" means nothing is playable.
func ChoosePreviewURL(resolved, catalog string) string {
	if resolved != "" {
		return resolved
	}
	return catalog
}

type previewJob struct {
	index int
	track models.Track
}

type previewResult struct {
	index int
	url   string
}

// ResolveAll resolves every track with up to workers concurrent lookups and returns the chosen
// preview URL per track, in input order.
func (r *PreviewResolver) ResolveAll(ctx context.Context, tracks []models.Track, workers int, progress chan<- ProgressUpdate) []string {
	urls := make([]string, len(tracks))
	if len(tracks) == 0 {
		return urls
	}
	if workers <= 0 {
		workers = 3
	}
	if workers > len(tracks) {
		workers = len(tracks)
	}

	jobs := make(chan previewJob, len(tracks))
	results := make(chan previewResult, len(tracks))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go r.previewWorker(ctx, &wg, jobs, results)
	}

	for i, t := range tracks {
		jobs <- previewJob{index: i, track: t}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		t := tracks[res.index]
		urls[res.index] = ChoosePreviewURL(res.url, t.PreviewURL)
		sendProgress(progress, previewResolvedUpdate(completed, len(tracks), t.DisplayName(), urls[res.index]))
	}
	return urls
}

func (r *PreviewResolver) previewWorker(ctx context.Context, wg *sync.WaitGroup, jobs <-chan previewJob, results chan<- previewResult) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			results <- previewResult{index: job.index}
			continue
		default:
		}
		results <- previewResult{index: job.index, url: r.Resolve(ctx, job.track.Name, job.track.Artist)}
	}
}
