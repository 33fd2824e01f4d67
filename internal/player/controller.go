package player

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/tunetype/internal/shared"
)

// DefaultDuration is assumed until real metadata arrives.
const DefaultDuration = 30 * time.Second

// State is the playback state machine.
type State int

const (
	Idle State = iota
	Loading
	Playing
	Ended
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Playing:
		return "playing"
	case Ended:
		return "ended"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Audio is a single playable preview.
type Audio interface {
	Play(ctx context.Context) error
	Pause()
	Position() time.Duration
	Done() <-chan struct{}
}

// AudioFactory builds an unstarted audio handle for url.
type AudioFactory func(url string) Audio

// Handle identifies one playback; AnimationID identifies its progress animation. Zero means none.
type (
	Handle      uint64
	AnimationID uint64
)

// Started describes a playback that Play just began.
type Started struct {
	Handle    Handle
	Animation AnimationID
	Row       int
	URL       string
	Done      <-chan struct{}
}

// playback is the single live playback.
type playback struct {
	handle    Handle
	row       int
	url       string
	audio     Audio
	duration  time.Duration
	animation AnimationID
}

// Controller keeps at most one live audio handle and at most one live animation.
//
// Not safe for concurrent use.
type Controller struct {
	newAudio        AudioFactory
	defaultDuration time.Duration
	albumArtOffset  int
	rowWidth        int

	state    State
	current  *playback
	progress map[int]int

	lastHandle    Handle
	lastAnimation AnimationID
}

// NewController creates an idle controller. defaultDuration <= 0 uses [DefaultDuration].
func NewController(factory AudioFactory, defaultDuration time.Duration, albumArtOffset int) *Controller {
	if defaultDuration <= 0 {
		defaultDuration = DefaultDuration
	}
	return &Controller{
		newAudio:        factory,
		defaultDuration: defaultDuration,
		albumArtOffset:  albumArtOffset,
		progress:        make(map[int]int),
	}
}

// SetRowWidth sets the cell width of a selection row.
func (c *Controller) SetRowWidth(w int) {
	if w < 0 {
		w = 0
	}
	c.rowWidth = w
}

// TrackWidth is the number of cells the progress bar can fill.
func (c *Controller) TrackWidth() int {
	if w := c.rowWidth - c.albumArtOffset; w > 0 {
		return w
	}
	return 0
}

// Play stops whatever is playing and starts url for row.
//
// An empty url returns [shared.ErrNoPreview] and changes nothing.
func (c *Controller) Play(ctx context.Context, row int, url string) (Started, error) {
	if url == "" {
		return Started{}, shared.ErrNoPreview
	}

	c.cancelAnimations()
	c.pauseCurrent()

	c.lastHandle++
	p := &playback{
		handle:   c.lastHandle,
		row:      row,
		url:      url,
		audio:    c.newAudio(url),
		duration: c.defaultDuration,
	}
	c.current = p
	c.state = Loading

	if err := p.audio.Play(ctx); err != nil {
		c.current = nil
		c.state = Stopped
		return Started{}, fmt.Errorf("failed to start preview: %w", err)
	}

	c.lastAnimation++
	p.animation = c.lastAnimation
	c.state = Playing

	return Started{
		Handle:    p.handle,
		Animation: p.animation,
		Row:       row,
		URL:       url,
		Done:      p.audio.Done(),
	}, nil
}

// Metadata records the real duration of the playback identified by h.
func (c *Controller) Metadata(h Handle, d time.Duration) bool {
	if c.current == nil || c.current.handle != h || d <= 0 {
		return false
	}
	c.current.duration = d
	return true
}

// Frame advances the animation identified by id and reports whether another frame should be scheduled.
func (c *Controller) Frame(id AnimationID) bool {
	p := c.current
	if id == 0 || p == nil || p.animation != id {
		return false
	}

	elapsed := p.audio.Position()
	if elapsed >= p.duration {
		c.finish()
		return false
	}

	ratio := float64(elapsed) / float64(p.duration)
	width := c.TrackWidth()
	cells := int(float64(width) * ratio)
	if cells < 0 {
		cells = 0
	}
	if cells > width {
		cells = width
	}
	c.progress[p.row] = cells
	return true
}

// Ended handles the end-of-media signal for h.
//
// When Frame already ended the playback at its duration the signal only releases the audio.
func (c *Controller) Ended(h Handle) bool {
	if c.current == nil || c.current.handle != h || c.state != Playing {
		return false
	}
	c.finish()
	return true
}

// Stop pauses the current audio, cancels its animation and zeroes every row.
func (c *Controller) Stop() {
	c.cancelAnimations()
	if c.current == nil {
		return
	}
	c.pauseCurrent()
	c.current = nil
	c.state = Stopped
}

// finish resets the row and clears the animation. The audio is left to exit on its own.
func (c *Controller) finish() {
	p := c.current
	c.progress[p.row] = 0
	p.animation = 0
	c.state = Ended
}

// cancelAnimations invalidates the live animation and resets all row progress.
func (c *Controller) cancelAnimations() {
	if c.current != nil {
		c.current.animation = 0
	}
	for row := range c.progress {
		c.progress[row] = 0
	}
}

func (c *Controller) pauseCurrent() {
	if c.current == nil {
		return
	}
	if c.state == Loading || c.state == Playing || c.draining() {
		c.current.audio.Pause()
		c.state = Stopped
	}
}

// draining reports whether the playback ended at its duration but its audio has not exited yet.
func (c *Controller) draining() bool {
	if c.current == nil || c.state != Ended {
		return false
	}
	select {
	case <-c.current.audio.Done():
		return false
	default:
		return true
	}
}

func (c *Controller) State() State { return c.state }

// Progress returns the filled cells of row.
func (c *Controller) Progress(row int) int { return c.progress[row] }

// Ratio returns the filled fraction of row.
func (c *Controller) Ratio(row int) float64 {
	w := c.TrackWidth()
	if w == 0 {
		return 0
	}
	return float64(c.progress[row]) / float64(w)
}

// PlayingRow returns the row of the live playback.
func (c *Controller) PlayingRow() (int, bool) {
	if c.current == nil || c.state != Playing {
		return 0, false
	}
	return c.current.row, true
}

// Duration returns the assumed or measured duration of the current playback.
func (c *Controller) Duration() time.Duration {
	if c.current == nil {
		return 0
	}
	return c.current.duration
}

// LiveAnimations is the number of animations that would still accept frames.
func (c *Controller) LiveAnimations() int {
	if c.current != nil && c.current.animation != 0 {
		return 1
	}
	return 0
}

// LiveAudio is the number of audio handles that are loading, playing or still draining after the bar ended.
func (c *Controller) LiveAudio() int {
	if c.current != nil && (c.state == Loading || c.state == Playing || c.draining()) {
		return 1
	}
	return 0
}
