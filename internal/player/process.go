package player

import (
	"context"
	"fmt"
	"os/exec"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/tunetype/internal/shared"
)

// ProcessAudio plays a preview URL by running an external player such as ffplay.
//
// Position is wall-clock time since the process started; Pause ends the process.
type ProcessAudio struct {
	bin    string
	args   []string
	url    string
	logger *log.Logger
	now    func() time.Time

	mu       sync.Mutex
	cancel   context.CancelFunc
	started  time.Time
	stopped  bool
	position time.Duration
	done     chan struct{}
}

// NewProcessAudio prepares bin with args followed by url. Nothing runs until Play.
func NewProcessAudio(bin string, args []string, url string, logger *log.Logger) *ProcessAudio {
	if logger == nil {
		logger = log.Default()
	}
	return &ProcessAudio{
		bin:    bin,
		args:   append([]string(nil), args...),
		url:    url,
		logger: logger,
		now:    time.Now,
		done:   make(chan struct{}),
	}
}

// ProcessFactory returns an [AudioFactory] that builds [ProcessAudio] handles.
func ProcessFactory(bin string, args []string, logger *log.Logger) AudioFactory {
	return func(url string) Audio {
		return NewProcessAudio(bin, args, url, logger)
	}
}

// Play starts the player process; Done closes when it exits.
func (a *ProcessAudio) Play(ctx context.Context) error {
	path, err := exec.LookPath(a.bin)
	if err != nil {
		return fmt.Errorf("%w: %s", shared.ErrPlayerNotFound, a.bin)
	}

	ctx, cancel := context.WithCancel(ctx)
	args := append(append([]string(nil), a.args...), a.url)
	cmd := exec.CommandContext(ctx, path, args...)

	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("failed to start %s: %w", a.bin, err)
	}

	a.mu.Lock()
	a.cancel = cancel
	a.started = a.now()
	a.mu.Unlock()

	a.logger.Debug("player started", "bin", a.bin, "pid", cmd.Process.Pid, "url", a.url)

	go func() {
		err := cmd.Wait()
		a.mu.Lock()
		if !a.stopped {
			a.stopped = true
			a.position = a.now().Sub(a.started)
		}
		a.mu.Unlock()
		if err != nil && ctx.Err() == nil {
			a.logger.Warn("player exited with error", "bin", a.bin, "error", err)
		}
		cancel()
		close(a.done)
	}()
	return nil
}

// Pause stops playback at the current position.
func (a *ProcessAudio) Pause() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cancel == nil || a.stopped {
		return
	}
	a.stopped = true
	a.position = a.now().Sub(a.started)
	a.cancel()
}

func (a *ProcessAudio) Position() time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch {
	case a.started.IsZero():
		return 0
	case a.stopped:
		return a.position
	default:
		return a.now().Sub(a.started)
	}
}

func (a *ProcessAudio) Done() <-chan struct{} { return a.done }
