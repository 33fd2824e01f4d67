package player

import (
	"context"
	"errors"
	"io"
	"runtime"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/tunetype/internal/shared"
)

func TestProcessAudio(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	logger := log.New(io.Discard)

	t.Run("Missing Binary", func(t *testing.T) {
		a := NewProcessAudio("tunetype-no-such-player", nil, "https://p", logger)
		if err := a.Play(context.Background()); !errors.Is(err, shared.ErrPlayerNotFound) {
			t.Fatalf("expected ErrPlayerNotFound, got %v", err)
		}
		if a.Position() != 0 {
			t.Error("unstarted audio should report zero position")
		}
	})

	t.Run("Exit Closes Done", func(t *testing.T) {
		a := NewProcessAudio("sh", []string{"-c", "exit 0"}, "https://p", logger)
		if err := a.Play(context.Background()); err != nil {
			t.Fatalf("play failed: %v", err)
		}

		select {
		case <-a.Done():
		case <-time.After(5 * time.Second):
			t.Fatal("done not closed after process exit")
		}
	})

	t.Run("Pause Stops Process And Position", func(t *testing.T) {
		clock := time.Unix(0, 0)
		a := NewProcessAudio("sh", []string{"-c", "sleep 30"}, "https://p", logger)
		a.now = func() time.Time { return clock }

		if err := a.Play(context.Background()); err != nil {
			t.Fatalf("play failed: %v", err)
		}

		clock = clock.Add(3 * time.Second)
		a.Pause()
		clock = clock.Add(10 * time.Second)

		if got := a.Position(); got != 3*time.Second {
			t.Errorf("expected position frozen at 3s, got %v", got)
		}

		select {
		case <-a.Done():
		case <-time.After(5 * time.Second):
			t.Fatal("pause should end the process")
		}
	})

	t.Run("Factory", func(t *testing.T) {
		audio := ProcessFactory("ffplay", []string{"-nodisp"}, logger)("https://p")
		pa, ok := audio.(*ProcessAudio)
		if !ok {
			t.Fatalf("expected *ProcessAudio, got %T", audio)
		}
		if pa.url != "https://p" || pa.args[0] != "-nodisp" {
			t.Errorf("unexpected audio %+v", pa)
		}
	})
}
