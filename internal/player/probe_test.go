package player

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/desertthunder/tunetype/internal/shared"
)

// mpegFrames builds n silent MPEG-1 Layer III frames at 128 kbps / 44.1 kHz.
func mpegFrames(n int) []byte {
	const frameLen = 144 * 128000 / 44100
	frame := make([]byte, frameLen)
	copy(frame, []byte{0xFF, 0xFB, 0x90, 0x64})
	return bytes.Repeat(frame, n)
}

func TestDuration(t *testing.T) {
	t.Run("MPEG Frames", func(t *testing.T) {
		got, err := Duration(bytes.NewReader(mpegFrames(40)))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		// 40 frames * 1152 samples / 44100 Hz ~= 1.045s
		if got < time.Second || got > 1100*time.Millisecond {
			t.Errorf("unexpected duration %v", got)
		}
	})

	t.Run("MP4 Container", func(t *testing.T) {
		data := append([]byte{0, 0, 0, 0x20, 'f', 't', 'y', 'p', 'M', '4', 'A', ' '}, make([]byte, 256)...)
		_, err := Duration(bytes.NewReader(data))
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("expected ErrUnsupportedFormat, got %v", err)
		}
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := Duration(bytes.NewReader(bytes.Repeat([]byte("not audio "), 40)))
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("expected ErrUnsupportedFormat, got %v", err)
		}
	})
}

func TestProbe(t *testing.T) {
	t.Run("Downloads And Measures", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "audio/mpeg")
			w.Write(mpegFrames(40))
		}))
		defer server.Close()

		got, err := NewProbe(nil, 0).Duration(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got < time.Second {
			t.Errorf("unexpected duration %v", got)
		}
	})

	t.Run("Too Large", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write(mpegFrames(40))
		}))
		defer server.Close()

		if _, err := NewProbe(nil, 1024).Duration(context.Background(), server.URL); err == nil {
			t.Error("expected size error")
		}
	})

	t.Run("Status Error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		_, err := NewProbe(nil, 0).Duration(context.Background(), server.URL)
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})
}
