package tasks

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/tunetype/internal/models"
	tu "github.com/desertthunder/tunetype/internal/testing"
)

func TestPreviewResolver(t *testing.T) {
	t.Run("Resolve Uses Track And Artist Term", func(t *testing.T) {
		lookup := &tu.MockLookup{URLs: map[string]string{"Imagine John Lennon": "https://itunes/imagine.m4a"}}
		resolver := NewPreviewResolver(lookup, nil)

		got := resolver.Resolve(context.Background(), "Imagine", "John Lennon")
		if got != "https://itunes/imagine.m4a" {
			t.Errorf("unexpected url %q", got)
		}
		if len(lookup.Terms) != 1 || lookup.Terms[0] != "Imagine John Lennon" {
			t.Errorf("unexpected terms %v", lookup.Terms)
		}
	})

	t.Run("Resolve Logs Failures", func(t *testing.T) {
		var buf bytes.Buffer
		lookup := &tu.MockLookup{Err: errors.New("boom")}
		resolver := NewPreviewResolver(lookup, log.New(&buf))

		if got := resolver.Resolve(context.Background(), "A", "B"); got != "" {
			t.Errorf("expected empty url, got %q", got)
		}
		if !strings.Contains(buf.String(), "preview lookup failed") {
			t.Errorf("expected failure to be logged, got %q", buf.String())
		}
	})

	t.Run("Resolve Without Lookup", func(t *testing.T) {
		if got := NewPreviewResolver(nil, nil).Resolve(context.Background(), "A", "B"); got != "" {
			t.Errorf("expected empty url, got %q", got)
		}
	})
}

func TestChoosePreviewURL(t *testing.T) {
	tests := []struct {
		name     string
		resolved string
		catalog  string
		want     string
	}{
		{name: "lookup wins", resolved: "lookup", catalog: "catalog", want: "lookup"},
		{name: "catalog fallback", resolved: "", catalog: "catalog", want: "catalog"},
		{name: "nothing playable", resolved: "", catalog: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChoosePreviewURL(tt.resolved, tt.catalog); got != tt.want {
				t.Errorf("ChoosePreviewURL(%q, %q) = %q, want %q", tt.resolved, tt.catalog, got, tt.want)
			}
		})
	}
}

func TestResolveAll(t *testing.T) {
	tracks := []models.Track{
		{ID: "1", Name: "A", Artist: "X"},
		{ID: "2", Name: "B", Artist: "Y", PreviewURL: "catalog-b"},
		{ID: "3", Name: "C", Artist: "Z"},
	}
	lookup := &tu.MockLookup{URLs: map[string]string{"A X": "lookup-a", "B Y": "lookup-b"}}
	progress := make(chan ProgressUpdate, 10)

	urls := NewPreviewResolver(lookup, nil).ResolveAll(context.Background(), tracks, 2, progress)
	close(progress)

	want := []string{"lookup-a", "lookup-b", ""}
	for i := range want {
		if urls[i] != want[i] {
			t.Errorf("expected %q at %d, got %q", want[i], i, urls[i])
		}
	}

	count := 0
	for update := range progress {
		count++
		if update.Phase != ResolvePreviews || update.Total != 3 {
			t.Errorf("unexpected update %+v", update)
		}
	}
	if count != 3 {
		t.Errorf("expected 3 progress updates, got %d", count)
	}

	t.Run("Empty Input", func(t *testing.T) {
		if urls := NewPreviewResolver(lookup, nil).ResolveAll(context.Background(), nil, 2, nil); len(urls) != 0 {
			t.Errorf("expected no urls, got %v", urls)
		}
	})

	t.Run("Cancelled Context Keeps Catalog URL", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		urls := NewPreviewResolver(lookup, nil).ResolveAll(ctx, tracks, 1, nil)
		if urls[1] != "catalog-b" || urls[0] != "" {
			t.Errorf("unexpected urls %v", urls)
		}
	})
}
