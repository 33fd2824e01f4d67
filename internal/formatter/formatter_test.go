package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/tunetype/internal/models"
	"github.com/desertthunder/tunetype/internal/shared"
	th "github.com/desertthunder/tunetype/internal/testing"
)

func sampleResults() *models.SearchResults {
	return &models.SearchResults{
		Tracks: []models.Track{
			{ID: "t1", Name: "Imagine", Artist: "John Lennon", PreviewURL: "https://cdn.example.com/1.mp3"},
			{ID: "t2", Name: "Imagine", Artist: "A Perfect Circle"},
		},
		Artists: []models.Artist{
			{ID: "a1", Name: "Imagine Dragons", Followers: 1200},
		},
	}
}

func sampleResult() Result {
	return Result{
		Group:       "클러버",
		Explanation: "You like it loud",
		URL:         "/result?group=%ED%81%B4%EB%9F%AC%EB%B2%84&explanation=You%20like%20it%20loud",
		Scores: []models.GroupScore{
			{Group: "클러버", Score: 0.8},
			{Group: "칠 가이", Score: 0.15},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", Text, false},
		{"text", Text, false},
		{" Markdown ", Markdown, false},
		{"md", Markdown, false},
		{"csv", CSV, false},
		{"JSON", JSON, false},
		{"yaml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				if !errors.Is(err, shared.ErrInvalidArgument) {
					t.Errorf("expected ErrInvalidArgument, got %v", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestSearchResults(t *testing.T) {
	t.Run("Text", func(t *testing.T) {
		data, err := SearchResults(sampleResults(), Text)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		output := string(data)
		for _, want := range []string{"Tracks:", "1. Imagine - John Lennon [t1]", "Artists:", "Imagine Dragons (1200 followers) [a1]"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected %q in output:\n%s", want, output)
			}
		}
	})

	t.Run("Text empty", func(t *testing.T) {
		data, _ := SearchResults(nil, Text)
		output := string(data)
		if !strings.Contains(output, "No tracks found.") || !strings.Contains(output, "No artists found.") {
			t.Errorf("expected placeholders, got:\n%s", output)
		}
	})

	t.Run("Markdown", func(t *testing.T) {
		data, _ := SearchResults(sampleResults(), Markdown)
		output := string(data)
		if !strings.Contains(output, "## Tracks") || !strings.Contains(output, "**Imagine Dragons**") {
			t.Errorf("unexpected markdown:\n%s", output)
		}
	})

	t.Run("CSV", func(t *testing.T) {
		data, err := SearchResults(sampleResults(), CSV)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
		if err != nil {
			t.Fatalf("invalid CSV: %v", err)
		}
		if len(records) != 4 {
			t.Fatalf("expected header and 3 rows, got %d", len(records))
		}
		if records[1][0] != "track" || records[3][0] != "artist" || records[3][4] != "1200" {
			t.Errorf("unexpected rows %v", records)
		}
	})

	t.Run("JSON", func(t *testing.T) {
		data, err := SearchResults(sampleResults(), JSON)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var decoded models.SearchResults
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(decoded.Tracks) != 2 || decoded.Artists[0].Name != "Imagine Dragons" {
			t.Errorf("unexpected decode %+v", decoded)
		}
	})
}

func TestTracks(t *testing.T) {
	tracks := sampleResults().Tracks

	t.Run("Text", func(t *testing.T) {
		data, _ := Tracks("Top tracks", tracks, Text)
		if !strings.HasPrefix(string(data), "Top tracks:\n") {
			t.Errorf("expected title, got:\n%s", data)
		}
	})

	t.Run("empty Markdown", func(t *testing.T) {
		data, _ := Tracks("Top tracks", nil, Markdown)
		if !strings.Contains(string(data), "_No tracks found for this artist._") {
			t.Errorf("expected placeholder, got:\n%s", data)
		}
	})

	t.Run("empty JSON is an array", func(t *testing.T) {
		data, _ := Tracks("x", nil, JSON)
		if strings.TrimSpace(string(data)) != "[]" {
			t.Errorf("expected [], got %s", data)
		}
	})

	t.Run("CSV", func(t *testing.T) {
		data, _ := Tracks("x", tracks, CSV)
		if !strings.HasPrefix(string(data), "ID,Name,Artist,Album Image,Preview\n") {
			t.Errorf("missing header:\n%s", data)
		}
	})
}

func TestPreviewLookup(t *testing.T) {
	tests := []struct {
		name   string
		p      Preview
		format Format
		want   string
	}{
		{"text available", Preview{Track: "Song", Artist: "Band", URL: "https://x/1.m4a", Available: true}, Text, "Song - Band: https://x/1.m4a\n"},
		{"text missing", Preview{Track: "Song", Artist: "Band"}, Text, "Song - Band: no preview\n"},
		{"markdown", Preview{Track: "Song", Artist: "Band", URL: "https://x/1.m4a", Available: true}, Markdown, "**Song** by Band: [preview](https://x/1.m4a)\n"},
		{"csv", Preview{Track: "Song", Artist: "Band"}, CSV, "Track,Artist,Available,URL\nSong,Band,false,\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := PreviewLookup(tt.p, tt.format)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("expected %q, got %q", tt.want, data)
			}
		})
	}
}

func TestClassificationResult(t *testing.T) {
	t.Run("Text", func(t *testing.T) {
		data, _ := ClassificationResult(sampleResult(), Text)
		output := string(data)
		for _, want := range []string{"Group: 클러버", "Explanation: You like it loud", "Result: /result?group=", "Scores:"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected %q in output:\n%s", want, output)
			}
		}
	})

	t.Run("Markdown uses group image", func(t *testing.T) {
		data, _ := ClassificationResult(sampleResult(), Markdown)
		output := string(data)
		if !strings.Contains(output, "![클러버](clubber.png)") || !strings.Contains(output, "| 클러버 | 0.80 |") {
			t.Errorf("unexpected markdown:\n%s", output)
		}
	})

	t.Run("CSV without scores", func(t *testing.T) {
		data, _ := ClassificationResult(Result{Group: "미식가"}, CSV)
		if string(data) != "Group,Score\n미식가,\n" {
			t.Errorf("unexpected CSV %q", data)
		}
	})

	t.Run("JSON", func(t *testing.T) {
		data, _ := ClassificationResult(Result{Group: "unknown"}, JSON)
		var decoded Result
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if decoded.Image != models.DefaultGroupImage {
			t.Errorf("expected default image, got %s", decoded.Image)
		}
	})
}

func TestWrite(t *testing.T) {
	t.Run("stdout", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Write(&buf, "", []byte("hello")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if buf.String() != "hello" {
			t.Errorf("expected hello, got %q", buf.String())
		}
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.csv")
		if err := Write(nil, path, []byte("a,b\n")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		th.AssertFileExists(t, path)
		if got := th.MustReadFile(t, path); got != "a,b\n" {
			t.Errorf("unexpected content %q", got)
		}
	})

	t.Run("writer failure", func(t *testing.T) {
		if err := Write(&th.FWriter{}, "", []byte("x")); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "out.txt")
		if err := Write(nil, path, []byte("x")); err == nil {
			t.Error("expected error")
		}
	})
}
