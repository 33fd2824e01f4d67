// package formatter renders catalog results, previews and classification results as text, Markdown, CSV or JSON
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/desertthunder/tunetype/internal/models"
	"github.com/desertthunder/tunetype/internal/shared"
)

// Format is an output format accepted by --format.
type Format string

const (
	Text     Format = "text"
	Markdown Format = "markdown"
	CSV      Format = "csv"
	JSON     Format = "json"
)

// ParseFormat maps a flag value to a [Format]. Empty means [Text].
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return Text, nil
	case Text, Markdown, CSV, JSON:
		return f, nil
	case "md":
		return Markdown, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q (want text, markdown, csv or json)", shared.ErrInvalidArgument, s)
	}
}

// Result is a classification as shown to the user.
type Result struct {
	Group       string              `json:"group"`
	Explanation string              `json:"explanation"`
	URL         string              `json:"url,omitempty"`
	Image       string              `json:"image"`
	Scores      []models.GroupScore `json:"scores,omitempty"`
}

// Preview is the outcome of a preview lookup for one track.
type Preview struct {
	Track     string `json:"track"`
	Artist    string `json:"artist"`
	URL       string `json:"url"`
	Available bool   `json:"available"`
}

// SearchResults renders both panels of a search.
func SearchResults(results *models.SearchResults, f Format) ([]byte, error) {
	if results == nil {
		results = &models.SearchResults{}
	}

	switch f {
	case JSON:
		return shared.MarshalJSON(results, true)
	case CSV:
		rows := [][]string{{"Kind", "ID", "Name", "Artist", "Followers", "Preview"}}
		for _, t := range results.Tracks {
			rows = append(rows, []string{models.KindTrack.String(), t.ID, t.Name, t.Artist, "", t.PreviewURL})
		}
		for _, a := range results.Artists {
			rows = append(rows, []string{models.KindArtist.String(), a.ID, a.Name, "", fmt.Sprint(a.Followers), ""})
		}
		return writeCSV(rows)
	case Markdown:
		var buf bytes.Buffer
		buf.WriteString("## Tracks\n\n")
		writeMarkdownTracks(&buf, results.Tracks, "No tracks found.")
		buf.WriteString("\n## Artists\n\n")
		if len(results.Artists) == 0 {
			buf.WriteString("_No artists found._\n")
		}
		for i, a := range results.Artists {
			fmt.Fprintf(&buf, "%d. **%s** (%d followers) `%s`\n", i+1, a.Name, a.Followers, a.ID)
		}
		return buf.Bytes(), nil
	default:
		var buf bytes.Buffer
		buf.WriteString("Tracks:\n")
		writeTextTracks(&buf, results.Tracks, "No tracks found.")
		buf.WriteString("\nArtists:\n")
		if len(results.Artists) == 0 {
			buf.WriteString("  No artists found.\n")
		}
		for i, a := range results.Artists {
			fmt.Fprintf(&buf, "  %d. %s (%d followers) [%s]\n", i+1, a.Name, a.Followers, a.ID)
		}
		return buf.Bytes(), nil
	}
}

// Tracks renders a titled track list, such as an artist's top tracks.
func Tracks(title string, tracks []models.Track, f Format) ([]byte, error) {
	const empty = "No tracks found for this artist."

	switch f {
	case JSON:
		if tracks == nil {
			tracks = []models.Track{}
		}
		return shared.MarshalJSON(tracks, true)
	case CSV:
		rows := [][]string{{"ID", "Name", "Artist", "Album Image", "Preview"}}
		for _, t := range tracks {
			rows = append(rows, []string{t.ID, t.Name, t.Artist, t.AlbumImage, t.PreviewURL})
		}
		return writeCSV(rows)
	case Markdown:
		var buf bytes.Buffer
		fmt.Fprintf(&buf, "# %s\n\n", title)
		writeMarkdownTracks(&buf, tracks, empty)
		return buf.Bytes(), nil
	default:
		var buf bytes.Buffer
		fmt.Fprintf(&buf, "%s:\n", title)
		writeTextTracks(&buf, tracks, empty)
		return buf.Bytes(), nil
	}
}

// PreviewLookup renders one preview lookup.
func PreviewLookup(p Preview, f Format) ([]byte, error) {
	switch f {
	case JSON:
		return shared.MarshalJSON(p, true)
	case CSV:
		return writeCSV([][]string{
			{"Track", "Artist", "Available", "URL"},
			{p.Track, p.Artist, fmt.Sprint(p.Available), p.URL},
		})
	case Markdown:
		if !p.Available {
			return []byte(fmt.Sprintf("**%s** by %s: _no preview_\n", p.Track, p.Artist)), nil
		}
		return []byte(fmt.Sprintf("**%s** by %s: [preview](%s)\n", p.Track, p.Artist, p.URL)), nil
	default:
		if !p.Available {
			return []byte(fmt.Sprintf("%s - %s: no preview\n", p.Track, p.Artist)), nil
		}
		return []byte(fmt.Sprintf("%s - %s: %s\n", p.Track, p.Artist, p.URL)), nil
	}
}

// ClassificationResult renders a group, its explanation and any scores.
func ClassificationResult(r Result, f Format) ([]byte, error) {
	if r.Image == "" {
		r.Image = models.GroupImage(r.Group)
	}

	switch f {
	case JSON:
		return shared.MarshalJSON(r, true)
	case CSV:
		rows := [][]string{{"Group", "Score"}}
		if len(r.Scores) == 0 {
			rows = append(rows, []string{r.Group, ""})
		}
		for _, s := range r.Scores {
			rows = append(rows, []string{s.Group, fmt.Sprintf("%.4f", s.Score)})
		}
		return writeCSV(rows)
	case Markdown:
		var buf bytes.Buffer
		fmt.Fprintf(&buf, "# %s\n\n", r.Group)
		fmt.Fprintf(&buf, "![%s](%s)\n\n", r.Group, r.Image)
		if r.Explanation != "" {
			fmt.Fprintf(&buf, "%s\n\n", r.Explanation)
		}
		if r.URL != "" {
			fmt.Fprintf(&buf, "**Result**: %s\n\n", r.URL)
		}
		if len(r.Scores) > 0 {
			buf.WriteString("| Group | Score |\n|---|---|\n")
			for _, s := range r.Scores {
				fmt.Fprintf(&buf, "| %s | %.2f |\n", s.Group, s.Score)
			}
		}
		return buf.Bytes(), nil
	default:
		var buf bytes.Buffer
		fmt.Fprintf(&buf, "Group: %s\n", r.Group)
		if r.Explanation != "" {
			fmt.Fprintf(&buf, "Explanation: %s\n", r.Explanation)
		}
		if r.URL != "" {
			fmt.Fprintf(&buf, "Result: %s\n", r.URL)
		}
		if len(r.Scores) > 0 {
			buf.WriteString("\nScores:\n")
			for _, s := range r.Scores {
				fmt.Fprintf(&buf, "  %-12s %.2f\n", s.Group, s.Score)
			}
		}
		return buf.Bytes(), nil
	}
}

// Write sends data to path, or to w when path is empty.
func Write(w io.Writer, path string, data []byte) error {
	if path == "" {
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func writeTextTracks(buf *bytes.Buffer, tracks []models.Track, empty string) {
	if len(tracks) == 0 {
		fmt.Fprintf(buf, "  %s\n", empty)
		return
	}
	for i, t := range tracks {
		fmt.Fprintf(buf, "  %d. %s [%s]\n", i+1, t.DisplayName(), t.ID)
	}
}

func writeMarkdownTracks(buf *bytes.Buffer, tracks []models.Track, empty string) {
	if len(tracks) == 0 {
		fmt.Fprintf(buf, "_%s_\n", empty)
		return
	}
	for i, t := range tracks {
		fmt.Fprintf(buf, "%d. %s `%s`\n", i+1, t.DisplayName(), t.ID)
	}
}

func writeCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}
