package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/desertthunder/tunetype/internal/shared"
)

// AnalysisKey is the fixed store key of the classification payload.
const AnalysisKey = "analysisData"

// AnalysisPayload is the classifier's opaque analysis document.
//
// Only final_group_scores is interpreted; everything else is carried through untouched.
type AnalysisPayload json.RawMessage

// MarshalJSON keeps the raw document; an empty payload encodes as null.
func (p AnalysisPayload) MarshalJSON() ([]byte, error) {
	if len(p) == 0 {
		return []byte("null"), nil
	}
	return p, nil
}

// UnmarshalJSON copies the raw document.
func (p *AnalysisPayload) UnmarshalJSON(data []byte) error {
	if p == nil {
		return fmt.Errorf("models: UnmarshalJSON on nil AnalysisPayload")
	}
	*p = append((*p)[0:0], data...)
	return nil
}

// GroupScore is one entry of final_group_scores.
type GroupScore struct {
	Group string  `json:"group"`
	Score float64 `json:"score"`
}

// Empty reports whether the classifier sent no analysis document at all.
func (p AnalysisPayload) Empty() bool {
	trimmed := bytes.TrimSpace(p)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// Scores decodes final_group_scores, highest first and ties by name.
//
// A payload without final_group_scores returns [shared.ErrPayloadNotFound].
func (p AnalysisPayload) Scores() ([]GroupScore, error) {
	if p.Empty() {
		return nil, fmt.Errorf("%w: empty analysis payload", shared.ErrPayloadNotFound)
	}

	var doc struct {
		FinalGroupScores map[string]float64 `json:"final_group_scores"`
	}
	if err := json.Unmarshal(p, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode analysis payload: %w", err)
	}
	if doc.FinalGroupScores == nil {
		return nil, fmt.Errorf("%w: no final_group_scores", shared.ErrPayloadNotFound)
	}

	scores := make([]GroupScore, 0, len(doc.FinalGroupScores))
	for group, score := range doc.FinalGroupScores {
		scores = append(scores, GroupScore{Group: group, Score: score})
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Group < scores[j].Group
	})
	return scores, nil
}

// ClassificationResult is the response of POST /mbti.
type ClassificationResult struct {
	Group        string          `json:"group"`
	Explanation  string          `json:"explanation"`
	AnalysisData AnalysisPayload `json:"analysisData"`
}

// ClassificationRequest is the body of POST /mbti.
type ClassificationRequest struct {
	TrackIDs []string `json:"track_ids"`
}

// groupImages maps each known group to its illustration.
var groupImages = map[string]string{
	"칠 가이":    "chill_guy.png",
	"미식가":     "gourmet.png",
	"BGM 마스터": "bgm_master.png",
	"클러버":     "clubber.png",
	"사운드 실험가": "sound_explorer.png",
	"클래식 수호자": "classic_guardian.png",
}

// DefaultGroupImage is shown for groups outside the known set.
const DefaultGroupImage = "default.png"

// GroupImage returns the illustration file name for group.
func GroupImage(group string) string {
	if img, ok := groupImages[group]; ok {
		return img
	}
	return DefaultGroupImage
}
