package versions

import (
	"encoding/json"
	"strings"
)

// Generation passes have emitted beat fields in two casing conventions over
// time (PascalCase "Beat_Number" and snake_case "beat_number"). The casing is
// normalised here, once, at the parse boundary; everything downstream sees
// the canonical snake_case struct.

type BeatItem struct {
	BeatNumber      int      `json:"beat_number"`
	Title           string   `json:"title"`
	SceneRef        string   `json:"scene_ref"`
	TimeRange       string   `json:"time_range"`
	Description     string   `json:"description"`
	Emotion         string   `json:"emotion"`
	ScreenplayLines []string `json:"screenplay_lines"`
}

// EmotionTags splits the comma-separated emotion field into trimmed tags.
func (b *BeatItem) EmotionTags() []string {
	if b.Emotion == "" {
		return nil
	}
	parts := strings.Split(b.Emotion, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func (b *BeatItem) UnmarshalJSON(data []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	pickInt(m, &b.BeatNumber, "beat_number", "Beat_Number")
	pickString(m, &b.Title, "title", "Title")
	pickString(m, &b.SceneRef, "scene_ref", "Scene_Ref")
	pickString(m, &b.TimeRange, "time_range", "Time_Range")
	pickString(m, &b.Description, "description", "Description")
	pickString(m, &b.Emotion, "emotion", "Emotion")
	pickStrings(m, &b.ScreenplayLines, "screenplay_lines", "Screenplay_lines")
	return nil
}

type ShotItem struct {
	Shot              string `json:"shot"`
	IntentTitle       string `json:"intent_title"`
	Intent            string `json:"intent"`
	Emotion           string `json:"emotion"`
	NarrativeFunction string `json:"narrative_function"`
	EstimatedDuration string `json:"estimated_duration"`
}

// BeatWithShots is the shots-document convention: each beat nests the shots
// broken down from it.
type BeatWithShots struct {
	BeatItem
	Shots []ShotItem `json:"shots"`
}

func (b *BeatWithShots) UnmarshalJSON(data []byte) error {
	if err := b.BeatItem.UnmarshalJSON(data); err != nil {
		return err
	}
	var wrap struct {
		Shots []ShotItem `json:"shots"`
	}
	if err := json.Unmarshal(data, &wrap); err != nil {
		return err
	}
	b.Shots = wrap.Shots
	return nil
}

// FlattenShots concatenates every beat's shots in beat order, shot order.
// Used for cross-beat counts and flat shot pools; the owning beats are left
// untouched.
func FlattenShots(beats []BeatWithShots) []ShotItem {
	var shots []ShotItem
	for _, b := range beats {
		shots = append(shots, b.Shots...)
	}
	return shots
}

// DecodeBeats decodes grouped items as beat objects. Items that fail to
// decode are skipped rather than failing the whole list.
func DecodeBeats(items []json.RawMessage) []BeatItem {
	beats := make([]BeatItem, 0, len(items))
	for _, it := range items {
		var b BeatItem
		if err := json.Unmarshal(it, &b); err != nil {
			continue
		}
		beats = append(beats, b)
	}
	return beats
}

// DecodeBeatsWithShots decodes grouped items as beats carrying nested shots.
func DecodeBeatsWithShots(items []json.RawMessage) []BeatWithShots {
	beats := make([]BeatWithShots, 0, len(items))
	for _, it := range items {
		var b BeatWithShots
		if err := json.Unmarshal(it, &b); err != nil {
			continue
		}
		beats = append(beats, b)
	}
	return beats
}

func pickString(m map[string]json.RawMessage, dst *string, keys ...string) {
	for _, k := range keys {
		if raw, ok := m[k]; ok {
			var s string
			if err := json.Unmarshal(raw, &s); err == nil {
				*dst = s
				return
			}
		}
	}
}

func pickInt(m map[string]json.RawMessage, dst *int, keys ...string) {
	for _, k := range keys {
		if raw, ok := m[k]; ok {
			var n int
			if err := json.Unmarshal(raw, &n); err == nil {
				*dst = n
				return
			}
		}
	}
}

func pickStrings(m map[string]json.RawMessage, dst *[]string, keys ...string) {
	for _, k := range keys {
		if raw, ok := m[k]; ok {
			var ss []string
			if err := json.Unmarshal(raw, &ss); err == nil {
				*dst = ss
				return
			}
		}
	}
}
