package versions

import (
	"encoding/json"
	"testing"
)

func TestBeatItem_AcceptsBothCasings(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{
			name: "pascal_case",
			raw: `{"Beat_Number":3,"Title":"The Reveal","Scene_Ref":"S2","Time_Range":"00:10-00:45",
				"Description":"Aria finds the letter","Emotion":"dread, hope","Screenplay_lines":["ARIA: It can't be."]}`,
		},
		{
			name: "snake_case",
			raw: `{"beat_number":3,"title":"The Reveal","scene_ref":"S2","time_range":"00:10-00:45",
				"description":"Aria finds the letter","emotion":"dread, hope","screenplay_lines":["ARIA: It can't be."]}`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var b BeatItem
			if err := json.Unmarshal([]byte(tc.raw), &b); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if b.BeatNumber != 3 {
				t.Fatalf("beat_number = %d, want 3", b.BeatNumber)
			}
			if b.Title != "The Reveal" {
				t.Fatalf("title = %q", b.Title)
			}
			if b.SceneRef != "S2" || b.TimeRange != "00:10-00:45" {
				t.Fatalf("scene/time = %q/%q", b.SceneRef, b.TimeRange)
			}
			if len(b.ScreenplayLines) != 1 {
				t.Fatalf("screenplay_lines = %v", b.ScreenplayLines)
			}
		})
	}
}

func TestBeatItem_EmotionTags(t *testing.T) {
	cases := []struct {
		name    string
		emotion string
		want    []string
	}{
		{name: "multi", emotion: "dread, hope , awe", want: []string{"dread", "hope", "awe"}},
		{name: "single", emotion: "calm", want: []string{"calm"}},
		{name: "empty", emotion: "", want: nil},
		{name: "trailing_comma", emotion: "calm,", want: []string{"calm"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := BeatItem{Emotion: tc.emotion}
			got := b.EmotionTags()
			if len(got) != len(tc.want) {
				t.Fatalf("EmotionTags(%q) = %v, want %v", tc.emotion, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("EmotionTags(%q) = %v, want %v", tc.emotion, got, tc.want)
				}
			}
		})
	}
}

func TestFlattenShots_PreservesOrder(t *testing.T) {
	s1 := ShotItem{Shot: "1A"}
	s2 := ShotItem{Shot: "1B"}
	s3 := ShotItem{Shot: "2A"}
	beats := []BeatWithShots{
		{Shots: []ShotItem{s1, s2}},
		{Shots: []ShotItem{s3}},
	}
	got := FlattenShots(beats)
	if len(got) != 3 {
		t.Fatalf("expected 3 shots, got %d", len(got))
	}
	for i, want := range []string{"1A", "1B", "2A"} {
		if got[i].Shot != want {
			t.Fatalf("position %d: got %q, want %q", i, got[i].Shot, want)
		}
	}
}

func TestFlattenShots_EmptyAndNilBeats(t *testing.T) {
	if got := FlattenShots(nil); len(got) != 0 {
		t.Fatalf("expected no shots, got %d", len(got))
	}
	beats := []BeatWithShots{{}, {Shots: []ShotItem{{Shot: "3A"}}}}
	got := FlattenShots(beats)
	if len(got) != 1 || got[0].Shot != "3A" {
		t.Fatalf("beats without shots should contribute nothing: %v", got)
	}
}

func TestDecodeBeatsWithShots(t *testing.T) {
	items := ParseItems(KindShot, `{"beats":[
		{"Beat_Number":1,"Title":"Opening","shots":[
			{"shot":"1A","intent_title":"Establish","estimated_duration":"4s"},
			{"shot":"1B","intent_title":"Close in","estimated_duration":"2s"}
		]},
		{"beat_number":2,"title":"Turn","shots":[{"shot":"2A"}]}
	]}`)
	beats := DecodeBeatsWithShots(items)
	if len(beats) != 2 {
		t.Fatalf("expected 2 beats, got %d", len(beats))
	}
	if beats[0].Title != "Opening" || beats[1].Title != "Turn" {
		t.Fatalf("casing normalisation failed: %q / %q", beats[0].Title, beats[1].Title)
	}
	if got := len(FlattenShots(beats)); got != 3 {
		t.Fatalf("expected 3 shots across beats, got %d", got)
	}
}

func TestDecodeBeats_SkipsBadItems(t *testing.T) {
	items := []json.RawMessage{
		json.RawMessage(`{"beat_number":1,"title":"ok"}`),
		json.RawMessage(`"just a string"`),
		json.RawMessage(`{"beat_number":2,"title":"also ok"}`),
	}
	beats := DecodeBeats(items)
	if len(beats) != 2 {
		t.Fatalf("expected bad item skipped, got %d beats", len(beats))
	}
}
