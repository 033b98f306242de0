package versions

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func beatDoc(versionNo int, selected bool, content string) VersionDoc {
	return VersionDoc{
		ID:        uuid.New(),
		Kind:      KindBeat,
		Content:   content,
		VersionNo: versionNo,
		Selected:  selected,
	}
}

func TestGroupVersions_SelectedFirst(t *testing.T) {
	docs := []VersionDoc{
		beatDoc(1, false, `[]`),
		beatDoc(2, true, `[]`),
		beatDoc(3, false, `[]`),
	}
	got := GroupVersions(docs)
	if len(got) != 3 {
		t.Fatalf("expected 3 versions, got %d", len(got))
	}
	wantOrder := []int{2, 3, 1}
	for i, want := range wantOrder {
		if got[i].VersionNo != want {
			t.Fatalf("position %d: got v%d, want v%d", i, got[i].VersionNo, want)
		}
	}
	if !got[0].Selected {
		t.Fatalf("expected selected version first")
	}
}

func TestGroupVersions_DescendingWhenNoneSelected(t *testing.T) {
	docs := []VersionDoc{
		beatDoc(1, false, `[]`),
		beatDoc(3, false, `[]`),
		beatDoc(2, false, `[]`),
	}
	got := GroupVersions(docs)
	wantOrder := []int{3, 2, 1}
	for i, want := range wantOrder {
		if got[i].VersionNo != want {
			t.Fatalf("position %d: got v%d, want v%d", i, got[i].VersionNo, want)
		}
	}
}

func TestGroupVersions_TiesKeepInputOrder(t *testing.T) {
	first := beatDoc(2, false, `[{"tag":"a"}]`)
	second := beatDoc(2, false, `[{"tag":"b"}]`)
	got := GroupVersions([]VersionDoc{first, second})
	if got[0].DocID != first.ID || got[1].DocID != second.ID {
		t.Fatalf("equal versionNo should preserve input order")
	}
}

func TestGroupVersions_UnparsableContentDegrades(t *testing.T) {
	broken := beatDoc(2, false, `not json`)
	valid := beatDoc(1, false, `[{"beat_number":1}]`)
	got := GroupVersions([]VersionDoc{broken, valid})
	if len(got) != 2 {
		t.Fatalf("broken content must not drop the version: got %d versions", len(got))
	}
	if len(got[0].Items) != 0 {
		t.Fatalf("broken content should yield zero items, got %d", len(got[0].Items))
	}
	if len(got[1].Items) != 1 {
		t.Fatalf("sibling version should keep its items, got %d", len(got[1].Items))
	}
}

func TestGroupVersions_EmptyInput(t *testing.T) {
	if got := GroupVersions(nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %d entries", len(got))
	}
}

func TestGroupVersions_MultipleSelectedClusterFirst(t *testing.T) {
	docs := []VersionDoc{
		beatDoc(1, false, `[]`),
		beatDoc(2, true, `[]`),
		beatDoc(3, true, `[]`),
	}
	got := GroupVersions(docs)
	if !got[0].Selected || !got[1].Selected {
		t.Fatalf("all selected-flagged versions should cluster at the front")
	}
	if got[2].Selected {
		t.Fatalf("non-selected version should sort after selected ones")
	}
}

func TestSelectedVersion(t *testing.T) {
	docs := []VersionDoc{
		beatDoc(1, false, `[]`),
		beatDoc(2, true, `[{"x":1}]`),
	}
	got := SelectedVersion(GroupVersions(docs))
	if got == nil {
		t.Fatalf("expected a selected version")
	}
	if got.VersionNo != 2 {
		t.Fatalf("got v%d, want v2", got.VersionNo)
	}
	if got = SelectedVersion(GroupVersions([]VersionDoc{beatDoc(1, false, `[]`)})); got != nil {
		t.Fatalf("no selection yet should return nil, got v%d", got.VersionNo)
	}
}

func TestParseItems(t *testing.T) {
	cases := []struct {
		name    string
		kind    Kind
		content string
		want    int
	}{
		{
			name:    "bare_array",
			kind:    KindStoryboard,
			content: `[{"panel":1},{"panel":2},{"panel":3}]`,
			want:    3,
		},
		{
			name:    "beats_key_extraction",
			kind:    KindShot,
			content: `{"beats":[{"x":1},{"x":2}]}`,
			want:    2,
		},
		{
			name:    "wrap_single_object",
			kind:    KindBeat,
			content: `{"a":1}`,
			want:    1,
		},
		{
			name:    "not_json",
			kind:    KindBeat,
			content: `not json`,
			want:    0,
		},
		{
			name:    "empty_string",
			kind:    KindBeat,
			content: ``,
			want:    0,
		},
		{
			name:    "storyboard_object_has_no_beats_fallback",
			kind:    KindStoryboard,
			content: `{"beats":[{"x":1},{"x":2}]}`,
			want:    1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseItems(tc.kind, tc.content)
			if len(got) != tc.want {
				t.Fatalf("ParseItems(%s, %q) = %d items, want %d", tc.kind, tc.content, len(got), tc.want)
			}
		})
	}
}

func TestParseItems_WrapKeepsPayload(t *testing.T) {
	got := ParseItems(KindBeat, `{"a":1}`)
	if len(got) != 1 {
		t.Fatalf("expected single wrapped item, got %d", len(got))
	}
	var obj map[string]int
	if err := json.Unmarshal(got[0], &obj); err != nil {
		t.Fatalf("wrapped item should round-trip: %v", err)
	}
	if obj["a"] != 1 {
		t.Fatalf("wrapped item lost its payload: %v", obj)
	}
}

func TestParseKind(t *testing.T) {
	for _, valid := range []string{"beat", "shot", "storyboard"} {
		if _, err := ParseKind(valid); err != nil {
			t.Fatalf("ParseKind(%q) unexpected error: %v", valid, err)
		}
	}
	if _, err := ParseKind("beats"); err == nil {
		t.Fatalf("ParseKind should reject unknown kinds")
	}
}
