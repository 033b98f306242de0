package services

import (
	"testing"

	"github.com/google/uuid"

	"github.com/loqostudio/loqo-backend/internal/types"
)

func TestGroupRecords(t *testing.T) {
	t.Run("Maps Rows And Orders Selected First", func(t *testing.T) {
		selectedID := uuid.New()
		records := []*types.ContentVersion{
			{ID: uuid.New(), Kind: "beat", Content: `[{"beat_number":1}]`, VersionNo: 3},
			{ID: selectedID, Kind: "beat", Content: `[{"beat_number":1},{"beat_number":2}]`, VersionNo: 1, Selected: true},
			{ID: uuid.New(), Kind: "beat", Content: `[]`, VersionNo: 2, Edited: true},
		}
		groups := GroupRecords(records)
		if len(groups) != 3 {
			t.Fatalf("expected 3 groups, got %d", len(groups))
		}
		if groups[0].DocID != selectedID || !groups[0].Selected {
			t.Errorf("expected selected v1 first, got %+v", groups[0])
		}
		if groups[1].VersionNo != 3 || groups[2].VersionNo != 2 {
			t.Errorf("expected remaining versions descending, got %d then %d", groups[1].VersionNo, groups[2].VersionNo)
		}
		if len(groups[0].Items) != 2 {
			t.Errorf("expected 2 items in selected version, got %d", len(groups[0].Items))
		}
		if !groups[2].Edited {
			t.Errorf("expected edited flag carried through, got %+v", groups[2])
		}
	})

	t.Run("Skips Unknown Kinds", func(t *testing.T) {
		records := []*types.ContentVersion{
			{ID: uuid.New(), Kind: "beat", Content: `[]`, VersionNo: 1},
			{ID: uuid.New(), Kind: "scribble", Content: `[]`, VersionNo: 1},
		}
		groups := GroupRecords(records)
		if len(groups) != 1 {
			t.Fatalf("expected unknown kind to be skipped, got %d groups", len(groups))
		}
	})

	t.Run("Corrupt Content Keeps The Version", func(t *testing.T) {
		records := []*types.ContentVersion{
			{ID: uuid.New(), Kind: "shot", Content: `{{{not json`, VersionNo: 1, Selected: true},
		}
		groups := GroupRecords(records)
		if len(groups) != 1 {
			t.Fatalf("expected 1 group, got %d", len(groups))
		}
		if len(groups[0].Items) != 0 {
			t.Errorf("expected zero items for corrupt content, got %d", len(groups[0].Items))
		}
	})

	t.Run("Empty Input", func(t *testing.T) {
		if groups := GroupRecords(nil); len(groups) != 0 {
			t.Errorf("expected empty output, got %d", len(groups))
		}
	})
}
