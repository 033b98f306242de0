package versions

import (
	"encoding/json"
	"sort"

	"github.com/google/uuid"
)

// VersionDoc is the flat record shape GroupVersions consumes: one stored
// content document plus its version flags.
type VersionDoc struct {
	ID        uuid.UUID
	Kind      Kind
	Content   string
	VersionNo int
	Edited    bool
	Selected  bool
}

// GroupedVersion is the derived, display-ready view of one version. It is
// recomputed from fresh records on every fetch and never persisted. DocID
// round-trips to the source record so a later select command can target it.
type GroupedVersion struct {
	VersionNo int               `json:"versionNo"`
	Edited    bool              `json:"edited"`
	Selected  bool              `json:"selected"`
	Items     []json.RawMessage `json:"items"`
	DocID     uuid.UUID         `json:"docId"`
}

// GroupVersions turns a flat document list into an ordered version list.
// The selected version sorts first regardless of its number; the remaining
// versions sort by versionNo descending. The sort is stable, so equal keys
// keep their input order and repeated calls over identical input produce
// identical output. A document whose content fails to parse still appears,
// with zero items; corrupt content must never remove a version from the
// list or break its siblings.
func GroupVersions(docs []VersionDoc) []GroupedVersion {
	grouped := make([]GroupedVersion, 0, len(docs))
	for _, doc := range docs {
		grouped = append(grouped, GroupedVersion{
			VersionNo: doc.VersionNo,
			Edited:    doc.Edited,
			Selected:  doc.Selected,
			Items:     ParseItems(doc.Kind, doc.Content),
			DocID:     doc.ID,
		})
	}
	sort.SliceStable(grouped, func(i, j int) bool {
		if grouped[i].Selected != grouped[j].Selected {
			return grouped[i].Selected
		}
		return grouped[i].VersionNo > grouped[j].VersionNo
	})
	return grouped
}

// SelectedVersion returns the first version flagged selected, or nil when
// none is (a part with no selection yet).
func SelectedVersion(groups []GroupedVersion) *GroupedVersion {
	for i := range groups {
		if groups[i].Selected {
			return &groups[i]
		}
	}
	return nil
}

// ParseItems parses one document's content into its displayable items.
//
// Accepted payload shapes per kind:
//   - beat:       bare array of beat objects, or {"beats": [...]}
//   - shot:       {"beats": [...]} where each beat nests its shots, or a bare array
//   - storyboard: bare array of panel objects
//
// Any other object parses as a single-element wrap so malformed or
// single-entity payloads still render as one item. Unparsable content
// degrades to an empty item list; this never returns an error.
func ParseItems(kind Kind, content string) []json.RawMessage {
	if content == "" {
		return []json.RawMessage{}
	}
	raw := []byte(content)
	if !json.Valid(raw) {
		return []json.RawMessage{}
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err == nil {
		return arr
	}
	if kind == KindBeat || kind == KindShot {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err == nil {
			if beatsRaw, ok := obj["beats"]; ok {
				var beats []json.RawMessage
				if err := json.Unmarshal(beatsRaw, &beats); err == nil {
					return beats
				}
			}
		}
	}
	return []json.RawMessage{json.RawMessage(content)}
}
