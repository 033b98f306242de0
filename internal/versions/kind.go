// Package versions implements the version-grouping model for AI-generated
// part content. Every generation pass persists one document holding all items
// of one kind (beats, shots, or storyboard panels); this package turns the
// flat document list into an ordered, display-ready version list, flattens
// the nested beat→shot structure for counting, and groups media items by
// their virtual folder paths.
package versions

import "fmt"

// Kind tags a content document's payload shape. The tag is stored alongside
// the document and carried on every parse call; payloads are never
// shape-sniffed to decide their kind.
type Kind string

const (
	KindBeat       Kind = "beat"
	KindShot       Kind = "shot"
	KindStoryboard Kind = "storyboard"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindBeat, KindShot, KindStoryboard:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown content kind %q", s)
}

func (k Kind) Valid() bool {
	_, err := ParseKind(string(k))
	return err == nil
}
