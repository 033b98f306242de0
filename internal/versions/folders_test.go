package versions

import (
	"testing"

	"github.com/google/uuid"
)

func ref(name string) MediaRef {
	return MediaRef{ID: uuid.New(), Name: name}
}

func folderNames(folders []MediaFolder) []string {
	names := make([]string, len(folders))
	for i, f := range folders {
		names[i] = f.Folder
	}
	return names
}

func TestGroupByShotFolder_NumericOrder(t *testing.T) {
	items := []MediaRef{
		ref("Shot_10/1.png"),
		ref("Shot_2/1.png"),
		ref("Unsorted/1.png"),
		ref("Shot_2/2.png"),
		ref("loose.png"),
	}
	folders := GroupByShotFolder(items)
	got := folderNames(folders)
	// "Unsorted/1.png" has Unsorted as a real path prefix and "loose.png" has
	// no prefix at all; both derive the same folder name, so they merge.
	want := []string{"Shot_2", "Shot_10", "Unsorted"}
	if len(got) != len(want) {
		t.Fatalf("folders = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("folders = %v, want %v", got, want)
		}
	}
	if len(folders[0].Items) != 2 {
		t.Fatalf("Shot_2 should hold 2 items, got %d", len(folders[0].Items))
	}
	if len(folders[2].Items) != 2 {
		t.Fatalf("Unsorted should hold 2 items, got %d", len(folders[2].Items))
	}
}

func TestGroupByShotFolder_NoDigitsSortsLast(t *testing.T) {
	items := []MediaRef{
		ref("Extras/1.png"),
		ref("Shot_1/1.png"),
	}
	got := folderNames(GroupByShotFolder(items))
	if got[0] != "Shot_1" || got[1] != "Extras" {
		t.Fatalf("unparsable folder should sort last: %v", got)
	}
}

func TestGroupByCharacterFolder(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "full_path", in: "Characters/Aria/CU-MCU/1.png", want: "Aria/CU-MCU"},
		{name: "two_segments", in: "Aria/1.png", want: "Aria"},
		{name: "bare_file", in: "1.png", want: "Unsorted"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			folders := GroupByCharacterFolder([]MediaRef{ref(tc.in)})
			if len(folders) != 1 || folders[0].Folder != tc.want {
				t.Fatalf("folder for %q = %v, want %q", tc.in, folderNames(folders), tc.want)
			}
		})
	}
}

func TestGroupByCharacterFolder_Lexicographic(t *testing.T) {
	items := []MediaRef{
		ref("Characters/Mira/Full_Body/1.png"),
		ref("Characters/Aria/CU-MCU/1.png"),
		ref("Characters/Aria/Full_Body/1.png"),
	}
	got := folderNames(GroupByCharacterFolder(items))
	want := []string{"Aria/CU-MCU", "Aria/Full_Body", "Mira/Full_Body"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("folders = %v, want %v", got, want)
		}
	}
}
