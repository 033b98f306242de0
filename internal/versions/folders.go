package versions

import (
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// MediaRef is the slice of a media row the folder grouping needs. Name
// encodes a virtual path ("Shot_3/2.jpg", "Characters/Aria/CU-MCU/1.png");
// the segment before the first slash is the folder.
type MediaRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	URL  string    `json:"url"`
}

type MediaFolder struct {
	Folder string     `json:"folder"`
	Items  []MediaRef `json:"items"`
}

const unsortedFolder = "Unsorted"

// Folders with no parseable digit sort after every numbered folder.
const noFolderNumber = 999

// GroupByShotFolder buckets media by its leading path segment and orders the
// folders by the digits embedded in the folder name, so Shot_2 comes before
// Shot_10. Items with no path prefix land in "Unsorted", which sorts last.
func GroupByShotFolder(items []MediaRef) []MediaFolder {
	folders := bucket(items, shotFolderName)
	sort.SliceStable(folders, func(i, j int) bool {
		return folderNumber(folders[i].Folder) < folderNumber(folders[j].Folder)
	})
	return folders
}

// GroupByCharacterFolder buckets media by the derived character path
// ("Characters/Aria/CU-MCU/1.png" → "Aria/CU-MCU") and orders folders
// lexicographically; pose and framing sub-folders have no numeric order.
func GroupByCharacterFolder(items []MediaRef) []MediaFolder {
	folders := bucket(items, characterFolderName)
	sort.SliceStable(folders, func(i, j int) bool {
		return folders[i].Folder < folders[j].Folder
	})
	return folders
}

func bucket(items []MediaRef, folderOf func(string) string) []MediaFolder {
	index := make(map[string]int)
	var folders []MediaFolder
	for _, item := range items {
		name := folderOf(item.Name)
		i, ok := index[name]
		if !ok {
			i = len(folders)
			index[name] = i
			folders = append(folders, MediaFolder{Folder: name})
		}
		folders[i].Items = append(folders[i].Items, item)
	}
	return folders
}

func shotFolderName(name string) string {
	parts := strings.Split(name, "/")
	if len(parts) > 1 {
		return parts[0]
	}
	return unsortedFolder
}

func characterFolderName(name string) string {
	parts := strings.Split(name, "/")
	switch {
	case len(parts) >= 3:
		// Drop the "Characters/" prefix and the filename.
		return strings.Join(parts[1:len(parts)-1], "/")
	case len(parts) == 2:
		return parts[0]
	default:
		return unsortedFolder
	}
}

func folderNumber(folder string) int {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, folder)
	n, err := strconv.Atoi(digits)
	if err != nil || n == 0 {
		return noFolderNumber
	}
	return n
}
