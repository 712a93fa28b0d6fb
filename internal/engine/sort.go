package engine

import (
	"os"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortMode selects the file ordering applied before a batch run.
type SortMode string

// Supported sort modes. Any other value leaves the order unchanged.
const (
	SortAlphabetical   SortMode = "alphabetical"
	SortSizeAscending  SortMode = "sizeAscending"
	SortSizeDescending SortMode = "sizeDescending"
	SortNone           SortMode = "none"
)

// Sizer reports the byte length of a file, used by the size sort modes.
type Sizer func(path string) (int64, error)

// StatSizer is the default Sizer backed by os.Stat.
func StatSizer(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// SortFiles orders paths in place according to mode. All sorts are
// stable: ties keep their original relative order. The original tool's
// comparator sort left tie order unspecified; stability is the documented
// behavior here. Files whose size cannot be determined sort as zero
// length.
func SortFiles(mode SortMode, paths []string, size Sizer) {
	switch mode {
	case SortAlphabetical:
		c := collate.New(language.Und, collate.IgnoreCase)
		sort.SliceStable(paths, func(i, j int) bool {
			return c.CompareString(paths[i], paths[j]) < 0
		})
	case SortSizeAscending, SortSizeDescending:
		if size == nil {
			size = StatSizer
		}
		sizes := make(map[string]int64, len(paths))
		for _, p := range paths {
			n, err := size(p)
			if err != nil {
				n = 0
			}
			sizes[p] = n
		}
		sort.SliceStable(paths, func(i, j int) bool {
			if mode == SortSizeAscending {
				return sizes[paths[i]] < sizes[paths[j]]
			}
			return sizes[paths[i]] > sizes[paths[j]]
		})
	default:
		// Unspecified mode: order unchanged.
	}
}
