package engine

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoFiles is returned when a batch run has nothing to process.
var ErrNoFiles = errors.New("no files to process")

// ErrNoObjectsImported marks a file whose import raised no error but
// added nothing to the scene.
var ErrNoObjectsImported = errors.New("import produced no scene objects")

// fbxExtension is the input extension the directory scan filters on.
const fbxExtension = ".fbx"

// ListFBXFiles returns the FBX files directly inside dir, matched
// case-insensitively on extension. Subdirectories are not descended.
func ListFBXFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), fbxExtension) {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	return paths, nil
}

// SavePathFor returns the sibling output path for an imported file: same
// directory, same base name, the given extension.
func SavePathFor(inputPath, outExt string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return filepath.Join(filepath.Dir(inputPath), base+outExt)
}
