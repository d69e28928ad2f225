package archivecache

import (
	"fmt"
	"path/filepath"
)

const manifestFile = "manifest.json"

// GamePath builds the path to the cached game for an air date.
func GamePath(basePath, date string) string {
	return filepath.Join(basePath, "games", fmt.Sprintf("%s.json", date))
}

func manifestPath(basePath string) string {
	return filepath.Join(basePath, manifestFile)
}
