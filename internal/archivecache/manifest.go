package archivecache

import (
	"encoding/json"
	"os"
	"time"
)

// Manifest tracks which air dates are cached.
type Manifest struct {
	Version     int       `json:"version"`
	GeneratedAt time.Time `json:"generatedAt"`
	Games       GamesMeta `json:"games"`
}

// GamesMeta lists cached dates and maps archive game ids to their air date.
type GamesMeta struct {
	Dates         []string          `json:"dates"`
	IDs           map[string]string `json:"ids"`
	LastRefreshed time.Time         `json:"lastRefreshed"`
}

func defaultManifest() Manifest {
	return Manifest{
		Version:     1,
		GeneratedAt: time.Now().UTC(),
		Games: GamesMeta{
			Dates: []string{},
			IDs:   map[string]string{},
		},
	}
}

// ReadManifest loads the manifest under basePath, returning an empty one when
// it is missing or unreadable.
func ReadManifest(basePath string) (Manifest, error) {
	f, err := os.Open(manifestPath(basePath))
	if err != nil {
		return defaultManifest(), err
	}
	defer f.Close()
	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return defaultManifest(), err
	}
	if m.Games.IDs == nil {
		m.Games.IDs = map[string]string{}
	}
	if m.Games.Dates == nil {
		m.Games.Dates = []string{}
	}
	return m, nil
}

func writeManifest(basePath string, m Manifest) error {
	m.GeneratedAt = time.Now().UTC()
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(manifestPath(basePath), data)
}

func writeAtomic(target string, data []byte) error {
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}
