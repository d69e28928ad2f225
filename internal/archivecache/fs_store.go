package archivecache

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain/questions"
)

// ErrNotCached is returned when no cached copy exists.
var ErrNotCached = errors.New("game not cached")

// FSStore loads cached games from the filesystem.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed cache store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// LoadGame reads the cached game for date from {basePath}/games/{date}.json.
func (s *FSStore) LoadGame(date string) (questions.FetchedGame, error) {
	if s == nil {
		return questions.FetchedGame{}, errors.New("archive cache store not configured")
	}
	if date == "" {
		return questions.FetchedGame{}, errors.New("cache date required")
	}
	entry, err := readEntry(GamePath(s.basePath, date))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return questions.FetchedGame{}, ErrNotCached
		}
		return questions.FetchedGame{}, err
	}
	return entry.Game, nil
}

// LoadGameByID resolves an archive id through the manifest.
func (s *FSStore) LoadGameByID(gameID string) (questions.FetchedGame, error) {
	if s == nil {
		return questions.FetchedGame{}, errors.New("archive cache store not configured")
	}
	m, err := ReadManifest(s.basePath)
	if err != nil {
		return questions.FetchedGame{}, ErrNotCached
	}
	date, ok := m.Games.IDs[gameID]
	if !ok {
		return questions.FetchedGame{}, ErrNotCached
	}
	return s.LoadGame(date)
}

// CachedDates lists every cached air date.
func (s *FSStore) CachedDates() []string {
	m, _ := ReadManifest(s.basePath)
	return m.Games.Dates
}

func readEntry(path string) (Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return Entry{}, err
	}
	defer f.Close()
	var entry Entry
	if err := json.NewDecoder(f).Decode(&entry); err != nil {
		return Entry{}, err
	}
	return entry, nil
}
