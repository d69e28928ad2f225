package archivecache

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain/questions"
)

// Entry is the on-disk form of a cached game.
type Entry struct {
	FetchedAt time.Time             `json:"fetchedAt"`
	Game      questions.FetchedGame `json:"game"`
}

// Writer persists fetched games and keeps the manifest in step.
type Writer struct {
	mu       sync.Mutex
	basePath string
	now      func() time.Time
}

// NewWriter constructs a writer rooted at basePath.
func NewWriter(basePath string) *Writer {
	return &Writer{basePath: basePath, now: time.Now}
}

// BasePath exposes the writer root path.
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// WriteGame stores game under its air date. Identical content is not rewritten.
func (w *Writer) WriteGame(game questions.FetchedGame) error {
	if w == nil {
		return errors.New("archive cache writer not configured")
	}
	if game.AirDate == "" {
		return errors.New("air date required")
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	target := GamePath(w.basePath, game.AirDate)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	gameData, err := json.Marshal(game)
	if err != nil {
		return err
	}
	if existing, err := readEntry(target); err == nil {
		if prev, _ := json.Marshal(existing.Game); bytes.Equal(prev, gameData) {
			return w.updateManifest(game.AirDate, game.GameID)
		}
	}

	data, err := json.MarshalIndent(Entry{FetchedAt: w.now().UTC(), Game: game}, "", "  ")
	if err != nil {
		return err
	}
	if err := writeAtomic(target, data); err != nil {
		return fmt.Errorf("write cached game %s: %w", game.AirDate, err)
	}
	return w.updateManifest(game.AirDate, game.GameID)
}

// Remove drops the cached game for date.
func (w *Writer) Remove(date string) error {
	if w == nil {
		return errors.New("archive cache writer not configured")
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := os.Remove(GamePath(w.basePath, date)); err != nil && !os.IsNotExist(err) {
		return err
	}
	m, _ := ReadManifest(w.basePath)
	m.Games.Dates = removeDate(m.Games.Dates, date)
	for id, d := range m.Games.IDs {
		if d == date {
			delete(m.Games.IDs, id)
		}
	}
	return writeManifest(w.basePath, m)
}

func (w *Writer) updateManifest(date, gameID string) error {
	m, _ := ReadManifest(w.basePath)
	if !containsDate(m.Games.Dates, date) {
		m.Games.Dates = append(m.Games.Dates, date)
		sort.Strings(m.Games.Dates)
	}
	if gameID != "" {
		m.Games.IDs[gameID] = date
	}
	m.Games.LastRefreshed = w.now().UTC()
	return writeManifest(w.basePath, m)
}

func containsDate(dates []string, date string) bool {
	for _, d := range dates {
		if d == date {
			return true
		}
	}
	return false
}

func removeDate(dates []string, date string) []string {
	out := dates[:0]
	for _, d := range dates {
		if d != date {
			out = append(out, d)
		}
	}
	return out
}
