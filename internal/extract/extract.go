// Package extract reads individual stat values out of statistics documents.
package extract

import (
	"errors"
	"fmt"

	"github.com/verte-zerg/owstat/internal/catalog"
	"github.com/verte-zerg/owstat/internal/convert"
	"github.com/verte-zerg/owstat/internal/statpath"
)

// Extractor resolves leaf values for the currently configured path. The
// upstream data omits nodes inconsistently across heroes (support-only
// categories are absent for damage heroes, for example), so every missing
// key or null intermediate resolves to zero rather than an error.
type Extractor struct {
	path *statpath.Path
}

// New builds an extractor over the given path state.
func New(path *statpath.Path) *Extractor {
	return &Extractor{path: path}
}

// Stat returns the configured stat for a hero, converted to a number.
// Missing paths yield (0, nil). A present leaf whose string shape is neither
// a percentage nor a duration yields (0, convert.ErrUnrecognizedFormat) so
// callers can report it instead of silently charting a zero.
func (e *Extractor) Stat(doc catalog.Document, heroKey string) (float64, error) {
	leaf, ok := lookup(doc, e.path.Mode(), e.path.Category(), heroKey, e.path.Option(), e.path.Stat())
	if !ok {
		return 0, nil
	}
	value, err := convert.Value(leaf)
	if err != nil {
		if errors.Is(err, convert.ErrUnrecognizedFormat) {
			return 0, fmt.Errorf("stat %s for %s: %w", e.path.Stat(), heroKey, err)
		}
		return 0, err
	}
	return value, nil
}

// PlaytimeSeconds returns the hero's time played in seconds, or zero when
// the document lacks the entry or the value is empty.
func (e *Extractor) PlaytimeSeconds(doc catalog.Document, heroKey string) float64 {
	leaf, ok := lookup(doc, e.path.Mode(), e.path.Category(), heroKey, "game", "timePlayed")
	if !ok {
		return 0
	}
	raw, ok := leaf.(string)
	if !ok || raw == "" {
		return 0
	}
	seconds, err := convert.DurationIn(raw, convert.Seconds)
	if err != nil {
		return 0
	}
	return seconds
}

// GamesPlayed returns the hero's games-played count, zero when missing.
func (e *Extractor) GamesPlayed(doc catalog.Document, heroKey string) int {
	leaf, ok := lookup(doc, e.path.Mode(), e.path.Category(), heroKey, "game", "gamesPlayed")
	if !ok {
		return 0
	}
	switch v := leaf.(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// lookup walks a fixed key chain through nested maps. It encodes the
// missing-means-zero policy as a single explicit branch: any absent key,
// null value, or non-map intermediate reports ok=false.
func lookup(doc catalog.Document, keys ...string) (any, bool) {
	var node any = map[string]any(doc)
	for _, key := range keys {
		m, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}
		node, ok = m[key]
		if !ok || node == nil {
			return nil, false
		}
	}
	return node, true
}
