// Package catalog derives stat menus from a reference statistics document.
//
// The ow-api data structure is five levels deep: mode, category, hero key,
// menu option, stat name. A reference document (any complete profile with
// high playtime on all heroes) is used so stat options can be shown before
// the user ever adds a profile of their own.
package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
)

// Keys of the fixed levels of the document structure.
const (
	ModeQuickplay   = "quickPlayStats"
	ModeCompetitive = "competitiveStats"
	CategoryCareer  = "careerStats"

	// AllHeroes is the hero key used when zero or multiple heroes are selected.
	AllHeroes = "allHeroes"

	// OptionHeroSpecific only makes sense for a single hero and is excluded
	// from the menu otherwise.
	OptionHeroSpecific = "heroSpecific"
)

// Options is the fixed set of recognized menu options, in menu order. The
// upstream data carries a few more groupings that are deliberately not shown.
var Options = []string{
	"assists", "average", "best", "combat", OptionHeroSpecific,
	"game", "matchAwards", "miscellaneous",
}

// Document is an externally supplied statistics document, parsed but
// otherwise opaque. It is never mutated.
type Document map[string]any

// Load parses a statistics document from r.
func Load(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode reference data: %w", err)
	}
	return doc, nil
}

// LoadFile parses a statistics document from a file path.
func LoadFile(path string) (Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reference data unavailable: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only reference data.
			_ = cerr
		}
	}()
	doc, err := Load(file)
	if err != nil {
		return nil, fmt.Errorf("reference data unavailable: %w", err)
	}
	return doc, nil
}

// Catalog answers menu queries against a reference document.
type Catalog struct {
	doc Document
}

// New wraps a loaded reference document.
func New(doc Document) *Catalog {
	return &Catalog{doc: doc}
}

// MenuOptionsFor returns the menu options valid for the given number of
// selected heroes: none for zero heroes, the full set for exactly one, and
// the full set minus heroSpecific for two or more.
func MenuOptionsFor(heroCount int) []string {
	if heroCount <= 0 {
		return nil
	}
	out := make([]string, 0, len(Options))
	for _, opt := range Options {
		if heroCount > 1 && opt == OptionHeroSpecific {
			continue
		}
		out = append(out, opt)
	}
	return out
}

// StatNamesFor returns the sorted stat names found in the reference document
// under the given option and hero key. The quickplay partition is used as the
// reference; both modes share the same key layout. Returns ok=false for
// options outside the recognized set or hero keys the reference lacks, which
// callers must treat as "no stats to show".
func (c *Catalog) StatNamesFor(option, heroKey string) ([]string, bool) {
	if !recognizedOption(option) {
		return nil, false
	}
	node, ok := navigate(c.doc, ModeQuickplay, CategoryCareer, heroKey, option)
	if !ok {
		return nil, false
	}
	group, ok := node.(map[string]any)
	if !ok {
		return nil, false
	}
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, true
}

func recognizedOption(option string) bool {
	for _, opt := range Options {
		if opt == option {
			return true
		}
	}
	return false
}

func navigate(doc Document, keys ...string) (any, bool) {
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
