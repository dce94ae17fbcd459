// Package statpath holds the five-key addressing state used to navigate a
// statistics document: mode, category, hero key, menu option, stat name.
package statpath

import (
	"github.com/verte-zerg/owstat/internal/catalog"
)

// Path is the current addressing state. It is single-writer: the interactive
// user is the sole mutator, serialized by the UI event loop.
type Path struct {
	mode   string
	hero   string
	option string
	stat   string
}

// New returns a path with the default selection.
func New() *Path {
	return &Path{
		mode:   catalog.ModeQuickplay,
		hero:   catalog.AllHeroes,
		option: "average",
		stat:   "eliminationsAvgPer10Min",
	}
}

// Mode returns the active statistics partition.
func (p *Path) Mode() string { return p.mode }

// Category returns the fixed second-level key.
func (p *Path) Category() string { return catalog.CategoryCareer }

// Hero returns the active hero key (allHeroes sentinel or a single API key).
func (p *Path) Hero() string { return p.hero }

// Option returns the active menu option.
func (p *Path) Option() string { return p.option }

// Stat returns the active stat name.
func (p *Path) Stat() string { return p.stat }

// SetHeroSelection applies the hero-count policy: zero or multiple selected
// heroes address the allHeroes aggregate, exactly one addresses that hero.
// Leaving single-hero mode always resets the key to the sentinel.
func (p *Path) SetHeroSelection(apiKeys []string) {
	if len(apiKeys) == 1 {
		p.hero = apiKeys[0]
		return
	}
	p.hero = catalog.AllHeroes
}

// SetOption accepts only recognized menu options and reports whether the
// option was applied. State is untouched on rejection.
func (p *Path) SetOption(option string) bool {
	for _, opt := range catalog.Options {
		if opt == option {
			p.option = option
			return true
		}
	}
	return false
}

// SetStat sets the active stat name. Validation against the reference
// catalog happens where the stat list is built.
func (p *Path) SetStat(stat string) {
	p.stat = stat
}

// SetMode accepts only the two recognized modes.
func (p *Path) SetMode(mode string) bool {
	if mode != catalog.ModeQuickplay && mode != catalog.ModeCompetitive {
		return false
	}
	p.mode = mode
	return true
}

// ToggleMode flips between quickplay and competitive.
func (p *Path) ToggleMode() {
	if p.mode == catalog.ModeQuickplay {
		p.mode = catalog.ModeCompetitive
		return
	}
	p.mode = catalog.ModeQuickplay
}
