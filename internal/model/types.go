// Package model defines shared data structures.
package model

// Player identifies a Battle.net account for profile lookup.
type Player struct {
	Tag      string
	Platform string
	Region   string
}

// Label returns the display portion of the battletag (before the discriminator).
func (p Player) Label() string {
	for i := 0; i < len(p.Tag); i++ {
		if p.Tag[i] == '-' {
			return p.Tag[:i]
		}
	}
	return p.Tag
}

// Row is one (player, hero) entry of a chart dataset.
type Row struct {
	Player         string
	Hero           string
	Color          string
	GamesPlayed    int
	BelowThreshold bool
	Value          float64
}

// Dataset is the flat table handed to the chart renderer. The stat column is
// identified by Stat rather than a fixed label.
type Dataset struct {
	Stat     string
	Rows     []Row
	Warnings []string
}

// ChartConfig defines non-interactive chart settings.
type ChartConfig struct {
	Mode               string
	Option             string
	Stat               string
	Heroes             []string
	MinPlaytimeSeconds int
	Width              int
}
