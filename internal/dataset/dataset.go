// Package dataset assembles the chart table from player documents.
package dataset

import (
	"fmt"

	"github.com/verte-zerg/owstat/internal/catalog"
	"github.com/verte-zerg/owstat/internal/extract"
	"github.com/verte-zerg/owstat/internal/model"
	"github.com/verte-zerg/owstat/internal/roster"
	"github.com/verte-zerg/owstat/internal/statpath"
)

// DefaultMinPlaytimeSeconds is the playtime below which a row is marked for
// visual exclusion. Stats for heroes with under three hours played are noise.
const DefaultMinPlaytimeSeconds = 3 * 3600

// Build produces one row per (player, hero) pair, player-major in the
// supplied order. Rows for heroes at or above minPlaytimeSeconds keep
// BelowThreshold false; the boundary itself is not below. Format violations
// found while extracting are collected as warnings, never failures. Build
// has no hidden state: identical inputs produce identical datasets.
func Build(players []model.Player, docs map[string]catalog.Document, heroes []string, path *statpath.Path, minPlaytimeSeconds int) model.Dataset {
	ex := extract.New(path)
	ds := model.Dataset{
		Stat: path.Stat(),
		Rows: make([]model.Row, 0, len(players)*len(heroes)),
	}
	for _, player := range players {
		doc := docs[player.Tag]
		for _, hero := range heroes {
			heroKey, ok := roster.APIName(hero)
			if !ok {
				heroKey = hero
			}
			value, err := ex.Stat(doc, heroKey)
			if err != nil {
				ds.Warnings = append(ds.Warnings, fmt.Sprintf("%s / %s: %v", player.Tag, hero, err))
			}
			playtime := ex.PlaytimeSeconds(doc, heroKey)
			ds.Rows = append(ds.Rows, model.Row{
				Player:         player.Label(),
				Hero:           hero,
				Color:          roster.Color(hero),
				GamesPlayed:    ex.GamesPlayed(doc, heroKey),
				BelowThreshold: playtime < float64(minPlaytimeSeconds),
				Value:          value,
			})
		}
	}
	return ds
}
