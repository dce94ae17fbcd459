// Package roster holds the static Overwatch hero table.
package roster

import (
	"sort"
	"strings"
)

// Hero describes one selectable hero.
type Hero struct {
	Name   string // display name, e.g. "D.Va"
	APIKey string // key used by the ow-api data structure, e.g. "dVa"
	Role   string
	Color  string // display hex color
}

// RoleAll is the pseudo-role matching every hero.
const RoleAll = "All"

var heroes = []Hero{
	{Name: "Ana", APIKey: "ana", Role: "Support", Color: "#6E89B1"},
	{Name: "Ashe", APIKey: "ashe", Role: "Damage", Color: "#676869"},
	{Name: "Baptiste", APIKey: "baptiste", Role: "Support", Color: "#57B2CB"},
	{Name: "Bastion", APIKey: "bastion", Role: "Damage", Color: "#7B8E79"},
	{Name: "Brigitte", APIKey: "brigitte", Role: "Support", Color: "#8B625D"},
	{Name: "Cassidy", APIKey: "cassidy", Role: "Damage", Color: "#B05A5D"},
	{Name: "D.Va", APIKey: "dVa", Role: "Tank", Color: "#ED93C7"},
	{Name: "Doomfist", APIKey: "doomfist", Role: "Damage", Color: "#83534B"},
	{Name: "Echo", APIKey: "echo", Role: "Damage", Color: "#9BCBF5"},
	{Name: "Genji", APIKey: "genji", Role: "Damage", Color: "#96EE42"},
	{Name: "Hanzo", APIKey: "hanzo", Role: "Damage", Color: "#B9B489"},
	{Name: "Junker Queen", APIKey: "junkerQueen", Role: "Tank", Color: "#00c3ff"},
	{Name: "Junkrat", APIKey: "junkrat", Role: "Damage", Color: "#E9BC51"},
	{Name: "Kiriko", APIKey: "kiriko", Role: "Support", Color: "#00c3ff"},
	{Name: "Lifeweaver", APIKey: "lifeweaver", Role: "Support", Color: "#00c3ff"},
	{Name: "Lucio", APIKey: "lucio", Role: "Support", Color: "#84C951"},
	{Name: "Mei", APIKey: "mei", Role: "Damage", Color: "#6CABEA"},
	{Name: "Mercy", APIKey: "mercy", Role: "Support", Color: "#EBE9BB"},
	{Name: "Moira", APIKey: "moira", Role: "Support", Color: "#9672E3"},
	{Name: "Orisa", APIKey: "orisa", Role: "Tank", Color: "#458B42"},
	{Name: "Pharah", APIKey: "pharah", Role: "Damage", Color: "#3C7BC6"},
	{Name: "Ramattra", APIKey: "ramattra", Role: "Tank", Color: "#00c3ff"},
	{Name: "Reaper", APIKey: "reaper", Role: "Damage", Color: "#7D3F51"},
	{Name: "Reinhardt", APIKey: "reinhardt", Role: "Tank", Color: "#93A0A4"},
	{Name: "Roadhog", APIKey: "roadhog", Role: "Tank", Color: "#B58C51"},
	{Name: "Sigma", APIKey: "sigma", Role: "Tank", Color: "#93A0A4"},
	{Name: "Sojourn", APIKey: "sojourn", Role: "Damage", Color: "#00c3ff"},
	{Name: "Soldier:76", APIKey: "soldier76", Role: "Damage", Color: "#6A7794"},
	{Name: "Sombra", APIKey: "sombra", Role: "Damage", Color: "#735AB9"},
	{Name: "Symmetra", APIKey: "symmetra", Role: "Damage", Color: "#8FBDCE"},
	{Name: "Torbjorn", APIKey: "torbjorn", Role: "Damage", Color: "#BF736D"},
	{Name: "Tracer", APIKey: "tracer", Role: "Damage", Color: "#D89442"},
	{Name: "Widowmaker", APIKey: "widowmaker", Role: "Damage", Color: "#9D6AA6"},
	{Name: "Winston", APIKey: "winston", Role: "Tank", Color: "#A0A5BB"},
	{Name: "Wrecking Ball", APIKey: "wreckingBall", Role: "Tank", Color: "#DB9242"},
	{Name: "Zarya", APIKey: "zarya", Role: "Tank", Color: "#E97FB6"},
	{Name: "Zenyatta", APIKey: "zenyatta", Role: "Support", Color: "#EDE581"},
}

// Heroes returns the full roster in display order.
func Heroes() []Hero {
	out := make([]Hero, len(heroes))
	copy(out, heroes)
	return out
}

// APIName maps a display hero name to its API-compatible key.
func APIName(name string) (string, bool) {
	h, ok := find(name)
	if !ok {
		return "", false
	}
	return h.APIKey, true
}

// DisplayName maps a display or API hero name back to the display form.
func DisplayName(name string) (string, bool) {
	h, ok := find(name)
	if !ok {
		return "", false
	}
	return h.Name, true
}

// Color returns the display hex color for a hero, or an empty string.
func Color(name string) string {
	h, ok := find(name)
	if !ok {
		return ""
	}
	return h.Color
}

// Role returns the role of a hero, or an empty string.
func Role(name string) string {
	h, ok := find(name)
	if !ok {
		return ""
	}
	return h.Role
}

// Roles returns the sorted unique roles, preceded by the "All" pseudo-role.
func Roles() []string {
	seen := map[string]struct{}{}
	out := []string{RoleAll}
	for _, h := range heroes {
		if _, ok := seen[h.Role]; ok {
			continue
		}
		seen[h.Role] = struct{}{}
		out = append(out, h.Role)
	}
	sort.Strings(out[1:])
	return out
}

// HeroesByRole returns display names for a role, or all heroes for "All".
func HeroesByRole(role string) []string {
	out := make([]string, 0, len(heroes))
	for _, h := range heroes {
		if role == RoleAll || h.Role == role {
			out = append(out, h.Name)
		}
	}
	return out
}

func find(name string) (Hero, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for _, h := range heroes {
		if needle == strings.ToLower(h.Name) || needle == strings.ToLower(h.APIKey) {
			return h, true
		}
	}
	return Hero{}, false
}
