package catalog

import (
	"reflect"
	"strings"
	"testing"
)

func referenceDoc() Document {
	return Document{
		ModeQuickplay: map[string]any{
			CategoryCareer: map[string]any{
				AllHeroes: map[string]any{
					"game": map[string]any{
						"gamesWon":    100.0,
						"gamesLost":   90.0,
						"gamesPlayed": 190.0,
						"timePlayed":  "40:00:00",
					},
					"average": map[string]any{
						"eliminationsAvgPer10Min": 22.61,
					},
				},
				"ana": map[string]any{
					"heroSpecific": map[string]any{
						"scopedAccuracy": "38%",
					},
				},
			},
		},
	}
}

func TestMenuOptionsForHeroCount(t *testing.T) {
	if got := MenuOptionsFor(0); len(got) != 0 {
		t.Fatalf("expected empty menu for 0 heroes, got %v", got)
	}

	one := MenuOptionsFor(1)
	if !reflect.DeepEqual(one, Options) {
		t.Fatalf("expected full option set for 1 hero, got %v", one)
	}

	for _, count := range []int{2, 5} {
		many := MenuOptionsFor(count)
		if len(many) != len(Options)-1 {
			t.Fatalf("expected %d options for %d heroes, got %v", len(Options)-1, count, many)
		}
		for _, opt := range many {
			if opt == OptionHeroSpecific {
				t.Fatalf("heroSpecific must be excluded for %d heroes", count)
			}
		}
	}
}

func TestStatNamesForGameAllHeroes(t *testing.T) {
	c := New(referenceDoc())
	names, ok := c.StatNamesFor("game", AllHeroes)
	if !ok {
		t.Fatalf("expected stat names for game/allHeroes")
	}
	for _, want := range []string{"gamesWon", "gamesLost", "gamesPlayed", "timePlayed"} {
		if !containsName(names, want) {
			t.Fatalf("expected %s in %v", want, names)
		}
	}
	if !strings.HasPrefix(strings.Join(names, ","), "gamesLost") {
		t.Fatalf("expected sorted names, got %v", names)
	}
}

func TestStatNamesForUnrecognizedOption(t *testing.T) {
	c := New(referenceDoc())
	if _, ok := c.StatNamesFor("topScores", AllHeroes); ok {
		t.Fatalf("expected ok=false for option outside the recognized set")
	}
}

func TestStatNamesForMissingHero(t *testing.T) {
	c := New(referenceDoc())
	if _, ok := c.StatNamesFor("game", "tracer"); ok {
		t.Fatalf("expected ok=false for hero missing from the reference")
	}
	if names, ok := c.StatNamesFor(OptionHeroSpecific, "ana"); !ok || len(names) != 1 {
		t.Fatalf("expected heroSpecific names for ana, got %v ok=%v", names, ok)
	}
}

func containsName(names []string, needle string) bool {
	for _, name := range names {
		if name == needle {
			return true
		}
	}
	return false
}
