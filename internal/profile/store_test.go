package profile

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/verte-zerg/owstat/internal/catalog"
	"github.com/verte-zerg/owstat/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(filepath.Join(t.TempDir(), "owstat.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return store
}

func TestSavePlayerAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	players := []model.Player{
		{Tag: "Zed-999", Platform: "pc", Region: "eu"},
		{Tag: "Clovis-1467", Platform: "pc", Region: "us"},
	}
	for _, p := range players {
		if err := store.SavePlayer(ctx, p); err != nil {
			t.Fatalf("failed to save player %s: %v", p.Tag, err)
		}
	}

	got, err := store.ListPlayers(ctx)
	if err != nil {
		t.Fatalf("failed to list players: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 players, got %d", len(got))
	}
	if got[0].Tag != "Clovis-1467" || got[1].Tag != "Zed-999" {
		t.Fatalf("expected players ordered by tag, got %v", got)
	}
}

func TestSavePlayerUpdatesExisting(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SavePlayer(ctx, model.Player{Tag: "Clovis-1467", Platform: "pc", Region: "us"}); err != nil {
		t.Fatalf("failed to save player: %v", err)
	}
	if err := store.SavePlayer(ctx, model.Player{Tag: "Clovis-1467", Platform: "pc", Region: "eu"}); err != nil {
		t.Fatalf("failed to update player: %v", err)
	}

	got, err := store.ListPlayers(ctx)
	if err != nil {
		t.Fatalf("failed to list players: %v", err)
	}
	if len(got) != 1 || got[0].Region != "eu" {
		t.Fatalf("expected single player with updated region, got %v", got)
	}
}

func TestDeletePlayerRemovesProfiles(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SavePlayer(ctx, model.Player{Tag: "Clovis-1467", Platform: "pc", Region: "us"}); err != nil {
		t.Fatalf("failed to save player: %v", err)
	}
	doc := catalog.Document{"name": "Clovis#1467"}
	if err := store.SaveProfile(ctx, "Clovis-1467", "2026-08-23", doc); err != nil {
		t.Fatalf("failed to save profile: %v", err)
	}

	if err := store.DeletePlayer(ctx, "Clovis-1467"); err != nil {
		t.Fatalf("failed to delete player: %v", err)
	}

	players, err := store.ListPlayers(ctx)
	if err != nil {
		t.Fatalf("failed to list players: %v", err)
	}
	if len(players) != 0 {
		t.Fatalf("expected no players after delete, got %v", players)
	}
	if _, ok, err := store.GetProfile(ctx, "Clovis-1467", "2026-08-23"); err != nil || ok {
		t.Fatalf("expected cached profile gone after delete, ok=%v err=%v", ok, err)
	}
}

func TestProfileCacheRoundtrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	doc := catalog.Document{
		"quickPlayStats": map[string]any{
			"careerStats": map[string]any{
				"tracer": map[string]any{
					"average": map[string]any{"eliminationsAvgPer10Min": 22.61},
				},
			},
		},
	}
	if err := store.SaveProfile(ctx, "Clovis-1467", "2026-08-23", doc); err != nil {
		t.Fatalf("failed to save profile: %v", err)
	}

	got, ok, err := store.GetProfile(ctx, "Clovis-1467", "2026-08-23")
	if err != nil {
		t.Fatalf("failed to get profile: %v", err)
	}
	if !ok {
		t.Fatalf("expected cache hit for saved day")
	}
	mode, _ := got["quickPlayStats"].(map[string]any)
	if mode == nil {
		t.Fatalf("expected document structure to survive the roundtrip, got %v", got)
	}

	if _, ok, err := store.GetProfile(ctx, "Clovis-1467", "2026-08-24"); err != nil || ok {
		t.Fatalf("expected cache miss for a different day, ok=%v err=%v", ok, err)
	}
	if _, ok, err := store.GetProfile(ctx, "Nobody-1", "2026-08-23"); err != nil || ok {
		t.Fatalf("expected cache miss for an unknown tag, ok=%v err=%v", ok, err)
	}
}
