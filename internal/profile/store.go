package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/owstat/internal/catalog"
	"github.com/verte-zerg/owstat/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for saved players and cached profile documents.
// Profiles are cached per (tag, day) so repeated runs on the same day skip
// the network; older days are kept to allow fetching past data manually.
type Store struct {
	db *sql.DB
}

// OpenStore opens or creates the SQLite database and applies migrations.
func OpenStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS players (
			tag TEXT PRIMARY KEY,
			platform TEXT NOT NULL,
			region TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS profiles (
			tag TEXT NOT NULL,
			fetched_on TEXT NOT NULL,
			document TEXT NOT NULL,
			PRIMARY KEY (tag, fetched_on)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_profiles_fetched_on ON profiles(fetched_on);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SavePlayer stores or updates a saved player.
func (s *Store) SavePlayer(ctx context.Context, player model.Player) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO players (tag, platform, region) VALUES (?, ?, ?)
		 ON CONFLICT(tag) DO UPDATE SET platform = excluded.platform, region = excluded.region`,
		player.Tag, player.Platform, player.Region,
	)
	return err
}

// ListPlayers returns saved players ordered by tag.
func (s *Store) ListPlayers(ctx context.Context) ([]model.Player, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT tag, platform, region FROM players ORDER BY tag ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var players []model.Player
	for rows.Next() {
		var p model.Player
		if err := rows.Scan(&p.Tag, &p.Platform, &p.Region); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return players, nil
}

// DeletePlayer removes a saved player and its cached profiles.
func (s *Store) DeletePlayer(ctx context.Context, tag string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()
	if _, err = tx.ExecContext(ctx, `DELETE FROM profiles WHERE tag = ?`, tag); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM players WHERE tag = ?`, tag); err != nil {
		return err
	}
	return tx.Commit()
}

// SaveProfile caches a profile document for a given day.
func (s *Store) SaveProfile(ctx context.Context, tag, day string, doc catalog.Document) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode profile for %s: %w", tag, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO profiles (tag, fetched_on, document) VALUES (?, ?, ?)
		 ON CONFLICT(tag, fetched_on) DO UPDATE SET document = excluded.document`,
		tag, day, string(payload),
	)
	return err
}

// GetProfile returns the cached document for (tag, day), reporting ok=false
// on a cache miss.
func (s *Store) GetProfile(ctx context.Context, tag, day string) (catalog.Document, bool, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM profiles WHERE tag = ? AND fetched_on = ?`, tag, day,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var doc catalog.Document
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached profile for %s: %w", tag, err)
	}
	return doc, true, nil
}

// Today returns the cache day key for the current date.
func Today() string {
	return time.Now().Format("2006-01-02")
}
