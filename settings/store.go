package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/anisan-cli/seaplay/log"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS client_settings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	profile TEXT NOT NULL UNIQUE,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL,
	auto_play_next INTEGER NOT NULL DEFAULT 1,
	auto_skip INTEGER NOT NULL DEFAULT 0,
	preferred_speed INTEGER NOT NULL DEFAULT 0,
	discrete_controls INTEGER NOT NULL DEFAULT 0,
	volume REAL NOT NULL DEFAULT 100,
	muted INTEGER NOT NULL DEFAULT 0,
	extra_data TEXT NOT NULL DEFAULT ''
);
`

const columns = `id, profile, created_at, updated_at, auto_play_next, auto_skip,
	preferred_speed, discrete_controls, volume, muted, extra_data`

type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path. ":memory:" gives a private in-memory store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open settings db: %w", err)
	}

	// a single connection keeps ":memory:" databases alive and serializes writes
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init settings schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the settings of profile, creating them with Defaults on first use.
func (s *Store) Get(ctx context.Context, profile string) (*Settings, error) {
	if profile == "" {
		return nil, ErrEmptyProfile
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+columns+` FROM client_settings WHERE profile = ?`, profile)
	settings, err := scan(row)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get settings %s: %w", profile, err)
	}

	log.Infof("settings: creating defaults for profile %s", profile)
	settings = Defaults(profile)
	if err := s.Upsert(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// Upsert inserts or replaces the settings of settings.Profile.
// On return ID, CreatedAt and UpdatedAt reflect the stored row.
func (s *Store) Upsert(ctx context.Context, settings *Settings) error {
	if settings.Profile == "" {
		return ErrEmptyProfile
	}

	now := time.Now()
	settings.UpdatedAt = now

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO client_settings (
			profile, created_at, updated_at, auto_play_next, auto_skip,
			preferred_speed, discrete_controls, volume, muted, extra_data
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(profile) DO UPDATE SET
			updated_at = excluded.updated_at,
			auto_play_next = excluded.auto_play_next,
			auto_skip = excluded.auto_skip,
			preferred_speed = excluded.preferred_speed,
			discrete_controls = excluded.discrete_controls,
			volume = excluded.volume,
			muted = excluded.muted,
			extra_data = excluded.extra_data
		RETURNING id, created_at`,
		settings.Profile, now.Unix(), now.Unix(),
		settings.AutoPlayNext, settings.AutoSkip, settings.PreferredSpeed, settings.DiscreteControls,
		settings.Volume, settings.Muted, settings.ExtraData,
	)

	var created int64
	if err := row.Scan(&settings.ID, &created); err != nil {
		return fmt.Errorf("upsert settings %s: %w", settings.Profile, err)
	}
	settings.CreatedAt = time.Unix(created, 0)
	return nil
}

// Delete removes the settings of profile. Deleting a missing profile is not an error.
func (s *Store) Delete(ctx context.Context, profile string) error {
	if profile == "" {
		return ErrEmptyProfile
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM client_settings WHERE profile = ?`, profile); err != nil {
		return fmt.Errorf("delete settings %s: %w", profile, err)
	}
	return nil
}

// Profiles lists every stored profile name.
func (s *Store) Profiles(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT profile FROM client_settings ORDER BY profile`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}
