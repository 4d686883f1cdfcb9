package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nhle/mailshare/internal/model"
)

// ErrNoRecipient is returned when a recipient slot has no address.
var ErrNoRecipient = errors.New("no recipient configured for slot")

// SQLiteStore implements the Store interface using a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// GetSetting retrieves a setting value by key. The second return value
// reports whether the key was present.
func (s *SQLiteStore) GetSetting(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.GetContext(ctx, &value, "SELECT value FROM settings WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("getting setting %q: %w", key, err)
	}
	return value, true, nil
}

// SetSetting stores a setting value by key, replacing any previous value.
func (s *SQLiteStore) SetSetting(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO settings (key, value, updated_at)
		VALUES (?, ?, ?)`,
		key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("setting %q: %w", key, err)
	}
	return nil
}

// FetchTitlesEnabled reports whether network title fetching is enabled,
// falling back to def when the toggle has never been written or cannot
// be parsed.
func (s *SQLiteStore) FetchTitlesEnabled(ctx context.Context, def bool) bool {
	value, ok, err := s.GetSetting(ctx, SettingFetchTitles)
	if err != nil || !ok {
		return def
	}
	enabled, err := strconv.ParseBool(value)
	if err != nil {
		return def
	}
	return enabled
}

// SetRecipient stores the recipient address for a slot.
func (s *SQLiteStore) SetRecipient(ctx context.Context, slot int, address string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO recipients (slot, address, updated_at)
		VALUES (?, ?, ?)`,
		slot, address, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("setting recipient slot %d: %w", slot, err)
	}
	return nil
}

// GetRecipient retrieves the recipient address for a slot. Returns
// ErrNoRecipient when the slot is empty.
func (s *SQLiteStore) GetRecipient(ctx context.Context, slot int) (string, error) {
	var address string
	err := s.db.GetContext(ctx, &address, "SELECT address FROM recipients WHERE slot = ?", slot)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("slot %d: %w", slot, ErrNoRecipient)
	}
	if err != nil {
		return "", fmt.Errorf("getting recipient slot %d: %w", slot, err)
	}
	return address, nil
}

// ListRecipients retrieves all configured recipient slots in slot order.
func (s *SQLiteStore) ListRecipients(ctx context.Context) ([]Recipient, error) {
	var recipients []Recipient
	err := s.db.SelectContext(ctx, &recipients,
		"SELECT slot, address FROM recipients ORDER BY slot",
	)
	if err != nil {
		return nil, fmt.Errorf("listing recipients: %w", err)
	}
	return recipients, nil
}

// DeleteRecipient removes the recipient for a slot.
func (s *SQLiteStore) DeleteRecipient(ctx context.Context, slot int) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM recipients WHERE slot = ?", slot)
	if err != nil {
		return fmt.Errorf("deleting recipient slot %d: %w", slot, err)
	}
	return nil
}

// RecordShare inserts a share record into the history. If the record has
// no ID, a new UUID is generated; a zero CreatedAt is set to now.
func (s *SQLiteStore) RecordShare(ctx context.Context, rec model.ShareRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO history (
			id, subject, target, recipient,
			link_count, attachment_count, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Subject, rec.Target, rec.Recipient,
		rec.LinkCount, rec.AttachmentCount, rec.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("recording share: %w", err)
	}
	return nil
}

// RecentShares retrieves the most recent share records, newest first.
func (s *SQLiteStore) RecentShares(ctx context.Context, limit int) ([]model.ShareRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	var records []model.ShareRecord
	err := s.db.SelectContext(ctx, &records, `
		SELECT id, subject, target, recipient,
		       link_count, attachment_count, created_at
		FROM history
		ORDER BY created_at DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying share history: %w", err)
	}
	return records, nil
}
