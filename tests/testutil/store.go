// Package testutil provides store fixtures shared by package tests.
package testutil

import (
	"context"
	"testing"

	"github.com/nhle/mailshare/internal/store"
)

// NewTestStore opens an in-memory SQLiteStore with the schema migrated and
// closes it when the test finishes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("opening in-memory store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing in-memory store: %v", err)
		}
	})

	return s
}

// MustSetSetting writes a setting, failing the test on error.
func MustSetSetting(t *testing.T, s *store.SQLiteStore, key, value string) {
	t.Helper()

	if err := s.SetSetting(context.Background(), key, value); err != nil {
		t.Fatalf("seeding setting %q: %v", key, err)
	}
}

// SeedRecipient binds an address to a recipient slot, failing the test
// on error.
func SeedRecipient(t *testing.T, s *store.SQLiteStore, slot int, address string) {
	t.Helper()

	if err := s.SetRecipient(context.Background(), slot, address); err != nil {
		t.Fatalf("seeding recipient slot %d: %v", slot, err)
	}
}
