package store

import (
	"context"

	"github.com/nhle/mailshare/internal/model"
)

// Setting keys used by the application.
const (
	// SettingFetchTitles toggles network title fetching ("true"/"false").
	SettingFetchTitles = "fetch_titles"

	// SettingDefaultTarget is the persisted dispatch target identifier.
	SettingDefaultTarget = "default_target"
)

// Recipient is a persisted recipient address bound to a numbered slot.
type Recipient struct {
	Slot    int    `db:"slot"`
	Address string `db:"address"`
}

// Store defines the persistence interface for settings, recipient slots,
// and share history.
type Store interface {
	// === Settings ===

	GetSetting(ctx context.Context, key string) (string, bool, error)
	SetSetting(ctx context.Context, key, value string) error

	// === Recipient slots ===

	SetRecipient(ctx context.Context, slot int, address string) error
	GetRecipient(ctx context.Context, slot int) (string, error)
	ListRecipients(ctx context.Context) ([]Recipient, error)
	DeleteRecipient(ctx context.Context, slot int) error

	// === Share history ===

	RecordShare(ctx context.Context, rec model.ShareRecord) error
	RecentShares(ctx context.Context, limit int) ([]model.ShareRecord, error)
}
