package ports

import (
	"context"

	"github.com/oraad/ogero-sensors/internal/domain"
)

type EntryRepository interface {
	GetByID(ctx context.Context, id domain.EntryID) (StoredEntry, error)
	List(ctx context.Context) ([]StoredEntry, error)
	Save(ctx context.Context, entry StoredEntry) error
	Delete(ctx context.Context, id domain.EntryID) error
}

// StoredEntry is a config entry as persisted: the password itself lives in
// the secret store under PasswordRef.
type StoredEntry struct {
	Entry       domain.ConfigEntry
	PasswordRef string
}
