package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/oraad/ogero-sensors/internal/domain"
	"github.com/oraad/ogero-sensors/internal/ports"
)

var ErrAmbiguousEntryID = errors.New("entry id prefix is ambiguous")

// PasswordKey is the secret store key of an entry's portal password.
func PasswordKey(id domain.EntryID) string {
	return "ogero/entries/" + string(id) + "/password"
}

type Service struct {
	repo  ports.EntryRepository
	store ports.SecretStore
	clock ports.Clock
	newID func() domain.EntryID
}

func NewService(repo ports.EntryRepository, store ports.SecretStore, clock ports.Clock) *Service {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Service{
		repo:  repo,
		store: store,
		clock: clock,
		newID: func() domain.EntryID { return domain.EntryID(uuid.NewString()) },
	}
}

func (s *Service) AddEntry(ctx context.Context, cmd AddEntryCommand) (domain.ConfigEntry, error) {
	if strings.TrimSpace(cmd.Data.Username) == "" {
		return domain.ConfigEntry{}, errors.New("username is required")
	}
	if _, err := domain.ParseAccount(cmd.Data.Account); err != nil {
		return domain.ConfigEntry{}, err
	}

	now := s.clock.Now()
	entry := domain.ConfigEntry{
		ID:        s.newID(),
		Title:     cmd.Title,
		Data:      cmd.Data,
		CreatedAt: now,
		UpdatedAt: now,
	}
	passwordRef := PasswordKey(entry.ID)

	if err := s.store.Put(ctx, passwordRef, entry.Data.Password); err != nil {
		return domain.ConfigEntry{}, fmt.Errorf("store entry password: %w", err)
	}

	if err := s.repo.Save(ctx, toStored(entry, passwordRef)); err != nil {
		if rollbackErr := s.store.Delete(ctx, passwordRef); rollbackErr != nil {
			return domain.ConfigEntry{}, fmt.Errorf("save entry and rollback stored password: %w", errors.Join(err, rollbackErr))
		}
		return domain.ConfigEntry{}, fmt.Errorf("save entry: %w", err)
	}

	return entry, nil
}

func (s *Service) UpdateEntry(ctx context.Context, entry domain.ConfigEntry) (domain.ConfigEntry, error) {
	stored, err := s.repo.GetByID(ctx, entry.ID)
	if err != nil {
		return domain.ConfigEntry{}, fmt.Errorf("get entry by id: %w", err)
	}
	if _, err := domain.ParseAccount(entry.Data.Account); err != nil {
		return domain.ConfigEntry{}, err
	}

	passwordRef := stored.PasswordRef
	if passwordRef == "" {
		passwordRef = PasswordKey(entry.ID)
	}

	previousPassword, err := s.store.Get(ctx, passwordRef)
	hadPassword := err == nil
	if err != nil && !errors.Is(err, domain.ErrSecretNotFound) {
		return domain.ConfigEntry{}, fmt.Errorf("read entry password: %w", err)
	}

	if err := s.store.Put(ctx, passwordRef, entry.Data.Password); err != nil {
		return domain.ConfigEntry{}, fmt.Errorf("store entry password: %w", err)
	}

	entry.CreatedAt = stored.Entry.CreatedAt
	entry.UpdatedAt = s.clock.Now()

	if err := s.repo.Save(ctx, toStored(entry, passwordRef)); err != nil {
		var rollbackErr error
		if hadPassword {
			rollbackErr = s.store.Put(ctx, passwordRef, previousPassword)
		} else {
			rollbackErr = s.store.Delete(ctx, passwordRef)
		}
		if rollbackErr != nil {
			return domain.ConfigEntry{}, fmt.Errorf("save entry and restore previous password: %w", errors.Join(err, rollbackErr))
		}
		return domain.ConfigEntry{}, fmt.Errorf("save entry: %w", err)
	}

	return entry, nil
}

func (s *Service) RemoveEntry(ctx context.Context, id domain.EntryID) error {
	stored, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get entry by id: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	if stored.PasswordRef == "" {
		return nil
	}

	if err := s.store.Delete(ctx, stored.PasswordRef); err != nil {
		if restoreErr := s.repo.Save(ctx, stored); restoreErr != nil {
			return fmt.Errorf("delete entry password and restore entry: %w", errors.Join(err, restoreErr))
		}
		return fmt.Errorf("delete entry password: %w", err)
	}

	return nil
}

// LookupEntry returns the entry without reading its password.
func (s *Service) LookupEntry(ctx context.Context, id domain.EntryID) (domain.ConfigEntry, error) {
	stored, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.ConfigEntry{}, fmt.Errorf("get entry by id: %w", err)
	}
	return stored.Entry, nil
}

func (s *Service) GetEntry(ctx context.Context, id domain.EntryID) (domain.ConfigEntry, error) {
	stored, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.ConfigEntry{}, fmt.Errorf("get entry by id: %w", err)
	}

	return s.withPassword(ctx, stored)
}

func (s *Service) ListEntries(ctx context.Context) ([]domain.ConfigEntry, error) {
	stored, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	entries := make([]domain.ConfigEntry, 0, len(stored))
	for _, item := range stored {
		entries = append(entries, item.Entry)
	}
	sort.SliceStable(entries, func(a, b int) bool {
		if entries[a].CreatedAt.Equal(entries[b].CreatedAt) {
			return entries[a].ID < entries[b].ID
		}
		return entries[a].CreatedAt.Before(entries[b].CreatedAt)
	})

	return entries, nil
}

// LoadEntries returns every entry with its password loaded. Entries whose
// password cannot be read are returned as failures instead: a missing
// password matches ErrAuthFailed, any other store error ErrNotReady.
func (s *Service) LoadEntries(ctx context.Context) ([]domain.ConfigEntry, []EntryFailure, error) {
	listed, err := s.ListEntries(ctx)
	if err != nil {
		return nil, nil, err
	}

	entries := make([]domain.ConfigEntry, 0, len(listed))
	var failures []EntryFailure
	for _, entry := range listed {
		loaded, err := s.GetEntry(ctx, entry.ID)
		switch {
		case err == nil:
			entries = append(entries, loaded)
		case errors.Is(err, domain.ErrSecretNotFound):
			failures = append(failures, EntryFailure{Entry: entry, Err: fmt.Errorf("%w: %w", ErrAuthFailed, err)})
		default:
			failures = append(failures, EntryFailure{Entry: entry, Err: fmt.Errorf("%w: %w", ErrNotReady, err)})
		}
	}

	return entries, failures, nil
}

func (s *Service) IsAccountConfigured(ctx context.Context, serial string, except domain.EntryID) (bool, error) {
	entries, err := s.ListEntries(ctx)
	if err != nil {
		return false, err
	}

	for _, entry := range entries {
		if entry.ID != except && entry.Data.Account == serial {
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) ResolveEntryID(ctx context.Context, raw string) (domain.EntryID, error) {
	requested := strings.TrimSpace(raw)
	if requested == "" {
		return "", errors.New("entry id is required")
	}

	entries, err := s.ListEntries(ctx)
	if err != nil {
		return "", err
	}

	var matches []domain.EntryID
	for _, entry := range entries {
		if string(entry.ID) == requested {
			return entry.ID, nil
		}
		if strings.HasPrefix(string(entry.ID), requested) {
			matches = append(matches, entry.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", domain.ErrEntryNotFound, requested)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %s matches %d entries", ErrAmbiguousEntryID, requested, len(matches))
	}
}

func (s *Service) withPassword(ctx context.Context, stored ports.StoredEntry) (domain.ConfigEntry, error) {
	entry := stored.Entry
	if stored.PasswordRef == "" {
		return entry, nil
	}

	password, err := s.store.Get(ctx, stored.PasswordRef)
	if err != nil {
		return domain.ConfigEntry{}, fmt.Errorf("read entry password: %w", err)
	}
	entry.Data.Password = password

	return entry, nil
}

func toStored(entry domain.ConfigEntry, passwordRef string) ports.StoredEntry {
	entry.Data.Password = ""
	return ports.StoredEntry{Entry: entry, PasswordRef: passwordRef}
}
