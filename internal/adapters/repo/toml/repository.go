package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/oraad/ogero-sensors/internal/domain"
	"github.com/oraad/ogero-sensors/internal/ports"
)

const (
	entriesPathKey    = "entries.path"
	entriesFileMode   = 0o600
	entriesDirMode    = 0o700
	entriesConfigDir  = ".ogero"
	entriesConfigFile = "entries.toml"
	tempFilePattern   = ".entries-*.toml.tmp"
)

// Repository persists config entries in a single TOML file. Passwords are not
// written here, only the secret store reference.
type Repository struct {
	entriesPath string
	mu          *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.EntryRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	entriesPath := cfg.GetString(entriesPathKey)
	if entriesPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		entriesPath = filepath.Join(homeDir, entriesConfigDir, entriesConfigFile)
	}

	entriesPath, err := normalizeEntriesPath(entriesPath)
	if err != nil {
		return nil, err
	}

	return &Repository{entriesPath: entriesPath, mu: lockForPath(entriesPath)}, nil
}

func (r *Repository) Path() string {
	return r.entriesPath
}

func (r *Repository) Save(ctx context.Context, entry ports.StoredEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if entry.Entry.ID == "" {
		return errors.New("entry id is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toSchema(entry)
	updated := false
	for i := range file.Entries {
		if file.Entries[i].ID == encoded.ID {
			file.Entries[i] = encoded
			updated = true
			break
		}
	}

	if !updated {
		file.Entries = append(file.Entries, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) GetByID(ctx context.Context, id domain.EntryID) (ports.StoredEntry, error) {
	if err := ctx.Err(); err != nil {
		return ports.StoredEntry{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return ports.StoredEntry{}, err
	}

	for _, entry := range file.Entries {
		if entry.ID == string(id) {
			return fromSchema(entry), nil
		}
	}

	return ports.StoredEntry{}, domain.ErrEntryNotFound
}

func (r *Repository) List(ctx context.Context) ([]ports.StoredEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	entries := make([]ports.StoredEntry, 0, len(file.Entries))
	for _, entry := range file.Entries {
		entries = append(entries, fromSchema(entry))
	}

	return entries, nil
}

func (r *Repository) Delete(ctx context.Context, id domain.EntryID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	kept := file.Entries[:0]
	found := false
	for _, entry := range file.Entries {
		if entry.ID == string(id) {
			found = true
			continue
		}
		kept = append(kept, entry)
	}
	if !found {
		return domain.ErrEntryNotFound
	}
	file.Entries = kept

	return r.writeSchema(file)
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.entriesPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{Version: currentSchemaVersion}, nil
		}
		return fileSchema{}, fmt.Errorf("read entries file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode entries file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func normalizeEntriesPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve entries path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

// lockForPath shares one lock between every repository opened on the same file.
func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	dir := filepath.Dir(r.entriesPath)
	if err := os.MkdirAll(dir, entriesDirMode); err != nil {
		return fmt.Errorf("create entries directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode entries file: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp entries file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp entries file: %w", err)
	}

	if err := tempFile.Chmod(entriesFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp entries file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp entries file: %w", err)
	}

	if err := os.Rename(tempName, r.entriesPath); err != nil {
		return fmt.Errorf("replace entries file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(r.entriesPath, entriesFileMode); err != nil {
		return fmt.Errorf("chmod entries file: %w", err)
	}

	return nil
}

func toSchema(stored ports.StoredEntry) entrySchema {
	return entrySchema{
		ID:          string(stored.Entry.ID),
		Title:       stored.Entry.Title,
		Username:    stored.Entry.Data.Username,
		Account:     stored.Entry.Data.Account,
		PasswordRef: stored.PasswordRef,
		CreatedAt:   formatTime(stored.Entry.CreatedAt),
		UpdatedAt:   formatTime(stored.Entry.UpdatedAt),
	}
}

func fromSchema(schema entrySchema) ports.StoredEntry {
	return ports.StoredEntry{
		Entry: domain.ConfigEntry{
			ID:    domain.EntryID(schema.ID),
			Title: schema.Title,
			Data: domain.EntryData{
				Username: schema.Username,
				Account:  schema.Account,
			},
			CreatedAt: parseTime(schema.CreatedAt),
			UpdatedAt: parseTime(schema.UpdatedAt),
		},
		PasswordRef: schema.PasswordRef,
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339)
}
