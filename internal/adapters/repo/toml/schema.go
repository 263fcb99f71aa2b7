package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int           `toml:"version"`
	Entries []entrySchema `toml:"entries"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported entries schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type entrySchema struct {
	ID          string `toml:"id"`
	Title       string `toml:"title"`
	Username    string `toml:"username"`
	Account     string `toml:"account"`
	PasswordRef string `toml:"password_ref"`
	CreatedAt   string `toml:"created_at,omitempty"`
	UpdatedAt   string `toml:"updated_at,omitempty"`
}
