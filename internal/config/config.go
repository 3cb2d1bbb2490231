package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog/log"

	apperrors "github.com/tessro/sonoctl/internal/errors"
)

const (
	// AppName names the per-user config directory.
	AppName = "sonoctl"
	// DefaultFileName is the name of the config file inside that directory.
	DefaultFileName = "config.json"
)

// Store reads and writes the Record at a single path.
type Store struct {
	path string
}

// NewStore creates a store at the specified path.
// If path is empty, uses the default location (<user config dir>/sonoctl/config.json).
func NewStore(path string) (*Store, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil || dir == "" {
			return nil, apperrors.ErrNoConfigDirectory
		}
		path = filepath.Join(dir, AppName, DefaultFileName)
	}
	return &Store{path: path}, nil
}

// Path returns the path to the config file.
func (s *Store) Path() string {
	return s.path
}

// Load reads the Record from disk. The file must hold exactly the Record
// shape.
func (s *Store) Load() (Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Record{}, fmt.Errorf("read config: %w", err)
	}

	f, err := parseFields(data)
	if err != nil {
		return Record{}, err
	}
	return f.Record()
}

// LoadOrDefault reads the Record, substituting defaults on any failure.
func (s *Store) LoadOrDefault() Record {
	r, err := s.Load()
	if err != nil {
		log.Debug().Err(err).Str("path", s.path).Msg("using default config")
		return Default()
	}
	return r
}

// Save writes the Record to disk, creating the directory if needed.
func (s *Store) Save(r Record) error {
	if err := r.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Environment variables that override the Record for one invocation.
const (
	EnvTimeout = "SONOCTL_TIMEOUT"
	EnvDefault = "SONOCTL_DEFAULT"
)

// ApplyEnvOverrides returns a copy of r with environment overrides applied.
// The result is meant for the running command and is never saved.
func ApplyEnvOverrides(r Record) Record {
	if v := os.Getenv(EnvTimeout); v != "" {
		if i, err := strconv.ParseUint(v, 10, 64); err == nil && i > 0 && i <= MaxTimeout {
			r.Timeout = i
		} else {
			log.Debug().Str("value", v).Msg("ignoring invalid " + EnvTimeout)
		}
	}
	if v := os.Getenv(EnvDefault); v != "" {
		name := v
		r.Default = &name
	}
	return r
}
