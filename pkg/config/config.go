// Package config persists dotsync's machine configuration and loads the
// per-repository options file.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/arthur-debert/dotsync/pkg/types"
)

// CurrentVersion is the schema version written by this build. Files without
// a version field were written by older builds and load as version 0.
const CurrentVersion = 1

// Config is the machine configuration: which repository to sync and where
// the local clone lives.
type Config struct {
	Version     int    `json:"version"`
	RepoURL     string `json:"repo_url"`
	DotfilesDir string `json:"dotfiles_dir"`
}

// Store loads and saves the machine configuration at a fixed per-user
// location.
type Store struct {
	fs   types.FS
	path string
}

// NewStore creates a config store reading and writing the given file path
func NewStore(fs types.FS, path string) *Store {
	return &Store{fs: fs, path: path}
}

// Path returns the config file location
func (s *Store) Path() string {
	return s.path
}

// Load reads the config file. A missing file is not an error and yields a
// zero-value config; a file that exists but cannot be parsed is corrupt.
func (s *Store) Load() (Config, error) {
	logger := logging.GetLogger("config")

	var cfg Config
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info().Str("path", s.path).Msg("No configuration file found, using defaults")
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, errors.ErrFileAccess, "failed to read config file %s", s.path)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, errors.ErrConfigCorrupt,
			"config file %s is not valid JSON", s.path)
	}

	if cfg.Version > CurrentVersion {
		return Config{}, errors.Newf(errors.ErrConfigCorrupt,
			"config file %s has schema version %d, newer than this build supports (%d)",
			s.path, cfg.Version, CurrentVersion)
	}

	logger.Debug().
		Str("path", s.path).
		Int("version", cfg.Version).
		Str("repo_url", cfg.RepoURL).
		Str("dotfiles_dir", cfg.DotfilesDir).
		Msg("Configuration loaded")

	return cfg, nil
}

// Save writes the config, stamping the current schema version. Parent
// directories are created as needed.
func (s *Store) Save(cfg Config) error {
	logger := logging.GetLogger("config")

	cfg.Version = CurrentVersion

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigSave, "failed to encode config")
	}
	data = append(data, '\n')

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create config directory for %s", s.path)
	}

	if err := s.fs.WriteFile(s.path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigSave, "failed to write config file %s", s.path)
	}

	logger.Info().Str("path", s.path).Msg("Configuration saved")
	return nil
}
