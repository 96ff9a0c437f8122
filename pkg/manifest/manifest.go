// Package manifest persists the ordered list of managed paths. The file
// lives inside the dotfiles directory so it travels with the repository.
package manifest

import (
	"encoding/json"
	"os"

	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/arthur-debert/dotsync/pkg/types"
)

// CurrentVersion is the schema version written by this build
const CurrentVersion = 1

// document is the on-disk shape of the manifest
type document struct {
	Version int      `json:"version"`
	Managed []string `json:"managed"`
}

// Store reads and rewrites the manifest file. It performs no
// deduplication; callers check for an existing mirror before appending.
type Store struct {
	fs   types.FS
	path string
}

// NewStore creates a manifest store for the given file path
func NewStore(fs types.FS, path string) *Store {
	return &Store{fs: fs, path: path}
}

// Path returns the manifest file location
func (s *Store) Path() string {
	return s.path
}

// Get returns the managed-path list in insertion order. A missing file
// yields an empty list. Early builds stored a bare JSON array of paths;
// that shape still loads and is rewritten in the current shape on the
// next Append.
func (s *Store) Get() ([]string, error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read manifest %s", s.path)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err == nil {
		if doc.Version > CurrentVersion {
			return nil, errors.Newf(errors.ErrManifestCorrupt,
				"manifest %s has schema version %d, newer than this build supports (%d)",
				s.path, doc.Version, CurrentVersion)
		}
		return doc.Managed, nil
	}

	// Legacy shape: bare array of absolute path strings
	var legacy []string
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestCorrupt,
			"manifest %s is not valid JSON", s.path)
	}
	return legacy, nil
}

// Append adds a path to the list and rewrites the whole file
func (s *Store) Append(path string) error {
	logger := logging.GetLogger("manifest")

	managed, err := s.Get()
	if err != nil {
		return err
	}

	managed = append(managed, path)
	if err := s.write(managed); err != nil {
		return err
	}

	logger.Info().
		Str("path", path).
		Int("managed", len(managed)).
		Msg("Path added to manifest")
	return nil
}

func (s *Store) write(managed []string) error {
	doc := document{Version: CurrentVersion, Managed: managed}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrManifestSave, "failed to encode manifest")
	}
	data = append(data, '\n')

	if err := s.fs.WriteFile(s.path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrManifestSave, "failed to write manifest %s", s.path)
	}
	return nil
}
