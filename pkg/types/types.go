// Package types contains the shared types used across dotsync packages.
package types

import "io/fs"

// FS abstracts the filesystem operations dotsync performs, so tests can
// inject a sandboxed implementation.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)
	Rename(oldpath, newpath string) error
	Remove(name string) error
	RemoveAll(path string) error
	ReadDir(name string) ([]fs.DirEntry, error)
}

// LinkState classifies a managed path for status reporting.
type LinkState string

const (
	// StateLinked means a symlink at the original path points into the mirror
	StateLinked LinkState = "linked"
	// StateConflict means a real file or directory occupies the original path
	StateConflict LinkState = "conflict"
	// StateUnlinked means the mirror exists but nothing sits at the original path
	StateUnlinked LinkState = "unlinked"
	// StateMissing means neither the original nor the mirror exists
	StateMissing LinkState = "missing"
)

// ManagedStatus is the status of one managed path.
type ManagedStatus struct {
	Path   string    `json:"path" yaml:"path"`
	Mirror string    `json:"mirror" yaml:"mirror"`
	State  LinkState `json:"state" yaml:"state"`
}

// StatusReport is the full status of the tool for one machine.
type StatusReport struct {
	RepoURL     string          `json:"repo_url" yaml:"repo_url"`
	DotfilesDir string          `json:"dotfiles_dir" yaml:"dotfiles_dir"`
	Managed     []ManagedStatus `json:"managed" yaml:"managed"`
}

// LinkResult reports the outcome of a link materialization pass.
type LinkResult struct {
	Created []string
	Skipped []string
}

// AdoptResult reports the outcome of adopting a path.
type AdoptResult struct {
	Path       string
	Mirror     string
	BackupPath string
	Skipped    bool
	SkipReason string
	IsDir      bool
}

// SyncResult reports what a sync cycle did.
type SyncResult struct {
	Committed  bool
	Pushed     bool
	PullFailed bool
	Links      LinkResult
}

// InitResult reports the outcome of initializing the dotfiles clone.
type InitResult struct {
	Cloned      bool
	DotfilesDir string
}
