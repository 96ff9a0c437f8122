// Package filesystem provides implementations of the types.FS interface.
//
// Production code uses NewOS, which delegates to the os package. Tests run
// against the same implementation rooted in t.TempDir directories, so the
// symlink and rename semantics under test are the real POSIX ones.
package filesystem
