package testutil

import "context"

// FakeGit is a recording git.Client for orchestration tests. Each method
// appends an op string; errors are scripted per operation name.
type FakeGit struct {
	Ops    []string
	Errors map[string]error

	ClonedURL string
	ClonedDir string
	Message   string
}

// NewFakeGit creates a fake with no scripted errors
func NewFakeGit() *FakeGit {
	return &FakeGit{Errors: make(map[string]error)}
}

func (f *FakeGit) record(op string) error {
	f.Ops = append(f.Ops, op)
	return f.Errors[op]
}

func (f *FakeGit) Clone(_ context.Context, url, dir string) error {
	f.ClonedURL = url
	f.ClonedDir = dir
	return f.record("clone")
}

func (f *FakeGit) StageAll(_ context.Context) error {
	return f.record("stage")
}

func (f *FakeGit) Commit(_ context.Context, message string) error {
	f.Message = message
	return f.record("commit")
}

func (f *FakeGit) Pull(_ context.Context, remote, branch string) error {
	return f.record("pull")
}

func (f *FakeGit) Push(_ context.Context, remote, branch string) error {
	return f.record("push")
}
