package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/dotsync/pkg/types"
)

func sampleReport() *types.StatusReport {
	return &types.StatusReport{
		RepoURL:     "https://example/dots",
		DotfilesDir: "/tmp/dots",
		Managed: []types.ManagedStatus{
			{Path: "/home/u/.bashrc", Mirror: "/tmp/dots/home/u/.bashrc", State: types.StateLinked},
			{Path: "/home/u/.vimrc", Mirror: "/tmp/dots/home/u/.vimrc", State: types.StateConflict},
		},
	}
}

func TestRenderStatusText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderStatus(&buf, sampleReport(), "text"))

	out := buf.String()
	assert.Contains(t, out, "https://example/dots")
	assert.Contains(t, out, "/tmp/dots")
	assert.Contains(t, out, "/home/u/.bashrc")
	assert.Contains(t, out, "linked")
	assert.Contains(t, out, "conflict")
}

func TestRenderStatusJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderStatus(&buf, sampleReport(), "json"))

	var decoded types.StatusReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "https://example/dots", decoded.RepoURL)
	require.Len(t, decoded.Managed, 2)
	assert.Equal(t, types.StateLinked, decoded.Managed[0].State)
}

func TestRenderStatusYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderStatus(&buf, sampleReport(), "yaml"))

	var decoded types.StatusReport
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "/tmp/dots", decoded.DotfilesDir)
}

func TestRenderStatusUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, renderStatus(&buf, sampleReport(), "xml"))
}

func TestRootCmdHasExpectedSubcommands(t *testing.T) {
	root := NewRootCmd()

	expected := []string{"init", "sync", "add", "link", "status", "version"}
	for _, name := range expected {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		assert.True(t, found, "missing subcommand %s", name)
	}
}
