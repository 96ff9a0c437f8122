package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/paths"
)

// Options are the per-repository knobs, loaded in layers: built-in
// defaults, then the .dotsync.toml at the dotfiles root, then DOTSYNC_*
// environment variables. Later layers win.
type Options struct {
	Remote        string `koanf:"remote"`
	Branch        string `koanf:"branch"`
	CommitMessage string `koanf:"commit_message"`
	BackupSuffix  string `koanf:"backup_suffix"`
}

// envPrefix is the prefix for environment overrides, e.g. DOTSYNC_BRANCH
const envPrefix = "DOTSYNC_"

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"remote":         "origin",
		"branch":         "main",
		"commit_message": "dotsync: update managed files",
		"backup_suffix":  ".bak",
	}
}

// LoadOptions loads the repo options for the given dotfiles directory.
// A missing .dotsync.toml is fine; a present but unparseable one is an
// error so a typo does not silently fall back to defaults.
func LoadOptions(dotfilesDir string) (Options, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return Options{}, errors.Wrap(err, errors.ErrInternal, "failed to load default options")
	}

	optionsPath := paths.OptionsPath(dotfilesDir)
	if _, err := os.Stat(optionsPath); err == nil {
		if err := k.Load(file.Provider(optionsPath), toml.Parser()); err != nil {
			return Options{}, errors.Wrapf(err, errors.ErrConfigCorrupt,
				"failed to parse options file %s", optionsPath)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return Options{}, errors.Wrap(err, errors.ErrInternal, "failed to load environment options")
	}

	var opts Options
	if err := k.Unmarshal("", &opts); err != nil {
		return Options{}, errors.Wrap(err, errors.ErrConfigCorrupt, "failed to decode options")
	}

	return opts, nil
}
