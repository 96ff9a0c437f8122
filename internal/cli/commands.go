// Package cli wires the cobra command tree for dotsync.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/dotsync/internal/version"
	"github.com/arthur-debert/dotsync/pkg/commands/adopt"
	"github.com/arthur-debert/dotsync/pkg/commands/initialize"
	"github.com/arthur-debert/dotsync/pkg/commands/link"
	"github.com/arthur-debert/dotsync/pkg/commands/status"
	"github.com/arthur-debert/dotsync/pkg/commands/syncer"
	"github.com/arthur-debert/dotsync/pkg/config"
	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/filesystem"
	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/arthur-debert/dotsync/pkg/paths"
	"github.com/arthur-debert/dotsync/pkg/style"
	"github.com/arthur-debert/dotsync/pkg/types"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:   "dotsync",
		Short: "Keep your dotfiles in a git repository and your machine in sync",
		Long: `dotsync clones your dotfiles repository, tracks which local files and
folders are managed, replaces them with symlinks into the clone, and keeps
repository and machine in sync with git add/commit/pull/push cycles.`,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newLinkCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// loadConfig loads the machine config and fails if dotsync has not been
// initialized yet
func loadConfig() (config.Config, error) {
	store := config.NewStore(filesystem.NewOS(), paths.ConfigFilePath())
	cfg, err := store.Load()
	if err != nil {
		return cfg, err
	}
	if cfg.DotfilesDir == "" {
		return cfg, errors.New(errors.ErrNotFound,
			"no dotfiles directory configured, run 'dotsync init <repo-url>' first")
	}
	return cfg, nil
}

func newInitCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "init <repo-url>",
		Short: "Clone the dotfiles repository and save the configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := initialize.Init(context.Background(), args[0], dir, initialize.Options{})
			if err != nil {
				return err
			}
			if result.Cloned {
				pterm.Success.Printfln("Cloned %s into %s", args[0], result.DotfilesDir)
			} else {
				pterm.Info.Printfln("Repository already cloned in %s", result.DotfilesDir)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "~/dotfiles", "Directory for the local clone")
	return cmd
}

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Commit and push local changes, pull remote ones, re-create links",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			result, err := syncer.Sync(context.Background(), syncer.Options{
				DotfilesDir: cfg.DotfilesDir,
			})
			if err != nil {
				return err
			}

			if result.Committed {
				pterm.Success.Printfln("Changes committed and pushed")
			} else {
				pterm.Info.Printfln("No local changes")
			}
			if result.PullFailed {
				pterm.Warning.Printfln("Pull from remote failed, local state may be behind")
			}
			for _, created := range result.Links.Created {
				pterm.Success.Printfln("Linked %s", created)
			}
			return nil
		},
	}
}

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <path>...",
		Short: "Bring files or folders under management",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			for _, path := range args {
				result, err := adopt.Adopt(context.Background(), path, adopt.Options{
					DotfilesDir: cfg.DotfilesDir,
				})
				if err != nil {
					return err
				}
				if result.Skipped {
					pterm.Warning.Printfln("Skipped %s (%s)", result.Path, result.SkipReason)
					continue
				}
				pterm.Success.Printfln("Adopted %s (backup at %s)", result.Path, result.BackupPath)
			}
			return nil
		},
	}
}

func newLinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "link",
		Short: "Create symlinks for every managed path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			result, err := link.Materialize(link.Options{DotfilesDir: cfg.DotfilesDir})
			if err != nil {
				return err
			}

			for _, created := range result.Created {
				pterm.Success.Printfln("Linked %s", created)
			}
			for _, skipped := range result.Skipped {
				pterm.Warning.Printfln("Skipped %s (already exists)", skipped)
			}
			return nil
		},
	}
}

func newStatusCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the link state of every managed path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			report, err := status.Report(status.Options{Config: cfg})
			if err != nil {
				return err
			}

			return renderStatus(cmd.OutOrStdout(), report, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json or yaml")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("dotsync version %s\n", version.Version)
			if version.Commit != "" {
				fmt.Printf("Commit: %s\n", version.Commit)
			}
			if version.Date != "" {
				fmt.Printf("Built:  %s\n", version.Date)
			}
		},
	}
}

func renderStatus(w io.Writer, report *types.StatusReport, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer func() { _ = enc.Close() }()
		return enc.Encode(report)
	case "text":
		fmt.Fprintln(w, style.TitleStyle.Render("dotsync status"))
		fmt.Fprintf(w, "repository: %s\n", report.RepoURL)
		fmt.Fprintf(w, "dotfiles:   %s\n", report.DotfilesDir)
		if len(report.Managed) == 0 {
			fmt.Fprintln(w, style.MutedStyle.Render("no managed paths"))
			return nil
		}
		for _, m := range report.Managed {
			fmt.Fprintf(w, "  %s %s %s\n",
				style.StateIndicator(m.State),
				style.PathStyle.Render(m.Path),
				style.MutedStyle.Render("("+string(m.State)+")"))
		}
		return nil
	default:
		return errors.Newf(errors.ErrInvalidInput, "unknown format %q", format)
	}
}

// Execute runs the root command, printing the failure before exiting
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
