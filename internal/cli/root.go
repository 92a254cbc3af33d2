// Package cli implements the relnote command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ariel-frischer/relnote/internal/config"
	clierrors "github.com/ariel-frischer/relnote/internal/errors"
	"github.com/ariel-frischer/relnote/internal/logging"
	"github.com/ariel-frischer/relnote/internal/release"
	"github.com/spf13/cobra"
)

// Command groups shown in help output
const (
	GroupRelease = "release"
	GroupProject = "project"
)

var (
	configFlag string
	debugFlag  bool
)

// now is the release clock. Tests replace it to pin section dates.
var now = time.Now

var rootCmd = &cobra.Command{
	Use:   "relnote <version>",
	Short: "Assemble pending changelog fragments into release notes",
	Long: `Assemble pending changelog fragments into a versioned release section.

Each fragment is a Markdown file named <name>.<category>.md in the fragment
directory (default .changelog/unreleased). A release run:
  1. Groups fragments by category in the configured category order
  2. Prepends a "## <version> (<date>)" section to CHANGELOG.md
  3. Removes the fragments that were consumed
  4. Writes only the new section to release_body.txt

When no fragments are pending nothing is written.

The version is used as given. A version spelled exactly like a subcommand
(preview, check, new, init, version, help, completion) runs that subcommand
instead; prefix it, e.g. "relnote v-check".`,
	Example: `  relnote v1.2.0              # Release pending fragments as v1.2.0
  relnote preview v1.2.0      # Show the section without writing anything
  relnote check               # List pending fragments and problems
  relnote new login-fix bugfix "Fix login redirect"`,
	Args:          versionArg("relnote"),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRelease,
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupRelease, Title: "Release Commands:"},
		&cobra.Group{ID: GroupProject, Title: "Project Commands:"},
	)

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Path to config file (default: .relnote/config.yml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging to stderr")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine())
	})
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	err := rootCmd.ExecuteContext(context.Background())
	if err == nil {
		return ExitSuccess
	}

	// ExitError failures have already been reported
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		clierrors.FprintError(rootCmd.ErrOrStderr(), err)
	}
	return exitCodeFor(err)
}

// versionArg validates the single <version> positional argument.
func versionArg(command string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		switch {
		case len(args) == 0 && !cmd.HasParent():
			return clierrors.MissingVersion()
		case len(args) == 0:
			return usageError(cmd, "release version is required")
		case len(args) > 1:
			return clierrors.TooManyArguments(command, len(args))
		}
		return nil
	}
}

func runRelease(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	_, err = release.Run(cmd.Context(), release.Options{
		Version:       args[0],
		FragmentDir:   cfg.FragmentDir,
		ChangelogFile: cfg.ChangelogFile,
		OutputFile:    cfg.OutputFile,
		Categories:    cfg.Categories,
		Cleanup:       cfg.CleanupMode(),
		Now:           now,
		Out:           cmd.OutOrStdout(),
		Logger:        newLogger(cmd),
	})
	if err != nil {
		return clierrors.ReleaseFailed(err)
	}
	return nil
}

// loadConfig loads configuration honoring the --config flag.
func loadConfig() (*config.Configuration, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, clierrors.InvalidConfig(err)
	}
	return cfg, nil
}

// newLogger returns the diagnostic logger for cmd, writing to stderr.
func newLogger(cmd *cobra.Command) *slog.Logger {
	return logging.New(cmd.ErrOrStderr(), logging.Level(debugFlag))
}

// usageError is returned for commands invoked with a bad argument count.
func usageError(cmd *cobra.Command, format string, a ...any) error {
	return clierrors.NewArgumentErrorWithUsage(fmt.Sprintf(format, a...), cmd.UseLine())
}
