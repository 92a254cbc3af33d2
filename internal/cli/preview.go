package cli

import (
	"fmt"

	"github.com/ariel-frischer/relnote/internal/changelog"
	clierrors "github.com/ariel-frischer/relnote/internal/errors"
	"github.com/ariel-frischer/relnote/internal/release"
	"github.com/spf13/cobra"
)

var previewPlainFlag bool

var previewCmd = &cobra.Command{
	Use:   "preview <version>",
	Short: "Show the release section without writing anything",
	Long: `Render the release section for the pending fragments exactly as a
release run would, without touching CHANGELOG.md, the fragments, or the
release body file.

Diagnostics (malformed names, unknown categories) go to stderr so the
section on stdout can be piped. On a terminal the section is rendered as
Markdown; use --plain for the raw text.

Examples:
  relnote preview v1.2.0           # Rendered preview
  relnote preview v1.2.0 --plain   # Raw Markdown`,
	Args: versionArg("relnote preview"),
	RunE: runPreview,
}

func init() {
	previewCmd.GroupID = GroupRelease
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().BoolVar(&previewPlainFlag, "plain", false, "Write raw Markdown (no terminal rendering)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	result, err := release.Run(cmd.Context(), release.Options{
		Version:       args[0],
		FragmentDir:   cfg.FragmentDir,
		ChangelogFile: cfg.ChangelogFile,
		OutputFile:    cfg.OutputFile,
		Categories:    cfg.Categories,
		Cleanup:       cfg.CleanupMode(),
		DryRun:        true,
		Now:           now,
		Out:           cmd.ErrOrStderr(),
		Logger:        newLogger(cmd),
	})
	if err != nil {
		return clierrors.ReleaseFailed(err)
	}
	if result.Skipped {
		return nil
	}

	out := cmd.OutOrStdout()
	opts := changelog.PreviewOptions{
		Plain: previewPlainFlag || !changelog.IsTerminal(out),
	}
	if err := changelog.WritePreview(result.Section, out, opts); err != nil {
		return fmt.Errorf("writing preview: %w", err)
	}
	return nil
}
