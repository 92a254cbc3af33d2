package cli

import (
	"fmt"

	"github.com/ariel-frischer/relnote/internal/changelog"
	clierrors "github.com/ariel-frischer/relnote/internal/errors"
	"github.com/ariel-frischer/relnote/internal/fragment"
	"github.com/spf13/cobra"
)

var checkPlainFlag bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "List pending fragments and report naming problems",
	Long: `List the pending fragments grouped by category and report files that a
release run would skip or drop.

Returns exit code 0 when every fragment is well formed and uses a
configured category, or exit code 2 otherwise. Useful as a CI gate on
pull requests.

Examples:
  relnote check           # Colored listing
  relnote check --plain   # Plain output (no colors)`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.GroupID = GroupRelease
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkPlainFlag, "plain", false, "Plain text output (no colors)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	coll, err := fragment.Collect(cfg.FragmentDir)
	if err != nil {
		return clierrors.Wrap(err, clierrors.Runtime)
	}

	out := cmd.OutOrStdout()
	opts := changelog.FormatOptions{
		Plain: checkPlainFlag || !changelog.IsTerminal(out),
	}
	if err := changelog.FormatPending(coll, cfg.Categories, out, opts); err != nil {
		return fmt.Errorf("writing fragment listing: %w", err)
	}

	unknown := 0
	for _, key := range coll.Keys() {
		if !cfg.Categories.Has(key) {
			unknown += len(coll.ByCategory[key])
		}
	}

	if len(coll.Skipped) > 0 || unknown > 0 {
		clierrors.FprintError(cmd.ErrOrStderr(), clierrors.FragmentProblems(len(coll.Skipped), unknown))
		return NewExitError(ExitValidationFailed)
	}
	return nil
}
