package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/relnote/internal/config"
	clierrors "github.com/ariel-frischer/relnote/internal/errors"
	"github.com/ariel-frischer/relnote/internal/output"
	"github.com/spf13/cobra"
)

// keepFile holds the fragment directory in version control while it is empty.
const keepFile = ".gitkeep"

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a project config and fragment directory",
	Long: `Initialize relnote in the current directory.

This command:
  1. Writes a commented config to .relnote/config.yml
  2. Creates the fragment directory with a .gitkeep file

An existing config is left alone unless --force is given.

Examples:
  relnote init           # First-time setup
  relnote init --force   # Reset the config to defaults`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.GroupID = GroupProject
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	out := cmd.OutOrStdout()

	cfgPath := config.ProjectConfigPath()
	if configFlag != "" {
		cfgPath = configFlag
	}

	written, err := writeConfigTemplate(cfgPath, force)
	if err != nil {
		return clierrors.Wrap(err, clierrors.Runtime)
	}
	if written {
		output.PrintSuccess(out, "Config", "created "+cfgPath)
	} else {
		output.PrintSuccess(out, "Config", cfgPath+" already exists (use --force to overwrite)")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.FragmentDir, 0o755); err != nil {
		return clierrors.Wrap(fmt.Errorf("creating fragment directory: %w", err), clierrors.Runtime)
	}
	keep := filepath.Join(cfg.FragmentDir, keepFile)
	if _, err := os.Stat(keep); os.IsNotExist(err) {
		if err := os.WriteFile(keep, nil, 0o644); err != nil {
			return clierrors.Wrap(fmt.Errorf("creating %s: %w", keep, err), clierrors.Runtime)
		}
	}
	output.PrintSuccess(out, "Fragments", cfg.FragmentDir+"/")

	output.PrintHint(out, `Next: relnote new <name> <category> "What changed"`)
	return nil
}

// writeConfigTemplate writes the default template to path. It reports false
// when the file exists and force is not set.
func writeConfigTemplate(path string, force bool) (bool, error) {
	if _, err := os.Stat(path); err == nil && !force {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return false, fmt.Errorf("writing config: %w", err)
	}
	return true, nil
}
