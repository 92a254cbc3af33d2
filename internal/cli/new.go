package cli

import (
	"strings"

	clierrors "github.com/ariel-frischer/relnote/internal/errors"
	"github.com/ariel-frischer/relnote/internal/fragment"
	"github.com/ariel-frischer/relnote/internal/output"
	"github.com/spf13/cobra"
)

// placeholderText is written when no fragment text is given.
const placeholderText = "Describe this change."

var newCmd = &cobra.Command{
	Use:   "new <name> <category> [text...]",
	Short: "Create a changelog fragment",
	Long: `Create a fragment file <name>.<category>.md in the fragment directory.

The category must be one of the configured categories. Remaining arguments
are joined with spaces to form the entry text; without them a placeholder
is written for you to edit. Existing fragments are never overwritten.

Examples:
  relnote new login-fix bugfix "Fix login redirect loop"
  relnote new dark-mode feature Add a dark mode toggle
  relnote new api-v2 breaking`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 2 {
			return usageError(cmd, "requires a name and a category, received %d argument(s)", len(args))
		}
		return nil
	},
	RunE: runNew,
}

func init() {
	newCmd.GroupID = GroupProject
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	name, category := args[0], args[1]
	if !cfg.Categories.Has(category) {
		return clierrors.UnknownCategory(category, cfg.Categories.Keys())
	}

	text := strings.Join(args[2:], " ")
	if strings.TrimSpace(text) == "" {
		text = placeholderText
	}

	path, err := fragment.Create(cfg.FragmentDir, name, category, text)
	if err != nil {
		return clierrors.Wrap(err, clierrors.Argument)
	}

	output.PrintSuccess(cmd.OutOrStdout(), "", "Created "+path)
	return nil
}
