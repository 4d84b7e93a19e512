package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/brogergvhs/noveld/internal/config"

	"github.com/spf13/cobra"
)

var configEditCmd = &cobra.Command{
	Use:   "edit [label]",
	Short: "Open the current or the named config in $VISUAL / $EDITOR",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label := ""
		if len(args) == 1 {
			label = args[0]
		} else {
			current, err := config.CurrentLabel()
			if err != nil {
				return fmt.Errorf("failed to get current config label: %w", err)
			}
			label = current
		}

		path, err := config.ConfigPathByLabel(label)
		if err != nil {
			return err
		}

		editor := editorCommand(path)
		editor.Stdin = os.Stdin
		editor.Stdout = os.Stdout
		editor.Stderr = os.Stderr

		if err := editor.Run(); err != nil {
			return fmt.Errorf("failed to open %s: %w", editor.Path, err)
		}

		return nil
	},
}

// editorCommand honours editors configured with arguments, e.g.
// EDITOR="code --wait".
func editorCommand(path string) *exec.Cmd {
	argv := []string{"nvim"}
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if f := strings.Fields(os.Getenv(env)); len(f) > 0 {
			argv = f
			break
		}
	}

	return exec.Command(argv[0], append(argv[1:], path)...)
}

func init() {
	configCmd.AddCommand(configEditCmd)
}
