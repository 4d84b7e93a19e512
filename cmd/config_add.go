package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/brogergvhs/noveld/internal/config"

	"github.com/spf13/cobra"
)

var flagAddFrom string

var configAddCmd = &cobra.Command{
	Use:   "add [label]",
	Short: "Create a new config, from defaults or an existing YAML file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var label string
		if len(args) == 1 {
			label = args[0]
		} else {
			_, _ = fmt.Fprint(cmd.OutOrStdout(), "Enter label for new config: ")
			label, _ = bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			label = strings.TrimSpace(label)
		}

		if flagAddFrom != "" {
			if err := config.AddConfig(label, flagAddFrom); err != nil {
				return err
			}
			path, _ := config.ConfigPathByLabel(label)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %s as %s\n", flagAddFrom, path)
			return nil
		}

		path, err := config.CreateEmptyConfig(label)
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created new config: %s\n", path)
		return nil
	},
}

func init() {
	configAddCmd.Flags().StringVar(&flagAddFrom, "from", "", "copy settings from this YAML file")
	configCmd.AddCommand(configAddCmd)
}
