package cmd

import (
	"fmt"

	"github.com/KaramelBytes/iriscope-cli/internal/characters"
	"github.com/spf13/cobra"
)

var charactersCmd = &cobra.Command{
	Use:   "characters",
	Short: "Print the hero and villain demo",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, line := range characters.Script() {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(charactersCmd)
}
