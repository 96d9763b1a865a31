package cmd

import (
	"fmt"

	"github.com/KaramelBytes/iriscope-cli/internal/textconv"
	"github.com/spf13/cobra"
)

var lowercaseCmd = &cobra.Command{
	Use:   "lowercase <file>",
	Short: "Write a lower-cased copy of a file as modified_<name>",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := textconv.Lowercase(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Modified content written to '%s'\n", out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lowercaseCmd)
}
