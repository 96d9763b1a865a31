package cmd

import (
	"fmt"
	"strconv"

	"github.com/KaramelBytes/iriscope-cli/internal/calc"
	"github.com/spf13/cobra"
)

var calcCmd = &cobra.Command{
	Use:   "calc <a> <op> <b>",
	Short: "Apply + - * / to two numbers",
	Example: `  iriscope calc 6 / 4
  iriscope calc 2 '*' 3`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := parseNumber(args[0])
		if err != nil {
			return err
		}
		b, err := parseNumber(args[2])
		if err != nil {
			return err
		}
		op := args[1]
		res, err := calc.Calculate(a, b, op)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%g %s %g = %g\n", a, op, b, res)
		return nil
	},
}

var discountCmd = &cobra.Command{
	Use:   "discount <price> <percent>",
	Short: "Apply a percentage discount of at least 20%",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		price, err := parseNumber(args[0])
		if err != nil {
			return err
		}
		pct, err := parseNumber(args[1])
		if err != nil {
			return err
		}
		final, err := calc.Discount(price, pct)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "The final price after discount (if applicable) is: %.2f\n", final)
		return nil
	},
}

func parseNumber(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return f, nil
}

func init() {
	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(discountCmd)
}
