package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/iriscope-cli/internal/clean"
	"github.com/KaramelBytes/iriscope-cli/internal/dataset"
	"github.com/KaramelBytes/iriscope-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportFormat string
	exportSheet  string
	exportClean  bool
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Work with the built-in dataset",
}

var datasetExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the built-in dataset as CSV or XLSX",
	Long: `Write the built-in Iris dataset to a file. The format follows the output
extension (.csv or .xlsx) unless --format is given. Without --output the
CSV is printed to stdout.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(strings.TrimSpace(exportFormat))
		if format == "" {
			switch strings.ToLower(filepath.Ext(exportOutput)) {
			case ".xlsx":
				format = "xlsx"
			default:
				format = "csv"
			}
		}
		if format != "csv" && format != "xlsx" {
			return fmt.Errorf("unsupported --format: %s (use csv|xlsx)", exportFormat)
		}
		if format == "xlsx" && exportOutput == "" {
			return fmt.Errorf("xlsx export needs --output")
		}

		t, err := dataset.LoadIris()
		if err != nil {
			return err
		}
		if exportClean {
			t, _ = clean.Clean(t)
		}

		switch {
		case format == "xlsx":
			if err := dataset.WriteXLSX(exportOutput, exportSheet, t); err != nil {
				return err
			}
		case exportOutput == "":
			return dataset.WriteCSV(cmd.OutOrStdout(), t)
		default:
			var buf bytes.Buffer
			if err := dataset.WriteCSV(&buf, t); err != nil {
				return err
			}
			if err := utils.SafeWriteFile(exportOutput, buf.Bytes()); err != nil {
				return err
			}
		}
		rows, cols := t.Shape()
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d rows × %d columns to %s\n", rows, cols, exportOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(datasetCmd)
	datasetCmd.AddCommand(datasetExportCmd)
	datasetExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (.csv or .xlsx)")
	datasetExportCmd.Flags().StringVar(&exportFormat, "format", "", "csv|xlsx (default from extension)")
	datasetExportCmd.Flags().StringVar(&exportSheet, "sheet", "iris", "sheet name for XLSX output")
	datasetExportCmd.Flags().BoolVar(&exportClean, "clean", false, "export the cleaned table")
}
