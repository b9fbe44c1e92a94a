package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/invoice-editor/internal/render"
)

var (
	outputFile string
)

var exportCmd = &cobra.Command{
	Use:   "export <invoice.json>",
	Short: "Generate the PDF document for a saved invoice",
	Long: `Generate the downloadable PDF document for an invoice saved as JSON.

The invoice must pass the export check: sender and recipient filled in,
and at least one line item with a description and a positive amount.
The document is written as invoice-<id>.pdf next to the current directory
unless -o is given. A failed generation leaves no partial file behind.

Examples:
  invoice-editor export invoice.json
  invoice-editor export invoice.json -o /tmp/out.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: invoice-<id>.pdf)")
}

func runExport(cmd *cobra.Command, args []string) error {
	inv, err := loadInvoice(args[0])
	if err != nil {
		return err
	}

	if !inv.IsExportable() {
		return fmt.Errorf("%s is not ready to export; run 'invoice-editor validate %s' for details", args[0], args[0])
	}

	data, err := render.ExportPDF(inv)
	if err != nil {
		return err
	}

	out := outputFile
	if out == "" {
		out = render.Filename(inv)
	}

	// Write via temp file + rename so a failure never leaves a truncated
	// document at the target path.
	tmp := out + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("writing %s: %w", out, err)
	}
	if err := os.Rename(tmp, out); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("writing %s: %w", out, err)
	}

	printVerbose("Wrote %d bytes\n", len(data))
	fmt.Printf("Exported %s\n", out)
	return nil
}
