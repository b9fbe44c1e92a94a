package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rezonia/invoice-editor/internal/render"
)

var previewCmd = &cobra.Command{
	Use:   "preview <invoice.json>",
	Short: "Render a saved invoice as plain text",
	Long: `Render the preview projection of an invoice saved as JSON.

The preview shows exactly the numbers the exported PDF will carry: the
same rounding and the same currency suffix.

Examples:
  invoice-editor preview invoice.json`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	inv, err := loadInvoice(args[0])
	if err != nil {
		return err
	}

	fmt.Print(render.Preview(inv).Text())
	return nil
}
