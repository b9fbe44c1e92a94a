package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rezonia/invoice-editor/internal/model"
	"github.com/rezonia/invoice-editor/internal/money"
)

var validateCmd = &cobra.Command{
	Use:   "validate <invoice.json>",
	Short: "Check whether a saved invoice is ready to export",
	Long: `Check an invoice saved as JSON against the export conditions.

Conditions checked:
  - Sender text is filled in
  - Recipient text is filled in
  - At least one line item has a description and a positive amount

Examples:
  invoice-editor validate invoice.json`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	inv, err := loadInvoice(args[0])
	if err != nil {
		return err
	}

	var missing []string
	if strings.TrimSpace(inv.From) == "" {
		missing = append(missing, "sender text is empty")
	}
	if strings.TrimSpace(inv.BillTo) == "" {
		missing = append(missing, "recipient text is empty")
	}
	if !hasPricedItem(inv) {
		missing = append(missing, "no line item with a description and a positive amount")
	}

	for _, m := range missing {
		fmt.Printf("  - %s\n", m)
	}

	if !inv.IsExportable() {
		return fmt.Errorf("%s is not ready to export", args[0])
	}

	fmt.Printf("%s is ready to export (total %s)\n", args[0],
		money.FormatWithCurrency(inv.GrandTotal(), string(inv.Currency)))
	return nil
}

func hasPricedItem(inv *model.Invoice) bool {
	for _, item := range inv.Items {
		if strings.TrimSpace(item.Description) != "" && item.Amount.GreaterThan(money.Zero) {
			return true
		}
	}
	return false
}
