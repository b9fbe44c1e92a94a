package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rezonia/invoice-editor/internal/model"
)

var (
	version = "1.0.0"

	// Global flags
	verbose   bool
	storePath string
)

var rootCmd = &cobra.Command{
	Use:   "invoice-editor",
	Short: "Build, preview and export invoices",
	Long: `Invoice Editor is the backend of a browser-based invoice builder.

It serves an editing API for a web front end and can also work with
invoice documents saved as JSON files.

Examples:
  # Start the editing API server
  invoice-editor serve

  # Render a saved invoice as plain text
  invoice-editor preview invoice.json

  # Check whether a saved invoice is complete enough to export
  invoice-editor validate invoice.json

  # Generate the PDF document
  invoice-editor export invoice.json`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "Path of the key-value store file (env: INVOICE_EDITOR_STORE)")

	// Load from environment variables if not set via flags
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// Store path
	if storePath == "" {
		storePath = os.Getenv("INVOICE_EDITOR_STORE")
	}
	if storePath == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			storePath = filepath.Join(dir, "invoice-editor", "store.json")
		}
	}
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// loadInvoice reads an invoice JSON document. Derived line amounts are
// recomputed after loading, so a hand-edited file can never carry a stale
// amount into a rendering.
func loadInvoice(path string) (*model.Invoice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var inv model.Invoice
	if err := json.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	if _, ok := model.ParseCurrency(string(inv.Currency)); !ok {
		return nil, fmt.Errorf("%s: unsupported currency %q", path, inv.Currency)
	}
	if len(inv.Items) == 0 {
		inv.Items = []model.LineItem{model.NewLineItem()}
	}
	for i := range inv.Items {
		inv.Items[i].Recalculate()
	}
	return &inv, nil
}
