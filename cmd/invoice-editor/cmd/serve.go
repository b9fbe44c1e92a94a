package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rezonia/invoice-editor/internal/server"
	"github.com/rezonia/invoice-editor/internal/store"
)

var (
	serverAddr   string
	serverDebug  bool
	readTimeout  time.Duration
	writeTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the invoice editing API server",
	Long: `Start the HTTP API server that backs the browser invoice editor.

The API provides endpoints for:
  - POST   /api/v1/sessions                     - Create an editing session
  - GET    /api/v1/sessions/:id                 - Current invoice state
  - PUT    /api/v1/sessions/:id/header          - Edit a header field
  - POST   /api/v1/sessions/:id/items           - Add a line item
  - PUT    /api/v1/sessions/:id/items/:index    - Edit a line item field
  - DELETE /api/v1/sessions/:id/items/:index    - Remove a line item
  - GET    /api/v1/sessions/:id/preview         - Preview projection
  - GET    /api/v1/sessions/:id/export          - Download the PDF
  - GET    /health                              - Health check

Examples:
  # Start server on default port
  invoice-editor serve

  # Start on a custom port in debug mode
  invoice-editor serve --address :3000 --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", ":8080", "Server listen address")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 10*time.Second, "HTTP read timeout")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", 30*time.Second, "HTTP write timeout")
}

func runServe(cmd *cobra.Command, args []string) error {
	logLevel := zerolog.InfoLevel
	if serverDebug {
		logLevel = zerolog.DebugLevel
	}
	log := zerolog.New(os.Stderr).Level(logLevel).With().Timestamp().Logger()

	config := &server.Config{
		Address:      serverAddr,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		Debug:        serverDebug,
	}

	srv := server.NewServer(config, store.NewFile(storePath), log)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		fmt.Println("\nShutting down server...")
		os.Exit(0)
	}()

	fmt.Printf("Starting server on %s\n", serverAddr)
	printVerbose("Remembered values stored in %s\n", storePath)

	return srv.Run()
}
