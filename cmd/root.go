package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"invoicer/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "invoicer",
	Short: "Invoicer - generate numbered PDF invoices from the command line",
	Long: `Invoicer is a small command-line invoice generator. It keeps an
auto-incrementing invoice number sequence, your last-used contractor and
client details and line items in a flat JSON metadata file, reads predefined
clients from a JSON directory, and renders each invoice as an A4 PDF named by
its invoice number.

Settings come from environment variables (a .env file is honored):
  INVOICE_METADATA_FILE   - metadata store path (default: invoice_metadata.json)
  INVOICE_CLIENTS_FILE    - client directory path (default: clients.json)
  INVOICE_OUTPUT_DIR      - where PDFs are written (default: .)
  INVOICE_DEFAULT_DUE_DAYS - default payment term in days (default: 15)`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Welcome to Invoicer!")
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
