package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"invoicer/internal/config"
	"invoicer/internal/logger"
	"invoicer/internal/store"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "List the predefined clients",
	Long: `List the client directory: the predefined clients that can be picked
with 'invoicer generate --client <name>'.

The directory is a read-only JSON file (INVOICE_CLIENTS_FILE) containing an
array of client objects with company_name, address and optional
registration_number and vat_number fields. Invoicer never modifies it.`,
	Args: cobra.NoArgs,
	RunE: runClients,
}

func init() {
	rootCmd.AddCommand(clientsCmd)
}

func runClients(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("clients")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	clients, err := store.LoadClients(cfg.ClientsFile)
	if err != nil {
		log.Error().Err(err).Str("path", cfg.ClientsFile).Msg("Failed to load client directory")
		return fmt.Errorf("failed to load client directory: %w", err)
	}

	if len(clients) == 0 {
		fmt.Printf("No predefined clients in %s\n", cfg.ClientsFile)
		return nil
	}

	for _, c := range clients {
		fmt.Printf("%s\n", c.CompanyName)
		fmt.Printf("    %s\n", c.Address)
		if c.RegistrationNumber != "" {
			fmt.Printf("    Registration: %s\n", c.RegistrationNumber)
		}
		if c.VATNumber != "" {
			fmt.Printf("    VAT: %s\n", c.VATNumber)
		}
	}
	return nil
}
