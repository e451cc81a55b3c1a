package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"invoicer/internal/config"
	"invoicer/internal/logger"
	"invoicer/internal/numbering"
	"invoicer/internal/store"
)

var numberCmd = &cobra.Command{
	Use:   "number",
	Short: "Allocate or preview the next invoice number",
	Long: `Allocate the next invoice number from the metadata store and print it.

Numbers have the form YYYY-NNN: the current calendar year and a three-digit
sequence that restarts at 001 each year. Allocation advances the stored
sequence immediately; use --peek to see the upcoming number without
consuming it.`,
	Example: `  # Consume and print the next number
  invoicer number

  # Show the upcoming number without consuming it
  invoicer number --peek`,
	Args: cobra.NoArgs,
	RunE: runNumber,
}

func init() {
	rootCmd.AddCommand(numberCmd)

	numberCmd.Flags().Bool("peek", false, "Show the next number without consuming it")
}

func runNumber(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("number")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	peek, _ := cmd.Flags().GetBool("peek")
	svc := numbering.NewService(store.New(cfg.MetadataFile))

	var number string
	if peek {
		number, err = svc.Peek()
	} else {
		number, err = svc.Next()
	}
	if err != nil {
		log.Error().Err(err).Bool("peek", peek).Msg("Number allocation failed")
		if errors.Is(err, store.ErrCorrupt) {
			return fmt.Errorf("the metadata file is damaged; refusing to allocate a number that may already be in use: %w", err)
		}
		return err
	}

	fmt.Println(number)
	return nil
}
