package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"invoicer/internal/config"
	"invoicer/internal/generator"
	"invoicer/internal/logger"
	"invoicer/internal/render"
	"invoicer/internal/store"
	"invoicer/pkg/models"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the next invoice as a PDF document",
	Long: `Generate an invoice: allocate the next invoice number, render the PDF
into the output directory and remember the used contractor, client, items and
option flags for the next run.

Contractor details, client details, line items and option flags all default to
the values remembered from the previous invoice, so a recurring monthly
invoice is generated with no arguments at all. Each input can be overridden
per run with a flag.

Line item files and contractor/client files are JSON, in the same shape the
metadata store uses:

  items:      [{"description": "Consulting", "unit_price": "100.00",
                "quantity": 2, "vat_rate": "22"}]
  party:      {"company_name": "ABC d.o.o.", "address": "Main St 1",
               "registration_number": "...", "vat_number": "...",
               "bank_info": "...", "swift": "..."}`,
	Example: `  # Repeat the last invoice with a fresh number and today's dates
  invoicer generate

  # New line items, client picked from the client directory
  invoicer generate --items-file items.json --client "ABC d.o.o."

  # Slovene invoice with VAT columns and the reverse charge note
  invoicer generate --language Slovene --include-vat --include-note

  # 30-day payment term, PDFs into a different directory
  invoicer generate --due-days 30 --output-dir ./invoices`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().String("items-file", "", "JSON file with line items (default: last-used items)")
	generateCmd.Flags().String("contractor-file", "", "JSON file with contractor info (default: last-used info)")
	generateCmd.Flags().String("client", "", "Pick a client from the client directory by company name")
	generateCmd.Flags().String("client-file", "", "JSON file with client info (default: last-used info)")
	generateCmd.Flags().Int("due-days", 0, "Payment term in days (default: INVOICE_DEFAULT_DUE_DAYS)")
	generateCmd.Flags().String("language", "", "Invoice language: English or Slovene (default: last-used)")
	generateCmd.Flags().Bool("include-vat", false, "Include VAT columns and totals (default: last-used)")
	generateCmd.Flags().Bool("include-note", false, "Include the reverse charge note (default: last-used)")
	generateCmd.Flags().String("output-dir", "", "Directory for the PDF (default: INVOICE_OUTPUT_DIR)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("generate")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	st := store.New(cfg.MetadataFile)

	// Startup read: pre-populate every input from the remembered state, the
	// way the form pre-fills its fields.
	meta, err := st.Load()
	if err != nil {
		return handleGenerateError(err, log)
	}

	req, err := buildRequest(cmd, cfg, meta, log)
	if err != nil {
		return handleGenerateError(err, log)
	}

	outDir := cfg.OutputDir
	if v, _ := cmd.Flags().GetString("output-dir"); v != "" {
		outDir = v
	}

	svc := generator.NewService(st, render.NewRenderer(), outDir)
	result, err := svc.Generate(*req)
	if err != nil {
		return handleGenerateError(err, log)
	}

	fmt.Printf("Invoice %s generated: %s\n", result.InvoiceNumber, result.Path)
	if req.Options.IncludeVAT {
		fmt.Printf("  Net:   %s EUR\n", render.FormatAmount(result.TotalNet, req.Options.Language))
		fmt.Printf("  VAT:   %s EUR\n", render.FormatAmount(result.TotalVAT, req.Options.Language))
		fmt.Printf("  Total: %s EUR\n", render.FormatAmount(result.TotalGross, req.Options.Language))
	} else {
		fmt.Printf("  Total: %s EUR\n", render.FormatAmount(result.TotalNet, req.Options.Language))
	}
	return nil
}

// buildRequest resolves each input from its flag, falling back to the
// remembered metadata values and the configured defaults.
func buildRequest(cmd *cobra.Command, cfg *config.Config, meta store.Metadata, log zerolog.Logger) (*generator.Request, error) {
	contractor := meta.ContractorInfo.Party()
	if path, _ := cmd.Flags().GetString("contractor-file"); path != "" {
		rec, err := readPartyFile(path)
		if err != nil {
			return nil, err
		}
		contractor = rec.Party()
	}

	client, err := resolveClient(cmd, cfg, meta, log)
	if err != nil {
		return nil, err
	}

	items := make([]models.InvoiceItem, 0, len(meta.LastItems))
	for _, rec := range meta.LastItems {
		items = append(items, rec.Item())
	}
	if path, _ := cmd.Flags().GetString("items-file"); path != "" {
		items, err = readItemsFile(path)
		if err != nil {
			return nil, err
		}
	}

	dueDays := cfg.DefaultDueDays
	if cmd.Flags().Changed("due-days") {
		dueDays, _ = cmd.Flags().GetInt("due-days")
	}

	langName := meta.Language
	if v, _ := cmd.Flags().GetString("language"); v != "" {
		langName = v
	}
	language, err := render.ParseLanguage(langName)
	if err != nil {
		return nil, err
	}

	includeVAT := meta.IncludeVAT
	if cmd.Flags().Changed("include-vat") {
		includeVAT, _ = cmd.Flags().GetBool("include-vat")
	}
	includeNote := meta.IncludeNote
	if cmd.Flags().Changed("include-note") {
		includeNote, _ = cmd.Flags().GetBool("include-note")
	}

	return &generator.Request{
		Contractor: contractor,
		Client:     client,
		Items:      items,
		DueDays:    dueDays,
		Options: render.Options{
			Language:    language,
			IncludeVAT:  includeVAT,
			IncludeNote: includeNote,
		},
	}, nil
}

// resolveClient picks the client info from, in order of precedence: the
// --client directory lookup, a --client-file, or the remembered client.
func resolveClient(cmd *cobra.Command, cfg *config.Config, meta store.Metadata, log zerolog.Logger) (models.Party, error) {
	if name, _ := cmd.Flags().GetString("client"); name != "" {
		clients, err := store.LoadClients(cfg.ClientsFile)
		if err != nil {
			return models.Party{}, err
		}
		c, ok := store.FindClient(clients, name)
		if !ok {
			return models.Party{}, fmt.Errorf("client %q not found in %s", name, cfg.ClientsFile)
		}
		log.Debug().Str("client", name).Msg("Client resolved from directory")
		return c.Party(), nil
	}

	if path, _ := cmd.Flags().GetString("client-file"); path != "" {
		rec, err := readPartyFile(path)
		if err != nil {
			return models.Party{}, err
		}
		return rec.Party(), nil
	}

	return meta.ClientInfo.Party(), nil
}

func readPartyFile(path string) (store.PartyRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return store.PartyRecord{}, fmt.Errorf("failed to read party file %s: %w", path, err)
	}
	var rec store.PartyRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return store.PartyRecord{}, fmt.Errorf("failed to parse party file %s: %w", path, err)
	}
	return rec, nil
}

func readItemsFile(path string) ([]models.InvoiceItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read items file %s: %w", path, err)
	}
	var recs []store.ItemRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("failed to parse items file %s: %w", path, err)
	}
	items := make([]models.InvoiceItem, 0, len(recs))
	for _, rec := range recs {
		items = append(items, rec.Item())
	}
	return items, nil
}

// handleGenerateError provides user-friendly messages for generation failures
func handleGenerateError(err error, log zerolog.Logger) error {
	log.Error().Err(err).Msg("Invoice generation failed")

	var validationErr *generator.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return fmt.Errorf("invalid input: %s", validationErr.Message)
	case errors.Is(err, generator.ErrNoItems):
		return fmt.Errorf("no line items: pass --items-file or generate an invoice with items first")
	case errors.Is(err, store.ErrLocked):
		return fmt.Errorf("another invoicer process is running. If not, remove the stale .lock file next to the metadata store")
	case errors.Is(err, store.ErrCorrupt):
		return fmt.Errorf("the metadata or clients file is damaged and was left untouched. Repair or move it before generating again: %w", err)
	case errors.Is(err, render.ErrUnsupportedLanguage):
		return fmt.Errorf("unsupported language. Supported values: English, Slovene")
	default:
		return fmt.Errorf("invoice generation failed: %w", err)
	}
}
