// Package generator orchestrates invoice generation: it validates the
// request, allocates the next invoice number, renders the PDF artifact and
// only then persists the advanced sequence and last-used values back to the
// metadata store. Any failure along the way leaves persisted state unchanged.
package generator

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"invoicer/internal/logger"
	"invoicer/internal/numbering"
	"invoicer/internal/render"
	"invoicer/internal/store"
	"invoicer/pkg/models"
)

// Request carries everything needed to generate one invoice.
type Request struct {
	Contractor models.Party
	Client     models.Party
	Items      []models.InvoiceItem

	// DueDays is the payment term: due date = issue date + DueDays.
	DueDays int

	Options render.Options
}

// Result reports a successful generation.
type Result struct {
	InvoiceNumber string
	Path          string
	TotalNet      decimal.Decimal
	TotalVAT      decimal.Decimal
	TotalGross    decimal.Decimal
}

// Service wires the numbering store and the renderer together.
type Service struct {
	store    *store.Store
	renderer *render.Renderer
	outDir   string
	now      func() time.Time
	log      zerolog.Logger
}

// NewService creates a generation service writing artifacts to outDir.
func NewService(st *store.Store, renderer *render.Renderer, outDir string) *Service {
	return &Service{
		store:    st,
		renderer: renderer,
		outDir:   outDir,
		now:      time.Now,
		log:      logger.WithComponent("generator"),
	}
}

// NewServiceWithClock creates a generation service with an injected clock.
func NewServiceWithClock(st *store.Store, renderer *render.Renderer, outDir string, now func() time.Time) *Service {
	s := NewService(st, renderer, outDir)
	s.now = now
	return s
}

// Validate checks the request before any model construction or state change.
func Validate(req Request) error {
	if req.Contractor.CompanyName == "" {
		return NewValidationError("contractor.company_name", req.Contractor.CompanyName, "company name is required")
	}
	if req.Contractor.Address == "" {
		return NewValidationError("contractor.address", req.Contractor.Address, "address is required")
	}
	if req.Client.CompanyName == "" {
		return NewValidationError("client.company_name", req.Client.CompanyName, "company name is required")
	}
	if req.Client.Address == "" {
		return NewValidationError("client.address", req.Client.Address, "address is required")
	}
	if len(req.Items) == 0 {
		return ErrNoItems
	}
	for i, it := range req.Items {
		if it.Description == "" {
			return NewValidationError("items.description", i, "item description cannot be empty")
		}
		if it.UnitPrice.IsNegative() {
			return NewValidationError("items.unit_price", it.UnitPrice, "unit price cannot be negative")
		}
		if it.Quantity < 0 {
			return NewValidationError("items.quantity", it.Quantity, "quantity cannot be negative")
		}
		if it.VATRate.IsNegative() {
			return NewValidationError("items.vat_rate", it.VATRate, "VAT rate cannot be negative")
		}
	}
	if req.DueDays < 0 {
		return NewValidationError("due_days", req.DueDays, "due days cannot be negative")
	}
	if _, err := render.ParseLanguage(string(req.Options.Language)); err != nil {
		return NewValidationError("language", req.Options.Language, "unsupported language")
	}
	return nil
}

// Generate runs the full pipeline. The metadata store is read once under the
// advisory lock; the invoice number is allocated on the in-memory record; the
// document is rendered atomically; and only after the artifact exists is the
// whole record, sequence included, written back in one save. A failure at any
// earlier stage leaves the store file untouched.
func (s *Service) Generate(req Request) (*Result, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}

	if err := s.store.Lock(); err != nil {
		return nil, newGenerationError("Lock", err)
	}
	defer func() {
		if err := s.store.Unlock(); err != nil {
			s.log.Warn().Err(err).Msg("Failed to release metadata lock")
		}
	}()

	meta, err := s.store.Load()
	if err != nil {
		return nil, newGenerationError("LoadMetadata", err)
	}

	now := s.now()
	number := numbering.Allocate(&meta, now)

	issueDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	inv := models.Invoice{
		Number:     number,
		IssueDate:  issueDate,
		DueDate:    issueDate.AddDate(0, 0, req.DueDays),
		Contractor: req.Contractor,
		Client:     req.Client,
		Items:      req.Items,
	}

	path, err := s.renderer.RenderFile(inv, req.Options, s.outDir)
	if err != nil {
		return nil, newGenerationError("Render", err)
	}

	// Document produced; now commit sequence, last-used values and options
	// in one whole-file save.
	meta.LastItems = make([]store.ItemRecord, 0, len(req.Items))
	for _, it := range req.Items {
		meta.LastItems = append(meta.LastItems, store.ItemRecordFrom(it))
	}
	meta.ContractorInfo = store.PartyRecordFrom(req.Contractor)
	meta.ClientInfo = store.PartyRecordFrom(req.Client)
	meta.IncludeVAT = req.Options.IncludeVAT
	meta.Language = string(req.Options.Language)
	meta.IncludeNote = req.Options.IncludeNote

	if err := s.store.Save(meta); err != nil {
		return nil, newGenerationError("SaveMetadata", err)
	}

	s.log.Info().
		Str("invoice_number", number).
		Str("path", path).
		Str("total_gross", inv.TotalGross().StringFixed(2)).
		Msg("Invoice generated")

	return &Result{
		InvoiceNumber: number,
		Path:          path,
		TotalNet:      inv.TotalNet(),
		TotalVAT:      inv.TotalVAT(),
		TotalGross:    inv.TotalGross(),
	}, nil
}
