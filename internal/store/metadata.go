// Package store provides flat-file JSON persistence for the invoice
// application: the metadata store (invoice number sequence, last-used
// contractor/client info, last-used line items, saved option flags) and the
// read-only client directory.
//
// The metadata store is the sole durable owner of cross-session state. It is
// read once at startup and written back in full on each successful invoice
// generation, with last-writer-wins semantics. Writes go through a
// write-to-temp-then-rename discipline so a crash mid-write never leaves a
// half-written file behind.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"invoicer/internal/logger"
	"invoicer/pkg/models"
)

// ItemRecord is the wire form of a line item as persisted in last_items.
type ItemRecord struct {
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	VATRate     decimal.Decimal `json:"vat_rate"`
}

// Item converts the wire record into a model line item.
func (r ItemRecord) Item() models.InvoiceItem {
	return models.NewInvoiceItem(r.Description, r.UnitPrice, r.Quantity, r.VATRate)
}

// ItemRecordFrom converts a model line item into its wire form.
func ItemRecordFrom(it models.InvoiceItem) ItemRecord {
	return ItemRecord{
		Description: it.Description,
		UnitPrice:   it.UnitPrice,
		Quantity:    it.Quantity,
		VATRate:     it.VATRate,
	}
}

// PartyRecord is the wire form of a contractor or client info block. Field
// names match the metadata file keys; registration and VAT numbers may be
// absent for clients.
type PartyRecord struct {
	CompanyName        string `json:"company_name"`
	Address            string `json:"address"`
	RegistrationNumber string `json:"registration_number,omitempty"`
	VATNumber          string `json:"vat_number,omitempty"`
	BankAccount        string `json:"bank_info,omitempty"`
	SWIFT              string `json:"swift,omitempty"`
}

// Party converts the wire record into a model party.
func (r PartyRecord) Party() models.Party {
	return models.Party{
		CompanyName:        r.CompanyName,
		Address:            r.Address,
		RegistrationNumber: r.RegistrationNumber,
		VATNumber:          r.VATNumber,
		BankAccount:        r.BankAccount,
		SWIFT:              r.SWIFT,
	}
}

// PartyRecordFrom converts a model party into its wire form.
func PartyRecordFrom(p models.Party) PartyRecord {
	return PartyRecord{
		CompanyName:        p.CompanyName,
		Address:            p.Address,
		RegistrationNumber: p.RegistrationNumber,
		VATNumber:          p.VATNumber,
		BankAccount:        p.BankAccount,
		SWIFT:              p.SWIFT,
	}
}

// Metadata is the full persisted state of the application. Missing fields in
// the backing file fall back to the defaults from DefaultMetadata.
type Metadata struct {
	Year           string       `json:"year"`
	Sequence       int          `json:"sequence"`
	LastItems      []ItemRecord `json:"last_items"`
	ContractorInfo PartyRecord  `json:"contractor_info"`
	ClientInfo     PartyRecord  `json:"client_info"`
	IncludeVAT     bool         `json:"include_vat"`
	Language       string       `json:"language"`
	IncludeNote    bool         `json:"include_note"`
}

// DefaultMetadata returns the state of a fresh installation: no allocated
// numbers, no remembered info, English labels, VAT and note disabled.
func DefaultMetadata() Metadata {
	return Metadata{
		LastItems: []ItemRecord{},
		Language:  "English",
	}
}

// Store is a handle to one metadata file. Paths are explicit; there is no
// ambient default file.
type Store struct {
	path string
	log  zerolog.Logger
}

// New creates a store bound to the given metadata file path.
func New(path string) *Store {
	return &Store{
		path: path,
		log:  logger.WithComponent("store"),
	}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the full metadata record. A missing file is not an error and
// yields DefaultMetadata; a file that exists but cannot be parsed yields
// ErrCorrupt. Fields absent from the file keep their defaults.
func (s *Store) Load() (Metadata, error) {
	const op = "Load"

	meta := DefaultMetadata()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.log.Debug().Str("path", s.path).Msg("Metadata file missing, using defaults")
			return meta, nil
		}
		return Metadata{}, newStoreError(op, s.path, err)
	}

	if err := json.Unmarshal(data, &meta); err != nil {
		s.log.Error().Err(err).Str("path", s.path).Msg("Metadata file is not valid JSON")
		return Metadata{}, newStoreError(op, s.path, fmt.Errorf("%w: %v", ErrCorrupt, err))
	}

	if meta.LastItems == nil {
		meta.LastItems = []ItemRecord{}
	}
	if meta.Language == "" {
		meta.Language = DefaultMetadata().Language
	}

	return meta, nil
}

// Save overwrites the entire metadata file with the given record. The record
// is written to a temporary file in the same directory and renamed into
// place, so a crash mid-write cannot leave a file Load cannot parse.
func (s *Store) Save(meta Metadata) error {
	const op = "Save"

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return newStoreError(op, s.path, err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return newStoreError(op, s.path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return newStoreError(op, s.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return newStoreError(op, s.path, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return newStoreError(op, s.path, err)
	}

	s.log.Debug().
		Str("path", s.path).
		Int("bytes", len(data)).
		Msg("Metadata saved")

	return nil
}

// Lock takes an advisory lock on the metadata file by creating a sibling
// .lock file exclusively. It returns ErrLocked when the lock is already
// held. This guards the read-modify-write of the number sequence against a
// second invoicer process; it is best-effort and carries no ownership
// metadata, so a stale lock after a crash must be removed by hand.
func (s *Store) Lock() error {
	const op = "Lock"

	lockPath := s.lockPath()
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return newStoreError(op, lockPath, ErrLocked)
		}
		return newStoreError(op, lockPath, err)
	}
	f.Close()
	return nil
}

// Unlock releases the advisory lock taken by Lock.
func (s *Store) Unlock() error {
	const op = "Unlock"

	if err := os.Remove(s.lockPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return newStoreError(op, s.lockPath(), err)
	}
	return nil
}

func (s *Store) lockPath() string {
	return s.path + ".lock"
}
