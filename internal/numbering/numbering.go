// Package numbering allocates invoice numbers from the metadata store.
//
// Numbers are formatted as {year}-{sequence} with the sequence zero-padded to
// three digits. The sequence restarts at 1 on the first allocation of each
// calendar year. Sequences are not guaranteed gap-free or collision-free when
// two processes race against the same store file; the store's advisory lock
// narrows that window but does not close it.
package numbering

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"invoicer/internal/logger"
	"invoicer/internal/store"
)

// SequenceLength is the number of digits the sequence is padded to.
const SequenceLength = 3

// Service allocates invoice numbers against one metadata store.
type Service struct {
	store *store.Store
	now   func() time.Time
	log   zerolog.Logger
}

// NewService creates a numbering service over the given store.
func NewService(st *store.Store) *Service {
	return &Service{
		store: st,
		now:   time.Now,
		log:   logger.WithComponent("numbering"),
	}
}

// NewServiceWithClock creates a numbering service with an injected clock,
// used by tests to pin the calendar year.
func NewServiceWithClock(st *store.Store, now func() time.Time) *Service {
	s := NewService(st)
	s.now = now
	return s
}

// Allocate advances the year/sequence pair in the given record and returns
// the formatted invoice number. If the stored year differs from the current
// calendar year the sequence resets before incrementing. The record is
// mutated in place; persisting it is the caller's responsibility.
func Allocate(meta *store.Metadata, now time.Time) string {
	year := fmt.Sprintf("%d", now.Year())
	if meta.Year != year {
		meta.Year = year
		meta.Sequence = 0
	}
	meta.Sequence++
	return Format(meta.Year, meta.Sequence)
}

// Format renders a year/sequence pair as an invoice number.
func Format(year string, sequence int) string {
	return fmt.Sprintf("%s-%0*d", year, SequenceLength, sequence)
}

// Next allocates the next invoice number and persists the advanced
// year/sequence pair immediately. A corrupt or unreadable store is a hard
// error: resetting silently could reissue an already-used number.
func (s *Service) Next() (string, error) {
	meta, err := s.store.Load()
	if err != nil {
		return "", fmt.Errorf("numbering: load sequence state: %w", err)
	}

	number := Allocate(&meta, s.now())

	if err := s.store.Save(meta); err != nil {
		return "", fmt.Errorf("numbering: persist sequence state: %w", err)
	}

	s.log.Info().
		Str("invoice_number", number).
		Str("year", meta.Year).
		Int("sequence", meta.Sequence).
		Msg("Invoice number allocated")

	return number, nil
}

// Peek returns the number Next would allocate without consuming it. Another
// allocation between Peek and Next may return the same number; callers that
// need the reservation must hold the store lock across both.
func (s *Service) Peek() (string, error) {
	meta, err := s.store.Load()
	if err != nil {
		return "", fmt.Errorf("numbering: load sequence state: %w", err)
	}

	return Allocate(&meta, s.now()), nil
}
