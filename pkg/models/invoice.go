package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Party holds the free-form identity fields printed on an invoice for one side
// of the transaction. Registration and VAT numbers are optional for clients.
type Party struct {
	CompanyName        string // Legal company name
	Address            string // Postal address, single line
	RegistrationNumber string // Company registration number (optional for clients)
	VATNumber          string // VAT identification number (optional for clients)
	BankAccount        string // IBAN bank account number (contractor only)
	SWIFT              string // SWIFT/BIC code (contractor only)
}

// InvoiceItem is a single line on an invoice. Amounts are decimal.Decimal to
// keep VAT arithmetic exact; a zero rate yields an exactly zero VAT amount,
// never a rounding artifact. Items are value objects: build a new one instead
// of mutating fields.
type InvoiceItem struct {
	Description string          // What was delivered
	UnitPrice   decimal.Decimal // Price per unit, in EUR
	Quantity    int             // Number of units, non-negative
	VATRate     decimal.Decimal // VAT percentage applied to this line (0 for exempt)
}

// NewInvoiceItem builds a line item. Validation of the inputs is the caller's
// responsibility; this constructor only assembles the value.
func NewInvoiceItem(description string, unitPrice decimal.Decimal, quantity int, vatRate decimal.Decimal) InvoiceItem {
	return InvoiceItem{
		Description: description,
		UnitPrice:   unitPrice,
		Quantity:    quantity,
		VATRate:     vatRate,
	}
}

// Net returns the pre-tax line amount: unit price times quantity.
func (it InvoiceItem) Net() decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// VATAmount returns the VAT charged on this line: net times rate/100.
func (it InvoiceItem) VATAmount() decimal.Decimal {
	if it.VATRate.IsZero() {
		return decimal.Zero
	}
	return it.Net().Mul(it.VATRate).Div(decimal.NewFromInt(100))
}

// Gross returns the line total including VAT.
func (it InvoiceItem) Gross() decimal.Decimal {
	return it.Net().Add(it.VATAmount())
}

// Invoice is a fully populated invoice ready for rendering. Totals are always
// recomputed from the item list, never stored, so they cannot drift.
type Invoice struct {
	Number     string    // Invoice number, formatted YYYY-NNN
	IssueDate  time.Time // Date the invoice was issued
	DueDate    time.Time // Payment due date
	Contractor Party     // Issuing party
	Client     Party     // Billed party
	Items      []InvoiceItem
}

// TotalNet returns the sum of all item net amounts. Zero for an empty invoice.
func (inv Invoice) TotalNet() decimal.Decimal {
	total := decimal.Zero
	for _, it := range inv.Items {
		total = total.Add(it.Net())
	}
	return total
}

// TotalVAT returns the sum of all item VAT amounts.
func (inv Invoice) TotalVAT() decimal.Decimal {
	total := decimal.Zero
	for _, it := range inv.Items {
		total = total.Add(it.VATAmount())
	}
	return total
}

// TotalGross returns the invoice total including VAT.
func (inv Invoice) TotalGross() decimal.Decimal {
	return inv.TotalNet().Add(inv.TotalVAT())
}
