package models_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicer/pkg/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestInvoiceItemDerivedAmounts(t *testing.T) {
	tests := []struct {
		name      string
		unitPrice string
		quantity  int
		vatRate   string
		wantNet   string
		wantVAT   string
		wantGross string
	}{
		{"plain", "100.00", 2, "22", "200.00", "44.00", "244.00"},
		{"zero VAT rate", "50.00", 1, "0", "50.00", "0.00", "50.00"},
		{"single unit", "19.99", 1, "9.5", "19.99", "1.90", "21.89"},
		{"zero quantity", "100.00", 0, "22", "0.00", "0.00", "0.00"},
		{"fractional price", "0.10", 3, "20", "0.30", "0.06", "0.36"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := models.NewInvoiceItem("work", dec(tt.unitPrice), tt.quantity, dec(tt.vatRate))

			assert.Equal(t, tt.wantNet, it.Net().StringFixed(2))
			assert.Equal(t, tt.wantVAT, it.VATAmount().StringFixed(2))
			assert.Equal(t, tt.wantGross, it.Gross().StringFixed(2))

			// gross = net + VAT must hold exactly, not only at 2 decimals
			assert.True(t, it.Gross().Equal(it.Net().Add(it.VATAmount())))
		})
	}
}

func TestInvoiceItemZeroRateIsExactlyZero(t *testing.T) {
	it := models.NewInvoiceItem("exempt", dec("33.33"), 7, decimal.Zero)

	require.True(t, it.VATAmount().IsZero(), "zero rate must yield an exactly zero VAT amount")
	require.True(t, it.Gross().Equal(it.Net()))
}

func TestInvoiceTotals(t *testing.T) {
	inv := models.Invoice{
		Number: "2025-001",
		Items: []models.InvoiceItem{
			models.NewInvoiceItem("A", dec("100.00"), 2, dec("22")),
			models.NewInvoiceItem("B", dec("50.00"), 1, dec("0")),
		},
	}

	assert.Equal(t, "250.00", inv.TotalNet().StringFixed(2))
	assert.Equal(t, "44.00", inv.TotalVAT().StringFixed(2))
	assert.Equal(t, "294.00", inv.TotalGross().StringFixed(2))
	assert.True(t, inv.TotalGross().Equal(inv.TotalNet().Add(inv.TotalVAT())))
}

func TestInvoiceTotalsEmptyItemList(t *testing.T) {
	inv := models.Invoice{Number: "2025-001"}

	assert.True(t, inv.TotalNet().IsZero())
	assert.True(t, inv.TotalVAT().IsZero())
	assert.True(t, inv.TotalGross().IsZero())
}

func TestInvoiceTotalsAreSumsOfItems(t *testing.T) {
	items := []models.InvoiceItem{
		models.NewInvoiceItem("A", dec("12.34"), 3, dec("9.5")),
		models.NewInvoiceItem("B", dec("0.01"), 100, dec("22")),
		models.NewInvoiceItem("C", dec("999.99"), 1, dec("0")),
	}
	inv := models.Invoice{Items: items}

	net, vat := decimal.Zero, decimal.Zero
	for _, it := range items {
		net = net.Add(it.Net())
		vat = vat.Add(it.VATAmount())
	}

	assert.True(t, inv.TotalNet().Equal(net))
	assert.True(t, inv.TotalVAT().Equal(vat))
	assert.True(t, inv.TotalGross().Equal(net.Add(vat)))
}
