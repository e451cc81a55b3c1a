package render_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicer/internal/render"
	"invoicer/pkg/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func sampleInvoice() models.Invoice {
	return models.Invoice{
		Number:    "2025-001",
		IssueDate: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		DueDate:   time.Date(2025, time.March, 16, 0, 0, 0, 0, time.UTC),
		Contractor: models.Party{
			CompanyName:        "My Co d.o.o.",
			Address:            "Ulica 1, Ljubljana",
			RegistrationNumber: "12345",
			VATNumber:          "SI99999999",
			BankAccount:        "SI56 0000 0000 0000 000",
			SWIFT:              "ABCDSI2X",
		},
		Client: models.Party{
			CompanyName: "Client GmbH",
			Address:     "Strasse 2, Wien",
		},
		Items: []models.InvoiceItem{
			models.NewInvoiceItem("Consulting", dec("100.00"), 2, dec("22")),
			models.NewInvoiceItem("Support", dec("50.00"), 1, dec("0")),
		},
	}
}

func TestRenderProducesPDF(t *testing.T) {
	r := render.NewRenderer()

	for _, opts := range []render.Options{
		{Language: render.LanguageEnglish},
		{Language: render.LanguageEnglish, IncludeVAT: true, IncludeNote: true},
		{Language: render.LanguageSlovene},
		{Language: render.LanguageSlovene, IncludeVAT: true, IncludeNote: true},
	} {
		t.Run(fmt.Sprintf("%s vat=%v note=%v", opts.Language, opts.IncludeVAT, opts.IncludeNote), func(t *testing.T) {
			data, err := r.Render(sampleInvoice(), opts)
			require.NoError(t, err)
			require.NotEmpty(t, data)
			assert.Equal(t, "%PDF-", string(data[:5]))
		})
	}
}

func TestRenderRejectsEmptyInvoiceNumber(t *testing.T) {
	inv := sampleInvoice()
	inv.Number = ""

	_, err := render.NewRenderer().Render(inv, render.Options{Language: render.LanguageEnglish})
	require.Error(t, err)
	assert.ErrorIs(t, err, render.ErrEmptyInvoiceNumber)
}

func TestRenderRejectsUnknownLanguage(t *testing.T) {
	_, err := render.NewRenderer().Render(sampleInvoice(), render.Options{Language: "Klingon"})
	require.Error(t, err)
	assert.ErrorIs(t, err, render.ErrUnsupportedLanguage)
}

func TestRenderEmptyItemList(t *testing.T) {
	inv := sampleInvoice()
	inv.Items = nil

	data, err := render.NewRenderer().Render(inv, render.Options{Language: render.LanguageEnglish})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestRenderLongItemListBreaksPages(t *testing.T) {
	inv := sampleInvoice()
	inv.Items = nil
	for i := 0; i < 120; i++ {
		inv.Items = append(inv.Items,
			models.NewInvoiceItem(fmt.Sprintf("Line %d", i+1), dec("10.00"), 1, dec("22")))
	}

	short, err := render.NewRenderer().Render(sampleInvoice(), render.Options{Language: render.LanguageEnglish, IncludeVAT: true})
	require.NoError(t, err)
	long, err := render.NewRenderer().Render(inv, render.Options{Language: render.LanguageEnglish, IncludeVAT: true})
	require.NoError(t, err)

	assert.Greater(t, len(long), len(short), "a multi-page invoice should produce a larger document")
}

func TestRenderFileWritesArtifactNamedByNumber(t *testing.T) {
	dir := t.TempDir()

	path, err := render.NewRenderer().RenderFile(sampleInvoice(), render.Options{Language: render.LanguageEnglish}, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2025-001.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(data[:5]))

	// temp files must not survive
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestRenderFileFailsCleanlyOnMissingDir(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	_, err := render.NewRenderer().RenderFile(sampleInvoice(), render.Options{Language: render.LanguageEnglish}, missing)
	require.Error(t, err)
	_, statErr := os.Stat(filepath.Join(missing, "2025-001.pdf"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestParseLanguage(t *testing.T) {
	lang, err := render.ParseLanguage("English")
	require.NoError(t, err)
	assert.Equal(t, render.LanguageEnglish, lang)

	lang, err = render.ParseLanguage("Slovene")
	require.NoError(t, err)
	assert.Equal(t, render.LanguageSlovene, lang)

	_, err = render.ParseLanguage("german")
	require.Error(t, err)
	assert.ErrorIs(t, err, render.ErrUnsupportedLanguage)
}

func TestTableColumnsFollowVATOption(t *testing.T) {
	plain := render.TableColumns(render.LanguageEnglish, false)
	assert.Equal(t, []string{"Description", "Unit Price (EUR)", "Quantity", "Total (EUR)"}, plain)

	withVAT := render.TableColumns(render.LanguageEnglish, true)
	assert.Equal(t, []string{"Description", "Unit Price (EUR)", "Quantity",
		"VAT Rate (%)", "VAT (EUR)", "Total (EUR)"}, withVAT)

	slovene := render.TableColumns(render.LanguageSlovene, false)
	assert.Equal(t, []string{"Opis", "Cena na enoto (EUR)", "Količina", "Skupaj (EUR)"}, slovene)
}

func TestFormatAmountLocaleSeparators(t *testing.T) {
	amount := dec("1234.5")

	assert.Equal(t, "1234.50", render.FormatAmount(amount, render.LanguageEnglish))
	assert.Equal(t, "1234,50", render.FormatAmount(amount, render.LanguageSlovene))

	assert.Equal(t, "0.00", render.FormatAmount(decimal.Zero, render.LanguageEnglish))
	assert.Equal(t, "0,00", render.FormatAmount(decimal.Zero, render.LanguageSlovene))
}
