package render

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Language selects the label set and number formatting of a rendered invoice.
// The values match the strings persisted in the metadata store.
type Language string

// Supported invoice languages.
const (
	LanguageEnglish Language = "English"
	LanguageSlovene Language = "Slovene"
)

// ParseLanguage maps a stored or user-supplied language name to a Language.
func ParseLanguage(name string) (Language, error) {
	switch Language(name) {
	case LanguageEnglish:
		return LanguageEnglish, nil
	case LanguageSlovene:
		return LanguageSlovene, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, name)
}

// locale is one language's label set and formatting rules. Locale selection
// affects labels and the decimal separator, never the numeric values.
type locale struct {
	invoiceTitle     string
	issueDate        string
	dueDate          string
	from             string
	billTo           string
	registration     string
	vatNumber        string
	bankAccount      string
	swift            string
	colDescription   string
	colUnitPrice     string
	colQuantity      string
	colVATRate       string
	colVATAmount     string
	colTotal         string
	totalNet         string
	totalVAT         string
	totalGross       string
	total            string
	reverseCharge    string
	dateFormat       string
	decimalSeparator string
}

var locales = map[Language]locale{
	LanguageEnglish: {
		invoiceTitle:     "Invoice",
		issueDate:        "Issue Date",
		dueDate:          "Due Date",
		from:             "From:",
		billTo:           "Bill To:",
		registration:     "Registration Number",
		vatNumber:        "VAT Number",
		bankAccount:      "IBAN bank account number",
		swift:            "SWIFT",
		colDescription:   "Description",
		colUnitPrice:     "Unit Price (EUR)",
		colQuantity:      "Quantity",
		colVATRate:       "VAT Rate (%)",
		colVATAmount:     "VAT (EUR)",
		colTotal:         "Total (EUR)",
		totalNet:         "Total (net)",
		totalVAT:         "VAT",
		totalGross:       "Total (gross)",
		total:            "Total",
		reverseCharge:    "Note: VAT is not charged according to the Article 44 of the Directive EU 2006/112/ES - reverse charge (for recipient).",
		dateFormat:       "2006-01-02",
		decimalSeparator: ".",
	},
	LanguageSlovene: {
		invoiceTitle:     "Račun",
		issueDate:        "Datum izdaje",
		dueDate:          "Rok plačila",
		from:             "Izvajalec:",
		billTo:           "Naročnik:",
		registration:     "Matična številka",
		vatNumber:        "ID za DDV",
		bankAccount:      "IBAN",
		swift:            "SWIFT",
		colDescription:   "Opis",
		colUnitPrice:     "Cena na enoto (EUR)",
		colQuantity:      "Količina",
		colVATRate:       "DDV (%)",
		colVATAmount:     "DDV (EUR)",
		colTotal:         "Skupaj (EUR)",
		totalNet:         "Skupaj brez DDV",
		totalVAT:         "DDV",
		totalGross:       "Skupaj z DDV",
		total:            "Skupaj",
		reverseCharge:    "Opomba: DDV ni obračunan v skladu s 44. členom Direktive EU 2006/112/ES - obrnjena davčna obveznost (za prejemnika).",
		dateFormat:       "02.01.2006",
		decimalSeparator: ",",
	},
}

// FormatAmount renders a decimal amount with exactly two decimal places using
// the language's decimal separator.
func FormatAmount(amount decimal.Decimal, lang Language) string {
	s := amount.StringFixed(2)
	sep := locales[lang].decimalSeparator
	if sep != "." {
		s = strings.Replace(s, ".", sep, 1)
	}
	return s
}
