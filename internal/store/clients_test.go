package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicer/internal/store"
)

func TestLoadClients(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clients.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"company_name": "ABC Ltd.", "address": "123 Main St",
		 "registration_number": "111", "vat_number": "GB111"},
		{"company_name": "XYZ Inc.", "address": "456 Side Ave"}
	]`), 0o644))

	clients, err := store.LoadClients(path)
	require.NoError(t, err)
	require.Len(t, clients, 2)

	assert.Equal(t, "ABC Ltd.", clients[0].CompanyName)
	assert.Equal(t, "GB111", clients[0].VATNumber)

	// registration and VAT are optional
	assert.Equal(t, "XYZ Inc.", clients[1].CompanyName)
	assert.Empty(t, clients[1].RegistrationNumber)
	assert.Empty(t, clients[1].VATNumber)
}

func TestLoadClientsMissingFileYieldsEmptyDirectory(t *testing.T) {
	clients, err := store.LoadClients(filepath.Join(t.TempDir(), "clients.json"))
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestLoadClientsCorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clients.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"company_name":`), 0o644))

	_, err := store.LoadClients(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrCorrupt)
}

func TestFindClient(t *testing.T) {
	clients := []store.Client{
		{CompanyName: "ABC Ltd.", Address: "123 Main St"},
		{CompanyName: "XYZ Inc.", Address: "456 Side Ave"},
	}

	c, ok := store.FindClient(clients, "XYZ Inc.")
	require.True(t, ok)
	assert.Equal(t, "456 Side Ave", c.Address)

	_, ok = store.FindClient(clients, "Nobody")
	assert.False(t, ok)
}

func TestClientPartyConversion(t *testing.T) {
	c := store.Client{
		CompanyName:        "ABC Ltd.",
		Address:            "123 Main St",
		RegistrationNumber: "111",
		VATNumber:          "GB111",
	}

	p := c.Party()
	assert.Equal(t, c.CompanyName, p.CompanyName)
	assert.Equal(t, c.Address, p.Address)
	assert.Equal(t, c.RegistrationNumber, p.RegistrationNumber)
	assert.Equal(t, c.VATNumber, p.VATNumber)
	assert.Empty(t, p.BankAccount)
	assert.Empty(t, p.SWIFT)
}
