package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"invoicer/internal/logger"
	"invoicer/pkg/models"
)

// Client is one predefined client directory entry. The directory is
// read-only input: this application never creates or mutates entries.
type Client struct {
	CompanyName        string `json:"company_name"`
	Address            string `json:"address"`
	RegistrationNumber string `json:"registration_number,omitempty"`
	VATNumber          string `json:"vat_number,omitempty"`
}

// Party converts the directory entry into a model party.
func (c Client) Party() models.Party {
	return models.Party{
		CompanyName:        c.CompanyName,
		Address:            c.Address,
		RegistrationNumber: c.RegistrationNumber,
		VATNumber:          c.VATNumber,
	}
}

// LoadClients reads the client directory file, a JSON array of client
// objects. A missing file yields an empty directory; a file that exists but
// cannot be parsed yields ErrCorrupt so the condition surfaces instead of
// silently presenting no clients.
func LoadClients(path string) ([]Client, error) {
	const op = "LoadClients"

	log := logger.WithComponent("store")

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debug().Str("path", path).Msg("Client directory missing, no predefined clients")
			return []Client{}, nil
		}
		return nil, newStoreError(op, path, err)
	}

	var clients []Client
	if err := json.Unmarshal(data, &clients); err != nil {
		log.Error().Err(err).Str("path", path).Msg("Client directory is not valid JSON")
		return nil, newStoreError(op, path, fmt.Errorf("%w: %v", ErrCorrupt, err))
	}

	log.Debug().
		Str("path", path).
		Int("clients", len(clients)).
		Msg("Client directory loaded")

	return clients, nil
}

// FindClient returns the directory entry whose company name matches exactly.
func FindClient(clients []Client, companyName string) (Client, bool) {
	for _, c := range clients {
		if c.CompanyName == companyName {
			return c, true
		}
	}
	return Client{}, false
}
