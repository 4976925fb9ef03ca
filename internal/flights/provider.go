package flights

import (
	"context"
	"log"
	"strings"

	"travel-agency/internal/models"
)

// SettingsReader exposes the stored company settings
type SettingsReader interface {
	Get(ctx context.Context) (models.CompanySettings, error)
}

// LiveSearcher is a real availability source
type LiveSearcher interface {
	Search(ctx context.Context, apiKey string, c models.SearchCriteria) ([]models.Flight, error)
}

// Provider answers flight searches from the live API when an API key is
// configured, and from the mock generator otherwise or on any live failure.
type Provider struct {
	settings SettingsReader
	live     LiveSearcher
	mock     *MockGenerator
}

func NewProvider(settings SettingsReader, live LiveSearcher, mock *MockGenerator) *Provider {
	return &Provider{settings: settings, live: live, mock: mock}
}

// Search never fails. Callers cannot tell live results from generated ones.
func (p *Provider) Search(ctx context.Context, c models.SearchCriteria) []models.Flight {
	apiKey := ""
	settings, err := p.settings.Get(ctx)
	if err != nil {
		log.Printf("Failed to read settings, using mock flights: %v", err)
	} else {
		apiKey = strings.TrimSpace(settings.KiwiAPIKey)
	}

	if apiKey != "" && p.live != nil {
		log.Printf("Searching live flights %s -> %s on %s", c.From, c.To, c.DepartDate)
		results, err := p.live.Search(ctx, apiKey, c)
		switch {
		case err != nil:
			log.Printf("Live flight search failed, falling back to mock: %v", err)
		case len(results) == 0:
			log.Println("Live flight search returned no results, falling back to mock")
		default:
			return results
		}
	} else {
		log.Println("No flight API key configured, using mock flights")
	}

	return p.mock.Generate(ctx, c)
}
