package store

import (
	"context"
	"encoding/json"
	"fmt"

	"travel-agency/internal/models"
)

// SettingsStore holds the singleton company settings record
type SettingsStore struct {
	blobs    Blobs
	defaults models.CompanySettings
}

func NewSettingsStore(blobs Blobs, defaults models.CompanySettings) *SettingsStore {
	return &SettingsStore{blobs: blobs, defaults: defaults}
}

// Get returns the stored settings, or the defaults when nothing has been
// saved yet. The defaults are not written back.
func (s *SettingsStore) Get(ctx context.Context) (models.CompanySettings, error) {
	data, ok, err := s.blobs.Load(ctx, KeySettings)
	if err != nil {
		return models.CompanySettings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	if !ok {
		return s.defaults, nil
	}

	var settings models.CompanySettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return models.CompanySettings{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	return settings, nil
}

// Save replaces the settings record
func (s *SettingsStore) Save(ctx context.Context, settings models.CompanySettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := s.blobs.Save(ctx, KeySettings, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// SaveMarkup replaces only the markup rules, leaving concurrent edits to the
// rest of the record intact
func (s *SettingsStore) SaveMarkup(ctx context.Context, markup models.MarkupConfig) (models.CompanySettings, error) {
	var settings models.CompanySettings
	err := s.blobs.Modify(ctx, KeySettings, func(data []byte, found bool) ([]byte, error) {
		settings = s.defaults
		if found {
			settings = models.CompanySettings{}
			if err := json.Unmarshal(data, &settings); err != nil {
				return nil, fmt.Errorf("failed to decode settings: %w", err)
			}
		}
		settings.MarkupConfig = markup
		return json.Marshal(settings)
	})
	if err != nil {
		return models.CompanySettings{}, fmt.Errorf("failed to save markup: %w", err)
	}
	return settings, nil
}
