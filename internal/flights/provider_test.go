package flights

import (
	"context"
	"errors"
	"testing"

	"travel-agency/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type stubSettings struct {
	settings models.CompanySettings
	err      error
}

func (s stubSettings) Get(ctx context.Context) (models.CompanySettings, error) {
	return s.settings, s.err
}

type mockLive struct {
	mock.Mock
}

func (m *mockLive) Search(ctx context.Context, apiKey string, c models.SearchCriteria) ([]models.Flight, error) {
	args := m.Called(ctx, apiKey, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flight), args.Error(1)
}

func TestProvider_Search(t *testing.T) {
	criteria := models.SearchCriteria{From: "HYD", To: "DXB", DepartDate: "2024-01-10", Travelers: models.TravelerConfig{Adults: 1}}
	live := []models.Flight{{ID: "live-1", Airline: "EK"}}

	tests := []struct {
		name       string
		settings   stubSettings
		setupMock  func(m *mockLive)
		expectLive bool
	}{
		{
			name:       "no api key uses mock",
			settings:   stubSettings{settings: models.CompanySettings{KiwiAPIKey: "   "}},
			setupMock:  func(m *mockLive) {},
			expectLive: false,
		},
		{
			name:     "api key returns live results",
			settings: stubSettings{settings: models.CompanySettings{KiwiAPIKey: " key "}},
			setupMock: func(m *mockLive) {
				m.On("Search", mock.Anything, "key", criteria).Return(live, nil)
			},
			expectLive: true,
		},
		{
			name:     "live error falls back to mock",
			settings: stubSettings{settings: models.CompanySettings{KiwiAPIKey: "key"}},
			setupMock: func(m *mockLive) {
				m.On("Search", mock.Anything, "key", criteria).Return(nil, errors.New("timeout"))
			},
			expectLive: false,
		},
		{
			name:     "empty live result falls back to mock",
			settings: stubSettings{settings: models.CompanySettings{KiwiAPIKey: "key"}},
			setupMock: func(m *mockLive) {
				m.On("Search", mock.Anything, "key", criteria).Return([]models.Flight{}, nil)
			},
			expectLive: false,
		},
		{
			name:       "settings failure falls back to mock",
			settings:   stubSettings{err: errors.New("db down")},
			setupMock:  func(m *mockLive) {},
			expectLive: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(mockLive)
			tt.setupMock(m)

			p := NewProvider(tt.settings, m, newSeededGenerator(11))
			result := p.Search(context.Background(), criteria)

			if tt.expectLive {
				assert.Equal(t, live, result)
			} else {
				assert.Len(t, result, 6)
				assert.Equal(t, "IndiGo", result[0].Airline)
			}
			m.AssertExpectations(t)
		})
	}
}
