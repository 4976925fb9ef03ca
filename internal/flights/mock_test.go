package flights

import (
	"context"
	"math/rand"
	"regexp"
	"testing"
	"time"

	"travel-agency/internal/idgen"
	"travel-agency/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeededGenerator(seed int64) *MockGenerator {
	ids := idgen.NewWithClock(func() time.Time { return time.UnixMilli(1700000000000) })
	return NewMockGenerator(0, ids, rand.New(rand.NewSource(seed)))
}

func TestMockGenerator_Shape(t *testing.T) {
	g := newSeededGenerator(7)
	flights := g.Generate(context.Background(), models.SearchCriteria{
		From:      "BOM",
		To:        "SIN",
		Travelers: models.TravelerConfig{Adults: 1},
	})

	require.Len(t, flights, 6)
	hhmm := regexp.MustCompile(`^\d{2}:\d{2}$`)
	duration := regexp.MustCompile(`^\d+h \d+m$`)

	for i, f := range flights {
		assert.Equal(t, roster[i%len(roster)].Name, f.Airline)
		assert.Equal(t, i%2 != 0, f.Stops == 1, "odd offers have one stop")
		assert.Equal(t, "BOM", f.From)
		assert.Equal(t, "SIN", f.To)
		assert.Regexp(t, hhmm, f.DepartureTime)
		assert.Regexp(t, hhmm, f.ArrivalTime)
		assert.Regexp(t, duration, f.Duration)
		assert.Regexp(t, `^`+roster[i%len(roster)].Code+`-\d{3}$`, f.FlightNumber)
		assert.Regexp(t, `^fl_1700000000000_\d$`, f.ID)
		assert.Positive(t, f.Price)

		hour := f.DepartureTime[:2]
		assert.GreaterOrEqual(t, hour, "05")
		assert.LessOrEqual(t, hour, "19")

		if f.Airline == "IndiGo" {
			assert.Equal(t, "15kg Check-in", f.Baggage)
		} else {
			assert.Equal(t, "30kg Check-in", f.Baggage)
		}
	}
}

func TestMockGenerator_DefaultRoute(t *testing.T) {
	flights := newSeededGenerator(1).Generate(context.Background(), models.SearchCriteria{})
	require.NotEmpty(t, flights)
	assert.Equal(t, "HYD", flights[0].From)
	assert.Equal(t, "DXB", flights[0].To)
}

func TestMockGenerator_PriceScalesWithTravelers(t *testing.T) {
	single := newSeededGenerator(99).Generate(context.Background(), models.SearchCriteria{
		Travelers: models.TravelerConfig{Adults: 1},
	})
	couple := newSeededGenerator(99).Generate(context.Background(), models.SearchCriteria{
		Travelers: models.TravelerConfig{Adults: 2},
	})
	family := newSeededGenerator(99).Generate(context.Background(), models.SearchCriteria{
		Travelers: models.TravelerConfig{Adults: 2, Children: 1, Infants: 1},
	})

	require.Len(t, couple, len(single))
	for i := range single {
		assert.Zero(t, couple[i].Price%2, "price for two adults must be a multiple of two")
		assert.Equal(t, single[i].Price*2, couple[i].Price)
		assert.Equal(t, single[i].Price*3, family[i].Price)
	}
}

func TestMockGenerator_ZeroAdultsCountsAsOne(t *testing.T) {
	none := newSeededGenerator(5).Generate(context.Background(), models.SearchCriteria{})
	one := newSeededGenerator(5).Generate(context.Background(), models.SearchCriteria{
		Travelers: models.TravelerConfig{Adults: 1},
	})
	for i := range none {
		assert.Equal(t, one[i].Price, none[i].Price)
	}
}

func TestMockGenerator_CancelledContextStillReturnsOffers(t *testing.T) {
	g := NewMockGenerator(time.Hour, nil, rand.New(rand.NewSource(3)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	flights := g.Generate(ctx, models.SearchCriteria{})
	assert.Len(t, flights, 6)
	assert.Less(t, time.Since(start), time.Second)
}

func TestFarePerTraveler(t *testing.T) {
	assert.Equal(t, int64(5000), FarePerTraveler("IndiGo", 2))
	assert.Equal(t, int64(7500), FarePerTraveler("Emirates", 2))
	assert.Equal(t, int64(5125), FarePerTraveler("Vistara", 2.25))
}
