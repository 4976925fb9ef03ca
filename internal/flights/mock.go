package flights

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"travel-agency/internal/idgen"
	"travel-agency/internal/models"
)

const (
	mockResultCount = 6
	mockDefaultFrom = "HYD"
	mockDefaultTo   = "DXB"
)

type airline struct {
	Name string
	Code string
	Logo string
}

var roster = []airline{
	{Name: "IndiGo", Code: "6E", Logo: "https://logo.clearbit.com/goindigo.in"},
	{Name: "Air India", Code: "AI", Logo: "https://logo.clearbit.com/airindia.in"},
	{Name: "Emirates", Code: "EK", Logo: "https://logo.clearbit.com/emirates.com"},
	{Name: "Vistara", Code: "UK", Logo: "https://logo.clearbit.com/airvistara.com"},
	{Name: "Qatar Airways", Code: "QR", Logo: "https://logo.clearbit.com/qatarairways.com"},
}

// MockGenerator produces plausible offers when no live provider is usable
type MockGenerator struct {
	mu    sync.Mutex
	rng   *rand.Rand
	ids   *idgen.Generator
	delay time.Duration
}

// NewMockGenerator creates a generator. A nil rng is seeded from the clock.
func NewMockGenerator(delay time.Duration, ids *idgen.Generator, rng *rand.Rand) *MockGenerator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if ids == nil {
		ids = idgen.New()
	}
	return &MockGenerator{rng: rng, ids: ids, delay: delay}
}

// FarePerTraveler is the whole-unit fare of one traveler for a flight of the
// given length on the given airline
func FarePerTraveler(airlineName string, durationHours float64) int64 {
	multiplier := 1.0
	if airlineName == "Emirates" {
		multiplier = 1.5
	}
	return int64(math.Floor((4000 + durationHours*500) * multiplier))
}

// Generate waits for the simulated latency and returns six offers. A cancelled
// context shortens the wait but offers are still returned.
func (g *MockGenerator) Generate(ctx context.Context, c models.SearchCriteria) []models.Flight {
	if g.delay > 0 {
		timer := time.NewTimer(g.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
		case <-timer.C:
		}
	}

	from := c.From
	if from == "" {
		from = mockDefaultFrom
	}
	to := c.To
	if to == "" {
		to = mockDefaultTo
	}
	travelers := int64(c.Travelers.Count())
	stamp := g.ids.Next()

	g.mu.Lock()
	defer g.mu.Unlock()

	results := make([]models.Flight, 0, mockResultCount)
	for i := 0; i < mockResultCount; i++ {
		a := roster[i%len(roster)]
		direct := i%2 == 0

		number := 100 + g.rng.Intn(900)
		startHour := 5 + g.rng.Intn(15)
		var duration float64
		if direct {
			duration = 2 + g.rng.Float64()*2
		} else {
			duration = 5 + g.rng.Float64()*5
		}
		endHour := (startHour + int(duration)) % 24

		depMinutes := "30"
		if g.rng.Float64() > 0.5 {
			depMinutes = "00"
		}
		arrMinutes := "45"
		if g.rng.Float64() > 0.5 {
			arrMinutes = "15"
		}

		stops := 1
		if direct {
			stops = 0
		}
		baggage := "30kg Check-in"
		if a.Name == "IndiGo" {
			baggage = "15kg Check-in"
		}

		hours := int(duration)
		minutes := int((duration - float64(hours)) * 60)

		results = append(results, models.Flight{
			ID:            fmt.Sprintf("fl_%d_%d", stamp, i),
			Airline:       a.Name,
			AirlineLogo:   a.Logo,
			FlightNumber:  fmt.Sprintf("%s-%d", a.Code, number),
			DepartureTime: fmt.Sprintf("%02d:%s", startHour, depMinutes),
			ArrivalTime:   fmt.Sprintf("%02d:%s", endHour, arrMinutes),
			Duration:      fmt.Sprintf("%dh %dm", hours, minutes),
			Price:         FarePerTraveler(a.Name, duration) * travelers,
			Stops:         stops,
			From:          from,
			To:            to,
			Baggage:       baggage,
		})
	}

	return results
}
