// Package admin maps the back-office forms onto stored records. Each form has
// its own input type; records are never edited through their storage shape.
package admin

import (
	"context"
	"errors"
	"strings"

	"travel-agency/internal/models"
	"travel-agency/internal/store"
)

var ErrNotFound = errors.New("record not found")

// PackageInput is the package form. List fields are newline separated and
// the flight block is flattened.
type PackageInput struct {
	Title              string                `json:"title"`
	Destination        string                `json:"destination"`
	Duration           string                `json:"duration"`
	Price              int64                 `json:"price"`
	Image              string                `json:"image"`
	Rating             float64               `json:"rating"`
	Description        string                `json:"description"`
	HotelsIncluded     string                `json:"hotelsIncluded"`
	ActivitiesIncluded string                `json:"activitiesIncluded"`
	Inclusions         string                `json:"inclusions"`
	Exclusions         string                `json:"exclusions"`
	FlightAirline      string                `json:"flightAirline"`
	FlightNumber       string                `json:"flightNumber"`
	FlightDep          string                `json:"flightDep"`
	FlightArr          string                `json:"flightArr"`
	Itinerary          []models.ItineraryDay `json:"itinerary"`
}

// ToPackage builds the stored record. The flight block is kept only when both
// airline and flight number are present.
func (in PackageInput) ToPackage(id string) models.Package {
	p := models.Package{
		ID:                 id,
		Title:              in.Title,
		Destination:        in.Destination,
		Duration:           in.Duration,
		Price:              in.Price,
		Image:              in.Image,
		Rating:             in.Rating,
		Description:        in.Description,
		HotelsIncluded:     in.HotelsIncluded,
		ActivitiesIncluded: in.ActivitiesIncluded,
		Inclusions:         splitLines(in.Inclusions),
		Exclusions:         splitLines(in.Exclusions),
		Itinerary:          in.Itinerary,
	}
	if p.Itinerary == nil {
		p.Itinerary = []models.ItineraryDay{}
	}

	airline := strings.TrimSpace(in.FlightAirline)
	number := strings.TrimSpace(in.FlightNumber)
	if airline != "" && number != "" {
		p.FlightDetails = &models.FlightDetails{
			Airline:       airline,
			FlightNumber:  number,
			DepartureTime: strings.TrimSpace(in.FlightDep),
			ArrivalTime:   strings.TrimSpace(in.FlightArr),
		}
	}
	return p
}

func splitLines(s string) []string {
	out := []string{}
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

type PackageService struct {
	packages *store.Collection[models.Package]
}

func NewPackageService(packages *store.Collection[models.Package]) *PackageService {
	return &PackageService{packages: packages}
}

func (s *PackageService) List(ctx context.Context) ([]models.Package, error) {
	return s.packages.GetAll(ctx)
}

func (s *PackageService) Get(ctx context.Context, id string) (*models.Package, error) {
	p, found, err := s.packages.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *PackageService) Create(ctx context.Context, in PackageInput) (*models.Package, error) {
	p, err := s.packages.Add(ctx, in.ToPackage(""))
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update replaces the package; ErrNotFound reports that nothing matched
func (s *PackageService) Update(ctx context.Context, id string, in PackageInput) (*models.Package, error) {
	p := in.ToPackage(id)
	matched, err := s.packages.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *PackageService) Delete(ctx context.Context, id string) error {
	return s.packages.Delete(ctx, id)
}
