package admin

import (
	"context"
	"time"

	"travel-agency/internal/models"
	"travel-agency/internal/store"
)

// LeadInput is the lead form
type LeadInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Mobile      string `json:"mobile"`
	Destination string `json:"destination"`
	TravelDate  string `json:"travelDate"`
	Budget      int64  `json:"budget"`
	Source      string `json:"source"`
	Status      string `json:"status"`
}

func (in LeadInput) toLead(id, createdAt string) models.Lead {
	status := in.Status
	if status == "" {
		status = models.LeadNew
	}
	return models.Lead{
		ID:          id,
		Name:        in.Name,
		Email:       in.Email,
		Mobile:      in.Mobile,
		Destination: in.Destination,
		TravelDate:  in.TravelDate,
		Budget:      in.Budget,
		Source:      in.Source,
		Status:      status,
		CreatedAt:   createdAt,
	}
}

type LeadService struct {
	leads *store.Collection[models.Lead]
	now   func() time.Time
}

func NewLeadService(leads *store.Collection[models.Lead]) *LeadService {
	return &LeadService{leads: leads, now: time.Now}
}

func (s *LeadService) WithClock(now func() time.Time) *LeadService {
	s.now = now
	return s
}

func (s *LeadService) List(ctx context.Context) ([]models.Lead, error) {
	return s.leads.GetAll(ctx)
}

func (s *LeadService) Get(ctx context.Context, id string) (*models.Lead, error) {
	l, found, err := s.leads.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return &l, nil
}

// Create stamps the creation date with today
func (s *LeadService) Create(ctx context.Context, in LeadInput) (*models.Lead, error) {
	l, err := s.leads.Add(ctx, in.toLead("", s.now().Format(models.DateLayout)))
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Update keeps the stored creation date
func (s *LeadService) Update(ctx context.Context, id string, in LeadInput) (*models.Lead, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	l := in.toLead(id, existing.CreatedAt)
	matched, err := s.leads.Update(ctx, l)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, ErrNotFound
	}
	return &l, nil
}

func (s *LeadService) Delete(ctx context.Context, id string) error {
	return s.leads.Delete(ctx, id)
}
