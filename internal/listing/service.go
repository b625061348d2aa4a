package listing

import (
	"context"
	"strings"
)

type CreateRequest struct {
	HostID      string
	Name        string
	Description string
	City        string
	District    string
	Township    string
	Latitude    float64
	Longitude   float64
	BasePrice   int
	Themes      []string
}

type UpdateRequest struct {
	Name        *string
	Description *string
	City        *string
	District    *string
	Township    *string
	Latitude    *float64
	Longitude   *float64
	BasePrice   *int
	Active      *bool
	Themes      []string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Listing, error)
	GetByID(ctx context.Context, id string) (*Listing, error)
	List(ctx context.Context, filter Filter) ([]*Listing, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Listing, error)
	Delete(ctx context.Context, id string) error

	// SetApproval is the inbound surface of the external approval workflow.
	SetApproval(ctx context.Context, id string, state ApprovalState) error

	// UpdateRatingStats is called by the external review collaborator when a
	// listing's aggregate rating changes.
	UpdateRatingStats(ctx context.Context, id string, rating float64, reviewCount int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func validCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Listing, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if !validCoordinates(req.Latitude, req.Longitude) {
		return nil, ErrInvalidCoordinates
	}
	if req.BasePrice < 0 {
		return nil, ErrInvalidBasePrice
	}

	l := &Listing{
		HostID:        req.HostID,
		Name:          req.Name,
		Description:   req.Description,
		City:          req.City,
		District:      req.District,
		Township:      req.Township,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		BasePrice:     req.BasePrice,
		ApprovalState: ApprovalPending,
		Active:        true,
		Themes:        req.Themes,
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Listing, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Listing, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Listing, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		l.Name = *req.Name
	}
	if req.Description != nil {
		l.Description = *req.Description
	}
	if req.City != nil {
		l.City = *req.City
	}
	if req.District != nil {
		l.District = *req.District
	}
	if req.Township != nil {
		l.Township = *req.Township
	}
	if req.Latitude != nil {
		l.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		l.Longitude = *req.Longitude
	}
	if !validCoordinates(l.Latitude, l.Longitude) {
		return nil, ErrInvalidCoordinates
	}
	if req.BasePrice != nil {
		if *req.BasePrice < 0 {
			return nil, ErrInvalidBasePrice
		}
		l.BasePrice = *req.BasePrice
	}
	if req.Active != nil {
		l.Active = *req.Active
	}
	if req.Themes != nil {
		l.Themes = req.Themes
	}

	if err := s.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) SetApproval(ctx context.Context, id string, state ApprovalState) error {
	if !state.Valid() {
		return ErrInvalidApprovalState
	}
	return s.repo.SetApprovalState(ctx, id, state)
}

func (s *service) UpdateRatingStats(ctx context.Context, id string, rating float64, reviewCount int) error {
	return s.repo.UpdateRatingStats(ctx, id, rating, reviewCount)
}
