package roomtype

import (
	"context"
	"errors"
	"strings"

	"github.com/hyein-dev/stayhub-backend/internal/listing"
)

type CreateRequest struct {
	ListingID    string
	Name         string
	Capacity     int
	NightlyPrice int
}

type UpdateRequest struct {
	Name         *string
	Capacity     *int
	NightlyPrice *int
	Active       *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*RoomType, error)
	GetByID(ctx context.Context, id string) (*RoomType, error)
	List(ctx context.Context, filter Filter) ([]*RoomType, int, error)
	ListByListing(ctx context.Context, listingID string, activeOnly bool) ([]*RoomType, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*RoomType, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo           Repository
	listingService listing.Service
}

func NewService(repo Repository, listingService listing.Service) Service {
	return &service{
		repo:           repo,
		listingService: listingService,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*RoomType, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if req.Capacity < 0 {
		return nil, ErrInvalidCapacity
	}
	if req.NightlyPrice < 0 {
		return nil, ErrInvalidPrice
	}

	if _, err := s.listingService.GetByID(ctx, req.ListingID); err != nil {
		if errors.Is(err, listing.ErrNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}

	rt := &RoomType{
		ListingID:    req.ListingID,
		Name:         req.Name,
		Capacity:     req.Capacity,
		NightlyPrice: req.NightlyPrice,
		Active:       true,
	}

	if err := s.repo.Create(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*RoomType, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*RoomType, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) ListByListing(ctx context.Context, listingID string, activeOnly bool) ([]*RoomType, error) {
	return s.repo.ListByListing(ctx, listingID, activeOnly)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*RoomType, error) {
	rt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		rt.Name = *req.Name
	}
	if req.Capacity != nil {
		if *req.Capacity < 0 {
			return nil, ErrInvalidCapacity
		}
		rt.Capacity = *req.Capacity
	}
	if req.NightlyPrice != nil {
		if *req.NightlyPrice < 0 {
			return nil, ErrInvalidPrice
		}
		rt.NightlyPrice = *req.NightlyPrice
	}
	if req.Active != nil {
		rt.Active = *req.Active
	}

	if err := s.repo.Update(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
