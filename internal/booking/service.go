package booking

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/hyein-dev/stayhub-backend/internal/events"
	"github.com/hyein-dev/stayhub-backend/internal/pkg/daterange"
	"github.com/hyein-dev/stayhub-backend/internal/roomtype"
)

type CreateRequest struct {
	UserID     string
	RoomTypeID string
	Checkin    time.Time
	Checkout   time.Time
	PartySize  int
}

// Availability is the result of a single-room availability check.
type Availability struct {
	Available bool
	Remaining int
}

type Service interface {
	// Create admits a booking request. On success the booking is persisted
	// in requested status and already holds its nights.
	Create(ctx context.Context, req CreateRequest) (*Booking, error)

	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// CheckAvailability reports whether one room type can host the window.
	// partySize == 0 means exclusive (whole-unit) mode.
	CheckAvailability(ctx context.Context, roomTypeID string, checkin, checkout time.Time, partySize int) (*Availability, error)

	// AvailableRoomTypes returns the ids of a listing's active room types
	// that can host the window.
	AvailableRoomTypes(ctx context.Context, listingID string, checkin, checkout time.Time, partySize int) ([]string, error)

	// AdvanceStatus moves a booking along requested -> confirmed ->
	// checked_in on signals from the payment collaborator.
	AdvanceStatus(ctx context.Context, id string, next Status) (*Booking, error)

	// Cancel releases the booking's nights and emits a capacity-released
	// event after the write commits.
	Cancel(ctx context.Context, id string) (*Booking, error)

	// ListStaleRequested serves the external housekeeping job that expires
	// abandoned requests.
	ListStaleRequested(ctx context.Context, cutoff time.Time) ([]*Booking, error)
}

type service struct {
	repo      Repository
	rtService roomtype.Service
	publisher events.Publisher
}

func NewService(repo Repository, rtService roomtype.Service, publisher events.Publisher) Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &service{
		repo:      repo,
		rtService: rtService,
		publisher: publisher,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	// Validation failures must be distinguishable from capacity failures,
	// so dates and party size are checked before any capacity work.
	window, err := daterange.New(req.Checkin, req.Checkout)
	if err != nil {
		return nil, err
	}
	if req.PartySize < 1 {
		return nil, ErrInvalidPartySize
	}

	rt, err := s.rtService.GetByID(ctx, req.RoomTypeID)
	if err != nil {
		if errors.Is(err, roomtype.ErrNotFound) {
			return nil, ErrRoomTypeNotFound
		}
		return nil, err
	}

	b := &Booking{
		RoomTypeID: rt.ID,
		ListingID:  rt.ListingID,
		UserID:     req.UserID,
		Checkin:    window.Checkin,
		Checkout:   window.Checkout,
		PartySize:  req.PartySize,
		Status:     StatusRequested,
	}

	if err := s.repo.Admit(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) CheckAvailability(ctx context.Context, roomTypeID string, checkin, checkout time.Time, partySize int) (*Availability, error) {
	window, err := daterange.New(checkin, checkout)
	if err != nil {
		return nil, err
	}

	rt, err := s.rtService.GetByID(ctx, roomTypeID)
	if err != nil {
		if errors.Is(err, roomtype.ErrNotFound) {
			return nil, ErrRoomTypeNotFound
		}
		return nil, err
	}

	holding, err := s.repo.ListHolding(ctx, rt.ID, window)
	if err != nil {
		return nil, err
	}

	capacity := rt.Capacity
	return &Availability{
		Available: CanHost(window, capacity, partySize, holding),
		Remaining: RemainingCapacity(window, capacity, holding),
	}, nil
}

func (s *service) AvailableRoomTypes(ctx context.Context, listingID string, checkin, checkout time.Time, partySize int) ([]string, error) {
	window, err := daterange.New(checkin, checkout)
	if err != nil {
		return nil, err
	}

	roomTypes, err := s.rtService.ListByListing(ctx, listingID, true)
	if err != nil {
		return nil, err
	}
	if len(roomTypes) == 0 {
		return []string{}, nil
	}

	ids := make([]string, len(roomTypes))
	for i, rt := range roomTypes {
		ids[i] = rt.ID
	}

	holdingByRoom, err := s.repo.ListHoldingForRoomTypes(ctx, ids, window)
	if err != nil {
		return nil, err
	}

	available := []string{}
	for _, rt := range roomTypes {
		if partySize > rt.Capacity {
			continue
		}
		if CanHost(window, rt.Capacity, partySize, holdingByRoom[rt.ID]) {
			available = append(available, rt.ID)
		}
	}
	return available, nil
}

// transitions maps each status to the statuses it may advance to.
var transitions = map[Status][]Status{
	StatusRequested: {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCheckedIn, StatusCancelled},
	StatusCheckedIn: {},
	StatusCancelled: {},
}

func canTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s *service) AdvanceStatus(ctx context.Context, id string, next Status) (*Booking, error) {
	if !next.Valid() {
		return nil, ErrInvalidStatus
	}
	if next == StatusCancelled {
		return s.Cancel(ctx, id)
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canTransition(b.Status, next) {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	b.Status = next
	return b, nil
}

func (s *service) Cancel(ctx context.Context, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canTransition(b.Status, StatusCancelled) {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusCancelled); err != nil {
		return nil, err
	}
	b.Status = StatusCancelled

	// Published only after the status write committed; the waitlist must
	// never see capacity that could still be rolled back. Delivery is
	// fire-and-forget, retries belong to the broker.
	ev := events.CapacityReleased{
		RoomTypeID: b.RoomTypeID,
		ListingID:  b.ListingID,
		Checkin:    b.Checkin,
		Checkout:   b.Checkout,
		ReleasedAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishCapacityReleased(ctx, ev); err != nil {
		log.Printf("booking: publish capacity released for %s: %v", b.ID, err)
	}

	return b, nil
}

func (s *service) ListStaleRequested(ctx context.Context, cutoff time.Time) ([]*Booking, error) {
	return s.repo.ListStaleRequested(ctx, cutoff)
}
