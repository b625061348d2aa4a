package waitlist

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hyein-dev/stayhub-backend/internal/pkg/daterange"
	"github.com/hyein-dev/stayhub-backend/internal/roomtype"
)

// Notifier delivers a capacity-freed notice to the waiting user. Delivery
// channels (mail, push) live outside this service.
type Notifier interface {
	NotifyCapacityFreed(ctx context.Context, e *Entry) error
}

// LogNotifier writes notices to the process log. It stands in until a real
// delivery channel is configured.
type LogNotifier struct{}

func (LogNotifier) NotifyCapacityFreed(_ context.Context, e *Entry) error {
	log.Printf("waitlist: capacity freed for user %s, room type %s, %s to %s",
		e.UserID, e.RoomTypeID, e.Checkin.Format("2006-01-02"), e.Checkout.Format("2006-01-02"))
	return nil
}

type Service interface {
	Join(ctx context.Context, e *Entry) error
	Leave(ctx context.Context, id string, userID string) error
	GetByID(ctx context.Context, id string) (*Entry, error)

	// NotifyFreed fans a freed window out to every overlapping WAITING entry,
	// oldest first. One failed delivery does not stop the rest.
	NotifyFreed(ctx context.Context, roomTypeID string, window daterange.Range) (int, error)

	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

type service struct {
	repo      Repository
	rtService roomtype.Service
	notifier  Notifier
}

func NewService(repo Repository, rtService roomtype.Service, notifier Notifier) Service {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &service{repo: repo, rtService: rtService, notifier: notifier}
}

func (s *service) Join(ctx context.Context, e *Entry) error {
	window, err := daterange.New(e.Checkin, e.Checkout)
	if err != nil {
		return err
	}
	e.Checkin = window.Checkin
	e.Checkout = window.Checkout

	if e.PartySize < 1 {
		return ErrInvalidPartySize
	}

	rt, err := s.rtService.GetByID(ctx, e.RoomTypeID)
	if err != nil {
		return err
	}
	e.ListingID = rt.ListingID
	e.Status = StatusWaiting

	return s.repo.Create(ctx, e)
}

func (s *service) Leave(ctx context.Context, id string, userID string) error {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if e.UserID != userID {
		return ErrPermissionDenied
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) GetByID(ctx context.Context, id string) (*Entry, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) NotifyFreed(ctx context.Context, roomTypeID string, window daterange.Range) (int, error) {
	entries, err := s.repo.ListWaitingOverlapping(ctx, roomTypeID, window)
	if err != nil {
		return 0, err
	}

	notified := 0
	var failures []error
	for _, e := range entries {
		if err := s.notifier.NotifyCapacityFreed(ctx, e); err != nil {
			log.Printf("waitlist: notify entry %s failed: %v", e.ID, err)
			failures = append(failures, err)
			continue
		}
		if err := s.repo.MarkNotified(ctx, e.ID); err != nil {
			log.Printf("waitlist: mark entry %s notified failed: %v", e.ID, err)
			failures = append(failures, err)
			continue
		}
		notified++
	}

	if len(failures) > 0 {
		return notified, fmt.Errorf("waitlist: %d of %d notifications failed: %w",
			len(failures), len(entries), errors.Join(failures...))
	}
	return notified, nil
}

func (s *service) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	return s.repo.PurgeOlderThan(ctx, cutoff)
}
