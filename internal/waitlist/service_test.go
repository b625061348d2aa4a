package waitlist

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyein-dev/stayhub-backend/internal/pkg/daterange"
	"github.com/hyein-dev/stayhub-backend/internal/roomtype"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fakeRepository struct {
	mu      sync.Mutex
	entries map[string]*Entry
	seq     int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{entries: map[string]*Entry{}}
}

func (r *fakeRepository) Create(_ context.Context, e *Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.entries {
		if existing.Status == StatusWaiting &&
			existing.UserID == e.UserID &&
			existing.RoomTypeID == e.RoomTypeID &&
			existing.Checkin.Equal(e.Checkin) &&
			existing.Checkout.Equal(e.Checkout) {
			return ErrDuplicateRequest
		}
	}
	r.seq++
	e.ID = fmt.Sprintf("entry-%d", r.seq)
	e.CreatedAt = time.Now().UTC().Add(time.Duration(r.seq) * time.Millisecond)
	copied := *e
	r.entries[e.ID] = &copied
	return nil
}

func (r *fakeRepository) GetByID(_ context.Context, id string) (*Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *fakeRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return ErrNotFound
	}
	delete(r.entries, id)
	return nil
}

func (r *fakeRepository) ListWaitingOverlapping(_ context.Context, roomTypeID string, window daterange.Range) ([]*Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Entry
	for _, e := range r.entries {
		if e.RoomTypeID != roomTypeID || e.Status != StatusWaiting {
			continue
		}
		if window.Overlaps(e.Window()) {
			copied := *e
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeRepository) MarkNotified(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return ErrNotFound
	}
	e.Status = StatusNotified
	return nil
}

func (r *fakeRepository) PurgeOlderThan(_ context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	purged := 0
	for id, e := range r.entries {
		if e.CreatedAt.Before(cutoff) {
			delete(r.entries, id)
			purged++
		}
	}
	return purged, nil
}

// recordingNotifier records delivery order and fails for chosen users.
type recordingNotifier struct {
	failFor map[string]bool
	userIDs []string
}

func (n *recordingNotifier) NotifyCapacityFreed(_ context.Context, e *Entry) error {
	if n.failFor[e.UserID] {
		return errors.New("delivery failed")
	}
	n.userIDs = append(n.userIDs, e.UserID)
	return nil
}

type fakeRoomTypeService struct {
	rooms map[string]*roomtype.RoomType
}

func (s *fakeRoomTypeService) GetByID(_ context.Context, id string) (*roomtype.RoomType, error) {
	rt, ok := s.rooms[id]
	if !ok {
		return nil, roomtype.ErrNotFound
	}
	return rt, nil
}

func (s *fakeRoomTypeService) ListByListing(context.Context, string, bool) ([]*roomtype.RoomType, error) {
	panic("not used")
}

func (s *fakeRoomTypeService) Create(context.Context, roomtype.CreateRequest) (*roomtype.RoomType, error) {
	panic("not used")
}

func (s *fakeRoomTypeService) List(context.Context, roomtype.Filter) ([]*roomtype.RoomType, int, error) {
	panic("not used")
}

func (s *fakeRoomTypeService) Update(context.Context, string, roomtype.UpdateRequest) (*roomtype.RoomType, error) {
	panic("not used")
}

func (s *fakeRoomTypeService) Delete(context.Context, string) error {
	panic("not used")
}

func newTestService(notifier Notifier) (Service, *fakeRepository) {
	repo := newFakeRepository()
	rts := &fakeRoomTypeService{rooms: map[string]*roomtype.RoomType{
		"room-1": {ID: "room-1", ListingID: "listing-1", Capacity: 4, Active: true},
	}}
	return NewService(repo, rts, notifier), repo
}

func join(t *testing.T, svc Service, userID string) *Entry {
	t.Helper()
	e := &Entry{
		UserID:     userID,
		RoomTypeID: "room-1",
		Checkin:    date(2026, 2, 10),
		Checkout:   date(2026, 2, 12),
		PartySize:  2,
	}
	require.NoError(t, svc.Join(context.Background(), e))
	return e
}

func TestJoinValidation(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	err := svc.Join(ctx, &Entry{
		UserID:     "user-1",
		RoomTypeID: "room-1",
		Checkin:    date(2026, 2, 12),
		Checkout:   date(2026, 2, 10),
		PartySize:  2,
	})
	assert.ErrorIs(t, err, daterange.ErrInvalidRange)

	err = svc.Join(ctx, &Entry{
		UserID:     "user-1",
		RoomTypeID: "room-1",
		Checkin:    date(2026, 2, 10),
		Checkout:   date(2026, 2, 12),
		PartySize:  0,
	})
	assert.ErrorIs(t, err, ErrInvalidPartySize)

	err = svc.Join(ctx, &Entry{
		UserID:     "user-1",
		RoomTypeID: "no-such-room",
		Checkin:    date(2026, 2, 10),
		Checkout:   date(2026, 2, 12),
		PartySize:  2,
	})
	assert.ErrorIs(t, err, roomtype.ErrNotFound)
}

func TestJoinFillsListingAndRejectsDuplicates(t *testing.T) {
	svc, _ := newTestService(nil)

	e := join(t, svc, "user-1")
	assert.Equal(t, "listing-1", e.ListingID)
	assert.Equal(t, StatusWaiting, e.Status)
	assert.NotEmpty(t, e.ID)

	err := svc.Join(context.Background(), &Entry{
		UserID:     "user-1",
		RoomTypeID: "room-1",
		Checkin:    date(2026, 2, 10),
		Checkout:   date(2026, 2, 12),
		PartySize:  3,
	})
	assert.ErrorIs(t, err, ErrDuplicateRequest)
}

func TestLeaveChecksOwnership(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	e := join(t, svc, "user-1")

	err := svc.Leave(ctx, e.ID, "someone-else")
	assert.ErrorIs(t, err, ErrPermissionDenied)

	require.NoError(t, svc.Leave(ctx, e.ID, "user-1"))
	_, err = svc.GetByID(ctx, e.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNotifyFreedFIFO(t *testing.T) {
	notifier := &recordingNotifier{}
	svc, repo := newTestService(notifier)
	ctx := context.Background()

	join(t, svc, "first")
	join(t, svc, "second")
	third := join(t, svc, "third")

	window, err := daterange.New(date(2026, 2, 11), date(2026, 2, 13))
	require.NoError(t, err)

	notified, err := svc.NotifyFreed(ctx, "room-1", window)
	require.NoError(t, err)
	assert.Equal(t, 3, notified)
	assert.Equal(t, []string{"first", "second", "third"}, notifier.userIDs)

	got, err := repo.GetByID(ctx, third.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusNotified, got.Status)

	// already-notified entries are not woken again
	notifier.userIDs = nil
	notified, err = svc.NotifyFreed(ctx, "room-1", window)
	require.NoError(t, err)
	assert.Zero(t, notified)
	assert.Empty(t, notifier.userIDs)
}

func TestNotifyFreedSkipsNonOverlapping(t *testing.T) {
	notifier := &recordingNotifier{}
	svc, _ := newTestService(notifier)
	ctx := context.Background()

	join(t, svc, "overlapping") // Feb 10-12

	// a freed window that touches only the checkout boundary wakes nobody
	window, err := daterange.New(date(2026, 2, 12), date(2026, 2, 14))
	require.NoError(t, err)

	notified, err := svc.NotifyFreed(ctx, "room-1", window)
	require.NoError(t, err)
	assert.Zero(t, notified)
}

func TestNotifyFreedIsolatesFailures(t *testing.T) {
	notifier := &recordingNotifier{failFor: map[string]bool{"second": true}}
	svc, repo := newTestService(notifier)
	ctx := context.Background()

	join(t, svc, "first")
	second := join(t, svc, "second")
	join(t, svc, "third")

	window, err := daterange.New(date(2026, 2, 10), date(2026, 2, 12))
	require.NoError(t, err)

	notified, err := svc.NotifyFreed(ctx, "room-1", window)
	assert.Error(t, err, "a failed delivery is reported")
	assert.Equal(t, 2, notified, "failure of one entry does not stop the rest")
	assert.Equal(t, []string{"first", "third"}, notifier.userIDs)

	// the failed entry stays waiting for the next freed window
	got, err := repo.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusWaiting, got.Status)
}

func TestPurgeOlderThan(t *testing.T) {
	svc, repo := newTestService(nil)
	ctx := context.Background()

	old := join(t, svc, "old-user")
	join(t, svc, "fresh-user")

	repo.mu.Lock()
	repo.entries[old.ID].CreatedAt = time.Now().UTC().Add(-48 * time.Hour)
	repo.mu.Unlock()

	purged, err := svc.PurgeOlderThan(ctx, time.Now().UTC().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, purged)

	_, err = svc.GetByID(ctx, old.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
