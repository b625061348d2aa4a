package listing

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	listings map[string]*Listing
	seq      int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{listings: map[string]*Listing{}}
}

func (r *fakeRepository) Create(_ context.Context, l *Listing) error {
	r.seq++
	l.ID = fmt.Sprintf("listing-%d", r.seq)
	copied := *l
	r.listings[l.ID] = &copied
	return nil
}

func (r *fakeRepository) GetByID(_ context.Context, id string) (*Listing, error) {
	l, ok := r.listings[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *l
	return &copied, nil
}

func (r *fakeRepository) List(_ context.Context, _ Filter) ([]*Listing, int, error) {
	return nil, 0, nil
}

func (r *fakeRepository) Update(_ context.Context, l *Listing) error {
	if _, ok := r.listings[l.ID]; !ok {
		return ErrNotFound
	}
	copied := *l
	r.listings[l.ID] = &copied
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := r.listings[id]; !ok {
		return ErrNotFound
	}
	delete(r.listings, id)
	return nil
}

func (r *fakeRepository) SetApprovalState(_ context.Context, id string, state ApprovalState) error {
	l, ok := r.listings[id]
	if !ok {
		return ErrNotFound
	}
	l.ApprovalState = state
	return nil
}

func (r *fakeRepository) UpdateRatingStats(_ context.Context, id string, rating float64, reviewCount int) error {
	l, ok := r.listings[id]
	if !ok {
		return ErrNotFound
	}
	l.Rating = rating
	l.ReviewCount = reviewCount
	return nil
}

func validCreate() CreateRequest {
	return CreateRequest{
		HostID:    "host-1",
		Name:      "Seaside House",
		City:      "Busan",
		Latitude:  35.1,
		Longitude: 129.0,
		BasePrice: 90000,
		Themes:    []string{"ocean"},
	}
}

func TestCreate(t *testing.T) {
	svc := NewService(newFakeRepository())
	ctx := context.Background()

	l, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)
	assert.NotEmpty(t, l.ID)
	assert.Equal(t, ApprovalPending, l.ApprovalState, "new listings await approval")
	assert.True(t, l.Active)
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newFakeRepository())
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*CreateRequest)
		wantErr error
	}{
		{"blank name", func(r *CreateRequest) { r.Name = "   " }, ErrEmptyName},
		{"latitude out of range", func(r *CreateRequest) { r.Latitude = 91 }, ErrInvalidCoordinates},
		{"longitude out of range", func(r *CreateRequest) { r.Longitude = -181 }, ErrInvalidCoordinates},
		{"negative price", func(r *CreateRequest) { r.BasePrice = -1 }, ErrInvalidBasePrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreate()
			tt.mutate(&req)
			_, err := svc.Create(ctx, req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUpdatePartialFields(t *testing.T) {
	svc := NewService(newFakeRepository())
	ctx := context.Background()

	l, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	newName := "Seaside House Deluxe"
	price := 120000
	updated, err := svc.Update(ctx, l.ID, UpdateRequest{Name: &newName, BasePrice: &price})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)
	assert.Equal(t, price, updated.BasePrice)
	assert.Equal(t, l.City, updated.City, "untouched fields survive")

	badLat := 200.0
	_, err = svc.Update(ctx, l.ID, UpdateRequest{Latitude: &badLat})
	assert.ErrorIs(t, err, ErrInvalidCoordinates)
}

func TestSetApproval(t *testing.T) {
	svc := NewService(newFakeRepository())
	ctx := context.Background()

	l, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.SetApproval(ctx, l.ID, "whatever"), ErrInvalidApprovalState)

	require.NoError(t, svc.SetApproval(ctx, l.ID, ApprovalApproved))
	got, err := svc.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, ApprovalApproved, got.ApprovalState)
}

func TestUpdateRatingStats(t *testing.T) {
	svc := NewService(newFakeRepository())
	ctx := context.Background()

	l, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	require.NoError(t, svc.UpdateRatingStats(ctx, l.ID, 4.6, 27))
	got, err := svc.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.6, got.Rating)
	assert.Equal(t, 27, got.ReviewCount)

	assert.ErrorIs(t, svc.UpdateRatingStats(ctx, "missing", 4.0, 1), ErrNotFound)
}
