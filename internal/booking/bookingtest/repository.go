// Package bookingtest provides an in-memory booking.Repository for tests.
package bookingtest

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/GROOT-07/geriatric-daycare-backend/internal/booking"
)

// Repository keeps bookings in memory, newest first, and mirrors the
// conflict and not-found behavior of the pgx repository.
type Repository struct {
	mu       sync.Mutex
	bookings []*booking.Booking

	// Err, when set, is returned by every method to exercise store-failure paths.
	Err error
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) Create(_ context.Context, b *booking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return r.Err
	}

	claimed := make(map[string]struct{})
	for _, existing := range r.bookings {
		for _, key := range existing.Slots {
			claimed[key] = struct{}{}
		}
	}

	var conflicts []string
	for _, key := range b.Slots {
		if _, ok := claimed[key]; ok {
			conflicts = append(conflicts, key)
		}
	}
	if len(conflicts) > 0 {
		return &booking.ConflictError{Conflicts: conflicts}
	}

	b.ID = uuid.NewString()
	b.BookedAt = time.Now().UTC()

	r.bookings = append([]*booking.Booking{b}, r.bookings...)
	return nil
}

func (r *Repository) List(_ context.Context) ([]*booking.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}

	out := make([]*booking.Booking, len(r.bookings))
	copy(out, r.bookings)
	return out, nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return r.Err
	}

	for i, b := range r.bookings {
		if b.ID == id {
			r.bookings = append(r.bookings[:i], r.bookings[i+1:]...)
			return nil
		}
	}
	return booking.ErrNotFound
}

func (r *Repository) TakenSlots(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}

	var keys []string
	for _, b := range r.bookings {
		keys = append(keys, b.Slots...)
	}
	return keys, nil
}

// Len reports how many bookings are stored.
func (r *Repository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bookings)
}
