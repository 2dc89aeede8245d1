package http

import (
	"time"

	"github.com/GROOT-07/geriatric-daycare-backend/internal/booking"
)

// CreateBookingBody is the POST /book request body. Field presence is
// validated by the service so missing-field rejections carry the same
// message regardless of which field was dropped.
type CreateBookingBody struct {
	Name  string   `json:"name"`
	Age   int      `json:"age"`
	Phone string   `json:"phone"`
	Slots []string `json:"slots"`
}

type BookingResponse struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Age      int       `json:"age"`
	Phone    string    `json:"phone"`
	Slots    []string  `json:"slots"`
	BookedAt time.Time `json:"bookedAt"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:       b.ID,
		Name:     b.Name,
		Age:      b.Age,
		Phone:    b.Phone,
		Slots:    b.Slots,
		BookedAt: b.BookedAt,
	}
}

// CreatedResponse is the POST /book success payload.
type CreatedResponse struct {
	Message string          `json:"message"`
	Booking BookingResponse `json:"booking"`
}

// MessageResponse is the generic success payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// SlotGridResponse describes the weekly grid plus which keys are taken.
// The taken set is a UI hint only; the booking write re-checks server-side.
type SlotGridResponse struct {
	Days        []string `json:"days"`
	TimeWindows []string `json:"timeWindows"`
	Taken       []string `json:"taken"`
}
