package booking

import (
	"fmt"
	"net/http"
	"time"

	"github.com/GROOT-07/geriatric-daycare-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "Booking not found")
	ErrMissingFields = apperror.New(http.StatusBadRequest, "Missing required fields: name, age, phone, slots[]")
	ErrInvalidAge    = apperror.New(http.StatusBadRequest, "Age must be between 1 and 120")
	ErrInvalidPhone  = apperror.New(http.StatusBadRequest, "Invalid phone number")
)

// ErrUnknownSlot reports a slot key outside the weekly grid.
func ErrUnknownSlot(key string) *apperror.AppError {
	return apperror.New(http.StatusBadRequest, fmt.Sprintf("Unknown slot: %s", key))
}

// ErrDuplicateSlot reports the same slot key appearing twice in one request.
func ErrDuplicateSlot(key string) *apperror.AppError {
	return apperror.New(http.StatusBadRequest, fmt.Sprintf("Duplicate slot in request: %s", key))
}

// ConflictError is returned when one or more requested slots are already
// claimed by another booking. Conflicts lists the exact offending keys so
// the client can prune its selection and retry.
type ConflictError struct {
	Conflicts []string
}

func (e *ConflictError) Error() string {
	return "Some slots are already booked"
}

// Booking is a patient's reservation of one or more weekly slots.
// Bookings are immutable after creation and deleted wholesale by id.
type Booking struct {
	ID       string
	Name     string
	Age      int
	Phone    string
	Slots    []string // slot keys in submission order
	BookedAt time.Time
}
