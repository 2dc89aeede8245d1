package booking

import (
	"context"
	"strings"
	"unicode"

	"github.com/GROOT-07/geriatric-daycare-backend/internal/schedule"
)

const (
	minAge = 1
	maxAge = 120

	minPhoneDigits = 7
	maxPhoneDigits = 15
)

type CreateRequest struct {
	Name  string
	Age   int
	Phone string
	Slots []string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	List(ctx context.Context) ([]*Booking, error)
	Delete(ctx context.Context, id string) error
	TakenSlots(ctx context.Context) ([]string, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// countDigits returns how many decimal digits the string contains,
// ignoring everything else. "(987) 654-3210" counts 10.
func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

func validate(req CreateRequest) error {
	if strings.TrimSpace(req.Name) == "" || req.Age == 0 || strings.TrimSpace(req.Phone) == "" || len(req.Slots) == 0 {
		return ErrMissingFields
	}
	if req.Age < minAge || req.Age > maxAge {
		return ErrInvalidAge
	}
	if digits := countDigits(req.Phone); digits < minPhoneDigits || digits > maxPhoneDigits {
		return ErrInvalidPhone
	}

	seen := make(map[string]struct{}, len(req.Slots))
	for _, key := range req.Slots {
		if !schedule.IsValidKey(key) {
			return ErrUnknownSlot(key)
		}
		if _, ok := seen[key]; ok {
			return ErrDuplicateSlot(key)
		}
		seen[key] = struct{}{}
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	b := &Booking{
		Name:  strings.TrimSpace(req.Name),
		Age:   req.Age,
		Phone: strings.TrimSpace(req.Phone),
		Slots: req.Slots,
	}

	// The repository claims all slots atomically: on any conflict nothing
	// is written and the offending keys come back in a ConflictError.
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *service) List(ctx context.Context) ([]*Booking, error) {
	return s.repo.List(ctx)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) TakenSlots(ctx context.Context) ([]string, error) {
	return s.repo.TakenSlots(ctx)
}
