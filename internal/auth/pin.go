package auth

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/GROOT-07/geriatric-daycare-backend/internal/pkg/apperror"
)

var ErrInvalidPIN = apperror.New(http.StatusUnauthorized, "Invalid PIN")

// PinVerifier checks the admin PIN against a bcrypt hash of the
// environment-configured PIN, hashed once at startup.
type PinVerifier struct {
	hash []byte
}

// NewPinVerifier hashes the configured PIN with the given bcrypt cost.
func NewPinVerifier(pin string, cost int) (*PinVerifier, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), cost)
	if err != nil {
		return nil, err
	}
	return &PinVerifier{hash: hash}, nil
}

// Verify returns ErrInvalidPIN unless the candidate matches the configured PIN.
func (v *PinVerifier) Verify(candidate string) error {
	if err := bcrypt.CompareHashAndPassword(v.hash, []byte(candidate)); err != nil {
		return ErrInvalidPIN
	}
	return nil
}
