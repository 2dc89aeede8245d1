package response

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GROOT-07/geriatric-daycare-backend/internal/booking"
	"github.com/GROOT-07/geriatric-daycare-backend/internal/pkg/apperror"
)

// ErrorResponse is the JSON body for plain error responses.
type ErrorResponse struct {
	Message string `json:"message"`
}

// ConflictResponse is the JSON body for slot-conflict rejections. Conflicts
// lists the exact slot keys that were already taken.
type ConflictResponse struct {
	Message   string   `json:"message"`
	Conflicts []string `json:"conflicts"`
}

// Error sends a JSON error response. AppErrors determine their own status
// code, slot conflicts become 409 with the conflict list, and anything else
// is a 500 with a generic message.
func Error(c *gin.Context, err error) {
	var conflictErr *booking.ConflictError
	if errors.As(err, &conflictErr) {
		c.JSON(http.StatusConflict, ConflictResponse{
			Message:   conflictErr.Error(),
			Conflicts: conflictErr.Conflicts,
		})
		return
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if appErr.Err != nil {
			log.Printf("request failed: %v", appErr.Err)
		}
		c.JSON(appErr.Code, ErrorResponse{Message: appErr.Message})
		return
	}

	log.Printf("unexpected error: %v", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal server error"})
}
