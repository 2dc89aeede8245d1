package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GROOT-07/geriatric-daycare-backend/internal/auth"
	"github.com/GROOT-07/geriatric-daycare-backend/internal/pkg/apperror"
	"github.com/GROOT-07/geriatric-daycare-backend/internal/pkg/response"
)

// AdminHandler exchanges the shared PIN for an admin access token.
type AdminHandler struct {
	pinVerifier *auth.PinVerifier
	jwtManager  *auth.JWTManager
}

func NewAdminHandler(pinVerifier *auth.PinVerifier, jwtManager *auth.JWTManager) *AdminHandler {
	return &AdminHandler{
		pinVerifier: pinVerifier,
		jwtManager:  jwtManager,
	}
}

func (h *AdminHandler) Login(c *gin.Context) {
	var body AdminLoginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "Missing required field: pin"})
		return
	}

	if err := h.pinVerifier.Verify(body.PIN); err != nil {
		response.Error(c, err)
		return
	}

	token, err := h.jwtManager.GenerateAdminToken()
	if err != nil {
		response.Error(c, apperror.Wrap(err, http.StatusInternalServerError, "Failed to issue token"))
		return
	}

	c.JSON(http.StatusOK, AdminLoginResponse{Token: token})
}
