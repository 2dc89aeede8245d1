package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/GROOT-07/geriatric-daycare-backend/internal/auth"
	"github.com/GROOT-07/geriatric-daycare-backend/internal/booking"
	bookingHttp "github.com/GROOT-07/geriatric-daycare-backend/internal/booking/http"
)

// devOrigin is always allowed so the frontend dev server can reach the API.
const devOrigin = "http://localhost:3000"

// Config holds everything the router needs.
type Config struct {
	FrontendOrigin string
	BookingService booking.Service
	PinVerifier    *auth.PinVerifier
	JWTManager     *auth.JWTManager
}

// NewRouter assembles middleware (CORS, logging, recovery) and registers
// the booking and admin routes.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Logger writes request lines to the console; Recovery turns panics
	// into 500s instead of dropping the connection.
	r.Use(gin.Logger(), gin.Recovery())

	// Only the configured frontend origin (plus local dev) may call the API.
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = allowedOrigins(cfg.FrontendOrigin)
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Geriatric Daycare Backend Running",
		})
	})

	adminMiddleware := auth.AdminRequired(cfg.JWTManager)

	adminHandler := NewAdminHandler(cfg.PinVerifier, cfg.JWTManager)
	r.POST("/admin/login", adminHandler.Login)

	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	bookingHttp.RegisterRoutes(&r.RouterGroup, bookingHandler, adminMiddleware)

	return r
}

func allowedOrigins(frontendOrigin string) []string {
	origins := []string{devOrigin}
	if frontendOrigin != "" && frontendOrigin != devOrigin {
		origins = append(origins, frontendOrigin)
	}
	return origins
}
