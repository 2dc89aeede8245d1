package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GROOT-07/geriatric-daycare-backend/internal/api"
	"github.com/GROOT-07/geriatric-daycare-backend/internal/auth"
	"github.com/GROOT-07/geriatric-daycare-backend/internal/booking"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction   bool
	FrontendOrigin string
	DBPool         *pgxpool.Pool
	AdminPIN       string
	JWTSecret      string
	JWTTTL         time.Duration
	BcryptCost     int
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	// Auth components
	pinVerifier, err := auth.NewPinVerifier(cfg.AdminPIN, cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to init pin verifier: %w", err)
	}
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// Booking module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo)

	// Router
	router := api.NewRouter(api.Config{
		FrontendOrigin: cfg.FrontendOrigin,
		BookingService: bookingService,
		PinVerifier:    pinVerifier,
		JWTManager:     jwtManager,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
