package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the booking endpoints. Reads and the booking write
// are public; cancellation and CSV export require the admin middleware.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, adminMiddleware gin.HandlerFunc) {
	g.GET("/bookings", h.List)
	g.GET("/slots", h.Slots)
	g.POST("/book", h.Create)

	g.DELETE("/bookings/:id", adminMiddleware, h.Delete)
	g.GET("/export", adminMiddleware, h.Export)
}
