package http

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/GROOT-07/geriatric-daycare-backend/internal/booking"
	"github.com/GROOT-07/geriatric-daycare-backend/internal/booking/export"
	"github.com/GROOT-07/geriatric-daycare-backend/internal/pkg/apperror"
	"github.com/GROOT-07/geriatric-daycare-backend/internal/pkg/response"
	"github.com/GROOT-07/geriatric-daycare-backend/internal/schedule"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	bookings, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, apperror.Wrap(err, http.StatusInternalServerError, "Failed to fetch bookings"))
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "Invalid request body"})
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		Name:  body.Name,
		Age:   body.Age,
		Phone: body.Phone,
		Slots: body.Slots,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreatedResponse{
		Message: "Booked successfully",
		Booking: NewBookingResponse(b),
	})
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "Invalid booking id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if err == booking.ErrNotFound {
			response.Error(c, err)
			return
		}
		response.Error(c, apperror.Wrap(err, http.StatusInternalServerError, "Failed to cancel booking"))
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Booking cancelled"})
}

func (h *Handler) Export(c *gin.Context) {
	bookings, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, apperror.Wrap(err, http.StatusInternalServerError, "Failed to export"))
		return
	}

	// Render into a buffer first so a mid-stream failure can still 500.
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, bookings); err != nil {
		response.Error(c, apperror.Wrap(err, http.StatusInternalServerError, "Failed to export"))
		return
	}

	filename := export.Filename(time.Now().UTC())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

func (h *Handler) Slots(c *gin.Context) {
	taken, err := h.service.TakenSlots(c.Request.Context())
	if err != nil {
		response.Error(c, apperror.Wrap(err, http.StatusInternalServerError, "Failed to fetch slots"))
		return
	}
	if taken == nil {
		taken = make([]string, 0)
	}

	c.JSON(http.StatusOK, SlotGridResponse{
		Days:        schedule.Days,
		TimeWindows: schedule.TimeWindows,
		Taken:       taken,
	})
}
