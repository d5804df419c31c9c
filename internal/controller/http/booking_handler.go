package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"velvetroom/internal/entity"
	"velvetroom/internal/usecase"
)

type BookingHandler struct {
	bookings usecase.BookingUseCase
}

func NewBookingHandler(bookings usecase.BookingUseCase) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

func (h *BookingHandler) Submit(c *gin.Context) {
	var booking entity.Booking
	if err := c.ShouldBindJSON(&booking); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.bookings.Submit(c.Request.Context(), &booking); err != nil {
		respondUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Booking request sent"})
}
