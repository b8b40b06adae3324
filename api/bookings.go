package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/Domenick1991/cinemabooking/internal/domain"
	"github.com/Domenick1991/cinemabooking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	Owner         string   `json:"owner"`
	ScreeningTime string   `json:"screeningTime"`
	Seats         []string `json:"seats"`
}

type bookingResponse struct {
	BookingID     string   `json:"booking_id"`
	Owner         string   `json:"owner"`
	ScreeningTime string   `json:"screening_time"`
	Seats         []string `json:"seats"`
	Status        string   `json:"status"`
	ExpiresAt     string   `json:"expires_at"`
	CreatedAt     string   `json:"created_at"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router gin.IRouter) {
	router.POST("/book", h.book)
	router.POST("/confirm/:bookingId", h.confirm)
	router.GET("/bookings/:username", h.list)
	router.DELETE("/bookings/:bookingId", h.delete)
}

func (h *BookingHandler) book(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		Owner:         req.Owner,
		ScreeningTime: req.ScreeningTime,
		Seats:         req.Seats,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Booking pending",
		"booking_id": created.BookingID,
		"booking":    toBookingResponse(created),
	})
}

func (h *BookingHandler) confirm(c *gin.Context) {
	bookingID := c.Param("bookingId")
	confirmed, err := h.service.ConfirmBooking(c.Request.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		case errors.Is(err, domain.ErrInvalidState):
			c.JSON(http.StatusBadRequest, gin.H{"error": "booking is not pending"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking confirmed",
		"booking": toBookingResponse(confirmed),
	})
}

func (h *BookingHandler) list(c *gin.Context) {
	owner := c.Param("username")
	bookings, err := h.service.ListBookings(c.Request.Context(), owner)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		resp = append(resp, toBookingResponse(&bookings[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) delete(c *gin.Context) {
	bookingID := c.Param("bookingId")
	if err := h.service.DeleteBooking(c.Request.Context(), bookingID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Booking not found"})
		case errors.Is(err, domain.ErrInvalidState):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Only pending bookings can be deleted"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		BookingID:     b.BookingID,
		Owner:         b.Owner,
		ScreeningTime: b.ScreeningTime,
		Seats:         b.Seats,
		Status:        string(b.Status),
		ExpiresAt:     b.ExpiresAt.Format(time.RFC3339),
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
	}
}
