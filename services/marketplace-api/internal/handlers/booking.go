package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/middlewares"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/service"
)

type BookingHandler struct{ svc *service.BookingSvc }

func NewBookingHandler(svc *service.BookingSvc) *BookingHandler { return &BookingHandler{svc: svc} }

// POST /api/bookings (traveler)
func (h *BookingHandler) Create(c *gin.Context) {
	var in service.CreateBookingInput
	if !bindJSON(c, &in) {
		return
	}
	b, err := h.svc.Create(c.Request.Context(), middlewares.Subject(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusCreated, gin.H{"booking": b, "message": "Booking created successfully"})
}

// GET /api/bookings
func (h *BookingHandler) List(c *gin.Context) {
	sub, role := caller(c)
	bs, err := h.svc.ListFor(c.Request.Context(), sub, role)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"bookings": bs})
}

// GET /api/bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	sub, role := caller(c)
	b, err := h.svc.Get(c.Request.Context(), sub, role, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"booking": b})
}

// POST /api/bookings/:id/cancel (traveler)
func (h *BookingHandler) Cancel(c *gin.Context) {
	b, err := h.svc.CancelAsTraveler(c.Request.Context(), middlewares.Subject(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"booking": b, "message": "Booking cancelled successfully"})
}

// POST /api/bookings/:id/pay (traveler)
func (h *BookingHandler) Pay(c *gin.Context) {
	var in struct {
		CardToken string `json:"cardToken" binding:"required"`
	}
	if !bindJSON(c, &in) {
		return
	}
	b, err := h.svc.Pay(c.Request.Context(), middlewares.Subject(c), c.Param("id"), in.CardToken)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"booking": b})
}

// GET /api/dashboard
func (h *BookingHandler) Dashboard(c *gin.Context) {
	d, err := h.svc.Dashboard(c.Request.Context(), middlewares.Subject(c))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"user": d.User, "upcomingBookings": d.Upcoming, "pastBookings": d.Past})
}

// POST /webhooks/omise
func (h *BookingHandler) OmiseWebhook(c *gin.Context) {
	var in struct {
		ID string `json:"id" binding:"required"`
	}
	if !bindJSON(c, &in) {
		return
	}
	if err := h.svc.HandlePaymentEvent(c.Request.Context(), in.ID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
