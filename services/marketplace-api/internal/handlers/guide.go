package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/domain"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/middlewares"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/service"
)

type GuideHandler struct {
	guides   *service.GuideSvc
	tours    *service.TourSvc
	bookings *service.BookingSvc
}

func NewGuideHandler(guides *service.GuideSvc, tours *service.TourSvc, bookings *service.BookingSvc) *GuideHandler {
	return &GuideHandler{guides: guides, tours: tours, bookings: bookings}
}

// GET /api/guides?location=&language=&specialty=&priceMin=&priceMax=&rating=
func (h *GuideHandler) Search(c *gin.Context) {
	f, err := domain.ParseGuideFilter(c.Request.URL.Query())
	if err != nil {
		respondError(c, err)
		return
	}
	guides, err := h.guides.Search(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"guides": guides})
}

// GET /api/guides/:id
func (h *GuideHandler) Get(c *gin.Context) {
	g, err := h.guides.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	tours, err := h.tours.List(c.Request.Context(), domain.TourFilter{GuideID: g.ID})
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"guide": g, "tours": tours})
}

// GET /api/guides/profile
func (h *GuideHandler) Profile(c *gin.Context) {
	g, err := h.guides.Profile(c.Request.Context(), middlewares.Subject(c))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"guide": g})
}

// PUT /api/guides/profile
func (h *GuideHandler) UpdateProfile(c *gin.Context) {
	var upd domain.ProfileUpdate
	if !bindJSON(c, &upd) {
		return
	}
	g, err := h.guides.UpdateProfile(c.Request.Context(), middlewares.Subject(c), upd)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"guide": g, "message": "Profile updated successfully"})
}

// GET /api/guides/bookings
func (h *GuideHandler) Bookings(c *gin.Context) {
	bs, err := h.bookings.ListFor(c.Request.Context(), middlewares.Subject(c), domain.RoleGuide)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"bookings": bs})
}

// PATCH /api/guides/bookings/:bookingId
func (h *GuideHandler) UpdateBookingStatus(c *gin.Context) {
	var in struct {
		Status string `json:"status" binding:"required"`
	}
	if !bindJSON(c, &in) {
		return
	}
	b, err := h.bookings.UpdateStatusAsGuide(c.Request.Context(), middlewares.Subject(c), c.Param("bookingId"), in.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"booking": b, "message": "Booking " + string(b.Status)})
}

// GET /api/guides/tours
func (h *GuideHandler) Tours(c *gin.Context) {
	ts, err := h.tours.ListMine(c.Request.Context(), middlewares.Subject(c))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"tours": ts})
}

// POST /api/guides/tours
func (h *GuideHandler) CreateTour(c *gin.Context) {
	var in service.TourInput
	if !bindJSON(c, &in) {
		return
	}
	t, err := h.tours.Create(c.Request.Context(), middlewares.Subject(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusCreated, gin.H{"tour": t})
}

// PUT /api/guides/tours/:tourId
func (h *GuideHandler) UpdateTour(c *gin.Context) {
	var in service.TourInput
	if !bindJSON(c, &in) {
		return
	}
	t, err := h.tours.Update(c.Request.Context(), middlewares.Subject(c), c.Param("tourId"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"tour": t})
}
