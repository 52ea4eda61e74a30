package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/domain"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/service"
)

type TourHandler struct{ svc *service.TourSvc }

func NewTourHandler(svc *service.TourSvc) *TourHandler { return &TourHandler{svc: svc} }

// GET /api/tours?location=&guideId=
func (h *TourHandler) List(c *gin.Context) {
	ts, err := h.svc.List(c.Request.Context(), domain.TourFilter{
		Location: c.Query("location"),
		GuideID:  c.Query("guideId"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"tours": ts})
}

// GET /api/tours/:id
func (h *TourHandler) Get(c *gin.Context) {
	t, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"tour": t})
}
