package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/service"
)

type DestinationHandler struct{ svc *service.DestinationSvc }

func NewDestinationHandler(svc *service.DestinationSvc) *DestinationHandler {
	return &DestinationHandler{svc: svc}
}

// GET /api/destinations?q=
func (h *DestinationHandler) List(c *gin.Context) {
	ds, err := h.svc.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"destinations": ds})
}

// GET /api/destinations/:slug
func (h *DestinationHandler) Get(c *gin.Context) {
	d, err := h.svc.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"destination": d})
}

// POST /api/admin/destinations
func (h *DestinationHandler) Create(c *gin.Context) {
	var in service.DestinationInput
	if !bindJSON(c, &in) {
		return
	}
	d, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusCreated, gin.H{"destination": d})
}

// PUT /api/admin/destinations/:id
func (h *DestinationHandler) Update(c *gin.Context) {
	var in service.DestinationInput
	if !bindJSON(c, &in) {
		return
	}
	d, err := h.svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"destination": d})
}
