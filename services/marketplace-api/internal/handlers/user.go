package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/domain"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/middlewares"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/service"
)

type UserHandler struct{ svc *service.UserSvc }

func NewUserHandler(svc *service.UserSvc) *UserHandler { return &UserHandler{svc: svc} }

// GET /api/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	u, err := h.svc.Me(c.Request.Context(), middlewares.Subject(c))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"user": u})
}

// PUT /api/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var upd domain.ProfileUpdate
	if !bindJSON(c, &upd) {
		return
	}
	u, err := h.svc.UpdateMe(c.Request.Context(), middlewares.Subject(c), upd)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"user": u})
}
