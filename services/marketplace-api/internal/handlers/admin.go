package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/domain"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/service"
)

type AdminHandler struct {
	admin    *service.AdminSvc
	users    *service.UserSvc
	bookings *service.BookingSvc
}

func NewAdminHandler(admin *service.AdminSvc, users *service.UserSvc, bookings *service.BookingSvc) *AdminHandler {
	return &AdminHandler{admin: admin, users: users, bookings: bookings}
}

// GET /api/admin/dashboard
func (h *AdminHandler) Dashboard(c *gin.Context) {
	st, err := h.admin.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"stats": st})
}

// GET /api/admin/users?role=&q=
func (h *AdminHandler) Users(c *gin.Context) {
	us, err := h.users.List(c.Request.Context(), c.Query("role"), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"users": us})
}

// GET /api/admin/guides?q=
func (h *AdminHandler) Guides(c *gin.Context) {
	gs, err := h.users.List(c.Request.Context(), string(domain.RoleGuide), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"guides": gs})
}

// GET /api/admin/bookings?status=
func (h *AdminHandler) Bookings(c *gin.Context) {
	bs, err := h.bookings.ListAll(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"bookings": bs})
}
