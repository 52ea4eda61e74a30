package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/middlewares"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/service"
)

type CookieConfig struct {
	Secure bool
	Domain string
}

type AuthHandler struct {
	svc    *service.AuthSvc
	cookie CookieConfig
}

func NewAuthHandler(svc *service.AuthSvc, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{svc: svc, cookie: cookie}
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var in struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if !bindJSON(c, &in) {
		return
	}
	sess, err := h.svc.Register(c.Request.Context(), service.RegisterInput{
		Name: in.Name, Email: in.Email, Password: in.Password, Role: in.Role,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	h.setSession(c, sess)
	ok(c, http.StatusCreated, gin.H{"user": sess.User, "token": sess.Token, "message": "Registration successful"})
}

// POST /api/auth/login and /api/auth/direct-login
func (h *AuthHandler) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if !bindJSON(c, &in) {
		return
	}
	sess, err := h.svc.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	h.setSession(c, sess)
	ok(c, http.StatusOK, gin.H{"user": sess.User, "token": sess.Token, "message": "Login successful"})
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middlewares.TokenCookie, "", -1, "/", h.cookie.Domain, h.cookie.Secure, true)
	ok(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// GET /api/auth/check
func (h *AuthHandler) Check(c *gin.Context) {
	u, err := h.svc.Me(c.Request.Context(), middlewares.Subject(c))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"authenticated": true, "user": u})
}

// GET /api/auth/csrf
func (h *AuthHandler) CSRF(c *gin.Context) {
	token := middlewares.CSRFToken(c.Request)
	c.Header("X-CSRF-Token", token)
	ok(c, http.StatusOK, gin.H{"csrfToken": token})
}

func (h *AuthHandler) setSession(c *gin.Context, sess *service.Session) {
	maxAge := int(h.svc.TokenTTL().Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middlewares.TokenCookie, sess.Token, maxAge, "/", h.cookie.Domain, h.cookie.Secure, true)
}
