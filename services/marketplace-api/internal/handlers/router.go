package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/pkg/auth"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/domain"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/middlewares"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/service"
)

type Services struct {
	Auth         *service.AuthSvc
	Guides       *service.GuideSvc
	Tours        *service.TourSvc
	Bookings     *service.BookingSvc
	Users        *service.UserSvc
	Destinations *service.DestinationSvc
	Admin        *service.AdminSvc
}

type RouterConfig struct {
	Tokens        *auth.Tokens
	Cookie        CookieConfig
	ClientOrigins []string
	Log           zerolog.Logger
}

func NewRouter(cfg RouterConfig, s Services) *gin.Engine {
	r := gin.New()
	r.Use(
		middlewares.RequestID(),
		middlewares.AccessLog(cfg.Log),
		middlewares.Recovery(cfg.Log),
		middlewares.CORS(cfg.ClientOrigins...),
		middlewares.SecureHeaders(),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	var (
		traveler = string(domain.RoleTraveler)
		guide    = string(domain.RoleGuide)
		admin    = string(domain.RoleAdmin)
	)
	authn := middlewares.JWTAuth(cfg.Tokens)

	ah := NewAuthHandler(s.Auth, cfg.Cookie)
	gh := NewGuideHandler(s.Guides, s.Tours, s.Bookings)
	th := NewTourHandler(s.Tours)
	bh := NewBookingHandler(s.Bookings)
	uh := NewUserHandler(s.Users)
	dh := NewDestinationHandler(s.Destinations)
	adh := NewAdminHandler(s.Admin, s.Users, s.Bookings)

	api := r.Group("/api")
	{
		a := api.Group("/auth")
		a.POST("/register", ah.Register)
		a.POST("/login", ah.Login)
		a.POST("/direct-login", ah.Login)
		a.POST("/logout", ah.Logout)
		a.GET("/csrf", ah.CSRF)
		a.GET("/check", authn, ah.Check)

		api.GET("/guides", gh.Search)
		api.GET("/guides/:id", gh.Get)
		api.GET("/tours", th.List)
		api.GET("/tours/:id", th.Get)
		api.GET("/destinations", dh.List)
		api.GET("/destinations/:slug", dh.Get)

		g := api.Group("/guides")
		g.Use(authn, middlewares.RequireRole(guide))
		{
			g.GET("/profile", gh.Profile)
			g.PUT("/profile", gh.UpdateProfile)
			g.GET("/bookings", gh.Bookings)
			g.PATCH("/bookings/:bookingId", gh.UpdateBookingStatus)
			g.GET("/tours", gh.Tours)
			g.POST("/tours", gh.CreateTour)
			g.PUT("/tours/:tourId", gh.UpdateTour)
		}

		secured := api.Group("")
		secured.Use(authn)
		{
			secured.GET("/users/me", uh.GetMe)
			secured.PUT("/users/me", uh.UpdateMe)
			secured.GET("/dashboard", bh.Dashboard)
			secured.GET("/bookings", bh.List)
			secured.GET("/bookings/:id", bh.Get)

			tr := secured.Group("")
			tr.Use(middlewares.RequireRole(traveler))
			tr.POST("/bookings", bh.Create)
			tr.POST("/bookings/:id/cancel", bh.Cancel)
			tr.POST("/bookings/:id/pay", bh.Pay)
		}

		ad := api.Group("/admin")
		ad.Use(authn, middlewares.RequireRole(admin))
		{
			ad.GET("/dashboard", adh.Dashboard)
			ad.GET("/users", adh.Users)
			ad.GET("/guides", adh.Guides)
			ad.GET("/bookings", adh.Bookings)
			ad.POST("/destinations", dh.Create)
			ad.PUT("/destinations/:id", dh.Update)
		}
	}

	r.POST("/webhooks/omise", bh.OmiseWebhook)
	return r
}
