package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/pkg/auth"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/pkg/config"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/pkg/db"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/pkg/mq"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/pkg/notify"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/pkg/obs"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/handlers"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/middlewares"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/payment"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/repository"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/marketplace-api/internal/service"
)

func must[T any](v T, err error) T {
	if err != nil {
		log.Fatal().Err(err).Msg("startup")
	}
	return v
}

func main() {
	cfg, err := config.LoadAPI()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	logger := obs.InitLogger("marketplace-api", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer := must(obs.InitTracer(ctx, "marketplace-api", cfg.OTLPEndpoint, cfg.Env))

	store := must(repository.Open(ctx, repository.StoreConfig{
		Driver:        cfg.DBDriver,
		DSN:           dsn(cfg),
		MongoURI:      cfg.MongoURI,
		MongoDatabase: cfg.MongoDatabase,
		Pool:          db.Options{MaxOpenConns: cfg.DBMaxOpenConns, MaxIdleConns: cfg.DBMaxIdleConns, ConnMaxLifetime: time.Hour},
	}))

	pub, closePub := publisher(cfg, logger)

	var payments service.Payments
	if cfg.OmisePublicKey != "" && cfg.OmiseSecretKey != "" {
		payments = must(payment.NewOmise(cfg.OmisePublicKey, cfg.OmiseSecretKey))
	} else {
		logger.Warn().Msg("OMISE keys not set; card payments disabled")
	}

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL, cfg.JWTIssuer)
	bookings := service.NewBookingSvc(service.BookingDeps{
		Bookings: store.Bookings,
		Tours:    store.Tours,
		Users:    store.Users,
		Pub:      pub,
		Payments: payments,
		Currency: cfg.PaymentCurrency,
		Log:      logger,
	})
	router := handlers.NewRouter(handlers.RouterConfig{
		Tokens:        tokens,
		Cookie:        handlers.CookieConfig{Secure: cfg.CookieSecure, Domain: cfg.CookieDomain},
		ClientOrigins: []string{cfg.ClientOrigin},
		Log:           logger,
	}, handlers.Services{
		Auth:         service.NewAuthSvc(store.Users, tokens),
		Guides:       service.NewGuideSvc(store.Users),
		Tours:        service.NewTourSvc(store.Tours),
		Bookings:     bookings,
		Users:        service.NewUserSvc(store.Users),
		Destinations: service.NewDestinationSvc(store.Destinations),
		Admin:        service.NewAdminSvc(store.Users, store.Tours, store.Bookings, store.Destinations),
	})

	var h http.Handler = router
	if cfg.CSRFKey != "" {
		h = middlewares.CSRF([]byte(cfg.CSRFKey), cfg.CookieSecure, cfg.ClientOrigin)(router)
	}
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Str("db", cfg.DBDriver).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	closePub()
	if err := store.Close(sctx); err != nil {
		logger.Error().Err(err).Msg("close store")
	}
	if err := shutdownTracer(sctx); err != nil {
		logger.Error().Err(err).Msg("tracer shutdown")
	}
}

func dsn(cfg config.API) string {
	if cfg.DBDriver == "sqlite" {
		return cfg.SQLitePath
	}
	return cfg.PGDSN
}

// publisher sends booking events to RabbitMQ when configured, otherwise mails them in-process.
func publisher(cfg config.API, l zerolog.Logger) (service.Publisher, func()) {
	if cfg.RabbitURL != "" {
		p := must(mq.NewPublisher(cfg.RabbitURL, cfg.BookingExchange))
		return p, func() { _ = p.Close() }
	}
	var n notify.Notifier = notify.NewConsole(l)
	if cfg.SMTP.User != "" {
		n = notify.NewMailer(notify.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.User,
			Password: cfg.SMTP.Password,
		})
	}
	return notify.NewDispatcher(notify.NewRouter(n, l), l), func() {}
}
