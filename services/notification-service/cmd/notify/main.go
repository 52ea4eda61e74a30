package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/pkg/config"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/pkg/mq"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/pkg/notify"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/pkg/obs"
	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/services/notification-service/internal/worker"
)

func main() {
	cfg, err := config.LoadNotify()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	logger := obs.InitLogger("notification-service", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := obs.InitTracer(ctx, "notification-service", cfg.OTLPEndpoint, cfg.Env)
	if err != nil {
		logger.Fatal().Err(err).Msg("tracer")
	}
	defer func() { _ = shutdownTracer(context.Background()) }()

	var n notify.Notifier = notify.NewConsole(logger)
	if cfg.SMTP.User != "" {
		n = notify.NewMailer(notify.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.User,
			Password: cfg.SMTP.Password,
		})
	} else {
		logger.Warn().Msg("EMAIL_USER not set; emails go to the log")
	}
	w := worker.New(notify.NewRouter(n, logger), logger)

	ccfg := mq.ConsumerConfig{
		URL:                cfg.RabbitURL,
		Exchanges:          cfg.Exchanges,
		Queue:              cfg.Queue,
		Bindings:           cfg.Bindings,
		Prefetch:           cfg.Prefetch,
		DeadLetterExchange: cfg.DLX,
		DeadLetterQueue:    cfg.DLQ,
		Tag:                "notification-service",
	}

	// reconnect until the broker is reachable, and again whenever the channel drops
	for ctx.Err() == nil {
		cons, err := mq.NewConsumer(ccfg)
		if err != nil {
			logger.Warn().Err(err).Msg("connect failed; retry in 2s")
			sleep(ctx, 2*time.Second)
			continue
		}
		msgs, err := cons.Deliveries(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("consume")
			_ = cons.Close()
			sleep(ctx, 2*time.Second)
			continue
		}
		logger.Info().
			Str("queue", cfg.Queue).
			Strs("exchanges", cfg.Exchanges).
			Strs("bindings", cfg.Bindings).
			Msg("consuming")
		if err := w.Run(ctx, msgs); err != nil {
			logger.Warn().Err(err).Msg("consumer stopped; reconnecting")
		}
		_ = cons.Close()
	}
	logger.Info().Msg("stopped")
}

func sleep(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
