package worker

import (
	"context"
	"errors"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/pkg/notify"
)

// Handler is satisfied by notify.Router.
type Handler interface {
	Handle(ctx context.Context, key string, body []byte) error
}

type Worker struct {
	h   Handler
	log zerolog.Logger
}

func New(h Handler, l zerolog.Logger) *Worker {
	return &Worker{h: h, log: l}
}

// Run acks each delivery once handled. It returns when ctx is done or the channel closes.
func (w *Worker) Run(ctx context.Context, msgs <-chan amqp.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}
			w.handleDelivery(ctx, d)
		}
	}
}

// handleDelivery requeues a failed send once; a second failure or an
// unreadable payload goes to the dead-letter queue.
func (w *Worker) handleDelivery(ctx context.Context, d amqp.Delivery) {
	err := w.h.Handle(ctx, d.RoutingKey, d.Body)
	if err == nil {
		if aerr := d.Ack(false); aerr != nil {
			w.log.Error().Err(aerr).Str("key", d.RoutingKey).Msg("ack")
		}
		return
	}

	requeue := !errors.Is(err, notify.ErrBadPayload) && !d.Redelivered
	w.log.Warn().Err(err).
		Str("key", d.RoutingKey).
		Str("message_id", d.MessageId).
		Bool("requeue", requeue).
		Msg("handle delivery")
	if nerr := d.Nack(false, requeue); nerr != nil {
		w.log.Error().Err(nerr).Str("key", d.RoutingKey).Msg("nack")
	}
}
