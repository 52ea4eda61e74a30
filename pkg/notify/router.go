package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/pkg/events"
)

// ErrBadPayload marks a message that will never succeed and must not be requeued.
var ErrBadPayload = errors.New("bad payload")

type Router struct {
	n   Notifier
	log zerolog.Logger
}

func NewRouter(n Notifier, l zerolog.Logger) *Router {
	return &Router{n: n, log: l}
}

// Handle renders and sends every email for one routing key. It stops at the
// first failed send and returns that error, so a redelivered event mails the
// earlier recipients again. Delivery is at-least-once per recipient.
func (r *Router) Handle(ctx context.Context, key string, body []byte) error {
	ev, err := events.Decode[events.BookingEvent](body)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrBadPayload, key, err)
	}
	msgs, err := Render(key, ev)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if len(msgs) == 0 {
		r.log.Debug().Str("key", key).Msg("skip unknown key")
		return nil
	}
	for _, m := range msgs {
		if m.To == "" {
			r.log.Warn().Str("key", key).Str("booking", ev.BookingID).Msg("no recipient")
			continue
		}
		if err := r.n.Notify(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// Dispatcher delivers events in-process when no broker is configured.
// Sending runs in the background; failures are logged and never reach the caller.
type Dispatcher struct {
	r       *Router
	log     zerolog.Logger
	timeout time.Duration
}

func NewDispatcher(r *Router, l zerolog.Logger) *Dispatcher {
	return &Dispatcher{r: r, log: l, timeout: 30 * time.Second}
}

func (d *Dispatcher) PublishJSON(ctx context.Context, key string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	ctx = context.WithoutCancel(ctx)
	go func() {
		ctx, cancel := context.WithTimeout(ctx, d.timeout)
		defer cancel()
		if err := d.r.Handle(ctx, key, body); err != nil {
			d.log.Warn().Err(err).Str("key", key).Msg("send booking email")
		}
	}()
	return nil
}
