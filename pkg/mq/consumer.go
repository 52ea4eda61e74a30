package mq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

type ConsumerConfig struct {
	URL       string
	Exchanges []string
	Queue     string
	Bindings  []string
	Prefetch  int
	// Rejected messages go to DeadLetterExchange and land in DeadLetterQueue.
	// Leave both empty to drop them.
	DeadLetterExchange string
	DeadLetterQueue    string
	Tag                string
}

type Consumer struct {
	cfg  ConsumerConfig
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewConsumer declares every exchange, the queue, its bindings and the optional DLX.
func NewConsumer(cfg ConsumerConfig) (*Consumer, error) {
	if len(cfg.Exchanges) == 0 {
		return nil, fmt.Errorf("consumer: no exchanges")
	}
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	c := &Consumer{cfg: cfg, conn: conn, ch: ch}
	if err := c.declare(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Consumer) declare() error {
	args := amqp.Table{}
	if c.cfg.DeadLetterExchange != "" {
		args["x-dead-letter-exchange"] = c.cfg.DeadLetterExchange
	}
	q, err := c.ch.QueueDeclare(c.cfg.Queue, true, false, false, false, args)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	c.cfg.Queue = q.Name

	for _, ex := range c.cfg.Exchanges {
		if err := c.ch.ExchangeDeclare(ex, "topic", true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare exchange %s: %w", ex, err)
		}
		for _, rk := range c.cfg.Bindings {
			if err := c.ch.QueueBind(q.Name, rk, ex, false, nil); err != nil {
				return fmt.Errorf("bind %s to %s: %w", rk, ex, err)
			}
		}
	}

	if c.cfg.DeadLetterExchange != "" {
		if err := c.ch.ExchangeDeclare(c.cfg.DeadLetterExchange, "topic", true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare dlx: %w", err)
		}
		if _, err := c.ch.QueueDeclare(c.cfg.DeadLetterQueue, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare dlq: %w", err)
		}
		if err := c.ch.QueueBind(c.cfg.DeadLetterQueue, "#", c.cfg.DeadLetterExchange, false, nil); err != nil {
			return fmt.Errorf("bind dlq: %w", err)
		}
	}

	prefetch := c.cfg.Prefetch
	if prefetch <= 0 {
		prefetch = 8
	}
	if err := c.ch.Qos(prefetch, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}
	return nil
}

func (c *Consumer) Deliveries(ctx context.Context) (<-chan amqp.Delivery, error) {
	return c.ch.ConsumeWithContext(ctx, c.cfg.Queue, c.cfg.Tag, false, false, false, false, nil)
}

func (c *Consumer) Close() error {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
