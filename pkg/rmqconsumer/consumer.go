package rmqconsumer

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"user-presence-api/config"
	"user-presence-api/internal/infrastructure/mq"
)

// can scale depends on a parallel worker count
const preFetchCount = 1

type Consumer struct {
	cfg        config.MQ
	log        *zap.Logger
	conn       *amqp091.Connection
	chConsume  *amqp091.Channel
	chDelivery <-chan amqp091.Delivery
}

func New(cfg config.MQ, logger *zap.Logger, conn *amqp091.Connection) *Consumer {
	return &Consumer{
		cfg:  cfg,
		log:  logger,
		conn: conn,
	}
}

// Connect opens the consume channel on the shared connection when it is
// alive, otherwise it dials dsn.
func (c *Consumer) Connect(ctx context.Context, dsn string) error {
	if c.conn == nil || c.conn.IsClosed() {
		dialer := &net.Dialer{Timeout: 10 * time.Second}
		conn, err := amqp091.DialConfig(dsn, amqp091.Config{
			Heartbeat: 10 * time.Second,
			Properties: amqp091.Table{
				"connection_name": "userpresenceapi-consumer",
			},
			Dial: func(network, addr string) (net.Conn, error) {
				return dialer.DialContext(ctx, network, addr)
			},
		})
		if err != nil {
			return fmt.Errorf("amqp dial: %w", err)
		}
		c.conn = conn
	}

	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("amqp channel: %w", err)
	}
	c.chConsume = ch

	c.log.Info("rabbitmq consumer connected successfully")

	return nil
}

func (c *Consumer) Init() error {
	if err := c.chConsume.ExchangeDeclare(
		c.cfg.Exchange,
		c.cfg.ExchangeType,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("exchange declare: %w", err)
	}
	if _, err := c.chConsume.QueueDeclare(
		c.cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	for _, rk := range mq.RoutingKeys {
		if err := c.chConsume.QueueBind(
			c.cfg.QueueName,
			rk,
			c.cfg.Exchange,
			false,
			nil,
		); err != nil {
			return fmt.Errorf("queue bind %s: %w", rk, err)
		}
	}

	if err := c.chConsume.Qos(preFetchCount, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}

	var err error
	c.chDelivery, err = c.chConsume.Consume(
		c.cfg.QueueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	return nil
}

func (c *Consumer) DeliveryWorker(ctx context.Context) {
	c.log.Info("starting delivery worker")

	defer func() {
		c.log.Info("delivery worker gracefully stopped")
	}()

	for {
		select {
		case msg, ok := <-c.chDelivery:
			if !ok {
				c.log.Warn("delivery channel closed")
				return
			}
			if err := c.delivery(msg); err != nil {
				c.log.Error("mq read message error", zap.Error(err), zap.String("routing_key", msg.RoutingKey))
			}
		case <-ctx.Done():
			c.chConsume.Close()
			return
		}
	}
}

// delivery logs a user event. Malformed or unknown messages are dropped
// without requeue.
func (c *Consumer) delivery(msg amqp091.Delivery) error {
	if !known(msg.RoutingKey) {
		_ = msg.Nack(false, false)
		return fmt.Errorf("unknown routing key %q", msg.RoutingKey)
	}

	var e mq.Event
	if err := json.Unmarshal(msg.Body, &e); err != nil {
		_ = msg.Nack(false, false)
		return fmt.Errorf("decode event: %w", err)
	}

	fields := []zap.Field{
		zap.String("action", e.Action),
		zap.Stringer("event_id", e.Id),
		zap.String("user_id", e.UserID),
		zap.String("username", e.Payload.Username),
	}
	if e.Payload.Online != nil {
		fields = append(fields, zap.Bool("online", *e.Payload.Online))
	}
	c.log.Info("user event", fields...)

	return msg.Ack(false)
}

func known(routingKey string) bool {
	for _, rk := range mq.RoutingKeys {
		if rk == routingKey {
			return true
		}
	}
	return false
}
