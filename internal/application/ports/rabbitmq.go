package ports

import (
	"context"

	"github.com/rabbitmq/amqp091-go"

	"user-presence-api/internal/infrastructure/mq"
)

// RabbitMQ publishes user aggregate events. Services only push to the input channel.
type RabbitMQ interface {
	Connect(ctx context.Context, dsn string) error
	Init() error
	PublisherWorker(ctx context.Context)
	GetInputChan() chan mq.Event
	GetConn() *amqp091.Connection
}
