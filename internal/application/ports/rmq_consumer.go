package ports

import "context"

// RMQConsumer reads user aggregate events back from the queue.
type RMQConsumer interface {
	Connect(ctx context.Context, dsn string) error
	Init() error
	DeliveryWorker(ctx context.Context)
}
