package ports

import (
	"context"

	"github.com/dextasynergyservices/myweddingpage/internal/core/domain"
)

// Notifier sends a single notification over its channel. Implementations
// must respect ctx deadlines; a send is one synchronous round trip.
type Notifier interface {
	Send(ctx context.Context, n domain.Notification) error
}

// NotificationDispatcher decouples notification delivery from the request
// path. Enqueue must not block beyond channel buffering.
type NotificationDispatcher interface {
	Enqueue(n domain.Notification)
	EnqueueBatch(ns []domain.Notification)
}
