package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/dextasynergyservices/myweddingpage/internal/api/metrics"
	"github.com/dextasynergyservices/myweddingpage/internal/core/domain"
	"github.com/dextasynergyservices/myweddingpage/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
	sendTimeout    = 20 * time.Second
)

// Dispatcher delivers notifications on a fixed set of workers, sharded by
// destination so messages to the same recipient keep their relative order.
// Failed sends are logged and counted, never retried.
type Dispatcher struct {
	workers  []chan domain.Notification
	notifier ports.Notifier
	log      zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, notifier ports.Notifier, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan domain.Notification, numWorkers),
		notifier: notifier,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Notification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a notification to the worker owning its destination shard.
// Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(n domain.Notification) {
	d.workers[d.shardIndex(n.Destination)] <- n
}

// EnqueueBatch enqueues multiple notifications preserving per-destination order.
func (d *Dispatcher) EnqueueBatch(ns []domain.Notification) {
	for _, n := range ns {
		d.Enqueue(n)
	}
}

// shardIndex maps a destination deterministically to a worker index.
func (d *Dispatcher) shardIndex(destination string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(destination))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Notification) {
	gauge := metrics.NotificationsQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		gauge.Set(float64(len(ch)))
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
			err := d.notifier.Send(sendCtx, n)
			cancel()
			if err != nil {
				metrics.NotificationsFailedTotal.WithLabelValues(string(n.Channel)).Inc()
				d.log.Error().Err(err).
					Str("channel", string(n.Channel)).
					Int("worker_id", id).
					Msg("notification delivery failed")
				continue
			}
			metrics.NotificationsSentTotal.WithLabelValues(string(n.Channel)).Inc()
			d.log.Debug().
				Str("channel", string(n.Channel)).
				Int("worker_id", id).
				Msg("notification delivered")
		}
	}
}
