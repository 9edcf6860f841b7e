package notify

import (
	"context"
	"fmt"

	"github.com/dextasynergyservices/myweddingpage/internal/core/domain"
	"github.com/dextasynergyservices/myweddingpage/internal/core/ports"
)

// Router fans a notification out to the sender registered for its channel.
type Router struct {
	senders map[domain.Channel]ports.Notifier
}

func NewRouter() *Router {
	return &Router{senders: make(map[domain.Channel]ports.Notifier)}
}

// Register binds a sender to a channel, replacing any previous binding.
func (r *Router) Register(ch domain.Channel, sender ports.Notifier) {
	r.senders[ch] = sender
}

// Send routes n to its channel sender.
func (r *Router) Send(ctx context.Context, n domain.Notification) error {
	sender, ok := r.senders[n.Channel]
	if !ok {
		return fmt.Errorf("no sender registered for channel %q", n.Channel)
	}
	return sender.Send(ctx, n)
}
