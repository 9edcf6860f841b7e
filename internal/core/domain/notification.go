package domain

// Channel identifies a delivery medium for outbound notifications.
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelWhatsApp Channel = "whatsapp"
)

// Notification is an outbound message handed to a channel sender. Delivery
// is best-effort: a failed send is logged and counted, never retried inline
// and never rolled back into the credential store.
type Notification struct {
	Channel     Channel
	Destination string
	Subject     string
	Body        string
}
