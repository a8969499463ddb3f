package queue

import "context"

// Client sends messages to a queue backend.
type Client interface {
	Send(ctx context.Context, msg Message) error
}

// Delivery is one received message as the backend handed it over. The
// body stays raw on purpose: malformed payloads must still reach the
// consumer so it can acknowledge them as unrecoverable instead of
// cycling through redelivery.
type Delivery struct {
	Body         string
	Handle       string
	MessageID    string
	ReceiveCount int
}

// Consumer receives and acknowledges messages from a queue backend.
type Consumer interface {
	Receive(ctx context.Context, max int32) ([]Delivery, error)
	Ack(ctx context.Context, handle string) error
}
