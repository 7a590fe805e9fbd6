// Package messaging publishes and consumes broker messages without tying
// business code to a broker. NATS, Kafka and an in-process driver are
// available.
package messaging

import (
	"context"
	"errors"
	"io"
)

var (
	ErrDestinationRequired = errors.New("messaging: destination is required")
	ErrHandlerRequired     = errors.New("messaging: handler is required")
	ErrBufferFull          = errors.New("messaging: subscriber buffer is full")
)

type Messaging interface {
	io.Closer
	Publisher
	Consumer
}

type Publisher interface {
	Publish(ctx context.Context, destination string, msg OutgoingMessage) error
}

// Consumer blocks in Consume until ctx is canceled or the broker fails.
type Consumer interface {
	Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error
}

// Handler processes one message. With auto ack a nil error acks and a non
// nil error nacks; brokers without redelivery just drop the message.
type Handler func(ctx context.Context, msg Message) error

type OutgoingMessage struct {
	Body []byte
	// Key drives Kafka partitioning; other drivers ignore it.
	Key     []byte
	Headers []Header
}

type Header struct {
	Key   string
	Value []byte
}

type Message interface {
	Body() []byte
	Headers() []Header
	Ack(ctx context.Context) error
	Nack(ctx context.Context) error
}

// HeaderValue returns the first header named key.
func HeaderValue(msg Message, key string) (string, bool) {
	for _, h := range msg.Headers() {
		if h.Key == key {
			return string(h.Value), true
		}
	}
	return "", false
}
