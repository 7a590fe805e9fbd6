package messaging

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestMemoryPublishConsume(t *testing.T) {
	// Arrange
	m := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan Message, 1)
	done := make(chan error, 1)
	go func() {
		done <- m.Consume(ctx, "user.password.forgot", func(_ context.Context, msg Message) error {
			got <- msg
			return nil
		}, WithAutoAck(true))
	}()
	waitSubscribed(t, m, "user.password.forgot")

	// Act
	err := m.Publish(ctx, "user.password.forgot", OutgoingMessage{
		Body:    []byte(`{"user_id":"1"}`),
		Headers: []Header{{Key: "cID", Value: []byte("cid-1")}},
	})

	// Assert
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	select {
	case msg := <-got:
		if string(msg.Body()) != `{"user_id":"1"}` {
			t.Fatalf("body = %s", msg.Body())
		}
		if cid, ok := HeaderValue(msg, "cID"); !ok || cid != "cid-1" {
			t.Fatalf("cID = %q %v", cid, ok)
		}
	case <-time.After(time.Second):
		t.Fatal("message not delivered")
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("Consume returned %v", err)
	}
}

func TestMemoryRecoversHandlerPanic(t *testing.T) {
	// Arrange
	m := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	go func() {
		_ = m.Consume(ctx, "topic", func(context.Context, Message) error {
			if calls.Add(1) == 1 {
				panic("boom")
			}
			return nil
		}, WithAutoAck(true))
	}()
	waitSubscribed(t, m, "topic")

	// Act
	_ = m.Publish(ctx, "topic", OutgoingMessage{Body: []byte("1")})
	_ = m.Publish(ctx, "topic", OutgoingMessage{Body: []byte("2")})

	// Assert
	deadline := time.Now().Add(time.Second)
	for calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if calls.Load() != 2 {
		t.Fatalf("calls = %d", calls.Load())
	}
}

func TestMemoryCloseStopsConsume(t *testing.T) {
	// Arrange
	m := NewMemory()
	done := make(chan error, 1)
	go func() {
		done <- m.Consume(context.Background(), "topic", func(context.Context, Message) error { return nil })
	}()
	waitSubscribed(t, m, "topic")

	// Act
	_ = m.Close()

	// Assert
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("err = %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Consume did not return")
	}
	if err := m.Publish(context.Background(), "topic", OutgoingMessage{}); err == nil {
		t.Fatal("expected publish after close to fail")
	}
}

func TestMemoryPublishDoesNotBlockOnStalledConsumer(t *testing.T) {
	// Arrange
	m := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	release := make(chan struct{})
	defer close(release)
	go func() {
		_ = m.Consume(ctx, "topic", func(context.Context, Message) error {
			<-release
			return nil
		}, WithConcurrency(1), WithAutoAck(true))
	}()
	waitSubscribed(t, m, "topic")

	// Act
	start := time.Now()
	var published int
	var lastErr error
	for range memoryBuffer + 36 {
		if err := m.Publish(ctx, "topic", OutgoingMessage{Body: []byte("x")}); err != nil {
			lastErr = err
			continue
		}
		published++
	}
	elapsed := time.Since(start)

	// Assert
	if !errors.Is(lastErr, ErrBufferFull) {
		t.Fatalf("err = %v", lastErr)
	}
	if published < memoryBuffer || published > memoryBuffer+1 {
		t.Fatalf("published = %d", published)
	}
	if elapsed > 500*time.Millisecond {
		t.Fatalf("publish blocked for %s", elapsed)
	}
}

func TestNewFromDriver(t *testing.T) {
	if _, err := NewFromDriver("nsq", FactoryOptions{}); !errors.Is(err, ErrUnknownDriver) {
		t.Fatalf("err = %v", err)
	}
	if _, err := NewFromDriver("kafka", FactoryOptions{}); !errors.Is(err, ErrKafkaBrokersRequired) {
		t.Fatalf("err = %v", err)
	}
	if _, err := NewFromDriver("nats", FactoryOptions{}); !errors.Is(err, ErrNATSURLRequired) {
		t.Fatalf("err = %v", err)
	}
}

func waitSubscribed(t *testing.T, m *Memory, topic string) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if m.Subscribers(topic) > 0 {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("no subscriber on %s", topic)
}
