package messaging

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
)

const memoryBuffer = 64

// Memory delivers messages inside the process. Every Consume call on a
// destination receives its own copy; messages published while nobody
// consumes are dropped, like core NATS. Nack does not redeliver.
// Publish never waits on a slow consumer: a subscriber whose buffer is
// full misses the message and Publish reports ErrBufferFull.
type Memory struct {
	mu     sync.RWMutex
	subs   map[string][]*memorySub
	closed bool
}

type memorySub struct {
	ch   chan *memoryMessage
	done chan struct{}
	once sync.Once
}

func (s *memorySub) stop() { s.once.Do(func() { close(s.done) }) }

func NewMemory() *Memory {
	return &Memory{subs: make(map[string][]*memorySub)}
}

func (m *Memory) Publish(ctx context.Context, destination string, msg OutgoingMessage) error {
	if destination == "" {
		return ErrDestinationRequired
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return io.ErrClosedPipe
	}

	full := false
	for _, sub := range m.subs[destination] {
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case sub.ch <- &memoryMessage{body: msg.Body, headers: append([]Header(nil), msg.Headers...)}:
		case <-sub.done:
		default:
			full = true
		}
	}
	if full {
		return ErrBufferFull
	}
	return nil
}

func (m *Memory) Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error {
	if source == "" {
		return ErrDestinationRequired
	}
	if handler == nil {
		return ErrHandlerRequired
	}
	co := newConsumeOptions(opts...)

	sub := &memorySub{ch: make(chan *memoryMessage, memoryBuffer), done: make(chan struct{})}
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return io.ErrClosedPipe
	}
	m.subs[source] = append(m.subs[source], sub)
	m.mu.Unlock()

	var wg sync.WaitGroup
	for range co.concurrency {
		wg.Go(func() {
			for {
				select {
				case <-ctx.Done():
					return
				case <-sub.done:
					return
				case msg := <-sub.ch:
					dispatch(ctx, DriverMemory, handler, msg, &msg.responded, co.autoAck)
				}
			}
		})
	}

	select {
	case <-ctx.Done():
	case <-sub.done:
	}
	sub.stop()
	m.remove(source, sub)
	wg.Wait()

	return ctx.Err()
}

func (m *Memory) remove(source string, sub *memorySub) {
	m.mu.Lock()
	defer m.mu.Unlock()

	subs := m.subs[source]
	for i, s := range subs {
		if s == sub {
			m.subs[source] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
}

// Subscribers returns how many Consume calls are attached to destination.
func (m *Memory) Subscribers(destination string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subs[destination])
}

// Close stops every running Consume.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	for _, subs := range m.subs {
		for _, s := range subs {
			s.stop()
		}
	}
	return nil
}

type memoryMessage struct {
	body      []byte
	headers   []Header
	responded atomic.Bool
}

func (mm *memoryMessage) Body() []byte      { return mm.body }
func (mm *memoryMessage) Headers() []Header { return mm.headers }

func (mm *memoryMessage) Ack(context.Context) error {
	mm.responded.Store(true)
	return nil
}

func (mm *memoryMessage) Nack(context.Context) error {
	mm.responded.Store(true)
	return nil
}
