package events

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/rs/zerolog"
)

// Bus is an unbounded multi-producer, single-consumer queue. Publish never
// blocks and never drops while the bus is open; events from one producer are
// delivered in the order that producer published them.
//
// The bus also supervises the goroutines that publish into it: producers
// started with Go share the bus context, have panics recovered, and are
// waited for by Close.
type Bus struct {
	mu     sync.Mutex
	queue  []Event
	closed bool

	notify chan struct{} // wakes the pump, capacity 1
	out    chan Event
	done   chan struct{} // closed by Close, aborts a pending send

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once

	log zerolog.Logger
}

// New creates a bus and starts its delivery goroutine.
func New(log zerolog.Logger) *Bus {
	ctx, cancel := context.WithCancel(context.Background())
	b := &Bus{
		notify: make(chan struct{}, 1),
		out:    make(chan Event),
		done:   make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
		log:    log.With().Str("component", "bus").Logger(),
	}
	go b.pump()
	return b
}

// Events returns the channel the single consumer reads from. It is closed
// after Close once the pump stops.
func (b *Bus) Events() <-chan Event {
	return b.out
}

// Context is cancelled when the bus is closed. Producers derive their
// request contexts from it.
func (b *Bus) Context() context.Context {
	return b.ctx
}

// Publish enqueues ev. It reports false if the bus is already closed, in
// which case the event is discarded.
func (b *Bus) Publish(ev Event) bool {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return false
	}
	b.queue = append(b.queue, ev)
	b.mu.Unlock()

	select {
	case b.notify <- struct{}{}:
	default:
	}
	return true
}

// Len returns the number of events waiting for the consumer.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue)
}

// Go runs fn as a supervised producer. A panic in fn is recovered and logged
// so one failing task never takes the process down.
func (b *Bus) Go(name string, fn func(ctx context.Context)) {
	if b.ctx.Err() != nil {
		b.log.Debug().Str("producer", name).Msg("bus closing, producer not started")
		return
	}
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				b.log.Error().
					Str("producer", name).
					Str("panic", fmt.Sprint(r)).
					Bytes("stack", debug.Stack()).
					Msg("producer panicked")
			}
		}()
		fn(b.ctx)
	}()
}

// Close cancels every producer, waits for them to return and stops delivery.
// Events not yet received by the consumer are discarded. Close is idempotent.
func (b *Bus) Close() {
	b.once.Do(func() {
		b.cancel()
		b.wg.Wait()

		b.mu.Lock()
		b.closed = true
		b.queue = nil
		b.mu.Unlock()

		close(b.done)
		select {
		case b.notify <- struct{}{}:
		default:
		}
	})
}

// pump moves events from the queue to the out channel one at a time.
func (b *Bus) pump() {
	defer close(b.out)
	for {
		b.mu.Lock()
		for len(b.queue) == 0 {
			if b.closed {
				b.mu.Unlock()
				return
			}
			b.mu.Unlock()
			select {
			case <-b.notify:
			case <-b.done:
			}
			b.mu.Lock()
		}
		ev := b.queue[0]
		b.queue[0] = nil
		b.queue = b.queue[1:]
		b.mu.Unlock()

		select {
		case b.out <- ev:
		case <-b.done:
			return
		}
	}
}
