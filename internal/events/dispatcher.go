package events

import (
	"context"
	"log"
	"sync"
	"time"
)

var _ Sink = (*Dispatcher)(nil)

// Dispatcher hands events to a Publisher from a pool of workers so the
// request path never waits on the network.
type Dispatcher struct {
	publisher Publisher
	queue     chan Event
	timeout   time.Duration

	mu      sync.RWMutex
	closed  bool
	started bool
	wg      sync.WaitGroup
}

func NewDispatcher(publisher Publisher, bufferSize int, timeout time.Duration) *Dispatcher {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Dispatcher{
		publisher: publisher,
		queue:     make(chan Event, bufferSize),
		timeout:   timeout,
	}
}

// Start launches the workers. Calling it twice is a no-op.
func (d *Dispatcher) Start(workers int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.started || d.closed {
		return
	}
	d.started = true

	if workers <= 0 {
		workers = 1
	}
	log.Printf("Starting %d event worker(s)...", workers)
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
}

// Enqueue reports false when the event was dropped: queue full or dispatcher closed.
func (d *Dispatcher) Enqueue(event Event) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return false
	}

	select {
	case d.queue <- event:
		return true
	default:
		log.Printf("Event queue full, dropping %s for %s", event.Type, event.Code)
		return false
	}
}

// Shutdown stops accepting events, drains the queue and waits for the
// workers or for ctx, whichever comes first.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	started := d.started
	d.mu.Unlock()

	if !started {
		return nil
	}

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for event := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		if err := d.publisher.Publish(ctx, event); err != nil {
			log.Printf("Failed to publish %s for %s: %v", event.Type, event.Code, err)
		}
		cancel()
	}
}
