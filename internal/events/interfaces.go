package events

import "context"

// Publisher exports lifecycle events to an external consumer.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	HealthCheck(ctx context.Context) error
	Close() error
}

// Sink accepts events without blocking the caller.
type Sink interface {
	Enqueue(event Event) bool
}

// NullPublisher - заглушка для работы без Redis (Null Object Pattern)
type NullPublisher struct{}

func NewNullPublisher() *NullPublisher {
	return &NullPublisher{}
}

func (n *NullPublisher) Publish(ctx context.Context, event Event) error {
	return nil
}

func (n *NullPublisher) HealthCheck(ctx context.Context) error {
	return nil
}

func (n *NullPublisher) Close() error {
	return nil
}

// NullSink drops every event.
type NullSink struct{}

func (NullSink) Enqueue(Event) bool { return false }
