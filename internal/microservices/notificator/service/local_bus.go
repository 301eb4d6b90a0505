package service

import "context"

// LocalBus delivers straight to the hub. Used when no broker is configured,
// which limits realtime fan-out to a single API instance.
type LocalBus struct {
	hub *Hub
}

func NewLocalBus(hub *Hub) *LocalBus { return &LocalBus{hub: hub} }

func (b *LocalBus) Publish(_ context.Context, m Message) error {
	b.hub.Deliver(m)
	return nil
}

func (b *LocalBus) Run(ctx context.Context) error {
	<-ctx.Done()
	return nil
}
