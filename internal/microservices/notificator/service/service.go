package service

import (
	"context"

	"restaurant-pos/internal/common/logger"
)

type Service struct {
	Hub        *Hub
	Dispatcher *Dispatcher
	Bus        Bus
}

// New wires hub, bus and dispatcher. newBus receives the hub so a broker
// consumer can feed it.
func New(lg *logger.Logger, clientBuffer, queueSize int, newBus func(*Hub) Bus) *Service {
	hub := NewHub(clientBuffer, lg)
	bus := newBus(hub)
	return &Service{
		Hub:        hub,
		Dispatcher: NewDispatcher(bus, queueSize, lg),
		Bus:        bus,
	}
}

// Run blocks until ctx is done or the bus consumer fails.
func (s *Service) Run(ctx context.Context) error {
	errCh := make(chan error, 2)
	go func() { errCh <- s.Bus.Run(ctx) }()
	go func() { errCh <- s.Dispatcher.Run(ctx) }()

	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			return err
		}
	}
	return nil
}
