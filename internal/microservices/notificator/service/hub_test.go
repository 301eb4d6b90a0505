package service

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/domain"
)

func testLogger() *logger.Logger { return logger.NewWithWriter("test", &bytes.Buffer{}) }

func drain(c *Client) []Message {
	var out []Message
	for {
		select {
		case m := <-c.Messages():
			out = append(out, m)
		default:
			return out
		}
	}
}

func TestHub_TargetedDeliveryReachesOnlyOwner(t *testing.T) {
	hub := NewHub(8, testLogger())
	waiterA := hub.Join(1, domain.RoleWaiter)
	waiterA2 := hub.Join(1, domain.RoleWaiter) // second device of the same waiter
	waiterB := hub.Join(2, domain.RoleWaiter)
	cook := hub.Join(3, domain.RoleKitchen)

	hub.Deliver(Message{Event: domain.EventItemReady, Room: domain.StaffRoom(1)})

	if got := drain(waiterA); len(got) != 1 || got[0].Event != domain.EventItemReady {
		t.Errorf("owner should receive item_ready, got %v", got)
	}
	if got := drain(waiterA2); len(got) != 1 {
		t.Errorf("owner's second session should receive item_ready, got %v", got)
	}
	if got := drain(waiterB); len(got) != 0 {
		t.Errorf("other waiter must not receive targeted event, got %v", got)
	}
	if got := drain(cook); len(got) != 0 {
		t.Errorf("kitchen must not receive targeted event, got %v", got)
	}
}

func TestHub_BroadcastReachesEveryone(t *testing.T) {
	hub := NewHub(8, testLogger())
	clients := []*Client{hub.Join(1, domain.RoleWaiter), hub.Join(2, domain.RoleKitchen), hub.Join(3, domain.RoleAdmin)}

	hub.Deliver(Message{Event: domain.EventTablesChanged})

	for _, c := range clients {
		if got := drain(c); len(got) != 1 {
			t.Errorf("staff %d: expected 1 message, got %d", c.StaffID, len(got))
		}
	}
}

func TestHub_SlowClientDoesNotBlock(t *testing.T) {
	hub := NewHub(1, testLogger())
	slow := hub.Join(1, domain.RoleWaiter)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Deliver(Message{Event: domain.EventBoardChanged})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Deliver blocked on a full client buffer")
	}
	if got := drain(slow); len(got) != 1 {
		t.Errorf("expected buffer of 1 to hold 1 message, got %d", len(got))
	}
}

func TestHub_LeaveClosesAndIsIdempotent(t *testing.T) {
	hub := NewHub(4, testLogger())
	c := hub.Join(1, domain.RoleWaiter)
	hub.Leave(c)
	hub.Leave(c)

	if _, ok := <-c.Messages(); ok {
		t.Error("expected closed channel after Leave")
	}
	if hub.Count() != 0 {
		t.Errorf("expected no clients, got %d", hub.Count())
	}
	// delivering after everyone left must not panic
	hub.Deliver(Message{Event: domain.EventItemReady, Room: domain.StaffRoom(1)})
}

func TestHub_CloseAllEndsEverySession(t *testing.T) {
	hub := NewHub(4, testLogger())
	a := hub.Join(1, domain.RoleWaiter)
	b := hub.Join(2, domain.RoleKitchen)

	hub.CloseAll()

	for _, c := range []*Client{a, b} {
		if _, ok := <-c.Messages(); ok {
			t.Errorf("staff %d: expected closed channel", c.StaffID)
		}
	}
	if hub.Count() != 0 {
		t.Errorf("expected no clients, got %d", hub.Count())
	}
	// стрим после закрытия всё равно зовёт Leave
	hub.Leave(a)
	hub.Deliver(Message{Event: domain.EventItemReady})
}

func TestHub_ConcurrentJoinLeaveDeliver(t *testing.T) {
	hub := NewHub(4, testLogger())
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(id int64) {
			defer wg.Done()
			c := hub.Join(id, domain.RoleWaiter)
			hub.Leave(c)
		}(int64(i%5 + 1))
		go func() {
			defer wg.Done()
			hub.Deliver(Message{Event: domain.EventOrderChanged})
		}()
	}
	wg.Wait()
	if hub.Count() != 0 {
		t.Errorf("expected empty hub, got %d", hub.Count())
	}
}

type recordingBus struct {
	mu   sync.Mutex
	got  []Message
	err  error
	gate chan struct{}
}

func (b *recordingBus) Publish(ctx context.Context, m Message) error {
	if b.gate != nil {
		<-b.gate
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.got = append(b.got, m)
	return b.err
}

func (b *recordingBus) Run(ctx context.Context) error { <-ctx.Done(); return nil }

func (b *recordingBus) messages() []Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Message(nil), b.got...)
}

func TestDispatcher_EncodesAndPublishes(t *testing.T) {
	bus := &recordingBus{}
	d := NewDispatcher(bus, 16, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() { _ = d.Run(ctx); close(done) }()

	d.Notify(context.Background(), domain.PlanTransition(domain.Transition{
		LineItemID: 5, TableID: 1, TableLabel: "T1", ProductName: "Cazuela", OwnerStaffID: 9, To: domain.ItemReady,
	})...)

	deadline := time.After(2 * time.Second)
	for len(bus.messages()) < 3 {
		select {
		case <-deadline:
			t.Fatalf("expected 3 published messages, got %d", len(bus.messages()))
		case <-time.After(10 * time.Millisecond):
		}
	}
	cancel()
	<-done

	got := bus.messages()
	if got[0].Event != domain.EventItemReady || got[0].Room != "staff:9" {
		t.Errorf("unexpected first message %+v", got[0])
	}
	if string(got[0].Data) != `{"lineItemId":5,"tableId":1,"tableLabel":"T1","product":"Cazuela"}` {
		t.Errorf("unexpected payload %s", got[0].Data)
	}
	if got[1].Room != "" || got[2].Event != domain.EventOrderChanged {
		t.Errorf("unexpected broadcast messages %+v", got[1:])
	}
	if got[0].ID == "" || got[0].ID == got[1].ID {
		t.Error("every message needs its own id")
	}
}

func TestDispatcher_NotifyNeverBlocks(t *testing.T) {
	bus := &recordingBus{gate: make(chan struct{})} // publisher stuck
	d := NewDispatcher(bus, 2, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = d.Run(ctx) }()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			d.Notify(context.Background(), domain.TablesChanged())
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Notify blocked on a stuck bus")
	}
	close(bus.gate)
}

func TestDispatcher_PublishErrorIsSwallowed(t *testing.T) {
	bus := &recordingBus{err: errors.New("broker down")}
	d := NewDispatcher(bus, 4, testLogger())
	d.Notify(context.Background(), domain.TablesChanged())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := d.Run(ctx); err != nil {
		t.Fatalf("publish failures must not surface: %v", err)
	}
	if len(bus.messages()) != 1 {
		t.Errorf("expected drain on shutdown to attempt 1 publish, got %d", len(bus.messages()))
	}
}

func TestLocalBus_FeedsHub(t *testing.T) {
	hub := NewHub(4, testLogger())
	c := hub.Join(1, domain.RoleWaiter)
	if err := NewLocalBus(hub).Publish(context.Background(), Message{Event: domain.EventTablesChanged}); err != nil {
		t.Fatal(err)
	}
	if got := drain(c); len(got) != 1 {
		t.Errorf("expected 1 message, got %d", len(got))
	}
}
