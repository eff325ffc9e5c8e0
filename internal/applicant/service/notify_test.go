package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recordingGateway struct {
	mu   sync.Mutex
	sent []Notification
	err  error
}

func (g *recordingGateway) Send(_ context.Context, n Notification) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return g.err
	}
	g.sent = append(g.sent, n)
	return nil
}

func (g *recordingGateway) count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.sent)
}

func TestDispatcherDeliversQueuedNotifications(t *testing.T) {
	t.Parallel()

	gw := &recordingGateway{}
	d := NewDispatcher(gw, discardLogger(), 8)
	d.Start()

	for i := 0; i < 5; i++ {
		d.Enqueue(Notification{Email: "someone@example.com", Kind: NotificationVerification})
	}

	// Stop drains the queue before returning.
	d.Stop()
	require.Equal(t, 5, gw.count())
}

func TestDispatcherDropsWhenQueueFull(t *testing.T) {
	t.Parallel()

	gw := &recordingGateway{}
	d := NewDispatcher(gw, discardLogger(), 2)
	// Worker not started: the queue fills and overflow is dropped.

	for i := 0; i < 10; i++ {
		d.Enqueue(Notification{Email: "someone@example.com", Kind: NotificationApproval})
	}

	d.Start()
	d.Stop()
	require.Equal(t, 2, gw.count())
}

func TestDispatcherSwallowsDeliveryFailures(t *testing.T) {
	t.Parallel()

	gw := &recordingGateway{err: errors.New("smtp down")}
	d := NewDispatcher(gw, discardLogger(), 8)
	d.Start()

	d.Enqueue(Notification{Email: "someone@example.com", Kind: NotificationDecline})

	// Must not panic or block; failure is logged only.
	done := make(chan struct{})
	go func() {
		d.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("dispatcher did not stop after a delivery failure")
	}
	require.Equal(t, 0, gw.count())
}
