package service

import (
	"context"
	"log/slog"
	"time"
)

// NotificationKind selects the template a gateway renders.
type NotificationKind string

const (
	NotificationVerification NotificationKind = "verification"
	NotificationApproval     NotificationKind = "approval"
	NotificationDecline      NotificationKind = "decline"
)

// Notification is a single outbound message to an applicant.
type Notification struct {
	Email string
	Kind  NotificationKind
	Data  map[string]string
}

// NotificationGateway delivers notifications. Implementations talk to a
// mail provider, webhook, or message broker; failures are logged by the
// dispatcher and never surfaced to lifecycle callers.
type NotificationGateway interface {
	Send(ctx context.Context, n Notification) error
}

// LogGateway is the default gateway: it logs the notification instead of
// delivering it. Useful for development and as a stand-in until a real
// provider is wired.
type LogGateway struct {
	Logger *slog.Logger
}

func (g *LogGateway) Send(_ context.Context, n Notification) error {
	logger := g.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("notification",
		slog.String("email", n.Email),
		slog.String("kind", string(n.Kind)),
		slog.Any("data", n.Data),
	)
	return nil
}

const (
	defaultNotifyQueueSize   = 64
	defaultNotifySendTimeout = 10 * time.Second
)

// Dispatcher decouples notification delivery from lifecycle transitions.
// Enqueue never blocks: when the queue is full the notification is dropped
// and a warning is logged. Delivery failures are logged and otherwise
// swallowed, so a flaky provider cannot fail or roll back a transition.
type Dispatcher struct {
	gateway     NotificationGateway
	logger      *slog.Logger
	sendTimeout time.Duration

	queue  chan Notification
	stopCh chan struct{}
	doneCh chan struct{}
}

func NewDispatcher(gateway NotificationGateway, logger *slog.Logger, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = defaultNotifyQueueSize
	}
	return &Dispatcher{
		gateway:     gateway,
		logger:      logger,
		sendTimeout: defaultNotifySendTimeout,
		queue:       make(chan Notification, queueSize),
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}
}

// Start launches the delivery worker.
func (d *Dispatcher) Start() {
	go d.run()
}

// Stop signals the worker, drains anything already queued, and waits for
// the worker to exit.
func (d *Dispatcher) Stop() {
	close(d.stopCh)
	<-d.doneCh
}

// Enqueue hands a notification to the delivery worker without blocking.
func (d *Dispatcher) Enqueue(n Notification) {
	select {
	case d.queue <- n:
	default:
		d.logger.Warn("notification queue full, dropping",
			slog.String("email", n.Email),
			slog.String("kind", string(n.Kind)),
		)
	}
}

func (d *Dispatcher) run() {
	defer close(d.doneCh)

	for {
		select {
		case n := <-d.queue:
			d.deliver(n)
		case <-d.stopCh:
			for {
				select {
				case n := <-d.queue:
					d.deliver(n)
				default:
					return
				}
			}
		}
	}
}

func (d *Dispatcher) deliver(n Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
	defer cancel()

	if err := d.gateway.Send(ctx, n); err != nil {
		d.logger.Error("notification delivery failed",
			slog.String("email", n.Email),
			slog.String("kind", string(n.Kind)),
			slog.Any("error", err),
		)
	}
}
