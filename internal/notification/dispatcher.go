package notification

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Dispatcher renders and sends booking emails on a small worker pool.
// Failures are logged and dropped; they never reach the booking flow.
type Dispatcher struct {
	renderer *Renderer
	sender   Sender
	from     string
	workers  int
	log      *zap.Logger

	mu     sync.RWMutex
	closed bool
	jobs   chan Job
	wg     sync.WaitGroup
}

func NewDispatcher(renderer *Renderer, sender Sender, from string, workers, queueSize int, log *zap.Logger) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}

	return &Dispatcher{
		renderer: renderer,
		sender:   sender,
		from:     from,
		workers:  workers,
		log:      log.With(zap.String("component", "notification")),
		jobs:     make(chan Job, queueSize),
	}
}

func (d *Dispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	d.log.Info("Notification dispatcher started", zap.Int("workers", d.workers))
}

// Enqueue never blocks. It reports false when the job was dropped because
// the queue is full or the dispatcher is shutting down.
func (d *Dispatcher) Enqueue(job Job) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn("Dispatcher closed, dropping notification",
			zap.String("booking_id", job.Booking.ID.String()))
		return false
	}

	select {
	case d.jobs <- job:
		return true
	default:
		d.log.Warn("Notification queue full, dropping notification",
			zap.String("booking_id", job.Booking.ID.String()),
			zap.String("action", string(job.Action)))
		return false
	}
}

// Shutdown stops accepting jobs and waits for queued ones until ctx ends.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.jobs)
	}
	d.mu.Unlock()

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
	for job := range d.jobs {
		d.deliver(job)
	}
}

func (d *Dispatcher) deliver(job Job) {
	defer func() {
		if rec := recover(); rec != nil {
			d.log.Error("Panic while sending notification",
				zap.Any("panic", rec),
				zap.String("booking_id", job.Booking.ID.String()))
		}
	}()

	bookingID := zap.String("booking_id", job.Booking.ID.String())

	if job.Recipient() == "" {
		d.log.Info("Skipping booking email, no recipient", bookingID)
		return
	}
	if d.from == "" {
		d.log.Warn("Skipping booking email, sender address not configured", bookingID)
		return
	}

	msg, err := d.renderer.Render(job)
	if err != nil {
		d.log.Error("Failed to render booking email", zap.Error(err), bookingID)
		return
	}

	if err := d.sender.Send(context.Background(), msg); err != nil {
		d.log.Error("Failed to send booking email",
			zap.Error(err),
			bookingID,
			zap.String("action", string(job.Action)))
		return
	}

	d.log.Info("Booking email sent",
		bookingID,
		zap.String("to", msg.To),
		zap.String("action", string(job.Action)))
}
