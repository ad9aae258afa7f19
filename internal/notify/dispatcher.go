package notify

import (
	"sync"

	"go.uber.org/zap"
)

// Observer receives lifecycle events and free-text broadcasts. Delivery
// is best-effort; a returned error is logged and the next observer still
// gets the message.
type Observer interface {
	AppointmentChanged(ev Event) error
	Broadcast(message string) error
}

type task struct {
	ev        *Event
	broadcast string
}

// Dispatcher fans lifecycle events out to registered observers in
// registration order. Delivery happens on a worker goroutine behind a
// buffered queue so the request path never waits on an observer.
type Dispatcher struct {
	mu        sync.RWMutex
	observers []Observer

	queue  chan task
	done   chan struct{}
	logger *zap.Logger
}

func NewDispatcher(logger *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		queue:  make(chan task, 100),
		done:   make(chan struct{}),
		logger: logger,
	}

	go d.worker()
	return d
}

func (d *Dispatcher) Register(o Observer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers = append(d.observers, o)
}

func (d *Dispatcher) DispatchAppointmentEvent(ev Event) {
	d.enqueue(task{ev: &ev})
}

func (d *Dispatcher) Broadcast(message string) {
	d.enqueue(task{broadcast: message})
}

func (d *Dispatcher) enqueue(t task) {
	select {
	case d.queue <- t:
	default:
		// queue full: drop rather than stall a lifecycle transition
		d.logger.Warn("notification queue full, dropping")
	}
}

// Close drains the queue and stops the worker. Only for shutdown.
func (d *Dispatcher) Close() {
	close(d.queue)
	<-d.done
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for t := range d.queue {
		d.mu.RLock()
		observers := make([]Observer, len(d.observers))
		copy(observers, d.observers)
		d.mu.RUnlock()

		for _, o := range observers {
			d.deliver(o, t)
		}
	}
}

func (d *Dispatcher) deliver(o Observer, t task) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("observer panicked", zap.Any("panic", r))
		}
	}()

	var err error
	if t.ev != nil {
		err = o.AppointmentChanged(*t.ev)
	} else {
		err = o.Broadcast(t.broadcast)
	}
	if err != nil {
		d.logger.Warn("observer delivery failed", zap.Error(err))
	}
}
