package control

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Event is one command received on the sensor control channel.
type Event struct {
	Command   string
	Args      []string
	Timestamp time.Time
}

// HandlerFunc executes a command and returns its result.
type HandlerFunc func(Event) (any, error)

// Logger is the logging surface the dispatcher needs.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Option configures a single registered command.
type Option func(*regConfig)

type regConfig struct {
	conflated bool
	logged    bool
}

// Conflated runs the handler on its own goroutine behind a one-slot
// mailbox: a newly dispatched event replaces one still waiting, so only
// the latest value is ever applied. Meant for high-rate commands like
// pose updates where intermediate values carry no information.
func Conflated() Option {
	return func(c *regConfig) { c.conflated = true }
}

// Logged wraps the handler with debug and error logging.
func Logged() Option {
	return func(c *regConfig) { c.logged = true }
}

// Dispatcher routes control-channel commands to their handlers.
type Dispatcher struct {
	logger Logger

	mu        sync.RWMutex
	handlers  map[string]HandlerFunc
	mailboxes map[string]*mailbox

	pending    metric.Int64ObservableGauge
	processed  metric.Int64Counter
	superseded metric.Int64Counter
}

// New creates a dispatcher. Metrics go to the global OTel meter, which is
// a no-op unless an exporter is configured.
func New(logger Logger) (*Dispatcher, error) {
	d := &Dispatcher{
		logger:    logger,
		handlers:  make(map[string]HandlerFunc),
		mailboxes: make(map[string]*mailbox),
	}

	m := meter()

	var err error
	if d.pending, err = m.Int64ObservableGauge("control.commands.pending",
		metric.WithDescription("Commands waiting in a mailbox")); err != nil {
		return nil, fmt.Errorf("creating pending gauge: %w", err)
	}
	if _, err = m.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		d.mu.RLock()
		defer d.mu.RUnlock()
		for cmd, mb := range d.mailboxes {
			o.ObserveInt64(d.pending, int64(len(mb.slot)),
				metric.WithAttributes(attribute.String("command", cmd)))
		}
		return nil
	}, d.pending); err != nil {
		return nil, fmt.Errorf("registering pending callback: %w", err)
	}
	if d.processed, err = m.Int64Counter("control.commands.processed",
		metric.WithDescription("Commands handled to completion")); err != nil {
		return nil, fmt.Errorf("creating processed counter: %w", err)
	}
	if d.superseded, err = m.Int64Counter("control.commands.superseded",
		metric.WithDescription("Mailbox commands replaced by a newer one before running")); err != nil {
		return nil, fmt.Errorf("creating superseded counter: %w", err)
	}

	return d, nil
}

// Register installs the handler for a command. With both options set the
// logging wraps the handler itself, so a conflated command is logged when
// it actually runs, not when it is accepted.
func (d *Dispatcher) Register(command string, h HandlerFunc, opts ...Option) {
	var cfg regConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.logged {
		h = d.logged(command, h)
	}
	if cfg.conflated {
		h = d.conflate(command, h)
	}

	d.mu.Lock()
	d.handlers[command] = h
	d.mu.Unlock()
}

// Dispatch runs the handler registered for the event's command.
func (d *Dispatcher) Dispatch(e Event) (any, error) {
	d.mu.RLock()
	h, ok := d.handlers[e.Command]
	d.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown command: %s", e.Command)
	}
	return h(e)
}

// HasHandler reports whether the command is registered.
func (d *Dispatcher) HasHandler(command string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.handlers[command]
	return ok
}

// mailbox is a one-slot latest-wins queue.
type mailbox struct {
	slot chan Event
}

// put stores e, displacing an event still waiting in the slot. With a
// single consumer draining the slot this loop terminates after at most
// one displacement.
func (m *mailbox) put(e Event) (displaced bool) {
	for {
		select {
		case m.slot <- e:
			return displaced
		default:
		}
		select {
		case <-m.slot:
			displaced = true
		default:
		}
	}
}

func (d *Dispatcher) conflate(command string, h HandlerFunc) HandlerFunc {
	mb := &mailbox{slot: make(chan Event, 1)}

	d.mu.Lock()
	d.mailboxes[command] = mb
	d.mu.Unlock()

	attr := metric.WithAttributes(attribute.String("command", command))

	go func() {
		for e := range mb.slot {
			if _, err := h(e); err != nil {
				d.logger.Error("command failed", "command", command, "error", err)
			}
			d.processed.Add(context.Background(), 1, attr)
		}
	}()

	return func(e Event) (any, error) {
		if mb.put(e) {
			d.superseded.Add(context.Background(), 1, attr)
		}
		return "accepted", nil
	}
}

func (d *Dispatcher) logged(command string, h HandlerFunc) HandlerFunc {
	return func(e Event) (any, error) {
		start := time.Now()
		d.logger.Debug("handling command", "command", command, "args", len(e.Args))

		result, err := h(e)
		if err != nil {
			d.logger.Error("command failed", "command", command, "duration", time.Since(start), "error", err)
		} else {
			d.logger.Debug("command complete", "command", command, "duration", time.Since(start))
		}

		return result, err
	}
}
