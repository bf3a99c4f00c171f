package websocket

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	ws "github.com/gorilla/websocket"

	"github.com/cosmosviz/sensor/pkg/streaming"
)

const (
	outboxSize = 4_096
	ackChSize  = 8
	maxRedial  = 10
	maxBackoff = 30 * time.Second
	writeWait  = 10 * time.Second
	ackTimeout = 10 * time.Second
)

// outbound is one queued message. Telemetry (ticks and frame notices) is
// droppable: a viewer that missed a tick just renders the next one.
// Session boundaries are not droppable and survive a reconnect.
type outbound struct {
	data      []byte
	telemetry bool
}

// connection owns a WebSocket link to the viewer. A single manager
// goroutine holds the *ws.Conn; everyone else talks to it through the
// outbox and ack channels.
type connection struct {
	wsURL  string
	secret string

	outbox chan outbound
	acks   chan streaming.Ack
	done   chan struct{}
	stop   sync.Once

	mu          sync.Mutex
	sessionOpen []byte // replayed after a reconnect

	logger *slog.Logger
}

func newConnection(logger *slog.Logger) *connection {
	return &connection{
		outbox: make(chan outbound, outboxSize),
		acks:   make(chan streaming.Ack, ackChSize),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// dial establishes the first connection and starts the manager goroutine,
// which owns the conn from then on.
func (c *connection) dial(rawURL, secret string) error {
	c.wsURL = rawURL
	c.secret = secret

	conn, err := c.dialOnce()
	if err != nil {
		return err
	}
	go c.run(conn)
	return nil
}

// dialOnce performs a single WebSocket dial with the secret query param.
func (c *connection) dialOnce() (*ws.Conn, error) {
	u, err := url.Parse(c.wsURL)
	if err != nil {
		return nil, fmt.Errorf("invalid websocket URL: %w", err)
	}
	q := u.Query()
	q.Set("secret", c.secret)
	u.RawQuery = q.Encode()

	conn, _, err := ws.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("websocket dial failed: %w", err)
	}
	return conn, nil
}

// run is the connection manager. It drains the outbox, reacts to read
// failures and redials as needed until close.
func (c *connection) run(conn *ws.Conn) {
	readErr := make(chan error, 1)
	go c.readAcks(conn, readErr)

	for {
		select {
		case <-c.done:
			_ = conn.WriteMessage(ws.CloseMessage,
				ws.FormatCloseMessage(ws.CloseNormalClosure, ""))
			_ = conn.Close()
			return

		case err := <-readErr:
			c.logger.Warn("websocket read failed", "error", err)
			if conn = c.redial(conn); conn == nil {
				return
			}
			readErr = make(chan error, 1)
			go c.readAcks(conn, readErr)

		case m := <-c.outbox:
			err := c.write(conn, m.data)
			if err == nil {
				continue
			}
			c.logger.Warn("websocket write failed", "error", err)
			if conn = c.redial(conn); conn == nil {
				return
			}
			readErr = make(chan error, 1)
			go c.readAcks(conn, readErr)

			// Session boundaries go out again on the fresh connection,
			// unless the redial already replayed this exact envelope.
			if !m.telemetry && !bytes.Equal(m.data, c.currentSessionOpen()) {
				if err := c.write(conn, m.data); err != nil {
					c.logger.Warn("websocket resend failed", "error", err)
				}
			}
		}
	}
}

// readAcks consumes server messages on conn, forwarding acks. The first
// read error goes to errCh and ends the loop.
func (c *connection) readAcks(conn *ws.Conn, errCh chan<- error) {
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			select {
			case errCh <- err:
			case <-c.done:
			}
			return
		}

		var ack streaming.Ack
		if err := json.Unmarshal(msg, &ack); err != nil || ack.Type != "ack" {
			c.logger.Debug("ignoring non-ack message", "raw", string(msg))
			continue
		}

		select {
		case c.acks <- ack:
		default:
			c.logger.Debug("ack channel full, dropping", "for", ack.For)
		}
	}
}

// redial closes the broken connection, throws away queued telemetry and
// dials again with exponential backoff. On success the cached
// session-open envelope is replayed so the server can reattach the
// stream. Returns nil when shutting down or out of attempts.
func (c *connection) redial(old *ws.Conn) *ws.Conn {
	_ = old.Close()
	c.dropQueuedTelemetry()

	backoff := time.Second
	for attempt := 1; attempt <= maxRedial; attempt++ {
		select {
		case <-c.done:
			return nil
		case <-time.After(backoff):
		}

		c.logger.Info("redialing websocket", "attempt", attempt)
		conn, err := c.dialOnce()
		if err != nil {
			c.logger.Warn("websocket redial failed", "attempt", attempt, "error", err)
			if backoff *= 2; backoff > maxBackoff {
				backoff = maxBackoff
			}
			continue
		}

		if open := c.currentSessionOpen(); open != nil {
			if err := c.write(conn, open); err != nil {
				c.logger.Warn("session replay failed", "error", err)
				_ = conn.Close()
				continue
			}
		}

		c.logger.Info("websocket reconnected", "attempt", attempt)
		return conn
	}

	c.logger.Error("giving up on websocket", "attempts", maxRedial)
	return nil
}

// dropQueuedTelemetry empties the outbox of ticks and frame notices.
// After a connection loss they describe moments the viewer has already
// skipped past; only session boundaries are kept.
func (c *connection) dropQueuedTelemetry() {
	var keep []outbound
	for {
		select {
		case m := <-c.outbox:
			if !m.telemetry {
				keep = append(keep, m)
			}
		default:
			for _, m := range keep {
				select {
				case c.outbox <- m:
				default:
					c.logger.Warn("outbox refilled during redial, dropping kept message")
				}
			}
			return
		}
	}
}

func (c *connection) write(conn *ws.Conn, data []byte) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteMessage(ws.TextMessage, data)
}

// send queues a droppable telemetry message.
func (c *connection) send(data []byte) {
	c.enqueue(outbound{data: data, telemetry: true})
}

func (c *connection) enqueue(m outbound) {
	select {
	case c.outbox <- m:
	case <-c.done:
	default:
		c.logger.Warn("outbox full, dropping message")
	}
}

// sendAndWait queues data as a session-boundary message and blocks until
// the server acks it or the timeout expires.
func (c *connection) sendAndWait(data []byte, ackFor string, timeout time.Duration) error {
	c.enqueue(outbound{data: data})

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case ack := <-c.acks:
			if ack.For == ackFor {
				return nil
			}
			// Not our ack, keep waiting.
		case <-timer.C:
			return fmt.Errorf("no ack for %q within %s", ackFor, timeout)
		case <-c.done:
			return fmt.Errorf("connection closed before ack for %q", ackFor)
		}
	}
}

// rememberSessionOpen caches the start_session envelope for replay when
// the connection drops mid-recording. Pass nil once the session ends.
func (c *connection) rememberSessionOpen(data []byte) {
	c.mu.Lock()
	c.sessionOpen = data
	c.mu.Unlock()
}

func (c *connection) currentSessionOpen() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionOpen
}

// close stops the manager goroutine, which sends the close frame on its
// way out.
func (c *connection) close() error {
	c.stop.Do(func() { close(c.done) })
	return nil
}
