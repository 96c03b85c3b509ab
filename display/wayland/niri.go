// Package wayland implements a partial display.Connector against a niri
// compositor's IPC socket, speaking its newline-delimited JSON request
// and event-stream protocol.
//
// Coverage is partial by design: niri owns window placement and layout
// itself, so none of the core's LayoutAction application applies here;
// only window lifecycle and focus tracking are bridged into event.Event.
package wayland

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/patrislav/marwind/display"
	"github.com/patrislav/marwind/event"
	"github.com/patrislav/marwind/window"
)

// ErrNoSocket is returned by Connect when NIRI_SOCKET isn't set in the
// environment.
var ErrNoSocket = errors.New("wayland: NIRI_SOCKET is not set")

// Conn is a display.Connector backed by a niri compositor's IPC socket.
type Conn struct {
	log logrus.FieldLogger

	eventConn net.Conn
	ctlConn   net.Conn

	mu        sync.Mutex
	windows   map[uint64]*niriWindow
	workspace map[uint64]*niriWorkspace

	atomsByName map[string]uint32
	atomsByID   map[uint32]string
	props       map[window.ID]map[display.Atom]display.Property

	events chan event.Event
	done   chan struct{}
}

type niriWindow struct {
	id        window.ID
	appID     string
	isFocused bool
}

type niriWorkspace struct {
	id       uint64
	output   string
	isActive bool
}

// Connect dials NIRI_SOCKET, starts listening for compositor events on a
// dedicated event socket (a second socket is required for actions, since
// the event-stream socket can't also issue requests), and returns a
// ready-to-poll Conn.
func Connect(log logrus.FieldLogger) (*Conn, error) {
	socket := os.Getenv("NIRI_SOCKET")
	if socket == "" {
		return nil, ErrNoSocket
	}

	eventConn, err := net.Dial("unix", socket)
	if err != nil {
		return nil, fmt.Errorf("wayland: dial event socket: %w", err)
	}
	ctlConn, err := net.Dial("unix", socket)
	if err != nil {
		eventConn.Close()
		return nil, fmt.Errorf("wayland: dial control socket: %w", err)
	}

	c := &Conn{
		log:       log,
		eventConn: eventConn,
		ctlConn:   ctlConn,
		windows:   make(map[uint64]*niriWindow),
		workspace: make(map[uint64]*niriWorkspace),
		events:    make(chan event.Event, 64),
		done:      make(chan struct{}),
	}

	if _, err := eventConn.Write([]byte("\"EventStream\"\n")); err != nil {
		c.Close()
		return nil, fmt.Errorf("wayland: request event stream: %w", err)
	}
	go c.listen()

	return c, nil
}

func (c *Conn) listen() {
	r := bufio.NewReader(c.eventConn)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				c.log.WithError(err).Warn("wayland: event socket read error")
			}
			close(c.done)
			return
		}
		if len(line) <= 1 {
			continue
		}
		line = line[:len(line)-1]

		var raw rawEvent
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			c.log.WithError(err).Warn("wayland: malformed event")
			continue
		}
		if raw.Ok != nil {
			continue
		}
		ev, ok := c.apply(raw)
		if !ok {
			continue
		}
		select {
		case c.events <- ev:
		default:
			c.log.Warn("wayland: event queue full, dropping event")
		}
	}
}

// PollNextEvent drains one translated event without blocking. A non-nil
// error means the compositor connection is gone (spec's
// ConnectorDisconnect).
func (c *Conn) PollNextEvent() (event.Event, bool, error) {
	select {
	case ev := <-c.events:
		return ev, true, nil
	default:
	}
	select {
	case <-c.done:
		return event.Event{}, false, fmt.Errorf("wayland: compositor connection closed")
	default:
	}
	return event.Event{}, false, nil
}

// Close tears down both sockets.
func (c *Conn) Close() error {
	c.eventConn.Close()
	c.ctlConn.Close()
	return nil
}

var _ display.Connector = (*Conn)(nil)
