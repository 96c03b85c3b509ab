// Package dispatch applies the EventAction sequence event.Translate
// produces: one handler per ActionKind, driving desktop.Desktop,
// workspace.Workspace and display.Connector, including the mouse-drag
// handlers that track an in-progress move or resize.
package dispatch

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/patrislav/marwind/bindings"
	"github.com/patrislav/marwind/desktop"
	"github.com/patrislav/marwind/display"
	"github.com/patrislav/marwind/errs"
	"github.com/patrislav/marwind/event"
	"github.com/patrislav/marwind/geometry"
	"github.com/patrislav/marwind/window"
	"github.com/patrislav/marwind/workspace"
)

// ErrorHandler receives every non-fatal error a dispatched action
// produces. The zero value defaults to logging at Warn level.
type ErrorHandler func(error)

// Deps bundles everything the Dispatcher needs to apply actions.
type Deps struct {
	Log          logrus.FieldLogger
	Desktop      *desktop.Desktop
	Conn         display.Connector
	Keybinds     *bindings.KeybindRegistry
	Mousebinds   *bindings.MousebindRegistry
	FloatClasses []string
	BorderPx     uint32
	// OnError is called with every non-fatal error produced while
	// applying an action batch. Defaults to logging at Warn if nil.
	OnError ErrorHandler
}

// Dispatcher turns event.Actions into calls against the desktop and
// display connector, per the action-dispatch handler table. A Dispatcher
// is not safe for concurrent use; the core's single-threaded event loop
// is the only caller.
type Dispatcher struct {
	log          logrus.FieldLogger
	desktop      *desktop.Desktop
	conn         display.Connector
	keybinds     *bindings.KeybindRegistry
	mousebinds   *bindings.MousebindRegistry
	floatClasses []string
	borderPx     uint32
	onError      ErrorHandler

	// selected is the window id a mouse-press cycle has grabbed for a
	// drag, and lastMousePos is where the pointer last was, both gating
	// MoveWindowPtr/ResizeWindowPtr per §4.9's move/resize semantics.
	selected     *window.ID
	lastMousePos geometry.Point[int, geometry.Logical]

	// focusedScreen is the monitor SetFocusedScreen last resolved the
	// pointer to, consulted by config-bound keybind callbacks that need
	// to know which output to target (e.g. "switch workspace on this
	// screen").
	focusedScreen workspace.MonitorHandle
}

// New constructs a Dispatcher from deps.
func New(deps Deps) *Dispatcher {
	onErr := deps.OnError
	if onErr == nil {
		log := deps.Log
		onErr = func(err error) {
			if log != nil {
				log.WithError(err).Warn("dispatch: action failed")
			}
		}
	}
	return &Dispatcher{
		log:          deps.Log,
		desktop:      deps.Desktop,
		conn:         deps.Conn,
		keybinds:     deps.Keybinds,
		mousebinds:   deps.Mousebinds,
		floatClasses: deps.FloatClasses,
		borderPx:     deps.BorderPx,
		onError:      onErr,
	}
}

// FocusedScreen returns the monitor last resolved by SetFocusedScreen.
func (d *Dispatcher) FocusedScreen() workspace.MonitorHandle { return d.focusedScreen }

// Dispatch applies actions in order, one handler call per Action. A
// non-fatal error from any handler is routed to the configured
// ErrorHandler and dispatch continues with the next action; a fatal
// error (wrapping errs.ErrConnectorDisconnect) aborts immediately and is
// returned to the caller, the way the core's event loop exits on a
// connector disconnect rather than continuing to dispatch against a dead
// connection.
func (d *Dispatcher) Dispatch(actions []event.Action) error {
	for _, a := range actions {
		err := d.dispatchOne(a)
		if err == nil {
			continue
		}
		if errors.Is(err, errs.ErrConnectorDisconnect) {
			return err
		}
		d.onError(err)
	}
	return nil
}

func (d *Dispatcher) dispatchOne(a event.Action) error {
	switch a.Kind {
	case event.ActionMoveClientFocus:
		return d.handleMoveClientFocus(a)
	case event.ActionScreenReconfigure:
		return d.handleScreenReconfigure()
	case event.ActionSetFocusedScreen:
		return d.handleSetFocusedScreen(a)
	case event.ActionDestroyClient, event.ActionUnmapClient:
		return d.handleRemoveClient(a.Window)
	case event.ActionMapTrackedClient:
		return d.handleMapTrackedClient(a)
	case event.ActionMapUntrackedClient:
		return d.handleMapUntrackedClient(a)
	case event.ActionConfigureClient:
		return d.handleConfigureClient(a)
	case event.ActionClientToWorkspace:
		return d.handleClientToWorkspace(a)
	case event.ActionRunKeybind:
		return d.handleRunKeybind(a)
	case event.ActionRunMousebind:
		return d.handleRunMousebind(a)
	case event.ActionToggleClientFullscreen:
		return d.handleToggleClientFullscreen(a)
	case event.ActionToggleUrgency:
		return d.handleToggleUrgency(a)
	default:
		return nil
	}
}

func toLogical(pt geometry.Point[int, geometry.Physical]) geometry.Point[int, geometry.Logical] {
	return geometry.Point[int, geometry.Logical]{X: pt.X, Y: pt.Y}
}
