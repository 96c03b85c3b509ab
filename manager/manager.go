// Package manager aggregates the desktop, dispatcher, display connector
// and bound actions into a single runnable unit, and drives the core's
// single-threaded event loop.
package manager

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/patrislav/marwind/bindings"
	"github.com/patrislav/marwind/config"
	"github.com/patrislav/marwind/desktop"
	"github.com/patrislav/marwind/dispatch"
	"github.com/patrislav/marwind/display"
	"github.com/patrislav/marwind/errs"
	"github.com/patrislav/marwind/event"
	"github.com/patrislav/marwind/layout"
	"github.com/patrislav/marwind/window"
	"github.com/patrislav/marwind/workspace"
)

// idlePoll is how long Run sleeps after an empty poll. Neither connector
// blocks the caller: display/x11's PollNextEvent wraps xgb's own
// non-blocking PollForEvent, display/wayland's wraps a channel fed by a
// background reader goroutine. The loop itself provides the event
// loop's single suspension point.
const idlePoll = 5 * time.Millisecond

// KeymapProvider is implemented by connectors that can resolve bind
// strings to keycodes (display/x11 does, via its loaded X11 keyboard
// mapping; display/wayland does not, since niri owns its own bindings).
// Init degrades gracefully when the connector doesn't implement it: no
// keybinds are grabbed, and RunKeybind events never fire.
type KeymapProvider interface {
	Keymap() *bindings.Keymap
}

// Deps bundles everything New needs to build a Manager.
type Deps struct {
	Log     logrus.FieldLogger
	Runtime *config.Runtime
	Conn    display.Connector
}

// Manager is the top-level aggregator: owns the desktop, the dispatcher
// and the connector, and runs the event loop that ties them together.
type Manager struct {
	log     logrus.FieldLogger
	runtime *config.Runtime
	conn    display.Connector
	desktop *desktop.Desktop
	dispatch *dispatch.Dispatcher

	keybinds   *bindings.KeybindRegistry
	mousebinds *bindings.MousebindRegistry

	running bool
	restart bool
}

func layoutFactory(log logrus.FieldLogger, rt *config.Runtime) func(name string) (layout.Layout, bool) {
	return func(name string) (layout.Layout, bool) {
		switch name {
		case "tiled":
			return layout.NewDynamicTiled(log, 0.5, rt.BorderPx()), true
		case "floating":
			return layout.NewFloating(), true
		default:
			return nil, false
		}
	}
}

// New builds a Manager from deps: constructs the layouts Runtime.Layouts
// names, the workspaces Runtime.Workspaces seeds the desktop with, binds
// them to the connector's current outputs, and wires a Dispatcher over
// the result. It does not touch the display server beyond AllOutputs;
// see Init for that.
func New(deps Deps) (*Manager, error) {
	log := deps.Log
	rt := deps.Runtime
	newLayout := layoutFactory(log, rt)

	// Every workspace gets its own freshly constructed layout instances
	// (rather than sharing one Ring of layouts across workspaces): a
	// DynamicTiled tracks per-workspace state (its main window, its
	// ratio), so two workspaces naming the same layout must not alias
	// the same *DynamicTiled.
	var workspaces []*workspace.Workspace
	for _, spec := range rt.Workspaces() {
		names := spec.Layouts
		if len(names) == 0 {
			names = rt.Layouts()
		}
		var layouts []layout.Layout
		for _, name := range names {
			l, ok := newLayout(name)
			if !ok {
				return nil, fmt.Errorf("manager: %w: unknown layout %q for workspace %q", errs.ErrInvalidConfig, name, spec.Name)
			}
			layouts = append(layouts, l)
		}
		lr, err := layout.NewRing(layouts)
		if err != nil {
			return nil, fmt.Errorf("manager: %w: %v", errs.ErrInvalidConfig, err)
		}
		workspaces = append(workspaces, workspace.New(log, spec.Name, lr, rt.BorderPx()))
	}
	if len(workspaces) == 0 {
		return nil, fmt.Errorf("manager: %w: no workspaces configured", errs.ErrInvalidConfig)
	}

	outputs, err := deps.Conn.AllOutputs()
	if err != nil {
		return nil, fmt.Errorf("manager: %w: %v", errs.ErrProtocolError, err)
	}
	screens := make([]*desktop.Screen, len(outputs))
	for i, o := range outputs {
		screens[i] = desktop.NewScreen(o.Name, i, o.Geom)
	}

	// Activate one workspace per distinct configured output, so a
	// multi-monitor boot shows a workspace on every screen; the first
	// workspace ends up current regardless of output, matching
	// Desktop.New's own "focus index 0" default.
	d := desktop.New(log, workspaces, screens)
	seenOutputs := make(map[workspace.MonitorHandle]bool)
	for _, spec := range rt.Workspaces() {
		out := workspace.MonitorHandle(spec.Output)
		if seenOutputs[out] {
			continue
		}
		if _, ok := d.ScreenFor(out); !ok {
			continue
		}
		seenOutputs[out] = true
		if err := d.GoTo(spec.Name, out, nil); err != nil && log != nil {
			log.WithError(err).WithField("workspace", spec.Name).Warn("manager: could not activate workspace at boot")
		}
	}

	kb := bindings.NewKeybindRegistry()
	mb := bindings.NewMousebindRegistry()

	disp := dispatch.New(dispatch.Deps{
		Log:          log,
		Desktop:      d,
		Conn:         deps.Conn,
		Keybinds:     kb,
		Mousebinds:   mb,
		FloatClasses: rt.FloatClasses(),
		BorderPx:     rt.BorderPx(),
	})

	m := &Manager{
		log:        log,
		runtime:    rt,
		conn:       deps.Conn,
		desktop:    d,
		dispatch:   disp,
		keybinds:   kb,
		mousebinds: mb,
	}
	return m, nil
}

// Quit requests the event loop stop after the current action batch.
func (m *Manager) Quit() { m.running = false }

// Restart requests the event loop stop and sets the restart flag; the
// caller (cmd/marwind) is responsible for re-exec, since restarting by
// re-exec rebuilds all in-memory state from scratch.
func (m *Manager) Restart() {
	m.running = false
	m.restart = true
}

// ShouldRestart reports whether Run exited because of a restart request
// rather than a quit request or a fatal error.
func (m *Manager) ShouldRestart() bool { return m.restart }

// warn logs a non-fatal condition, tolerating a nil logger the same way
// dispatch and workspace do.
func (m *Manager) warn(err error, fields logrus.Fields, msg string) {
	if m.log == nil {
		return
	}
	entry := m.log.WithFields(fields)
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Warn(msg)
}

func (m *Manager) queryPointer() (window.ID, bool) {
	root, err := m.conn.GetRoot()
	if err != nil {
		return 0, false
	}
	reply, err := m.conn.QueryPointer(root.ID)
	if err != nil {
		return 0, false
	}
	for _, w := range m.desktop.Current().Windows() {
		if w.IsMapped() && w.Geometry().ContainsPoint(reply.Pos) {
			return w.ID(), true
		}
	}
	return 0, false
}

func (m *Manager) syncFullscreenState(w *window.Window) {
	var atoms []string
	if w.IsFullscreen() {
		atoms = append(atoms, string(display.AtomNetWMStateFullscreen))
	}
	prop := display.Property{Kind: display.PropAtom, Atoms: atoms}
	if err := m.conn.SetProperty(w.ID(), display.AtomNetWMState, prop); err != nil {
		m.warn(err, logrus.Fields{"window": w.ID()}, "manager: failed to sync _NET_WM_STATE")
	}
}

// requestClose asks id to close itself via a WM_DELETE_WINDOW
// ClientMessage, the ICCCM-polite way to ask a client to close rather
// than destroying its window outright.
func (m *Manager) requestClose(id window.ID) {
	atom, err := m.conn.Atom(display.AtomWMDeleteWindow)
	if err != nil {
		m.warn(err, logrus.Fields{"window": id}, "manager: close_window: could not resolve WM_DELETE_WINDOW")
		return
	}
	var data [5]uint32
	data[0] = atom
	if err := m.conn.SendClientMessage(id, display.AtomWMProtocols, data); err != nil {
		m.warn(err, logrus.Fields{"window": id}, "manager: close_window: send failed")
	}
}

// gatherExisting tracks every window already mapped under the root at
// startup: on restart the connector re-enumerates existing windows and
// the manager reconstructs its state from scratch, and the same path
// serves a cold start with pre-existing clients.
func (m *Manager) gatherExisting() error {
	root, err := m.conn.GetRoot()
	if err != nil {
		return fmt.Errorf("manager: gather existing: %w: %v", errs.ErrProtocolError, err)
	}
	children, err := m.conn.QueryTree(root.ID)
	if err != nil {
		return fmt.Errorf("manager: gather existing: %w: %v", errs.ErrProtocolError, err)
	}
	for _, id := range children {
		if !m.conn.ShouldManage(id) {
			continue
		}
		geom, err := m.conn.GetGeometry(id)
		if err != nil {
			m.warn(err, logrus.Fields{"window": id}, "manager: gather existing: could not query geometry")
			continue
		}
		ws := m.desktop.Current()
		var w *window.Window
		if m.conn.ShouldFloat(id, m.runtime.FloatClasses()) {
			w = window.OutsideLayout(id, window.ClassNormal, geom)
			ws.AddWindowOffLayout(w)
		} else {
			w = window.New(id, window.ClassNormal, geom)
			ws.AddWindowOnLayout(w)
		}
		w.Map()
		if err := m.conn.ChangeWindowAttributes(id, uint32(display.ClientEventMask)); err != nil {
			m.warn(err, logrus.Fields{"window": id}, "manager: gather existing: could not select events")
		}
	}
	return nil
}

// bindConfigured parses and grabs every configured keybind/mousebind. A
// connector without keymap support (Wayland) skips keybinds entirely and
// logs once; a single bind that fails to parse or grab is reported and
// skipped, not fatal.
func (m *Manager) bindConfigured() {
	var km *bindings.Keymap
	if kp, ok := m.conn.(KeymapProvider); ok {
		km = kp.Keymap()
	}

	if km == nil {
		if len(m.runtime.Keybinds()) > 0 {
			m.warn(nil, nil, "manager: connector has no keymap, keybinds will not be grabbed")
		}
	} else {
		for name, s := range m.runtime.Keybinds() {
			action, ok := m.resolveKeyAction(name)
			if !ok {
				m.warn(nil, logrus.Fields{"action": name}, "manager: unknown bound action name")
				continue
			}
			kb, err := bindings.ParseKeybind(km, s)
			if err != nil {
				m.warn(err, logrus.Fields{"action": name}, "manager: could not parse keybind")
				continue
			}
			m.keybinds.Bind(kb, action)
			if err := m.conn.GrabKey(kb); err != nil {
				m.warn(err, logrus.Fields{"action": name}, "manager: could not grab keybind")
			}
		}
	}

	for name, s := range m.runtime.Mousebinds() {
		action, ok := m.resolveMouseAction(name)
		if !ok {
			m.warn(nil, logrus.Fields{"action": name}, "manager: unknown bound action name")
			continue
		}
		mb, err := bindings.ParseMousebind(s)
		if err != nil {
			m.warn(err, logrus.Fields{"action": name}, "manager: could not parse mousebind")
			continue
		}
		m.mousebinds.Bind(mb, action)
		if err := m.conn.GrabButton(mb); err != nil {
			m.warn(err, logrus.Fields{"action": name}, "manager: could not grab mousebind")
		}
	}
}

// setEWMHProperties advertises the supported EWMH atoms and the current
// desktop count/index on the root window.
func (m *Manager) setEWMHProperties() error {
	root, err := m.conn.GetRoot()
	if err != nil {
		return fmt.Errorf("manager: ewmh: %w: %v", errs.ErrProtocolError, err)
	}

	supported := make([]string, len(display.EWMHSupported))
	for i, a := range display.EWMHSupported {
		supported[i] = string(a)
	}
	if err := m.conn.SetProperty(root.ID, display.AtomNetSupported, display.Property{Kind: display.PropAtom, Atoms: supported}); err != nil {
		return fmt.Errorf("manager: ewmh: %w: %v", errs.ErrProtocolError, err)
	}

	numDesktops := display.Property{Kind: display.PropCardinal, Cardinal: uint32(len(m.runtime.Workspaces()))}
	if err := m.conn.SetProperty(root.ID, display.AtomNetNumberOfDesktops, numDesktops); err != nil {
		return fmt.Errorf("manager: ewmh: %w: %v", errs.ErrProtocolError, err)
	}

	return m.syncCurrentDesktop(root.ID)
}

func (m *Manager) syncCurrentDesktop(rootID window.ID) error {
	idx, _ := m.desktop.CurrentIdx()
	prop := display.Property{Kind: display.PropCardinal, Cardinal: uint32(idx)}
	if err := m.conn.SetProperty(rootID, display.AtomNetCurrentDesktop, prop); err != nil {
		return fmt.Errorf("manager: ewmh: %w: %v", errs.ErrProtocolError, err)
	}
	return nil
}

// Init prepares the manager to run: gathers already-mapped windows,
// grabs configured binds, and advertises EWMH state on the root window.
func (m *Manager) Init() error {
	if err := m.gatherExisting(); err != nil {
		return err
	}
	m.bindConfigured()
	if err := m.setEWMHProperties(); err != nil {
		return err
	}
	m.running = true
	return nil
}

// Run drives the core's single-threaded event loop: poll, translate,
// dispatch, check running/restart, repeat. Returns nil on a clean
// Quit/Restart, or the fatal error that ended it (always wrapping
// errs.ErrConnectorDisconnect).
func (m *Manager) Run() error {
	deps := event.Deps{
		IsManaged:    m.desktop.IsManaging,
		ShouldManage: m.conn.ShouldManage,
		IsUrgent:     m.isUrgent,
	}

	for m.running {
		ev, ok, err := m.conn.PollNextEvent()
		if err != nil {
			return fmt.Errorf("manager: %w: %v", errs.ErrConnectorDisconnect, err)
		}
		if !ok {
			time.Sleep(idlePoll)
			continue
		}

		actions := event.Translate(ev, deps)
		if err := m.dispatch.Dispatch(actions); err != nil {
			if errors.Is(err, errs.ErrConnectorDisconnect) {
				return err
			}
			m.warn(err, nil, "manager: dispatch failed")
		}
	}
	return nil
}

func (m *Manager) isUrgent(id window.ID) bool {
	ws, _ := m.desktop.Retrieve(id)
	if ws == nil {
		return false
	}
	w := ws.Lookup(id)
	return w != nil && w.IsUrgent()
}

// Close releases the underlying connector.
func (m *Manager) Close() error {
	return m.conn.Close()
}
