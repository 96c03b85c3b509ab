package manager

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/patrislav/marwind/bindings"
	"github.com/patrislav/marwind/errs"
	"github.com/patrislav/marwind/layout"
	"github.com/patrislav/marwind/workspace"
)

// resolveKeyAction resolves a bound action name to the callback a
// Keybind should run. The fixed names below cover the core's named
// operations (focus, layout, fullscreen, workspace switching,
// quit/restart); "workspace_N"/"move_to_workspace_N" and "spawn:<cmd>"
// are small parameterized families rather than one entry each.
func (m *Manager) resolveKeyAction(name string) (bindings.KeyAction, bool) {
	switch name {
	case "focus_next":
		return func() { m.cycleFocus(workspace.Forward) }, true
	case "focus_prev":
		return func() { m.cycleFocus(workspace.Backward) }, true
	case "cycle_layout_next":
		return func() { m.desktop.Current().CycleLayout(workspace.Forward); m.desktop.Current().Relayout() }, true
	case "cycle_layout_prev":
		return func() { m.desktop.Current().CycleLayout(workspace.Backward); m.desktop.Current().Relayout() }, true
	case "toggle_floating":
		return func() { m.desktop.Current().ToggleFocusedState() }, true
	case "toggle_fullscreen":
		return func() { m.toggleFocusedFullscreen() }, true
	case "close_window":
		return func() { m.closeFocusedWindow() }, true
	case "resize_main_grow":
		return func() { m.desktop.Current().UpdateFocusedLayout(layout.ResizeMain{Delta: 0.05}) }, true
	case "resize_main_shrink":
		return func() { m.desktop.Current().UpdateFocusedLayout(layout.ResizeMain{Delta: -0.05}) }, true
	case "workspace_next":
		return func() { m.cycleWorkspace(workspace.Forward) }, true
	case "workspace_prev":
		return func() { m.cycleWorkspace(workspace.Backward) }, true
	case "quit":
		return func() { m.Quit() }, true
	case "restart":
		return func() { m.Restart() }, true
	}

	if idx, ok := workspaceActionIndex(name, "workspace_"); ok {
		return func() { m.goToWorkspaceIdx(idx) }, true
	}
	if idx, ok := workspaceActionIndex(name, "move_to_workspace_"); ok {
		return func() { m.moveFocusedToWorkspaceIdx(idx) }, true
	}
	if cmd, ok := strings.CutPrefix(name, "spawn:"); ok {
		return func() { m.spawn(cmd) }, true
	}
	return nil, false
}

// resolveMouseAction resolves a bound action name to the callback a
// Mousebind's Press should run; the bulk of move/resize drag behavior
// lives in dispatch's generic RunMousebind handling, so only the two
// names that select which drag kind to start live here.
func (m *Manager) resolveMouseAction(name string) (bindings.MouseAction, bool) {
	switch name {
	case "move_window_ptr":
		return m.dispatch.MoveWindowPtr(), true
	case "resize_window_ptr":
		return m.dispatch.ResizeWindowPtr(), true
	}
	return nil, false
}

func workspaceActionIndex(name, prefix string) (int, bool) {
	rest, ok := strings.CutPrefix(name, prefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 {
		return 0, false
	}
	return n - 1, true
}

func (m *Manager) cycleFocus(dir workspace.Direction) {
	ws := m.desktop.Current()
	ws.CycleFocus(dir)
	if w := ws.Focused(); w != nil {
		if err := m.conn.SetInputFocus(w.ID()); err != nil {
			m.warn(err, nil, "manager: focus cycle: set input focus failed")
		}
	}
}

func (m *Manager) toggleFocusedFullscreen() {
	ws := m.desktop.Current()
	w := ws.Focused()
	if w == nil {
		return
	}
	ws.ToggleFocusedFullscreen()
	m.syncFullscreenState(w)
	ws.Relayout()
}

func (m *Manager) closeFocusedWindow() {
	ws := m.desktop.Current()
	w := ws.Focused()
	if w == nil {
		return
	}
	m.requestClose(w.ID())
}

// goToWorkspaceIdx activates the workspace at idx on the screen the
// pointer last resolved to (falling back to output 0).
func (m *Manager) goToWorkspaceIdx(idx int) {
	ws, ok := m.desktop.Get(idx)
	if !ok {
		m.warn(nil, logrus.Fields{"index": idx}, "manager: unknown workspace index")
		return
	}
	if err := m.desktop.GoTo(ws.Name(), m.dispatch.FocusedScreen(), m.queryPointer); err != nil {
		m.warn(err, nil, "manager: go to workspace failed")
	}
}

func (m *Manager) moveFocusedToWorkspaceIdx(idx int) {
	ws, ok := m.desktop.Get(idx)
	if !ok {
		m.warn(nil, logrus.Fields{"index": idx}, "manager: unknown workspace index")
		return
	}
	cur := m.desktop.Current()
	w := cur.Focused()
	if w == nil {
		return
	}
	if err := m.desktop.SendWindowTo(w.ID(), ws.Name()); err != nil {
		m.warn(err, nil, "manager: move window to workspace failed")
	}
}

func (m *Manager) cycleWorkspace(dir workspace.Direction) {
	if err := m.desktop.CycleTo(dir, m.dispatch.FocusedScreen(), m.queryPointer); err != nil {
		m.warn(err, nil, "manager: cycle workspace failed")
	}
}

// spawn launches cmd via the shell, fire-and-forget: external commands
// spawned by user callbacks are not waited on by the core.
func (m *Manager) spawn(cmd string) {
	c := exec.Command("sh", "-c", cmd)
	if err := c.Start(); err != nil {
		m.warn(fmt.Errorf("%w: %v", errs.ErrSpawnError, err), logrus.Fields{"cmd": cmd}, "manager: spawn failed")
		return
	}
	go func() { _ = c.Wait() }()
}
