package dispatch

import (
	"github.com/patrislav/marwind/bindings"
	"github.com/patrislav/marwind/geometry"
	"github.com/patrislav/marwind/window"
	"github.com/patrislav/marwind/workspace"
)

// selectedWindow resolves the window a mouse-press cycle grabbed, along
// with the workspace that currently holds it. Returns ok=false if
// nothing is selected, or the selected window has since been removed
// (e.g. destroyed mid-drag).
func (d *Dispatcher) selectedWindow() (*workspace.Workspace, *window.Window, bool) {
	if d.selected == nil {
		return nil, nil, false
	}
	ws, _ := d.desktop.Retrieve(*d.selected)
	if ws == nil {
		return nil, nil, false
	}
	w := ws.Lookup(*d.selected)
	if w == nil {
		return nil, nil, false
	}
	return ws, w, true
}

// MoveWindowPtr returns the MouseAction implementing move_window_ptr:
// bind it to a Motion-driven drag (e.g. Mod+Button1) to reposition the
// selected window by the pointer's movement since the last call, pulling
// it off-layout first if it was tiled.
func (d *Dispatcher) MoveWindowPtr() bindings.MouseAction {
	return func(pt geometry.Point[int, geometry.Logical]) {
		ws, w, ok := d.selectedWindow()
		if !ok {
			return
		}
		dx, dy := d.lastMousePos.OffsetTo(pt)
		if !w.IsOffLayout() {
			ws.RemoveFromLayout(w.ID())
		}
		geom := w.Geometry()
		geom.Point.X += dx
		geom.Point.Y += dy
		w.SetGeometry(geom)
		if err := d.conn.SetGeometry(w.ID(), geom); err != nil && d.log != nil {
			d.log.WithError(err).WithField("window", w.ID()).Warn("dispatch: move_window_ptr: set geometry failed")
		}
		d.lastMousePos = pt
	}
}

// ResizeWindowPtr returns the MouseAction implementing
// resize_window_ptr: identical to MoveWindowPtr but grows/shrinks the
// selected window's size by the pointer's movement instead of moving it.
func (d *Dispatcher) ResizeWindowPtr() bindings.MouseAction {
	return func(pt geometry.Point[int, geometry.Logical]) {
		ws, w, ok := d.selectedWindow()
		if !ok {
			return
		}
		dx, dy := d.lastMousePos.OffsetTo(pt)
		if !w.IsOffLayout() {
			ws.RemoveFromLayout(w.ID())
		}
		geom := w.Geometry()
		geom.Size.Width += dx
		geom.Size.Height += dy
		w.SetGeometry(geom)
		if err := d.conn.SetGeometry(w.ID(), geom); err != nil && d.log != nil {
			d.log.WithError(err).WithField("window", w.ID()).Warn("dispatch: resize_window_ptr: set geometry failed")
		}
		d.lastMousePos = pt
	}
}
