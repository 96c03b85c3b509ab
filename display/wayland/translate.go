package wayland

import (
	"github.com/patrislav/marwind/event"
	"github.com/patrislav/marwind/geometry"
	"github.com/patrislav/marwind/window"
)

// apply folds one decoded niri event into local bookkeeping and maps it
// onto the event.Kind set the core's event.Translate understands, per
// the WindowOpenedOrChanged/WindowClosed/WorkspaceActivated/
// WindowFocusChanged -> MapRequest/DestroyNotify/RandRNotify/EnterNotify
// mapping this package is grounded on.
func (c *Conn) apply(raw rawEvent) (event.Event, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case raw.WorkspacesChanged != nil:
		c.workspace = make(map[uint64]*niriWorkspace)
		for _, w := range raw.WorkspacesChanged.Workspaces {
			output := ""
			if w.Output != nil {
				output = *w.Output
			}
			c.workspace[w.ID] = &niriWorkspace{id: w.ID, output: output, isActive: w.IsActive}
		}
		return event.Event{Kind: event.RandRNotify}, true

	case raw.WorkspaceActivated != nil:
		wa := raw.WorkspaceActivated
		if ws, ok := c.workspace[wa.ID]; ok {
			for _, other := range c.workspace {
				if other.output == ws.output {
					other.isActive = false
				}
			}
			ws.isActive = true
		}
		return event.Event{Kind: event.RandRNotify}, true

	case raw.WindowOpenedOrChanged != nil:
		w := raw.WindowOpenedOrChanged.Window
		appID := ""
		if w.AppID != nil {
			appID = *w.AppID
		}
		id := window.ID(w.ID)
		c.windows[w.ID] = &niriWindow{id: id, appID: appID, isFocused: w.IsFocused}
		return event.Event{Kind: event.MapRequest, Window: id}, true

	case raw.WindowClosed != nil:
		id := window.ID(raw.WindowClosed.ID)
		delete(c.windows, raw.WindowClosed.ID)
		return event.Event{Kind: event.DestroyNotify, Window: id}, true

	case raw.WindowFocusChanged != nil:
		for _, w := range c.windows {
			w.isFocused = false
		}
		if raw.WindowFocusChanged.ID == nil {
			return event.Event{}, false
		}
		id := *raw.WindowFocusChanged.ID
		w, ok := c.windows[id]
		if !ok {
			return event.Event{}, false
		}
		w.isFocused = true
		return event.Event{
			Kind:   event.EnterNotify,
			Window: w.id,
			Point:  geometry.Point[int, geometry.Physical]{},
		}, true

	default:
		return event.Event{}, false
	}
}
