package x11

import (
	"github.com/patrislav/marwind/display"
	"github.com/patrislav/marwind/window"
)

func (c *Conn) windowTypes(id window.ID) []string {
	prop, ok, err := c.GetProperty(id, display.AtomNetWMWindowType)
	if err != nil || !ok {
		return nil
	}
	return prop.Atoms
}

func (c *Conn) windowClass(id window.ID) string {
	prop, ok, err := c.GetProperty(id, display.AtomWMClass)
	if err != nil || !ok || len(prop.Strings) == 0 {
		return ""
	}
	// WM_CLASS is instance followed by class; the class name is the
	// second (and last) string.
	return prop.Strings[len(prop.Strings)-1]
}

// ShouldManage reports whether id should be tracked at all, matching its
// _NET_WM_WINDOW_TYPE against the unmanaged list.
func (c *Conn) ShouldManage(id window.ID) bool {
	types := c.windowTypes(id)
	for _, t := range types {
		for _, unmanaged := range display.UnmanagedWindowTypes {
			if t == string(unmanaged) {
				return false
			}
		}
	}
	return true
}

// ShouldFloat reports whether id should be placed off-layout on map,
// combining its window type with the configured float-class list.
func (c *Conn) ShouldFloat(id window.ID, floatClasses []string) bool {
	types := c.windowTypes(id)
	for _, t := range types {
		for _, auto := range display.AutoFloatWindowTypes {
			if t == string(auto) {
				return true
			}
		}
	}
	class := c.windowClass(id)
	if class == "" {
		return false
	}
	for _, fc := range floatClasses {
		if fc == class {
			return true
		}
	}
	return false
}
