package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrislav/marwind/geometry"
	"github.com/patrislav/marwind/layout"
	"github.com/patrislav/marwind/window"
)

func newTiledWorkspace(t *testing.T, name string) *Workspace {
	t.Helper()
	lr, err := layout.NewRing([]layout.Layout{layout.NewDynamicTiled(nil, 0.5, 0)})
	require.NoError(t, err)
	return New(nil, name, lr, 0)
}

func screen() geometry.Rectangle[int, geometry.Logical] {
	return geometry.NewRectangle[int, geometry.Logical](0, 0, 1000, 1600)
}

func zeroGeom() geometry.Rectangle[int, geometry.Logical] {
	return geometry.NewRectangle[int, geometry.Logical](0, 0, 0, 0)
}

func TestWorkspaceAddAndRelayout(t *testing.T) {
	ws := newTiledWorkspace(t, "main")
	ws.Activate(1, screen(), nil)

	ws.AddWindowOnLayout(window.New(1, window.ClassNormal, zeroGeom()))
	w := ws.Windows()[0]
	assert.NotEqual(t, zeroGeom(), w.Geometry())
}

func TestWorkspaceScenario5CrossMove(t *testing.T) {
	a := newTiledWorkspace(t, "A")
	b := newTiledWorkspace(t, "B")

	a.Activate(1, screen(), nil)

	w1 := window.New(1, window.ClassNormal, zeroGeom())
	w2 := window.New(2, window.ClassNormal, zeroGeom())
	a.AddWindowOnLayout(w1)
	a.AddWindowOnLayout(w2)

	require.True(t, a.ContainsWindow(1))
	require.True(t, a.ContainsWindow(2))
	require.False(t, b.ContainsWindow(1))

	taken, ok := a.TakeWindow(1)
	require.True(t, ok)
	a.Relayout()
	b.PutWindow(taken)
	if b.Focused() == nil {
		b.FocusWindow(1)
	}

	assert.False(t, a.ContainsWindow(1))
	assert.True(t, a.ContainsWindow(2))
	assert.True(t, b.ContainsWindow(1))
	require.NotNil(t, b.Focused())
	assert.Equal(t, window.ID(1), b.Focused().ID())

	// window identity preserved across the move
	assert.Same(t, taken, b.Windows()[0])
}

func TestWorkspaceScenario6ToggleFloatThenLayout(t *testing.T) {
	ws := newTiledWorkspace(t, "main")
	ws.Activate(1, screen(), nil)

	w1 := window.New(1, window.ClassNormal, zeroGeom())
	w2 := window.New(2, window.ClassNormal, zeroGeom())
	w3 := window.New(3, window.ClassNormal, zeroGeom())
	ws.AddWindowOnLayout(w1)
	ws.AddWindowOnLayout(w2)
	ws.AddWindowOnLayout(w3)

	ws.FocusWindow(2)
	before := w2.Geometry()

	ws.ToggleFocusedState()

	assert.Equal(t, before, w2.Geometry())
	assert.True(t, w2.IsOffLayout())
	assert.Equal(t, 2, ws.ManagedCount())
	assert.Equal(t, 1, ws.FloatingCount())

	onLayoutIDs := ws.WindowsInLayout()
	assert.Len(t, onLayoutIDs, 2)
}

func TestWorkspaceDeactivatePanicsWhenInactive(t *testing.T) {
	ws := newTiledWorkspace(t, "main")
	assert.Panics(t, func() { ws.Deactivate() })
}

func TestWorkspaceActivateEmptyJustSetsOutput(t *testing.T) {
	ws := newTiledWorkspace(t, "main")
	_, hadPrev := ws.Activate(5, screen(), nil)
	assert.False(t, hadPrev)
	out, ok := ws.Output()
	require.True(t, ok)
	assert.Equal(t, MonitorHandle(5), out)
}

func TestWorkspaceRelayoutNoopWhenInactive(t *testing.T) {
	ws := newTiledWorkspace(t, "main")
	w1 := window.New(1, window.ClassNormal, zeroGeom())
	ws.AddWindowOnLayout(w1)
	assert.Equal(t, zeroGeom(), w1.Geometry())
}

func TestWorkspaceDelWindow(t *testing.T) {
	ws := newTiledWorkspace(t, "main")
	ws.Activate(1, screen(), nil)
	w1 := window.New(1, window.ClassNormal, zeroGeom())
	ws.AddWindowOnLayout(w1)

	removed, ok := ws.DelWindow(1)
	require.True(t, ok)
	assert.Equal(t, window.ID(1), removed.ID())
	assert.True(t, ws.IsEmpty())
}
