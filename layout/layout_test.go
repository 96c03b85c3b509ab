package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrislav/marwind/geometry"
	"github.com/patrislav/marwind/ring"
	"github.com/patrislav/marwind/window"
)

// fakeWorkspace is a minimal WorkspaceView for exercising layouts without
// depending on the workspace package (which itself depends on layout).
type fakeWorkspace struct {
	inLayout []window.ID
}

func (f *fakeWorkspace) ManagedCount() int { return len(f.inLayout) }

func (f *fakeWorkspace) FirstInLayout() (window.ID, bool) {
	if len(f.inLayout) == 0 {
		return 0, false
	}
	return f.inLayout[0], true
}

func (f *fakeWorkspace) HasWindowInLayout(id window.ID) bool {
	for _, w := range f.inLayout {
		if w == id {
			return true
		}
	}
	return false
}

func (f *fakeWorkspace) InLayoutIDs() []window.ID { return f.inLayout }

func TestDynamicTiledOneMainTwoSecondaries(t *testing.T) {
	ws := &fakeWorkspace{inLayout: []window.ID{1, 2, 3}}
	screen := geometry.NewRectangle[int, geometry.Logical](0, 0, 1000, 1600)

	dt := NewDynamicTiled(nil, 0.5, 2)
	ctxt := Ctxt{Workspace: ws, ScreenGeom: screen, BorderPx: 2}

	// first call picks a main (window 1) and recurses
	actions := dt.Generate(ctxt)
	require.Len(t, actions, 3)

	byID := make(map[window.ID]Action, len(actions))
	for _, a := range actions {
		assert.Equal(t, ActionResize, a.Kind)
		byID[a.ID] = a
	}

	main := byID[1]
	assert.Equal(t, 996, main.Geom.Size.Height)
	assert.Equal(t, 797, main.Geom.Size.Width)
	assert.Equal(t, 0, main.Geom.Point.X)
	assert.Equal(t, 0, main.Geom.Point.Y)

	sec1 := byID[2]
	sec2 := byID[3]
	// secondaries fill the remainder of the vertical split untrimmed;
	// +/-1px variance here is expected depending on rounding convention.
	assert.Equal(t, 498, sec1.Geom.Size.Height)
	assert.Equal(t, 798, sec1.Geom.Size.Width)
	assert.Equal(t, 498, sec2.Geom.Size.Height)
	assert.Equal(t, 798, sec2.Geom.Size.Width)
	// secondaries stack top to bottom, sharing the x offset
	assert.Equal(t, sec1.Geom.Point.X, sec2.Geom.Point.X)
	assert.Equal(t, sec1.Geom.Point.Y+sec1.Geom.Size.Height, sec2.Geom.Point.Y)
}

func TestDynamicTiledSingleWindowFillsUsable(t *testing.T) {
	ws := &fakeWorkspace{inLayout: []window.ID{1}}
	screen := geometry.NewRectangle[int, geometry.Logical](0, 0, 1000, 1600)
	dt := NewDynamicTiled(nil, 0.5, 2)

	actions := dt.Generate(Ctxt{Workspace: ws, ScreenGeom: screen, BorderPx: 2})
	require.Len(t, actions, 1)
	assert.Equal(t, 996, actions[0].Geom.Size.Height)
	assert.Equal(t, 1596, actions[0].Geom.Size.Width)
}

func TestDynamicTiledEmptyWorkspaceUnsetsMain(t *testing.T) {
	ws := &fakeWorkspace{inLayout: []window.ID{1}}
	screen := geometry.NewRectangle[int, geometry.Logical](0, 0, 1000, 1600)
	dt := NewDynamicTiled(nil, 0.5, 2)

	dt.Generate(Ctxt{Workspace: ws, ScreenGeom: screen})
	assert.True(t, dt.hasMain)

	ws.inLayout = nil
	actions := dt.Generate(Ctxt{Workspace: ws, ScreenGeom: screen})
	assert.Empty(t, actions)
	assert.False(t, dt.hasMain)
}

func TestDynamicTiledReceiveUpdate(t *testing.T) {
	dt := NewDynamicTiled(nil, 0.5, 2)
	dt.ReceiveUpdate(ResizeMain{Delta: 0.1})
	assert.InDelta(t, 0.6, dt.ratio, 1e-6)

	dt.ReceiveUpdate(SetBorderPx{Width: 4})
	assert.Equal(t, uint32(4), dt.bwidth)

	// unrelated updates are ignored
	dt.ReceiveUpdate("garbage")
	assert.InDelta(t, 0.6, dt.ratio, 1e-6)
}

func TestFloatingLayoutNeverResizes(t *testing.T) {
	f := NewFloating()
	assert.Equal(t, Floating, f.Style())
	assert.Nil(t, f.Generate(Ctxt{}))
}

func TestNewRingRejectsDuplicateNames(t *testing.T) {
	_, err := NewRing([]Layout{NewFloating(), NewFloating()})
	assert.Error(t, err)
}

func TestNewRingRejectsEmpty(t *testing.T) {
	_, err := NewRing(nil)
	assert.Error(t, err)
}

func TestRingFocusedAndCycle(t *testing.T) {
	lr, err := NewRing([]Layout{NewFloating(), NewDynamicTiled(nil, 0.5, 2)})
	require.NoError(t, err)

	assert.Equal(t, "floating", lr.Focused().Name())

	lr.Ring().CycleFocus(ring.Forward)
	assert.Equal(t, "tiled", lr.Focused().Name())
}
