package desktop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrislav/marwind/geometry"
	"github.com/patrislav/marwind/layout"
	"github.com/patrislav/marwind/window"
	"github.com/patrislav/marwind/workspace"
)

func rect(x, y, w, h int) geometry.Rectangle[int, geometry.Logical] {
	return geometry.NewRectangle[int, geometry.Logical](x, y, h, w)
}

func newWs(t *testing.T, name string) *workspace.Workspace {
	t.Helper()
	lr, err := layout.NewRing([]layout.Layout{layout.NewDynamicTiled(nil, 0.5, 0)})
	require.NoError(t, err)
	return workspace.New(nil, name, lr, 0)
}

func newDesktopWith(t *testing.T, names ...string) (*Desktop, []*workspace.Workspace) {
	t.Helper()
	var wss []*workspace.Workspace
	for _, n := range names {
		wss = append(wss, newWs(t, n))
	}
	screens := []*Screen{NewScreen("eDP-1", 0, rect(0, 0, 1920, 1080))}
	return New(nil, wss, screens), wss
}

func TestDesktopCurrentDefaultsToFirst(t *testing.T) {
	d, wss := newDesktopWith(t, "one", "two", "three")
	assert.Same(t, wss[0], d.Current())
	assert.Equal(t, "one", d.CurrentName())
}

func TestDesktopGoToSwitchesCurrentAndActivatesOnOutput(t *testing.T) {
	d, wss := newDesktopWith(t, "one", "two")

	err := d.GoTo("one", 0, nil)
	require.NoError(t, err)
	require.True(t, wss[0].IsActive())

	err = d.GoTo("two", 0, nil)
	require.NoError(t, err)
	assert.False(t, wss[0].IsActive())
	assert.True(t, wss[1].IsActive())
	assert.Same(t, wss[1], d.Current())
}

func TestDesktopGoToUnknownWorkspaceLeavesStateUnchanged(t *testing.T) {
	d, wss := newDesktopWith(t, "one", "two")
	err := d.GoTo("one", 0, nil)
	require.NoError(t, err)

	err = d.GoTo("missing", 0, nil)
	require.ErrorIs(t, err, ErrUnknownWorkspace)
	assert.Same(t, wss[0], d.Current())
	assert.True(t, wss[0].IsActive())
}

func TestDesktopCycleToMovesAndActivates(t *testing.T) {
	d, wss := newDesktopWith(t, "one", "two", "three")
	require.NoError(t, d.GoTo("one", 0, nil))

	require.NoError(t, d.CycleTo(workspace.Forward, 0, nil))
	assert.Same(t, wss[1], d.Current())
	assert.True(t, wss[1].IsActive())
	assert.False(t, wss[0].IsActive())
}

func TestDesktopSendWindowToMovesWindowAndFocus(t *testing.T) {
	d, wss := newDesktopWith(t, "one", "two")
	require.NoError(t, d.GoTo("one", 0, nil))

	w := window.New(1, window.ClassNormal, rect(0, 0, 0, 0))
	wss[0].AddWindowOnLayout(w)

	err := d.SendWindowTo(1, "two")
	require.NoError(t, err)

	assert.False(t, wss[0].ContainsWindow(1))
	assert.True(t, wss[1].ContainsWindow(1))
	require.NotNil(t, wss[1].Focused())
	assert.Equal(t, window.ID(1), wss[1].Focused().ID())
}

func TestDesktopSendWindowToUnknownWorkspaceIsNoop(t *testing.T) {
	d, wss := newDesktopWith(t, "one", "two")
	require.NoError(t, d.GoTo("one", 0, nil))

	w := window.New(1, window.ClassNormal, rect(0, 0, 0, 0))
	wss[0].AddWindowOnLayout(w)

	err := d.SendWindowTo(1, "missing")
	require.ErrorIs(t, err, ErrUnknownWorkspace)
	assert.True(t, wss[0].ContainsWindow(1))
}

func TestDesktopSendWindowToUnmanagedIDIsNoop(t *testing.T) {
	d, _ := newDesktopWith(t, "one", "two")
	err := d.SendWindowTo(99, "two")
	require.ErrorIs(t, err, ErrUnknownClient)
}

func TestDesktopSendFocusedToNoopWhenNothingFocused(t *testing.T) {
	d, _ := newDesktopWith(t, "one", "two")
	require.NoError(t, d.GoTo("one", 0, nil))
	err := d.SendFocusedTo("two")
	assert.NoError(t, err)
}

func TestDesktopRetrieveFindsOwningWorkspace(t *testing.T) {
	d, wss := newDesktopWith(t, "one", "two")
	w := window.New(7, window.ClassNormal, rect(0, 0, 0, 0))
	wss[1].AddWindowOnLayout(w)

	ws, idx := d.Retrieve(7)
	assert.Same(t, wss[1], ws)
	assert.Equal(t, 0, idx)

	assert.True(t, d.IsManaging(7))
	assert.False(t, d.IsManaging(8))
}

func TestPointToScreenResolvesOutput(t *testing.T) {
	screens := []*Screen{
		NewScreen("eDP-1", 0, rect(0, 0, 1920, 1080)),
		NewScreen("HDMI-1", 1, rect(1920, 0, 1920, 1080)),
	}
	handle, err := PointToScreen(screens, geometry.Point[int, geometry.Logical]{X: 2000, Y: 10})
	require.NoError(t, err)
	assert.Equal(t, workspace.MonitorHandle(1), handle)

	_, err = PointToScreen(screens, geometry.Point[int, geometry.Logical]{X: -1, Y: -1})
	assert.ErrorIs(t, err, ErrInvalidPoint)
}

func TestScreenUpdateEffectiveTrimsTrueGeom(t *testing.T) {
	scr := NewScreen("eDP-1", 0, rect(0, 0, 1920, 1080))
	scr.UpdateEffective(geometry.Up, 30)
	eff := scr.EffectiveGeom()
	assert.Equal(t, 1050, eff.Size.Height)
}
