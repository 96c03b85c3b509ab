package wayland

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrislav/marwind/display"
	"github.com/patrislav/marwind/event"
	"github.com/patrislav/marwind/window"
)

func newTestConn() *Conn {
	return &Conn{
		log:       logrus.New(),
		windows:   make(map[uint64]*niriWindow),
		workspace: make(map[uint64]*niriWorkspace),
	}
}

func strPtr(s string) *string { return &s }
func u64Ptr(v uint64) *uint64 { return &v }

func TestApplyWindowOpenedOrChangedTracksWindowAndEmitsMapRequest(t *testing.T) {
	c := newTestConn()
	ev, ok := c.apply(rawEvent{
		WindowOpenedOrChanged: &windowOpenedOrChanged{
			Window: niriWindowJSON{ID: 42, AppID: strPtr("xterm")},
		},
	})
	require.True(t, ok)
	assert.Equal(t, event.MapRequest, ev.Kind)
	assert.Equal(t, window.ID(42), ev.Window)
	assert.Contains(t, c.windows, uint64(42))
}

func TestApplyWindowClosedRemovesWindowAndEmitsDestroyNotify(t *testing.T) {
	c := newTestConn()
	c.windows[7] = &niriWindow{id: 7}
	ev, ok := c.apply(rawEvent{WindowClosed: &windowClosed{ID: 7}})
	require.True(t, ok)
	assert.Equal(t, event.DestroyNotify, ev.Kind)
	assert.Equal(t, window.ID(7), ev.Window)
	assert.NotContains(t, c.windows, uint64(7))
}

func TestApplyWorkspaceActivatedMarksSingleActivePerOutput(t *testing.T) {
	c := newTestConn()
	c.workspace[1] = &niriWorkspace{id: 1, output: "DP-1", isActive: true}
	c.workspace[2] = &niriWorkspace{id: 2, output: "DP-1"}
	ev, ok := c.apply(rawEvent{WorkspaceActivated: &workspaceActivated{ID: 2}})
	require.True(t, ok)
	assert.Equal(t, event.RandRNotify, ev.Kind)
	assert.False(t, c.workspace[1].isActive)
	assert.True(t, c.workspace[2].isActive)
}

func TestApplyWindowFocusChangedSetsFocusAndClearsOthers(t *testing.T) {
	c := newTestConn()
	c.windows[1] = &niriWindow{id: 1, isFocused: true}
	c.windows[2] = &niriWindow{id: 2}
	ev, ok := c.apply(rawEvent{WindowFocusChanged: &windowFocusChanged{ID: u64Ptr(2)}})
	require.True(t, ok)
	assert.Equal(t, event.EnterNotify, ev.Kind)
	assert.Equal(t, window.ID(2), ev.Window)
	assert.False(t, c.windows[1].isFocused)
	assert.True(t, c.windows[2].isFocused)
}

func TestApplyWindowFocusChangedToNoneClearsFocusAndEmitsNothing(t *testing.T) {
	c := newTestConn()
	c.windows[1] = &niriWindow{id: 1, isFocused: true}
	_, ok := c.apply(rawEvent{WindowFocusChanged: &windowFocusChanged{ID: nil}})
	assert.False(t, ok)
	assert.False(t, c.windows[1].isFocused)
}

func TestAtomInterningRoundTrips(t *testing.T) {
	c := newTestConn()
	id, err := c.Atom("_NET_WM_STATE_FULLSCREEN")
	require.NoError(t, err)
	name, err := c.LookupAtom(id)
	require.NoError(t, err)
	assert.Equal(t, display.Atom("_NET_WM_STATE_FULLSCREEN"), name)

	id2, err := c.Atom("_NET_WM_STATE_FULLSCREEN")
	require.NoError(t, err)
	assert.Equal(t, id, id2)
}

func TestSetGetPropertyRoundTrips(t *testing.T) {
	c := newTestConn()
	prop := display.Property{Kind: display.PropCardinal, Cardinal: 1}
	require.NoError(t, c.SetProperty(5, display.AtomWMHints, prop))

	got, ok, err := c.GetProperty(5, display.AtomWMHints)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, prop, got)

	_, ok, err = c.GetProperty(5, display.AtomWMClass)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestQueryTreeListsTrackedWindows(t *testing.T) {
	c := newTestConn()
	c.windows[1] = &niriWindow{id: 1}
	c.windows[2] = &niriWindow{id: 2}
	ids, err := c.QueryTree(0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []window.ID{1, 2}, ids)
}

func TestShouldManageAndShouldFloatDefaults(t *testing.T) {
	c := newTestConn()
	assert.True(t, c.ShouldManage(1))
	assert.False(t, c.ShouldFloat(1, []string{"Xmessage"}))
}
