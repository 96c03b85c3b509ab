package manager

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrislav/marwind/bindings"
	"github.com/patrislav/marwind/config"
	"github.com/patrislav/marwind/display"
	"github.com/patrislav/marwind/errs"
	"github.com/patrislav/marwind/event"
	"github.com/patrislav/marwind/geometry"
	"github.com/patrislav/marwind/window"
)

// fakeConn is a minimal, in-memory display.Connector for manager tests;
// it does not implement KeymapProvider, modeling a Wayland-shaped
// backend with no grabbable keybinds.
type fakeConn struct {
	outputs []display.Output

	queryTree    []window.ID
	geoms        map[window.ID]geometry.Rectangle[int, geometry.Logical]
	shouldManage map[window.ID]bool
	shouldFloat  bool

	properties map[window.ID]map[display.Atom]display.Property
	messages   []sentMessage
	grabbedKey []bindings.Keybind
	grabbedBtn []bindings.Mousebind
	geomSets   map[window.ID]geometry.Rectangle[int, geometry.Logical]
	focused    window.ID

	pollEvents []event.Event
	pollErr    error

	pointerPos geometry.Point[int, geometry.Logical]
}

type sentMessage struct {
	id      window.ID
	msgType display.Atom
	data    [5]uint32
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		geoms:        make(map[window.ID]geometry.Rectangle[int, geometry.Logical]),
		shouldManage: make(map[window.ID]bool),
		properties:   make(map[window.ID]map[display.Atom]display.Property),
		geomSets:     make(map[window.ID]geometry.Rectangle[int, geometry.Logical]),
	}
}

func (c *fakeConn) PollNextEvent() (event.Event, bool, error) {
	if c.pollErr != nil {
		return event.Event{}, false, c.pollErr
	}
	if len(c.pollEvents) == 0 {
		return event.Event{}, false, nil
	}
	ev := c.pollEvents[0]
	c.pollEvents = c.pollEvents[1:]
	return ev, true, nil
}

func (c *fakeConn) GetRoot() (display.RootWindow, error) {
	return display.RootWindow{ID: 1}, nil
}
func (c *fakeConn) GetGeometry(id window.ID) (geometry.Rectangle[int, geometry.Logical], error) {
	return c.geoms[id], nil
}
func (c *fakeConn) QueryTree(window.ID) ([]window.ID, error) { return c.queryTree, nil }
func (c *fakeConn) QueryPointer(window.ID) (display.PointerReply, error) {
	return display.PointerReply{Pos: c.pointerPos}, nil
}
func (c *fakeConn) AllOutputs() ([]display.Output, error) { return c.outputs, nil }
func (c *fakeConn) Atom(name display.Atom) (uint32, error) { return 42, nil }
func (c *fakeConn) LookupAtom(uint32) (display.Atom, error) { return "", nil }
func (c *fakeConn) GrabKey(kb bindings.Keybind) error {
	c.grabbedKey = append(c.grabbedKey, kb)
	return nil
}
func (c *fakeConn) UngrabKey(bindings.Keybind) error { return nil }
func (c *fakeConn) GrabButton(mb bindings.Mousebind) error {
	c.grabbedBtn = append(c.grabbedBtn, mb)
	return nil
}
func (c *fakeConn) UngrabButton(bindings.Mousebind) error { return nil }
func (c *fakeConn) GrabPointer() error                    { return nil }
func (c *fakeConn) UngrabPointer() error                  { return nil }
func (c *fakeConn) MapWindow(window.ID) error              { return nil }
func (c *fakeConn) UnmapWindow(window.ID) error             { return nil }
func (c *fakeConn) DestroyWindow(window.ID) error           { return nil }
func (c *fakeConn) SetInputFocus(id window.ID) error {
	c.focused = id
	return nil
}
func (c *fakeConn) SetGeometry(id window.ID, geom geometry.Rectangle[int, geometry.Logical]) error {
	c.geomSets[id] = geom
	return nil
}
func (c *fakeConn) ConfigureWindow(window.ID, geometry.Rectangle[int, geometry.Logical], uint32) error {
	return nil
}
func (c *fakeConn) ChangeWindowAttributes(window.ID, uint32) error { return nil }
func (c *fakeConn) SetProperty(id window.ID, atom display.Atom, prop display.Property) error {
	if c.properties[id] == nil {
		c.properties[id] = make(map[display.Atom]display.Property)
	}
	c.properties[id][atom] = prop
	return nil
}
func (c *fakeConn) GetProperty(window.ID, display.Atom) (display.Property, bool, error) {
	return display.Property{}, false, nil
}
func (c *fakeConn) SendClientMessage(id window.ID, msgType display.Atom, data [5]uint32) error {
	c.messages = append(c.messages, sentMessage{id: id, msgType: msgType, data: data})
	return nil
}
func (c *fakeConn) ShouldManage(id window.ID) bool { return c.shouldManage[id] }
func (c *fakeConn) ShouldFloat(window.ID, []string) bool { return c.shouldFloat }
func (c *fakeConn) Close() error                         { return nil }

var _ display.Connector = (*fakeConn)(nil)

// fakeKeymapConn wraps fakeConn and additionally implements
// KeymapProvider, modeling an X11-shaped backend.
type fakeKeymapConn struct {
	*fakeConn
	km *bindings.Keymap
}

func (c *fakeKeymapConn) Keymap() *bindings.Keymap { return c.km }

var _ display.Connector = (*fakeKeymapConn)(nil)
var _ KeymapProvider = (*fakeKeymapConn)(nil)

func testKeymap() *bindings.Keymap {
	// codes 24-29 -> j, k, q, 1, 2, 3 (primary keysyms only).
	return bindings.NewKeymap(24, 1, []bindings.KeySym{0x006a, 0x006b, 0x0071, 0x0031, 0x0032, 0x0033})
}

func testRuntime(t *testing.T) *config.Runtime {
	t.Helper()
	boot := config.DefaultBoot()
	boot.Keybinds = map[string]string{
		"focus_next":  "M-j",
		"focus_prev":  "M-k",
		"close_window": "M-q",
	}
	boot.Mousebinds = map[string]string{
		"move_window_ptr": "M-Button1",
	}
	rt, err := boot.IntoRuntime()
	require.NoError(t, err)
	return rt
}

func newTestManager(t *testing.T, conn display.Connector) *Manager {
	t.Helper()
	m, err := New(Deps{Log: nil, Runtime: testRuntime(t), Conn: conn})
	require.NoError(t, err)
	return m
}

func TestNewActivatesFirstWorkspaceOnSoleOutput(t *testing.T) {
	conn := newFakeConn()
	conn.outputs = []display.Output{{Name: "eDP-1", Geom: rect(0, 0, 1920, 1080)}}
	m := newTestManager(t, conn)

	assert.Len(t, m.desktop.Screens(), 1)
	idx, ok := m.desktop.CurrentIdx()
	require.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.Equal(t, "1", m.desktop.CurrentName())
}

func TestNewRejectsUnknownLayoutName(t *testing.T) {
	conn := newFakeConn()
	conn.outputs = []display.Output{{Name: "eDP-1", Geom: rect(0, 0, 1920, 1080)}}
	boot := config.DefaultBoot()
	boot.Workspaces[0].Layouts = []string{"nonexistent"}
	rt, err := boot.IntoRuntime()
	require.NoError(t, err)

	_, err = New(Deps{Runtime: rt, Conn: conn})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidConfig)
}

func TestInitGathersExistingManagedWindows(t *testing.T) {
	conn := newFakeConn()
	conn.outputs = []display.Output{{Name: "eDP-1", Geom: rect(0, 0, 1920, 1080)}}
	conn.queryTree = []window.ID{10, 11}
	conn.shouldManage[10] = true
	conn.shouldManage[11] = false
	conn.geoms[10] = rect(0, 0, 800, 600)
	m := newTestManager(t, conn)

	require.NoError(t, m.Init())

	ws := m.desktop.Current()
	assert.True(t, ws.ContainsWindow(10))
	assert.False(t, ws.ContainsWindow(11))
}

func TestInitSetsEWMHProperties(t *testing.T) {
	conn := newFakeConn()
	conn.outputs = []display.Output{{Name: "eDP-1", Geom: rect(0, 0, 1920, 1080)}}
	m := newTestManager(t, conn)

	require.NoError(t, m.Init())

	root := window.ID(1)
	supported, ok := conn.properties[root][display.AtomNetSupported]
	require.True(t, ok)
	assert.Contains(t, supported.Atoms, string(display.AtomNetWMStateFullscreen))

	numDesktops, ok := conn.properties[root][display.AtomNetNumberOfDesktops]
	require.True(t, ok)
	assert.Equal(t, uint32(3), numDesktops.Cardinal)

	current, ok := conn.properties[root][display.AtomNetCurrentDesktop]
	require.True(t, ok)
	assert.Equal(t, uint32(0), current.Cardinal)
}

func TestInitWithoutKeymapProviderSkipsKeybinds(t *testing.T) {
	conn := newFakeConn()
	conn.outputs = []display.Output{{Name: "eDP-1", Geom: rect(0, 0, 1920, 1080)}}
	m := newTestManager(t, conn)

	require.NoError(t, m.Init())

	assert.Empty(t, conn.grabbedKey)
	// Mousebinds don't need a keymap and should still be grabbed.
	assert.Len(t, conn.grabbedBtn, 1)
}

func TestInitWithKeymapProviderGrabsKeybinds(t *testing.T) {
	base := newFakeConn()
	base.outputs = []display.Output{{Name: "eDP-1", Geom: rect(0, 0, 1920, 1080)}}
	conn := &fakeKeymapConn{fakeConn: base, km: testKeymap()}
	m := newTestManager(t, conn)

	require.NoError(t, m.Init())

	assert.Len(t, base.grabbedKey, 3)
}

func TestBoundKeybindActionCyclesFocusAndSetsInputFocus(t *testing.T) {
	base := newFakeConn()
	base.outputs = []display.Output{{Name: "eDP-1", Geom: rect(0, 0, 1920, 1080)}}
	base.queryTree = []window.ID{10, 11}
	base.shouldManage[10] = true
	base.shouldManage[11] = true
	base.geoms[10] = rect(0, 0, 800, 600)
	base.geoms[11] = rect(0, 0, 800, 600)
	conn := &fakeKeymapConn{fakeConn: base, km: testKeymap()}
	m := newTestManager(t, conn)
	require.NoError(t, m.Init())

	kb, err := bindings.ParseKeybind(testKeymap(), "M-j")
	require.NoError(t, err)
	action, ok := m.keybinds.Lookup(kb)
	require.True(t, ok)

	before := m.desktop.Current().Focused().ID()
	action()
	after := m.desktop.Current().Focused().ID()
	assert.NotEqual(t, before, after)
	assert.Equal(t, after, base.focused)
}

func TestCloseWindowSendsDeleteClientMessage(t *testing.T) {
	conn := newFakeConn()
	conn.outputs = []display.Output{{Name: "eDP-1", Geom: rect(0, 0, 1920, 1080)}}
	m := newTestManager(t, conn)
	m.requestClose(window.ID(99))

	require.Len(t, conn.messages, 1)
	assert.Equal(t, window.ID(99), conn.messages[0].id)
	assert.Equal(t, display.AtomWMProtocols, conn.messages[0].msgType)
}

func TestResolveKeyActionWorkspaceSwitch(t *testing.T) {
	conn := newFakeConn()
	conn.outputs = []display.Output{{Name: "eDP-1", Geom: rect(0, 0, 1920, 1080)}}
	m := newTestManager(t, conn)

	action, ok := m.resolveKeyAction("workspace_2")
	require.True(t, ok)
	action()
	assert.Equal(t, "2", m.desktop.CurrentName())
}

func TestResolveKeyActionUnknownNameFails(t *testing.T) {
	conn := newFakeConn()
	conn.outputs = []display.Output{{Name: "eDP-1", Geom: rect(0, 0, 1920, 1080)}}
	m := newTestManager(t, conn)

	_, ok := m.resolveKeyAction("not_a_real_action")
	assert.False(t, ok)
}

func TestRunExitsImmediatelyAfterQuit(t *testing.T) {
	conn := newFakeConn()
	conn.outputs = []display.Output{{Name: "eDP-1", Geom: rect(0, 0, 1920, 1080)}}
	m := newTestManager(t, conn)
	require.NoError(t, m.Init())

	m.Quit()
	require.NoError(t, m.Run())
	assert.False(t, m.ShouldRestart())
}

func TestRunReturnsFatalErrorOnConnectorDisconnect(t *testing.T) {
	conn := newFakeConn()
	conn.outputs = []display.Output{{Name: "eDP-1", Geom: rect(0, 0, 1920, 1080)}}
	m := newTestManager(t, conn)
	require.NoError(t, m.Init())

	conn.pollErr = assertErr
	err := m.Run()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrConnectorDisconnect))
}

// quitAfterNPolls wraps fakeConn so Run's loop naturally terminates once
// its queued events are drained, without a second goroutine racing the
// event loop.
type quitAfterNPolls struct {
	*fakeConn
	m     *Manager
	polls int
}

func (c *quitAfterNPolls) PollNextEvent() (event.Event, bool, error) {
	ev, ok, err := c.fakeConn.PollNextEvent()
	if !ok && err == nil {
		c.polls++
		if c.polls >= 1 {
			c.m.Quit()
		}
	}
	return ev, ok, err
}

func TestRunDispatchesQueuedEventsThenQuitsCleanly(t *testing.T) {
	base := newFakeConn()
	base.outputs = []display.Output{{Name: "eDP-1", Geom: rect(0, 0, 1920, 1080)}}
	base.geoms[55] = rect(0, 0, 400, 300)
	base.shouldManage[55] = true
	base.pollEvents = []event.Event{{Kind: event.MapRequest, Window: 55}}
	conn := &quitAfterNPolls{fakeConn: base}
	m := newTestManager(t, conn)
	conn.m = m
	require.NoError(t, m.Init())

	require.NoError(t, m.Run())
	assert.True(t, m.desktop.Current().ContainsWindow(55))
}

var assertErr = errors.New("connector gone")

func rect(x, y, w, h int) geometry.Rectangle[int, geometry.Logical] {
	return geometry.NewRectangle[int, geometry.Logical](x, y, h, w)
}
