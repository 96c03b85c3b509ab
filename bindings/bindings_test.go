package bindings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrislav/marwind/geometry"
)

func TestScenario4ParseKeybind(t *testing.T) {
	// Keymap contains Down -> 116, per spec.md Scenario 4.
	km := NewKeymap(8, 1, nil)
	km.codesBySym[keysymByName["Down"]] = []KeyCode{116}

	kb, err := ParseKeybind(km, "M-S-Down")
	require.NoError(t, err)
	assert.Equal(t, KeyCode(116), kb.Code)
	assert.Equal(t, ModMaskMeta|ModMaskShift, kb.Mask)
}

func TestParseKeybindUnknownKeyErrors(t *testing.T) {
	km := NewKeymap(8, 1, nil)
	_, err := ParseKeybind(km, "M-Nonexistent")
	assert.Error(t, err)
}

func TestNewKeymapGroupsByKeycode(t *testing.T) {
	// keycode 10 -> ['1'], keycode 11 -> ['2']; the zero second entries
	// are skipped.
	syms := []KeySym{keysymByName["1"], 0, keysymByName["2"], 0}
	km := NewKeymap(10, 2, syms)

	code, ok := km.LookupName("1")
	require.True(t, ok)
	assert.Equal(t, KeyCode(10), code)

	code, ok = km.LookupName("2")
	require.True(t, ok)
	assert.Equal(t, KeyCode(11), code)
}

func TestKeybindRegistry(t *testing.T) {
	r := NewKeybindRegistry()
	kb := Keybind{Mask: ModMaskAlt, Code: 38}

	ran := false
	r.Bind(kb, func() { ran = true })

	action, ok := r.Lookup(kb)
	require.True(t, ok)
	action()
	assert.True(t, ran)

	r.Unbind(kb)
	_, ok = r.Lookup(kb)
	assert.False(t, ok)
}

func TestMousebindRegistryDragBookkeeping(t *testing.T) {
	r := NewMousebindRegistry()
	var lastPt geometry.Point[int, geometry.Logical]
	action := func(pt geometry.Point[int, geometry.Logical]) { lastPt = pt }

	_, ok := r.HeldButton()
	assert.False(t, ok)

	r.BeginDrag(ButtonLeft, action)
	held, ok := r.HeldButton()
	require.True(t, ok)
	assert.Equal(t, ButtonLeft, held)

	heldAction, ok := r.HeldAction()
	require.True(t, ok)
	heldAction(geometry.Point[int, geometry.Logical]{X: 5, Y: 7})
	assert.Equal(t, 5, lastPt.X)

	r.EndDrag()
	_, ok = r.HeldButton()
	assert.False(t, ok)
}
