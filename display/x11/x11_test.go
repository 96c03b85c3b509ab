package x11

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/stretchr/testify/assert"

	"github.com/patrislav/marwind/bindings"
)

func TestButtonCodeRoundTrip(t *testing.T) {
	cases := map[bindings.ButtonIndex]xproto.Button{
		bindings.ButtonLeft:       1,
		bindings.ButtonMiddle:     2,
		bindings.ButtonRight:      3,
		bindings.ButtonScrollUp:   4,
		bindings.ButtonScrollDown: 5,
	}
	for idx, want := range cases {
		assert.Equal(t, want, buttonCode(idx))
	}
}

func TestButtonToMousebind(t *testing.T) {
	mb := buttonToMousebind(uint16(bindings.ModMaskShift), 3, bindings.MousePress)
	assert.Equal(t, bindings.ButtonRight, mb.Button)
	assert.Equal(t, bindings.MousePress, mb.Kind)
	assert.Equal(t, bindings.ModMask(bindings.ModMaskShift), mb.Mask)
}

func TestDecodeU32(t *testing.T) {
	b := []byte{1, 0, 0, 0, 2, 0, 0, 0}
	got := decodeU32(b)
	assert.Equal(t, []uint32{1, 2}, got)
}

func TestDecodeU16(t *testing.T) {
	b := []byte{1, 0, 2, 0}
	got := decodeU16(b)
	assert.Equal(t, []uint16{1, 2}, got)
}

func TestSplitNUL(t *testing.T) {
	got := splitNUL([]byte("xterm\x00XTerm"))
	assert.Equal(t, []string{"xterm", "XTerm"}, got)
}

func TestSplitNULTrailingNUL(t *testing.T) {
	got := splitNUL([]byte("foo\x00"))
	assert.Equal(t, []string{"foo"}, got)
}

func TestFirstOrZero(t *testing.T) {
	assert.Equal(t, uint32(0), firstOrZero(nil))
	assert.Equal(t, uint32(7), firstOrZero([]uint32{7, 8}))
}

func TestAppendU32(t *testing.T) {
	got := appendU32(nil, 1)
	assert.Equal(t, []byte{1, 0, 0, 0}, got)
}
