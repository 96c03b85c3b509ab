package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBootIntoRuntime(t *testing.T) {
	boot := DefaultBoot()
	rt, err := boot.IntoRuntime()
	require.NoError(t, err)

	assert.Len(t, rt.Workspaces(), 3)
	assert.Equal(t, []string{"tiled", "floating"}, rt.Layouts())
	assert.Equal(t, uint32(2), rt.BorderPx())
	assert.True(t, rt.FocusFollowsPointer())
	assert.Equal(t, Color(0xdddddd), rt.Colors().Focused)
	assert.Equal(t, Color(0x555555), rt.Colors().Unfocused)
	assert.Equal(t, Color(0xee0000), rt.Colors().Urgent)

	v, ok := KVGet[float32](rt.Keys(), "main_ratio_inc")
	require.True(t, ok)
	assert.InDelta(t, 0.05, v, 1e-6)
}

func TestValidateRejectsEmptyWorkspacesOrLayouts(t *testing.T) {
	boot := DefaultBoot()
	boot.Workspaces = nil
	assert.Error(t, boot.Validate())

	boot = DefaultBoot()
	boot.Layouts = nil
	assert.Error(t, boot.Validate())
}

func TestApplyDefaultsFillsOnlyUnsetFields(t *testing.T) {
	boot := &Boot{BorderPx: 10}
	boot.applyDefaults()

	assert.Equal(t, uint32(10), boot.BorderPx)
	assert.Len(t, boot.Workspaces, 3)
	assert.Equal(t, "info", boot.LogLevel)
	assert.Equal(t, "x11", boot.DisplayBackend)
}

func TestColorRoundTrip(t *testing.T) {
	c, err := ParseColor("#dddddd")
	require.NoError(t, err)
	r, g, b := c.RGB()
	assert.Equal(t, uint8(0xdd), r)
	assert.Equal(t, uint8(0xdd), g)
	assert.Equal(t, uint8(0xdd), b)
	assert.Equal(t, "#dddddd", c.String())
}

func TestParseColorInvalidHex(t *testing.T) {
	_, err := ParseColor("not-a-color")
	assert.Error(t, err)
}

func TestKVInsertGetRemove(t *testing.T) {
	kv := NewKV()
	kv.Insert("count", 42)

	v, ok := KVGet[int](kv, "count")
	require.True(t, ok)
	assert.Equal(t, 42, v)

	_, ok = KVGet[string](kv, "count")
	assert.False(t, ok, "wrong type assertion should fail, not panic")

	kv.Remove("count")
	_, ok = KVGet[int](kv, "count")
	assert.False(t, ok)
}
