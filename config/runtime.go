package config

// Runtime is the immutable configuration the rest of the core consumes
// after boot: a Boot config converted exactly once via
// Boot.IntoRuntime. Fields are unexported and reached through accessor
// methods, matching ToaruConfig's read-only surface after construction.
type Runtime struct {
	workspaces          []WorkspaceSpec
	layouts             []string
	floatClasses        []string
	borderPx            uint32
	gapPx               uint32
	focusFollowsPointer bool
	colors              Colors
	keybinds            map[string]string
	mousebinds          map[string]string
	displayBackend      string
	keys                *KV
}

// Workspaces are the workspaces to seed the desktop with at boot.
func (r *Runtime) Workspaces() []WorkspaceSpec { return r.workspaces }

// Layouts names the layouts available to the desktop, in ring order.
func (r *Runtime) Layouts() []string { return r.layouts }

// FloatClasses lists window classes that always start off-layout.
func (r *Runtime) FloatClasses() []string { return r.floatClasses }

// BorderPx is the window border thickness in pixels.
func (r *Runtime) BorderPx() uint32 { return r.borderPx }

// GapPx is the inter-window gap in pixels.
func (r *Runtime) GapPx() uint32 { return r.gapPx }

// FocusFollowsPointer reports whether keyboard focus should follow the
// pointer on EnterNotify.
func (r *Runtime) FocusFollowsPointer() bool { return r.focusFollowsPointer }

// Colors are the three configured border colors.
func (r *Runtime) Colors() Colors { return r.colors }

// Keybinds maps a bound action name (e.g. "focus_next") to the key
// combination string that triggers it (e.g. "M-j"), still unparsed;
// the manager resolves these against a live Keymap.
func (r *Runtime) Keybinds() map[string]string { return r.keybinds }

// Mousebinds maps a bound action name to its mouse combination string
// (e.g. "M-Button1"), same deferred-parsing shape as Keybinds.
func (r *Runtime) Mousebinds() map[string]string { return r.mousebinds }

// DisplayBackend names which display.Connector implementation to use:
// "x11" or "wayland".
func (r *Runtime) DisplayBackend() string { return r.displayBackend }

// Keys is the arbitrary typed key-value store for settings not named
// by any other Runtime field.
func (r *Runtime) Keys() *KV { return r.keys }
