// Package config holds the one-shot boot-time configuration and the
// immutable Runtime form it's converted into: a boot configuration is
// loaded once (file plus environment overrides via viper) and consumed
// into Runtime, which is what the rest of the core actually reads.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/patrislav/marwind/errs"
)

// WorkspaceSpec names one workspace to seed the desktop with at boot: its
// name, the output index it should start bound to, and the layouts
// available to it in ring order.
type WorkspaceSpec struct {
	Name    string   `mapstructure:"name"`
	Output  int      `mapstructure:"output"`
	Layouts []string `mapstructure:"layouts"`
}

// ColorSpec carries the three border colors as hex strings, the shape
// viper/mapstructure can decode from a config file.
type ColorSpec struct {
	Focused   string `mapstructure:"focused"`
	Unfocused string `mapstructure:"unfocused"`
	Urgent    string `mapstructure:"urgent"`
}

// Boot is the raw, boot-time configuration: whatever viper decoded from
// a config file plus environment overrides, not yet validated or
// converted. Once loaded, it is consumed exactly once by IntoRuntime.
type Boot struct {
	Workspaces          []WorkspaceSpec   `mapstructure:"workspaces"`
	Layouts             []string          `mapstructure:"layouts"`
	FloatClasses        []string          `mapstructure:"float_classes"`
	BorderPx            uint32            `mapstructure:"border_px"`
	GapPx               uint32            `mapstructure:"gap_px"`
	FocusFollowsPointer bool              `mapstructure:"focus_follows_pointer"`
	Colors              ColorSpec         `mapstructure:"colors"`
	Keybinds            map[string]string `mapstructure:"keybinds"`
	Mousebinds          map[string]string `mapstructure:"mousebinds"`
	LogLevel            string            `mapstructure:"log_level"`
	DisplayBackend      string            `mapstructure:"display_backend"`
	Keys                map[string]any    `mapstructure:"keys"`
}

// DefaultBoot returns the built-in configuration the core starts from
// when no file overrides a given field: three workspaces on output 0
// cycling tiled/floating, a 2px border, no gap, focus-follows-pointer on.
func DefaultBoot() *Boot {
	layouts := []string{"tiled", "floating"}
	return &Boot{
		Workspaces: []WorkspaceSpec{
			{Name: "1", Output: 0, Layouts: layouts},
			{Name: "2", Output: 0, Layouts: layouts},
			{Name: "3", Output: 0, Layouts: layouts},
		},
		Layouts:             layouts,
		BorderPx:            2,
		GapPx:               0,
		FocusFollowsPointer: true,
		Colors: ColorSpec{
			Unfocused: "#555555",
			Focused:   "#dddddd",
			Urgent:    "#ee0000",
		},
		LogLevel:       "info",
		DisplayBackend: "x11",
		Keys: map[string]any{
			"main_ratio_inc": float32(0.05),
		},
	}
}

// applyDefaults fills b's zero-valued fields from DefaultBoot, so a
// config file only needs to override what it cares about.
// FocusFollowsPointer is left alone here, since false is a valid setting;
// Load registers its default with viper instead.
func (b *Boot) applyDefaults() {
	d := DefaultBoot()
	if len(b.Workspaces) == 0 {
		b.Workspaces = d.Workspaces
	}
	if len(b.Layouts) == 0 {
		b.Layouts = d.Layouts
	}
	if b.BorderPx == 0 {
		b.BorderPx = d.BorderPx
	}
	if b.Colors.Focused == "" {
		b.Colors.Focused = d.Colors.Focused
	}
	if b.Colors.Unfocused == "" {
		b.Colors.Unfocused = d.Colors.Unfocused
	}
	if b.Colors.Urgent == "" {
		b.Colors.Urgent = d.Colors.Urgent
	}
	if b.LogLevel == "" {
		b.LogLevel = d.LogLevel
	}
	if b.DisplayBackend == "" {
		b.DisplayBackend = d.DisplayBackend
	}
	if b.Keys == nil {
		b.Keys = d.Keys
	}
}

// Load reads configuration from path (if non-empty), or else searches
// the usual locations, merges in MARWIND_-prefixed environment
// overrides, and returns the decoded Boot config with defaults applied
// for anything left unset. A missing config file is not an error, the
// built-in defaults are used instead, the way a window manager should
// still start without one.
func Load(path string) (*Boot, error) {
	v := viper.New()
	v.SetDefault("focus_follows_pointer", DefaultBoot().FocusFollowsPointer)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("marwind")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/marwind")
		v.AddConfigPath("/etc/marwind")
	}
	v.SetEnvPrefix("MARWIND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: %w: %v", errs.ErrInvalidConfig, err)
		}
	}

	var boot Boot
	if err := v.Unmarshal(&boot); err != nil {
		return nil, fmt.Errorf("config: %w: %v", errs.ErrInvalidConfig, err)
	}
	boot.applyDefaults()
	return &boot, nil
}

// Validate checks the invariants IntoRuntime relies on: at least one
// workspace and one layout must be configured.
func (b *Boot) Validate() error {
	if len(b.Workspaces) == 0 {
		return fmt.Errorf("config: %w: workspaces is empty", errs.ErrInvalidConfig)
	}
	if len(b.Layouts) == 0 {
		return fmt.Errorf("config: %w: layouts is empty", errs.ErrInvalidConfig)
	}
	return nil
}

// LogrusLevel parses LogLevel into a logrus.Level.
func (b *Boot) LogrusLevel() (logrus.Level, error) {
	lvl, err := logrus.ParseLevel(b.LogLevel)
	if err != nil {
		return 0, fmt.Errorf("config: %w: %v", errs.ErrInvalidConfig, err)
	}
	return lvl, nil
}

// IntoRuntime consumes b into an immutable Runtime, the one-shot
// boot-to-runtime conversion the core performs at startup. b should not
// be reused afterward.
func (b *Boot) IntoRuntime() (*Runtime, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	focused, err := ParseColor(b.Colors.Focused)
	if err != nil {
		return nil, err
	}
	unfocused, err := ParseColor(b.Colors.Unfocused)
	if err != nil {
		return nil, err
	}
	urgent, err := ParseColor(b.Colors.Urgent)
	if err != nil {
		return nil, err
	}

	kv := NewKV()
	for k, v := range b.Keys {
		kv.Insert(k, v)
	}

	return &Runtime{
		workspaces:          append([]WorkspaceSpec(nil), b.Workspaces...),
		layouts:             append([]string(nil), b.Layouts...),
		floatClasses:        append([]string(nil), b.FloatClasses...),
		borderPx:            b.BorderPx,
		gapPx:               b.GapPx,
		focusFollowsPointer: b.FocusFollowsPointer,
		colors:              Colors{Focused: focused, Unfocused: unfocused, Urgent: urgent},
		keybinds:            b.Keybinds,
		mousebinds:          b.Mousebinds,
		displayBackend:      b.DisplayBackend,
		keys:                kv,
	}, nil
}
