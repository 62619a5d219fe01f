// SPDX-License-Identifier: Unlicense OR MIT

// Package config holds the tunables of menus and the per-mode
// defaults, and loads them from TOML files.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the configuration of an application's menus.
type Config struct {
	// Mode selects the platform look whose defaults apply.
	Mode string `toml:"mode"`
	// MenuType overrides the menu type of the mode.
	MenuType string `toml:"menu_type"`
	// Animate disables all menu animations when false.
	Animate bool `toml:"animate"`
	// Duration of a full open or close animation.
	Duration Duration `toml:"duration"`
	// MaxEdgeStart is the distance in pixels from the menu's edge
	// within which a swipe may open a closed menu.
	MaxEdgeStart float32 `toml:"max_edge_start"`
	// SwipeSlop is the distance in pixels a swipe travels before it
	// captures input.
	SwipeSlop float32             `toml:"swipe_slop"`
	Keyboard  Keyboard            `toml:"keyboard"`
	Modes     map[string]ModeSpec `toml:"modes"`
}

// ModeSpec holds the defaults of a mode.
type ModeSpec struct {
	MenuType string `toml:"menu_type"`
}

// Keyboard configures the fallback polling for virtual keyboard
// dismissal.
type Keyboard struct {
	PollInterval Duration `toml:"poll_interval"`
	MaxChecks    int      `toml:"max_checks"`
}

// Duration is a time.Duration in TOML's string form, such as "280ms".
type Duration struct {
	time.Duration
}

// Modes.
const (
	ModeIOS = "ios"
	ModeMD  = "md"
	ModeWP  = "wp"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Mode:         ModeMD,
		Animate:      true,
		Duration:     Duration{280 * time.Millisecond},
		MaxEdgeStart: 50,
		SwipeSlop:    10,
		Keyboard: Keyboard{
			PollInterval: Duration{150 * time.Millisecond},
			MaxChecks:    100,
		},
		Modes: map[string]ModeSpec{
			ModeIOS: {MenuType: "reveal"},
			ModeMD:  {MenuType: "overlay"},
			ModeWP:  {MenuType: "overlay"},
		},
	}
}

// Load reads the TOML file at path on top of the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	cfg, err := Parse(string(data))
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a TOML document on top of the defaults and validates
// the result. Unknown keys are errors.
func Parse(doc string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(doc, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parse: %w", err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first inconsistency of c.
func (c Config) Validate() error {
	if _, ok := c.Modes[c.Mode]; !ok {
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	if c.ResolvedMenuType() == "" {
		return fmt.Errorf("mode %q has no menu type", c.Mode)
	}
	if c.Duration.Duration < 0 {
		return fmt.Errorf("negative duration %v", c.Duration)
	}
	if c.MaxEdgeStart < 0 {
		return fmt.Errorf("negative max_edge_start %v", c.MaxEdgeStart)
	}
	if c.SwipeSlop < 0 {
		return fmt.Errorf("negative swipe_slop %v", c.SwipeSlop)
	}
	if c.Keyboard.PollInterval.Duration <= 0 {
		return fmt.Errorf("keyboard poll_interval must be positive")
	}
	if c.Keyboard.MaxChecks <= 0 {
		return fmt.Errorf("keyboard max_checks must be positive")
	}
	return nil
}

// ResolvedMenuType returns MenuType, or the menu type of the mode.
func (c Config) ResolvedMenuType() string {
	if c.MenuType != "" {
		return c.MenuType
	}
	return c.Modes[c.Mode].MenuType
}

// AnimationDuration returns the duration menus animate with, zero when
// animations are disabled.
func (c Config) AnimationDuration() time.Duration {
	if !c.Animate {
		return 0
	}
	return c.Duration.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}
