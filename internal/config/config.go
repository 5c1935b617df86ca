// Package config provides YAML-based game configuration and environment
// driven server configuration.
package config

import (
	"errors"
	"fmt"
	"time"
)

// TetrisConfig contains all configuration for the game.
type TetrisConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Gravity GravityConfig `yaml:"gravity"`
	Keys    KeyConfig     `yaml:"keys"`
	Classic ClassicConfig `yaml:"classic"`
}

// BoardConfig sets the size of the play area, walls excluded.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// GravityConfig controls how often the active piece falls by itself.
type GravityConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// KeyConfig lists the terminal key names bound to each action in the TUI.
// Names follow Bubble Tea's key strings ("left", "a", "ctrl+c", " ").
type KeyConfig struct {
	Left    []string `yaml:"left"`
	Right   []string `yaml:"right"`
	Down    []string `yaml:"down"`
	Rotate  []string `yaml:"rotate"`
	Pause   []string `yaml:"pause"`
	Restart []string `yaml:"restart"`
	Back    []string `yaml:"back"`
	Quit    []string `yaml:"quit"`
}

// ClassicConfig holds the line bindings for the line-oriented front end.
// Each value is matched against a trimmed input line; the empty string
// binds a bare Enter.
type ClassicConfig struct {
	Left   string `yaml:"left"`
	Right  string `yaml:"right"`
	Down   string `yaml:"down"`
	Rotate string `yaml:"rotate"`
}

// Validate checks that the configuration can drive a game.
func (c TetrisConfig) Validate() error {
	var errs []error

	if c.Board.Width <= 0 || c.Board.Height <= 0 {
		errs = append(errs, fmt.Errorf("config: board size must be positive, got %dx%d", c.Board.Width, c.Board.Height))
	}
	if c.Gravity.Interval <= 0 {
		errs = append(errs, fmt.Errorf("config: gravity interval must be positive, got %s", c.Gravity.Interval))
	}

	seen := make(map[string]string, 4)
	for name, line := range map[string]string{
		"left":   c.Classic.Left,
		"right":  c.Classic.Right,
		"down":   c.Classic.Down,
		"rotate": c.Classic.Rotate,
	} {
		if other, dup := seen[line]; dup {
			errs = append(errs, fmt.Errorf("config: classic bindings %q and %q share input %q", other, name, line))
			continue
		}
		seen[line] = name
	}

	return errors.Join(errs...)
}
