package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the built-in configuration: a 10x20 well,
// one gravity step per second, arrow/WASD/vim keys and the a/d/s line
// bindings.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: BoardConfig{
			Width:  10,
			Height: 20,
		},
		Gravity: GravityConfig{
			Interval: time.Second,
		},
		Keys: KeyConfig{
			Left:    []string{"left", "a", "h"},
			Right:   []string{"right", "d", "l"},
			Down:    []string{"down", "s", "j"},
			Rotate:  []string{"up", "w", "k", " "},
			Pause:   []string{"p"},
			Restart: []string{"r"},
			Back:    []string{"esc", "b"},
			Quit:    []string{"q", "ctrl+c"},
		},
		Classic: ClassicConfig{
			Left:   "a",
			Right:  "d",
			Down:   "",
			Rotate: "s",
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultTetrisYAML
}
