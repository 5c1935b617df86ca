// Package classic is the line-oriented front end: one command per input
// line, a fixed gravity timer, and the whole board redrawn as plain text.
package classic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/playfield"
)

// ErrUnknownCommand is returned for lines that map to no command.
var ErrUnknownCommand = errors.New("classic: unknown command")

// Keymap maps trimmed input lines to piece commands.
type Keymap map[string]playfield.Command

// DefaultKeymap returns the bindings from the default configuration.
func DefaultKeymap() Keymap {
	return KeymapFromConfig(config.DefaultTetrisConfig().Classic)
}

// KeymapFromConfig builds a keymap from the classic bindings.
func KeymapFromConfig(cfg config.ClassicConfig) Keymap {
	return Keymap{
		strings.TrimSpace(cfg.Left):   playfield.Left,
		strings.TrimSpace(cfg.Right):  playfield.Right,
		strings.TrimSpace(cfg.Down):   playfield.Down,
		strings.TrimSpace(cfg.Rotate): playfield.Rotate,
	}
}

// Parse maps one input line to a command. Surrounding whitespace is ignored.
func (k Keymap) Parse(line string) (playfield.Command, error) {
	line = strings.TrimSpace(line)
	cmd, ok := k[line]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCommand, line)
	}
	return cmd, nil
}

// Help describes the bindings, e.g. "a=Left d=Right <enter>=Down s=Rotate".
func (k Keymap) Help() string {
	parts := make([]string, 0, len(k))
	for _, cmd := range []playfield.Command{playfield.Left, playfield.Right, playfield.Down, playfield.Rotate} {
		for line, c := range k {
			if c != cmd {
				continue
			}
			if line == "" {
				line = "<enter>"
			}
			parts = append(parts, line+"="+cmd.String())
		}
	}
	return strings.Join(parts, " ")
}
