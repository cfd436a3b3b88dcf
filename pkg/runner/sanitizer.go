package runner

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/caarlos0/env/v11"
)

// DefaultMaxInputSize bounds a single line read from the player.
const DefaultMaxInputSize = 4096

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// InputLimits is read from the environment on every call so tests and
// operators can tighten it without rebuilding the handler.
type InputLimits struct {
	MaxSize int `env:"TALES_MAX_INPUT_SIZE" envDefault:"4096"`
}

func currentLimits() InputLimits {
	var l InputLimits
	if err := env.Parse(&l); err != nil || l.MaxSize <= 0 {
		l.MaxSize = DefaultMaxInputSize
	}
	return l
}

// SanitizeInput rejects oversized or malformed lines and strips control
// characters. Answers are single-line, so tabs collapse to spaces and line
// breaks are dropped.
func SanitizeInput(input string) (string, error) {
	limit := currentLimits().MaxSize
	if len(input) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}
	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	if strings.IndexFunc(input, unicode.IsControl) < 0 {
		return input, nil
	}

	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t':
			return ' '
		case unicode.IsControl(r):
			return -1
		default:
			return r
		}
	}, input), nil
}
