// Package bgerr defines the stable error kinds surfaced by the bgone
// pipeline, so library callers can errors.Is against them and the CLI
// can map any failure to a single exit code.
package bgerr

import (
	"errors"
	"fmt"
)

// Sentinel kinds. Wrap these with fmt.Errorf("...: %w", Kind) to attach
// context while keeping errors.Is(err, bgerr.ErrInvalidColor) working.
var (
	ErrInvalidColor       = errors.New("invalid color")
	ErrDecodeFailed       = errors.New("image decode failed")
	ErrEmptyImage         = errors.New("empty image")
	ErrInsufficientColors = errors.New("insufficient colors for requested cluster count")
	ErrEncodeFailed       = errors.New("image encode failed")
)

// Wrap attaches msg to kind, preserving errors.Is(result, kind).
func Wrap(kind error, msg string) error {
	return fmt.Errorf("%s: %w", msg, kind)
}

// Wrapf is Wrap with formatting.
func Wrapf(kind error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), kind)
}
