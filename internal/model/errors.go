package model

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks structurally broken input: nil top-level objects or
// missing required structures. Data-quality problems inside well-formed
// input are reported as Issues/Anomalies instead, never as errors.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputf wraps ErrInvalidInput with caller detail.
func InvalidInputf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidInput)...)
}
