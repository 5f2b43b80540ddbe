package nn

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrConfiguration  = errors.New("invalid network configuration")
	ErrShape          = errors.New("shape mismatch")
	ErrSoftmaxZeroSum = errors.New("softmax: sum of exponentials is zero")
)

// ConfigError describes a rejected layer chain. It wraps ErrConfiguration.
type ConfigError struct {
	Index  int    // index of the offending layer, -1 for chain-level problems
	Layer  string // e.g. "FILTER 24x24x8"
	Next   string // successor description, empty when absent
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	switch {
	case e.Index < 0:
		return fmt.Sprintf("%v: %s", ErrConfiguration, e.Reason)
	case e.Next != "":
		return fmt.Sprintf("%v: layer %d (%s -> %s): %s", ErrConfiguration, e.Index, e.Layer, e.Next, e.Reason)
	default:
		return fmt.Sprintf("%v: layer %d (%s): %s", ErrConfiguration, e.Index, e.Layer, e.Reason)
	}
}

// Unwrap returns ErrConfiguration.
func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}
