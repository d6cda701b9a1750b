package quantumsim

import "fmt"

// ConfigurationError reports an invalid circuit-construction request:
// an unknown gate kind, a gate referencing a qubit the circuit does not
// own, or malformed kind-specific parameters.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return "quantumsim: " + e.Msg
}

func configErrorf(format string, args ...any) error {
	return &ConfigurationError{Msg: fmt.Sprintf(format, args...)}
}
