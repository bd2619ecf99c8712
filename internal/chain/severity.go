package chain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSeverity is returned when a severity name cannot be parsed
var ErrUnknownSeverity = errors.New("unknown severity")

// Severity classifies a message's importance
type Severity int

const (
	// SeverityInfo marks routine operational messages
	SeverityInfo Severity = iota
	// SeverityDebug marks diagnostic detail
	SeverityDebug
	// SeverityError marks failures
	SeverityError
)

// String returns the upper-case tag used in console output
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityDebug:
		return "DEBUG"
	case SeverityError:
		return "ERROR"
	default:
		return fmt.Sprintf("SEVERITY(%d)", int(s))
	}
}

// IsValid reports whether s is one of the defined severities
func (s Severity) IsValid() bool {
	return s >= SeverityInfo && s <= SeverityError
}

// MarshalText implements encoding.TextMarshaler
func (s Severity) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSeverity, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSeverity parses a severity name, ignoring case and surrounding space
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "INFO":
		return SeverityInfo, nil
	case "DEBUG":
		return SeverityDebug, nil
	case "ERROR":
		return SeverityError, nil
	default:
		return SeverityInfo, fmt.Errorf("%w: %q", ErrUnknownSeverity, name)
	}
}

// AllSeverities returns the defined severities in declaration order
func AllSeverities() []Severity {
	return []Severity{SeverityInfo, SeverityDebug, SeverityError}
}
