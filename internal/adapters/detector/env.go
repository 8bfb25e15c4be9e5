// Package detector selects the log format from the invoking environment.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents the log rendering mode.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModePretty forces colored human readable lines.
	ModePretty
	// ModeJSON forces one JSON object per log record.
	ModeJSON
)

// String returns the flag spelling of the mode.
func (m OutputMode) String() string {
	switch m {
	case ModePretty:
		return "pretty"
	case ModeJSON:
		return "json"
	default:
		return "auto"
	}
}

// Probe reports facts about the invoking environment.
type Probe struct {
	IsTerminal func(fd int) bool
	Getenv     func(key string) string
	Fd         uintptr
}

// SystemProbe inspects the real process stderr and environment.
func SystemProbe() Probe {
	return Probe{
		IsTerminal: term.IsTerminal,
		Getenv:     os.Getenv,
		Fd:         os.Stderr.Fd(),
	}
}

// DetectEnvironment returns the recommended mode. CI runs whose stderr is not a terminal
// log JSON, everything else logs pretty lines.
func DetectEnvironment(p Probe) OutputMode {
	isTTY := p.IsTerminal(int(p.Fd))

	ci := p.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if isCI && !isTTY {
		return ModeJSON
	}
	return ModePretty
}

// ResolveMode applies the user's flag to the detected mode.
// userFlag should be one of: "auto", "pretty", "json", or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "pretty":
		return ModePretty
	case "json":
		return ModeJSON
	default:
		return autoDetected
	}
}
