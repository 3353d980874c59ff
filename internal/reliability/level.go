// Package reliability turns the three score slots into a trust verdict
// and explains what keeps the verdict from going higher.
package reliability

import "strings"

// Level is the coarse reliability verdict.
type Level string

const (
	LevelHigh Level = "high"
	LevelMid  Level = "mid"
	LevelLow  Level = "low"
)

// ParseLevel normalizes level labels, including the legacy Korean ones.
// Anything unrecognized is treated as low.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high", "높음":
		return LevelHigh
	case "mid", "medium", "normal", "보통", "중간":
		return LevelMid
	default:
		return LevelLow
	}
}

// SlotStatus says whether a slot holds a usable score.
type SlotStatus string

const (
	StatusMeasured   SlotStatus = "measured"
	StatusUnmeasured SlotStatus = "unmeasured"
)

// Connection is the tri-state URL connection status.
// Unknown must never be collapsed into Disconnected.
type Connection int

const (
	ConnectionUnknown Connection = iota
	ConnectionConnected
	ConnectionDisconnected
)

func (c Connection) String() string {
	switch c {
	case ConnectionConnected:
		return "connected"
	case ConnectionDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Connection) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
