package formatters

import (
	"response-mapper/internal/node"
)

// EOLCriticalHours is the number of remaining hours at or below which a
// wormhole is reported as critical.
const EOLCriticalHours = 4

// End-of-life states.
const (
	EOLCritical = "critical"
	EOLFresh    = "fresh"
	EOLUnknown  = "unknown"
)

// EOLStatus classifies the remaining lifetime of a wormhole.
func EOLStatus(remainingHours int64) string {
	if remainingHours <= EOLCriticalHours {
		return EOLCritical
	}

	return EOLFresh
}

// EOL formats a remaining-hours value as an end-of-life state. Values that
// are not integral numbers yield EOLUnknown.
func EOL(value any, _ string, _ node.View) (any, error) {
	hours, ok := node.Int(value)
	if !ok {
		return EOLUnknown, nil
	}

	return EOLStatus(hours), nil
}
