package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// analysisClock stamps GeneratedAt on every AnalysisResult.
var analysisClock clockwork.Clock = clockwork.NewRealClock()

// SetClock replaces the clock that stamps analysis results, letting tests pin
// GeneratedAt. A nil clock restores wall time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		c = clockwork.NewRealClock()
	}
	analysisClock = c
}

// generatedAt is the UTC instant recorded on a result assembled now.
func generatedAt() time.Time {
	return analysisClock.Now().UTC()
}
