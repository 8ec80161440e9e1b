package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFreshLineRendersFullSpanNotDegenerate(t *testing.T) {
	l := NewLine()

	recs := l.Render(0)
	assert.Len(t, recs, 1)
	assert.NotEqual(t, recs[0].Start, recs[0].Stop)
	assert.InDelta(t, 1.0, recs[0].Stop-recs[0].Start, 1e-9)
}

func TestLineWithExplicitSpanIsUnaffected(t *testing.T) {
	l := NewLine()
	l.StartPhase = NewPhase(0.25)
	l.StopPhase = NewPhase(0.75)

	recs := l.Render(0)
	assert.InDelta(t, 0.25, recs[0].Start, 1e-9)
	assert.InDelta(t, 0.75, recs[0].Stop, 1e-9)
}
