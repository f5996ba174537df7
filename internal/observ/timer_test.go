package observ

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilTimerIsNoop(t *testing.T) {
	var tm *Timer
	idx := tm.Begin("parse")
	tm.End(idx, "")
	tm.Merge(NewTimer())
	assert.Equal(t, -1, idx)
	assert.Equal(t, Report{}, tm.Report())
}

func TestTimerMerge(t *testing.T) {
	a := NewTimer()
	a.phases = append(a.phases, Phase{Name: "parse", Dur: time.Millisecond})
	b := NewTimer()
	b.phases = append(b.phases,
		Phase{Name: "parse", Dur: 2 * time.Millisecond},
		Phase{Name: "serialize", Dur: time.Millisecond},
	)
	a.Merge(b)

	rep := a.Report()
	require.Len(t, rep.Phases, 2)
	assert.Equal(t, "parse", rep.Phases[0].Name)
	assert.InDelta(t, 3.0, rep.Phases[0].DurationMS, 1e-9)
	assert.Equal(t, "serialize", rep.Phases[1].Name)
	assert.InDelta(t, 4.0, rep.TotalMS, 1e-9)
}

func TestTimerSummary(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("repair")
	tm.End(idx, "2 steps")
	out := tm.Summary()
	assert.True(t, strings.HasPrefix(out, "timings:\n"))
	assert.Contains(t, out, "repair")
	assert.Contains(t, out, "// 2 steps")
	assert.Contains(t, out, "total")
}
