package game

import (
	"log/slog"
	"time"
)

// Phase is one timed part of Game.Step.
type Phase int

const (
	PhaseAdvance   Phase = iota // Engine.Advance
	PhaseTelemetry              // event recording, snapshot, window flush
	numPhases
)

func (p Phase) String() string {
	switch p {
	case PhaseAdvance:
		return "advance"
	case PhaseTelemetry:
		return "telemetry"
	}
	return "unknown"
}

// perfSamples is the number of recent ticks averaged per phase.
const perfSamples = 120

// PerfStats keeps the last perfSamples durations of each phase.
type PerfStats struct {
	samples [numPhases][perfSamples]time.Duration
	next    [numPhases]int
	count   [numPhases]int
}

// NewPerfStats creates an empty tracker.
func NewPerfStats() *PerfStats {
	return &PerfStats{}
}

// Record stores one duration for a phase, evicting the oldest when full.
func (p *PerfStats) Record(phase Phase, d time.Duration) {
	p.samples[phase][p.next[phase]] = d
	p.next[phase] = (p.next[phase] + 1) % perfSamples
	if p.count[phase] < perfSamples {
		p.count[phase]++
	}
}

// Avg returns the mean recorded duration of a phase, 0 before any sample.
func (p *PerfStats) Avg(phase Phase) time.Duration {
	n := p.count[phase]
	if n == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range p.samples[phase][:n] {
		total += d
	}
	return total / time.Duration(n)
}

// Tick returns the average time of a whole tick.
func (p *PerfStats) Tick() time.Duration {
	var total time.Duration
	for phase := Phase(0); phase < numPhases; phase++ {
		total += p.Avg(phase)
	}
	return total
}

// LogValue implements slog.LogValuer.
func (p *PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{slog.Duration("tick", p.Tick())}
	for phase := Phase(0); phase < numPhases; phase++ {
		attrs = append(attrs, slog.Duration(phase.String(), p.Avg(phase)))
	}
	return slog.GroupValue(attrs...)
}
