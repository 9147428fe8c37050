// Package telemetry writes a per-step CSV trace of a running simulation.
package telemetry

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	cfg "github.com/automoto/timeslip/config"
	"github.com/automoto/timeslip/engine"
	"github.com/gocarina/gocsv"
)

// StepRecord is one row of the trace.
type StepRecord struct {
	Step        int     `csv:"step"`
	SimTime     float64 `csv:"sim_time"`
	GlobalScale float64 `csv:"global_scale"`
	History     int     `csv:"history"`
	Particles   int     `csv:"particles"`
	PlayerX     float64 `csv:"player_x"`
	PlayerY     float64 `csv:"player_y"`
	PlayerVX    float64 `csv:"player_vx"`
	PlayerVY    float64 `csv:"player_vy"`
	Grounded    bool    `csv:"grounded"`
}

// Trace appends StepRecords to a CSV stream. A nil *Trace is a valid no-op
// trace.
type Trace struct {
	w             io.Writer
	closer        io.Closer
	every         int
	headerWritten bool
}

// Open creates the trace file at path, making parent directories as
// needed. It returns nil when path is empty (tracing disabled).
func Open(path string, every int) (*Trace, error) {
	if path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating trace directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	t := NewTrace(f, every)
	t.closer = f
	return t, nil
}

// NewTrace writes one record every `every` steps to w.
func NewTrace(w io.Writer, every int) *Trace {
	return &Trace{w: w, every: max(every, 1)}
}

// Write appends rec, emitting the header before the first row.
func (t *Trace) Write(rec StepRecord) error {
	if t == nil {
		return nil
	}

	records := []StepRecord{rec}

	if !t.headerWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, t.w); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
		t.headerWritten = true
		return nil
	}
	// Subsequent writes skip headers
	if err := gocsv.MarshalWithoutHeaders(records, t.w); err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}
	return nil
}

// Attach records sim after every `every` micro-steps.
func (t *Trace) Attach(sim *engine.Simulation) {
	if t == nil {
		return
	}
	sim.OnStep(func(s *engine.Simulation) {
		if s.Steps()%t.every != 0 {
			return
		}
		if err := t.Write(Sample(s)); err != nil {
			log.Printf("Warning: %v", err)
		}
	})
}

func (t *Trace) Close() error {
	if t == nil || t.closer == nil {
		return nil
	}
	return t.closer.Close()
}

// Sample reads the current state of sim into a record.
func Sample(s *engine.Simulation) StepRecord {
	rec := StepRecord{
		Step:        s.Steps(),
		SimTime:     float64(s.Steps()) * cfg.Time.FixedStep,
		GlobalScale: s.Time.Global(),
		History:     s.History.Len(),
		Particles:   s.Particles.Len(),
	}
	if p := s.BodyByID(cfg.Player.ID); p != nil {
		rec.PlayerX, rec.PlayerY = p.Position.X, p.Position.Y
		rec.PlayerVX, rec.PlayerVY = p.Velocity.X, p.Velocity.Y
		rec.Grounded = p.IsGrounded
	}
	return rec
}
