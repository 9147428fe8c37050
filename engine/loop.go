package engine

import (
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// TickFunc runs once per loop tick before the simulation advances. It is
// where scene scripts read input and request rewinds.
type TickFunc func(s *Simulation, dt float64)

// GameLoop drives a simulation from a wall-clock ticker when no renderer
// owns the frame pacing.
type GameLoop struct {
	sim      *Simulation
	tickRate int
	onTick   TickFunc
	running  atomic.Bool
	stopOnce sync.Once
	stopChan chan struct{}
}

func NewGameLoop(sim *Simulation, tickRate int, onTick TickFunc) *GameLoop {
	if tickRate < 1 {
		tickRate = 60
	}
	return &GameLoop{
		sim:      sim,
		tickRate: tickRate,
		onTick:   onTick,
		stopChan: make(chan struct{}),
	}
}

// Run blocks until Stop is called.
func (g *GameLoop) Run() {
	g.running.Store(true)
	defer g.running.Store(false)
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	log.Printf("Game loop started at %d ticks/second", g.tickRate)

	last := time.Now()
	for {
		select {
		case <-g.stopChan:
			log.Println("Game loop stopped")
			return
		case now := <-ticker.C:
			g.tick(now.Sub(last).Seconds())
			last = now
		}
	}
}

// RunTicks runs n ticks of exactly one tick period each without waiting on
// the wall clock.
func (g *GameLoop) RunTicks(n int) {
	dt := 1 / float64(g.tickRate)
	for i := 0; i < n; i++ {
		g.tick(dt)
	}
}

// Stop ends Run. It is safe to call more than once and from any goroutine.
func (g *GameLoop) Stop() {
	g.stopOnce.Do(func() { close(g.stopChan) })
}

func (g *GameLoop) Running() bool {
	return g.running.Load()
}

func (g *GameLoop) tick(dt float64) {
	if g.onTick != nil {
		g.onTick(g.sim, dt)
	}
	g.sim.Advance(dt)
}
