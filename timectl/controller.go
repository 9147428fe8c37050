// Package timectl scales the passage of time globally and per body.
package timectl

import (
	"math"

	"github.com/automoto/timeslip/components"
	"github.com/tanema/gween/ease"
)

// fadeSlack absorbs float error when fixed steps sum to a fade's duration.
const fadeSlack = 1e-9

// Override is a per-body time scale. A zero Duration lasts until cleared.
type Override struct {
	Scale        float64
	Duration     float64
	Elapsed      float64
	IgnoreGlobal bool
}

// fade progress is measured on elapsed alone; curve only shapes it.
type fade struct {
	curve    ease.TweenFunc
	from     float64
	target   float64
	duration float64
	elapsed  float64
}

// Controller owns the global time scale, an optional fade toward a new global
// scale, and per-body overrides keyed by body ID. All durations are real time.
type Controller struct {
	global    float64
	fade      *fade
	overrides map[string]*Override
}

func New() *Controller {
	return &Controller{
		global:    1,
		overrides: make(map[string]*Override),
	}
}

// Global returns the current global scale.
func (c *Controller) Global() float64 {
	return c.global
}

// Fading reports whether a global fade is in flight.
func (c *Controller) Fading() bool {
	return c.fade != nil
}

// SetGlobal sets the global scale immediately and cancels any fade.
func (c *Controller) SetGlobal(scale float64) {
	c.fade = nil
	c.global = math.Max(scale, 0)
}

// FadeGlobal moves the global scale linearly to target over duration seconds.
// It replaces any fade already running. A non-positive duration applies at once.
func (c *Controller) FadeGlobal(target, duration float64) {
	target = math.Max(target, 0)
	if duration <= 0 {
		c.SetGlobal(target)
		return
	}
	c.fade = &fade{
		curve:    ease.Linear,
		from:     c.global,
		target:   target,
		duration: duration,
	}
}

// SlowOnly scales the listed bodies by scale for duration seconds (0 = until
// cleared). They stay subject to the global scale.
func (c *Controller) SlowOnly(bodies []*components.BodyData, scale, duration float64) {
	for _, b := range bodies {
		c.set(b.ID, &Override{Scale: math.Max(scale, 0), Duration: duration})
	}
}

// SlowExcept fades the whole world to scale while the listed bodies keep
// running at normal speed.
func (c *Controller) SlowExcept(bodies []*components.BodyData, scale, duration float64) {
	c.FadeGlobal(scale, duration)
	for _, b := range bodies {
		c.set(b.ID, &Override{Scale: 1, Duration: duration, IgnoreGlobal: true})
	}
}

// Clear removes the override of b, if any.
func (c *Controller) Clear(b *components.BodyData) {
	delete(c.overrides, b.ID)
}

// Reset drops every override and fade and returns the global scale to 1.
func (c *Controller) Reset() {
	clear(c.overrides)
	c.fade = nil
	c.global = 1
}

// Override returns a copy of the override active for b.
func (c *Controller) Override(b *components.BodyData) (Override, bool) {
	o, ok := c.overrides[b.ID]
	if !ok {
		return Override{}, false
	}
	return *o, true
}

// Update advances the fade and override clocks by dt seconds of real time.
func (c *Controller) Update(dt float64) {
	if f := c.fade; f != nil {
		f.elapsed += dt
		if f.elapsed >= f.duration-fadeSlack {
			c.global = f.target
			c.fade = nil
		} else {
			p := float64(f.curve(float32(f.elapsed/f.duration), 0, 1, 1))
			c.global = math.Max(f.from+(f.target-f.from)*p, 0)
		}
	}

	for id, o := range c.overrides {
		if o.Duration <= 0 {
			continue
		}
		o.Elapsed += dt
		if o.Elapsed >= o.Duration {
			delete(c.overrides, id)
		}
	}
}

// ScaleFor returns the effective time scale of b: its override scale times
// the global scale, unless the override ignores the global scale.
func (c *Controller) ScaleFor(b *components.BodyData) float64 {
	o, ok := c.overrides[b.ID]
	if !ok {
		return c.global
	}
	if o.IgnoreGlobal {
		return o.Scale
	}
	return o.Scale * c.global
}

func (c *Controller) set(id string, o *Override) {
	if id == "" {
		return
	}
	c.overrides[id] = o
}
