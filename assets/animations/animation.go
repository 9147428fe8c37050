package animations

type Animation struct {
	First            int
	Last             int
	Step             int     // how many indices do we move per frame
	FrameDuration    float64 // seconds each frame is shown
	elapsed          float64
	frame            int
	Looped           bool
	FreezeOnComplete bool // If true, stay on last frame instead of looping
}

// Cursor is the playback position of an Animation.
type Cursor struct {
	Frame   int
	Elapsed float64
	Looped  bool
}

// Update advances playback by dt seconds of the owner's local time.
func (a *Animation) Update(dt float64) {
	if a.FrameDuration <= 0 || dt <= 0 {
		return
	}
	a.elapsed += dt
	for a.elapsed >= a.FrameDuration {
		a.elapsed -= a.FrameDuration
		a.frame += a.Step
		if a.frame > a.Last {
			a.Looped = true
			if a.FreezeOnComplete {
				// Stay on last frame
				a.frame = a.Last
			} else {
				// loop back to the beginning
				a.frame = a.First
			}
		}
	}
}

func (a *Animation) Frame() int {
	return a.frame
}

func (a *Animation) Restart() {
	a.frame = a.First
	a.elapsed = 0
	a.Looped = false
}

func (a *Animation) Cursor() Cursor {
	return Cursor{Frame: a.frame, Elapsed: a.elapsed, Looped: a.Looped}
}

func (a *Animation) Seek(c Cursor) {
	a.frame = c.Frame
	a.elapsed = c.Elapsed
	a.Looped = c.Looped
}

func NewAnimation(first, last, step int, frameDuration float64) *Animation {
	if step <= 0 {
		step = 1
	}
	return &Animation{
		First:         first,
		Last:          last,
		Step:          step,
		FrameDuration: frameDuration,
		frame:         first,
	}
}
