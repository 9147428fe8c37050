package components

import (
	"github.com/automoto/timeslip/assets/animations"
	"github.com/automoto/timeslip/config"
	"github.com/yohamta/donburi"
)

type AnimationData struct {
	CurrentAnimation *animations.Animation
	CurrentSheet     config.StateID
	Animations       map[config.StateID]*animations.Animation
}

// animationState is the snapshot handed out by CloneState.
type animationState struct {
	sheet  config.StateID
	cursor animations.Cursor
}

func NewAnimationData(key string) *AnimationData {
	a := &AnimationData{
		Animations: make(map[config.StateID]*animations.Animation),
	}
	for state, def := range config.CharacterAnimations[key] {
		a.Animations[state] = animations.NewAnimation(def.First, def.Last, def.Step, def.FrameDuration)
	}
	a.SetAnimation(config.Idle)
	return a
}

func (a *AnimationData) SetAnimation(state config.StateID) {
	if a.CurrentSheet == state && (a.CurrentAnimation != nil || a.Animations[state] == nil) {
		return
	}

	anim, ok := a.Animations[state]
	if ok {
		if a.CurrentAnimation != anim {
			a.CurrentAnimation = anim
			a.CurrentSheet = state
			a.CurrentAnimation.Restart()
		}
	} else {
		// No animation for this state, clear current
		a.CurrentAnimation = nil
		a.CurrentSheet = state
	}
}

func (a *AnimationData) Update(dt float64) {
	if a.CurrentAnimation != nil {
		a.CurrentAnimation.Update(dt)
	}
}

func (a *AnimationData) Frame() int {
	if a.CurrentAnimation == nil {
		return 0
	}
	return a.CurrentAnimation.Frame()
}

func (a *AnimationData) CloneState() any {
	s := animationState{sheet: a.CurrentSheet}
	if a.CurrentAnimation != nil {
		s.cursor = a.CurrentAnimation.Cursor()
	}
	return s
}

func (a *AnimationData) RestoreState(state any) {
	s, ok := state.(animationState)
	if !ok {
		return
	}
	a.CurrentSheet = s.sheet
	a.CurrentAnimation = a.Animations[s.sheet]
	if a.CurrentAnimation != nil {
		a.CurrentAnimation.Seek(s.cursor)
	}
}

var Animation = donburi.NewComponentType[AnimationData]()
