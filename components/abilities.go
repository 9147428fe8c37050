package components

import (
	"maps"
	"slices"

	"github.com/yohamta/donburi"
)

// Unlimited marks an ability that never runs out.
const Unlimited = -1

type Ability struct {
	Name string
	Uses int // remaining, Unlimited for no cap
	Max  int
	N    int // frames per use for timeReverseN
}

// AbilitiesData tracks which time abilities are granted and how many uses remain.
type AbilitiesData struct {
	abilities map[string]*Ability
}

func NewAbilitiesData() *AbilitiesData {
	return &AbilitiesData{abilities: make(map[string]*Ability)}
}

// Set grants name with uses charges. It replaces any previous grant.
func (a *AbilitiesData) Set(name string, uses int) {
	if a.abilities == nil {
		a.abilities = make(map[string]*Ability)
	}
	a.abilities[name] = &Ability{Name: name, Uses: uses, Max: uses}
}

// SetN sets the per-use amount of a granted ability.
func (a *AbilitiesData) SetN(name string, n int) {
	if ab, ok := a.abilities[name]; ok {
		ab.N = n
	}
}

// Has reports whether name is granted and has a use left.
func (a *AbilitiesData) Has(name string) bool {
	ab, ok := a.abilities[name]
	return ok && (ab.Uses == Unlimited || ab.Uses > 0)
}

// Use consumes one charge of name. It returns false, changing nothing,
// when the ability is missing or exhausted.
func (a *AbilitiesData) Use(name string) bool {
	ab, ok := a.abilities[name]
	if !ok {
		return false
	}
	if ab.Uses == Unlimited {
		return true
	}
	if ab.Uses <= 0 {
		return false
	}
	ab.Uses--
	return true
}

// Reset refills every ability to its granted amount.
func (a *AbilitiesData) Reset() {
	for _, ab := range a.abilities {
		ab.Uses = ab.Max
	}
}

// Clear revokes every ability.
func (a *AbilitiesData) Clear() {
	clear(a.abilities)
}

func (a *AbilitiesData) Get(name string) (Ability, bool) {
	ab, ok := a.abilities[name]
	if !ok {
		return Ability{}, false
	}
	return *ab, true
}

// Names returns the granted ability names in sorted order.
func (a *AbilitiesData) Names() []string {
	return slices.Sorted(maps.Keys(a.abilities))
}

var Abilities = donburi.NewComponentType[AbilitiesData]()
