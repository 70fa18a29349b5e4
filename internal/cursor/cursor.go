// Package cursor holds the custom cursor's hover variant and the spring
// that makes it trail the pointer.
package cursor

import (
	"fmt"
	"math"

	"github.com/karthikurao/portfolio/internal/observe"
)

type Variant string

const (
	Default     Variant = "default"
	LinkHover   Variant = "link-hover"
	ButtonHover Variant = "button-hover"
	TextInput   Variant = "text-input"
)

func ParseVariant(s string) (Variant, error) {
	switch v := Variant(s); v {
	case Default, LinkHover, ButtonHover, TextInput:
		return v, nil
	case "":
		return Default, nil
	}
	return "", fmt.Errorf("unknown cursor variant %q", s)
}

// Appearance is how the inner dot and outer ring are drawn.
type Appearance struct {
	DotScale    float64
	DotOpacity  float64
	RingScale   float64
	RingOpacity float64
	RingBorder  float64
}

func (v Variant) Appearance() Appearance {
	switch v {
	case LinkHover, ButtonHover:
		return Appearance{DotScale: 0.4, DotOpacity: 0.7, RingScale: 1, RingOpacity: 1, RingBorder: 1.5}
	case TextInput:
		return Appearance{DotScale: 0.2, DotOpacity: 0.5}
	}
	return Appearance{DotScale: 1, DotOpacity: 1}
}

// State is the shared hover variant. Hover handlers write it, the cursor
// follower reads it.
type State struct {
	v *observe.Value[Variant]
}

func NewState() *State {
	return &State{v: observe.NewValue(Default)}
}

func (s *State) Set(v Variant) bool { return s.v.Set(v) }

func (s *State) Reader() observe.Reader[Variant] { return s.v }

// Spring parameters in the units framer-style springs use.
type Spring struct {
	Stiffness float64
	Damping   float64
	Mass      float64
}

// FollowSpring is stiff and heavily damped so the cursor barely lags.
var FollowSpring = Spring{Stiffness: 700, Damping: 30, Mass: 0.2}

const maxSubstep = 1.0 / 1000

// Follower is a point pulled towards a target by a spring on each axis.
type Follower struct {
	Spring Spring
	X, Y   float64
	vx, vy float64
}

func NewFollower(s Spring) *Follower {
	return &Follower{Spring: s}
}

// Jump places the follower at (x, y) at rest.
func (f *Follower) Jump(x, y float64) {
	f.X, f.Y, f.vx, f.vy = x, y, 0, 0
}

// Step advances the follower by dt seconds towards (tx, ty).
func (f *Follower) Step(tx, ty, dt float64) {
	if dt <= 0 || f.Spring.Mass <= 0 {
		return
	}
	n := int(math.Ceil(dt / maxSubstep))
	h := dt / float64(n)
	for i := 0; i < n; i++ {
		f.X, f.vx = f.axis(f.X, f.vx, tx, h)
		f.Y, f.vy = f.axis(f.Y, f.vy, ty, h)
	}
}

func (f *Follower) axis(x, v, target, h float64) (float64, float64) {
	a := (-f.Spring.Stiffness*(x-target) - f.Spring.Damping*v) / f.Spring.Mass
	v += a * h
	return x + v*h, v
}

// Settled reports whether the follower is within tol of the target and
// nearly still.
func (f *Follower) Settled(tx, ty, tol float64) bool {
	return math.Abs(f.X-tx) <= tol && math.Abs(f.Y-ty) <= tol &&
		math.Abs(f.vx) <= tol && math.Abs(f.vy) <= tol
}
