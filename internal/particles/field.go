// Package particles simulates the bouncing particle background. Positions
// are percentages of the container so the field survives resizes.
package particles

import (
	"fmt"
	"math"
	"math/rand"
)

const (
	DefaultCount  = 50
	DefaultLayers = 20
	// MaxParallax is the pointer offset of the front layer, in pixels.
	MaxParallax = 30.0
	// speedScale converts velocity units to percent per second.
	speedScale = 40.0
)

var colors = []string{
	"rgba(103, 232, 249, 0.7)",
	"rgba(192, 132, 252, 0.6)",
	"rgba(226, 232, 240, 0.5)",
}

type Particle struct {
	ID      string  `json:"id"`
	Layer   int     `json:"layer"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	VX      float64 `json:"vx"`
	VY      float64 `json:"vy"`
	Size    float64 `json:"size"`
	Opacity float64 `json:"opacity"`
	Color   string  `json:"color"`
}

type Field struct {
	Width     float64
	Height    float64
	Layers    int
	Particles []Particle
}

// NewField seeds count particles spread across layers. Nearer layers get
// bigger and faster particles.
func NewField(rng *rand.Rand, count, layers int, width, height float64) *Field {
	if layers < 1 {
		layers = 1
	}
	f := &Field{Width: width, Height: height, Layers: layers}
	perLayer := float64(count) / float64(layers)
	for i := 0; i < count; i++ {
		layer := int(math.Floor(float64(i)/perLayer)) % layers

		var size, opacity, speed float64
		switch layer {
		case 0:
			size = rng.Float64()*1.5 + 1.0
			opacity = rng.Float64()*0.3 + 0.2
			speed = 0.4
		case 1:
			size = rng.Float64()*2.0 + 1.5
			opacity = rng.Float64()*0.4 + 0.3
			speed = 0.6
		default:
			size = rng.Float64()*2.5 + 2.0
			opacity = rng.Float64()*0.5 + 0.4
			speed = 0.8
		}

		angle := rng.Float64() * 2 * math.Pi
		base := 1 + rng.Float64()*1.5
		f.Particles = append(f.Particles, Particle{
			ID:      fmt.Sprintf("p-%d-%d", layer, i),
			Layer:   layer,
			X:       rng.Float64()*96 + 2,
			Y:       rng.Float64()*96 + 2,
			VX:      math.Cos(angle) * base * speed,
			VY:      math.Sin(angle) * base * speed,
			Size:    size,
			Opacity: opacity,
			Color:   colors[layer%len(colors)],
		})
	}
	return f
}

func (f *Field) Resize(width, height float64) {
	f.Width, f.Height = width, height
}

// Step advances every particle by dt seconds and bounces it off the
// container edges. A zero-sized container freezes the field.
func (f *Field) Step(dt float64) {
	if f.Width <= 0 || f.Height <= 0 || dt <= 0 {
		return
	}
	for i := range f.Particles {
		p := &f.Particles[i]
		p.X += p.VX * dt * speedScale
		p.Y += p.VY * dt * speedScale

		maxX := 100 - p.Size/f.Width*100
		maxY := 100 - p.Size/f.Height*100
		p.X, p.VX = bounce(p.X, p.VX, maxX)
		p.Y, p.VY = bounce(p.Y, p.VY, maxY)
	}
}

func bounce(pos, v, max float64) (float64, float64) {
	switch {
	case pos <= 0:
		return 0, math.Abs(v)
	case pos >= max:
		return max, -math.Abs(v)
	}
	return pos, v
}

// LayerOffset is the parallax translation of a layer for a pointer at
// (px, py), each in [-0.5, 0.5] relative to the viewport centre. Layers move
// against the pointer, the front layer the most.
func LayerOffset(layer, layers int, px, py float64) (dx, dy float64) {
	if layers < 1 {
		return 0, 0
	}
	strength := float64(layer+1) / float64(layers) * MaxParallax
	clamp := func(v float64) float64 { return math.Max(-0.5, math.Min(0.5, v)) }
	return -clamp(px) * 2 * strength, -clamp(py) * 2 * strength
}
