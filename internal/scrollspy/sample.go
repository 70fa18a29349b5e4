// Package scrollspy decides which page section the navigation bar
// highlights. Geometry is sampled through the Geometry interface so the
// same code runs against the browser DOM and against synthetic layouts.
package scrollspy

import (
	"math"

	"github.com/karthikurao/portfolio/internal/sections"
)

// Bounds are the top and bottom edges of a section relative to the top of
// the viewport, in CSS pixels.
type Bounds struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

type Viewport struct {
	Height  float64 `json:"height"`
	ScrollY float64 `json:"scroll_y"`
}

// Geometry reports the live viewport and section boxes. Bounds returns
// false for sections that are not rendered.
type Geometry interface {
	Viewport() Viewport
	Bounds(id string) (Bounds, bool)
}

// VisibilitySample is one section's position at sampling time.
type VisibilitySample struct {
	SectionID    string  `json:"section_id"`
	TopOffset    float64 `json:"top_offset"`
	BottomOffset float64 `json:"bottom_offset"`
	VisibleRatio float64 `json:"visible_ratio"`
}

// Ratio is the fraction of a section's height inside a viewport of the
// given height.
func Ratio(b Bounds, viewportHeight float64) float64 {
	if b.Bottom <= 0 || b.Top >= viewportHeight {
		return 0
	}
	height := b.Bottom - b.Top
	if height <= 0 {
		return 0
	}
	visible := math.Min(b.Bottom, viewportHeight) - math.Max(b.Top, 0)
	return math.Max(0, math.Min(1, visible/height))
}

// Sample measures every sampled section of reg in registry order. Page-only
// sections and sections missing from g are skipped.
func Sample(reg *sections.Registry, g Geometry) []VisibilitySample {
	return SampleAt(reg, g, g.Viewport())
}

// SampleAt is Sample against an already measured viewport.
func SampleAt(reg *sections.Registry, g Geometry, vp Viewport) []VisibilitySample {
	vh := vp.Height
	out := make([]VisibilitySample, 0, reg.Len())
	for _, s := range reg.All() {
		if s.PageOnly {
			continue
		}
		b, ok := g.Bounds(s.ID)
		if !ok {
			continue
		}
		out = append(out, VisibilitySample{
			SectionID:    s.ID,
			TopOffset:    b.Top,
			BottomOffset: b.Bottom,
			VisibleRatio: Ratio(b, vh),
		})
	}
	return out
}

// StaticGeometry is a fixed snapshot, used by the resolve endpoint, the
// CLI and tests.
type StaticGeometry struct {
	View     Viewport          `json:"viewport"`
	Sections map[string]Bounds `json:"sections"`
}

func (g StaticGeometry) Viewport() Viewport { return g.View }

func (g StaticGeometry) Bounds(id string) (Bounds, bool) {
	b, ok := g.Sections[id]
	return b, ok
}

// Extent is a section's position in page coordinates, independent of scroll.
type Extent struct {
	ID     string  `json:"id"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// LayoutGeometry projects page extents into the viewport at scrollY.
func LayoutGeometry(extents []Extent, viewportHeight, scrollY float64) StaticGeometry {
	g := StaticGeometry{
		View:     Viewport{Height: viewportHeight, ScrollY: scrollY},
		Sections: make(map[string]Bounds, len(extents)),
	}
	for _, e := range extents {
		g.Sections[e.ID] = Bounds{Top: e.Top - scrollY, Bottom: e.Bottom - scrollY}
	}
	return g
}
