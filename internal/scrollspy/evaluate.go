package scrollspy

import "github.com/karthikurao/portfolio/internal/sections"

// Query is a geometry snapshot sent by a client that cannot run the
// resolver itself. Give either Sections (viewport-relative) or Extents
// (page coordinates); Path selects route resolution when it is not the
// scroll route.
type Query struct {
	Path     string            `json:"path,omitempty"`
	Viewport Viewport          `json:"viewport"`
	Sections map[string]Bounds `json:"sections,omitempty"`
	Extents  []Extent          `json:"extents,omitempty"`
	Previous string            `json:"previous,omitempty"`
}

type Result struct {
	Active  string             `json:"active"`
	Changed bool               `json:"changed"`
	ByRoute bool               `json:"by_route"`
	Samples []VisibilitySample `json:"samples,omitempty"`
}

// Evaluate runs one stateless resolution for q.
func Evaluate(reg *sections.Registry, opts Options, q Query) Result {
	prev := q.Previous
	if !reg.Has(prev) {
		prev = ""
	}

	if q.Path != "" && q.Path != sections.ScrollRoute {
		active := RouteActive(reg, q.Path)
		return Result{Active: active, Changed: active != prev, ByRoute: true}
	}

	var g Geometry
	if len(q.Extents) > 0 {
		g = LayoutGeometry(q.Extents, q.Viewport.Height, q.Viewport.ScrollY)
	} else {
		g = StaticGeometry{View: q.Viewport, Sections: q.Sections}
	}
	samples := Sample(reg, g)
	active := Pick(reg, opts, q.Viewport.ScrollY, samples, prev)
	return Result{Active: active, Changed: active != prev, Samples: samples}
}
