package scrollspy

import (
	"github.com/karthikurao/portfolio/internal/observe"
	"github.com/karthikurao/portfolio/internal/sections"
)

const (
	DefaultTopThreshold = 100.0
	DefaultTieEpsilon   = 0.1
)

type Options struct {
	// TopThreshold is the scroll offset below which the first section is
	// always active.
	TopThreshold float64
	// TieEpsilon is how close two ratios must be to count as a tie.
	TieEpsilon float64
}

func DefaultOptions() Options {
	return Options{TopThreshold: DefaultTopThreshold, TieEpsilon: DefaultTieEpsilon}
}

// Pick chooses the active section for one sampling pass. prev is returned
// when nothing is visible. Samples for ids outside reg are ignored.
func Pick(reg *sections.Registry, opts Options, scrollY float64, samples []VisibilitySample, prev string) string {
	if scrollY < opts.TopThreshold {
		if first, ok := reg.First(); ok {
			return first.ID
		}
		return prev
	}

	best := 0.0
	for _, s := range samples {
		if reg.Has(s.SectionID) && s.VisibleRatio > best {
			best = s.VisibleRatio
		}
	}
	if best <= 0 {
		return prev
	}

	pick := -1
	for i, s := range samples {
		if !reg.Has(s.SectionID) || s.VisibleRatio <= 0 {
			continue
		}
		if s.VisibleRatio < best && best-s.VisibleRatio >= opts.TieEpsilon {
			continue
		}
		if pick < 0 || higher(reg, s, samples[pick]) {
			pick = i
		}
	}
	return samples[pick].SectionID
}

// higher reports whether a sits above b on the page. Equal tops fall back
// to registry order.
func higher(reg *sections.Registry, a, b VisibilitySample) bool {
	if a.TopOffset != b.TopOffset {
		return a.TopOffset < b.TopOffset
	}
	return reg.IndexOf(a.SectionID) < reg.IndexOf(b.SectionID)
}

// Resolver owns the active section. It is the only writer of that state;
// renderers read it through State.
type Resolver struct {
	reg   *sections.Registry
	opts  Options
	state *observe.Value[string]
}

func NewResolver(reg *sections.Registry, opts Options) *Resolver {
	return &Resolver{reg: reg, opts: opts, state: observe.NewValue("")}
}

// State is the read-only view of the active section id. The empty string
// means none.
func (r *Resolver) State() observe.Reader[string] { return r.state }

func (r *Resolver) Current() string { return r.state.Get() }

func (r *Resolver) Options() Options { return r.opts }

// Resolve runs one pass and stores the result. It reports whether the
// active section changed.
func (r *Resolver) Resolve(scrollY float64, samples []VisibilitySample) (string, bool) {
	id := Pick(r.reg, r.opts, scrollY, samples, r.state.Get())
	return id, r.state.Set(id)
}

// ResolveRoute is the structural lookup used away from the scroll route.
// It never reads or writes the scroll state.
func (r *Resolver) ResolveRoute(path string) string {
	return RouteActive(r.reg, path)
}

// RouteActive returns the id of the section whose route matches path, or
// the empty string.
func RouteActive(reg *sections.Registry, path string) string {
	s, ok := reg.MatchRoute(path)
	if !ok {
		return ""
	}
	return s.ID
}
