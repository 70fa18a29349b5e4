package scrollspy

import (
	"context"
	"sync"
	"time"

	"github.com/karthikurao/portfolio/internal/sections"
)

// EventSource delivers scroll and resize notifications. Listen returns the
// function that detaches fn.
type EventSource interface {
	Listen(fn func()) (release func())
}

// Pipeline samples and resolves at most once per frame. Scroll and resize
// events only mark it dirty; Frame does the work.
type Pipeline struct {
	reg      *sections.Registry
	geom     Geometry
	resolver *Resolver
	events   EventSource

	// frame serializes passes; mu guards the fields below it and is never
	// held while the resolver notifies subscribers.
	frame   sync.Mutex
	mu      sync.Mutex
	mounted bool
	dirty   bool
	release func()
	passes  int
}

// NewPipeline wires a sampler and resolver to a geometry source. events
// may be nil when the caller invalidates the pipeline itself.
func NewPipeline(reg *sections.Registry, g Geometry, r *Resolver, events EventSource) *Pipeline {
	return &Pipeline{reg: reg, geom: g, resolver: r, events: events}
}

func (p *Pipeline) Resolver() *Resolver { return p.resolver }

// Mount attaches to the event source and schedules an initial pass.
func (p *Pipeline) Mount() {
	p.mu.Lock()
	if p.mounted {
		p.mu.Unlock()
		return
	}
	p.mounted = true
	p.dirty = true
	p.mu.Unlock()

	if p.events == nil {
		return
	}
	release := p.events.Listen(p.Invalidate)

	p.mu.Lock()
	if p.mounted && p.release == nil {
		p.release = release
		release = nil
	}
	p.mu.Unlock()
	if release != nil {
		// unmounted while attaching
		release()
	}
}

// Unmount detaches from the event source. Frames after Unmount do nothing.
func (p *Pipeline) Unmount() {
	p.mu.Lock()
	release := p.release
	p.mounted = false
	p.dirty = false
	p.release = nil
	p.mu.Unlock()

	if release != nil {
		release()
	}
}

func (p *Pipeline) Mounted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mounted
}

// Invalidate records that geometry may have changed.
func (p *Pipeline) Invalidate() {
	p.mu.Lock()
	if p.mounted {
		p.dirty = true
	}
	p.mu.Unlock()
}

// Frame runs one sampling and resolution pass if the pipeline is mounted
// and dirty. It reports whether a pass ran.
func (p *Pipeline) Frame() bool {
	p.frame.Lock()
	defer p.frame.Unlock()

	p.mu.Lock()
	if !p.mounted || !p.dirty {
		p.mu.Unlock()
		return false
	}
	p.dirty = false
	p.passes++
	p.mu.Unlock()

	vp := p.geom.Viewport()
	p.resolver.Resolve(vp.ScrollY, SampleAt(p.reg, p.geom, vp))
	return true
}

// Passes is the number of resolution passes run so far.
func (p *Pipeline) Passes() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.passes
}

// Run mounts the pipeline and calls Frame on every tick until ctx is done
// or frames is closed, then unmounts.
func (p *Pipeline) Run(ctx context.Context, frames <-chan time.Time) error {
	p.Mount()
	defer p.Unmount()
	p.Frame()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-frames:
			if !ok {
				return nil
			}
			p.Frame()
		}
	}
}
