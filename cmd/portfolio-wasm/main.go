//go:build js && wasm

// Command portfolio-wasm runs the page's client side: scroll-spy
// highlighting, the custom cursor and the particle background. Build it
// with `go generate ./internal/server`.
package main

import (
	"math/rand"
	"strconv"
	"strings"
	"syscall/js"
	"time"

	"github.com/karthikurao/portfolio/internal/cursor"
	"github.com/karthikurao/portfolio/internal/particles"
	"github.com/karthikurao/portfolio/internal/scrollspy"
	"github.com/karthikurao/portfolio/internal/sections"
)

const backToTopOffset = 300

var (
	window   = js.Global()
	document = window.Get("document")
)

func main() {
	body := document.Get("body")

	reg, err := registryFromNav()
	if err != nil {
		window.Get("console").Call("error", "portfolio: "+err.Error())
		return
	}
	opts := scrollspy.Options{
		TopThreshold: dataFloat(body, "topThreshold", scrollspy.DefaultTopThreshold),
		TieEpsilon:   dataFloat(body, "tieEpsilon", scrollspy.DefaultTieEpsilon),
	}

	var pipeline *scrollspy.Pipeline
	if window.Get("location").Get("pathname").String() == sections.ScrollRoute {
		resolver := scrollspy.NewResolver(reg, opts)
		resolver.State().Subscribe(highlight)
		resolver.State().Subscribe(reportActive)
		pipeline = scrollspy.NewPipeline(reg, domGeometry{}, resolver, windowEvents{})
		pipeline.Mount()
		window.Call("addEventListener", "pagehide", js.FuncOf(func(js.Value, []js.Value) any {
			pipeline.Unmount()
			return nil
		}))
	}

	c := newCursorView()
	bg := newBackground()
	backToTop := document.Call("getElementById", "back-to-top")
	if !backToTop.IsNull() {
		backToTop.Call("addEventListener", "click", js.FuncOf(func(js.Value, []js.Value) any {
			window.Call("scrollTo", map[string]any{"top": 0, "behavior": "smooth"})
			return nil
		}))
	}

	last := time.Now()
	var frame js.Func
	frame = js.FuncOf(func(js.Value, []js.Value) any {
		now := time.Now()
		dt := now.Sub(last).Seconds()
		last = now

		if pipeline != nil {
			pipeline.Frame()
		}
		if !backToTop.IsNull() {
			backToTop.Set("hidden", window.Get("scrollY").Float() <= backToTopOffset)
		}
		c.step(dt)
		bg.step(dt)
		window.Call("requestAnimationFrame", frame)
		return nil
	})
	window.Call("requestAnimationFrame", frame)

	select {}
}

// registryFromNav rebuilds the section registry from the rendered nav
// links. Links into the page ("/#id") are sampled, the rest are page-only.
func registryFromNav() (*sections.Registry, error) {
	links := document.Call("querySelectorAll", ".nav-link[data-section]")
	var list []sections.Section
	for i := 0; i < links.Length(); i++ {
		a := links.Index(i)
		href := a.Call("getAttribute", "href").String()
		list = append(list, sections.Section{
			ID:       a.Get("dataset").Get("section").String(),
			Label:    strings.TrimSpace(a.Get("textContent").String()),
			Route:    href,
			PageOnly: !strings.HasPrefix(href, "/#"),
		})
	}
	return sections.New(list)
}

func dataFloat(el js.Value, key string, def float64) float64 {
	v := el.Get("dataset").Get(key)
	if v.IsUndefined() {
		return def
	}
	f, err := strconv.ParseFloat(v.String(), 64)
	if err != nil {
		return def
	}
	return f
}

type domGeometry struct{}

func (domGeometry) Viewport() scrollspy.Viewport {
	h := window.Get("innerHeight").Float()
	if h == 0 {
		h = document.Get("documentElement").Get("clientHeight").Float()
	}
	return scrollspy.Viewport{Height: h, ScrollY: window.Get("scrollY").Float()}
}

func (domGeometry) Bounds(id string) (scrollspy.Bounds, bool) {
	el := document.Call("getElementById", id)
	if el.IsNull() {
		return scrollspy.Bounds{}, false
	}
	rect := el.Call("getBoundingClientRect")
	return scrollspy.Bounds{Top: rect.Get("top").Float(), Bottom: rect.Get("bottom").Float()}, true
}

// windowEvents attaches one handler to scroll and resize.
type windowEvents struct{}

func (windowEvents) Listen(fn func()) func() {
	handler := js.FuncOf(func(js.Value, []js.Value) any {
		fn()
		return nil
	})
	passive := map[string]any{"passive": true}
	window.Call("addEventListener", "scroll", handler, passive)
	window.Call("addEventListener", "resize", handler, passive)
	return func() {
		window.Call("removeEventListener", "scroll", handler, passive)
		window.Call("removeEventListener", "resize", handler, passive)
		handler.Release()
	}
}

func highlight(active string) {
	links := document.Call("querySelectorAll", ".nav-link[data-section]")
	for i := 0; i < links.Length(); i++ {
		a := links.Index(i)
		a.Get("classList").Call("toggle", "active", a.Get("dataset").Get("section").String() == active)
	}
}

func reportActive(active string) {
	if active == "" {
		return
	}
	init := map[string]any{
		"method":    "POST",
		"headers":   map[string]any{"Content-Type": "application/json"},
		"body":      window.Get("JSON").Call("stringify", map[string]any{"section": active}),
		"keepalive": true,
	}
	window.Call("fetch", "/api/nav/active", init)
}

type cursorView struct {
	root      js.Value
	dot, ring js.Value
	follower  *cursor.Follower
	tx, ty    float64
}

func newCursorView() *cursorView {
	v := &cursorView{
		root:     document.Call("getElementById", "cursor"),
		follower: cursor.NewFollower(cursor.FollowSpring),
	}
	if v.root.IsNull() {
		return v
	}
	v.dot = v.root.Call("querySelector", ".cursor-dot")
	v.ring = v.root.Call("querySelector", ".cursor-ring")

	state := cursor.NewState()
	state.Reader().Subscribe(v.apply)
	v.apply(cursor.Default)

	window.Call("addEventListener", "mousemove", js.FuncOf(func(_ js.Value, args []js.Value) any {
		v.tx, v.ty = args[0].Get("clientX").Float(), args[0].Get("clientY").Float()
		return nil
	}))
	document.Call("addEventListener", "mouseover", js.FuncOf(func(_ js.Value, args []js.Value) any {
		state.Set(variantFor(args[0].Get("target")))
		return nil
	}))
	return v
}

func variantFor(target js.Value) cursor.Variant {
	if target.IsNull() || target.IsUndefined() || target.Get("closest").IsUndefined() {
		return cursor.Default
	}
	switch {
	case !target.Call("closest", "input, textarea").IsNull():
		return cursor.TextInput
	case !target.Call("closest", "button, .button").IsNull():
		return cursor.ButtonHover
	case !target.Call("closest", "a").IsNull():
		return cursor.LinkHover
	}
	return cursor.Default
}

func (v *cursorView) apply(variant cursor.Variant) {
	a := variant.Appearance()
	v.dot.Get("style").Set("transform", "translate(-50%, -50%) scale("+ftoa(a.DotScale)+")")
	v.dot.Get("style").Set("opacity", ftoa(a.DotOpacity))
	v.ring.Get("style").Set("transform", "translate(-50%, -50%) scale("+ftoa(a.RingScale)+")")
	v.ring.Get("style").Set("opacity", ftoa(a.RingOpacity))
	v.ring.Get("style").Set("borderWidth", ftoa(a.RingBorder)+"px")
}

func (v *cursorView) step(dt float64) {
	if v.root.IsNull() {
		return
	}
	v.follower.Step(v.tx, v.ty, dt)
	v.root.Get("style").Set("transform", "translate("+ftoa(v.follower.X)+"px, "+ftoa(v.follower.Y)+"px)")
}

type background struct {
	canvas js.Value
	ctx    js.Value
	field  *particles.Field
	px, py float64
}

func newBackground() *background {
	b := &background{canvas: document.Call("getElementById", "particles")}
	if b.canvas.IsNull() {
		return b
	}
	b.ctx = b.canvas.Call("getContext", "2d")
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	b.field = particles.NewField(rng, particles.DefaultCount, particles.DefaultLayers, 0, 0)
	b.resize()

	window.Call("addEventListener", "resize", js.FuncOf(func(js.Value, []js.Value) any {
		b.resize()
		return nil
	}))
	window.Call("addEventListener", "mousemove", js.FuncOf(func(_ js.Value, args []js.Value) any {
		b.px = args[0].Get("clientX").Float()/window.Get("innerWidth").Float() - 0.5
		b.py = args[0].Get("clientY").Float()/window.Get("innerHeight").Float() - 0.5
		return nil
	}))
	return b
}

func (b *background) resize() {
	w, h := window.Get("innerWidth").Float(), window.Get("innerHeight").Float()
	b.canvas.Set("width", w)
	b.canvas.Set("height", h)
	b.field.Resize(w, h)
}

func (b *background) step(dt float64) {
	if b.canvas.IsNull() {
		return
	}
	b.field.Step(dt)
	b.ctx.Call("clearRect", 0, 0, b.field.Width, b.field.Height)
	for _, p := range b.field.Particles {
		dx, dy := particles.LayerOffset(p.Layer, b.field.Layers, b.px, b.py)
		x := p.X/100*b.field.Width + dx
		y := p.Y/100*b.field.Height + dy
		b.ctx.Set("globalAlpha", p.Opacity)
		b.ctx.Set("fillStyle", p.Color)
		b.ctx.Call("beginPath")
		b.ctx.Call("arc", x, y, p.Size/2, 0, 6.283185307179586)
		b.ctx.Call("fill")
	}
}

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', 3, 64) }
