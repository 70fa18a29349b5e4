// Package sections holds the ordered registry of page sections the
// navigation bar links to.
package sections

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyID     = errors.New("section id is empty")
	ErrDuplicateID = errors.New("duplicate section id")
	ErrEmptyRoute  = errors.New("section route is empty")
)

// ScrollRoute is the route of the single page that contains every
// non page-only section.
const ScrollRoute = "/"

// Section is one anchorable region of the page.
type Section struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
	Route string `yaml:"route" json:"route"`
	// PageOnly sections have their own route but are not rendered on the
	// scroll route, so they are never sampled.
	PageOnly bool `yaml:"page_only,omitempty" json:"page_only,omitempty"`
}

// Registry is an immutable ordered list of sections. Order is top-to-bottom
// page order.
type Registry struct {
	list  []Section
	index map[string]int
}

// New validates the sections and builds a registry from them.
func New(list []Section) (*Registry, error) {
	r := &Registry{
		list:  make([]Section, 0, len(list)),
		index: make(map[string]int, len(list)),
	}
	for _, s := range list {
		s.ID = strings.TrimSpace(s.ID)
		if s.ID == "" {
			return nil, ErrEmptyID
		}
		if _, ok := r.index[s.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, s.ID)
		}
		if s.Route == "" {
			return nil, fmt.Errorf("%w: %s", ErrEmptyRoute, s.ID)
		}
		if s.Label == "" {
			s.Label = s.ID
		}
		r.index[s.ID] = len(r.list)
		r.list = append(r.list, s)
	}
	return r, nil
}

// Default returns the registry of the portfolio page.
func Default() *Registry {
	r, err := New([]Section{
		{ID: "home", Label: "Home", Route: "/"},
		{ID: "about", Label: "About", Route: "/about"},
		{ID: "projects", Label: "Projects", Route: "/projects"},
		{ID: "skills", Label: "Skills", Route: "/skills"},
		{ID: "resume", Label: "Resume", Route: "/resume", PageOnly: true},
		{ID: "contact", Label: "Contact", Route: "/contact"},
	})
	if err != nil {
		panic(err)
	}
	return r
}

// All returns a copy of the sections in registry order.
func (r *Registry) All() []Section {
	out := make([]Section, len(r.list))
	copy(out, r.list)
	return out
}

func (r *Registry) Len() int { return len(r.list) }

// First returns the top section, or false if the registry is empty.
func (r *Registry) First() (Section, bool) {
	if len(r.list) == 0 {
		return Section{}, false
	}
	return r.list[0], true
}

func (r *Registry) Lookup(id string) (Section, bool) {
	i, ok := r.index[id]
	if !ok {
		return Section{}, false
	}
	return r.list[i], true
}

func (r *Registry) Has(id string) bool {
	_, ok := r.index[id]
	return ok
}

// IndexOf returns the registry position of id, or -1.
func (r *Registry) IndexOf(id string) int {
	if i, ok := r.index[id]; ok {
		return i
	}
	return -1
}

// MatchRoute finds the section whose route equals path or is a path prefix
// of it. The longest matching route wins. The scroll route only matches
// exactly, otherwise it would prefix every path.
func (r *Registry) MatchRoute(path string) (Section, bool) {
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	best, bestLen := -1, 0
	for i, s := range r.list {
		route := s.Route
		if len(route) > 1 {
			route = strings.TrimRight(route, "/")
		}
		if path == route || (route != ScrollRoute && strings.HasPrefix(path, route+"/")) {
			if best < 0 || len(route) > bestLen {
				best, bestLen = i, len(route)
			}
		}
	}
	if best < 0 {
		return Section{}, false
	}
	return r.list[best], true
}
