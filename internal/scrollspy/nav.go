package scrollspy

import "github.com/karthikurao/portfolio/internal/sections"

// NavItem is one link of the navigation bar.
type NavItem struct {
	ID     string
	Label  string
	Href   string
	Active bool
}

// Nav builds the navigation bar for path. On the scroll route the link of
// activeID is highlighted, falling back to the first section when nothing
// has been resolved yet; elsewhere the highlight follows the route.
func Nav(reg *sections.Registry, path, activeID string) []NavItem {
	onScroll := path == sections.ScrollRoute
	if onScroll && !reg.Has(activeID) {
		activeID = ""
		if first, ok := reg.First(); ok {
			activeID = first.ID
		}
	}
	if !onScroll {
		activeID = RouteActive(reg, path)
	}

	all := reg.All()
	items := make([]NavItem, 0, len(all))
	for _, s := range all {
		href := s.Route
		if onScroll && !s.PageOnly {
			href = "/#" + s.ID
		}
		items = append(items, NavItem{
			ID:     s.ID,
			Label:  s.Label,
			Href:   href,
			Active: s.ID == activeID,
		})
	}
	return items
}
