package routes

import "net/http"

// Group organizes routes under a common prefix.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Wrap returns a copy of the group with every route handler, including those
// of child groups, wrapped by mw.
func (g Group) Wrap(mw func(http.Handler) http.Handler) Group {
	wrapped := Group{
		Prefix:   g.Prefix,
		Routes:   make([]Route, len(g.Routes)),
		Children: make([]Group, len(g.Children)),
	}
	for i, route := range g.Routes {
		route.Handler = mw(route.Handler).ServeHTTP
		wrapped.Routes[i] = route
	}
	for i, child := range g.Children {
		wrapped.Children[i] = child.Wrap(mw)
	}
	return wrapped
}

// Register adds all routes from the given groups to the mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, group := range groups {
		registerGroup(mux, "", group)
	}
}

func registerGroup(mux *http.ServeMux, parentPrefix string, group Group) {
	fullPrefix := parentPrefix + group.Prefix
	for _, route := range group.Routes {
		mux.HandleFunc(route.pattern(fullPrefix), route.Handler)
	}
	for _, child := range group.Children {
		registerGroup(mux, fullPrefix, child)
	}
}
