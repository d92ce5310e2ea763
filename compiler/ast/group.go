package ast

import "strings"

// RouteGroup is the set of routes sharing a first path segment.
// The empty prefix holds routes with no segments, such as "/".
type RouteGroup struct {
	Prefix string
	Routes []RouteDef
}

// MountPath returns the path the group is mounted at.
func (g RouteGroup) MountPath() string {
	return "/" + g.Prefix
}

// GroupRoutes partitions routes by first path segment. Groups appear in
// order of their prefix's first appearance and routes keep their relative
// order inside a group.
func GroupRoutes(routes []RouteDef) []RouteGroup {
	var (
		groups []RouteGroup
		index  = make(map[string]int)
	)
	for _, r := range routes {
		prefix := Prefix(r.Path)
		i, ok := index[prefix]
		if !ok {
			i = len(groups)
			index[prefix] = i
			groups = append(groups, RouteGroup{Prefix: prefix})
		}
		groups[i].Routes = append(groups[i].Routes, r)
	}
	return groups
}

// Prefix returns the first non-empty "/"-separated segment of path.
func Prefix(path string) string {
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			return s
		}
	}
	return ""
}

// RelativePath returns path with its first non-empty segment removed,
// i.e. the path relative to the group mount point. "/items/:id" becomes
// "/:id" and "/items" becomes "".
func RelativePath(path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		if s == "" {
			continue
		}
		rest := segments[i+1:]
		if len(rest) == 0 {
			return ""
		}
		return "/" + strings.Join(rest, "/")
	}
	return ""
}

// Params returns the names of the ":param" segments of path in order.
func Params(path string) []string {
	var params []string
	for _, s := range strings.Split(path, "/") {
		if name, ok := strings.CutPrefix(s, ":"); ok && name != "" {
			params = append(params, name)
		}
	}
	return params
}
