package discord

import (
	"context"
	"errors"
	"sort"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
)

// errUsage makes the handler answer with the route's usage line.
var errUsage = errors.New("invalid command usage")

// CommandFunc runs a routed command.
type CommandFunc func(ctx context.Context, inv *Invocation) error

// Route binds a command path such as "event create" to its handler.
type Route struct {
	Path                 string
	Aliases              []string
	Usage                string
	Help                 string
	AdminOnly            bool
	RequiresRegistration bool
	Handler              CommandFunc
}

// Invocation is a parsed command message being dispatched.
type Invocation struct {
	Message IncomingMessage
	Route   *Route
	Log     *logrus.Entry

	rest string
}

// NextArg consumes the next argument. A double-quoted argument may contain
// spaces; an unterminated quote runs to the end of the line. It returns ""
// when no argument is left.
func (inv *Invocation) NextArg() string {
	arg, rest := nextToken(inv.rest)
	inv.rest = rest
	return arg
}

// Rest consumes and returns the remaining text, trimmed.
func (inv *Invocation) Rest() string {
	rest := strings.TrimSpace(inv.rest)
	inv.rest = ""
	return rest
}

func nextToken(s string) (token, rest string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	if s == "" {
		return "", ""
	}
	if s[0] == '"' {
		if end := strings.IndexByte(s[1:], '"'); end >= 0 {
			return s[1 : end+1], s[end+2:]
		}
		return s[1:], ""
	}
	if end := strings.IndexFunc(s, unicode.IsSpace); end >= 0 {
		return s[:end], s[end:]
	}
	return s, ""
}

// Router resolves command lines to routes. Paths have one word ("register")
// or a group word and a subcommand ("event create").
type Router struct {
	routes map[string]*Route
	groups map[string]bool
	order  []*Route
}

func NewRouter(routes ...Route) *Router {
	r := &Router{routes: map[string]*Route{}, groups: map[string]bool{}}
	for i := range routes {
		route := &routes[i]
		r.order = append(r.order, route)
		for _, path := range append([]string{route.Path}, route.Aliases...) {
			r.routes[path] = route
			if group, _, ok := strings.Cut(path, " "); ok {
				r.groups[group] = true
			}
		}
	}
	return r
}

// routeResult is what Resolve found for a command line.
type routeResult int

const (
	routeNone routeResult = iota
	routeFound
	routeInvalidGroup
)

// Resolve matches the command line (prefix already stripped) and returns the
// route together with the unparsed arguments. For a known group with a missing
// or unknown subcommand it reports routeInvalidGroup.
func (r *Router) Resolve(line string) (*Route, string, routeResult) {
	first, rest := nextToken(line)
	if first == "" {
		return nil, "", routeNone
	}
	if r.groups[first] {
		sub, subRest := nextToken(rest)
		if route, ok := r.routes[first+" "+sub]; ok && sub != "" {
			return route, subRest, routeFound
		}
		return nil, "", routeInvalidGroup
	}
	if route, ok := r.routes[first]; ok {
		return route, rest, routeFound
	}
	return nil, "", routeNone
}

// Routes returns the routes sorted by path.
func (r *Router) Routes() []*Route {
	out := append([]*Route(nil), r.order...)
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}
