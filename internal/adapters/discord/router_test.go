package discord

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func noop(context.Context, *Invocation) error { return nil }

func TestRouterResolve(t *testing.T) {
	r := NewRouter(
		Route{Path: "register", Handler: noop},
		Route{Path: "event create", Handler: noop},
		Route{Path: "event participators", Aliases: []string{"event users"}, Handler: noop},
	)

	tests := []struct {
		line   string
		path   string
		rest   string
		result routeResult
	}{
		{line: "register", path: "register", result: routeFound},
		{line: "register extra", path: "register", rest: " extra", result: routeFound},
		{line: "event create Finals D", path: "event create", rest: " Finals D", result: routeFound},
		{line: "event users Finals", path: "event participators", rest: " Finals", result: routeFound},
		{line: "event", result: routeInvalidGroup},
		{line: "event nope", result: routeInvalidGroup},
		{line: "nope", result: routeNone},
		{line: "", result: routeNone},
		{line: " register", path: "register", result: routeFound},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			route, rest, result := r.Resolve(tt.line)
			assert.Equal(t, tt.result, result)
			if tt.result == routeFound {
				require.NotNil(t, route)
				assert.Equal(t, tt.path, route.Path)
				assert.Equal(t, tt.rest, rest)
			}
		})
	}
}

func TestRouterRoutesSorted(t *testing.T) {
	r := NewRouter(Route{Path: "help"}, Route{Path: "event list"}, Route{Path: "register"})
	var paths []string
	for _, route := range r.Routes() {
		paths = append(paths, route.Path)
	}
	assert.Equal(t, []string{"event list", "help", "register"}, paths)
}

func TestInvocationArgs(t *testing.T) {
	inv := &Invocation{rest: `  "Summer Finals"  Bring snacks
and drinks`}
	assert.Equal(t, "Summer Finals", inv.NextArg())
	assert.Equal(t, "Bring snacks\nand drinks", inv.Rest())
	assert.Empty(t, inv.NextArg())

	inv = &Invocation{rest: `Finals false`}
	assert.Equal(t, "Finals", inv.NextArg())
	assert.Equal(t, "false", inv.NextArg())
	assert.Empty(t, inv.NextArg())

	inv = &Invocation{rest: ` "unterminated quote`}
	assert.Equal(t, "unterminated quote", inv.NextArg())

	inv = &Invocation{rest: ` ""`}
	assert.Empty(t, inv.NextArg())
}

func TestProperty_QuotedArgRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.StringMatching(`[A-Za-z0-9 ]{1,20}`).Draw(t, "name")
		desc := rapid.StringMatching(`[A-Za-z0-9]{0,20}`).Draw(t, "desc")

		inv := &Invocation{rest: ` "` + name + `" ` + desc}
		if got := inv.NextArg(); got != name {
			t.Fatalf("NextArg() = %q, want %q", got, name)
		}
		if got := inv.Rest(); got != desc {
			t.Fatalf("Rest() = %q, want %q", got, desc)
		}
	})
}

func TestParseBoolArg(t *testing.T) {
	for _, s := range []string{"true", "True", "1", "t", "yes", "Y", "on", "enable"} {
		v, ok := parseBoolArg(s)
		assert.True(t, ok, s)
		assert.True(t, v, s)
	}
	for _, s := range []string{"false", "0", "F", "no", "n", "off", "disable"} {
		v, ok := parseBoolArg(s)
		assert.True(t, ok, s)
		assert.False(t, v, s)
	}
	_, ok := parseBoolArg("maybe")
	assert.False(t, ok)
}

func TestParseChannelArg(t *testing.T) {
	id, ok := parseChannelArg("<#123>")
	assert.True(t, ok)
	assert.Equal(t, "123", id)

	id, ok = parseChannelArg("456")
	assert.True(t, ok)
	assert.Equal(t, "456", id)

	for _, s := range []string{"#general", "<#abc>", "<@123>", ""} {
		_, ok := parseChannelArg(s)
		assert.False(t, ok, s)
	}
}
