package anyhttp

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Reverser keeps track of named route paths and allows building URLs.
type Reverser struct {
	pats map[string]string
}

// NewReverser inits the reverser.
func NewReverser() *Reverser {
	return &Reverser{make(map[string]string)}
}

// NewReverserFor names every binding after its controller. Bindings without a controller name are
// skipped.
func NewReverserFor(bindings []RouteBinding) (*Reverser, error) {
	rev := NewReverser()
	if err := rev.NameAll(bindings); err != nil {
		return nil, err
	}

	return rev, nil
}

// NameAll records the path of every binding under its controller name.
func (r Reverser) NameAll(bindings []RouteBinding) error {
	for _, b := range bindings {
		if b.Route.Controller.Name == "" {
			continue
		}

		if _, err := r.NamedPath(b.Route.Controller.Name, b.Path); err != nil {
			return err
		}
	}

	return nil
}

// Reverse reverses the named path into a url, substituting the dynamic segments in order.
func (r Reverser) Reverse(name string, vals ...string) (string, error) {
	pat, ok := r.pats[name]
	if !ok {
		keys := lo.Keys(r.pats)
		slices.Sort(keys)

		return "", fmt.Errorf("no route named: %q, got: %v", name, keys) //nolint:goerr113
	}

	names := ParamNames(pat)
	if len(vals) != len(names) {
		return "", fmt.Errorf("route %q needs %d values, got %d", name, len(names), len(vals)) //nolint:goerr113
	}

	segs := strings.Split(pat, "/")
	next := 0
	for i, seg := range segs {
		if strings.HasPrefix(seg, ":") {
			segs[i] = url.PathEscape(vals[next])
			next++
		}
	}

	return strings.Join(segs, "/"), nil
}

// Named is a convenience method that panics if naming the path fails.
func (r Reverser) Named(name, path string) string {
	path, err := r.NamedPath(name, path)
	if err != nil {
		panic("anyhttp: " + err.Error())
	}

	return path
}

// NamedPath records path under name while returning it as well.
func (r Reverser) NamedPath(name, path string) (string, error) {
	if _, exists := r.pats[name]; exists {
		return path, fmt.Errorf("route with name %q already exists", name) //nolint:goerr113
	}

	if !strings.HasPrefix(path, "/") {
		return path, fmt.Errorf("route path %q must start with '/'", path) //nolint:goerr113
	}

	r.pats[name] = ColonParams(path)

	return path, nil
}
