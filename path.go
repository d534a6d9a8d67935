package anyhttp

import (
	"regexp"
	"strings"

	"github.com/samber/lo"
)

// SplitPrefix flattens prefix input into its non-empty, trimmed path segments. Each element may
// itself hold several segments ("api/v1").
func SplitPrefix(prefix ...string) []string {
	return lo.FlatMap(prefix, func(p string, _ int) []string {
		return lo.Compact(lo.Map(strings.Split(p, "/"), func(s string, _ int) string {
			return strings.TrimSpace(s)
		}))
	})
}

var repeatedSlashes = regexp.MustCompile(`/{2,}`)

// SanitizePath ensures exactly one leading slash, collapses repeated slashes and drops a single
// trailing slash unless the path is the root.
func SanitizePath(p string) string {
	p = repeatedSlashes.ReplaceAllString("/"+strings.TrimSpace(p), "/")
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}

	return p
}

// JoinPath computes the final bound path for a route under the given prefix segments.
func JoinPath(prefix []string, route string) string {
	route = SanitizePath(route)
	segs := SplitPrefix(prefix...)
	if len(segs) == 0 {
		return route
	}

	base := "/" + strings.Join(segs, "/")
	if route == "/" {
		return base
	}

	return base + route
}

var (
	braceParam = regexp.MustCompile(`\{([^{}/]+)\}`)
	colonParam = regexp.MustCompile(`:([A-Za-z0-9_]+)`)
)

// ColonParams converts "{name}" segments into ":name".
func ColonParams(p string) string {
	return braceParam.ReplaceAllString(p, ":$1")
}

// BraceParams converts ":name" segments into "{name}", for routers such as chi that use that
// syntax natively.
func BraceParams(p string) string {
	return colonParam.ReplaceAllString(p, "{$1}")
}

// ParamNames returns the dynamic segment names of a ":name" path in order.
func ParamNames(p string) []string {
	return lo.Map(colonParam.FindAllStringSubmatch(p, -1), func(m []string, _ int) string {
		return m[1]
	})
}
