package anyhttp

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/samber/lo"
)

// QueryValue is a normalized query parameter. Multi is set when the native value was a list.
type QueryValue struct {
	Values []string
	Multi  bool
}

// String returns the first value, or the empty string.
func (q QueryValue) String() string {
	if len(q.Values) == 0 {
		return ""
	}

	return q.Values[0]
}

// NormalizeHeaders lower-cases header names and joins multi-value headers with ", ".
func NormalizeHeaders(h map[string][]string) map[string]string {
	out := make(map[string]string, len(h))
	for k, vs := range h {
		out[strings.ToLower(k)] = strings.Join(vs, ", ")
	}

	return out
}

// NormalizeParams lower-cases path capture names.
func NormalizeParams(p map[string]string) map[string]string {
	return lo.MapEntries(p, func(k, v string) (string, string) {
		return strings.ToLower(k), v
	})
}

// NormalizeQuery lower-cases query names and coerces native values. Lists stay ordered lists,
// scalars become strings, nil becomes the empty string and any other structured value is encoded
// as a single JSON element.
func NormalizeQuery(q map[string]any) map[string]QueryValue {
	out := make(map[string]QueryValue, len(q))
	for k, v := range q {
		out[strings.ToLower(k)] = normalizeQueryValue(v)
	}

	return out
}

func normalizeQueryValue(v any) QueryValue {
	switch tv := v.(type) {
	case nil:
		return QueryValue{Values: []string{""}}
	case string:
		return QueryValue{Values: []string{tv}}
	case []string:
		return QueryValue{Values: append([]string{}, tv...), Multi: true}
	case []any:
		return QueryValue{Values: lo.Map(tv, func(e any, _ int) string {
			return normalizeQueryValue(e).String()
		}), Multi: true}
	case fmt.Stringer:
		return QueryValue{Values: []string{tv.String()}}
	case bool, int, int64, float64, uint, int32, float32:
		return QueryValue{Values: []string{fmt.Sprint(tv)}}
	default:
		b, err := json.Marshal(tv)
		if err != nil {
			return QueryValue{Values: []string{fmt.Sprint(tv)}, Multi: true}
		}

		return QueryValue{Values: []string{string(b)}, Multi: true}
	}
}

// QueryFromValues turns url.Values into native query input: a key with one value maps to a string,
// a repeated key maps to the ordered list of its values.
func QueryFromValues(vals url.Values) map[string]any {
	out := make(map[string]any, len(vals))
	for k, vs := range vals {
		switch len(vs) {
		case 0:
			out[k] = nil
		case 1:
			out[k] = vs[0]
		default:
			out[k] = append([]string{}, vs...)
		}
	}

	return out
}

// NestedQueryFromValues is like [QueryFromValues] but also groups bracketed keys such as
// "filter[name]=ann" into one object value under "filter".
func NestedQueryFromValues(vals url.Values) map[string]any {
	out := QueryFromValues(vals)
	for k, vs := range vals {
		open := strings.IndexByte(k, '[')
		if open <= 0 || !strings.HasSuffix(k, "]") || len(vs) == 0 {
			continue
		}

		name, field := k[:open], k[open+1:len(k)-1]
		if field == "" {
			continue
		}

		obj, ok := out[name].(map[string]string)
		if !ok {
			obj = map[string]string{}
			out[name] = obj
		}

		obj[field] = vs[0]
		delete(out, k)
	}

	return out
}
