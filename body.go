package anyhttp

import (
	"bytes"
	"encoding/json"
	"io"
	"sync"

	"github.com/cockroachdb/errors"
)

// ErrEmptyBody is returned when JSON is decoded from a request without a body.
var ErrEmptyBody = errors.New("request body is empty")

// BodyLoader reads the native request body.
type BodyLoader func() ([]byte, error)

// ReaderBody returns a loader that reads all of r.
func ReaderBody(r io.Reader) BodyLoader {
	return func() ([]byte, error) {
		if r == nil {
			return nil, nil
		}

		b, err := io.ReadAll(r)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read request body")
		}

		return b, nil
	}
}

// lazyBody defers the native read until first use. Concurrent callers share the single in-flight
// read and every later call observes its result.
type lazyBody struct {
	load func() ([]byte, error)
}

func newLazyBody(loader BodyLoader) *lazyBody {
	if loader == nil {
		loader = func() ([]byte, error) { return nil, nil }
	}

	return &lazyBody{load: sync.OnceValues(loader)}
}

func (b *lazyBody) decodeJSON(v any) error {
	raw, err := b.load()
	if err != nil {
		return err
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return ErrEmptyBody
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return errors.Wrap(err, "failed to decode json body")
	}

	return nil
}
