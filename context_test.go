package anyhttp_test

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/advdv/anyhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFramework(t *testing.T) {
	f, err := anyhttp.ParseFramework(" GIN ")
	require.NoError(t, err)
	require.Equal(t, anyhttp.FrameworkGin, f)

	_, err = anyhttp.ParseFramework("hono")
	require.ErrorContains(t, err, `unsupported framework "hono"`)
}

func TestNewContextNormalizesRequest(t *testing.T) {
	store := anyhttp.NewStore()
	store.Set(anyhttp.StoreKeyRequestID, "abc-123")

	c := anyhttp.NewContext(anyhttp.ContextConfig{
		Framework: anyhttp.FrameworkEcho,
		Method:    "post",
		Path:      "/users/1",
		Params:    map[string]string{"ID": "1"},
		Query:     anyhttp.QueryFromValues(url.Values{"Tag": {"a", "b"}, "q": {"x"}}),
		Headers: map[string][]string{
			"Content-Type": {"application/json"},
			"X-Forwarded":  {"a", "b"},
		},
		Store:   store,
		Emitter: newRecorder(),
	})

	assert.Equal(t, anyhttp.FrameworkEcho, c.Framework)
	assert.Equal(t, "POST", c.Req.Method)
	assert.Equal(t, "1", c.Req.Param("id"))
	assert.Equal(t, map[string]string{
		"content-type": "application/json",
		"x-forwarded":  "a, b",
		"x-request-id": "abc-123",
	}, c.Req.Headers)
	assert.Equal(t, anyhttp.QueryValue{Values: []string{"a", "b"}, Multi: true}, c.Req.Query["tag"])
	assert.Equal(t, "x", c.Req.QueryValue("Q"))
	assert.Equal(t, "abc-123", c.RequestID())
}

func TestNormalizeQuery(t *testing.T) {
	q := anyhttp.NormalizeQuery(map[string]any{
		"Missing": nil,
		"n":       42,
		"list":    []any{"a", 1},
		"obj":     map[string]string{"name": "ann"},
	})

	assert.Equal(t, anyhttp.QueryValue{Values: []string{""}}, q["missing"])
	assert.Equal(t, anyhttp.QueryValue{Values: []string{"42"}}, q["n"])
	assert.Equal(t, anyhttp.QueryValue{Values: []string{"a", "1"}, Multi: true}, q["list"])
	assert.Equal(t, anyhttp.QueryValue{Values: []string{`{"name":"ann"}`}, Multi: true}, q["obj"])
}

func TestNestedQueryFromValues(t *testing.T) {
	q := anyhttp.NormalizeQuery(anyhttp.NestedQueryFromValues(url.Values{
		"filter[name]": {"ann"},
		"page":         {"2"},
	}))

	assert.Equal(t, `{"name":"ann"}`, q["filter"].String())
	assert.Equal(t, "2", q["page"].String())
	assert.NotContains(t, q, "filter[name]")
}

func TestBodyIsReadOnce(t *testing.T) {
	var reads atomic.Int64
	c := anyhttp.NewContext(anyhttp.ContextConfig{
		Context: context.Background(),
		Emitter: newRecorder(),
		Body: func() ([]byte, error) {
			reads.Add(1)
			return []byte(`{"name":"ann"}`), nil
		},
	})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b, err := c.Req.Body()
			assert.NoError(t, err)
			assert.JSONEq(t, `{"name":"ann"}`, string(b))
		}()
	}
	wg.Wait()

	var v struct{ Name string }
	require.NoError(t, c.Req.BindJSON(&v))
	require.Equal(t, "ann", v.Name)
	require.Equal(t, int64(1), reads.Load())
}

func TestBodyIsSharedPerStore(t *testing.T) {
	var reads atomic.Int64
	store := anyhttp.NewStore()
	cfg := anyhttp.ContextConfig{
		Store:   store,
		Emitter: newRecorder(),
		Body: func() ([]byte, error) {
			reads.Add(1)
			return []byte(`{}`), nil
		},
	}

	mw, ctrl := anyhttp.NewContext(cfg), anyhttp.NewContext(cfg)
	_, err := mw.Req.Body()
	require.NoError(t, err)
	_, err = ctrl.Req.Body()
	require.NoError(t, err)
	require.Equal(t, int64(1), reads.Load())
}

func TestBindJSONEmptyBody(t *testing.T) {
	c, _ := newTestContext(nil)

	var v map[string]any
	require.ErrorIs(t, c.Req.BindJSON(&v), anyhttp.ErrEmptyBody)
}

func TestContextStoreAndNext(t *testing.T) {
	c, _ := newTestContext(nil)
	require.NoError(t, c.Next(), "missing continuation is a no-op")
	require.Nil(t, c.Get("nope"))

	c.Set("userAgent", "curl")
	v, ok := anyhttp.Value[string](c, "userAgent")
	require.True(t, ok)
	require.Equal(t, "curl", v)

	_, ok = anyhttp.Value[int](c, "userAgent")
	require.False(t, ok)
}

func TestResponseHelpers(t *testing.T) {
	t.Run("status chaining", func(t *testing.T) {
		c, rec := newTestContext(nil)
		require.NoError(t, c.Res.Header("x-demo", "true").Status(201).JSON(map[string]string{"ok": "1"}))
		assert.Equal(t, 201, rec.status)
		assert.Equal(t, "true", rec.headers.Get("X-Demo"))
	})

	t.Run("explicit status wins", func(t *testing.T) {
		c, rec := newTestContext(nil)
		require.NoError(t, c.Res.Status(201).Text("hi", 202))
		assert.Equal(t, 202, rec.status)
	})

	t.Run("redirect defaults to found", func(t *testing.T) {
		c, rec := newTestContext(nil)
		require.NoError(t, c.Res.Redirect("/elsewhere"))
		assert.Equal(t, 302, rec.status)
		assert.Equal(t, "/elsewhere", rec.location)
	})

	t.Run("send picks the path", func(t *testing.T) {
		c, rec := newTestContext(nil)
		require.NoError(t, c.Res.Send("plain"))
		assert.Equal(t, "text/plain; charset=utf-8", rec.contentType)
		assert.Equal(t, "plain", string(rec.body))

		c, rec = newTestContext(nil)
		require.NoError(t, c.Res.Send([]byte{1, 2}))
		assert.Equal(t, "application/octet-stream", rec.contentType)

		c, rec = newTestContext(nil)
		require.NoError(t, c.Res.Header("Content-Type", "text/csv").Send(strings.NewReader("a,b")))
		assert.Equal(t, "text/csv", rec.contentType)
		assert.Equal(t, "a,b", string(rec.body))

		c, rec = newTestContext(nil)
		require.NoError(t, c.Res.Send(map[string]int{"n": 1}))
		assert.Equal(t, map[string]int{"n": 1}, rec.json)
	})
}

func TestPendingStatusIsSharedAcrossStages(t *testing.T) {
	store, rec := anyhttp.NewStore(), newRecorder()
	cfg := anyhttp.ContextConfig{Framework: anyhttp.FrameworkChi, Emitter: rec, Store: store}

	mw := anyhttp.NewContext(cfg)
	mw.Res.Status(202).Header("Content-Type", "text/csv")

	ctrl := anyhttp.NewContext(cfg)
	require.NoError(t, ctrl.Res.Blob([]byte("a,b")))
	assert.Equal(t, 202, rec.status)
	assert.Equal(t, "text/csv", rec.contentType)

	other := anyhttp.NewContext(anyhttp.ContextConfig{Emitter: rec})
	require.NoError(t, other.Res.Blob(nil))
	assert.Equal(t, 200, rec.status)
	assert.Equal(t, "application/octet-stream", rec.contentType)
}
