package chiadapter

import (
	"context"
	"net/http"

	"github.com/advdv/anyhttp"
	"go.uber.org/zap"
)

// RequestHook runs before routing. It may return a derived request, or nil to keep r.
type RequestHook func(w http.ResponseWriter, r *http.Request) *http.Request

// ResponseHook runs after a successful response was flushed.
type ResponseHook func(r *http.Request, status int)

// ErrorHook runs when the chain failed, after the buffered response was discarded and before the
// error response is written. Headers it sets are part of the error response.
type ErrorHook func(w http.ResponseWriter, r *http.Request, err error)

// OnRequest adds a hook. Hooks must be added before the app serves requests.
func (a *App) OnRequest(h RequestHook) { a.onRequest = append(a.onRequest, h) }

// OnResponse adds a hook. Hooks must be added before the app serves requests.
func (a *App) OnResponse(h ResponseHook) { a.onResponse = append(a.onResponse, h) }

// OnError adds a hook. Hooks must be added before the app serves requests.
func (a *App) OnError(h ErrorHook) { a.onError = append(a.onError, h) }

type stateKey struct{}

// requestState is what the lifecycle middleware keeps for one request.
type requestState struct {
	store anyhttp.Store
	err   error
}

func stateFrom(ctx context.Context) *requestState {
	st, _ := ctx.Value(stateKey{}).(*requestState)
	return st
}

// StoreFrom returns the request store the lifecycle middleware attached. Outside of it a detached
// store is returned.
func StoreFrom(ctx context.Context) anyhttp.Store {
	if st := stateFrom(ctx); st != nil {
		return st.store
	}

	return anyhttp.NewStore()
}

func loggerOf(s anyhttp.Store) *zap.Logger {
	if v, ok := s.Get(anyhttp.StoreKeyLogger); ok {
		if logs, ok := v.(*zap.Logger); ok && logs != nil {
			return logs
		}
	}

	return zap.NewNop()
}

// fail records err as the outcome of the request. A later failure replaces an earlier one.
func fail(r *http.Request, err error) {
	if st := stateFrom(r.Context()); st != nil {
		st.err = err
	}
}

// lifecycle buffers the response and runs the hooks around the rest of the chain. A recorded
// failure or a panic discards the buffered response in favour of the translated error body.
func (a *App) lifecycle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(resp http.ResponseWriter, req *http.Request) {
		buf := newBufferResponse(resp, a.bufLimit)
		defer buf.Free()

		st := &requestState{store: anyhttp.NewStore()}
		req = req.WithContext(context.WithValue(req.Context(), stateKey{}, st))

		for _, h := range a.onRequest {
			if derived := h(buf, req); derived != nil {
				req = derived
			}
		}

		if err := serve(next, buf, req); err != nil {
			st.err = err
		}

		if st.err != nil {
			buf.Reset()
			buf.limit = -1 // the error body is written regardless of the cap
			for _, h := range a.onError {
				h(buf, req, st.err)
			}

			tr := a.translator.Translate(st.err)
			_ = emitter{w: buf, r: req, store: st.store}.JSON(tr.Status, tr.Body)
		}

		if err := buf.FlushBuffer(); err != nil {
			loggerOf(st.store).Debug("failed to flush response", zap.Error(err))
		}

		if st.err == nil {
			for _, h := range a.onResponse {
				h(req, buf.Status())
			}
		}
	})
}

// serve runs the chain, turning a panic into an error.
func serve(next http.Handler, w http.ResponseWriter, r *http.Request) (err error) {
	defer func() {
		if v := recover(); v != nil {
			if v == http.ErrAbortHandler { //nolint:errorlint,err113
				panic(v)
			}

			err = anyhttp.Recovered(v)
		}
	}()

	next.ServeHTTP(w, r)

	return nil
}
