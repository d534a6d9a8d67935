package chiadapter

import (
	"fmt"
	"net/http"
	"time"

	"github.com/advdv/anyhttp"
	"github.com/go-chi/chi/v5/middleware"
)

const storeKeyStart = "chiadapter.start"

// RegisterLogger adds the logging hooks to the app. The request hook establishes the correlation
// id, from the configured header or the id of chi's RequestID middleware, and the request logger.
// The response and error hooks write the terminal record.
func RegisterLogger(a *App, opts anyhttp.LogOptions) {
	header, base := opts.Header(), opts.Base()

	a.OnRequest(func(w http.ResponseWriter, r *http.Request) *http.Request {
		store := StoreFrom(r.Context())
		id := anyhttp.ResolveRequestID(r.Header.Get(header), middleware.GetReqID(r.Context()))

		store.Set(storeKeyStart, time.Now())
		store.Set(anyhttp.StoreKeyRequestID, id)
		store.Set(anyhttp.StoreKeyLogger, anyhttp.RequestLogger(base, anyhttp.FrameworkChi, id))
		w.Header().Set(header, id)

		return nil
	})

	a.OnResponse(func(r *http.Request, status int) {
		store := StoreFrom(r.Context())
		anyhttp.LogCompleted(loggerOf(store), r.Method, r.URL.Path, status, elapsed(store))
	})

	a.OnError(func(w http.ResponseWriter, r *http.Request, err error) {
		store := StoreFrom(r.Context())
		if id, _ := store.Get(anyhttp.StoreKeyRequestID); id != nil {
			w.Header().Set(header, fmt.Sprint(id))
		}

		anyhttp.LogFailed(loggerOf(store), r.Method, r.URL.Path, elapsed(store), err)
	})
}

func elapsed(store anyhttp.Store) time.Duration {
	start, ok := store.Get(storeKeyStart)
	if !ok {
		return 0
	}

	at, _ := start.(time.Time)

	return time.Since(at)
}
