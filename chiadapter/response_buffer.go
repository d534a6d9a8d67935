package chiadapter

import (
	"bytes"
	"maps"
	"net/http"
	"sync"

	"github.com/cockroachdb/errors"
)

// ErrBufferFull is returned when a write would exceed the buffer limit.
var ErrBufferFull = errors.New("response buffer full")

var bufPool = sync.Pool{New: func() any { return new(bytes.Buffer) }}

// ResponseBuffer is an http.ResponseWriter that holds status, headers and body until it is flushed.
// Until then the response can be reset and formulated anew, which is what turns a failing handler
// into a clean error response.
type ResponseBuffer struct {
	resp    http.ResponseWriter
	buf     *bytes.Buffer
	header  http.Header
	status  int
	limit   int
	flushed bool
}

// newBufferResponse wraps resp. A negative limit disables the size check.
func newBufferResponse(resp http.ResponseWriter, limit int) *ResponseBuffer {
	buf, _ := bufPool.Get().(*bytes.Buffer)
	buf.Reset()

	return &ResponseBuffer{resp: resp, buf: buf, header: http.Header{}, limit: limit}
}

// Header returns the buffered header map. Once flushed it is the underlying writer's.
func (w *ResponseBuffer) Header() http.Header {
	if w.flushed {
		return w.resp.Header()
	}

	return w.header
}

// WriteHeader records the status. The first status sticks until [ResponseBuffer.Reset].
func (w *ResponseBuffer) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
}

// Write buffers p as a whole, or not at all when it does not fit the limit.
func (w *ResponseBuffer) Write(p []byte) (int, error) {
	if w.limit >= 0 && w.buf.Len()+len(p) > w.limit {
		return 0, errors.Wrapf(ErrBufferFull, "writing %d bytes over limit %d", len(p), w.limit)
	}

	w.WriteHeader(http.StatusOK)

	return w.buf.Write(p)
}

// Status returns the recorded status, 200 if none was written.
func (w *ResponseBuffer) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}

	return w.status
}

// Written reports whether a status or body has been written.
func (w *ResponseBuffer) Written() bool { return w.status != 0 || w.flushed }

// Reset discards everything buffered so far. It panics once anything was flushed.
func (w *ResponseBuffer) Reset() {
	if w.flushed {
		panic("chiadapter: response already flushed, cannot reset")
	}

	w.buf.Reset()
	w.header = http.Header{}
	w.status = 0
}

// FlushBuffer sends the status and headers if they were not sent yet, followed by the buffered body.
func (w *ResponseBuffer) FlushBuffer() error {
	if !w.flushed {
		w.flushed = true
		maps.Copy(w.resp.Header(), w.header)
		w.resp.WriteHeader(w.Status())
	}

	if w.buf.Len() == 0 {
		return nil
	}

	if _, err := w.buf.WriteTo(w.resp); err != nil {
		return errors.Wrap(err, "write buffered body")
	}

	return nil
}

// FlushError flushes the buffer and then the underlying writer. It is what
// http.ResponseController calls.
func (w *ResponseBuffer) FlushError() error {
	if err := w.FlushBuffer(); err != nil {
		return err
	}

	return http.NewResponseController(w.resp).Flush()
}

// Flush implements http.Flusher.
func (w *ResponseBuffer) Flush() { _ = w.FlushError() }

// Unwrap returns the underlying writer.
func (w *ResponseBuffer) Unwrap() http.ResponseWriter { return w.resp }

// Free returns the buffer to the pool. The writer must not be used afterwards.
func (w *ResponseBuffer) Free() {
	if w.buf == nil {
		return
	}

	w.buf.Reset()
	bufPool.Put(w.buf)
	w.buf = nil
}
