package registration

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
)

// captureWriter holds back a handler's status and body so they can be
// inspected and rewritten before anything reaches the client. Headers still
// go to the underlying writer.
type captureWriter struct {
	gin.ResponseWriter
	status  int
	body    bytes.Buffer
	written bool
}

func newCaptureWriter(w gin.ResponseWriter) *captureWriter {
	return &captureWriter{ResponseWriter: w, status: http.StatusOK}
}

func (w *captureWriter) WriteHeader(code int) {
	if code > 0 && !w.written {
		w.status = code
	}
}

func (w *captureWriter) WriteHeaderNow() {
	w.written = true
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.written = true
	return w.body.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.written = true
	return w.body.WriteString(s)
}

func (w *captureWriter) Status() int {
	return w.status
}

func (w *captureWriter) Size() int {
	if !w.written {
		return -1
	}
	return w.body.Len()
}

func (w *captureWriter) Written() bool {
	return w.written
}

// Flush is a no-op until the captured response is released.
func (w *captureWriter) Flush() {}

// release sends status and body to the underlying writer.
func (w *captureWriter) release(body []byte) {
	dst := w.ResponseWriter
	dst.Header().Del("Content-Length")
	dst.WriteHeader(w.status)
	if len(body) == 0 {
		dst.WriteHeaderNow()
		return
	}
	_, _ = dst.Write(body)
}
