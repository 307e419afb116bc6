package middlewares

import (
	"compress/gzip"
	"net/http"
	"strings"
)

// Compression gzips response bodies for clients that accept it. HEAD
// requests and empty responses are left alone.
func Compression(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Accept-Encoding")
		if r.Method == http.MethodHead || !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		gw := &gzipResponseWriter{ResponseWriter: w}
		defer gw.Close()
		next.ServeHTTP(gw, r)
	})
}

// gzipResponseWriter starts compressing on the first body byte.
type gzipResponseWriter struct {
	http.ResponseWriter
	gz          *gzip.Writer
	wroteHeader bool
	status      int
}

func (g *gzipResponseWriter) WriteHeader(code int) {
	if g.wroteHeader {
		return
	}
	g.wroteHeader = true
	g.status = code
	if code == http.StatusNoContent || code == http.StatusNotModified || code < 200 {
		g.ResponseWriter.WriteHeader(code)
		return
	}
	// Deferred until the body starts, so empty responses stay uncompressed.
}

func (g *gzipResponseWriter) Write(b []byte) (int, error) {
	if !g.wroteHeader {
		g.WriteHeader(http.StatusOK)
	}
	if g.gz == nil {
		if g.status == http.StatusNoContent || g.status == http.StatusNotModified || g.status < 200 {
			return g.ResponseWriter.Write(b)
		}
		h := g.Header()
		h.Del("Content-Length")
		h.Set("Content-Encoding", "gzip")
		g.ResponseWriter.WriteHeader(g.status)
		g.gz = gzip.NewWriter(g.ResponseWriter)
	}
	return g.gz.Write(b)
}

func (g *gzipResponseWriter) Close() {
	if g.gz != nil {
		_ = g.gz.Close()
		return
	}
	// Status set but nothing written.
	if g.wroteHeader && g.status >= 200 && g.status != http.StatusNoContent && g.status != http.StatusNotModified {
		g.ResponseWriter.WriteHeader(g.status)
	}
}

func (g *gzipResponseWriter) Unwrap() http.ResponseWriter { return g.ResponseWriter }
