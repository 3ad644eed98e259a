// CORS middleware for the mock engine.

package engine

import "net/http"

// CORSMiddleware applies the permissive cross-origin policy browser-based
// test clients expect: wildcard origin headers on every response and a fixed
// 204 for any OPTIONS request, short-circuited before route matching.
type CORSMiddleware struct {
	handler http.Handler
}

// NewCORSMiddleware wraps a handler with CORS handling.
func NewCORSMiddleware(handler http.Handler) *CORSMiddleware {
	return &CORSMiddleware{handler: handler}
}

// ServeHTTP implements http.Handler.
func (m *CORSMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	header := w.Header()
	header.Set("Access-Control-Allow-Origin", "*")
	header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	header.Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	m.handler.ServeHTTP(w, r)
}
