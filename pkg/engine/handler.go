// Core HTTP request handler for the mock engine.

package engine

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/getcontractd/contractd/pkg/httputil"
	"github.com/getcontractd/contractd/pkg/logging"
	"github.com/getcontractd/contractd/pkg/route"
	"github.com/getcontractd/contractd/pkg/state"
)

// Control and service endpoint paths.
const (
	StatePath  = "/api/mock-server/state"
	ResetPath  = "/api/mock-server/reset"
	healthPath = "/__contractd/health"
)

// notFoundMessage is the structured 404 body for unmatched data-path
// requests.
const notFoundMessage = "Not found in Pact contracts or custom routes"

// Handler dispatches inbound requests: control endpoints first, then exact
// method+path lookup against the route table. It holds the route table
// read-only and the shared state registry.
type Handler struct {
	table    *route.Table
	registry *state.Registry
	log      *slog.Logger
}

// NewHandler creates a Handler serving the given table and registry.
func NewHandler(table *route.Table, registry *state.Registry) *Handler {
	return &Handler{
		table:    table,
		registry: registry,
		log:      logging.Nop(),
	}
}

// SetLogger sets the operational logger.
func (h *Handler) SetLogger(log *slog.Logger) {
	if log != nil {
		h.log = log
	}
}

// ServeHTTP implements http.Handler. OPTIONS short-circuiting and CORS
// headers are applied by CORSMiddleware, not here.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case healthPath:
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	case StatePath:
		h.handleSetState(w, r)
		return
	case ResetPath:
		h.handleReset(w, r)
		return
	}
	h.serveMock(w, r)
}

// serveMock resolves the request against the route table and writes the
// selected descriptor verbatim.
func (h *Handler) serveMock(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	key := route.NewKey(r.Method, r.URL.Path)

	active, scope := h.registry.Active()
	sel := Select(h.table, key, active, scope)
	if sel == nil {
		h.log.Debug("no route for request", "method", key.Method, "path", key.Path)
		httputil.WriteError(w, http.StatusNotFound, notFoundMessage)
		return
	}

	status := writeDescriptor(w, sel.Variant)
	h.log.Debug("request served",
		"method", key.Method,
		"path", key.Path,
		"variant", sel.Variant.ID,
		"origin", sel.Variant.Origin,
		"matched_state", sel.State,
		"status", status,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

// writeDescriptor serializes the variant's recorded status, headers, and
// body unchanged. Returns the status written.
func writeDescriptor(w http.ResponseWriter, v *route.Variant) int {
	resp := v.Response
	for name, value := range resp.Headers {
		w.Header().Set(name, value)
	}

	body, isRaw := encodeBody(resp.Body, w.Header().Get("Content-Type"))
	if len(body) > 0 && w.Header().Get("Content-Type") == "" && !isRaw {
		w.Header().Set("Content-Type", "application/json")
	}

	w.WriteHeader(resp.Status)
	if len(body) > 0 {
		_, _ = w.Write(body)
	}
	return resp.Status
}

// encodeBody turns the recorded body payload into bytes. A string body under
// a non-JSON content type is written raw; everything else is re-serialized
// as the JSON value it was recorded as. isRaw reports the raw case.
func encodeBody(body any, contentType string) (data []byte, isRaw bool) {
	if body == nil {
		return nil, false
	}
	if s, ok := body.(string); ok && contentType != "" && !strings.Contains(contentType, "json") {
		return []byte(s), true
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, false
	}
	return data, false
}
