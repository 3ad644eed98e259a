// State-control endpoints. The request/response shapes here are a contract
// with the test suites driving the mock server; field names and message
// strings must stay bit-exact.

package engine

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/getcontractd/contractd/pkg/httputil"
)

// stateRequest is the POST /api/mock-server/state body. Exactly one of
// State or States must be present; Path optionally scopes the selection to
// a path prefix.
type stateRequest struct {
	State  string   `json:"state"`
	States []string `json:"states"`
	Path   string   `json:"path"`
}

const invalidFormatMessage = `Invalid request format. Expected {"state": "name"} or {"states": ["name1", "name2"]}`

// handleSetState implements POST /api/mock-server/state.
func (h *Handler) handleSetState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.WriteMethodNotAllowed(w)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	var req stateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.log.Warn("malformed state request", "error", err)
		httputil.WriteJSON(w, http.StatusBadRequest, map[string]any{
			"error":           "Invalid JSON: " + err.Error(),
			"availableStates": h.registry.Known(),
		})
		return
	}

	names := req.States
	if req.State != "" {
		names = append([]string{req.State}, names...)
	}
	if len(names) == 0 {
		h.log.Warn("state request without state or states field")
		httputil.WriteJSON(w, http.StatusBadRequest, map[string]any{
			"error":           invalidFormatMessage,
			"availableStates": h.registry.Known(),
		})
		return
	}

	result := h.registry.SetStates(names, req.Path)
	h.log.Info("provider states set",
		"valid", result.ValidStates,
		"rejected", len(result.Warnings),
		"scope", req.Path,
	)

	resp := map[string]any{
		"message":     "Provider state(s) set successfully",
		"validStates": result.ValidStates,
	}
	if len(result.Warnings) > 0 {
		resp["message"] = "Provider state(s) set with warnings"
		resp["warnings"] = result.Warnings
		resp["availableStates"] = h.registry.Known()
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// handleReset implements POST /api/mock-server/reset.
func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.WriteMethodNotAllowed(w)
		return
	}

	h.registry.Reset()
	h.log.Info("provider states reset")
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Provider states reset to default behavior",
	})
}
