package engine

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getcontractd/contractd/pkg/pact"
	"github.com/getcontractd/contractd/pkg/route"
	"github.com/getcontractd/contractd/pkg/state"
)

// newTestServer builds the warehouse fixture used across handler tests:
// orders and products routes, each with a no-state empty-list variant and a
// stateful populated variant.
func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	registry := state.NewRegistry()
	b := route.NewBuilder(registry)

	b.AddInteraction(pact.Interaction{
		ID: "orders-empty", Method: "GET", Path: "/api/v1/orders",
		Response: pact.Response{Status: 200, Body: []any{}},
	})
	b.AddInteraction(pact.Interaction{
		ID: "orders-exist", Method: "GET", Path: "/api/v1/orders",
		States:   []string{"orders exist"},
		Response: pact.Response{Status: 200, Body: []any{map[string]any{"id": float64(1)}}},
	})
	b.AddInteraction(pact.Interaction{
		ID: "products-empty", Method: "GET", Path: "/api/v1/products",
		Response: pact.Response{Status: 200, Body: []any{}},
	})
	b.AddInteraction(pact.Interaction{
		ID: "products-exist", Method: "GET", Path: "/api/v1/products",
		States:   []string{"products exist"},
		Response: pact.Response{Status: 200, Body: []any{map[string]any{"sku": "A-1"}}},
	})

	table, err := b.Build()
	require.NoError(t, err)

	return NewCORSMiddleware(NewHandler(table, registry))
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	}
	return w, decoded
}

// Scenario: fresh start serves the no-state default variant.
func TestFreshStartServesDefaultVariant(t *testing.T) {
	h := newTestServer(t)

	w, _ := doJSON(t, h, "GET", "/api/v1/orders", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

// Scenario: setting a single state switches the served variant.
func TestSetSingleStateSwitchesVariant(t *testing.T) {
	h := newTestServer(t)

	w, resp := doJSON(t, h, "POST", StatePath, `{"state": "orders exist"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Provider state(s) set successfully", resp["message"])
	assert.Equal(t, []any{"orders exist"}, resp["validStates"])
	assert.NotContains(t, resp, "warnings")

	w, _ = doJSON(t, h, "GET", "/api/v1/orders", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id": 1}]`, w.Body.String())
}

// Scenario: an unknown state succeeds with a warning and leaves defaults.
func TestSetUnknownStateWarnsAndKeepsDefaults(t *testing.T) {
	h := newTestServer(t)

	w, resp := doJSON(t, h, "POST", StatePath, `{"state": "nonexistent state"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Provider state(s) set with warnings", resp["message"])
	assert.Equal(t, []any{}, resp["validStates"])
	assert.Equal(t, []any{"nonexistent state not found in contracts or custom routes"}, resp["warnings"])
	assert.Contains(t, resp, "availableStates")

	w, _ = doJSON(t, h, "GET", "/api/v1/orders", "")
	assert.JSONEq(t, `[]`, w.Body.String())
}

// Scenario: a body with neither state nor states is a format error.
func TestSetStateInvalidFormat(t *testing.T) {
	h := newTestServer(t)

	w, resp := doJSON(t, h, "POST", StatePath, `{"invalidField": "x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, resp["error"], "Invalid request format")
	assert.Contains(t, resp, "availableStates")
}

func TestSetStateInvalidJSON(t *testing.T) {
	h := newTestServer(t)

	w, resp := doJSON(t, h, "POST", StatePath, `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, resp["error"], "Invalid JSON")
}

// Scenario: multiple states drive multiple endpoints at once.
func TestSetMultipleStates(t *testing.T) {
	h := newTestServer(t)

	w, resp := doJSON(t, h, "POST", StatePath, `{"states": ["orders exist", "products exist"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["validStates"], 2)

	w, _ = doJSON(t, h, "GET", "/api/v1/orders", "")
	assert.JSONEq(t, `[{"id": 1}]`, w.Body.String())

	w, _ = doJSON(t, h, "GET", "/api/v1/products", "")
	assert.JSONEq(t, `[{"sku": "A-1"}]`, w.Body.String())
}

func TestScopedStateDoesNotLeakAcrossPaths(t *testing.T) {
	h := newTestServer(t)

	w, _ := doJSON(t, h, "POST", StatePath, `{"state": "orders exist", "path": "/api/v1/orders"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, h, "GET", "/api/v1/orders", "")
	assert.JSONEq(t, `[{"id": 1}]`, w.Body.String())

	// Products is outside the scope and keeps default behavior.
	w, _ = doJSON(t, h, "GET", "/api/v1/products", "")
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestResetRestoresDefaultBehavior(t *testing.T) {
	h := newTestServer(t)

	doJSON(t, h, "POST", StatePath, `{"state": "orders exist"}`)

	w, resp := doJSON(t, h, "POST", ResetPath, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Provider states reset to default behavior", resp["message"])

	w, _ = doJSON(t, h, "GET", "/api/v1/orders", "")
	assert.JSONEq(t, `[]`, w.Body.String())
}

// Round-trip: set, reset, set again reproduces the first response exactly.
func TestStateRoundTripReproducesResponse(t *testing.T) {
	h := newTestServer(t)

	doJSON(t, h, "POST", StatePath, `{"state": "orders exist"}`)
	w1, _ := doJSON(t, h, "GET", "/api/v1/orders", "")

	doJSON(t, h, "POST", ResetPath, "")
	doJSON(t, h, "POST", StatePath, `{"state": "orders exist"}`)
	w2, _ := doJSON(t, h, "GET", "/api/v1/orders", "")

	assert.Equal(t, w1.Code, w2.Code)
	assert.Equal(t, w1.Body.String(), w2.Body.String())
}

func TestControlEndpointsRejectOtherVerbs(t *testing.T) {
	h := newTestServer(t)

	for _, path := range []string{StatePath, ResetPath} {
		for _, method := range []string{"GET", "PUT", "DELETE"} {
			w, resp := doJSON(t, h, method, path, "")
			assert.Equal(t, http.StatusMethodNotAllowed, w.Code, "%s %s", method, path)
			assert.Equal(t, "Method not allowed", resp["error"])
		}
	}
}

func TestUnmatchedRequestReturnsStructuredNotFound(t *testing.T) {
	h := newTestServer(t)

	w, resp := doJSON(t, h, "GET", "/api/v1/unknown", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not found in Pact contracts or custom routes", resp["error"])

	// Exact-path matching: a literal path with an extra segment is a miss.
	w, _ = doJSON(t, h, "GET", "/api/v1/orders/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Method is part of the key.
	w, _ = doJSON(t, h, "DELETE", "/api/v1/orders", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOptionsShortCircuitsWithNoContent(t *testing.T) {
	h := newTestServer(t)

	w, _ := doJSON(t, h, "OPTIONS", "/api/v1/orders", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	// Paths without any route still get the preflight response.
	w, _ = doJSON(t, h, "OPTIONS", "/api/v1/unknown", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCORSHeadersOnEveryResponse(t *testing.T) {
	h := newTestServer(t)

	paths := []struct {
		method string
		path   string
	}{
		{"GET", "/api/v1/orders"},
		{"GET", "/api/v1/unknown"},
		{"POST", ResetPath},
		{"OPTIONS", "/api/v1/orders"},
	}
	for _, p := range paths {
		w, _ := doJSON(t, h, p.method, p.path, "")
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"), "%s %s", p.method, p.path)
		assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))
	}
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestServer(t)

	w, resp := doJSON(t, h, "GET", "/__contractd/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", resp["status"])
}

func TestRecordedHeadersServedVerbatim(t *testing.T) {
	registry := state.NewRegistry()
	b := route.NewBuilder(registry)
	b.AddInteraction(pact.Interaction{
		ID: "csv", Method: "GET", Path: "/api/v1/export",
		Response: pact.Response{
			Status:  200,
			Headers: map[string]string{"Content-Type": "text/csv", "X-Total-Count": "2"},
			Body:    "id,name\n1,widget\n",
		},
	})
	table, err := b.Build()
	require.NoError(t, err)
	h := NewCORSMiddleware(NewHandler(table, registry))

	req := httptest.NewRequest("GET", "/api/v1/export", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, "2", w.Header().Get("X-Total-Count"))
	assert.Equal(t, "id,name\n1,widget\n", w.Body.String())
}
