// Package engine provides the core mock server: deterministic variant
// selection against the route table, the HTTP dispatcher, the state-control
// endpoints, and the server lifecycle.
package engine
