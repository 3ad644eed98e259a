// Package state holds the process-wide provider-state registry.
//
// The registry tracks every provider state name discovered while building
// the route table, the operator's current active selection, and an optional
// path-scope restriction. Selection is global to the process and persists
// until the next explicit mutation or restart; there is no expiry.
package state
