// Package route builds the multi-variant route table the mock engine serves
// from.
//
// Every recorded interaction and every statically declared custom route
// becomes one variant under its (method, exact path) key. Registration order
// within a key is preserved exactly; it is the tie-break of last resort
// during matching. The table is built once at startup and read-only
// afterwards.
package route
