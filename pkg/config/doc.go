// Package config defines the server configuration and the custom routes
// file format.
//
// Files are JSON or YAML, auto-detected by extension. Custom routes declare
// static route variants that live alongside the recorded contract routes;
// they use the same response descriptor shape and may be tagged with
// provider states.
package config
