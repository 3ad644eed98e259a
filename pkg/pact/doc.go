// Package pact loads recorded consumer/provider interactions from a
// directory of Pact contract files.
//
// The contracts directory holds one subdirectory per provider and one JSON
// contract file per consumer. Loading is tolerant: an unreadable provider
// directory or an unparsable contract file is logged and skipped, and a
// missing contracts directory yields an empty interaction list so a server
// configured only with custom routes can still start.
package pact
