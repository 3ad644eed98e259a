// Package cli implements the contractd command-line interface.
package cli
