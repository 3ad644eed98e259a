package route

import (
	"github.com/getcontractd/contractd/pkg/pact"
)

// Origin records where a variant was declared.
type Origin string

const (
	// OriginContract marks variants loaded from recorded contract files.
	OriginContract Origin = "contract"

	// OriginCustom marks variants declared statically in the custom
	// routes file.
	OriginCustom Origin = "custom"
)

// Variant is one selectable response under a route key: a state-name set, a
// response descriptor, and the origin it was declared by.
type Variant struct {
	// ID identifies the variant in logs and diagnostics.
	ID string

	// States holds the provider state names this variant is tagged with,
	// in declaration order. Empty marks a no-state (default) variant.
	States []string

	// Response is the recorded response descriptor.
	Response pact.Response

	// Origin is contract or custom.
	Origin Origin

	// Source names where the variant came from (provider name for
	// contract variants, the routes file for custom ones).
	Source string
}

// HasState reports whether the variant is tagged with the given state name.
func (v *Variant) HasState(name string) bool {
	for _, s := range v.States {
		if s == name {
			return true
		}
	}
	return false
}

// Stateless reports whether the variant declares no provider state.
func (v *Variant) Stateless() bool {
	return len(v.States) == 0
}
