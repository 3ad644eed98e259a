package engine

import (
	"strings"

	"github.com/getcontractd/contractd/pkg/route"
)

// Selection is the outcome of matching one route key.
type Selection struct {
	// Variant is the chosen variant.
	Variant *route.Variant

	// State is the active state name that selected the variant, or ""
	// when the variant was chosen by default selection.
	State string
}

// Select deterministically chooses exactly one variant for the key, or nil
// when the key has no variants at all.
//
// Order of selection:
//  1. Unknown key: nil.
//  2. A scope path that the key's path does not fall under disables the
//     active selection for this lookup.
//  3. Active states are tried in selection order (position is priority);
//     for each, variants are scanned in registration order and the first
//     variant tagged with that state wins.
//  4. Default selection: no-state variants are preferred over stateful
//     ones; within the eligible subset, contract-origin variants are tried
//     before custom-origin ones, the first 2xx wins, and failing that the
//     first variant in that order is served.
//
// An active state that is globally known but never tagged on this key simply
// never matches in step 3; that is expected, not an error.
func Select(t *route.Table, key route.Key, activeStates []string, scopePath string) *Selection {
	variants := t.Variants(key)
	if len(variants) == 0 {
		return nil
	}

	inScope := scopePath == "" || strings.HasPrefix(key.Path, scopePath)
	if inScope {
		for _, name := range activeStates {
			for _, v := range variants {
				if v.HasState(name) {
					return &Selection{Variant: v, State: name}
				}
			}
		}
	}

	return &Selection{Variant: defaultVariant(variants)}
}

// defaultVariant applies the default-selection policy of Select step 4.
func defaultVariant(variants []*route.Variant) *route.Variant {
	pool := make([]*route.Variant, 0, len(variants))
	for _, v := range variants {
		if v.Stateless() {
			pool = append(pool, v)
		}
	}
	if len(pool) == 0 {
		pool = variants
	}

	// Stable partition: contract-origin first, registration order kept
	// within each origin.
	ordered := make([]*route.Variant, 0, len(pool))
	for _, v := range pool {
		if v.Origin == route.OriginContract {
			ordered = append(ordered, v)
		}
	}
	for _, v := range pool {
		if v.Origin != route.OriginContract {
			ordered = append(ordered, v)
		}
	}

	for _, v := range ordered {
		if v.Response.Status >= 200 && v.Response.Status < 300 {
			return v
		}
	}
	return ordered[0]
}
