package route

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ConflictError reports provider states claimed by both a contract-origin
// and a custom-origin variant of the same route key. Serving such a table
// would make response selection nondeterministic to operators, so startup
// aborts instead.
type ConflictError struct {
	Key    Key
	States []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("route %s: state(s) %q declared by both contract and custom variants",
		e.Key, strings.Join(e.States, ", "))
}

// ValidateConflicts checks every route key that has variants from both
// origins for overlapping state names. All conflicts are reported, not just
// the first.
func ValidateConflicts(t *Table) error {
	var errs []error

	for _, key := range t.keys {
		contract := make(map[string]struct{})
		custom := make(map[string]struct{})
		for _, v := range t.entries[key] {
			for _, name := range v.States {
				switch v.Origin {
				case OriginContract:
					contract[name] = struct{}{}
				case OriginCustom:
					custom[name] = struct{}{}
				}
			}
		}
		if len(contract) == 0 || len(custom) == 0 {
			continue
		}

		var overlap []string
		for name := range contract {
			if _, ok := custom[name]; ok {
				overlap = append(overlap, name)
			}
		}
		if len(overlap) > 0 {
			sort.Strings(overlap)
			errs = append(errs, &ConflictError{Key: key, States: overlap})
		}
	}

	return errors.Join(errs...)
}
