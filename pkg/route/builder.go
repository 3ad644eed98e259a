package route

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/getcontractd/contractd/pkg/logging"
	"github.com/getcontractd/contractd/pkg/pact"
	"github.com/getcontractd/contractd/pkg/state"
)

// Builder accumulates recorded interactions and custom routes into a Table.
// Every discovered state name is also registered with the state registry,
// tagged by origin so conflicts can be reported precisely.
type Builder struct {
	table    *Table
	registry *state.Registry
	log      *slog.Logger
}

// NewBuilder creates a Builder registering state names into the given
// registry.
func NewBuilder(registry *state.Registry) *Builder {
	return &Builder{
		table:    newTable(),
		registry: registry,
		log:      logging.Nop(),
	}
}

// SetLogger sets the operational logger.
func (b *Builder) SetLogger(log *slog.Logger) {
	if log != nil {
		b.log = log
	}
}

// AddInteraction appends one contract-origin variant for the interaction's
// route key.
func (b *Builder) AddInteraction(in pact.Interaction) {
	key := NewKey(in.Method, in.Path)
	v := &Variant{
		ID:       in.ID,
		States:   append([]string(nil), in.States...),
		Response: in.Response,
		Origin:   OriginContract,
		Source:   in.Provider,
	}
	b.table.add(key, v)
	for _, name := range v.States {
		b.registry.RegisterContract(name)
	}
	b.log.Debug("registered contract route",
		"route", key.String(),
		"states", v.States,
		"status", v.Response.Status,
	)
}

// AddCustom appends one custom-origin variant. Custom routes come from the
// statically declared routes file, not from recorded contracts.
func (b *Builder) AddCustom(method, path string, states []string, resp pact.Response, source string) {
	key := NewKey(method, path)
	v := &Variant{
		ID:       uuid.NewString(),
		States:   append([]string(nil), states...),
		Response: resp,
		Origin:   OriginCustom,
		Source:   source,
	}
	b.table.add(key, v)
	for _, name := range v.States {
		b.registry.RegisterCustom(name)
	}
	b.log.Debug("registered custom route",
		"route", key.String(),
		"states", v.States,
		"status", v.Response.Status,
	)
}

// Build validates the accumulated table and returns it. A state name claimed
// by both a contract variant and a custom variant of the same key makes
// selection ambiguous, so Build fails instead of guessing.
func (b *Builder) Build() (*Table, error) {
	if err := ValidateConflicts(b.table); err != nil {
		return nil, err
	}
	return b.table, nil
}
