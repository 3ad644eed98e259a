package pact

import (
	"fmt"
	"strings"
)

// Interaction is a single recorded request/response example. Interactions
// are immutable once loaded; the route table references them read-only.
type Interaction struct {
	// ID is assigned at load time and identifies the interaction in logs
	// and route diagnostics.
	ID string

	// Description is the free-text description recorded in the contract.
	Description string

	// Provider and Consumer name the contract parties, taken from the
	// contract document (the provider also names the subdirectory the
	// file was found under).
	Provider string
	Consumer string

	// Method is the uppercase HTTP method of the recorded request.
	Method string

	// Path is the exact recorded request path. No templating: a path
	// containing a literal numeric segment matches only that literal.
	Path string

	// States holds the normalized provider state names declared by the
	// interaction, in declaration order. Empty for no-state interactions.
	States []string

	// Response is the recorded response served when this interaction is
	// selected.
	Response Response
}

// Response describes a recorded response: status code, header mapping, and
// body payload. The body is the decoded JSON value from the contract file
// and is served back verbatim.
type Response struct {
	Status  int
	Headers map[string]string
	Body    any
}

// Document is the on-disk shape of a Pact contract file.
type Document struct {
	Consumer     Pacticipant           `json:"consumer"`
	Provider     Pacticipant           `json:"provider"`
	Interactions []DocumentInteraction `json:"interactions"`
}

// Pacticipant names one party to a contract.
type Pacticipant struct {
	Name string `json:"name"`
}

// DocumentInteraction is one interaction as recorded in a contract file.
// Provider states arrive in either of two legacy shapes: the v2 single
// providerState field, or the v3 providerStates list of name-bearing
// objects. Both are kept here and normalized by NormalizeStates.
type DocumentInteraction struct {
	Description    string           `json:"description"`
	ProviderState  string           `json:"providerState,omitempty"`
	ProviderStates []ProviderState  `json:"providerStates,omitempty"`
	Request        DocumentRequest  `json:"request"`
	Response       DocumentResponse `json:"response"`
}

// ProviderState is the v3 name-bearing state object.
type ProviderState struct {
	Name string `json:"name"`
}

// DocumentRequest is the recorded request half of an interaction. Only the
// method and exact path participate in routing.
type DocumentRequest struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// DocumentResponse is the recorded response half of an interaction.
type DocumentResponse struct {
	Status  int               `json:"status"`
	Headers map[string]string `json:"headers,omitempty"`
	Body    any               `json:"body,omitempty"`
}

// NormalizeStates collapses the two provider-state declaration shapes into
// one canonical ordered name list. The single-field name comes first, then
// the list entries in declaration order. Blank and duplicate names are
// dropped.
func NormalizeStates(single string, many []ProviderState) []string {
	var names []string
	seen := make(map[string]struct{})

	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	add(single)
	for _, ps := range many {
		add(ps.Name)
	}
	return names
}

// ToInteraction converts a document interaction into the in-memory form.
// The method is uppercased and provider states are normalized.
func (d *DocumentInteraction) ToInteraction(id, provider, consumer string) Interaction {
	return Interaction{
		ID:          id,
		Description: d.Description,
		Provider:    provider,
		Consumer:    consumer,
		Method:      strings.ToUpper(strings.TrimSpace(d.Request.Method)),
		Path:        d.Request.Path,
		States:      NormalizeStates(d.ProviderState, d.ProviderStates),
		Response: Response{
			Status:  d.Response.Status,
			Headers: d.Response.Headers,
			Body:    d.Response.Body,
		},
	}
}

// Validate checks the fields routing depends on. Contract files missing a
// method, path, or status produce broken route entries, so they are rejected
// at load time rather than at request time.
func (d *DocumentInteraction) Validate() error {
	if strings.TrimSpace(d.Request.Method) == "" {
		return fmt.Errorf("interaction %q: request method is required", d.Description)
	}
	if d.Request.Path == "" {
		return fmt.Errorf("interaction %q: request path is required", d.Description)
	}
	if !strings.HasPrefix(d.Request.Path, "/") {
		return fmt.Errorf("interaction %q: request path must start with /", d.Description)
	}
	if d.Response.Status < 100 || d.Response.Status > 599 {
		return fmt.Errorf("interaction %q: response status %d out of range", d.Description, d.Response.Status)
	}
	return nil
}
