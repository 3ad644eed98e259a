package config

import (
	"fmt"
	"strings"
)

// CustomRoute declares one static route variant outside the recorded
// contracts. State names use the same two declaration shapes contracts do:
// a single state field or a states list.
type CustomRoute struct {
	Method string `json:"method" yaml:"method"`
	Path   string `json:"path" yaml:"path"`

	State  string   `json:"state,omitempty" yaml:"state,omitempty"`
	States []string `json:"states,omitempty" yaml:"states,omitempty"`

	Response CustomResponse `json:"response" yaml:"response"`
}

// CustomResponse is the response descriptor for a custom route.
type CustomResponse struct {
	Status  int               `json:"status" yaml:"status"`
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Body    any               `json:"body,omitempty" yaml:"body,omitempty"`
}

// CustomRoutesFile is the on-disk collection of custom routes.
type CustomRoutesFile struct {
	Version string        `json:"version,omitempty" yaml:"version,omitempty"`
	Routes  []CustomRoute `json:"routes" yaml:"routes"`
}

// StateNames merges the two declaration shapes into one ordered name list,
// single field first, dropping blanks and duplicates.
func (r *CustomRoute) StateNames() []string {
	var names []string
	seen := make(map[string]struct{})
	for _, name := range append([]string{r.State}, r.States...) {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// Validate checks the fields routing depends on.
func (r *CustomRoute) Validate() error {
	if strings.TrimSpace(r.Method) == "" {
		return fmt.Errorf("custom route %q: method is required", r.Path)
	}
	if !strings.HasPrefix(r.Path, "/") {
		return fmt.Errorf("custom route %q: path must start with /", r.Path)
	}
	if r.Response.Status < 100 || r.Response.Status > 599 {
		return fmt.Errorf("custom route %s %s: response status %d out of range",
			strings.ToUpper(r.Method), r.Path, r.Response.Status)
	}
	return nil
}

// LoadCustomRoutes reads a custom routes file (JSON or YAML by extension)
// and validates every route in it. Unlike contract loading, errors here are
// fatal: the file is operator-authored, so a broken entry is a configuration
// bug rather than a recorded artifact to skip.
func LoadCustomRoutes(path string) (*CustomRoutesFile, error) {
	var file CustomRoutesFile
	if err := readConfigFile(path, &file); err != nil {
		return nil, err
	}
	for i := range file.Routes {
		if err := file.Routes[i].Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return &file, nil
}
