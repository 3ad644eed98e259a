package pact

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"

	"github.com/getcontractd/contractd/pkg/logging"
)

// LoadError records a non-fatal failure for one file or directory. Loading
// continues past these; the offending unit is skipped.
type LoadError struct {
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error { return e.Err }

// LoadResult contains everything a load pass produced.
type LoadResult struct {
	// Interactions are all interactions from all successfully parsed
	// files, in provider/file/declaration order.
	Interactions []Interaction

	// FileCount is the number of contract files parsed successfully.
	FileCount int

	// Errors are the non-fatal per-file and per-directory failures.
	Errors []LoadError
}

// Loader reads a contracts directory tree into memory.
type Loader struct {
	// Dir is the top-level contracts directory.
	Dir string

	log *slog.Logger
}

// NewLoader creates a Loader for the given contracts directory.
func NewLoader(dir string) *Loader {
	return &Loader{Dir: dir, log: logging.Nop()}
}

// SetLogger sets the operational logger.
func (l *Loader) SetLogger(log *slog.Logger) {
	if log != nil {
		l.log = log
	}
}

// Load reads every provider subdirectory and parses every contract file in
// it. A missing contracts directory is not an error: the server can still
// serve custom routes with zero contract routes.
func (l *Loader) Load() (*LoadResult, error) {
	result := &LoadResult{}

	info, err := os.Stat(l.Dir)
	if os.IsNotExist(err) {
		l.log.Warn("contracts directory not found, starting with no contract routes", "dir", l.Dir)
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to access contracts directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("contracts path is not a directory: %s", l.Dir)
	}

	providers, err := os.ReadDir(l.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read contracts directory: %w", err)
	}

	for _, entry := range providers {
		if !entry.IsDir() {
			continue
		}
		l.loadProvider(filepath.Join(l.Dir, entry.Name()), entry.Name(), result)
	}

	return result, nil
}

// loadProvider parses every contract file under one provider directory.
// Consumer files may be nested, so discovery uses a recursive glob.
func (l *Loader) loadProvider(dir, provider string, result *LoadResult) {
	pattern := filepath.Join(dir, "**", "*.json")
	files, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		l.log.Warn("skipping provider directory", "provider", provider, "error", err)
		result.Errors = append(result.Errors, LoadError{
			Path:    dir,
			Message: "failed to scan provider directory",
			Err:     err,
		})
		return
	}

	for _, file := range files {
		interactions, err := l.loadFile(file, provider)
		if err != nil {
			l.log.Warn("skipping contract file", "file", file, "error", err)
			result.Errors = append(result.Errors, LoadError{
				Path:    file,
				Message: "failed to parse contract",
				Err:     err,
			})
			continue
		}
		result.Interactions = append(result.Interactions, interactions...)
		result.FileCount++
		l.log.Info("loaded contract file",
			"provider", provider,
			"file", filepath.Base(file),
			"interactions", len(interactions),
		)
	}
}

// loadFile parses one contract file into interactions.
func (l *Loader) loadFile(path, provider string) ([]Interaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := ValidateDocument(data); err != nil {
		return nil, fmt.Errorf("contract schema violation: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid contract JSON: %w", err)
	}

	// Prefer the name declared inside the document over the directory name.
	if doc.Provider.Name != "" {
		provider = doc.Provider.Name
	}

	interactions := make([]Interaction, 0, len(doc.Interactions))
	for i := range doc.Interactions {
		di := &doc.Interactions[i]
		if err := di.Validate(); err != nil {
			return nil, err
		}
		interactions = append(interactions, di.ToInteraction(uuid.NewString(), provider, doc.Consumer.Name))
	}
	return interactions, nil
}
