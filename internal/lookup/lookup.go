package lookup

import "errors"

var (
	// ErrNoTerms is returned when Run is invoked without a lookup term.
	ErrNoTerms = errors.New("lookup requires at least one term")
)

// Source resolves a dotted key path, substituting def when the path misses.
type Source interface {
	GetDefault(path string, def any) any
}

// Module forwards host-supplied lookup terms to a Source. It mirrors the
// plugin contract of the orchestration tool: one positional key string in, a
// single-element result list out.
type Module struct {
	source Source
}

// New constructs a Module backed by the provided source.
func New(source Source) *Module {
	return &Module{source: source}
}

// Run resolves the first term and returns its value as a single-element
// result list. Misses are not errors; they yield a nil element.
func (m *Module) Run(terms []string) ([]any, error) {
	return m.RunDefault(terms, nil)
}

// RunDefault behaves like Run but substitutes def for misses.
func (m *Module) RunDefault(terms []string, def any) ([]any, error) {
	if len(terms) == 0 {
		return nil, ErrNoTerms
	}
	return []any{m.source.GetDefault(terms[0], def)}, nil
}
