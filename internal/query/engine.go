// Package query answers identifier lookups, predicate filters, reaction
// searches, and corpus statistics over a loaded snapshot.
package query

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/periodica-labs/periodica/internal/store"
	"github.com/periodica-labs/periodica/pkg/chem"
)

// Engine runs queries against one immutable snapshot.
type Engine struct {
	store  *store.Store
	logger *slog.Logger
}

// New creates a query engine over the given snapshot.
func New(s *store.Store, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{store: s, logger: logger}
}

// Store exposes the underlying snapshot.
func (e *Engine) Store() *store.Store {
	return e.store
}

// FindByIdentifier resolves an atomic number, symbol, or name
// (case-insensitive, in that precedence order) to an element.
// A miss is a *chem.NotFoundError.
func (e *Engine) FindByIdentifier(identifier string) (chem.Element, error) {
	elem, ok := e.store.Lookup(identifier)
	if !ok {
		return chem.Element{}, &chem.NotFoundError{Identifier: identifier}
	}
	return elem, nil
}

// Filter returns the elements matching every predicate, ascending by
// atomic number. With no predicates it returns the whole corpus.
func (e *Engine) Filter(preds []Predicate) ([]chem.Element, error) {
	matchers := make([]matcher, len(preds))
	for i, p := range preds {
		m, err := p.compile()
		if err != nil {
			return nil, err
		}
		matchers[i] = m
	}

	elements := e.store.Elements()
	if len(matchers) == 0 {
		return elements, nil
	}

	var out []chem.Element
	for i := range elements {
		match := true
		for _, m := range matchers {
			if !m(&elements[i]) {
				match = false
				break
			}
		}
		if match {
			out = append(out, elements[i])
		}
	}
	e.logger.Debug("filter", "predicates", len(preds), "matched", len(out))
	return out, nil
}

// ReactionFilter narrows a reaction search.
type ReactionFilter struct {
	// Category filters by reaction category; empty means all.
	Category string
	// Type filters by reaction type, case-insensitively; empty means
	// all. Types are open-ended, so an unmatched value is not an error,
	// it just matches nothing.
	Type string
}

func (f ReactionFilter) compile() (func(*chem.Reaction) bool, error) {
	var wantCat chem.ReactionCategory
	if f.Category != "" {
		cat, ok := chem.ParseReactionCategory(f.Category)
		if !ok {
			return nil, &chem.InvalidQueryError{Part: f.Category, Reason: "unknown reaction category"}
		}
		wantCat = cat
	}
	return func(r *chem.Reaction) bool {
		if wantCat != "" && r.Category != wantCat {
			return false
		}
		if f.Type != "" && !r.Type.Matches(f.Type) {
			return false
		}
		return true
	}, nil
}

// ReactionsFor returns the reactions involving the identified element,
// ascending by ID. The identifier must resolve (else NotFound); an
// unknown category value is an InvalidQuery.
func (e *Engine) ReactionsFor(identifier string, f ReactionFilter) ([]chem.Reaction, error) {
	elem, err := e.FindByIdentifier(identifier)
	if err != nil {
		return nil, err
	}
	match, err := f.compile()
	if err != nil {
		return nil, err
	}

	var out []chem.Reaction
	for _, r := range e.store.ReactionsFor(elem.Symbol) {
		if match(&r) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Reactions returns reactions across the whole corpus, optionally
// narrowed by category and type, ascending by ID.
func (e *Engine) Reactions(f ReactionFilter) ([]chem.Reaction, error) {
	match, err := f.compile()
	if err != nil {
		return nil, err
	}

	var out []chem.Reaction
	for _, r := range e.store.Reactions() {
		if match(&r) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Reaction returns one reaction by ID. A miss is a *chem.NotFoundError.
func (e *Engine) Reaction(id string) (chem.Reaction, error) {
	r, ok := e.store.Reaction(id)
	if !ok {
		return chem.Reaction{}, &chem.NotFoundError{Identifier: id}
	}
	return r, nil
}

// Sort orders elements in place by a registry field. Elements whose
// value for the field is null go last regardless of direction; ties
// break ascending by atomic number. List fields cannot be sorted.
func Sort(elements []chem.Element, fieldName string, descending bool) error {
	field, ok := chem.FieldByName(fieldName)
	if !ok {
		return &chem.InvalidQueryError{Part: fieldName, Reason: "unknown field"}
	}
	if field.Kind == chem.FieldStringList {
		return &chem.InvalidQueryError{Part: fieldName, Reason: "cannot sort by a list field"}
	}

	less := func(a, b *chem.Element) bool {
		switch field.Kind {
		case chem.FieldNumeric:
			av, aok := field.Number(a)
			bv, bok := field.Number(b)
			if aok != bok {
				return aok // present before null, independent of direction
			}
			if aok && av != bv {
				if descending {
					return av > bv
				}
				return av < bv
			}
		case chem.FieldString:
			av := strings.ToLower(field.Text(a))
			bv := strings.ToLower(field.Text(b))
			if (av == "") != (bv == "") {
				return av != ""
			}
			if av != bv {
				if descending {
					return av > bv
				}
				return av < bv
			}
		case chem.FieldBool:
			av, bv := field.Flag(a), field.Flag(b)
			if av != bv {
				if descending {
					return av
				}
				return bv
			}
		}
		return a.AtomicNumber < b.AtomicNumber
	}

	sort.Slice(elements, func(i, j int) bool {
		return less(&elements[i], &elements[j])
	})
	return nil
}
