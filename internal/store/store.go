// Package store loads the JSON corpus from disk into an immutable,
// multi-key indexed snapshot. All lookups after Open are pure reads.
package store

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/periodica-labs/periodica/pkg/chem"
)

// Store is an immutable snapshot of the corpus. It is safe for
// concurrent use; accessors return copies the caller may keep.
type Store struct {
	dataRoot string

	elements []chem.Element
	byNumber map[int]int
	bySymbol map[string]int
	byName   map[string]int

	reactions []chem.Reaction
	byID      map[string]int
	involving map[string][]int
}

// Open loads every element and reaction file under dataRoot and builds
// the snapshot. Loading is all-or-nothing: any unreadable or malformed
// file, or any duplicate key, returns a *chem.LoadError and no Store.
func Open(ctx context.Context, dataRoot string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	start := time.Now()

	elements, err := loadElements(ctx, dataRoot)
	if err != nil {
		return nil, err
	}
	reactions, err := loadReactions(ctx, dataRoot)
	if err != nil {
		return nil, err
	}

	s := &Store{
		dataRoot:  dataRoot,
		byNumber:  make(map[int]int, len(elements)),
		bySymbol:  make(map[string]int, len(elements)),
		byName:    make(map[string]int, len(elements)),
		byID:      make(map[string]int, len(reactions)),
		involving: make(map[string][]int),
	}
	if err := s.indexElements(elements); err != nil {
		return nil, err
	}
	if err := s.indexReactions(reactions); err != nil {
		return nil, err
	}

	logger.Debug("corpus loaded",
		"data_root", dataRoot,
		"elements", len(s.elements),
		"reactions", len(s.reactions),
		"duration", time.Since(start))
	return s, nil
}

func (s *Store) indexElements(loaded []loadedElement) error {
	sort.Slice(loaded, func(i, j int) bool {
		return loaded[i].element.AtomicNumber < loaded[j].element.AtomicNumber
	})

	s.elements = make([]chem.Element, 0, len(loaded))
	for _, le := range loaded {
		e := le.element
		sym := strings.ToUpper(e.Symbol)
		name := strings.ToLower(e.Name)
		if _, dup := s.byNumber[e.AtomicNumber]; dup {
			return &chem.LoadError{Path: le.path, Err: errDuplicate("atomic number", strconv.Itoa(e.AtomicNumber))}
		}
		if _, dup := s.bySymbol[sym]; dup {
			return &chem.LoadError{Path: le.path, Err: errDuplicate("symbol", e.Symbol)}
		}
		if _, dup := s.byName[name]; dup {
			return &chem.LoadError{Path: le.path, Err: errDuplicate("name", e.Name)}
		}

		i := len(s.elements)
		s.elements = append(s.elements, e)
		s.byNumber[e.AtomicNumber] = i
		s.bySymbol[sym] = i
		s.byName[name] = i
	}
	return nil
}

func (s *Store) indexReactions(loaded []loadedReaction) error {
	sort.Slice(loaded, func(i, j int) bool {
		return loaded[i].reaction.ID < loaded[j].reaction.ID
	})

	s.reactions = make([]chem.Reaction, 0, len(loaded))
	for _, lr := range loaded {
		r := lr.reaction
		if _, dup := s.byID[r.ID]; dup {
			return &chem.LoadError{Path: lr.path, Err: errDuplicate("reaction id", r.ID)}
		}

		i := len(s.reactions)
		s.reactions = append(s.reactions, r)
		s.byID[r.ID] = i
		for _, sym := range r.ElementsInvolved {
			key := strings.ToUpper(sym)
			s.involving[key] = append(s.involving[key], i)
		}
	}
	return nil
}

// Element returns the element with the given atomic number.
func (s *Store) Element(atomicNumber int) (chem.Element, bool) {
	i, ok := s.byNumber[atomicNumber]
	if !ok {
		return chem.Element{}, false
	}
	return s.elements[i], true
}

// ElementBySymbol returns the element with the given symbol
// (case-insensitive).
func (s *Store) ElementBySymbol(symbol string) (chem.Element, bool) {
	i, ok := s.bySymbol[strings.ToUpper(symbol)]
	if !ok {
		return chem.Element{}, false
	}
	return s.elements[i], true
}

// ElementByName returns the element with the given name
// (case-insensitive).
func (s *Store) ElementByName(name string) (chem.Element, bool) {
	i, ok := s.byName[strings.ToLower(name)]
	if !ok {
		return chem.Element{}, false
	}
	return s.elements[i], true
}

// Lookup resolves an identifier that may be an atomic number, a symbol,
// or a name, tried in that precedence order.
func (s *Store) Lookup(identifier string) (chem.Element, bool) {
	ident := strings.TrimSpace(identifier)
	if z, err := strconv.Atoi(ident); err == nil {
		return s.Element(z)
	}
	if e, ok := s.ElementBySymbol(ident); ok {
		return e, true
	}
	return s.ElementByName(ident)
}

// Elements returns all elements ascending by atomic number.
func (s *Store) Elements() []chem.Element {
	out := make([]chem.Element, len(s.elements))
	copy(out, s.elements)
	return out
}

// Reactions returns all reactions ascending by ID.
func (s *Store) Reactions() []chem.Reaction {
	out := make([]chem.Reaction, len(s.reactions))
	copy(out, s.reactions)
	return out
}

// Reaction returns the reaction with the given ID.
func (s *Store) Reaction(id string) (chem.Reaction, bool) {
	i, ok := s.byID[id]
	if !ok {
		return chem.Reaction{}, false
	}
	return s.reactions[i], true
}

// ReactionsFor returns the reactions whose elements_involved contains
// the given symbol (case-insensitive), ascending by ID.
func (s *Store) ReactionsFor(symbol string) []chem.Reaction {
	idxs := s.involving[strings.ToUpper(symbol)]
	out := make([]chem.Reaction, len(idxs))
	for i, idx := range idxs {
		out[i] = s.reactions[idx]
	}
	return out
}

// Len returns the number of elements in the snapshot.
func (s *Store) Len() int {
	return len(s.elements)
}

// ReactionCount returns the number of reactions in the snapshot.
func (s *Store) ReactionCount() int {
	return len(s.reactions)
}

// DataRoot returns the directory the snapshot was loaded from.
func (s *Store) DataRoot() string {
	return s.dataRoot
}
