// Package chem defines the shared language of the periodica system.
//
// This package contains:
//   - Domain records (Element, Reaction) mirroring the on-disk JSON corpus
//   - The query field registry (Field) mapping public field names to
//     typed accessors
//   - The error taxonomy (LoadError, NotFoundError, InvalidQueryError)
//
// The Golden Rule: pkg/chem imports ONLY stdlib.
// All other packages depend on chem, not the reverse.
package chem
