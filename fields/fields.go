// Package fields holds the per-document output of field mapping.
//
// A Set is built fresh for every document, filled by the field mappers and
// handed to the indexing write path. It is not safe for concurrent use.
package fields

import (
	"slices"

	"github.com/hupe1980/pointfield/point"
)

// Kind is the storage representation of an artifact.
type Kind uint8

const (
	// Indexed is the range-queryable representation.
	Indexed Kind = iota + 1
	// DocValues is the column-oriented representation used for sorting and aggregations.
	DocValues
	// Stored is the retrievable copy kept alongside the index.
	Stored
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case Indexed:
		return "indexed"
	case DocValues:
		return "doc_values"
	case Stored:
		return "stored"
	default:
		return "unknown"
	}
}

// Field is one encoded artifact of one point.
type Field struct {
	Name  string
	Kind  Kind
	Value point.Key
}

// Point decodes the artifact value.
func (f Field) Point() point.Point {
	return point.Decode(f.Value)
}

// BinaryValue returns a copy of the encoded bytes.
func (f Field) BinaryValue() []byte {
	return f.Value.Bytes()
}

// Set is the ordered collection of artifacts of one document.
type Set struct {
	fields  []Field
	ignored []string
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{}
}

// Add appends artifacts in order.
func (s *Set) Add(fs ...Field) {
	s.fields = append(s.fields, fs...)
}

// All returns a copy of every artifact in insertion order.
func (s *Set) All() []Field {
	return slices.Clone(s.fields)
}

// Len returns the number of artifacts.
func (s *Set) Len() int {
	return len(s.fields)
}

// Fields returns the artifacts named name, in insertion order.
func (s *Set) Fields(name string) []Field {
	var out []Field
	for _, f := range s.fields {
		if f.Name == name {
			out = append(out, f)
		}
	}
	return out
}

// FieldsOfKind returns the artifacts named name with representation k.
func (s *Set) FieldsOfKind(name string, k Kind) []Field {
	var out []Field
	for _, f := range s.fields {
		if f.Name == name && f.Kind == k {
			out = append(out, f)
		}
	}
	return out
}

// Field returns the first artifact named name.
func (s *Set) Field(name string) (Field, bool) {
	for _, f := range s.fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// BinaryValue returns the bytes of the first artifact named name, or nil.
func (s *Set) BinaryValue(name string) []byte {
	f, ok := s.Field(name)
	if !ok {
		return nil
	}
	return f.BinaryValue()
}

// AddIgnored records that name had values dropped as malformed.
// Each name is recorded once.
func (s *Set) AddIgnored(name string) {
	if !slices.Contains(s.ignored, name) {
		s.ignored = append(s.ignored, name)
	}
}

// Ignored returns a copy of the names of fields with dropped values.
func (s *Set) Ignored() []string {
	return slices.Clone(s.ignored)
}
