package segment

import (
	"encoding/binary"
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/pointfield/point"
)

// StoredField is one stored point value of a document.
type StoredField struct {
	Name  string
	Value point.Key
}

// Point decodes the stored value.
func (f StoredField) Point() point.Point {
	return f.Value.Point()
}

// Segment is an immutable, flushed set of documents.
// It is safe for concurrent reads.
type Segment struct {
	numDocs     int
	compression Compression
	columns     map[string]*column
	points      map[string][]pointEntry
	blocks      []storedBlock
}

// NumDocs returns the number of documents added, with or without points.
func (s *Segment) NumDocs() int {
	return s.numDocs
}

// Fields returns the names of fields with doc values or indexed points,
// sorted.
func (s *Segment) Fields() []string {
	names := make(map[string]struct{}, len(s.columns)+len(s.points))
	for name := range s.columns {
		names[name] = struct{}{}
	}
	for name := range s.points {
		names[name] = struct{}{}
	}
	return slices.Sorted(maps.Keys(names))
}

// DocValues returns the doc-value keys of doc for field, sorted ascending.
// It returns nil if doc has no values for field.
func (s *Segment) DocValues(field string, doc uint32) []point.Key {
	col, ok := s.columns[field]
	if !ok || !col.docs.Contains(doc) {
		return nil
	}
	i := col.docs.Rank(doc) - 1
	return slices.Clone(col.values[col.offsets[i]:col.offsets[i+1]])
}

// DocsWithField returns a copy of the bitmap of docs with doc values for
// field. It is empty if the field is unknown.
func (s *Segment) DocsWithField(field string) *roaring.Bitmap {
	col, ok := s.columns[field]
	if !ok {
		return roaring.New()
	}
	return col.docs.Clone()
}

// Points yields the indexed (key, doc) pairs of field in ascending key
// order. Equal keys are ordered by doc.
func (s *Segment) Points(field string) iter.Seq2[point.Key, uint32] {
	entries := s.points[field]
	return func(yield func(point.Key, uint32) bool) {
		for _, e := range entries {
			if !yield(e.key, e.doc) {
				return
			}
		}
	}
}

// Within returns the docs with an indexed point of field inside the closed
// box [lo, hi].
//
// Keys are x-major, so only the x range is scanned.
func (s *Segment) Within(field string, lo, hi point.Point) *roaring.Bitmap {
	out := roaring.New()
	entries := s.points[field]
	if len(entries) == 0 || lo.X > hi.X || lo.Y > hi.Y {
		return out
	}

	loKey := point.Encode(lo)
	start, _ := slices.BinarySearchFunc(entries, loKey, func(e pointEntry, k point.Key) int {
		return e.key.Compare(k)
	})

	hiKey := point.Encode(hi)
	for _, e := range entries[start:] {
		if e.key.Compare(hiKey) > 0 {
			break
		}
		p := e.key.Point()
		if p.Y >= lo.Y && p.Y <= hi.Y {
			out.Add(e.doc)
		}
	}
	return out
}

// Stored returns the stored fields of doc in the order they were added, or
// nil if doc has none.
func (s *Segment) Stored(doc uint32) ([]StoredField, error) {
	bi, found := slices.BinarySearchFunc(s.blocks, doc, func(b storedBlock, d uint32) int {
		switch {
		case b.docs[len(b.docs)-1] < d:
			return -1
		case b.docs[0] > d:
			return 1
		default:
			return 0
		}
	})
	if !found {
		return nil, nil
	}
	b := s.blocks[bi]

	di, found := slices.BinarySearch(b.docs, doc)
	if !found {
		return nil, nil
	}

	raw, err := unpackBlock(b.data, s.compression)
	if err != nil {
		return nil, fmt.Errorf("stored block %d: %w", bi, err)
	}
	return decodeRecord(raw[b.offsets[di]:])
}

// StoredBytes returns the size of the stored-field blocks as packed.
func (s *Segment) StoredBytes() int {
	n := 0
	for _, b := range s.blocks {
		n += len(b.data)
	}
	return n
}

func decodeRecord(data []byte) ([]StoredField, error) {
	count, n := binary.Uvarint(data)
	if n <= 0 {
		return nil, errCorruptBlock
	}
	data = data[n:]

	var out []StoredField
	for range count {
		nameLen, n := binary.Uvarint(data)
		if n <= 0 || uint64(len(data)-n) < nameLen+point.KeySize {
			return nil, errCorruptBlock
		}
		data = data[n:]
		name := string(data[:nameLen])
		data = data[nameLen:]

		key, err := point.KeyFromBytes(data[:point.KeySize])
		if err != nil {
			return nil, err
		}
		data = data[point.KeySize:]
		out = append(out, StoredField{Name: name, Value: key})
	}
	return out, nil
}
