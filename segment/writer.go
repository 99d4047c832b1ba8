package segment

import (
	"cmp"
	"encoding/binary"
	"errors"
	"fmt"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/pointfield/fields"
	"github.com/hupe1980/pointfield/point"
)

var (
	// ErrDocOrder is returned when doc IDs are not strictly increasing.
	ErrDocOrder = errors.New("doc ids must be strictly increasing")

	// ErrFlushed is returned when adding to a writer after Flush.
	ErrFlushed = errors.New("writer already flushed")
)

// Options for the segment writer.
type Options struct {
	// Compression of stored-field blocks.
	Compression Compression
	// BlockSize is the uncompressed size at which a stored block is cut.
	BlockSize int
}

// DefaultOptions returns the default writer options.
func DefaultOptions() Options {
	return Options{
		Compression: CompressionLZ4,
		BlockSize:   16 * 1024,
	}
}

// Writer accumulates the field sets of documents into a Segment.
//
// It is not safe for concurrent use.
type Writer struct {
	opts    Options
	numDocs int
	lastDoc uint32
	flushed bool

	columns map[string]*column
	points  map[string][]pointEntry

	blocks  []storedBlock
	pending storedBlock
	scratch map[string][]point.Key
	order   []string

	pack func(raw []byte, c Compression) ([]byte, error)
}

// column is the doc-values column of one field. Docs are ranked by the
// bitmap; the values of the i-th doc are values[offsets[i]:offsets[i+1]].
type column struct {
	docs    *roaring.Bitmap
	offsets []uint32
	values  []point.Key
}

type pointEntry struct {
	key point.Key
	doc uint32
}

// storedBlock holds the stored records of consecutive docs.
type storedBlock struct {
	docs    []uint32
	offsets []uint32 // record start in the raw block
	data    []byte   // packed on seal, raw before
}

// NewWriter creates a segment writer. Zero option fields take their defaults.
func NewWriter(opts Options) *Writer {
	defaults := DefaultOptions()
	if opts.BlockSize <= 0 {
		opts.BlockSize = defaults.BlockSize
	}
	return &Writer{
		opts:    opts,
		columns: make(map[string]*column),
		points:  make(map[string][]pointEntry),
		scratch: make(map[string][]point.Key),
		pack:    packBlock,
	}
}

// Add appends the artifacts of document docID.
//
// Doc IDs must be strictly increasing. A nil or empty set still counts as a
// document without point values. A rejected call leaves the writer unchanged.
func (w *Writer) Add(docID uint32, fs *fields.Set) error {
	if w.flushed {
		return ErrFlushed
	}
	if w.numDocs > 0 && docID <= w.lastDoc {
		return fmt.Errorf("%w: %d after %d", ErrDocOrder, docID, w.lastDoc)
	}

	if w.opts.Compression > CompressionZSTD {
		return fmt.Errorf("unknown compression %s", w.opts.Compression)
	}

	var all []fields.Field
	if fs != nil {
		all = fs.All()
	}

	var record []byte
	stored := 0
	for _, f := range all {
		switch f.Kind {
		case fields.Indexed, fields.DocValues:
		case fields.Stored:
			record = binary.AppendUvarint(record, uint64(len(f.Name)))
			record = append(record, f.Name...)
			record = f.Value.AppendTo(record)
			stored++
		default:
			return fmt.Errorf("unknown field kind %d for %q", f.Kind, f.Name)
		}
	}

	// Pack first: it is the only step that can fail and nothing below may
	// run for a rejected call.
	pending := w.pending
	var sealed []storedBlock
	if stored > 0 {
		pending.docs = append(pending.docs, docID)
		pending.offsets = append(pending.offsets, uint32(len(pending.data)))
		pending.data = binary.AppendUvarint(pending.data, uint64(stored))
		pending.data = append(pending.data, record...)

		if len(pending.data) >= w.opts.BlockSize {
			b, err := w.seal(pending)
			if err != nil {
				return err
			}
			sealed = append(sealed, b)
			pending = storedBlock{}
		}
	}

	for _, f := range all {
		switch f.Kind {
		case fields.Indexed:
			w.points[f.Name] = append(w.points[f.Name], pointEntry{key: f.Value, doc: docID})
		case fields.DocValues:
			if _, ok := w.scratch[f.Name]; !ok {
				w.order = append(w.order, f.Name)
			}
			w.scratch[f.Name] = append(w.scratch[f.Name], f.Value)
		}
	}

	// Doc values are sorted per document.
	for _, name := range w.order {
		keys := w.scratch[name]
		slices.SortFunc(keys, point.Key.Compare)

		col, ok := w.columns[name]
		if !ok {
			col = &column{docs: roaring.New(), offsets: []uint32{0}}
			w.columns[name] = col
		}
		col.docs.Add(docID)
		col.values = append(col.values, keys...)
		col.offsets = append(col.offsets, uint32(len(col.values)))
		delete(w.scratch, name)
	}
	w.order = w.order[:0]

	w.pending = pending
	w.blocks = append(w.blocks, sealed...)
	w.numDocs++
	w.lastDoc = docID
	return nil
}

func (w *Writer) seal(b storedBlock) (storedBlock, error) {
	packed, err := w.pack(b.data, w.opts.Compression)
	if err != nil {
		return storedBlock{}, fmt.Errorf("pack stored block: %w", err)
	}
	return storedBlock{docs: b.docs, offsets: b.offsets, data: packed}, nil
}

// Flush seals the writer and returns the segment. The writer cannot be used
// afterwards.
func (w *Writer) Flush() (*Segment, error) {
	if w.flushed {
		return nil, ErrFlushed
	}
	if len(w.pending.docs) > 0 {
		b, err := w.seal(w.pending)
		if err != nil {
			return nil, err
		}
		w.blocks = append(w.blocks, b)
		w.pending = storedBlock{}
	}
	w.flushed = true

	for _, col := range w.columns {
		col.docs.RunOptimize()
	}
	for _, entries := range w.points {
		slices.SortFunc(entries, func(a, b pointEntry) int {
			if c := a.key.Compare(b.key); c != 0 {
				return c
			}
			return cmp.Compare(a.doc, b.doc)
		})
	}

	s := &Segment{
		numDocs:     w.numDocs,
		compression: w.opts.Compression,
		columns:     w.columns,
		points:      w.points,
		blocks:      w.blocks,
	}
	w.columns, w.points, w.blocks = nil, nil, nil
	return s, nil
}
