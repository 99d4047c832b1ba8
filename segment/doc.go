// Package segment is an in-memory write path for mapped point fields.
//
// A Writer consumes the fields.Set of each document and, on Flush, produces
// an immutable Segment with three views of the data:
//
//   - doc values: per field and doc, the keys sorted ascending, with a
//     roaring bitmap of the docs that have values
//   - indexed points: (key, doc) pairs sorted by key, scanned by Within
//   - stored fields: per-doc records packed into LZ4 or zstd blocks
package segment
