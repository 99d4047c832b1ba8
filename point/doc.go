// Package point provides the planar point value and its sortable binary key.
//
// A Point is a raw Cartesian (x, y) pair. There are no geographic semantics:
// no datum, no wrapping, no coordinate reference system.
//
// # Key Layout
//
// Encode maps a point to a fixed-width 16 byte Key:
//
//	[0:8]   x as a sortable uint64, big-endian
//	[8:16]  y as a sortable uint64, big-endian
//
// Byte-lexicographic order of two keys equals ordering the points by x first,
// then by y. Range construction at query time depends on this order.
//
// NOTE: The layout is persisted by indexes; keep it stable.
//
// # Accepted Forms
//
//   - "x,y" strings (and "x,y,z" when z values are tolerated)
//   - WKT strings: "POINT (x y)", "POINT Z (x y z)"
//   - numeric pairs [x, y] (and [x, y, z] when z values are tolerated)
//
// Object forms ({"x": 1, "y": 2}) are handled by the parser package, which
// understands the document value model.
package point
