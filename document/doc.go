// Package document provides the typed value model handed to the point parser.
//
// A document field is a tree of tagged values:
//
//   - Null:   document.Null()
//   - Number: document.Number(1.2)
//   - String: document.String("1.2,1.3")
//   - Bool:   document.Bool(true)
//   - Array:  document.Array(document.Number(1.2), document.Number(1.3))
//   - Object: document.Object(map[string]document.Value{...})
//
// The parser switches on Kind exhaustively; no reflection is involved once a
// payload has been converted.
//
// Example:
//
//	doc, err := document.Decode([]byte(`{"location": {"x": 1.2, "y": 1.3}}`), nil)
//	if err != nil {
//	    return err
//	}
//	loc := doc["location"] // KindObject
//
// Untyped trees (map[string]any from a JSON decoder, Go literals in tests)
// are converted with FromAny and DocumentFromAny.
package document
