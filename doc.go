// Package pointfield maps planar point fields of documents into sortable,
// fixed-width binary artifacts for a search index.
//
// A point field accepts several equivalent input forms, all of which encode
// to the same 16 byte key:
//
//	{"location": {"x": 1.2, "y": 1.3}}
//	{"location": "1.2,1.3"}
//	{"location": "POINT (1.2 1.3)"}
//	{"location": [1.2, 1.3]}
//
// and lists of them:
//
//	{"location": [{"x": 1.2, "y": 1.3}, "1.4,1.5", [1.6, 1.7]]}
//
// # Quick Start
//
//	schema, err := pointfield.SchemaFromJSON([]byte(`{
//	    "properties": {
//	        "location": {"type": "point", "store": true, "null_value": "0,0"}
//	    }
//	}`))
//	if err != nil {
//	    return err
//	}
//
//	fs, err := schema.ParseJSON([]byte(`{"location": "1.2,1.3"}`))
//	if err != nil {
//	    return err // document rejected
//	}
//	for _, f := range fs.Fields("location") {
//	    fmt.Println(f.Kind, f.Point())
//	}
//
// # Representations
//
// Each point writes one artifact per enabled representation, in this order:
//
//   - indexed    (index, default true)
//   - doc values (doc_values, default true)
//   - stored     (store, default false)
//
// # Validation
//
//   - ignore_malformed (default false): drop malformed values instead of
//     rejecting the document. Dropped fields are listed in fields.Set.Ignored.
//   - ignore_z_value (default true): accept and discard a third coordinate.
//   - null_value: the point indexed for an explicit null. Validated when the
//     mapping is built, never tolerated when malformed.
//
// # Concurrency
//
// Configurations, field mappers and schemas are immutable and safe to share.
// Schema.ParseBatch maps documents in parallel.
//
// # Subpackages
//
//   - point:    point value and key codec
//   - document: tagged value model of document input
//   - parser:   input normalization and array disambiguation
//   - mapping:  field configuration
//   - fields:   per-document artifact set
//   - segment:  in-memory write path consuming artifact sets
package pointfield
