// Package mapping builds the per-field configuration of a point field.
//
// A Config is produced once, at schema setup, by Build and is immutable
// afterwards. It is safe to share one Config across goroutines parsing
// documents concurrently.
//
// Options mirror the mapping parameters of a point field:
//
//	{
//	  "type": "point",
//	  "ignore_malformed": false,
//	  "ignore_z_value": true,
//	  "null_value": "1,2",
//	  "store": false,
//	  "doc_values": true,
//	  "index": true
//	}
//
// The null_value is parsed and validated by Build with the same rules as
// document input. A malformed null_value always fails, regardless of
// ignore_malformed: it is schema data, not document data.
package mapping
