// Package parser turns one occurrence of a point field into points.
//
// An occurrence is a document.Value handed over by the document walker. Its
// shape is decided once, at the top level, by Classify:
//
//	null                      -> the configured null_value, or nothing
//	{"x": 1, "y": 2}          -> one point
//	"1,2" / "POINT (1 2)"     -> one point
//	[1, 2]                    -> one point (every element is a bare number)
//	[[1, 2], "3,4", {...}]    -> a list; each element is parsed as one point
//
// Malformed values either fail the occurrence or are dropped one by one,
// depending on the ignore_malformed setting of the field.
package parser
