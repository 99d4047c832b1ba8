// Package testutil provides testing utilities for point fields.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random points, rendering them in every
// accepted input form, and computing ground truth for box queries.
//
// # Random Point Generation
//
//	rng := testutil.NewRNG(seed)
//	pts := rng.UniformPoints(100, -180, 180)
//	pts = rng.ClusteredPoints(100, 5, 0.5)
//	pts = rng.MixedPoints(100) // includes testutil.EdgePoints
//
// # Input Forms
//
//	v := testutil.Value(p, testutil.FormWKT) // "POINT (x y)"
//	v = rng.Occurrence(pts)                  // list of mixed forms
//
// # Ground Truth
//
//	idx := testutil.BruteForceWithin(pts, lo, hi)
package testutil
