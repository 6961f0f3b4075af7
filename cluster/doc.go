// Package cluster merges noisy 1-D coordinates into clean boundary
// lines.
//
// Structure-recognition models report each table gridline several
// times with slightly different coordinates. [Clusterer] collapses
// these repeats to a single center per true line using a two-pass
// algorithm: a greedy walk that groups coordinates against each
// cluster's running mean, followed by a merge pass that folds adjacent
// centers together until no further merge occurs.
//
// The clustering threshold adapts to the data: 70% of the mean gap
// between coordinates, with a small-gap floor that preserves detail
// among closely packed lines.
//
// Clustering is deterministic, independent of input order, and
// idempotent.
package cluster
