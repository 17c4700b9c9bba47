// Package stats summarizes simulated sample batches for display.
//
// It sits outside the simulation engine: nothing in triangular or project depends on it.
// Percentiles in Summary come from an HDR histogram and are accurate to about 0.1% of the
// sample range; Quantile and ProbabilityAtMost are exact.
package stats
