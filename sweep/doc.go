// Package sweep iterates the engine over parameter grids and pairs each
// empirical gain with its bound. It produces rows only; rendering them is
// left to whoever consumes the encoded output.
//
// Stochastic sweeps run their points concurrently with a bounded errgroup.
// Point i is seeded with base+i, so a sweep's rows never depend on
// scheduling or on the worker count.
package sweep
