// doc.go - top level documentation
//
// License GPLv2
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

// Package rainbow implements a time/memory trade-off password recovery
// engine: given the hash of a short password drawn from a fixed character
// alphabet, it attempts to recover the preimage using a precomputed
// Hellman-style rainbow table.
//
// A Table is built once (Builder), persisted to disk (RTXT/RBIN via
// Save/Load), and later loaded and queried read-only (Finder). Building
// is CPU-bound and parallel; querying is a two-phase search also
// parallelized across chain offsets.
//
// Dictionary-mode builds partition a preloaded password list across
// workers by sorting it first, so the same list always yields the same
// per-worker slices regardless of Go's randomized map iteration order.
package rainbow
