// Package lpcore is the numerical heart of a linear / mixed-integer
// programming solver: the dual-simplex ratio test and the cutting-plane
// pool, the two subsystems where correctness, tolerances and determinism
// actually live.
//
// 🚀 What is lpcore?
//
//	A small, deterministic library the surrounding solver drives once per
//	simplex iteration (or per branch-and-cut round):
//		• ratiotest — bound-flipping dual ratio test with two-phase
//		  breakpoint grouping: picks the entering column, the dual step
//		  length and the set of cheap bound flips; tracks free columns.
//		• cutpool   — compact cut storage with signature-hash duplicate
//		  rejection, cosine-similarity checks, aging/eviction and pure
//		  separation against a trial point.
//		• sparse    — the shared sparse-row view and numeric helpers.
//
// ✨ Why these two together?
//
//   - Both operate on sparse tableau rows under tight tolerances, where a
//     near-zero pivot or a near-duplicate cut quietly ruins convergence.
//   - Both are deterministic by construction: fixed-permutation tie-breaks
//     in the ratio test, stable ids and sorted supports in the pool.
//   - Everything else — parsing, presolve, the outer simplex and tree
//     search loops — is a collaborator that feeds rows in and takes
//     decisions out.
//
// Single-threaded by design: every call runs to completion on the
// caller's goroutine, and failures cross the boundary as returned errors,
// never panics through the numerical hot paths.
//
//	go get github.com/katalvlaran/lpcore
package lpcore
