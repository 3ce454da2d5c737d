// Package ratiotest implements the dual-simplex Bound-Flip Ratio Test
// (BFRT) with the EXPAND-style breakpoint grouping used to pick the
// entering variable on every dual simplex iteration.
//
// 🚀 What is the BFRT?
//
//	The dual ratio test must decide how far the dual step may advance and
//	which nonbasic variable enters the basis. Under degeneracy many
//	breakpoints cluster at (near-)zero step length; pivoting on one of them
//	makes no progress. The BFRT instead *flips* the bound of every variable
//	whose breakpoint is passed — a cheap update — and spends the single
//	costly basis change on one well-sized pivot further along the ray.
//
// Pipeline (one call sequence per iteration):
//
//  1. PackRow        — pack the sparse pivot row into (index, value) pairs.
//  2. ChoosePossible — filter candidates above the degeneracy-adaptive
//     pivot tolerance and bound the step from their dual slacks.
//  3. ChooseFinal    — coarse geometric expansion, exact breakpoint
//     grouping, numerically safeguarded breakpoint selection
//     (best magnitude, permutation-order tie-break), flip-set assembly.
//  4. UpdateDual / UpdateFlip / ComputeDevexWeight — apply the realized
//     step to the borrowed dual values, flip the listed bounds, and
//     produce the approximate steepest-edge weight.
//
// Determinism:
//
//	For fixed floating-point inputs the selected pivot is reproducible
//	regardless of storage order: ties on pivot magnitude break on the
//	caller-supplied fixed column permutation.
//
// Failure semantics:
//
//	A row where every candidate falls below the pivot tolerance yields a
//	zero step and an empty flip set — valid, not an error. A grouping pass
//	that stops making progress returns ErrStagnation; recovery
//	(refactorize, rephase) belongs to the caller.
//
// The package also hosts FreeTracker, the bookkeeping for free
// (doubly-unbounded) nonbasic columns whose movement sign is resolved
// against each pivot row.
package ratiotest
