// Package sparse provides the small numeric leaf types shared by the
// simplex ratio-test and cut-pool packages.
//
// 🚀 What lives here?
//
//	• Row       — a sparse vector view over a dense backing array
//	              (index list + dense values), the shape in which the
//	              surrounding solver hands tableau rows to this core.
//	• IsInf     — the solver-wide "bound is infinite" predicate.
//	• Norm2     — Euclidean norm of a coefficient slice.
//	• Dot       — dense dot product.
//	• RelativeDiff — relative difference of two floats for tolerance checks.
//
// ✨ Why a separate package?
//
//   - ratiotest and cutpool both consume sparse rows and tolerance helpers;
//     keeping them in one leaf avoids any dependency between the two cores.
//   - No state, no mutation: everything is a value or a read-only view.
//
// All helpers are deterministic and allocation-free.
package sparse
