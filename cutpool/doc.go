// Package cutpool stores, deduplicates, ages and separates the cutting
// planes generated during branch-and-cut.
//
// 🚀 What does the pool do?
//
//	Separators produce many candidate inequalities per round, most of them
//	redundant, near-duplicate, or useful for only a few rounds. The pool
//	keeps them cheap:
//	  • compact storage — one shared coefficient arena with stable integer
//	    cut ids and slot reuse after eviction (RowMatrix)
//	  • duplicate rejection — a support-signature hash buckets candidate
//	    rows; identical support plus near-unit cosine similarity means the
//	    existing id is returned and nothing is stored
//	  • aging — cuts resident in the working LP are protected; inactive
//	    cuts age each epoch and become eviction-eligible past the limit
//	  • separation — a pure scan returning every stored cut violated by a
//	    trial point, packed row-major for direct LP injection
//
// Ownership:
//
//	The pool exclusively owns its row storage and signature map. Propagation
//	observers are registered handles, never owned: they are notified when a
//	cut leaves the LP or is evicted, and must deregister before they die.
//	Row data returned by GetCut is valid only until the next mutating call.
//
// Concurrency:
//
//	None. Every call runs to completion on the caller's goroutine and the
//	pool assumes exclusive access during mutating calls.
package cutpool
