package cutpool

import "fmt"

// Aging state machine, per cut:
//
//	age < 0  — ACTIVE: resident in the working LP basis, protected from
//	           eviction; grows more negative the longer it stays resident.
//	age >= 0 — INACTIVE: not in the basis; incremented once per pool-wide
//	           aging pass and eviction-eligible once past the age limit.

// ResetAge marks cut id as entering (or re-entering) the working basis:
// an already-active cut resets to -1, a freshly tracked one stays at 0.
func (p *Pool) ResetAge(id int) {
	if p.ages[id] < 0 {
		p.ages[id] = -1
	} else {
		p.ages[id] = 0
	}
}

// AgeLPCut ages cut id one LP round while it stays resident, and reports
// eviction eligibility: once the residency age passes ageLimit the cut is
// demoted to inactive (age 0) and true is returned — exactly once, at the
// first crossing. Panics if the cut is not LP-resident (caller bug).
func (p *Pool) AgeLPCut(id, ageLimit int) bool {
	if p.ages[id] > 0 {
		panic(fmt.Sprintf("cutpool: AgeLPCut on non-resident cut %d (age %d)", id, p.ages[id]))
	}
	p.ages[id]--
	if p.ages[id] < -int16(ageLimit) {
		p.ages[id] = 0

		return true
	}

	return false
}

// PerformAging runs one pool-wide aging pass: the epoch counter advances
// and every inactive live cut ages by one tick. The returned ids are the
// cuts whose inactive age now exceeds the pool's age limit — eviction
// remains the caller's decision (RemoveCut).
func (p *Pool) PerformAging() []int {
	p.epochs++
	var eligible []int
	for id := range p.ages {
		if p.matrix.Deleted(id) || p.ages[id] < 0 {
			continue
		}
		p.ages[id]++
		if int(p.ages[id]) > p.ageLimit {
			eligible = append(eligible, id)
		}
	}

	return eligible
}

// LPCutRemoved records that cut id left the working basis: the cut turns
// inactive and every registered propagation observer is told to drop the
// propagation state tied to the row.
func (p *Pool) LPCutRemoved(id int) {
	p.ages[id] = 0
	for _, obs := range p.observers {
		if obs != nil {
			obs.CutRemovedFromLP(id)
		}
	}
}

// Age returns the current age of cut id (negative while LP-resident).
func (p *Pool) Age(id int) int { return int(p.ages[id]) }

// Epochs returns the number of aging passes performed.
func (p *Pool) Epochs() uint64 { return p.epochs }

// SetAgeLimit replaces the pool's inactive-age limit.
func (p *Pool) SetAgeLimit(limit int) { p.ageLimit = limit }

// AgeLimit returns the pool's inactive-age limit.
func (p *Pool) AgeLimit() int { return p.ageLimit }
