// Package collector implements the Candidate Collector (spec §4.F): a
// name/arity pre-filter over the Scope Manager's visible declarations,
// keeping enough of the rejected set that the Diagnostic System can
// enumerate alternatives.
package collector

import (
	"github.com/janus-lang/janus/internal/scope"
	"github.com/janus-lang/janus/internal/signature"
)

// RejectionReason is the closed set of reasons a declaration didn't make
// it into the viable set.
type RejectionReason int

const (
	ArityMismatch RejectionReason = iota
	NotVisible
)

func (r RejectionReason) String() string {
	switch r {
	case ArityMismatch:
		return "arity_mismatch"
	case NotVisible:
		return "not_visible"
	default:
		return "unknown"
	}
}

// Rejected pairs a declaration with why it was excluded.
type Rejected struct {
	Implementation signature.Implementation
	Reason         RejectionReason
}

// CandidateSet is the result of one collection pass.
type CandidateSet struct {
	Name     string
	Viable   []signature.Implementation
	Rejected []Rejected
}

// Collect pre-filters every declaration named name visible from sc down
// to those whose arity matches argArity. Every declaration considered —
// viable or not — is accounted for in the returned set; arity mismatch
// is never a silent reject (§8 Boundary behaviors).
func Collect(sc *scope.Scope, name string, argArity int) CandidateSet {
	cs := CandidateSet{Name: name}
	for _, d := range sc.Lookup(name, -1) {
		if d.Implementation.Arity() != argArity {
			cs.Rejected = append(cs.Rejected, Rejected{Implementation: d.Implementation, Reason: ArityMismatch})
			continue
		}
		cs.Viable = append(cs.Viable, d.Implementation)
	}
	return cs
}
