// Package proof implements the resolution-proof recorder: an append-only
// store of input clauses and resolution chains that can later verify every
// learned clause is the resolvent of its chain and, on UNSAT, that the
// empty clause is reachable from the input clauses.
//
// This has no counterpart in the teacher (rhartert-yass never builds a
// proof); it is ported from the original NapSAT C++ sources'
// src/proof/proof.{hpp,cpp} and re-expressed in the teacher's Go idiom:
// small slice-backed structs and a boolean check result, no exceptions.
package proof

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-napsat/napsat/internal/core"
)

type link struct {
	pivot core.Literal
	id    int // internal clause index, not a solver-visible handle
}

type clause struct {
	lits  []core.Literal
	chain []link // empty for input clauses
}

// Recorder is the concrete resolution-proof store. It satisfies
// core.Recorder.
type Recorder struct {
	chain []link

	clauses []clause
	matches map[core.ClauseHandle]int // solver handle -> internal index, absent/-1 if deactivated

	emptyClauseID int // internal index of the empty clause, or -1

	rootLit    []core.Literal
	rootReason []core.ClauseHandle
}

// New returns an empty Recorder.
func New() *Recorder {
	return &Recorder{
		matches:       make(map[core.ClauseHandle]int),
		emptyClauseID: -1,
	}
}

func init() {
	core.RegisterRecorderFactory(func() core.Recorder { return New() })
}

func sortedDedup(lits []core.Literal) []core.Literal {
	out := append([]core.Literal(nil), lits...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	n := 0
	for i, l := range out {
		if i == 0 || out[n-1] != l {
			out[n] = l
			n++
		}
	}
	return out[:n]
}

func contains(lits []core.Literal, l core.Literal) bool {
	i := sort.Search(len(lits), func(i int) bool { return lits[i] >= l })
	return i < len(lits) && lits[i] == l
}

// InputClause implements core.Recorder.
func (r *Recorder) InputClause(id core.ClauseHandle, lits []core.Literal) {
	sorted := sortedDedup(lits)
	idx := len(r.clauses)
	r.clauses = append(r.clauses, clause{lits: sorted})
	r.matches[id] = idx
	if len(sorted) == 0 {
		r.emptyClauseID = idx
	}
}

// StartResolutionChain implements core.Recorder.
func (r *Recorder) StartResolutionChain() {
	r.chain = r.chain[:0]
}

// LinkResolution implements core.Recorder.
func (r *Recorder) LinkResolution(pivot core.Literal, id core.ClauseHandle) {
	idx, ok := r.matches[id]
	if !ok {
		idx = -1
	}
	r.chain = append(r.chain, link{pivot: pivot, id: idx})
}

// FinalizeResolution implements core.Recorder.
func (r *Recorder) FinalizeResolution(id core.ClauseHandle, lits []core.Literal) {
	sorted := sortedDedup(lits)
	idx := len(r.clauses)
	r.clauses = append(r.clauses, clause{lits: sorted, chain: append([]link(nil), r.chain...)})
	r.matches[id] = idx
	if len(sorted) == 0 {
		r.emptyClauseID = idx
	}
	r.chain = r.chain[:0]
}

// RootAssign implements core.Recorder.
func (r *Recorder) RootAssign(lit core.Literal, reason core.ClauseHandle) {
	r.rootLit = append(r.rootLit, lit)
	r.rootReason = append(r.rootReason, reason)
}

// applyResolution resolves base with the clause at resolventIdx over
// pivot: removes pivot from base, merges in the resolvent's literals
// except the negation of pivot, then sorts and dedups.
func (r *Recorder) applyResolution(base []core.Literal, resolventIdx int, pivot core.Literal) []core.Literal {
	merged := make([]core.Literal, 0, len(base)+len(r.clauses[resolventIdx].lits))
	for _, l := range base {
		if l != pivot {
			merged = append(merged, l)
		}
	}
	negPivot := pivot.Negation()
	for _, l := range r.clauses[resolventIdx].lits {
		if l != negPivot {
			merged = append(merged, l)
		}
	}
	return sortedDedup(merged)
}

// RemoveRootLiterals implements core.Recorder.
//
// It rewrites clause id into the resolvent obtained by resolving away
// every literal falsified at the root (in the topological order root
// assignments were recorded in), then replaces id with the shorter
// clause, deactivating the old one first so the id can be reused.
func (r *Recorder) RemoveRootLiterals(id core.ClauseHandle) {
	idx, ok := r.matches[id]
	if !ok {
		return
	}
	base := append([]core.Literal(nil), r.clauses[idx].lits...)
	chain := []link{{pivot: core.LitUndef, id: idx}}

	for i, rootLit := range r.rootLit {
		neg := rootLit.Negation()
		if !contains(base, neg) {
			continue
		}
		reasonIdx, ok := r.matches[r.rootReason[i]]
		if !ok {
			continue
		}
		base = r.applyResolution(base, reasonIdx, neg)
		chain = append(chain, link{pivot: neg, id: reasonIdx})
	}

	r.DeactivateClause(id)
	newIdx := len(r.clauses)
	r.clauses = append(r.clauses, clause{lits: base, chain: chain})
	r.matches[id] = newIdx
	if len(base) == 0 {
		r.emptyClauseID = newIdx
	}
}

// DeactivateClause implements core.Recorder.
func (r *Recorder) DeactivateClause(id core.ClauseHandle) {
	delete(r.matches, id)
}

// checkResolutionChain recomputes the resolvent described by the chain
// stored for internal index idx and compares it against the stored
// literals.
func (r *Recorder) checkResolutionChain(idx int) bool {
	c := r.clauses[idx]
	if len(c.chain) == 0 {
		return true // input clause, nothing to recompute
	}
	base := append([]core.Literal(nil), r.clauses[c.chain[0].id].lits...)
	for _, l := range c.chain[1:] {
		if l.id < 0 {
			return false
		}
		base = r.applyResolution(base, l.id, l.pivot)
	}
	if len(base) != len(c.lits) {
		return false
	}
	for i := range base {
		if base[i] != c.lits[i] {
			return false
		}
	}
	return true
}

// CheckProof implements core.Recorder: it requires the empty clause to
// have been recorded and every resolution chain reachable backward from
// it to recompute to its stored literals.
func (r *Recorder) CheckProof() bool {
	if r.emptyClauseID < 0 {
		return false
	}
	seen := map[int]bool{r.emptyClauseID: true}
	stack := []int{r.emptyClauseID}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !r.checkResolutionChain(idx) {
			return false
		}
		for _, l := range r.clauses[idx].chain {
			if l.id >= 0 && !seen[l.id] {
				seen[l.id] = true
				stack = append(stack, l.id)
			}
		}
	}
	return true
}

// Print writes every clause relevant to the empty clause, in the format
// "i: (lits) [input]" or "i.k: (lits) [resolution <predecessor>, <Ck>]".
func (r *Recorder) Print(w io.Writer) {
	if r.emptyClauseID < 0 {
		fmt.Fprintln(w, "c no empty clause recorded")
		return
	}
	seen := make(map[int]bool)
	var visit func(idx int)
	order := []int{}
	visit = func(idx int) {
		if seen[idx] {
			return
		}
		seen[idx] = true
		for _, l := range r.clauses[idx].chain {
			if l.id >= 0 {
				visit(l.id)
			}
		}
		order = append(order, idx)
	}
	visit(r.emptyClauseID)

	for _, idx := range order {
		c := r.clauses[idx]
		lits := fmt.Sprint(c.lits)
		lits = "(" + lits[1:len(lits)-1] + ")"
		if len(c.chain) == 0 {
			fmt.Fprintf(w, "%d: %s [input]\n", idx, lits)
			continue
		}
		for k, l := range c.chain {
			if k == 0 {
				continue
			}
			fmt.Fprintf(w, "%d.%d: %s [resolution %d, %d]\n", idx, k, lits, c.chain[0].id, l.id)
		}
	}
}
