package core

import (
	"fmt"
	"sort"
)

// AddClause adds a clause in one call. Duplicate literals are silently
// dropped; a tautological clause (containing both a literal and its
// negation) is always true and is therefore a no-op, returning
// ClauseUndef with no error. Streaming input (StartClause/PushLiteral/
// FinalizeClause) enforces the stricter "no literal and its negation"
// contract named in §6.1; this batch form does not, since nothing here
// is reentrant state a caller could corrupt.
func (s *Solver) AddClause(lits []Literal) (ClauseHandle, error) {
	if s.writingClause {
		return ClauseUndef, fmt.Errorf("core: AddClause called while a streaming clause is open: %w", ErrContractViolation)
	}
	for _, l := range lits {
		s.ensureVar(l.Var())
	}
	deduped, tautology := sortedDedupLiterals(append(s.litBuffer[:0], lits...))
	s.litBuffer = deduped
	if tautology {
		return ClauseUndef, nil
	}
	return s.finishClause(append([]Literal(nil), deduped...), false, true)
}

// StartClause opens streaming clause construction. A clause already open
// is discarded in favor of the new one (release-mode "ignored", per §7).
func (s *Solver) StartClause() {
	s.writingClause = true
	s.litBuffer = s.litBuffer[:0]
}

// PushLiteral appends l to the clause under construction.
func (s *Solver) PushLiteral(l Literal) error {
	if !s.writingClause {
		return fmt.Errorf("core: PushLiteral called without StartClause: %w", ErrContractViolation)
	}
	s.ensureVar(l.Var())
	s.litBuffer = append(s.litBuffer, l)
	return nil
}

// FinalizeClause closes streaming construction and adds the clause,
// rejecting one containing both a literal and its negation.
func (s *Solver) FinalizeClause() (ClauseHandle, error) {
	if !s.writingClause {
		return ClauseUndef, fmt.Errorf("core: FinalizeClause called without an open StartClause: %w", ErrContractViolation)
	}
	s.writingClause = false

	for k := range s.streamDupCheck {
		delete(s.streamDupCheck, k)
	}
	tautology := false
	for _, l := range s.litBuffer {
		if s.streamDupCheck[l.Negation()] {
			tautology = true
		}
		s.streamDupCheck[l] = true
	}
	if tautology {
		return ClauseUndef, fmt.Errorf("core: clause contains a literal and its negation: %w", ErrContractViolation)
	}

	deduped, _ := sortedDedupLiterals(append([]Literal(nil), s.litBuffer...))
	return s.finishClause(deduped, false, true)
}

// sortedDedupLiterals sorts buf in place, collapsing exact duplicates,
// and reports whether a literal and its negation both occur. Relies on
// the encoding's positive/negative pair being numerically adjacent
// (v<<1 and v<<1|1), so a tautology always sorts as neighbors.
func sortedDedupLiterals(buf []Literal) ([]Literal, bool) {
	sort.Slice(buf, func(i, j int) bool { return buf[i] < buf[j] })
	n := 0
	tautology := false
	for _, l := range buf {
		if n > 0 && buf[n-1] == l {
			continue
		}
		if n > 0 && buf[n-1] == l.Negation() {
			tautology = true
		}
		buf[n] = l
		n++
	}
	return buf[:n], tautology
}

// trackClause records h on the clause/learnt list simplification and
// reduceDB sweep over, for clauses that own watch-index entries (size
// >= 2; units need no bookkeeping beyond the arena/proof store).
func (s *Solver) trackClause(h ClauseHandle, learnt bool) {
	if learnt {
		s.learnts = append(s.learnts, h)
	} else {
		s.clauses = append(s.clauses, h)
	}
}

// finishClause dispatches clause construction by size once lits is
// final: deduplicated, non-tautological, and variable-ensured.
func (s *Solver) finishClause(lits []Literal, learnt, external bool) (ClauseHandle, error) {
	switch len(lits) {
	case 0:
		s.status = StatusUNSAT
		if s.proof != nil {
			h := s.arena.Alloc(nil, learnt, external)
			s.proof.InputClause(h, nil)
		}
		return ClauseUndef, nil
	case 1:
		return s.addUnitClause(lits[0], learnt, external), nil
	case 2:
		return s.addBinaryClause(lits[0], lits[1], learnt, external), nil
	default:
		return s.addLongClause(lits, learnt, external), nil
	}
}

func (s *Solver) addUnitClause(lit Literal, learnt, external bool) ClauseHandle {
	h := s.arena.Alloc([]Literal{lit}, learnt, external)
	if s.proof != nil && !learnt {
		s.proof.InputClause(h, []Literal{lit})
	}
	s.notify(Event{Kind: EventNewClause, Clause: h})

	switch s.LitValue(lit) {
	case True:
		return h
	case False:
		if s.DecisionLevel() == LevelRoot {
			s.recordRootConflictProof(h)
		}
		s.status = StatusUNSAT
		return h
	default:
		if s.DecisionLevel() > LevelRoot {
			s.backtrack(LevelRoot)
		}
		s.assign(lit, LevelRoot, ClauseReason(h), ClauseUndef)
		if s.proof != nil {
			s.proof.RootAssign(lit, h)
		}
		if c, conflict := s.Propagate(); conflict {
			s.recordRootConflictProof(c)
			s.status = StatusUNSAT
		}
		return h
	}
}

func (s *Solver) addBinaryClause(a, b Literal, learnt, external bool) ClauseHandle {
	h := s.arena.Alloc([]Literal{a, b}, learnt, external)
	rec := s.arena.Get(h)
	rec.setWatched(false)
	s.arrangeNewClauseWatches(rec.lits)
	s.watch.addBinary(rec.lits[0], rec.lits[1], h)
	s.watch.addBinary(rec.lits[1], rec.lits[0], h)
	s.trackClause(h, learnt)
	if s.proof != nil && !learnt {
		s.proof.InputClause(h, []Literal{a, b})
	}
	s.notify(Event{Kind: EventNewClause, Clause: h})
	s.propagateAfterAdd(h, rec.lits)
	return h
}

func (s *Solver) addLongClause(lits []Literal, learnt, external bool) ClauseHandle {
	h := s.arena.Alloc(lits, learnt, external)
	rec := s.arena.Get(h)
	s.arrangeNewClauseWatches(rec.lits)
	s.watch.watchClause(rec.lits[0], h)
	s.watch.watchClause(rec.lits[1], h)
	s.trackClause(h, learnt)
	if s.proof != nil && !learnt {
		s.proof.InputClause(h, lits)
	}
	s.notify(Event{Kind: EventNewClause, Clause: h})
	s.propagateAfterAdd(h, rec.lits)
	return h
}

// arrangeNewClauseWatches moves a currently-false literal out of each of
// the first two watch slots when a non-false alternative exists further
// down the clause, so a freshly-added clause doesn't start out requiring
// an immediate rescan.
func (s *Solver) arrangeNewClauseWatches(lits []Literal) {
	for i := 0; i < 2 && i < len(lits); i++ {
		if s.LitValue(lits[i]) != False {
			continue
		}
		for k := i + 1; k < len(lits); k++ {
			if s.LitValue(lits[k]) != False {
				lits[i], lits[k] = lits[k], lits[i]
				break
			}
		}
	}
}

// propagateAfterAdd checks whether a just-added clause is already unit
// or conflicting under the current assignment (possible when adding
// clauses after search has begun), implying or failing accordingly.
func (s *Solver) propagateAfterAdd(h ClauseHandle, lits []Literal) {
	maxLvl := LevelRoot
	for _, l := range lits[1:] {
		if s.LitValue(l) != False {
			return
		}
		if s.Level(l) > maxLvl {
			maxLvl = s.Level(l)
		}
	}
	switch s.LitValue(lits[0]) {
	case Unknown:
		s.assign(lits[0], maxLvl, ClauseReason(h), ClauseUndef)
		if s.proof != nil && s.DecisionLevel() == LevelRoot {
			s.proof.RootAssign(lits[0], h)
		}
	case False:
		if s.DecisionLevel() == LevelRoot {
			s.recordRootConflictProof(h)
		}
		s.status = StatusUNSAT
	}
}
