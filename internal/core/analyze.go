package core

// analyze performs first-UIP conflict analysis starting from conflict,
// returning the learnt clause (UIP literal first), the NCB backjump
// level (the second-highest level among the learnt literals), and the
// conflict level analysis started from. Per spec §4.6 step 7, NCB
// backjumps to the returned level; WCB/RSCB/LSCB instead backtrack to
// conflictLevel-1 regardless of it (see backjumpLevel in solve.go).
// Grounded on the teacher's analyze
// (_examples/rhartert-yass/internal/sat/solver.go), generalized with
// LSCB's lazy-reimplication demotion: a variable carrying a lazy reason
// is classified by that reason's (lower) level rather than its real
// assigned level, so the analysis naturally folds it into the learnt
// clause instead of treating it as unresolved at the conflict level.
//
// When proof recording is enabled, the resolution chain is emitted as it
// is discovered (StartResolutionChain/LinkResolution); the caller must
// finish it with FinalizeResolution once the learnt clause has a handle.
func (s *Solver) analyze(conflict ClauseHandle) ([]Literal, int, int) {
	conflictLevel := s.DecisionLevel()
	pending := 0

	learnt := []Literal{LitUndef} // placeholder for the UIP, filled in at the end
	backtrackLevel := LevelRoot

	s.seenList = s.seenList[:0]
	nextTrailIdx := len(s.trail) - 1

	uip := LitUndef
	c := conflict

	if s.proof != nil {
		s.proof.StartResolutionChain()
		s.proof.LinkResolution(LitUndef, conflict)
	}

	for {
		for _, l := range s.explain(c, uip) {
			v := l.Var()
			vr := &s.vars[v]
			if vr.seen {
				continue
			}
			vr.seen = true
			s.seenList = append(s.seenList, v)

			lvl := s.effectiveLevel(v)
			switch {
			case lvl == conflictLevel:
				pending++
			case lvl > LevelRoot:
				learnt = append(learnt, l)
				if lvl > backtrackLevel {
					backtrackLevel = lvl
				}
			}
		}

		var v int
		for {
			uip = s.trail[nextTrailIdx]
			nextTrailIdx--
			v = uip.Var()
			if s.vars[v].seen {
				break
			}
		}
		c = s.effectiveReason(v)

		pending--
		if pending <= 0 {
			break
		}
		if s.proof != nil {
			s.proof.LinkResolution(uip.Negation(), c)
		}
	}

	learnt[0] = uip.Negation()

	if s.proof == nil {
		learnt = s.minimizeLearnt(learnt)
	}

	for _, v := range s.seenList {
		s.vars[v].seen = false
	}

	return learnt, backtrackLevel, conflictLevel
}

// recordRootConflictProof records, when proof building is enabled, the
// resolution chain deriving the empty clause from conflict, a clause
// every literal of which is false at the root. Unlike analyze, which
// stops at the first UIP, every variable here is at decision level 0
// with no decision to stop at, so the same trail-order resolution walk
// is run to its end: each literal is folded in and then fully resolved
// away via its own reason, until nothing is left.
func (s *Solver) recordRootConflictProof(conflict ClauseHandle) {
	if s.proof == nil {
		return
	}

	s.seenList = s.seenList[:0]
	nextTrailIdx := len(s.trail) - 1
	pending := 0

	mark := func(lits []Literal) {
		for _, l := range lits {
			v := l.Var()
			vr := &s.vars[v]
			if vr.seen {
				continue
			}
			vr.seen = true
			s.seenList = append(s.seenList, v)
			pending++
		}
	}

	s.proof.StartResolutionChain()
	s.proof.LinkResolution(LitUndef, conflict)
	mark(s.arena.Lits(conflict))

	for pending > 0 {
		var lit Literal
		for {
			lit = s.trail[nextTrailIdx]
			nextTrailIdx--
			if s.vars[lit.Var()].seen {
				break
			}
		}
		c := s.effectiveReason(lit.Var())
		pending--
		s.proof.LinkResolution(lit.Negation(), c)
		mark(s.explain(c, lit))
	}

	for _, v := range s.seenList {
		s.vars[v].seen = false
	}

	h := s.arena.Alloc(nil, true, false)
	s.proof.FinalizeResolution(h, nil)
}

// effectiveLevel is the level conflict analysis treats v as assigned at:
// a registered lazy reason's level when present, otherwise v's real
// assigned level.
func (s *Solver) effectiveLevel(v int) int {
	vr := &s.vars[v]
	if vr.lazyReason != ClauseUndef {
		return vr.lazyLevel
	}
	return vr.level
}

// explain returns the literals to fold into the analysis for reason
// clause c, excluding p's own occurrence. p == LitUndef selects the
// original conflicting clause, every literal of which is already false.
func (s *Solver) explain(c ClauseHandle, p Literal) []Literal {
	lits := s.arena.Lits(c)
	if p == LitUndef {
		return lits
	}
	out := s.explainBuf[:0]
	for _, l := range lits {
		if l.Var() != p.Var() {
			out = append(out, l)
		}
	}
	s.explainBuf = out
	return out
}

// minimizeLearnt drops self-subsuming literals: a non-UIP literal whose
// reason clause is itself entirely explained by literals already in the
// conflict graph contributes nothing the rest of the clause doesn't
// already cover, and can be removed.
func (s *Solver) minimizeLearnt(learnt []Literal) []Literal {
	out := learnt[:1]
	for _, l := range learnt[1:] {
		if !s.literalRedundant(l) {
			out = append(out, l)
		}
	}
	return out
}

// literalRedundant reports whether l's reason clause is entirely covered
// by already-seen variables (recursively), marking newly-visited
// variables seen as it goes so later calls and analyze's cleanup see
// them too.
func (s *Solver) literalRedundant(l Literal) bool {
	reason := s.effectiveReason(l.Var())
	if reason == ClauseUndef {
		return false
	}
	for _, other := range s.arena.Lits(reason) {
		ov := other.Var()
		if ov == l.Var() || s.vars[ov].seen {
			continue
		}
		if s.effectiveReason(ov) == ClauseUndef {
			return false
		}
		if !s.literalRedundant(other) {
			return false
		}
		s.vars[ov].seen = true
		s.seenList = append(s.seenList, ov)
	}
	return true
}
