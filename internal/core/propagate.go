package core

// Propagate drains the propagation queue (trail[propagated:]) using the
// watch index, enforcing the regime-dependent watched-literal invariants
// of spec §4.3. It returns the conflicting clause handle and true on
// conflict, or (ClauseUndef, false) once the queue is empty.
//
// Ported from the teacher's Clause.Propagate (internal/sat/clauses.go,
// sat/clauses.go) mutate-while-iterate shape, generalized with the
// regime-dependent skip conditions from
// original_source/src/solver/NapSAT.cpp's propagate_lit /
// propagate_binary_clauses.
func (s *Solver) Propagate() (ClauseHandle, bool) {
	for s.propagated < len(s.trail) {
		lit := s.trail[s.propagated]
		s.vars[lit.Var()].waiting = false
		s.propagated++

		falseLit := lit.Negation()

		if c, ok := s.propagateBinary(falseLit); ok {
			return c, true
		}
		if c, ok := s.propagateWatchList(falseLit); ok {
			return c, true
		}
	}
	return ClauseUndef, false
}

// registerLazyReason records c as v's lazy reason when it would imply v's
// literal at a level strictly lower than both v's current level and any
// already-registered lazy reason's level. No-op outside LSCB.
func (s *Solver) registerLazyReason(lit Literal, c ClauseHandle, newLevel int) {
	if s.opts.Backtracking != LSCB {
		return
	}
	v := lit.Var()
	vr := &s.vars[v]
	if newLevel >= vr.level {
		return
	}
	if vr.lazyReason != ClauseUndef && vr.lazyLevel <= newLevel {
		return
	}
	vr.lazyReason = c
	vr.lazyLevel = newLevel
}

func (s *Solver) propagateBinary(falseLit Literal) (ClauseHandle, bool) {
	list := s.watch.binary[falseLit]
	for _, bw := range list {
		other := bw.other
		switch s.LitValue(other) {
		case True:
			if s.opts.Backtracking == LSCB && s.Level(other) > s.Level(falseLit) {
				s.registerLazyReason(other, bw.clause, s.Level(falseLit))
			}
		case Unknown:
			s.assign(other, s.Level(falseLit), ClauseReason(bw.clause), ClauseUndef)
		case False:
			s.arrangeConflictByLevel(bw.clause)
			return bw.clause, true
		}
	}
	return ClauseUndef, false
}

// arrangeConflictByLevel orders a conflicting clause's literals so that
// lits[0] holds the highest-level literal and lits[1] the second highest,
// per the propagation engine's output contract.
func (s *Solver) arrangeConflictByLevel(c ClauseHandle) {
	lits := s.arena.Lits(c)

	bestIdx, secondIdx := 0, 1
	if s.Level(lits[secondIdx]) > s.Level(lits[bestIdx]) {
		bestIdx, secondIdx = secondIdx, bestIdx
	}
	for i := 2; i < len(lits); i++ {
		switch {
		case s.Level(lits[i]) > s.Level(lits[bestIdx]):
			secondIdx = bestIdx
			bestIdx = i
		case s.Level(lits[i]) > s.Level(lits[secondIdx]):
			secondIdx = i
		}
	}

	lits[0], lits[bestIdx] = lits[bestIdx], lits[0]
	if secondIdx == 0 {
		secondIdx = bestIdx
	}
	lits[1], lits[secondIdx] = lits[secondIdx], lits[1]
}

// regimeAcceptsBlocker reports whether a cached true blocker lets
// propagation skip a full rescan of the clause under the active regime.
func (s *Solver) regimeAcceptsBlocker(blocker, c1 Literal) bool {
	if blocker == LitUndef || s.LitValue(blocker) != True {
		return false
	}
	switch s.opts.Backtracking {
	case NCB:
		return true
	default:
		return s.Level(blocker) <= s.Level(c1)
	}
}

// regimeAcceptsTrueC2 reports whether c2 being true, on its own (no
// blocker), lets propagation skip a full rescan under the active regime.
func (s *Solver) regimeAcceptsTrueC2(c2, c1 Literal) bool {
	switch s.opts.Backtracking {
	case NCB:
		return true
	case LSCB:
		if s.Level(c2) <= s.Level(c1) {
			return true
		}
		vr := &s.vars[c2.Var()]
		return vr.lazyReason != ClauseUndef && vr.lazyLevel <= s.Level(c1)
	default: // WCB, RSCB
		return false
	}
}

// maxLevelFalse returns the highest level among lits currently assigned
// False, skipping excludeIdx, or LevelRoot if none are.
func (s *Solver) maxLevelFalse(lits []Literal, excludeIdx int) int {
	best := LevelRoot
	for i, l := range lits {
		if i == excludeIdx {
			continue
		}
		if s.LitValue(l) == False && s.Level(l) > best {
			best = s.Level(l)
		}
	}
	return best
}

// propagateWatchList scans the non-binary watch list of falseLit, per
// spec §4.3 point 2.
func (s *Solver) propagateWatchList(falseLit Literal) (ClauseHandle, bool) {
	list := s.watch.watch[falseLit]
	i := 0
	for i < len(list) {
		c := list[i]
		rec := s.arena.Get(c)
		lits := rec.lits

		if lits[0] == falseLit {
			lits[0], lits[1] = lits[1], lits[0]
		}
		c1 := lits[1] // == falseLit
		c2 := lits[0]

		if s.regimeAcceptsBlocker(rec.blocker, c1) {
			i++
			continue
		}

		c2Val := s.LitValue(c2)
		if c2Val == True && s.regimeAcceptsTrueC2(c2, c1) {
			i++
			continue
		}

		replIdx := -1
		replIsTrue := false
		for k := 2; k < len(lits); k++ {
			switch s.LitValue(lits[k]) {
			case True:
				if replIdx == -1 || !replIsTrue || s.Level(lits[k]) < s.Level(lits[replIdx]) {
					replIdx, replIsTrue = k, true
				}
			case Unknown:
				if replIdx == -1 {
					replIdx, replIsTrue = k, false
				}
			}
		}

		if replIdx != -1 {
			r := lits[replIdx]
			lits[1], lits[replIdx] = lits[replIdx], lits[1]
			if replIsTrue {
				rec.blocker = r
			}

			list[i] = list[len(list)-1]
			list = list[:len(list)-1]
			s.watch.watch[falseLit] = list
			s.watch.watchClause(r, c)
			s.notify(Event{Kind: EventWatch, Clause: c})
			continue // don't advance i: swap-pop moved a new clause into i
		}

		// No replacement: every literal in lits[2:] is false.
		maxOthers := s.maxLevelFalse(lits, 0)
		if s.Level(c1) > maxOthers {
			maxOthers = s.Level(c1)
		}

		switch c2Val {
		case Unknown:
			s.assign(c2, maxOthers, ClauseReason(c), ClauseUndef)
			i++
		case True:
			s.registerLazyReason(c2, c, maxOthers)
			rec.blocker = c2
			i++
		default: // False: genuine conflict
			s.arrangeConflictByLevel(c)
			return c, true
		}
	}
	return ClauseUndef, false
}
