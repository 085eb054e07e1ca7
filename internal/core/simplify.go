package core

import "sort"

// simplifyAtRoot purges clauses satisfied at the root and strips literals
// falsified at the root from the rest, re-homing any clause whose size
// drops to two into the binary watch index and implying the remaining
// literal of any clause whose size drops to one. It is a
// single pass, not a fixpoint, mirroring the teacher's Simplify/
// simplifyPtr (_examples/rhartert-yass/internal/sat/solver.go): callers
// invoke it once per return to the root, not loop it to exhaustion.
// Returns false the moment an empty clause or a root-level conflict is
// found, at which point s.status is already StatusUNSAT.
func (s *Solver) simplifyAtRoot() bool {
	if s.DecisionLevel() != LevelRoot {
		return true
	}
	if c, conflict := s.Propagate(); conflict {
		s.recordRootConflictProof(c)
		s.status = StatusUNSAT
		return false
	}
	if !s.simplifyClauseSet(&s.clauses) {
		return false
	}
	return s.simplifyClauseSet(&s.learnts)
}

func (s *Solver) simplifyClauseSet(set *[]ClauseHandle) bool {
	list := *set
	j := 0
	for _, h := range list {
		rec := s.arena.Get(h)
		if rec.isDeleted() {
			continue
		}
		if s.locked(h) {
			list[j] = h
			j++
			continue
		}
		if s.clauseSatisfiedAtRoot(rec.lits) {
			s.deleteClause(h)
			continue
		}
		if !s.shrinkAtRoot(h) {
			*set = list[:j]
			return false
		}
		if s.arena.Get(h).isDeleted() {
			continue
		}
		list[j] = h
		j++
	}
	*set = list[:j]
	return true
}

func (s *Solver) clauseSatisfiedAtRoot(lits []Literal) bool {
	for _, l := range lits {
		if s.LitValue(l) == True {
			return true
		}
	}
	return false
}

// shrinkAtRoot strips root-falsified literals from h, re-homing it in the
// watch index if needed, and resolves whatever the new size implies.
func (s *Solver) shrinkAtRoot(h ClauseHandle) bool {
	rec := s.arena.Get(h)

	hasRootFalse := false
	for _, l := range rec.lits {
		if s.LitValue(l) == False {
			hasRootFalse = true
			break
		}
	}
	if !hasRootFalse {
		return true
	}

	if s.proof != nil {
		s.proof.RemoveRootLiterals(h)
	}

	wasWatched := rec.isWatched()
	wasBinary := !wasWatched && len(rec.lits) == 2
	if wasWatched {
		s.watch.unwatchClause(rec.lits[0], h)
		s.watch.unwatchClause(rec.lits[1], h)
	} else if wasBinary {
		s.watch.removeBinary(rec.lits[0], h)
		s.watch.removeBinary(rec.lits[1], h)
	}

	s.arena.ShrinkInPlace(h, func(l Literal) bool { return s.LitValue(l) != False })
	rec = s.arena.Get(h)

	switch len(rec.lits) {
	case 0:
		s.status = StatusUNSAT
		return false
	case 1:
		rec.setWatched(false)
		return s.implyRootUnit(h, rec.lits[0])
	case 2:
		rec.setWatched(false)
		s.watch.addBinary(rec.lits[0], rec.lits[1], h)
		s.watch.addBinary(rec.lits[1], rec.lits[0], h)
		return true
	default:
		rec.setWatched(true)
		s.watch.watchClause(rec.lits[0], h)
		s.watch.watchClause(rec.lits[1], h)
		return true
	}
}

func (s *Solver) implyRootUnit(h ClauseHandle, lit Literal) bool {
	switch s.LitValue(lit) {
	case True:
		return true
	case False:
		s.recordRootConflictProof(h)
		s.status = StatusUNSAT
		return false
	default:
		s.assign(lit, LevelRoot, ClauseReason(h), ClauseUndef)
		if s.proof != nil {
			s.proof.RootAssign(lit, h)
		}
		if c, conflict := s.Propagate(); conflict {
			s.recordRootConflictProof(c)
			s.status = StatusUNSAT
			return false
		}
		return true
	}
}

// deleteClause removes h from the watch index and clause database,
// notifying the proof recorder and any observer first.
func (s *Solver) deleteClause(h ClauseHandle) {
	rec := s.arena.Get(h)
	if rec.isWatched() {
		if len(rec.lits) >= 2 {
			s.watch.unwatchClause(rec.lits[0], h)
			s.watch.unwatchClause(rec.lits[1], h)
		}
	} else if len(rec.lits) == 2 {
		s.watch.removeBinary(rec.lits[0], h)
		s.watch.removeBinary(rec.lits[1], h)
	}
	if s.proof != nil {
		s.proof.DeactivateClause(h)
	}
	s.notify(Event{Kind: EventDeleteClause, Clause: h})
	s.arena.Free(h)
}

// locked reports whether h is currently serving as some assigned
// variable's reason (real or lazy): deleting it would leave that
// variable's reason dangling.
func (s *Solver) locked(h ClauseHandle) bool {
	for _, l := range s.arena.Get(h).lits {
		vr := &s.vars[l.Var()]
		if vr.value == Unknown {
			continue
		}
		if (vr.reason.Kind == ReasonClause && vr.reason.Clause == h) || vr.lazyReason == h {
			return true
		}
	}
	return false
}

// reduceDB prunes the lower half of learnt clauses by activity outright
// (excluding locked and binary clauses) and the upper half only below the
// activity threshold, following the teacher's ReduceDB
// (_examples/rhartert-yass/internal/sat/solver.go) but driven by the
// spec's clause-activity threshold/decay knobs instead of a fixed
// nLearnts-derived limit.
func (s *Solver) reduceDB() {
	if len(s.learnts) == 0 {
		return
	}
	sort.Slice(s.learnts, func(i, j int) bool {
		return s.arena.Get(s.learnts[i]).activity < s.arena.Get(s.learnts[j]).activity
	})

	threshold := s.clauseActivityThreshold * s.maxClauseActivity
	half := len(s.learnts) / 2
	j := 0
	for i, h := range s.learnts {
		rec := s.arena.Get(h)
		keep := len(rec.lits) <= 2 || s.locked(h)
		if !keep && i >= half {
			keep = rec.activity >= threshold
		}
		if keep {
			s.learnts[j] = h
			j++
		} else {
			s.deleteClause(h)
		}
	}
	s.learnts = s.learnts[:j]
	s.clauseActivityThreshold *= s.opts.ClauseActivityThresholdDecay
}

// maybeReduceDB runs reduceDB once enough conflicts have produced enough
// learnt clauses, then grows the trigger per ClauseEliminationMultiplier.
func (s *Solver) maybeReduceDB() {
	s.purgeCounter++
	if s.purgeCounter < s.purgeThreshold {
		return
	}
	s.purgeCounter = 0
	s.reduceDB()
	s.purgeThreshold = int(float64(s.purgeThreshold) * s.opts.ClauseEliminationMultiplier)
}

// bumpClauseActivity increases h's activity by the current increment,
// rescaling every learnt clause's activity if it would overflow.
func (s *Solver) bumpClauseActivity(h ClauseHandle) {
	rec := s.arena.Get(h)
	rec.activity += s.clauseInc
	if rec.activity > s.maxClauseActivity {
		s.maxClauseActivity = rec.activity
	}
	if rec.activity > 1e100 {
		for _, lh := range s.learnts {
			s.arena.Get(lh).activity *= 1e-100
		}
		s.clauseInc *= 1e-100
		s.maxClauseActivity *= 1e-100
	}
}

// decayClauseActivity grows the increment (equivalent to decaying every
// past activity's relative weight), the teacher's BumpClaActivity trick.
func (s *Solver) decayClauseActivity() {
	s.clauseInc *= s.clauseDecay
}
