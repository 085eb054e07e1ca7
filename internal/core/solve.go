package core

import "io"

// Decide pushes a new decision level with the highest-activity
// unassigned variable, applying its cached phase. It returns false if
// every variable is already assigned.
func (s *Solver) Decide() bool {
	lit, ok := s.nextDecisionLiteral()
	if !ok {
		return false
	}
	s.decide(lit)
	return true
}

// DecideLiteral pushes a new decision level with a caller-chosen literal
// instead of letting the activity heap pick one.
func (s *Solver) DecideLiteral(lit Literal) {
	if s.vars[lit.Var()].value == Unknown {
		s.heap.Remove(lit.Var())
	}
	s.decide(lit)
}

// Solve runs decide/propagate/analyze/backtrack to completion, returning
// the final status. It is the teacher's Search loop
// (_examples/rhartert-yass/internal/sat/solver.go) generalized: restarts
// are agility-driven instead of a growing conflict-count budget, and
// reduceDB is driven by the clause-elimination multiplier instead of a
// growing nLearnts target.
func (s *Solver) Solve() Status {
	if s.status != StatusUndef {
		return s.status
	}

	for {
		conflict, hasConflict := s.Propagate()
		if hasConflict {
			s.TotalConflicts++

			if s.DecisionLevel() == LevelRoot {
				s.recordRootConflictProof(conflict)
				s.status = StatusUNSAT
				return s.status
			}

			learnt, ncbLevel, conflictLevel := s.analyze(conflict)
			s.backtrack(s.backjumpLevel(ncbLevel, conflictLevel))
			s.recordLearnt(learnt)

			s.decayVarActivity()
			s.decayClauseActivity()

			if s.opts.DeleteClauses {
				s.maybeReduceDB()
			}
			if s.needsRestart {
				s.restart()
			}
			continue
		}

		if s.DecisionLevel() == LevelRoot {
			if !s.simplifyAtRoot() {
				return s.status
			}
		}

		if len(s.trail) == s.NumVariables() {
			s.status = StatusSAT
			return s.status
		}

		if !s.Decide() {
			s.status = StatusSAT
			return s.status
		}
	}
}

// backjumpLevel picks the level to backtrack to after a conflict, per
// spec §4.6 step 7: NCB jumps straight to ncbLevel (the second-highest
// level among the learnt literals), while WCB/RSCB/LSCB backtrack by
// exactly one level from the conflict regardless of ncbLevel, so that
// chronological-order invariants below the target level are preserved.
func (s *Solver) backjumpLevel(ncbLevel, conflictLevel int) int {
	if !s.opts.Backtracking.Chronological() {
		return ncbLevel
	}
	return conflictLevel - 1
}

// recordLearnt allocates the clause analyze produced, wires it into the
// watch index (or binary index, or asserts it directly if it is a unit),
// bumps variable/clause activity, asserts its UIP literal, and finalizes
// the proof chain analyze already started.
func (s *Solver) recordLearnt(learnt []Literal) ClauseHandle {
	uip := learnt[0]
	level := s.DecisionLevel()

	var h ClauseHandle
	switch {
	case len(learnt) == 1:
		h = s.arena.Alloc(learnt, true, false)
		level = LevelRoot

	case len(learnt) == 2:
		h = s.arena.Alloc(learnt, true, false)
		rec := s.arena.Get(h)
		rec.setWatched(false)
		s.watch.addBinary(rec.lits[0], rec.lits[1], h)
		s.watch.addBinary(rec.lits[1], rec.lits[0], h)
		s.trackClause(h, true)

	default:
		h = s.arena.Alloc(learnt, true, false)
		rec := s.arena.Get(h)
		bestIdx := 1
		for i := 2; i < len(rec.lits); i++ {
			if s.Level(rec.lits[i]) > s.Level(rec.lits[bestIdx]) {
				bestIdx = i
			}
		}
		rec.lits[1], rec.lits[bestIdx] = rec.lits[bestIdx], rec.lits[1]
		s.watch.watchClause(rec.lits[0], h)
		s.watch.watchClause(rec.lits[1], h)
		s.trackClause(h, true)
	}

	if s.proof != nil {
		s.proof.FinalizeResolution(h, learnt)
	}
	if len(learnt) > 1 {
		s.bumpClauseActivity(h)
	}
	for _, l := range learnt {
		s.bumpVarActivity(l.Var())
	}
	s.notify(Event{Kind: EventNewClause, Clause: h})

	s.assign(uip, level, ClauseReason(h), ClauseUndef)
	if level == LevelRoot && s.proof != nil {
		s.proof.RootAssign(uip, h)
	}
	s.learntCount++
	return h
}

// CheckProof verifies the resolution proof built during solving. It
// returns false when proof recording was never enabled.
func (s *Solver) CheckProof() bool {
	if s.proof == nil {
		return false
	}
	return s.proof.CheckProof()
}

// PrintProof writes the recorded proof to w, per §6.4's format. It is a
// no-op when proof recording was never enabled.
func (s *Solver) PrintProof(w io.Writer) {
	if s.proof == nil {
		return
	}
	s.proof.Print(w)
}
