package core

// assign pushes lit onto the trail with the given level/reason/lazy
// reason, updates the phase cache and agility, marks the variable
// assigned and waiting, and removes the variable from the heap's
// candidate set.
func (s *Solver) assign(lit Literal, level int, reason Reason, lazy ClauseHandle) {
	v := lit.Var()
	vr := &s.vars[v]

	flip := vr.phase != Unknown && vr.phase != Lift(lit.IsPositive())

	vr.value = Lift(lit.IsPositive())
	vr.level = level
	vr.reason = reason
	vr.lazyReason = lazy
	vr.waiting = true
	vr.phase = vr.value

	s.trail = append(s.trail, lit)
	s.heap.Remove(v)

	s.updateAgility(flip)

	s.notify(Event{Kind: EventAssign, Literal: lit, Level: level})
}

// unassign reverts lit's variable to Unknown, reinserting it into the
// heap so it becomes a decision candidate again.
func (s *Solver) unassign(lit Literal) {
	v := lit.Var()
	vr := &s.vars[v]
	vr.value = Unknown
	vr.waiting = false
	vr.lazyReason = ClauseUndef
	s.heap.Insert(v, s.heap.Activity(v))
	s.notify(Event{Kind: EventUnassign, Literal: lit})
}

// decide pushes a new decision level and assigns lit as its decision
// literal.
func (s *Solver) decide(lit Literal) {
	s.trailLim = append(s.trailLim, len(s.trail))
	s.TotalDecisions++
	s.assign(lit, s.DecisionLevel(), DecisionReason, ClauseUndef)
}

// effectiveReason returns the reason clause for an assigned literal's
// variable, preferring the lazy reason when present (per the conflict
// analyzer's "preferring the lazy reason when present" rule).
func (s *Solver) effectiveReason(v int) ClauseHandle {
	vr := &s.vars[v]
	if vr.lazyReason != ClauseUndef {
		return vr.lazyReason
	}
	if vr.reason.IsDecision() {
		return ClauseUndef
	}
	return vr.reason.Clause
}

// nextDecisionLiteral pops the highest-activity unassigned variable off
// the heap and returns it with its cached phase applied. It returns
// (LitUndef, false) when every variable is already assigned.
func (s *Solver) nextDecisionLiteral() (Literal, bool) {
	for {
		v, ok := s.heap.Pop()
		if !ok {
			return LitUndef, false
		}
		if s.vars[v].value != Unknown {
			continue // stale: already assigned, lazily dropped
		}
		switch s.vars[v].phase {
		case False:
			return NegativeLiteral(v), true
		default:
			return PositiveLiteral(v), true
		}
	}
}

// bumpVarActivity increases v's VSIDS activity by the current increment,
// rescaling every activity (and the heap) if it would overflow.
func (s *Solver) bumpVarActivity(v int) {
	newAct := s.heap.Activity(v) + s.varInc
	s.heap.Update(v, newAct)
	if newAct > 1e100 {
		s.heap.Normalize(1e-100)
		s.varInc *= 1e-100
	}
}

// decayVarActivity ages every variable activity by dividing the
// increment, equivalent to multiplying every future bump's relative
// weight (the teacher's lazy-decay trick).
func (s *Solver) decayVarActivity() {
	s.varInc /= s.opts.VarActivityDecay
}
