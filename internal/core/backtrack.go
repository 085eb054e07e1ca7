package core

import "sort"

// backtrack rebuilds the trail at level d, dispatching on the active
// regime per spec §4.5. Grounded on the teacher's cancelUntil/undoOne
// (NCB truncation) and original_source/src/solver/NapSAT.cpp's
// backtrack (WCB/RSCB/LSCB compaction and lazy-reimplication replay).
func (s *Solver) backtrack(d int) {
	if s.DecisionLevel() <= d {
		return
	}

	var cutPos int
	if d > 0 {
		cutPos = s.trailLim[d-1]
	}

	if !s.opts.Backtracking.Chronological() {
		s.backtrackNCB(cutPos, d)
		return
	}
	s.backtrackChronological(cutPos, d)
}

func (s *Solver) backtrackNCB(cutPos, d int) {
	for i := len(s.trail) - 1; i >= cutPos; i-- {
		s.unassign(s.trail[i])
	}
	s.trail = s.trail[:cutPos]
	s.trailLim = s.trailLim[:d]
	s.propagated = cutPos
}

type reimplyEntry struct {
	lit    Literal
	clause ClauseHandle
	level  int
}

// backtrackChronological implements WCB, RSCB, and LSCB: the trail is
// compacted in place rather than truncated, some kept literals may remain
// queued, RSCB re-queues everything left exactly at level d, and LSCB
// additionally replays missed lower implications.
func (s *Solver) backtrackChronological(cutPos, d int) {
	lscb := s.opts.Backtracking == LSCB
	requeueAtD := s.opts.Backtracking == RSCB || lscb

	kept := make([]Literal, 0, len(s.trail))
	var reimplyEntries []reimplyEntry
	waitingBelowD := 0

	for _, lit := range s.trail {
		v := lit.Var()
		vr := &s.vars[v]

		if vr.level <= d {
			if requeueAtD && vr.level == d {
				vr.waiting = true
			}
			if vr.waiting {
				waitingBelowD++
			}
			kept = append(kept, lit)
			continue
		}

		if lscb && vr.lazyReason != ClauseUndef && vr.lazyLevel <= d {
			reimplyEntries = append(reimplyEntries, reimplyEntry{
				lit:    lit,
				clause: vr.lazyReason,
				level:  vr.lazyLevel,
			})
		}
		s.unassign(lit)
	}

	s.trail = append(s.trail[:0], kept...)
	s.trailLim = s.trailLim[:d]
	s.propagated = len(s.trail) - waitingBelowD

	sort.SliceStable(reimplyEntries, func(i, j int) bool {
		return reimplyEntries[i].level < reimplyEntries[j].level
	})
	for _, e := range reimplyEntries {
		if s.vars[e.lit.Var()].value != Unknown {
			continue // already settled earlier in this same replay
		}
		s.assign(e.lit, e.level, ClauseReason(e.clause), ClauseUndef)
	}
}
