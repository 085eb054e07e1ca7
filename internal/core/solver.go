package core

import (
	"fmt"

	"github.com/go-napsat/napsat/internal/heap"
)

// recorderFactory is set by internal/proof's init(), mirroring
// database/sql's driver-registration pattern: core cannot import proof
// directly (proof imports core's Literal/ClauseHandle types), so proof
// registers itself here instead.
var recorderFactory func() Recorder

// RegisterRecorderFactory lets a concrete Recorder implementation
// register itself as the one New uses when Options.BuildProof is set.
// Importing internal/proof for its side effect is enough; callers never
// need to invoke this directly.
func RegisterRecorderFactory(f func() Recorder) {
	recorderFactory = f
}

// varRecord is the per-variable state the spec's Data Model names.
type varRecord struct {
	value LBool
	level int

	reason     Reason
	lazyReason ClauseHandle // ClauseUndef when absent
	lazyLevel  int          // meaningful only when lazyReason != ClauseUndef

	phase   LBool // phase cache: last assigned polarity
	seen    bool  // conflict-analysis scratch
	waiting bool  // enqueued but not yet propagated
}

// Solver is a CDCL SAT solver core supporting the NCB/WCB/RSCB/LSCB
// backtracking regimes.
type Solver struct {
	opts Options

	vars  []varRecord
	arena *Arena
	watch *watchIndex
	heap  *heap.ActivityHeap

	trail      []Literal
	trailLim   []int // trailLim[d-1] = trail position of the decision opening level d
	propagated int    // trail[:propagated] is fully propagated

	varInc float64

	clauseInc   float64
	clauseDecay float64

	status Status
	proof  Recorder // nil when BuildProof is false

	agility          float64
	agilityThreshold float64
	needsRestart     bool

	purgeCounter   int
	purgeThreshold int
	purgeInc       int

	clauseActivityThreshold float64
	maxClauseActivity       float64

	learntCount int64

	clauses []ClauseHandle // originally-added (non-learnt) clause handles
	learnts []ClauseHandle // learnt clause handles, for reduceDB/simplify

	seenList   []int     // vars marked .seen this analysis pass, for O(1) reset
	explainBuf []Literal // scratch buffer for explain's filtered literal list

	observer Observer

	writingClause  bool
	litBuffer      []Literal
	streamDupCheck map[Literal]bool

	TotalConflicts int64
	TotalRestarts  int64
	TotalDecisions int64
}

// New constructs a Solver with the given options, or a configuration
// error if any option is out of range.
func New(opts Options) (*Solver, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	s := &Solver{
		opts:        opts,
		vars:        make([]varRecord, 1), // index 0 unused: variables start at 1
		arena:       NewArena(),
		watch:       newWatchIndex(),
		heap:        heap.New(),
		varInc:      1,
		clauseInc:   1,
		clauseDecay: opts.ClauseActivityMultiplier,

		agility:          1,
		agilityThreshold: opts.AgilityThreshold,

		purgeThreshold: 128,
		purgeInc:       64,

		clauseActivityThreshold: 1,
		maxClauseActivity:       1,

		streamDupCheck: make(map[Literal]bool),
	}
	s.heap.Grow(1) // reserve key 0, unused, matching vars' index-0 dummy
	if opts.BuildProof {
		if recorderFactory == nil {
			return nil, fmt.Errorf("core: BuildProof requested but no recorder registered (blank-import internal/proof)")
		}
		s.proof = recorderFactory()
	}
	return s, nil
}

// SetObserver attaches (or, with nil, detaches) an event observer.
func (s *Solver) SetObserver(o Observer) {
	s.observer = o
}

// Status returns the solver's current outcome.
func (s *Solver) Status() Status {
	return s.status
}

// NumVariables returns the number of variables created so far.
func (s *Solver) NumVariables() int {
	return len(s.vars) - 1
}

// DecisionLevel returns the current decision level (0 at root).
func (s *Solver) DecisionLevel() int {
	return len(s.trailLim)
}

// AddVariable creates and returns a new variable id (dense, starting at 1).
func (s *Solver) AddVariable() int {
	v := len(s.vars)
	s.vars = append(s.vars, varRecord{lazyReason: ClauseUndef})
	s.heap.Grow(1)
	s.heap.Insert(v, 0)
	s.watch.grow(v)
	s.notify(Event{Kind: EventNewVariable, Var: v})
	return v
}

// ensureVar grows the variable space up to and including v, if needed.
func (s *Solver) ensureVar(v int) {
	for v >= len(s.vars) {
		s.AddVariable()
	}
}

// VarValue returns the current truth value of variable v.
func (s *Solver) VarValue(v int) LBool {
	return s.vars[v].value
}

// LitValue returns the current truth value of a literal.
func (s *Solver) LitValue(l Literal) LBool {
	val := s.vars[l.Var()].value
	if !l.IsPositive() {
		val = val.Opposite()
	}
	return val
}

// IsDecided reports whether l's variable is currently assigned.
func (s *Solver) IsDecided(l Literal) bool {
	return s.vars[l.Var()].value != Unknown
}

// Level returns the decision level at which l's variable was assigned; it
// is meaningless if the variable is unassigned.
func (s *Solver) Level(l Literal) int {
	return s.vars[l.Var()].level
}

// PartialAssignment returns a read-only view of the trail.
func (s *Solver) PartialAssignment() []Literal {
	return s.trail
}

// Model returns the satisfying assignment's polarity per variable (index
// 0 unused). Only meaningful once Status() reports StatusSAT.
func (s *Solver) Model() []bool {
	model := make([]bool, len(s.vars))
	for v := 1; v < len(s.vars); v++ {
		model[v] = s.vars[v].value == True
	}
	return model
}

// NumClauses returns the number of originally-added (non-learnt) clauses
// still live.
func (s *Solver) NumClauses() int {
	return len(s.clauses)
}

// NumLearnts returns the number of learnt clauses still live.
func (s *Solver) NumLearnts() int {
	return len(s.learnts)
}
