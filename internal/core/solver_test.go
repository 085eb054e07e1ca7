package core

import (
	"errors"
	"testing"
)

func newTestSolver(t *testing.T) *Solver {
	t.Helper()
	s, err := New(DefaultOptions)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func TestAddVariableIsDense(t *testing.T) {
	s := newTestSolver(t)
	for i := 1; i <= 5; i++ {
		if got := s.AddVariable(); got != i {
			t.Fatalf("AddVariable() = %d, want %d", got, i)
		}
	}
	if got := s.NumVariables(); got != 5 {
		t.Errorf("NumVariables() = %d, want 5", got)
	}
}

func TestAddClauseUnitPropagates(t *testing.T) {
	s := newTestSolver(t)
	a := s.AddVariable()
	b := s.AddVariable()

	if _, err := s.AddClause([]Literal{PositiveLiteral(a)}); err != nil {
		t.Fatalf("AddClause(unit) error = %v", err)
	}
	if _, err := s.AddClause([]Literal{NegativeLiteral(a), PositiveLiteral(b)}); err != nil {
		t.Fatalf("AddClause(implication) error = %v", err)
	}

	if got := s.VarValue(a); got != True {
		t.Errorf("VarValue(a) = %v, want True", got)
	}
	if got := s.VarValue(b); got != True {
		t.Errorf("VarValue(b) = %v, want True (unit-propagated)", got)
	}
	if s.Status() == StatusUNSAT {
		t.Errorf("Status() = UNSAT, want undecided after consistent unit clauses")
	}
}

func TestAddClauseEmptyConflictingUnitsIsUNSAT(t *testing.T) {
	s := newTestSolver(t)
	a := s.AddVariable()

	if _, err := s.AddClause([]Literal{PositiveLiteral(a)}); err != nil {
		t.Fatalf("AddClause error = %v", err)
	}
	if _, err := s.AddClause([]Literal{NegativeLiteral(a)}); err != nil {
		t.Fatalf("AddClause error = %v", err)
	}
	if got := s.Status(); got != StatusUNSAT {
		t.Errorf("Status() = %v, want StatusUNSAT", got)
	}
}

func TestAddClauseTautologyIsNoOp(t *testing.T) {
	s := newTestSolver(t)
	a := s.AddVariable()

	h, err := s.AddClause([]Literal{PositiveLiteral(a), NegativeLiteral(a)})
	if err != nil {
		t.Fatalf("AddClause(tautology) error = %v", err)
	}
	if h != ClauseUndef {
		t.Errorf("AddClause(tautology) handle = %v, want ClauseUndef", h)
	}
	if got := s.NumClauses(); got != 0 {
		t.Errorf("NumClauses() = %d, want 0 (tautology must not be tracked)", got)
	}
}

func TestStreamingClauseRejectsContractViolation(t *testing.T) {
	s := newTestSolver(t)
	a := s.AddVariable()

	s.StartClause()
	if err := s.PushLiteral(PositiveLiteral(a)); err != nil {
		t.Fatalf("PushLiteral error = %v", err)
	}
	if err := s.PushLiteral(NegativeLiteral(a)); err != nil {
		t.Fatalf("PushLiteral error = %v", err)
	}
	_, err := s.FinalizeClause()
	if !errors.Is(err, ErrContractViolation) {
		t.Errorf("FinalizeClause() error = %v, want ErrContractViolation", err)
	}
}

func TestStreamingClauseBuildsSameAsBatch(t *testing.T) {
	s := newTestSolver(t)
	a := s.AddVariable()
	b := s.AddVariable()
	c := s.AddVariable()

	s.StartClause()
	s.PushLiteral(PositiveLiteral(a))
	s.PushLiteral(NegativeLiteral(b))
	s.PushLiteral(PositiveLiteral(c))
	if _, err := s.FinalizeClause(); err != nil {
		t.Fatalf("FinalizeClause() error = %v", err)
	}
	if got := s.NumClauses(); got != 1 {
		t.Errorf("NumClauses() = %d, want 1", got)
	}
}

func TestPushLiteralWithoutStartClauseErrors(t *testing.T) {
	s := newTestSolver(t)
	a := s.AddVariable()
	if err := s.PushLiteral(PositiveLiteral(a)); !errors.Is(err, ErrContractViolation) {
		t.Errorf("PushLiteral() error = %v, want ErrContractViolation", err)
	}
}

// solveToCompletion runs Solve and fails the test if it returns
// StatusUndef instead of a final status.
func solveToCompletion(t *testing.T, s *Solver) Status {
	t.Helper()
	status := s.Solve()
	if status == StatusUndef {
		t.Fatalf("Solve() returned StatusUndef")
	}
	return status
}

func modelSatisfies(model []bool, clauses [][]int) bool {
	for _, cl := range clauses {
		ok := false
		for _, lit := range cl {
			v := lit
			want := true
			if v < 0 {
				v = -v
				want = false
			}
			if model[v] == want {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

func buildAndSolve(t *testing.T, regime Regime, nv int, clauses [][]int) (*Solver, Status) {
	t.Helper()
	opts := DefaultOptions
	opts.Backtracking = regime
	s, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	for i := 0; i < nv; i++ {
		s.AddVariable()
	}
	for _, cl := range clauses {
		lits := make([]Literal, len(cl))
		for i, l := range cl {
			if l < 0 {
				lits[i] = NegativeLiteral(-l)
			} else {
				lits[i] = PositiveLiteral(l)
			}
		}
		if _, err := s.AddClause(lits); err != nil {
			t.Fatalf("AddClause(%v) error = %v", cl, err)
		}
	}
	return s, solveToCompletion(t, s)
}

func TestSolveSatisfiableAcrossRegimes(t *testing.T) {
	// (a v b v c) ^ (!a v b) ^ (!b v c) ^ (a v !c)
	clauses := [][]int{
		{1, 2, 3},
		{-1, 2},
		{-2, 3},
		{1, -3},
	}
	for _, regime := range []Regime{NCB, WCB, RSCB, LSCB} {
		t.Run(regime.String(), func(t *testing.T) {
			s, status := buildAndSolve(t, regime, 3, clauses)
			if status != StatusSAT {
				t.Fatalf("Solve() = %v, want StatusSAT", status)
			}
			if !modelSatisfies(s.Model(), clauses) {
				t.Errorf("Model() %v does not satisfy %v", s.Model(), clauses)
			}
		})
	}
}

func TestSolveUnsatisfiableAcrossRegimes(t *testing.T) {
	// Pigeonhole: 3 pigeons, 2 holes. Vars: p(i,h) = 2*(i-1)+h, i in 1..3, h in 1..2.
	pv := func(i, h int) int { return 2*(i-1) + h }
	var clauses [][]int
	for i := 1; i <= 3; i++ {
		clauses = append(clauses, []int{pv(i, 1), pv(i, 2)})
	}
	for h := 1; h <= 2; h++ {
		for i := 1; i <= 3; i++ {
			for j := i + 1; j <= 3; j++ {
				clauses = append(clauses, []int{-pv(i, h), -pv(j, h)})
			}
		}
	}
	for _, regime := range []Regime{NCB, WCB, RSCB, LSCB} {
		t.Run(regime.String(), func(t *testing.T) {
			_, status := buildAndSolve(t, regime, 6, clauses)
			if status != StatusUNSAT {
				t.Fatalf("Solve() = %v, want StatusUNSAT", status)
			}
		})
	}
}

func TestSolveEmptyClauseSetIsSAT(t *testing.T) {
	s := newTestSolver(t)
	s.AddVariable()
	s.AddVariable()
	if status := s.Solve(); status != StatusSAT {
		t.Errorf("Solve() = %v, want StatusSAT", status)
	}
}
