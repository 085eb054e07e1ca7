// Package-level integration tests covering the full solve path across all
// four backtracking regimes, adapted from the teacher's yass_test.go
// (_examples/rhartert-yass/yass_test.go): rather than comparing against a
// testdata/*.cnf.models fixture (none shipped with the source this module
// was grounded on), each instance's satisfiability and the model actually
// found are checked against a brute-force truth-table enumeration.
package napsat_test

import (
	"testing"

	"github.com/go-napsat/napsat/internal/core"
)

type clause []int

type instance struct {
	name    string
	numVars int
	clauses []clause
}

func satisfies(model []bool, cl clause) bool {
	for _, lit := range cl {
		v, want := lit, true
		if v < 0 {
			v, want = -v, false
		}
		if model[v-1] == want {
			return true
		}
	}
	return false
}

// bruteForceSatisfiable reports whether inst has any model, trying all
// 2^n assignments; only used on the small instances in this table.
func bruteForceSatisfiable(inst instance) bool {
	total := 1 << uint(inst.numVars)
	for mask := 0; mask < total; mask++ {
		model := make([]bool, inst.numVars)
		for v := 0; v < inst.numVars; v++ {
			model[v] = mask&(1<<uint(v)) != 0
		}
		ok := true
		for _, cl := range inst.clauses {
			if !satisfies(model, cl) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

func pigeonholeClauses(pigeons, holes int) []clause {
	pv := func(i, h int) int { return holes*(i-1) + h }
	var cls []clause
	for i := 1; i <= pigeons; i++ {
		row := make(clause, holes)
		for h := 1; h <= holes; h++ {
			row[h-1] = pv(i, h)
		}
		cls = append(cls, row)
	}
	for h := 1; h <= holes; h++ {
		for i := 1; i <= pigeons; i++ {
			for j := i + 1; j <= pigeons; j++ {
				cls = append(cls, clause{-pv(i, h), -pv(j, h)})
			}
		}
	}
	return cls
}

var instances = []instance{
	{
		name:    "small satisfiable",
		numVars: 3,
		clauses: []clause{{1, 2, 3}, {-1, 2}, {-2, 3}, {1, -3}},
	},
	{
		name:    "forced unit chain",
		numVars: 4,
		clauses: []clause{{1}, {-1, 2}, {-2, 3}, {-3, 4}},
	},
	{
		name:    "single two-literal clause",
		numVars: 2,
		clauses: []clause{{1, 2}},
	},
	{
		name:    "pigeonhole 3-into-2 is unsatisfiable",
		numVars: 6,
		clauses: pigeonholeClauses(3, 2),
	},
	{
		name:    "pigeonhole 4-into-4 is satisfiable",
		numVars: 16,
		clauses: pigeonholeClauses(4, 4),
	},
}

// solveOnce builds a fresh solver under regime, adds inst's clauses, and
// solves to completion, returning the status and (for StatusSAT) the
// per-variable model.
func solveOnce(t *testing.T, regime core.Regime, inst instance) (core.Status, []bool) {
	t.Helper()
	opts := core.DefaultOptions
	opts.Backtracking = regime
	s, err := core.New(opts)
	if err != nil {
		t.Fatalf("core.New() error = %v", err)
	}
	for i := 0; i < inst.numVars; i++ {
		s.AddVariable()
	}
	for _, cl := range inst.clauses {
		lits := make([]core.Literal, len(cl))
		for i, l := range cl {
			if l < 0 {
				lits[i] = core.NegativeLiteral(-l)
			} else {
				lits[i] = core.PositiveLiteral(l)
			}
		}
		if _, err := s.AddClause(lits); err != nil {
			t.Fatalf("AddClause(%v) error = %v", cl, err)
		}
	}

	status := s.Status()
	if status == core.StatusUndef {
		status = s.Solve()
	}
	if status != core.StatusSAT {
		return status, nil
	}
	full := s.Model()
	model := make([]bool, inst.numVars)
	for v := 1; v <= inst.numVars; v++ {
		model[v-1] = full[v]
	}
	return status, model
}

func TestSolveMatchesBruteForceAcrossRegimes(t *testing.T) {
	for _, inst := range instances {
		inst := inst
		wantSAT := bruteForceSatisfiable(inst)
		t.Run(inst.name, func(t *testing.T) {
			for _, regime := range []core.Regime{core.NCB, core.WCB, core.RSCB, core.LSCB} {
				t.Run(regime.String(), func(t *testing.T) {
					status, model := solveOnce(t, regime, inst)

					gotSAT := status == core.StatusSAT
					if gotSAT != wantSAT {
						t.Fatalf("Solve() = %v, want satisfiable=%v", status, wantSAT)
					}
					if !gotSAT {
						if status != core.StatusUNSAT {
							t.Fatalf("Solve() = %v, want StatusUNSAT", status)
						}
						return
					}
					for _, cl := range inst.clauses {
						if !satisfies(model, cl) {
							t.Errorf("model %v does not satisfy clause %v", model, cl)
						}
					}
				})
			}
		})
	}
}
