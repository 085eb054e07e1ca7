package cnf

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-napsat/napsat/internal/core"
)

func TestLoadReaderParsesProblemAndClauses(t *testing.T) {
	const dimacs = `c a trivial instance
c co 1 switch
p cnf 3 2
1 -2 0
2 3 0
`
	s, err := core.New(core.DefaultOptions)
	if err != nil {
		t.Fatalf("core.New() error = %v", err)
	}
	stats, err := LoadReader(strings.NewReader(dimacs), s)
	if err != nil {
		t.Fatalf("LoadReader() error = %v", err)
	}

	if stats.Vars != 3 {
		t.Errorf("Vars = %d, want 3", stats.Vars)
	}
	if stats.NumClauses != 2 {
		t.Errorf("NumClauses = %d, want 2", stats.NumClauses)
	}
	if got := s.NumVariables(); got != 3 {
		t.Errorf("NumVariables() = %d, want 3", got)
	}
	if got := s.NumClauses(); got != 2 {
		t.Errorf("solver NumClauses() = %d, want 2", got)
	}
	if stats.Aliases[1] != "switch" {
		t.Errorf("Aliases[1] = %q, want %q", stats.Aliases[1], "switch")
	}
}

func TestLoadReaderRejectsNonCNFProblem(t *testing.T) {
	s, err := core.New(core.DefaultOptions)
	if err != nil {
		t.Fatalf("core.New() error = %v", err)
	}
	_, err = LoadReader(strings.NewReader("p wcnf 1 1\n1 0\n"), s)
	if err == nil {
		t.Fatalf("LoadReader() error = nil, want an error for a non-cnf problem line")
	}
}

func TestWriteResultSAT(t *testing.T) {
	var buf bytes.Buffer
	model := []bool{false, true, false, true} // index 0 unused
	if err := WriteResult(&buf, core.StatusSAT, model); err != nil {
		t.Fatalf("WriteResult() error = %v", err)
	}
	want := "s SATISFIABLE\nv 1 -2 3 0\n"
	if got := buf.String(); got != want {
		t.Errorf("WriteResult() = %q, want %q", got, want)
	}
}

func TestWriteResultUNSAT(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResult(&buf, core.StatusUNSAT, nil); err != nil {
		t.Fatalf("WriteResult() error = %v", err)
	}
	want := "s UNSATISFIABLE\n"
	if got := buf.String(); got != want {
		t.Errorf("WriteResult() = %q, want %q", got, want)
	}
}

func TestReadModels(t *testing.T) {
	b := &modelBuilder{}
	if err := b.Clause([]int{1, -2, 3}); err != nil {
		t.Fatalf("Clause() error = %v", err)
	}
	if err := b.Clause([]int{-1, 2, -3}); err != nil {
		t.Fatalf("Clause() error = %v", err)
	}
	want := [][]bool{{true, false, true}, {false, true, false}}
	if len(b.models) != len(want) {
		t.Fatalf("got %d models, want %d", len(b.models), len(want))
	}
	for i := range want {
		for j := range want[i] {
			if b.models[i][j] != want[i][j] {
				t.Errorf("model %d[%d] = %v, want %v", i, j, b.models[i][j], want[i][j])
			}
		}
	}
}
