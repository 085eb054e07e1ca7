// Package cnf reads and writes the DIMACS CNF format, mirroring the
// teacher's parsers/internal/dimacs split
// (_examples/rhartert-yass/parsers/parsers.go,
// _examples/rhartert-yass/internal/dimacs/dimacs.go): a thin wrapper
// around github.com/rhartert/dimacs that forwards parsed clauses to a
// solver-shaped Builder instead of hand-rolling a scanner.
package cnf

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rhartert/dimacs"

	"github.com/go-napsat/napsat/internal/core"
)

// Builder is the subset of *core.Solver that Load populates.
type Builder interface {
	AddVariable() int
	AddClause(lits []core.Literal) (core.ClauseHandle, error)
}

// Stats reports what a Load call found, beyond what it fed the Builder.
type Stats struct {
	Vars      int // the "p cnf" header's declared variable count
	Clauses   int // the header's declared clause count
	NumClauses int // clauses actually parsed (authoritative over Clauses)

	// Aliases maps a variable to the name given by a "c co <var> <alias>"
	// comment line, a convention this package recognizes but the core
	// never sees.
	Aliases map[int]string
}

// Load opens path, transparently gzip-decompressing a ".gz" suffix, and
// parses it as DIMACS CNF into solver. For ".xz" input, decompress with
// an external reader and call LoadReader directly: no xz library is
// wired into this module (see DESIGN.md).
func Load(path string, solver Builder) (*Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cnf: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("cnf: %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	return LoadReader(r, solver)
}

// LoadReader parses DIMACS CNF from an already-decompressed reader. The
// caller owns r's lifecycle (closing, e.g., an xz pipe).
func LoadReader(r io.Reader, solver Builder) (*Stats, error) {
	st := &Stats{}
	b := &builder{solver: solver, stats: st}
	if err := dimacs.ReadBuilder(r, b); err != nil {
		return nil, fmt.Errorf("cnf: %w", err)
	}
	return st, nil
}

// builder adapts a Builder to dimacs.Builder.
type builder struct {
	solver Builder
	stats  *Stats
}

func (b *builder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("cnf: unsupported problem type %q", problem)
	}
	b.stats.Vars = nVars
	b.stats.Clauses = nClauses
	for i := 0; i < nVars; i++ {
		b.solver.AddVariable()
	}
	return nil
}

func (b *builder) Clause(tmp []int) error {
	lits := make([]core.Literal, len(tmp))
	for i, l := range tmp {
		if l < 0 {
			lits[i] = core.NegativeLiteral(-l)
		} else {
			lits[i] = core.PositiveLiteral(l)
		}
	}
	if _, err := b.solver.AddClause(lits); err != nil {
		return err
	}
	b.stats.NumClauses++
	return nil
}

func (b *builder) Comment(text string) error {
	fields := strings.Fields(text)
	if len(fields) != 3 || fields[0] != "co" {
		return nil
	}
	v, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil
	}
	if b.stats.Aliases == nil {
		b.stats.Aliases = make(map[int]string)
	}
	b.stats.Aliases[v] = fields[2]
	return nil
}

// WriteResult writes the DIMACS-style result line, and a "v ..." model
// line when status is SAT and model is non-nil, per §6.4.
func WriteResult(w io.Writer, status core.Status, model []bool) error {
	var line string
	switch status {
	case core.StatusSAT:
		line = "s SATISFIABLE"
	case core.StatusUNSAT:
		line = "s UNSATISFIABLE"
	default:
		line = "s UNKNOWN"
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}
	if status != core.StatusSAT || model == nil {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("v")
	for v := 1; v < len(model); v++ {
		if model[v] {
			fmt.Fprintf(&sb, " %d", v)
		} else {
			fmt.Fprintf(&sb, " -%d", v)
		}
	}
	sb.WriteString(" 0")
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

// ReadModels parses the precomputed-model fixture format the test suite
// uses: each non-comment line is itself a DIMACS clause-style list of
// signed literals (no header), one line per model. Adapted from the
// teacher's internal/dimacs/models.go.
func ReadModels(path string) ([][]bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cnf: %w", err)
	}
	defer f.Close()

	b := &modelBuilder{}
	if err := dimacs.ReadBuilder(f, b); err != nil {
		return nil, fmt.Errorf("cnf: %w", err)
	}
	return b.models, nil
}

type modelBuilder struct {
	models [][]bool
}

func (b *modelBuilder) Problem(problem string, nVars, nClauses int) error {
	return fmt.Errorf("cnf: model files must not have a problem line")
}

func (b *modelBuilder) Comment(string) error { return nil }

func (b *modelBuilder) Clause(tmp []int) error {
	model := make([]bool, len(tmp))
	for i, l := range tmp {
		model[i] = l > 0
	}
	b.models = append(b.models, model)
	return nil
}
