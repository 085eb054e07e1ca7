// Command yass solves a DIMACS CNF instance, mirroring the teacher's
// main.go (_examples/rhartert-yass/main.go): flag-parsed configuration,
// optional pprof profiling, and the same "c ..." stats-line convention
// on stdout before the DIMACS result line.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/go-napsat/napsat/cnf"
	"github.com/go-napsat/napsat/internal/core"
)

var (
	flagRegime     = flag.String("backtracking", "ncb", "backtracking regime: ncb, wcb, rscb, lscb")
	flagBuildProof = flag.Bool("proof", false, "build and check a resolution proof")
	flagCPUProfile = flag.Bool("cpuprof", false, "save pprof CPU profile in cpuprof")
	flagMemProfile = flag.Bool("memprof", false, "save pprof memory profile in memprof")
)

type config struct {
	instanceFile string
	regime       core.Regime
	buildProof   bool
	cpuProfile   bool
	memProfile   bool
}

func parseConfig() (*config, error) {
	flag.Parse()

	if flag.NArg() == 0 || flag.Arg(0) == "" {
		return nil, fmt.Errorf("missing instance file")
	}
	regime, err := core.ParseRegime(*flagRegime)
	if err != nil {
		return nil, err
	}
	return &config{
		instanceFile: flag.Arg(0),
		regime:       regime,
		buildProof:   *flagBuildProof,
		cpuProfile:   *flagCPUProfile,
		memProfile:   *flagMemProfile,
	}, nil
}

func run(cfg *config) error {
	opts := core.DefaultOptions
	opts.Backtracking = cfg.regime
	opts.BuildProof = cfg.buildProof

	s, err := core.New(opts)
	if err != nil {
		return fmt.Errorf("could not configure solver: %w", err)
	}

	stats, err := cnf.Load(cfg.instanceFile, s)
	if err != nil {
		return fmt.Errorf("could not parse instance: %w", err)
	}

	fmt.Printf("c variables:  %d\n", s.NumVariables())
	fmt.Printf("c clauses:    %d\n", stats.NumClauses)

	start := time.Now()
	status := s.Solve()
	elapsed := time.Since(start)

	fmt.Printf("c time (sec): %f\n", elapsed.Seconds())
	fmt.Printf("c conflicts:  %d (%.2f /sec)\n", s.TotalConflicts, float64(s.TotalConflicts)/elapsed.Seconds())
	fmt.Printf("c restarts:   %d\n", s.TotalRestarts)
	fmt.Printf("c status:     %s\n", status.String())

	if cfg.buildProof && status == core.StatusUNSAT {
		fmt.Printf("c proof checks: %t\n", s.CheckProof())
	}

	return cnf.WriteResult(os.Stdout, status, s.Model())
}

func main() {
	cfg, err := parseConfig()
	if err != nil {
		log.Print(err)
		os.Exit(1)
	}

	if cfg.cpuProfile {
		f, err := os.Create("cpuprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if err := run(cfg); err != nil {
		log.Print(err)
		os.Exit(1)
	}

	if cfg.memProfile {
		f, err := os.Create("memprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}
}
