// Command chi-solver computes the chromatic number of a DIMACS graph
// instance using a distributed parallel branch-and-bound search,
// grounded on the teacher's cobra/pflag/viper CLI wiring.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/GiacomoPauletti/graph-color-number/config"
	"github.com/GiacomoPauletti/graph-color-number/dimacs"
	"github.com/GiacomoPauletti/graph-color-number/engine"
	"github.com/GiacomoPauletti/graph-color-number/graph"
	"github.com/GiacomoPauletti/graph-color-number/metrics"
	"github.com/GiacomoPauletti/graph-color-number/result"
	"github.com/GiacomoPauletti/graph-color-number/solverlog"
)

// solverVersion is stamped into the persisted output's "solver
// version" line.
const solverVersion = "chi-solver/1.0"

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "chi-solver <dimacs_file>",
		Short: "Compute the chromatic number of a DIMACS graph instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v.Set("instance", args[0])
			return run(cmd.Context(), v)
		},
	}

	flags := cmd.Flags()
	flags.Int("timeout", 60, "wall-clock timeout in seconds")
	flags.Int("sol_gather_period", 10, "all-gather cadence in seconds")
	flags.Bool("balanced", true, "use the balanced binary-search initial partition instead of depth-rank gating")
	flags.Int("color_strategy", 0, "coloring heuristic: 0=greedy 1=welsh-powell 2=dsatur 3=rlf")
	flags.String("output", "output.txt", "output file path")
	flags.Bool("logging", false, "enable structured logging")
	flags.Int("ranks", 1, "number of simulated worker processes")
	flags.Bool("metrics", false, "expose a prometheus /metrics endpoint")
	flags.Int("metrics-port", 9094, "port for the /metrics endpoint")

	bindAll(v, flags)
	return cmd
}

func bindAll(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
	})
	v.SetEnvPrefix("CHI_SOLVER")
	v.AutomaticEnv()
}

func run(ctx context.Context, v *viper.Viper) error {
	cfg, err := config.FromViper(v)
	if err != nil {
		return err
	}

	log := solverlog.New(cfg.Logging)
	defer log.Sync() //nolint:errcheck

	if cfg.Metrics {
		go func() {
			addr := fmt.Sprintf(":%d", cfg.MetricsPort)
			if err := metrics.Serve(addr); err != nil {
				log.Warn("metrics server stopped", zap.Error(err))
			}
		}()
	}

	f, err := os.Open(cfg.InstanceFile)
	if err != nil {
		return fmt.Errorf("chi-solver: %w", err)
	}
	defer f.Close()

	root, err := dimacs.Parse(f, func(n int) graph.Graph { return graph.NewRoot(n) })
	if err != nil {
		return fmt.Errorf("chi-solver: %w", err)
	}

	expectedChi, err := loadExpectedChi(cfg)
	if err != nil {
		return err
	}

	strat := engine.Strategies{
		Clique:    graph.GreedyClique{},
		Color:     colorStrategyFor(cfg.ColorStrategy),
		Branching: graph.MaxDegreeNonAdjacent{},
	}

	var metricsRecorder engine.Metrics
	if cfg.Metrics {
		metricsRecorder = metrics.Recorder{}
	}

	econf := engine.Config{
		Timeout:         cfg.Timeout,
		SolGatherPeriod: cfg.SolGatherPeriod,
		Balanced:        cfg.Balanced,
		ExpectedChi:     expectedChi,
	}

	eng := engine.New(root, cfg.Ranks, econf, strat, log, metricsRecorder)

	start := time.Now()
	sol, err := eng.Solve(ctx)
	if err != nil {
		var ferr *engine.FabricError
		if errors.As(err, &ferr) {
			// A fatal fabric fault (corrupt wire payload, recovered
			// goroutine panic) invalidates every rank's invariants; this
			// is not a reportable result, it's an abort.
			log.Fatal("fabric error, aborting search", zap.Error(ferr))
			os.Exit(1) // unreachable once log.Fatal's core fires; belt-and-suspenders under a nop logger
		}
		return fmt.Errorf("chi-solver: fabric error: %w", err)
	}
	wallTime := time.Since(start)

	if err := result.Verify(root, sol.Coloring); err != nil {
		fmt.Fprintln(os.Stdout, "warning:", err)
		log.Warn("coloring integrity check failed", zap.Error(err))
	}

	numEdges := countEdges(root)
	report := result.Report{
		ProblemInstanceFileName: filepath.Base(cfg.InstanceFile),
		CmdLine:                 strings.Join(os.Args, " "),
		SolverVersion:           solverVersion,
		NumVertices:             root.NumVertices(),
		NumEdges:                numEdges,
		TimeLimitSec:            int(cfg.Timeout.Seconds()),
		NumWorkerProcesses:      cfg.Ranks,
		NumCoresPerWorker:       1,
		WallTimeSec:             wallTime.Seconds(),
		IsWithinTimeLimit:       sol.WithinTimeLimit,
		NumColors:               sol.NumColors,
		Coloring:                sol.Coloring,
	}

	out, err := os.Create(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("chi-solver: %w", err)
	}
	defer out.Close()
	if err := result.Write(out, report); err != nil {
		return fmt.Errorf("chi-solver: %w", err)
	}

	return nil
}

func loadExpectedChi(cfg config.Config) (uint16, error) {
	f, err := os.Open(cfg.ExpectedChiFile)
	if err != nil {
		return 0, fmt.Errorf("chi-solver: could not open expected results file: %w", err)
	}
	defer f.Close()

	table, err := dimacs.LoadExpectedChi(f)
	if err != nil {
		return 0, fmt.Errorf("chi-solver: %w", err)
	}
	chi, err := dimacs.Lookup(table, filepath.Base(cfg.InstanceFile))
	if err != nil {
		return 0, fmt.Errorf("chi-solver: %w", err)
	}
	return chi, nil
}

func colorStrategyFor(n int) graph.ColorStrategy {
	switch n {
	case 1:
		return graph.WelshPowellColor{}
	case 2:
		return graph.DSaturColor{}
	case 3:
		return graph.RLFColor{}
	default:
		return graph.GreedyColor{}
	}
}

func countEdges(g graph.Graph) int {
	total := 0
	for _, v := range g.Vertices() {
		total += len(g.Neighbors(v))
	}
	return total / 2
}

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
