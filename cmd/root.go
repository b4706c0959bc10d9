package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/francescoscianni/WSN-Simulation/sim"
	"github.com/francescoscianni/WSN-Simulation/sim/montecarlo"
)

var (
	// CLI flags for a single simulation run
	debugMode        bool    // seed 0 + debug logging, run becomes repeatable
	maxTransmissions int     // relay sends per node per flood
	lossRate         float64 // base loss probability of one transmission
	maxHops          int     // Chebyshev radius of the grid topology
	guardTime        int64   // guard time in ticks between retransmissions
	seed             int64   // master seed; omit for a time-derived seed
	noInterference   bool    // disable constructive interference
	logLevel         string  // log verbosity level

	// CLI flags for Monte Carlo sweeps
	sweepConfigPath string // YAML sweep description; empty = built-in defaults
	sweepOutputPath string // CSV output path; empty = stdout
)

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "wsnsim",
	Short: "Discrete-event simulator for flooding protocols in wireless sensor networks",
}

// runCmd executes a single simulation run from CLI flags.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single flooding simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		cfg := sim.Config{
			MaxTransmissions: maxTransmissions,
			LossRate:         lossRate,
			MaxHops:          maxHops,
			GuardTime:        sim.Tick(guardTime),
			Seed:             resolveSeed(cmd),
			Interference:     !noInterference,
		}

		s, err := sim.NewSimulator(cfg)
		if err != nil {
			logrus.Fatalf("invalid simulation setup: %v", err)
		}
		res := s.Run()
		res.Print()
	},
}

// montecarloCmd executes a batch sweep and exports per-cell statistics.
var montecarloCmd = &cobra.Command{
	Use:   "montecarlo",
	Short: "Run a Monte Carlo sweep over loss rates and transmission counts",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		cfg := montecarlo.DefaultSweepConfig()
		if sweepConfigPath != "" {
			var err error
			cfg, err = montecarlo.LoadSweepConfig(sweepConfigPath)
			if err != nil {
				logrus.Fatalf("unable to read sweep config: %v", err)
			}
		}

		startTime := time.Now()
		cells, err := montecarlo.RunSweep(cfg)
		if err != nil {
			logrus.Fatalf("sweep failed: %v", err)
		}
		logrus.Infof("sweep complete: %d cells x %d trials in %v",
			len(cells), cfg.Trials, time.Since(startTime))

		out := os.Stdout
		if sweepOutputPath != "" {
			f, err := os.Create(sweepOutputPath)
			if err != nil {
				logrus.Fatalf("unable to create output file: %v", err)
			}
			defer f.Close()
			out = f
		}
		if err := montecarlo.WriteCSV(out, cells); err != nil {
			logrus.Fatalf("unable to write results: %v", err)
		}
	},
}

// setupLogging applies the --log flag; --debug forces debug verbosity.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	if debugMode {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)
}

// resolveSeed picks the master seed for a run: 0 in debug mode, the --seed
// flag when given, a time-derived seed otherwise.
func resolveSeed(cmd *cobra.Command) int64 {
	if debugMode {
		return 0
	}
	if cmd.Flags().Changed("seed") {
		return seed
	}
	return time.Now().UnixNano()
}

func init() {
	runCmd.Flags().BoolVarP(&debugMode, "debug", "d", false,
		"Enable debug mode: seeds the PRNG with 0 and raises log verbosity to debug")
	runCmd.Flags().IntVarP(&maxTransmissions, "max-transmissions", "t", 1,
		"Number of retransmissions a node performs after first reception of a flood message (>= 0)")
	runCmd.Flags().Float64VarP(&lossRate, "loss-rate", "l", 0.6,
		"Loss rate for a single packet transmission (0.0 to 1.0)")
	runCmd.Flags().IntVarP(&maxHops, "max-hops", "m", 4,
		"Maximum hop distance (Chebyshev distance) from the sink in the grid topology (>= 1)")
	runCmd.Flags().Int64VarP(&guardTime, "guard-time", "g", 100,
		"Guard time in simulation ticks between consecutive retransmissions (>= 1)")
	runCmd.Flags().Int64VarP(&seed, "seed", "s", 0,
		"Random seed for the simulation; if omitted, a time-derived seed is used")
	runCmd.Flags().BoolVar(&noInterference, "no-interference", false,
		"Disable constructive interference; all concurrent transmissions collide destructively")

	montecarloCmd.Flags().StringVar(&sweepConfigPath, "config", "",
		"YAML sweep description; omit to use the built-in default sweep")
	montecarloCmd.Flags().StringVarP(&sweepOutputPath, "output", "o", "",
		"CSV output path; omit to write to stdout")

	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error",
		"Log level (trace, debug, info, warn, error, fatal, panic)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(montecarloCmd)
}

// Execute runs the CLI entry point.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}
