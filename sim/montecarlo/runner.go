// Package montecarlo runs batch flood-coverage experiments over the
// simulation kernel: a grid of (loss rate, max transmissions) cells, each
// repeated over many seeded trials, aggregated into per-cell statistics.
package montecarlo

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/francescoscianni/WSN-Simulation/sim"
)

// CellSummary aggregates the trials of one (loss rate, max transmissions)
// sweep cell.
type CellSummary struct {
	LossRate         float64
	MaxTransmissions int
	Trials           int
	Successes        int
	// SuccessProbability is the fraction of trials in which every node
	// received the flood.
	SuccessProbability float64
	// MeanCompletionTime and StdDevCompletionTime summarize the
	// completion tick of successful trials only.
	MeanCompletionTime   float64
	StdDevCompletionTime float64
	// MeanTransmissions is the average total transmission count across
	// all trials of the cell.
	MeanTransmissions float64
}

// RunSweep executes every cell of the sweep. Trial i of a cell runs with
// seed i, so repeating a sweep reproduces it bit for bit.
func RunSweep(cfg SweepConfig) ([]CellSummary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cells := make([]CellSummary, 0, len(cfg.LossRates)*len(cfg.MaxTransmissions))
	for _, tx := range cfg.MaxTransmissions {
		for _, loss := range cfg.LossRates {
			cell, err := runCell(cfg, loss, tx)
			if err != nil {
				return nil, err
			}
			logrus.Infof("cell loss=%.2f tx=%d: success %d/%d",
				loss, tx, cell.Successes, cell.Trials)
			cells = append(cells, cell)
		}
	}
	return cells, nil
}

func runCell(cfg SweepConfig, loss float64, tx int) (CellSummary, error) {
	cell := CellSummary{
		LossRate:         loss,
		MaxTransmissions: tx,
		Trials:           cfg.Trials,
	}

	completionTimes := make([]float64, 0, cfg.Trials)
	transmissions := make([]float64, 0, cfg.Trials)
	for trial := 0; trial < cfg.Trials; trial++ {
		s, err := sim.NewSimulator(sim.Config{
			MaxTransmissions: tx,
			LossRate:         loss,
			MaxHops:          cfg.MaxHops,
			GuardTime:        sim.Tick(cfg.GuardTime),
			Seed:             int64(trial),
			Interference:     cfg.interferenceEnabled(),
		})
		if err != nil {
			return CellSummary{}, fmt.Errorf("building trial %d of cell loss=%g tx=%d: %w",
				trial, loss, tx, err)
		}
		res := s.Run()
		transmissions = append(transmissions, float64(res.TotalTransmissions))
		if res.FloodSuccess {
			cell.Successes++
			completionTimes = append(completionTimes, float64(res.CompletionTime))
		}
	}

	cell.SuccessProbability = float64(cell.Successes) / float64(cell.Trials)
	cell.MeanTransmissions = stat.Mean(transmissions, nil)
	if len(completionTimes) > 0 {
		cell.MeanCompletionTime = stat.Mean(completionTimes, nil)
	}
	if len(completionTimes) > 1 {
		cell.StdDevCompletionTime = stat.StdDev(completionTimes, nil)
	}
	return cell, nil
}
