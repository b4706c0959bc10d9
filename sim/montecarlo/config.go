package montecarlo

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/francescoscianni/WSN-Simulation/sim"
)

// SweepConfig describes a Monte Carlo experiment: the grid of
// (loss rate, max transmissions) cells and the number of trials per cell.
// The trial index doubles as the run seed, so a sweep is reproducible
// cell by cell.
type SweepConfig struct {
	LossRates        []float64 `yaml:"loss_rates"`
	MaxTransmissions []int     `yaml:"max_transmissions"`
	Trials           int       `yaml:"trials"`
	MaxHops          int       `yaml:"max_hops"`
	GuardTime        int64     `yaml:"guard_time"`
	Interference     *bool     `yaml:"interference,omitempty"` // nil = enabled
}

// DefaultSweepConfig returns the canonical flood-coverage experiment.
func DefaultSweepConfig() SweepConfig {
	return SweepConfig{
		LossRates:        []float64{0.5, 0.6, 0.7},
		MaxTransmissions: []int{1, 2, 4},
		Trials:           500,
		MaxHops:          4,
		GuardTime:        100,
	}
}

// LoadSweepConfig reads a sweep description from a YAML file.
func LoadSweepConfig(path string) (SweepConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SweepConfig{}, fmt.Errorf("reading sweep config: %w", err)
	}
	cfg := DefaultSweepConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SweepConfig{}, fmt.Errorf("parsing sweep config: %w", err)
	}
	return cfg, nil
}

// Validate checks the sweep parameters. Per-cell run parameters are
// validated again by the kernel before any event is scheduled.
func (c SweepConfig) Validate() error {
	if len(c.LossRates) == 0 {
		return fmt.Errorf("%w: sweep needs at least one loss rate", sim.ErrConfiguration)
	}
	for _, l := range c.LossRates {
		if l < 0.0 || l > 1.0 {
			return fmt.Errorf("%w: loss rate must be within [0.0, 1.0], got %g", sim.ErrConfiguration, l)
		}
	}
	if len(c.MaxTransmissions) == 0 {
		return fmt.Errorf("%w: sweep needs at least one transmission count", sim.ErrConfiguration)
	}
	for _, tx := range c.MaxTransmissions {
		if tx < 0 {
			return fmt.Errorf("%w: max transmissions must be >= 0, got %d", sim.ErrConfiguration, tx)
		}
	}
	if c.Trials < 1 {
		return fmt.Errorf("%w: trials must be >= 1, got %d", sim.ErrConfiguration, c.Trials)
	}
	if c.MaxHops < 1 {
		return fmt.Errorf("%w: max hops must be >= 1, got %d", sim.ErrConfiguration, c.MaxHops)
	}
	if c.GuardTime < 1 {
		return fmt.Errorf("%w: guard time must be >= 1, got %d", sim.ErrConfiguration, c.GuardTime)
	}
	return nil
}

// interferenceEnabled resolves the optional flag; constructive
// interference is on unless explicitly disabled.
func (c SweepConfig) interferenceEnabled() bool {
	return c.Interference == nil || *c.Interference
}
