package sim

import "fmt"

// Config is the full parameter set of one simulation run. Validation
// happens before any event is scheduled; a violation is fatal to the run.
type Config struct {
	MaxTransmissions int     // relay sends per node per flood (>= 0)
	LossRate         float64 // base loss probability of a single transmission, [0, 1]
	MaxHops          int     // Chebyshev radius of the grid (>= 1)
	GuardTime        Tick    // radio guard time in ticks (>= 1)
	Seed             int64   // master seed for all randomness
	Interference     bool    // constructive interference between identical frames
}

// DefaultConfig returns the canonical experiment parameters.
func DefaultConfig() Config {
	return Config{
		MaxTransmissions: 1,
		LossRate:         0.6,
		MaxHops:          4,
		GuardTime:        100,
		Interference:     true,
	}
}

// Validate checks the parameter ranges.
func (c Config) Validate() error {
	if c.MaxTransmissions < 0 {
		return fmt.Errorf("%w: max transmissions must be >= 0, got %d",
			ErrConfiguration, c.MaxTransmissions)
	}
	if c.LossRate < 0.0 || c.LossRate > 1.0 {
		return fmt.Errorf("%w: loss rate must be within [0.0, 1.0], got %g",
			ErrConfiguration, c.LossRate)
	}
	if c.MaxHops < 1 {
		return fmt.Errorf("%w: max hops must be >= 1, got %d",
			ErrConfiguration, c.MaxHops)
	}
	if c.GuardTime < 1 {
		return fmt.Errorf("%w: guard time must be >= 1, got %d",
			ErrConfiguration, c.GuardTime)
	}
	return nil
}
