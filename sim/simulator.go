package sim

import "github.com/sirupsen/logrus"

// Simulator wires the scheduler, medium, registry and grid topology into
// one runnable experiment.
type Simulator struct {
	cfg      Config
	env      *Scheduler
	registry *Registry
	medium   *Medium
	rng      *PartitionedRNG
}

// NewSimulator validates cfg and builds the network. No event fires until
// Run is called.
func NewSimulator(cfg Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	env := NewScheduler()
	registry := NewRegistry()
	rng := NewPartitionedRNG(cfg.Seed)
	medium := NewMedium(env, registry, rng.ForSubsystem(SubsystemMedium), MediumConfig{
		BaseLossRate: cfg.LossRate,
		Interference: cfg.Interference,
	})
	if err := BuildGrid(env, medium, registry, rng.ForSubsystem(SubsystemFloodID), cfg); err != nil {
		return nil, err
	}

	return &Simulator{
		cfg:      cfg,
		env:      env,
		registry: registry,
		medium:   medium,
		rng:      rng,
	}, nil
}

// Registry exposes the network for observational result collection.
func (s *Simulator) Registry() *Registry { return s.registry }

// Scheduler exposes the kernel clock, read-only for callers.
func (s *Simulator) Scheduler() *Scheduler { return s.env }

// Run starts every node process and drains the event queue. The run ends
// when no events remain; the final network state is then summarized into
// Results without feeding back into the kernel.
func (s *Simulator) Run() Results {
	logrus.Infof("starting run: %d nodes, loss=%.2f, tx=%d, guard=%d, seed=%d",
		s.registry.Len(), s.cfg.LossRate, s.cfg.MaxTransmissions, s.cfg.GuardTime, s.cfg.Seed)

	for _, n := range s.registry.Nodes() {
		n.Start()
	}
	s.env.Run()

	logrus.Infof("[tick %07d] run complete", s.env.Now())
	return CollectResults(s.cfg, s.registry)
}
