package sim

import "fmt"

// Results is the immutable summary of one simulation run, computed purely
// observationally from the final network state after the event queue has
// drained. It feeds batch experiments and Monte Carlo analysis and never
// feeds back into the kernel.
type Results struct {
	MaxTransmissions   int
	LossRate           float64
	GuardTime          Tick
	Seed               int64
	MaxHops            int
	DeviceCount        int
	FloodSuccess       bool    // every node received the flood at least once
	FloodCoverage      float64 // fraction of nodes that received the flood
	CompletionTime     Tick    // tick at which the last node first received the flood
	TotalTransmissions int
}

// Print displays the run summary.
func (r Results) Print() {
	fmt.Println("=== Simulation Results ===")
	fmt.Printf("Max Transmissions    : %d\n", r.MaxTransmissions)
	fmt.Printf("Loss Rate            : %.2f\n", r.LossRate)
	fmt.Printf("Guard Time           : %d ticks\n", r.GuardTime)
	fmt.Printf("Seed                 : %d\n", r.Seed)
	fmt.Printf("Max Hops             : %d\n", r.MaxHops)
	fmt.Printf("Device Count         : %d\n", r.DeviceCount)
	fmt.Printf("Flood Success        : %t\n", r.FloodSuccess)
	fmt.Printf("Flood Coverage       : %.2f\n", r.FloodCoverage)
	fmt.Printf("Completion Time      : %d ticks\n", r.CompletionTime)
	fmt.Printf("Total Transmissions  : %d\n", r.TotalTransmissions)
}

// CollectResults aggregates the final bookkeeping of every node.
// CompletionTime is only meaningful when the flood succeeded: it is the
// maximum over nodes of each node's earliest recorded reception tick.
func CollectResults(cfg Config, registry *Registry) Results {
	nodes := registry.Nodes()
	res := Results{
		MaxTransmissions: cfg.MaxTransmissions,
		LossRate:         cfg.LossRate,
		GuardTime:        cfg.GuardTime,
		Seed:             cfg.Seed,
		MaxHops:          cfg.MaxHops,
		DeviceCount:      len(nodes),
	}

	received := 0
	for _, n := range nodes {
		if n.FloodCount() > 0 {
			received++
		}
		res.TotalTransmissions += n.TxCount()
	}
	if len(nodes) > 0 {
		res.FloodCoverage = float64(received) / float64(len(nodes))
	}
	res.FloodSuccess = res.FloodCoverage == 1.0

	if res.FloodSuccess {
		for _, n := range nodes {
			for _, times := range n.FloodTimes() {
				if len(times) == 0 {
					continue
				}
				first := times[0]
				for _, t := range times[1:] {
					if t < first {
						first = t
					}
				}
				if first > res.CompletionTime {
					res.CompletionTime = first
				}
			}
		}
	}
	return res
}
