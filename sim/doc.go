// Package sim provides the discrete-event simulation kernel of the WSN
// flooding simulator.
//
// # Reading Guide
//
// Start with these three files to understand the kernel:
//   - scheduler.go: simulated time and the (time, sequence)-ordered event queue
//   - medium.go: per-tick transmission buffering and the loss/interference law
//   - node.go: the half-duplex radio state machine and admission filter
//
// # Architecture
//
// The kernel is single-threaded and cooperative: exactly one continuation
// runs at any instant, so there are no data races by construction. Node
// processes are written in continuation-passing style over the scheduler;
// they suspend at two points only, awaiting a timeout (Node.Sleep) or
// blocking on an empty Endpoint (Endpoint.Recv). Determinism for a fixed
// seed follows from the scheduler's FIFO tie-break within a tick and the
// explicitly threaded PartitionedRNG.
//
// Protocol behavior is pluggable through the Behavior interface:
// SinkBehavior triggers a flooding round, SensorBehavior relays it. The
// montecarlo sub-package runs batch experiments over this kernel.
package sim
