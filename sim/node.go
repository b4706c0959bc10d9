package sim

import "github.com/sirupsen/logrus"

// Default radio parameters of grid nodes.
const (
	DefaultTxRange = 1.5
	DefaultChannel = 7
)

// NodeConfig is the per-node configuration, fixed at topology build time.
type NodeConfig struct {
	ID               NodeID
	X, Y             int     // grid position
	Hop              int     // Chebyshev distance to the sink
	MaxTransmissions int     // relay sends per flood
	GuardTime        Tick    // radio lock-out after a transmission
	TxRange          float64 // transmission range
	Channel          int     // radio channel tag
}

// Node is one device in the network: the half-duplex radio state machine,
// the receive admission filter, and the flood reception bookkeeping.
// Protocol behavior (flood trigger vs. relay) is plugged in through
// Behavior.
//
// A node is mutated only by its own process. The cooperative scheduler
// guarantees no cross-node mutation and no races.
type Node struct {
	env      *Scheduler
	cfg      NodeConfig
	medium   *Medium
	inbox    *Endpoint
	behavior Behavior

	// rxEnabled is false while the guard time of the node's own last
	// transmission has not elapsed (half-duplex lock).
	rxEnabled bool
	txCount   int

	floodIDs   map[string]struct{}
	floodTimes map[string][]Tick
}

// NewNode creates a node and attaches its endpoint to the medium.
func NewNode(env *Scheduler, medium *Medium, behavior Behavior, cfg NodeConfig) *Node {
	n := &Node{
		env:        env,
		cfg:        cfg,
		medium:     medium,
		behavior:   behavior,
		rxEnabled:  true,
		floodIDs:   make(map[string]struct{}),
		floodTimes: make(map[string][]Tick),
	}
	n.inbox = medium.Attach(cfg.ID)
	return n
}

// ID returns the node's identifier.
func (n *Node) ID() NodeID { return n.cfg.ID }

// Hop returns the node's Chebyshev distance to the sink.
func (n *Node) Hop() int { return n.cfg.Hop }

// Position returns the node's grid coordinates.
func (n *Node) Position() (x, y float64) {
	return float64(n.cfg.X), float64(n.cfg.Y)
}

// TxRange returns the node's transmission range.
func (n *Node) TxRange() float64 { return n.cfg.TxRange }

// Channel returns the node's radio channel tag.
func (n *Node) Channel() int { return n.cfg.Channel }

// Config returns the node's configuration.
func (n *Node) Config() NodeConfig { return n.cfg }

// Now returns the current simulated time.
func (n *Node) Now() Tick { return n.env.Now() }

// TxCount returns how many transmissions this node has performed.
func (n *Node) TxCount() int { return n.txCount }

// SeenFlood reports whether the node has recorded the given flood id.
func (n *Node) SeenFlood(id string) bool {
	_, ok := n.floodIDs[id]
	return ok
}

// FloodCount returns the number of distinct flood ids this node has seen.
func (n *Node) FloodCount() int { return len(n.floodIDs) }

// FloodTimes returns the reception ticks recorded per flood id, in
// reception order. The result is read-only bookkeeping for evaluation and
// must not be mutated.
func (n *Node) FloodTimes() map[string][]Tick { return n.floodTimes }

// Start launches the node's receive process and its behavior.
func (n *Node) Start() {
	n.receiveLoop()
	if n.behavior != nil {
		n.behavior.Start(n)
	}
}

// Sleep schedules fn after d ticks of simulated time.
func (n *Node) Sleep(d Tick, fn func()) { n.env.mustAfter(d, fn) }

// NewFrame assembles an immutable on-air frame originating at this node.
// Sequence numbers are owned by protocol logic; the node neither generates
// nor rewrites them.
func (n *Node) NewFrame(t FrameType, dst NodeID, seq int, payload Payload) *Frame {
	return &Frame{Type: t, Src: n.cfg.ID, Dst: dst, Seq: seq, Payload: payload}
}

// Send hands a frame to the medium and locks the radio for GuardTime
// (Listening -> Transmitting). While the radio is locked, further sends
// are silently suppressed: a half-duplex device cannot start a second
// transmission before the guard time of the first has elapsed. The
// transmission itself has zero duration and is resolved by the medium at
// the end of the current tick.
func (n *Node) Send(f *Frame) {
	if !n.rxEnabled {
		logrus.Debugf("[tick %07d] node %d: send suppressed (radio busy)", n.env.Now(), n.cfg.ID)
		return
	}
	n.rxEnabled = false
	n.txCount++
	logrus.Debugf("[tick %07d] node %d -> %d", n.env.Now(), n.cfg.ID, f.Dst)
	if err := n.medium.Send(f, n.cfg.ID); err != nil {
		// endpoints are attached at construction; reaching this is a
		// wiring bug, not a runtime condition
		panic(err)
	}
	// the re-enable event is scheduled before the caller can schedule any
	// follow-up, so a relay step exactly GuardTime later finds the radio
	// listening again (Transmitting -> Listening)
	n.env.mustAfter(n.cfg.GuardTime, func() { n.rxEnabled = true })
}

// receiveLoop is the node's receive process: block on the inbox, apply
// the admission filter, record bookkeeping, hand admitted frames to the
// behavior, repeat.
func (n *Node) receiveLoop() {
	n.inbox.Recv(func(f *Frame) {
		if admitted, firstSeen := n.receive(f); admitted && n.behavior != nil {
			n.behavior.HandleFrame(n, f, firstSeen)
		}
		n.receiveLoop()
	})
}

// receive applies the admission filter. A frame is dropped without
// further inspection while the radio is locked, and dropped when its
// logical destination is neither broadcast nor this node. Flood-beacon
// bookkeeping is recorded unconditionally for every admitted beacon,
// before protocol logic runs; downstream evaluation depends on it.
func (n *Node) receive(f *Frame) (admitted, firstSeen bool) {
	now := n.env.Now()
	if !n.rxEnabled {
		logrus.Debugf("[tick %07d] node %d: discard frame (radio busy with tx)", now, n.cfg.ID)
		return false, false
	}
	if f.Dst != Broadcast && f.Dst != n.cfg.ID {
		logrus.Debugf("[tick %07d] node %d: discard frame (not logical destination)", now, n.cfg.ID)
		return false, false
	}
	if f.Type == FrameTypeFloodBeacon {
		if beacon, ok := f.Payload.(FloodBeacon); ok {
			firstSeen = n.recordFloodBeacon(beacon)
		}
	}
	return true, firstSeen
}

// recordFloodBeacon books a beacon reception and reports whether this is
// the first time the node sees the flood id. Protocol logic must not call
// this directly; the sink's trigger path is the one exception, since the
// initiator counts as having seen its own flood.
func (n *Node) recordFloodBeacon(b FloodBeacon) bool {
	_, seen := n.floodIDs[b.FloodID]
	n.floodIDs[b.FloodID] = struct{}{}
	n.floodTimes[b.FloodID] = append(n.floodTimes[b.FloodID], n.env.Now())
	return !seen
}
