package sim

import (
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// floodStartDelay is how long the sink waits before triggering the flood.
const floodStartDelay Tick = 100

// SinkBehavior initiates a flooding round and, like any other node,
// relays beacons of floods it hears for the first time. The baseline runs
// a single round; repeated rounds and acknowledgments live above this
// kernel.
type SinkBehavior struct {
	msgSeq   int
	idSource io.Reader
}

// NewSinkBehavior creates the flood-initiating behavior. idSource feeds
// flood id generation; pass a seeded stream for reproducible ids, or nil
// for the default entropy source.
func NewSinkBehavior(idSource io.Reader) *SinkBehavior {
	return &SinkBehavior{msgSeq: -1, idSource: idSource}
}

// Start schedules the flood trigger.
func (b *SinkBehavior) Start(n *Node) {
	n.Sleep(floodStartDelay, func() { b.TriggerFlood(n) })
}

// HandleFrame relays newly seen flood beacons.
func (b *SinkBehavior) HandleFrame(n *Node, f *Frame, firstSeen bool) {
	logrus.Debugf("[tick %07d] sink %d <- frame from %d", n.Now(), n.ID(), f.Src)
	if f.Type == FrameTypeFloodBeacon && firstSeen {
		relayFlood(n, f)
	}
}

// TriggerFlood starts a flooding round: it advances the flood sequence
// number, mints a fresh flood id, records the flood as seen by the
// initiator, broadcasts the beacon, and then runs the same relay schedule
// as every other node. The flood id stays constant across all
// retransmissions of the round.
func (b *SinkBehavior) TriggerFlood(n *Node) {
	b.msgSeq++
	beacon := FloodBeacon{FloodID: b.newFloodID()}
	n.recordFloodBeacon(beacon)

	f := n.NewFrame(FrameTypeFloodBeacon, Broadcast, b.msgSeq, beacon)
	logrus.Debugf("[tick %07d] sink %d: triggering flood %s (seq %d)",
		n.Now(), n.ID(), beacon.FloodID, b.msgSeq)
	n.Send(f)
	relayFlood(n, f)
}

func (b *SinkBehavior) newFloodID() string {
	if b.idSource != nil {
		if id, err := uuid.NewRandomFromReader(b.idSource); err == nil {
			return id.String()
		}
	}
	return uuid.New().String()
}
