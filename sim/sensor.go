package sim

import "github.com/sirupsen/logrus"

// SensorBehavior relays every flood it hears for the first time. Sensors
// generate no data of their own in the baseline.
type SensorBehavior struct{}

// NewSensorBehavior creates the flood-relaying behavior.
func NewSensorBehavior() *SensorBehavior {
	return &SensorBehavior{}
}

// Start is a no-op; a sensor only reacts to received frames.
func (*SensorBehavior) Start(*Node) {}

// HandleFrame relays newly seen flood beacons.
func (*SensorBehavior) HandleFrame(n *Node, f *Frame, firstSeen bool) {
	logrus.Debugf("[tick %07d] sensor %d <- frame from %d", n.Now(), n.ID(), f.Src)
	if f.Type == FrameTypeFloodBeacon && firstSeen {
		relayFlood(n, f)
	}
}
