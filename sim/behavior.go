package sim

// Behavior is the protocol logic plugged into a node. The radio state
// machine and the admission filter are common to every node; behaviors
// differ only in what they do at start-up and with admitted frames.
type Behavior interface {
	// Start runs once when the simulation starts, after the node's
	// receive process is armed.
	Start(n *Node)

	// HandleFrame runs for every admitted frame. firstSeen reports
	// whether a carried flood id was recorded for the first time.
	HandleFrame(n *Node, f *Frame, firstSeen bool)
}

// relayFlood performs the Glossy-style retransmission schedule shared by
// sink and sensors: MaxTransmissions sends of the identical frame, each
// preceded by a GuardTime sleep. Retransmitting the frame unmodified is
// what makes concurrent relays combine constructively on the medium.
func relayFlood(n *Node, f *Frame) {
	relayStep(n, f, n.Config().MaxTransmissions)
}

func relayStep(n *Node, f *Frame, remaining int) {
	if remaining <= 0 {
		return
	}
	n.Sleep(n.Config().GuardTime, func() {
		n.Send(f)
		relayStep(n, f, remaining-1)
	})
}
