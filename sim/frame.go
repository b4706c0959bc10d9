package sim

// NodeID identifies a node in the network. Id 0 is reserved as the
// broadcast destination and is never assigned to a node.
type NodeID int

// Broadcast is the logical destination matched by every node.
const Broadcast NodeID = 0

// FrameType tags the protocol meaning of a frame.
type FrameType string

// FrameTypeFloodBeacon marks frames carrying a FloodBeacon payload.
const FrameTypeFloodBeacon FrameType = "FLOOD_BEACON"

// Payload is the protocol content carried by a frame. Key returns a
// canonical value representation of the content; it participates in frame
// identity so the medium compares concurrent transmissions by value, not
// by reference.
type Payload interface {
	Key() string
}

// FloodBeacon is the payload of one flooding round. FloodID stays
// constant across every retransmission of the flood.
type FloodBeacon struct {
	FloodID string
}

// Key returns the flood identifier as the payload's identity value.
func (b FloodBeacon) Key() string { return b.FloodID }

// Frame is an immutable on-air packet. One *Frame is shared by reference
// among all receivers of a transmission, so its content must never be
// mutated after creation. Transmitter identity is deliberately not part
// of the frame; the medium carries it in Transmission.
type Frame struct {
	Type    FrameType
	Src     NodeID
	Dst     NodeID // Broadcast (0) or a specific node id
	Seq     int
	Payload Payload
}

// Identity is the canonical value-equality key of a frame. The medium
// uses it to tell constructive interference (identical content) from a
// destructive collision (distinct content). Payload content, including
// the embedded flood identifier, is part of the key. The type is
// comparable and usable as a map key.
type Identity struct {
	Type       FrameType
	Src        NodeID
	Dst        NodeID
	Seq        int
	PayloadKey string
}

// Identity returns the frame's canonical identity key.
func (f *Frame) Identity() Identity {
	id := Identity{Type: f.Type, Src: f.Src, Dst: f.Dst, Seq: f.Seq}
	if f.Payload != nil {
		id.PayloadKey = f.Payload.Key()
	}
	return id
}

// Transmission couples an on-air frame with the identity of its
// transmitter for medium-side filtering (half-duplex exclusion and
// collision rules).
type Transmission struct {
	Frame    *Frame
	SenderID NodeID
}
