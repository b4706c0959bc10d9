package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// mediumState is the per-tick phase of the medium.
type mediumState int

const (
	mediumIdle mediumState = iota
	mediumBuffering
	mediumResolving
)

// MediumConfig carries the wireless channel settings.
type MediumConfig struct {
	// BaseLossRate is the loss probability of a single transmission, [0, 1].
	BaseLossRate float64
	// Interference enables constructive interference between identical
	// concurrent transmissions. With it disabled, any overlap is a
	// destructive collision.
	Interference bool
}

// Medium models the shared half-duplex wireless channel. All transmissions
// issued during one tick are considered simultaneous: they are buffered
// into a pending batch and resolved together by a zero-delay event, so the
// outcome depends on the full simultaneous set rather than on send order.
type Medium struct {
	env      *Scheduler
	registry *Registry
	rng      *rand.Rand
	cfg      MediumConfig

	endpoints  []*Endpoint
	pending    []Transmission
	lastTxTick map[NodeID]Tick
	state      mediumState
}

// NewMedium creates a medium over the given registry. The rng stream is
// consumed by the loss and interference draws; passing it in explicitly
// keeps runs composable and reproducible.
func NewMedium(env *Scheduler, registry *Registry, rng *rand.Rand, cfg MediumConfig) *Medium {
	return &Medium{
		env:        env,
		registry:   registry,
		rng:        rng,
		cfg:        cfg,
		lastTxTick: make(map[NodeID]Tick),
	}
}

// Attach registers an inbound endpoint for the given node and returns it.
// Endpoints are swept in attach order during resolution, which keeps
// delivery order and RNG draw order deterministic.
func (m *Medium) Attach(id NodeID) *Endpoint {
	ep := &Endpoint{nodeID: id, env: m.env}
	m.endpoints = append(m.endpoints, ep)
	return ep
}

// Send buffers a transmission for resolution at the end of the current
// tick. A sender contributes at most one transmission per tick; repeated
// sends within the same tick are no-ops. The first send of a tick
// schedules the zero-delay resolution event, so every send issued
// synchronously within the tick lands in one batch before resolution runs.
func (m *Medium) Send(f *Frame, senderID NodeID) error {
	if len(m.endpoints) == 0 {
		return fmt.Errorf("%w: node %d cannot transmit", ErrChannelUnavailable, senderID)
	}

	now := m.env.Now()
	if last, ok := m.lastTxTick[senderID]; ok && last == now {
		return nil
	}
	m.lastTxTick[senderID] = now

	m.pending = append(m.pending, Transmission{Frame: f, SenderID: senderID})
	if m.state == mediumIdle {
		m.state = mediumBuffering
		m.env.mustAfter(0, m.resolve)
	}
	return nil
}

// resolve consumes the pending batch of the current tick. Per receiver it
// applies the half-duplex, range and channel filters, then the loss law.
// The batch and the tick's dedup entries are cleared atomically before any
// surviving frame is pushed into an endpoint, so a node woken by a
// delivery that transmits in the same tick starts a fresh batch.
func (m *Medium) resolve() {
	m.state = mediumResolving
	now := m.env.Now()

	batch := m.pending
	senders := make(map[NodeID]bool, len(batch))
	for _, tx := range batch {
		senders[tx.SenderID] = true
	}

	type delivery struct {
		ep    *Endpoint
		frame *Frame
	}
	var deliveries []delivery
	for _, ep := range m.endpoints {
		if senders[ep.NodeID()] {
			// half-duplex: a node that transmitted this tick cannot receive
			continue
		}
		receiver, err := m.registry.Node(ep.NodeID())
		if err != nil {
			logrus.Warnf("[tick %07d] medium: endpoint without node: %v", now, err)
			continue
		}
		var candidates []Transmission
		for _, tx := range batch {
			sender, err := m.registry.Node(tx.SenderID)
			if err != nil {
				logrus.Warnf("[tick %07d] medium: transmission without node: %v", now, err)
				continue
			}
			if inRange(sender, receiver) && m.onChannel(sender, receiver) {
				candidates = append(candidates, tx)
			}
		}
		if f := m.resolveLoss(candidates, receiver.ID()); f != nil {
			deliveries = append(deliveries, delivery{ep: ep, frame: f})
		}
	}

	m.pending = nil
	for id, t := range m.lastTxTick {
		if t == now {
			delete(m.lastTxTick, id)
		}
	}
	m.state = mediumIdle

	for _, d := range deliveries {
		d.ep.Push(d.frame)
	}
}

// resolveLoss applies the loss/interference law to one receiver's filtered
// candidate set and returns the single delivered frame, or nil. At most
// one frame reaches a receiver per tick under this model.
func (m *Medium) resolveLoss(candidates []Transmission, receiverID NodeID) *Frame {
	now := m.env.Now()
	switch {
	case len(candidates) == 0:
		return nil

	case len(candidates) == 1:
		if m.rng.Float64() < m.cfg.BaseLossRate {
			logrus.Debugf("[tick %07d] medium: %d -> %d frame lost (fading)",
				now, candidates[0].SenderID, receiverID)
			return nil
		}
		return candidates[0].Frame

	case m.cfg.Interference:
		identities := make(map[Identity]bool, len(candidates))
		for _, tx := range candidates {
			identities[tx.Frame.Identity()] = true
		}
		if len(identities) > 1 {
			logrus.Debugf("[tick %07d] medium: -> %d frames lost (collision of %d distinct frames)",
				now, receiverID, len(identities))
			return nil
		}
		// constructive interference: identical signals combine, a single
		// draw decides delivery of one logical copy
		if m.rng.Float64() < EffectiveLossRate(m.cfg.BaseLossRate, len(candidates)) {
			logrus.Debugf("[tick %07d] medium: -> %d frame lost (fading despite %d-fold interference)",
				now, receiverID, len(candidates))
			return nil
		}
		return candidates[0].Frame

	default:
		logrus.Debugf("[tick %07d] medium: -> %d frames lost (collision, interference disabled)",
			now, receiverID)
		return nil
	}
}

// EffectiveLossRate is the loss probability of k simultaneous identical
// transmissions under constructive interference: base^log2(k+1). It
// strictly decreases, sub-linearly, as k grows, modelling power combining.
func EffectiveLossRate(base float64, k int) float64 {
	return math.Pow(base, math.Log2(float64(k)+1))
}

// inRange reports whether the receiver sits within the sender's
// transmission range (Euclidean distance, no probabilistic component).
func inRange(sender, receiver *Node) bool {
	sx, sy := sender.Position()
	rx, ry := receiver.Position()
	return math.Hypot(sx-rx, sy-ry) <= sender.TxRange()
}

// onChannel reports whether sender and receiver share a channel.
func (m *Medium) onChannel(sender, receiver *Node) bool {
	if sender.Channel() != receiver.Channel() {
		logrus.Debugf("[tick %07d] medium: %d -> %d frame lost (wrong channel)",
			m.env.Now(), sender.ID(), receiver.ID())
		return false
	}
	return true
}
