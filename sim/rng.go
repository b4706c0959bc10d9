package sim

import (
	"hash/fnv"
	"math/rand"
)

// Subsystem names for PartitionedRNG streams.
const (
	// SubsystemMedium feeds the medium's loss and interference draws.
	SubsystemMedium = "medium"

	// SubsystemFloodID feeds flood identifier generation, so two runs with
	// the same master seed mint identical flood ids.
	SubsystemFloodID = "floodid"
)

// PartitionedRNG provides deterministic, isolated RNG streams per
// subsystem. Two simulations built from the same master seed consume
// identical streams, which makes an entire run bit-reproducible (same
// event order, same draws) and keeps parallel Monte Carlo trials free of
// shared-seed contention.
//
// Derivation: subsystem seed = masterSeed XOR fnv1a64(subsystemName), so
// stream contents do not depend on the order subsystems are requested in.
//
// Not safe for concurrent use; the kernel is single-threaded by design.
type PartitionedRNG struct {
	masterSeed int64
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a master seed.
func NewPartitionedRNG(masterSeed int64) *PartitionedRNG {
	return &PartitionedRNG{
		masterSeed: masterSeed,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns the RNG stream for the named subsystem. The stream
// is created lazily and cached: repeated calls with the same name return
// the same *rand.Rand instance.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(p.masterSeed ^ fnv1a64(name)))
	p.subsystems[name] = rng
	return rng
}

// Seed returns the master seed this RNG was built from.
func (p *PartitionedRNG) Seed() int64 { return p.masterSeed }

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
