package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two simulations with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// RandomSimulationKey draws a key from the runtime's randomly seeded source.
// Used when no seed is configured; runs are then not reproducible unless the
// key is logged and replayed.
func RandomSimulationKey() SimulationKey {
	return SimulationKey(rand.Int64())
}

// Derive returns the key of an independent child stream named name.
func (k SimulationKey) Derive(name string) SimulationKey {
	return SimulationKey(int64(k) ^ fnv1a64(name))
}

// === Subsystem Constants ===

const (
	// SubsystemArrivals is the RNG subsystem for interarrival times.
	SubsystemArrivals = "arrivals"

	// SubsystemService is the RNG subsystem for service times.
	SubsystemService = "service"
)

// SubsystemReplication returns the subsystem name for replication N.
func SubsystemReplication(id int) string {
	return fmt.Sprintf("replication_%d", id)
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated random sources per subsystem.
//
// Derivation: each subsystem gets a PCG source seeded with
// (masterSeed, fnv1a64(subsystemName)), so drawing from one subsystem never
// shifts another's sequence.
//
// Thread-safety: NOT thread-safe. The simulator only touches it under its lock.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.PCG
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.PCG),
	}
}

// ForSubsystem returns the deterministically-seeded source for the named
// subsystem. The same name always returns the same instance. Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.PCG {
	if src, ok := p.subsystems[name]; ok {
		return src
	}
	src := rand.NewPCG(uint64(p.key), uint64(fnv1a64(name)))
	p.subsystems[name] = src
	return src
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
