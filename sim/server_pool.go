package sim

import "fmt"

// ServerPool tracks how many of its identical servers are busy.
// Invariant: 0 <= busy <= capacity.
type ServerPool struct {
	busy     int
	capacity int
}

// NewServerPool creates a pool of capacity idle servers.
func NewServerPool(capacity int) *ServerPool {
	return &ServerPool{capacity: capacity}
}

// Busy returns the number of servers currently serving a customer.
func (p *ServerPool) Busy() int { return p.busy }

// Capacity returns the total number of servers.
func (p *ServerPool) Capacity() int { return p.capacity }

// HasIdle reports whether at least one server is free.
func (p *ServerPool) HasIdle() bool { return p.busy < p.capacity }

// Acquire marks one server busy. Panics if none is idle.
func (p *ServerPool) Acquire() {
	if p.busy >= p.capacity {
		panic(fmt.Sprintf("ServerPool.Acquire: all %d servers busy", p.capacity))
	}
	p.busy++
}

// Release marks one server idle. Panics if none is busy.
func (p *ServerPool) Release() {
	if p.busy <= 0 {
		panic("ServerPool.Release: no busy server")
	}
	p.busy--
}
