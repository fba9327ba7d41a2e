// Package analytic provides closed-form steady-state results for the M/M/c
// queue, used as a reference next to simulated estimates.
package analytic

import (
	"bytes"
	"fmt"
)

// MMC is the solved M/M/c model for arrival rate Lambda, per-server service
// rate Mu and Servers identical servers with an unbounded waiting line.
type MMC struct {
	Lambda  float64
	Mu      float64
	Servers int

	valid           bool
	offeredLoad     float64 // a = λ/μ
	utilization     float64 // ρ = a/c
	waitProbability float64 // Erlang-C: P(arrival must wait)
	avgWaiting      float64 // Lq
	avgInSystem     float64 // L
	avgWaitTime     float64 // Wq
	avgResponseTime float64 // W
}

// NewMMC solves the model. Non-positive parameters or ρ >= 1 produce a model
// with IsValid false and zero measures.
func NewMMC(lambda, mu float64, servers int) *MMC {
	m := &MMC{Lambda: lambda, Mu: mu, Servers: servers}
	if !(lambda > 0) || !(mu > 0) || servers < 1 {
		return m
	}
	m.offeredLoad = lambda / mu
	m.utilization = m.offeredLoad / float64(servers)
	if m.utilization >= 1 {
		return m
	}
	m.valid = true
	m.solve()
	return m
}

// solve evaluates Erlang-C. The terms a^n/n! are built incrementally so large
// server counts do not overflow a factorial.
func (m *MMC) solve() {
	a, rho, c := m.offeredLoad, m.utilization, m.Servers

	sum := 0.0
	term := 1.0 // a^n / n!
	for n := 0; n < c; n++ {
		sum += term
		term *= a / float64(n+1)
	}
	// term is now a^c / c!
	tail := term / (1 - rho)
	p0 := 1 / (sum + tail)

	m.waitProbability = tail * p0
	m.avgWaiting = m.waitProbability * rho / (1 - rho)
	m.avgInSystem = m.avgWaiting + a
	m.avgWaitTime = m.avgWaiting / m.Lambda
	m.avgResponseTime = m.avgWaitTime + 1/m.Mu
}

func (m *MMC) IsValid() bool { return m.valid }

// Utilization returns ρ = λ/(μc).
func (m *MMC) Utilization() float64 { return m.utilization }

// WaitProbability returns the Erlang-C probability that an arrival queues.
func (m *MMC) WaitProbability() float64 { return m.waitProbability }

// AvgWaitingLength returns Lq, the mean number of customers waiting.
func (m *MMC) AvgWaitingLength() float64 { return m.avgWaiting }

// AvgInSystem returns L, the mean number of customers waiting or in service.
func (m *MMC) AvgInSystem() float64 { return m.avgInSystem }

// AvgWaitTime returns Wq, the mean time spent waiting for a server.
func (m *MMC) AvgWaitTime() float64 { return m.avgWaitTime }

// AvgResponseTime returns W, the mean time from arrival to departure.
func (m *MMC) AvgResponseTime() float64 { return m.avgResponseTime }

func (m *MMC) String() string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "isValid=%v; ", m.valid)
	fmt.Fprintf(&b, "lambda=%v; mu=%v; c=%d; rho=%v; ", m.Lambda, m.Mu, m.Servers, m.utilization)
	if m.valid {
		fmt.Fprintf(&b, "Pw=%v; Lq=%v; L=%v; Wq=%v; W=%v; ",
			m.waitProbability, m.avgWaiting, m.avgInSystem, m.avgWaitTime, m.avgResponseTime)
	}
	return b.String()
}
