// Package quantumsim builds executable, noise-annotated operation timelines
// for multi-qubit circuits and replays them against an external quantum
// state, producing stochastic measurement outcomes.
//
// A Circuit is assembled from timestamped gates, idle intervals are filled
// with decoherence channels derived from each qubit's T1/T2, the gates are
// linearized into a causally valid order that defers measurements, and the
// result is applied gate by gate to a State. Measurement outcomes are drawn
// through pluggable Samplers that separate the true post-measurement state
// from the declared result and track a multiplicative likelihood weight.
package quantumsim

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/elikkatzgit/quantumsim/toposort"
)

// idleGapThreshold is the smallest idle span that gets an explicit
// decoherence channel during waiting-gate synthesis.
const idleGapThreshold = 1e-6

// Window is an optional global time window. A nil bound defaults to the
// min/max timestamp across the circuit's current gates.
type Window struct {
	Min *float64
	Max *float64
}

// Span builds a fully specified window.
func Span(min, max float64) Window {
	return Window{Min: &min, Max: &max}
}

// Circuit owns an insertion-ordered set of coherence profiles and a
// reorderable collection of gates. The gate collection is replaced
// wholesale by AddWaitingGates and Order, never partially mutated.
type Circuit struct {
	Title  string
	qubits []Qubit
	gates  []Gate
}

func NewCircuit(title string) *Circuit {
	return &Circuit{Title: title}
}

// AddQubit registers a coherence profile. Names must be unique.
func (c *Circuit) AddQubit(name string, t1, t2 float64) (Qubit, error) {
	if _, ok := c.Qubit(name); ok {
		return Qubit{}, configErrorf("duplicate qubit %q", name)
	}
	qb := NewQubit(name, t1, t2)
	c.qubits = append(c.qubits, qb)
	return qb, nil
}

// Qubit looks up a coherence profile by name.
func (c *Circuit) Qubit(name string) (Qubit, bool) {
	for _, qb := range c.qubits {
		if qb.Name == name {
			return qb, true
		}
	}
	return Qubit{}, false
}

// Qubits returns the coherence profiles in insertion order.
func (c *Circuit) Qubits() []Qubit {
	return c.qubits
}

// Gates returns the gate collection in its current order.
func (c *Circuit) Gates() []Gate {
	return c.gates
}

// AddGate appends a gate, enforcing that every qubit it references belongs
// to the circuit.
func (c *Circuit) AddGate(g Gate) error {
	for _, name := range g.Qubits() {
		if _, ok := c.Qubit(name); !ok {
			return configErrorf("gate %s references unknown qubit %q", g.Label(), name)
		}
	}
	c.gates = append(c.gates, g)
	return nil
}

// AddGateOf constructs a gate through the kind registry and appends it.
// Unknown kinds fail with a ConfigurationError.
func (c *Circuit) AddGateOf(kind Kind, t float64, qubits []string, params []float64, sampler Sampler) (Gate, error) {
	factory, ok := gateFactories[kind]
	if !ok {
		return nil, configErrorf("unknown gate kind %q", kind)
	}
	g, err := factory(c, t, qubits, params, sampler)
	if err != nil {
		return nil, err
	}
	if err := c.AddGate(g); err != nil {
		return nil, err
	}
	return g, nil
}

// AddHadamard appends a Hadamard on the named qubit at time t.
func (c *Circuit) AddHadamard(qubit string, t float64) (*Hadamard, error) {
	g := NewHadamard(qubit, t)
	if err := c.AddGate(g); err != nil {
		return nil, err
	}
	return g, nil
}

// AddRotateZ appends a Z rotation by angle on the named qubit at time t.
func (c *Circuit) AddRotateZ(qubit string, t, angle float64) (*RotateZ, error) {
	g := NewRotateZ(qubit, t, angle)
	if err := c.AddGate(g); err != nil {
		return nil, err
	}
	return g, nil
}

// AddCPhase appends a controlled-phase interaction between two qubits at
// time t.
func (c *Circuit) AddCPhase(qubit0, qubit1 string, t float64) (*CPhase, error) {
	g := NewCPhase(qubit0, qubit1, t)
	if err := c.AddGate(g); err != nil {
		return nil, err
	}
	return g, nil
}

// AddAmpPhDamp appends a damping channel centred at time t spanning the
// given duration, parameterized by the named qubit's coherence profile.
func (c *Circuit) AddAmpPhDamp(qubit string, t, duration float64) (*AmpPhDamp, error) {
	qb, ok := c.Qubit(qubit)
	if !ok {
		return nil, configErrorf("amp_ph_damp references unknown qubit %q", qubit)
	}
	g := NewAmpPhDamp(qb.Name, t, duration, qb.T1, qb.T2)
	c.gates = append(c.gates, g)
	return g, nil
}

// AddMeasurement appends a measurement on the named qubit at time t using
// the given sampler (nil for the default uniform sampler).
func (c *Circuit) AddMeasurement(qubit string, t float64, sampler Sampler) (*Measurement, error) {
	g := NewMeasurement(qubit, t, sampler)
	if err := c.AddGate(g); err != nil {
		return nil, err
	}
	return g, nil
}

// Measurements returns the circuit's measurement gates in current gate
// order.
func (c *Circuit) Measurements() []*Measurement {
	var ms []*Measurement
	for _, g := range c.gates {
		if m, ok := g.(*Measurement); ok {
			ms = append(ms, m)
		}
	}
	return ms
}

// AddWaitingGates fills every idle interval inside the window with an
// explicit damping channel, one per gap per qubit, each centred at the
// gap's midpoint and spanning its full duration. Gaps no longer than the
// idle threshold are left alone. With an empty circuit and an unspecified
// window bound this is a silent no-op.
func (c *Circuit) AddWaitingGates(window Window) {
	sorted := slices.Clone(c.gates)
	slices.SortStableFunc(sorted, func(a, b Gate) int {
		return cmp.Compare(a.Time(), b.Time())
	})

	if len(sorted) == 0 && (window.Min == nil || window.Max == nil) {
		return
	}

	var tmin, tmax float64
	if window.Min != nil {
		tmin = *window.Min
	} else {
		tmin = sorted[0].Time()
	}
	if window.Max != nil {
		tmax = *window.Max
	} else {
		tmax = sorted[len(sorted)-1].Time()
	}

	for _, qb := range c.qubits {
		var gts []Gate
		for _, g := range sorted {
			if g.Involves(qb.Name) && tmin <= g.Time() && g.Time() <= tmax {
				gts = append(gts, g)
			}
		}

		wait := func(from, to float64) {
			c.gates = append(c.gates,
				NewAmpPhDamp(qb.Name, (from+to)/2, to-from, qb.T1, qb.T2))
		}

		if len(gts) == 0 {
			wait(tmin, tmax)
			continue
		}
		if gts[0].Time()-tmin > idleGapThreshold {
			wait(tmin, gts[0].Time())
		}
		if tmax-gts[len(gts)-1].Time() > idleGapThreshold {
			wait(gts[len(gts)-1].Time(), tmax)
		}
		for i := 0; i+1 < len(gts); i++ {
			if gts[i+1].Time()-gts[i].Time() > idleGapThreshold {
				wait(gts[i].Time(), gts[i+1].Time())
			}
		}
	}
}

// Order linearizes the gates into a causally valid execution sequence.
//
// Gates are sorted by timestamp and assigned stable indices; each
// consecutive pair of gates on the same qubit contributes a dependency
// edge. The scheduler then produces a topological order that pushes
// measurements as late as their constraints allow. Gates are relabeled
// with their final sequence index and the collection is replaced in the
// new order.
//
// The dependency graph is a union of disjoint linear chains and therefore
// acyclic; a CorruptScheduleError from the scheduler indicates a
// programming error and panics.
func (c *Circuit) Order() {
	gates := slices.Clone(c.gates)
	slices.SortStableFunc(gates, func(a, b Gate) int {
		return cmp.Compare(a.Time(), b.Time())
	})

	deps := make(map[int][]int, len(gates))
	delay := make(map[int]bool)
	for i, g := range gates {
		deps[i] = nil
		if g.IsMeasurement() {
			delay[i] = true
		}
	}
	for _, qb := range c.qubits {
		last := -1
		for i, g := range gates {
			if !g.Involves(qb.Name) {
				continue
			}
			if last >= 0 {
				deps[i] = append(deps[i], last)
			}
			last = i
		}
	}

	order, err := toposort.Greedy(deps, delay)
	if err != nil {
		panic(err)
	}

	reordered := make([]Gate, len(order))
	for seq, idx := range order {
		gates[idx].SetAnnotation(strconv.Itoa(seq))
		reordered[seq] = gates[idx]
	}
	c.gates = reordered
}

// ApplyTo replays the gates against the state, one at a time, in the
// collection's current order.
func (c *Circuit) ApplyTo(state State) {
	for _, g := range c.gates {
		g.Apply(state)
	}
}

// TimeSpan returns the min and max gate timestamps, or (0, 0) for an empty
// circuit.
func (c *Circuit) TimeSpan() (tmin, tmax float64) {
	if len(c.gates) == 0 {
		return 0, 0
	}
	tmin, tmax = c.gates[0].Time(), c.gates[0].Time()
	for _, g := range c.gates[1:] {
		tmin = min(tmin, g.Time())
		tmax = max(tmax, g.Time())
	}
	return tmin, tmax
}
