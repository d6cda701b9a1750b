package quantumsim

import (
	"math"
	"slices"
)

// Gate is a timestamped action on one or two qubits. The concrete variants
// form a closed set; Apply dispatches to exactly one State method per kind.
type Gate interface {
	// Time is the gate's nominal timestamp. Gates are not required to be
	// registered in time order.
	Time() float64
	// Qubits returns the involved qubit names, in gate-specific order.
	Qubits() []string
	// Involves reports whether the gate touches the named qubit.
	Involves(name string) bool
	// Label is the short display name used by timeline renderers.
	Label() string
	// Annotation is an informational display note (the scheduler stores the
	// final sequence index here). Empty when unset.
	Annotation() string
	SetAnnotation(string)
	// IsMeasurement marks gates whose scheduling should be deferred as late
	// as the causal constraints allow.
	IsMeasurement() bool
	// Apply replays the gate against the external state.
	Apply(state State)
}

// gate carries the fields shared by every variant.
type gate struct {
	time       float64
	qubits     []string
	label      string
	annotation string
}

func (g *gate) Time() float64          { return g.time }
func (g *gate) Qubits() []string       { return g.qubits }
func (g *gate) Label() string          { return g.label }
func (g *gate) Annotation() string     { return g.annotation }
func (g *gate) SetAnnotation(a string) { g.annotation = a }
func (g *gate) IsMeasurement() bool    { return false }

func (g *gate) Involves(name string) bool {
	return slices.Contains(g.qubits, name)
}

// Hadamard is a single-qubit Hadamard unitary.
type Hadamard struct {
	gate
}

func NewHadamard(qubit string, t float64) *Hadamard {
	return &Hadamard{gate{time: t, qubits: []string{qubit}, label: "H"}}
}

func (g *Hadamard) Apply(state State) {
	state.Hadamard(g.qubits[0])
}

// RotateZ is a fixed-phase rotation about the Z axis.
type RotateZ struct {
	gate
	Angle float64
}

func NewRotateZ(qubit string, t, angle float64) *RotateZ {
	return &RotateZ{
		gate:  gate{time: t, qubits: []string{qubit}, label: "RZ"},
		Angle: angle,
	}
}

func (g *RotateZ) Apply(state State) {
	state.RotateZ(g.qubits[0], g.Angle)
}

// CPhase is a two-qubit controlled-phase interaction.
type CPhase struct {
	gate
}

func NewCPhase(qubit0, qubit1 string, t float64) *CPhase {
	return &CPhase{gate{time: t, qubits: []string{qubit0, qubit1}, label: "CZ"}}
}

func (g *CPhase) Apply(state State) {
	state.CPhase(g.qubits[0], g.qubits[1])
}

// AmpPhDamp is an amplitude+phase damping channel modeling passive
// decoherence over an idle interval. The damping parameters are fixed at
// construction from the interval duration and the qubit's coherence times.
type AmpPhDamp struct {
	gate
	Duration float64
	Gamma    float64
	Lambda   float64
}

// NewAmpPhDamp centres the channel at time t and spans the given duration.
// gamma = 1-exp(-duration/T1), lambda = 1-exp(-duration/T2).
func NewAmpPhDamp(qubit string, t, duration, t1, t2 float64) *AmpPhDamp {
	return &AmpPhDamp{
		gate:     gate{time: t, qubits: []string{qubit}, label: "~"},
		Duration: duration,
		Gamma:    1 - math.Exp(-duration/t1),
		Lambda:   1 - math.Exp(-duration/t2),
	}
}

func (g *AmpPhDamp) Apply(state State) {
	state.AmpPhDamp(g.qubits[0], g.Gamma, g.Lambda)
}

// Measurement reads a qubit through a Sampler and collapses the state onto
// the sampler's projected outcome. Declared outcomes accumulate in Results
// across the gate's lifetime, one entry per replay.
type Measurement struct {
	gate
	sampler Sampler
	Results []int
}

// NewMeasurement builds a measurement gate. A nil sampler defaults to a
// seeded uniform Monte Carlo sampler.
func NewMeasurement(qubit string, t float64, sampler Sampler) *Measurement {
	if sampler == nil {
		sampler = NewUniformSampler(DefaultSamplerSeed)
	}
	return &Measurement{
		gate:    gate{time: t, qubits: []string{qubit}, label: "M"},
		sampler: sampler,
	}
}

func (g *Measurement) IsMeasurement() bool { return true }

func (g *Measurement) Apply(state State) {
	bit := g.qubits[0]
	p0, p1 := state.PeekMeasurement(bit)

	declared, projected, weight := g.sampler.Sample(p0, p1)

	g.Results = append(g.Results, declared)
	state.ProjectMeasurement(bit, projected)
	state.MultiplyClassicalProbability(weight)
}

// Kind identifies a gate variant in the construction registry.
type Kind string

const (
	KindHadamard    Kind = "hadamard"
	KindRotateZ     Kind = "rotate_z"
	KindCPhase      Kind = "cphase"
	KindAmpPhDamp   Kind = "amp_ph_damp"
	KindMeasurement Kind = "measurement"
)

// gateFactory builds a gate from generic construction inputs. The circuit
// is passed so damping channels can read the owning qubit's T1/T2.
type gateFactory func(c *Circuit, t float64, qubits []string, params []float64, sampler Sampler) (Gate, error)

var gateFactories = map[Kind]gateFactory{
	KindHadamard: func(_ *Circuit, t float64, qubits []string, params []float64, _ Sampler) (Gate, error) {
		if err := wantArity(KindHadamard, qubits, 1, params, 0); err != nil {
			return nil, err
		}
		return NewHadamard(qubits[0], t), nil
	},
	KindRotateZ: func(_ *Circuit, t float64, qubits []string, params []float64, _ Sampler) (Gate, error) {
		if err := wantArity(KindRotateZ, qubits, 1, params, 1); err != nil {
			return nil, err
		}
		return NewRotateZ(qubits[0], t, params[0]), nil
	},
	KindCPhase: func(_ *Circuit, t float64, qubits []string, params []float64, _ Sampler) (Gate, error) {
		if err := wantArity(KindCPhase, qubits, 2, params, 0); err != nil {
			return nil, err
		}
		return NewCPhase(qubits[0], qubits[1], t), nil
	},
	KindAmpPhDamp: func(c *Circuit, t float64, qubits []string, params []float64, _ Sampler) (Gate, error) {
		if err := wantArity(KindAmpPhDamp, qubits, 1, params, 1); err != nil {
			return nil, err
		}
		qb, ok := c.Qubit(qubits[0])
		if !ok {
			return nil, configErrorf("amp_ph_damp references unknown qubit %q", qubits[0])
		}
		return NewAmpPhDamp(qb.Name, t, params[0], qb.T1, qb.T2), nil
	},
	KindMeasurement: func(_ *Circuit, t float64, qubits []string, params []float64, sampler Sampler) (Gate, error) {
		if err := wantArity(KindMeasurement, qubits, 1, params, 0); err != nil {
			return nil, err
		}
		return NewMeasurement(qubits[0], t, sampler), nil
	},
}

func wantArity(kind Kind, qubits []string, nq int, params []float64, np int) error {
	if len(qubits) != nq {
		return configErrorf("%s wants %d qubit(s), got %d", kind, nq, len(qubits))
	}
	if len(params) != np {
		return configErrorf("%s wants %d parameter(s), got %d", kind, np, len(params))
	}
	return nil
}
