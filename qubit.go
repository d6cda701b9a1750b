package quantumsim

// minCoherenceTime is the floor applied to T1 and T2 so that the
// damping-parameter formulas 1-exp(-d/T) never divide by zero.
const minCoherenceTime = 1e-10

// Qubit is the per-qubit coherence profile: a unique name plus the
// energy-relaxation time T1 and the dephasing time T2. Non-positive
// coherence times are clamped rather than rejected.
type Qubit struct {
	Name string
	T1   float64
	T2   float64
}

// NewQubit builds a coherence profile, clamping T1 and T2 to a tiny
// positive epsilon.
func NewQubit(name string, t1, t2 float64) Qubit {
	return Qubit{
		Name: name,
		T1:   max(t1, minCoherenceTime),
		T2:   max(t2, minCoherenceTime),
	}
}

func (q Qubit) String() string {
	return q.Name
}
