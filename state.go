package quantumsim

// State is the external quantum-state engine the circuit replays against.
// The circuit owns the state exclusively for the duration of ApplyTo; it
// calls exactly one mutating method per gate, in scheduled order.
//
// PeekMeasurement must be read-only. ProjectMeasurement is an irreversible
// collapse onto the given outcome. MultiplyClassicalProbability folds a
// sampler weight into the state's running likelihood accumulator, read back
// via ClassicalProbability.
type State interface {
	Hadamard(qubit string)
	RotateZ(qubit string, angle float64)
	CPhase(qubit0, qubit1 string)
	AmpPhDamp(qubit string, gamma, lambda float64)

	PeekMeasurement(qubit string) (p0, p1 float64)
	ProjectMeasurement(qubit string, outcome int)

	ClassicalProbability() float64
	MultiplyClassicalProbability(weight float64)
}
