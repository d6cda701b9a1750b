package quantumsim

import "github.com/google/uuid"

// Trajectory is one Monte Carlo replay of a circuit: the declared outcome
// of each measurement gate (in gate order) and the state's final classical
// probability, which folds in every sampler weight along the run.
type Trajectory struct {
	ID       uuid.UUID
	Outcomes []int
	Weight   float64
}

// RunEnsemble replays the circuit n times, each against a fresh state from
// newState, strictly sequentially. The circuit's samplers persist across
// trajectories, advancing their internal streams, so a seeded ensemble is
// reproducible end to end. Measurement gates keep accumulating declared
// outcomes across the whole ensemble.
func RunEnsemble(c *Circuit, n int, newState func() State) []Trajectory {
	measurements := c.Measurements()
	trajectories := make([]Trajectory, 0, n)

	for i := 0; i < n; i++ {
		state := newState()
		c.ApplyTo(state)

		outcomes := make([]int, len(measurements))
		for j, m := range measurements {
			outcomes[j] = m.Results[len(m.Results)-1]
		}
		trajectories = append(trajectories, Trajectory{
			ID:       uuid.New(),
			Outcomes: outcomes,
			Weight:   state.ClassicalProbability(),
		})
	}
	return trajectories
}
