package quantumsim_test

import (
	"math"
	"sort"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elikkatzgit/quantumsim"
	"github.com/elikkatzgit/quantumsim/sdm"
)

func TestAddQubit_ClampsCoherenceTimes(t *testing.T) {
	c := quantumsim.NewCircuit("clamp")
	qb, err := c.AddQubit("a", -5, 0)
	require.NoError(t, err)
	assert.Positive(t, qb.T1)
	assert.Positive(t, qb.T2)
}

func TestAddQubit_DuplicateName(t *testing.T) {
	c := quantumsim.NewCircuit("dup")
	_, err := c.AddQubit("a", 1000, 1000)
	require.NoError(t, err)

	_, err = c.AddQubit("a", 500, 500)
	var cfg *quantumsim.ConfigurationError
	require.ErrorAs(t, err, &cfg)
}

func TestAddGate_UnknownQubitRejected(t *testing.T) {
	c := quantumsim.NewCircuit("membership")
	_, err := c.AddQubit("a", 1000, 1000)
	require.NoError(t, err)

	_, err = c.AddHadamard("nope", 0)
	var cfg *quantumsim.ConfigurationError
	require.ErrorAs(t, err, &cfg)

	_, err = c.AddCPhase("a", "nope", 0)
	require.ErrorAs(t, err, &cfg)
	assert.Empty(t, c.Gates())
}

func TestAddGateOf_UnknownKind(t *testing.T) {
	c := quantumsim.NewCircuit("registry")
	_, err := c.AddQubit("a", 1000, 1000)
	require.NoError(t, err)

	_, err = c.AddGateOf(quantumsim.Kind("teleport"), 0, []string{"a"}, nil, nil)
	var cfg *quantumsim.ConfigurationError
	require.ErrorAs(t, err, &cfg)
}

func TestAddGateOf_ArityChecked(t *testing.T) {
	c := quantumsim.NewCircuit("arity")
	_, err := c.AddQubit("a", 1000, 1000)
	require.NoError(t, err)
	_, err = c.AddQubit("b", 1000, 1000)
	require.NoError(t, err)

	tests := []struct {
		name   string
		kind   quantumsim.Kind
		qubits []string
		params []float64
	}{
		{"hadamard two qubits", quantumsim.KindHadamard, []string{"a", "b"}, nil},
		{"rotate_z missing angle", quantumsim.KindRotateZ, []string{"a"}, nil},
		{"cphase one qubit", quantumsim.KindCPhase, []string{"a"}, nil},
		{"amp_ph_damp missing duration", quantumsim.KindAmpPhDamp, []string{"a"}, nil},
		{"measurement with param", quantumsim.KindMeasurement, []string{"a"}, []float64{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.AddGateOf(tt.kind, 0, tt.qubits, tt.params, nil)
			var cfg *quantumsim.ConfigurationError
			assert.ErrorAs(t, err, &cfg)
		})
	}
}

func TestAmpPhDamp_DampingParameters(t *testing.T) {
	const t1, t2, duration = 1000.0, 500.0, 20.0
	g := quantumsim.NewAmpPhDamp("a", 10, duration, t1, t2)

	assert.InDelta(t, 1-math.Exp(-duration/t1), g.Gamma, 1e-12)
	assert.InDelta(t, 1-math.Exp(-duration/t2), g.Lambda, 1e-12)
	assert.Equal(t, duration, g.Duration)
}

// dampChannels returns the damping channels involving the named qubit,
// sorted by interval start.
func dampChannels(c *quantumsim.Circuit, qubit string) []*quantumsim.AmpPhDamp {
	var out []*quantumsim.AmpPhDamp
	for _, g := range c.Gates() {
		if d, ok := g.(*quantumsim.AmpPhDamp); ok && d.Involves(qubit) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Time()-out[i].Duration/2 < out[j].Time()-out[j].Duration/2
	})
	return out
}

func TestAddWaitingGates_EmptyCircuitNoWindowIsNoop(t *testing.T) {
	c := quantumsim.NewCircuit("empty")
	_, err := c.AddQubit("a", 1000, 1000)
	require.NoError(t, err)

	c.AddWaitingGates(quantumsim.Window{})
	assert.Empty(t, c.Gates())
}

func TestAddWaitingGates_EmptyCircuitExplicitWindow(t *testing.T) {
	c := quantumsim.NewCircuit("window-only")
	_, err := c.AddQubit("a", 1000, 1000)
	require.NoError(t, err)
	_, err = c.AddQubit("b", 1000, 1000)
	require.NoError(t, err)

	c.AddWaitingGates(quantumsim.Span(0, 40))

	require.Len(t, c.Gates(), 2)
	for _, name := range []string{"a", "b"} {
		ds := dampChannels(c, name)
		require.Len(t, ds, 1)
		assert.InDelta(t, 20, ds[0].Time(), 1e-9, "centred at the window midpoint")
		assert.InDelta(t, 40, ds[0].Duration, 1e-9)
	}
}

func TestAddWaitingGates_FillsEveryGap(t *testing.T) {
	c := quantumsim.NewCircuit("gaps")
	_, err := c.AddQubit("a", 1000, 1000)
	require.NoError(t, err)
	_, err = c.AddQubit("b", 2000, 500)
	require.NoError(t, err)

	_, err = c.AddHadamard("a", 0)
	require.NoError(t, err)
	_, err = c.AddCPhase("a", "b", 10)
	require.NoError(t, err)
	_, err = c.AddHadamard("b", 25)
	require.NoError(t, err)
	_, err = c.AddMeasurement("a", 30, quantumsim.NewSelectionSampler(0))
	require.NoError(t, err)

	c.AddWaitingGates(quantumsim.Window{})

	// Qubit a: gaps (0,10) and (10,30). Qubit b: gaps (0,10), (10,25), (25,30).
	wantA := [][2]float64{{0, 10}, {10, 30}}
	wantB := [][2]float64{{0, 10}, {10, 25}, {25, 30}}

	for _, tc := range []struct {
		qubit string
		want  [][2]float64
	}{{"a", wantA}, {"b", wantB}} {
		ds := dampChannels(c, tc.qubit)
		require.Len(t, ds, len(tc.want), "qubit %s", tc.qubit)
		for i, span := range tc.want {
			from, to := span[0], span[1]
			assert.InDelta(t, (from+to)/2, ds[i].Time(), 1e-9)
			assert.InDelta(t, to-from, ds[i].Duration, 1e-9)
		}
	}
}

func TestAddWaitingGates_SpanConservationNoOverlap(t *testing.T) {
	c := quantumsim.NewCircuit("conservation")
	for _, name := range []string{"a", "b", "c"} {
		_, err := c.AddQubit(name, 800, 600)
		require.NoError(t, err)
	}
	mustAdd := func(_ quantumsim.Gate, err error) {
		require.NoError(t, err)
	}
	mustAdd(c.AddHadamard("a", 3))
	mustAdd(c.AddRotateZ("b", 7, math.Pi/2))
	mustAdd(c.AddCPhase("a", "c", 12))
	mustAdd(c.AddHadamard("b", 18))
	mustAdd(c.AddMeasurement("c", 21, nil))

	c.AddWaitingGates(quantumsim.Span(0, 25))

	for _, qb := range c.Qubits() {
		ds := dampChannels(c, qb.Name)
		require.NotEmpty(t, ds)

		var covered float64
		prevEnd := math.Inf(-1)
		for _, d := range ds {
			start := d.Time() - d.Duration/2
			end := d.Time() + d.Duration/2
			assert.GreaterOrEqual(t, start, prevEnd-1e-9, "channels on %s must not overlap", qb.Name)
			covered += d.Duration
			prevEnd = end
		}

		// Point gates contribute no span, so the channels alone must cover
		// the whole window.
		assert.InDelta(t, 25.0, covered, 1e-6, "qubit %s", qb.Name)
	}
}

func TestAddWaitingGates_TinyGapIgnored(t *testing.T) {
	c := quantumsim.NewCircuit("tiny")
	_, err := c.AddQubit("a", 1000, 1000)
	require.NoError(t, err)
	_, err = c.AddHadamard("a", 0)
	require.NoError(t, err)
	_, err = c.AddHadamard("a", 1e-7)
	require.NoError(t, err)

	c.AddWaitingGates(quantumsim.Window{})
	assert.Empty(t, dampChannels(c, "a"))
}

func TestOrder_PerQubitChronological(t *testing.T) {
	c := quantumsim.NewCircuit("chrono")
	for _, name := range []string{"a", "b"} {
		_, err := c.AddQubit(name, 1000, 1000)
		require.NoError(t, err)
	}
	// Registered deliberately out of time order.
	_, err := c.AddMeasurement("a", 30, nil)
	require.NoError(t, err)
	_, err = c.AddHadamard("a", 0)
	require.NoError(t, err)
	_, err = c.AddCPhase("a", "b", 10)
	require.NoError(t, err)
	_, err = c.AddHadamard("b", 5)
	require.NoError(t, err)

	c.Order()

	for _, qb := range c.Qubits() {
		var times []float64
		for _, g := range c.Gates() {
			if g.Involves(qb.Name) {
				times = append(times, g.Time())
			}
		}
		assert.True(t, sort.Float64sAreSorted(times),
			"qubit %s replays out of chronological order: %v", qb.Name, times)
	}
}

func TestOrder_IsolatedMeasurementGoesLast(t *testing.T) {
	c := quantumsim.NewCircuit("deferral")
	for _, name := range []string{"a", "b"} {
		_, err := c.AddQubit(name, 1000, 1000)
		require.NoError(t, err)
	}
	// The measurement is the earliest gate but has no dependents, so the
	// scheduler must still push it to the end.
	_, err := c.AddMeasurement("a", 0, nil)
	require.NoError(t, err)
	_, err = c.AddHadamard("b", 5)
	require.NoError(t, err)
	_, err = c.AddHadamard("b", 10)
	require.NoError(t, err)

	c.Order()

	gates := c.Gates()
	require.Len(t, gates, 3)
	assert.True(t, gates[len(gates)-1].IsMeasurement())
}

func TestOrder_AnnotatesSequenceIndex(t *testing.T) {
	c := quantumsim.NewCircuit("annotate")
	_, err := c.AddQubit("a", 1000, 1000)
	require.NoError(t, err)
	for _, tm := range []float64{4, 0, 2} {
		_, err := c.AddHadamard("a", tm)
		require.NoError(t, err)
	}

	c.Order()

	for i, g := range c.Gates() {
		assert.Equal(t, strconv.Itoa(i), g.Annotation())
	}
}

func TestApplyTo_EndToEndDeterministic(t *testing.T) {
	c := quantumsim.NewCircuit("end-to-end")
	_, err := c.AddQubit("a", 1000, 1000)
	require.NoError(t, err)
	_, err = c.AddQubit("b", 1000, 1000)
	require.NoError(t, err)

	_, err = c.AddHadamard("a", 0)
	require.NoError(t, err)
	_, err = c.AddCPhase("a", "b", 10)
	require.NoError(t, err)
	m, err := c.AddMeasurement("a", 20, quantumsim.NewSelectionSampler(1))
	require.NoError(t, err)

	c.AddWaitingGates(quantumsim.Window{})
	c.Order()

	state := sdm.New("a", "b")
	c.ApplyTo(state)

	require.Equal(t, []int{1}, m.Results)
	assert.Equal(t, 1.0, state.ClassicalProbability(),
		"selection sampling leaves the likelihood accumulator untouched")
}

func TestApplyTo_NoisyReadoutWeightsAccumulator(t *testing.T) {
	const readoutError = 0.2
	c := quantumsim.NewCircuit("noisy")
	_, err := c.AddQubit("a", 1000, 1000)
	require.NoError(t, err)
	_, err = c.AddHadamard("a", 0)
	require.NoError(t, err)
	_, err = c.AddMeasurement("a", 10, quantumsim.NewNoisyUniformSampler(readoutError, 42))
	require.NoError(t, err)

	c.Order()
	state := sdm.New("a")
	c.ApplyTo(state)

	got := state.ClassicalProbability()
	assert.True(t, got == readoutError || got == 1-readoutError,
		"classical probability %v must be one of the two readout weights", got)
}

func TestRunEnsemble_TrajectoriesAccumulate(t *testing.T) {
	c := quantumsim.NewCircuit("ensemble")
	_, err := c.AddQubit("a", 1000, 1000)
	require.NoError(t, err)
	_, err = c.AddHadamard("a", 0)
	require.NoError(t, err)
	m, err := c.AddMeasurement("a", 10, quantumsim.NewSelectionSampler(1))
	require.NoError(t, err)

	c.Order()

	const n = 3
	trajectories := quantumsim.RunEnsemble(c, n, func() quantumsim.State {
		return sdm.New("a")
	})

	require.Len(t, trajectories, n)
	seen := map[string]bool{}
	for _, tr := range trajectories {
		assert.Equal(t, []int{1}, tr.Outcomes)
		assert.Equal(t, 1.0, tr.Weight)
		assert.False(t, seen[tr.ID.String()], "trajectory IDs must be unique")
		seen[tr.ID.String()] = true
	}
	assert.Equal(t, []int{1, 1, 1}, m.Results,
		"declared outcomes accumulate across the ensemble")
}
