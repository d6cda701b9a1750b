// Package circuitfile loads circuit descriptions from TOML files and
// builds runnable quantumsim circuits from them.
package circuitfile

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/elikkatzgit/quantumsim"
)

// File is a decoded circuit description.
type File struct {
	Title   string     `toml:"title"`
	Qubits  []QubitDef `toml:"qubit"`
	Gates   []GateDef  `toml:"gate"`
	Sampler SamplerDef `toml:"sampler"`
	Window  WindowDef  `toml:"window"`
}

// QubitDef declares a coherence profile.
type QubitDef struct {
	Name string  `toml:"name"`
	T1   float64 `toml:"t1"`
	T2   float64 `toml:"t2"`
}

// GateDef declares a gate by kind. Params are expressions: plain numbers
// or pi fractions like "pi/2".
type GateDef struct {
	Kind   string   `toml:"kind"`
	Time   float64  `toml:"time"`
	Qubits []string `toml:"qubits"`
	Params []string `toml:"params"`
}

// SamplerDef selects the measurement sampling policy shared by every
// measurement gate in the file.
type SamplerDef struct {
	Policy       string  `toml:"policy"`
	Result       int     `toml:"result"`
	Seed         int64   `toml:"seed"`
	ReadoutError float64 `toml:"readout_error"`
}

// WindowDef is the optional synthesis window; nil bounds default to the
// circuit's own time span.
type WindowDef struct {
	Min *float64 `toml:"min"`
	Max *float64 `toml:"max"`
}

// ParseFile reads and parses a circuit TOML file.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading circuit file: %w", err)
	}
	return Parse(data)
}

// Parse parses circuit TOML content from bytes.
func Parse(data []byte) (*File, error) {
	var f File
	if _, err := toml.Decode(string(data), &f); err != nil {
		return nil, fmt.Errorf("parsing TOML: %w", err)
	}
	if len(f.Qubits) == 0 {
		return nil, fmt.Errorf("circuit file declares no qubits")
	}
	return &f, nil
}

// Build constructs the circuit: qubits first, then gates through the kind
// registry, so unknown kinds and unknown qubit references surface as
// quantumsim configuration errors.
func (f *File) Build() (*quantumsim.Circuit, error) {
	c := quantumsim.NewCircuit(f.Title)
	for _, q := range f.Qubits {
		if _, err := c.AddQubit(q.Name, q.T1, q.T2); err != nil {
			return nil, err
		}
	}

	sampler, err := f.Sampler.build()
	if err != nil {
		return nil, err
	}

	for _, g := range f.Gates {
		params := make([]float64, 0, len(g.Params))
		for _, expr := range g.Params {
			val, ok := parseParamExpr(expr)
			if !ok {
				return nil, fmt.Errorf("gate %s: bad parameter expression %q", g.Kind, expr)
			}
			params = append(params, val)
		}
		if _, err := c.AddGateOf(quantumsim.Kind(g.Kind), g.Time, g.Qubits, params, sampler); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// SynthesisWindow converts the declared window to the library type.
func (f *File) SynthesisWindow() quantumsim.Window {
	return quantumsim.Window{Min: f.Window.Min, Max: f.Window.Max}
}

func (s SamplerDef) build() (quantumsim.Sampler, error) {
	seed := s.Seed
	if seed == 0 {
		seed = quantumsim.DefaultSamplerSeed
	}
	switch s.Policy {
	case "", "uniform":
		return quantumsim.NewUniformSampler(seed), nil
	case "selection":
		return quantumsim.NewSelectionSampler(s.Result), nil
	case "uniform_noisy":
		return quantumsim.NewNoisyUniformSampler(s.ReadoutError, seed), nil
	default:
		return nil, fmt.Errorf("unknown sampler policy %q (want selection, uniform or uniform_noisy)", s.Policy)
	}
}
