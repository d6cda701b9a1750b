// Package sdm is a dense density-matrix engine implementing the
// quantumsim.State contract. It exists so circuits can be replayed end to
// end without an external backend; it favors clarity over scale and is
// intended for small qubit counts.
package sdm

import (
	"fmt"
	"math"
	"math/cmplx"
)

type matrix2 [2][2]complex128

// DensityMatrix holds a dense 2^n x 2^n density operator over named
// qubits, plus the running classical-probability accumulator updated by
// measurement samplers.
type DensityMatrix struct {
	rho       []complex128 // row-major, dim x dim
	dim       int
	bits      map[string]int
	classical float64
}

// New builds the reference ground state |0...0><0...0| over the named
// qubits, with classical probability 1. Qubit order fixes bit positions:
// the first name is bit 0.
func New(names ...string) *DensityMatrix {
	dim := 1 << len(names)
	rho := make([]complex128, dim*dim)
	rho[0] = 1
	bits := make(map[string]int, len(names))
	for i, name := range names {
		bits[name] = i
	}
	return &DensityMatrix{
		rho:       rho,
		dim:       dim,
		bits:      bits,
		classical: 1,
	}
}

func (d *DensityMatrix) bit(qubit string) int {
	b, ok := d.bits[qubit]
	if !ok {
		panic(fmt.Sprintf("sdm: unknown qubit %q", qubit))
	}
	return 1 << b
}

// Hadamard applies the single-qubit Hadamard unitary.
func (d *DensityMatrix) Hadamard(qubit string) {
	h := complex(1/math.Sqrt2, 0)
	d.applyUnitary(d.bit(qubit), matrix2{
		{h, h},
		{h, -h},
	})
}

// RotateZ applies a rotation by angle about the Z axis.
func (d *DensityMatrix) RotateZ(qubit string, angle float64) {
	phase := cmplx.Exp(complex(0, angle/2))
	bit := d.bit(qubit)
	d.applyDiagonal(func(i int) complex128 {
		if i&bit != 0 {
			return phase
		}
		return cmplx.Conj(phase)
	})
}

// CPhase applies the controlled-phase interaction between two qubits.
func (d *DensityMatrix) CPhase(qubit0, qubit1 string) {
	b0, b1 := d.bit(qubit0), d.bit(qubit1)
	d.applyDiagonal(func(i int) complex128 {
		if i&b0 != 0 && i&b1 != 0 {
			return -1
		}
		return 1
	})
}

// AmpPhDamp applies the amplitude+phase damping channel: amplitude damping
// with parameter gamma followed by phase damping with parameter lambda.
func (d *DensityMatrix) AmpPhDamp(qubit string, gamma, lambda float64) {
	bit := d.bit(qubit)
	d.applyKraus(bit, []matrix2{
		{{1, 0}, {0, complex(math.Sqrt(1-gamma), 0)}},
		{{0, complex(math.Sqrt(gamma), 0)}, {0, 0}},
	})
	d.applyKraus(bit, []matrix2{
		{{1, 0}, {0, complex(math.Sqrt(1-lambda), 0)}},
		{{0, 0}, {0, complex(math.Sqrt(lambda), 0)}},
	})
}

// PeekMeasurement returns the relative probabilities of measuring the
// qubit as 0 and 1. It does not mutate the state; the values are diagonal
// sums and are not normalized after earlier projections.
func (d *DensityMatrix) PeekMeasurement(qubit string) (p0, p1 float64) {
	bit := d.bit(qubit)
	for i := 0; i < d.dim; i++ {
		p := real(d.rho[i*d.dim+i])
		if i&bit != 0 {
			p1 += p
		} else {
			p0 += p
		}
	}
	return p0, p1
}

// ProjectMeasurement irreversibly collapses the qubit onto the given
// outcome (0 or 1), zeroing every element inconsistent with it. The state
// is left unnormalized.
func (d *DensityMatrix) ProjectMeasurement(qubit string, outcome int) {
	if outcome != 0 && outcome != 1 {
		panic(fmt.Sprintf("sdm: projection outcome must be 0 or 1, got %d", outcome))
	}
	bit := d.bit(qubit)
	want := 0
	if outcome == 1 {
		want = bit
	}
	for i := 0; i < d.dim; i++ {
		for j := 0; j < d.dim; j++ {
			if i&bit != want || j&bit != want {
				d.rho[i*d.dim+j] = 0
			}
		}
	}
}

// ClassicalProbability returns the running multiplicative likelihood
// accumulator.
func (d *DensityMatrix) ClassicalProbability() float64 {
	return d.classical
}

// MultiplyClassicalProbability folds a sampler weight into the
// accumulator.
func (d *DensityMatrix) MultiplyClassicalProbability(weight float64) {
	d.classical *= weight
}

// Trace returns the trace of the density operator. It is 1 until a
// projection discards probability mass.
func (d *DensityMatrix) Trace() float64 {
	var tr float64
	for i := 0; i < d.dim; i++ {
		tr += real(d.rho[i*d.dim+i])
	}
	return tr
}

// applyDiagonal conjugates rho with a diagonal unitary given by its entry
// function: rho[i][j] *= u(i) * conj(u(j)).
func (d *DensityMatrix) applyDiagonal(u func(i int) complex128) {
	for i := 0; i < d.dim; i++ {
		ui := u(i)
		for j := 0; j < d.dim; j++ {
			d.rho[i*d.dim+j] *= ui * cmplx.Conj(u(j))
		}
	}
}

// applyUnitary conjugates rho with a single-qubit unitary on the given bit.
func (d *DensityMatrix) applyUnitary(bit int, u matrix2) {
	applyOperator(d.rho, d.dim, bit, u)
}

// applyKraus replaces rho with the channel sum over the Kraus operators:
// rho' = sum_k K_k rho K_k†.
func (d *DensityMatrix) applyKraus(bit int, ks []matrix2) {
	sum := make([]complex128, len(d.rho))
	for _, k := range ks {
		tmp := make([]complex128, len(d.rho))
		copy(tmp, d.rho)
		applyOperator(tmp, d.dim, bit, k)
		for i := range sum {
			sum[i] += tmp[i]
		}
	}
	d.rho = sum
}

// applyOperator computes rho = K rho K† in place for a 2x2 operator acting
// on the given bit, pairing indices that differ only in that bit.
func applyOperator(rho []complex128, dim, bit int, k matrix2) {
	// K rho
	for j := 0; j < dim; j++ {
		for i := 0; i < dim; i++ {
			if i&bit != 0 {
				continue
			}
			i1 := i | bit
			a, b := rho[i*dim+j], rho[i1*dim+j]
			rho[i*dim+j] = k[0][0]*a + k[0][1]*b
			rho[i1*dim+j] = k[1][0]*a + k[1][1]*b
		}
	}
	// (K rho) K†
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			if j&bit != 0 {
				continue
			}
			j1 := j | bit
			a, b := rho[i*dim+j], rho[i*dim+j1]
			rho[i*dim+j] = a*cmplx.Conj(k[0][0]) + b*cmplx.Conj(k[0][1])
			rho[i*dim+j1] = a*cmplx.Conj(k[1][0]) + b*cmplx.Conj(k[1][1])
		}
	}
}
