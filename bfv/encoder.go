package bfv

import (
	"github.com/alibillalhammoud/FHEforEEs/rns"
)

// Encoder maps integer vectors of length n over Z_t to plaintext
// polynomials in R_t and back, in a SIMD (Single-Instruction Multiple-Data)
// fashion: coefficient-wise addition and negacyclic multiplication of the
// encoded polynomials act slot-wise on the encoded vectors.
type Encoder struct {
	params Parameters

	t            uint64
	encodeMatrix [][]uint64
	decodeMatrix [][]uint64
}

// NewEncoder creates a new encoder from the provided parameters.
func NewEncoder(params Parameters) *Encoder {
	return &Encoder{
		params:       params,
		t:            params.T(),
		encodeMatrix: params.encodeMatrix,
		decodeMatrix: params.decodeMatrix,
	}
}

// EncodeUint encodes a vector of n slot values on a plaintext polynomial of
// R_t, returned as its n coefficients in [0, t). Values are reduced mod t.
func (e *Encoder) EncodeUint(values []uint64) []uint64 {
	if len(values) != e.params.N() {
		panic("bfv: invalid input to encode: length must equal the ring degree")
	}
	reduced := make([]uint64, len(values))
	for i, v := range values {
		reduced[i] = v % e.t
	}
	return e.matVecMod(e.encodeMatrix, reduced)
}

// EncodeInt encodes a vector of n signed slot values on a plaintext
// polynomial of R_t. Values of any sign and magnitude are mapped to their
// representatives in [0, t), which is what DecodeUint returns for them.
func (e *Encoder) EncodeInt(values []int64) []uint64 {
	if len(values) != e.params.N() {
		panic("bfv: invalid input to encode: length must equal the ring degree")
	}
	reduced := make([]uint64, len(values))
	for i, v := range values {
		r := v % int64(e.t)
		if r < 0 {
			r += int64(e.t)
		}
		reduced[i] = uint64(r)
	}
	return e.matVecMod(e.encodeMatrix, reduced)
}

// DecodeUint decodes a plaintext polynomial, given as its n coefficients in
// [0, t), and returns the vector of its n slot values.
func (e *Encoder) DecodeUint(coeffs []uint64) []uint64 {
	if len(coeffs) != e.params.N() {
		panic("bfv: invalid input to decode: length must equal the ring degree")
	}
	return e.matVecMod(e.decodeMatrix, coeffs)
}

func (e *Encoder) matVecMod(m [][]uint64, v []uint64) []uint64 {
	out := make([]uint64, len(v))
	for i := range m {
		var acc uint64
		for j := range v {
			acc = rns.AddMod(acc, rns.MulMod(m[i][j], v[j], e.t), e.t)
		}
		out[i] = acc
	}
	return out
}
