package bfv

import (
	"fmt"

	"github.com/alibillalhammoud/FHEforEEs/ring"
	"github.com/alibillalhammoud/FHEforEEs/utils"
)

// Ciphertext wire format: a big-endian header with the ring degree and the
// basis length, followed by the residues of A then B. Each coefficient is
// serialized as its residues in basis order, one 32-bit big-endian word per
// residue, matching the residue-size bound of the basis moduli.

// BinarySize returns the size in bytes of the serialized ciphertext.
func (ct *Ciphertext) BinarySize() int {
	n := ct.A.N()
	level := ct.A.Basis().Len()
	return 8 + 2*n*level*4
}

// MarshalBinary encodes the target ciphertext on a slice of bytes.
func (ct *Ciphertext) MarshalBinary() ([]byte, error) {

	n := ct.A.N()
	level := ct.A.Basis().Len()

	buf := utils.NewBuffer(make([]byte, 0, ct.BinarySize()))
	buf.WriteUint32(uint32(n))
	buf.WriteUint32(uint32(level))

	for _, pol := range []*ring.Poly{ct.A, ct.B} {
		for i := range pol.Coeffs {
			for _, r := range pol.Coeffs[i].Residues {
				buf.WriteUint32(uint32(r))
			}
		}
	}

	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a slice of bytes generated by MarshalBinary on
// the target ciphertext. The receiver must have been allocated with
// NewCiphertext over the matching parameters.
func (ct *Ciphertext) UnmarshalBinary(data []byte) error {

	n := ct.A.N()
	level := ct.A.Basis().Len()

	if len(data) != ct.BinarySize() {
		return fmt.Errorf("bfv: invalid ciphertext encoding: got %d bytes, expected %d", len(data), ct.BinarySize())
	}

	buf := utils.NewBuffer(data)

	if got := int(buf.ReadUint32()); got != n {
		return fmt.Errorf("bfv: ring degree mismatch: got %d, expected %d", got, n)
	}
	if got := int(buf.ReadUint32()); got != level {
		return fmt.Errorf("bfv: basis length mismatch: got %d, expected %d", got, level)
	}

	for _, pol := range []*ring.Poly{ct.A, ct.B} {
		for i := range pol.Coeffs {
			for j := range pol.Coeffs[i].Residues {
				pol.Coeffs[i].Residues[j] = uint64(buf.ReadUint32())
			}
		}
	}

	return nil
}
