// Package rns implements arithmetic over the residue number system: large
// integers represented by their residues modulo a basis of pairwise-coprime
// word-sized primes, with approximate and exact base conversion and modulus
// switching following https://eprint.iacr.org/2018/117.pdf.
package rns

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/alibillalhammoud/FHEforEEs/utils"
	"golang.org/x/exp/slices"
)

// MaxModulusBits is the bound on the bit-size of the basis moduli. It
// guarantees that the product of two residues fits in a uint64, so that the
// conversion and ring kernels never need a double-word reduction.
const MaxModulusBits = 32

// Basis is an ordered set of pairwise-coprime moduli. It is immutable after
// construction and shared by reference between all the values represented
// over it.
type Basis struct {
	moduli  []uint64
	product *big.Int
}

// NewBasis creates a new Basis from the provided moduli. The moduli must be
// non-empty, distinct, pairwise coprime and at most MaxModulusBits bits each.
func NewBasis(moduli []uint64) (*Basis, error) {

	if len(moduli) == 0 {
		return nil, errors.New("rns: empty basis")
	}

	if !utils.AllDistinct(moduli) {
		return nil, errors.New("rns: moduli are not distinct")
	}

	for i, m := range moduli {
		if m < 2 {
			return nil, fmt.Errorf("rns: invalid modulus %d", m)
		}
		if m>>MaxModulusBits != 0 {
			return nil, fmt.Errorf("rns: modulus %d exceeds the %d-bit residue bound", m, MaxModulusBits)
		}
		for _, mj := range moduli[i+1:] {
			if utils.GCD(m, mj) != 1 {
				return nil, fmt.Errorf("rns: moduli %d and %d are not coprime", m, mj)
			}
		}
	}

	b := new(Basis)
	b.moduli = make([]uint64, len(moduli))
	copy(b.moduli, moduli)

	b.product = new(big.Int).SetUint64(1)
	for _, m := range b.moduli {
		b.product.Mul(b.product, new(big.Int).SetUint64(m))
	}

	return b, nil
}

// Len returns the number of moduli in the basis.
func (b *Basis) Len() int {
	return len(b.moduli)
}

// Moduli returns the moduli of the basis. The returned slice is read-only.
func (b *Basis) Moduli() []uint64 {
	return b.moduli
}

// Product returns the product of the moduli. The returned value is read-only.
func (b *Basis) Product() *big.Int {
	return b.product
}

// Equal returns true if the two bases hold the same moduli in the same order.
func (b *Basis) Equal(other *Basis) bool {
	if b == other {
		return true
	}
	return other != nil && slices.Equal(b.moduli, other.moduli)
}

// Contains returns true if m is a modulus of the basis.
func (b *Basis) Contains(m uint64) bool {
	return utils.IsInSlice(m, b.moduli)
}

// Index returns the position of m in the basis, or -1 if m is not a modulus
// of the basis.
func (b *Basis) Index(m uint64) int {
	return slices.Index(b.moduli, m)
}
