package rns

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/alibillalhammoud/FHEforEEs/utils"
)

// BaseConverter stores the constants used to convert the residues of an
// integer from a source basis to a target basis without reconstructing it.
//
// The conversion is approximate: writing Q for the product of the source
// basis and x^ for the centered value of the input, the converted residues
// represent x^ + k*Q for a signed correction k bounded in magnitude by half
// the source basis length. Callers must either tolerate the correction or
// remove it with an ExactBaseConverter.
type BaseConverter struct {
	src, dst *Basis

	// ((Q/qi)^-1) mod qi
	qOverQiInvQi []uint64
	// [j][i]: (Q/qi) mod pj
	qOverQiModPj [][]uint64
}

// NewBaseConverter creates a new BaseConverter from the source basis to the
// target basis.
func NewBaseConverter(src, dst *Basis) *BaseConverter {

	bc := &BaseConverter{src: src, dst: dst}

	Q := src.Product()
	tmp := new(big.Int)
	mi := new(big.Int)

	qOverQi := make([]*big.Int, src.Len())

	bc.qOverQiInvQi = make([]uint64, src.Len())
	for i, qi := range src.moduli {
		mi.SetUint64(qi)
		qOverQi[i] = new(big.Int).Quo(Q, mi)
		bc.qOverQiInvQi[i] = tmp.ModInverse(qOverQi[i], mi).Uint64()
	}

	bc.qOverQiModPj = make([][]uint64, dst.Len())
	for j, pj := range dst.moduli {
		mi.SetUint64(pj)
		bc.qOverQiModPj[j] = make([]uint64, src.Len())
		for i := range src.moduli {
			bc.qOverQiModPj[j][i] = tmp.Mod(qOverQi[i], mi).Uint64()
		}
	}

	return bc
}

// SourceBasis returns the source basis of the converter.
func (bc *BaseConverter) SourceBasis() *Basis {
	return bc.src
}

// TargetBasis returns the target basis of the converter.
func (bc *BaseConverter) TargetBasis() *Basis {
	return bc.dst
}

// Convert computes the residues of x on the target basis. The per-modulus
// terms are taken centered in (-qi/2, qi/2], which keeps the correction k
// signed and small. It panics if x is not represented over the source basis.
func (bc *BaseConverter) Convert(x Integer) Integer {

	if !x.basis.Equal(bc.src) {
		panic("rns: input basis does not match the converter source basis")
	}

	out := NewInteger(bc.dst)

	for i, qi := range bc.src.moduli {

		a := MulMod(x.Residues[i], bc.qOverQiInvQi[i], qi)

		// Centered representative of a
		neg := a > qi>>1
		if neg {
			a = qi - a
		}

		for j, pj := range bc.dst.moduli {
			term := MulMod(a, bc.qOverQiModPj[j][i], pj)
			if neg {
				out.Residues[j] = SubMod(out.Residues[j], term, pj)
			} else {
				out.Residues[j] = AddMod(out.Residues[j], term, pj)
			}
		}
	}

	return out
}

// ModSwitcher drops a subset of the moduli of a basis and rescales the
// remaining residues, so that the result represents the input divided by the
// product of the dropped moduli, rounded to the nearest integer, up to the
// small signed correction of the approximate conversion it uses internally.
type ModSwitcher struct {
	src, drop, keep *Basis

	dropIdx, keepIdx []int

	conv *BaseConverter

	// (prod drop)^-1 mod each kept modulus
	dropProdInv []uint64
}

// NewModSwitcher creates a new ModSwitcher over the source basis dropping
// the provided moduli. All dropped moduli must belong to the source basis
// and at least one modulus must remain.
func NewModSwitcher(src *Basis, dropModuli []uint64) (*ModSwitcher, error) {

	ms := &ModSwitcher{src: src}

	for _, m := range dropModuli {
		idx := src.Index(m)
		if idx < 0 {
			return nil, fmt.Errorf("rns: dropped modulus %d is not in the basis", m)
		}
		ms.dropIdx = append(ms.dropIdx, idx)
	}

	if len(ms.dropIdx) == 0 {
		return nil, errors.New("rns: no moduli to drop")
	}

	keepModuli := make([]uint64, 0, src.Len()-len(dropModuli))
	for i, m := range src.moduli {
		if !utils.IsInSlice(i, ms.dropIdx) {
			ms.keepIdx = append(ms.keepIdx, i)
			keepModuli = append(keepModuli, m)
		}
	}

	if len(keepModuli) == 0 {
		return nil, errors.New("rns: resulting basis is empty")
	}

	var err error
	dropOrdered := make([]uint64, len(ms.dropIdx))
	for i, idx := range ms.dropIdx {
		dropOrdered[i] = src.moduli[idx]
	}
	if ms.drop, err = NewBasis(dropOrdered); err != nil {
		return nil, err
	}
	if ms.keep, err = NewBasis(keepModuli); err != nil {
		return nil, err
	}

	ms.conv = NewBaseConverter(ms.drop, ms.keep)

	tmp := new(big.Int)
	mi := new(big.Int)
	ms.dropProdInv = make([]uint64, ms.keep.Len())
	for j, m := range ms.keep.moduli {
		mi.SetUint64(m)
		ms.dropProdInv[j] = tmp.ModInverse(tmp.Mod(ms.drop.Product(), mi), mi).Uint64()
	}

	return ms, nil
}

// TargetBasis returns the basis of the switched representation.
func (ms *ModSwitcher) TargetBasis() *Basis {
	return ms.keep
}

// Switch returns the representation of round(x / prod(drop)) - k over the
// kept moduli, where k is the signed correction of the approximate
// conversion of the dropped residues, at most half the number of dropped
// moduli in magnitude. It panics if x is not represented over the source
// basis.
func (ms *ModSwitcher) Switch(x Integer) Integer {

	if !x.basis.Equal(ms.src) {
		panic("rns: input basis does not match the switcher source basis")
	}

	xd := NewInteger(ms.drop)
	for i, idx := range ms.dropIdx {
		xd.Residues[i] = x.Residues[idx]
	}

	c := ms.conv.Convert(xd)

	out := NewInteger(ms.keep)
	for j, m := range ms.keep.moduli {
		out.Residues[j] = MulMod(SubMod(x.Residues[ms.keepIdx[j]], c.Residues[j], m), ms.dropProdInv[j], m)
	}

	return out
}

// ExactBaseConverter converts the residues of an integer represented over
// the union basis B u {ba} to a target basis exactly. The single auxiliary
// modulus ba is used to measure the correction of the approximate conversion
// from B, which is then subtracted as a signed term.
type ExactBaseConverter struct {
	b   *Basis
	ba  uint64
	src *Basis
	dst *Basis

	convToBa  *BaseConverter
	convToDst *BaseConverter

	// (prod B)^-1 mod ba
	bProdInvModBa uint64
	// prod B mod each target modulus
	bProdModDst []uint64
}

// NewExactBaseConverter creates a new ExactBaseConverter from the union
// basis b u {ba} to the target basis. The conversion is exact as long as the
// magnitude of the correction stays below ba/2, which the parameter
// generation guarantees by construction.
func NewExactBaseConverter(b *Basis, ba uint64, dst *Basis) (*ExactBaseConverter, error) {

	if b.Contains(ba) {
		return nil, fmt.Errorf("rns: auxiliary modulus %d already belongs to the basis", ba)
	}

	src, err := NewBasis(append(append([]uint64{}, b.moduli...), ba))
	if err != nil {
		return nil, err
	}

	baBasis, err := NewBasis([]uint64{ba})
	if err != nil {
		return nil, err
	}

	ec := &ExactBaseConverter{
		b:         b,
		ba:        ba,
		src:       src,
		dst:       dst,
		convToBa:  NewBaseConverter(b, baBasis),
		convToDst: NewBaseConverter(b, dst),
	}

	tmp := new(big.Int)
	mi := new(big.Int).SetUint64(ba)
	ec.bProdInvModBa = tmp.ModInverse(tmp.Mod(b.Product(), mi), mi).Uint64()

	ec.bProdModDst = make([]uint64, dst.Len())
	for j, m := range dst.moduli {
		mi.SetUint64(m)
		ec.bProdModDst[j] = tmp.Mod(b.Product(), mi).Uint64()
	}

	return ec, nil
}

// SourceBasis returns the union basis B u {ba}.
func (ec *ExactBaseConverter) SourceBasis() *Basis {
	return ec.src
}

// TargetBasis returns the target basis of the converter.
func (ec *ExactBaseConverter) TargetBasis() *Basis {
	return ec.dst
}

// Convert computes the residues of x on the target basis. It panics if x is
// not represented over the union basis B u {ba}.
func (ec *ExactBaseConverter) Convert(x Integer) Integer {

	if !x.basis.Equal(ec.src) {
		panic("rns: input basis does not match the converter source basis")
	}

	xB := Integer{basis: ec.b, Residues: x.Residues[:ec.b.Len()]}
	xBa := x.Residues[ec.b.Len()]

	// Correction measured on the auxiliary modulus
	yBa := ec.convToBa.Convert(xB).Residues[0]
	k := MulMod(SubMod(yBa, xBa, ec.ba), ec.bProdInvModBa, ec.ba)

	kNeg := k > ec.ba>>1
	if kNeg {
		k = ec.ba - k
	}

	out := ec.convToDst.Convert(xB)
	for j, m := range ec.dst.moduli {
		corr := MulMod(k, ec.bProdModDst[j], m)
		if kNeg {
			out.Residues[j] = AddMod(out.Residues[j], corr, m)
		} else {
			out.Residues[j] = SubMod(out.Residues[j], corr, m)
		}
	}

	return out
}
