package rns

import (
	"math/big"
)

// CRed returns a mod q where a is in [0, 2q-1].
func CRed(a, q uint64) uint64 {
	if a >= q {
		return a - q
	}
	return a
}

// AddMod returns a+b mod q. Inputs must be in [0, q).
func AddMod(a, b, q uint64) uint64 {
	return CRed(a+b, q)
}

// SubMod returns a-b mod q. Inputs must be in [0, q).
func SubMod(a, b, q uint64) uint64 {
	return CRed(a+q-b, q)
}

// NegMod returns -a mod q. Input must be in [0, q).
func NegMod(a, q uint64) uint64 {
	if a == 0 {
		return 0
	}
	return q - a
}

// MulMod returns a*b mod q. The modulus must be at most MaxModulusBits bits
// so that the product fits in a uint64.
func MulMod(a, b, q uint64) uint64 {
	return (a % q) * (b % q) % q
}

// ModExp performs the modular exponentiation x^e mod q. The modulus must be
// at most MaxModulusBits bits.
func ModExp(x, e, q uint64) (result uint64) {
	result = 1
	x %= q
	for i := e; i > 0; i >>= 1 {
		if i&1 == 1 {
			result = result * x % q
		}
		x = x * x % q
	}
	return
}

// ModInverse returns a^-1 mod q for gcd(a, q) = 1. It panics if a is not
// invertible modulo q.
func ModInverse(a, q uint64) uint64 {
	inv := new(big.Int).ModInverse(new(big.Int).SetUint64(a), new(big.Int).SetUint64(q))
	if inv == nil {
		panic("rns: not invertible")
	}
	return inv.Uint64()
}

// IsPrime returns true if x is prime. The primality test is deterministic
// for any 64-bit input.
func IsPrime(x uint64) bool {
	return new(big.Int).SetUint64(x).ProbablyPrime(0)
}

// primeFactors returns the distinct prime factors of x by trial division.
func primeFactors(x uint64) (factors []uint64) {
	for p := uint64(2); p*p <= x; p++ {
		if x%p == 0 {
			factors = append(factors, p)
			for x%p == 0 {
				x /= p
			}
		}
	}
	if x > 1 {
		factors = append(factors, x)
	}
	return
}

// PrimitiveRoot returns the smallest generator of the multiplicative group
// modulo the prime p. It panics if p is not prime.
func PrimitiveRoot(p uint64) uint64 {
	if !IsPrime(p) {
		panic("rns: p is not prime")
	}

	factors := primeFactors(p - 1)

	for g := uint64(2); g < p; g++ {
		isGenerator := true
		for _, f := range factors {
			if ModExp(g, (p-1)/f, p) == 1 {
				isGenerator = false
				break
			}
		}
		if isGenerator {
			return g
		}
	}

	panic("rns: no primitive root found")
}

// CRTReconstruct returns the unique integer congruent to each residue modulo
// the matching modulus. If symmetric is false the result lies in [0, prod),
// else it is centered in (-prod/2, prod/2].
func CRTReconstruct(residues, moduli []uint64, symmetric bool) *big.Int {

	if len(residues) != len(moduli) {
		panic("rns: residues and moduli length mismatch")
	}

	prod := new(big.Int).SetUint64(1)
	for _, m := range moduli {
		prod.Mul(prod, new(big.Int).SetUint64(m))
	}

	x := new(big.Int)
	tmp := new(big.Int)
	mi := new(big.Int)

	for i, m := range moduli {
		mi.SetUint64(m)
		// prod/mi * ((prod/mi)^-1 mod mi) * ri
		term := new(big.Int).Quo(prod, mi)
		tmp.ModInverse(term, mi)
		term.Mul(term, tmp)
		term.Mul(term, tmp.SetUint64(residues[i]))
		x.Add(x, term)
	}

	x.Mod(x, prod)

	if symmetric {
		tmp.Rsh(prod, 1)
		if x.Cmp(tmp) > 0 {
			x.Sub(x, prod)
		}
	}

	return x
}
