package ring

import (
	"encoding/binary"

	"github.com/alibillalhammoud/FHEforEEs/utils/sampling"
)

// baseSampler stores the state shared by all polynomial samplers: the random
// source, the target ring and a byte pool replenished from the source.
type baseSampler struct {
	prng     sampling.PRNG
	baseRing *Ring
	buff     []byte
	ptr      int
}

func newBaseSampler(prng sampling.PRNG, baseRing *Ring) baseSampler {
	buff := make([]byte, 1024)
	return baseSampler{prng: prng, baseRing: baseRing, buff: buff, ptr: len(buff)}
}

// randUint64 reads 8 bytes from the pool, replenishing it when it runs
// empty.
func (s *baseSampler) randUint64() uint64 {
	if s.ptr+8 > len(s.buff) {
		if _, err := s.prng.Read(s.buff); err != nil {
			// Sanity check, the XOF read cannot fail.
			panic(err)
		}
		s.ptr = 0
	}
	v := binary.BigEndian.Uint64(s.buff[s.ptr : s.ptr+8])
	s.ptr += 8
	return v
}

// randFloat64 returns a uniform float64 in [0, 1) with 53 bits of precision.
func (s *baseSampler) randFloat64() float64 {
	return float64(s.randUint64()&0x1fffffffffffff) / float64(1<<53)
}
