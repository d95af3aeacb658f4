package jq255s

import (
	"github.com/doubleodd/jq255/internal/scalar"
)

// Scalar is an integer modulo the prime order of the jq255s group,
// r = 2^254 + 56904135270672826811114353017034461895. The zero value
// is the scalar 0. jq255s has no efficient GLV endomorphism, so unlike
// jq255e it needs no fixed splitting basis; its equivalent trick is the
// runtime lattice-basis reduction in scalar_basis.go, used only by the
// variable-time verification helper. Reduction constants live in
// scalar_reduce.go.
//
// Every method here is constant-time unless its doc comment says
// otherwise.
type Scalar [4]uint64

// Decode a scalar from exactly 32 bytes. Returned value is:
//   1   scalar properly decoded, value is not zero
//   0   scalar properly decoded, value is zero
//  -1   source bytes were not a valid scalar encoding
// If the decoding fails, then the scalar value is forced to zero.
func (s *Scalar) Decode(src []byte) int {
	return scalar.Decode((*[4]uint64)(s), src, &groupOrder)
}

// Decode a scalar from some bytes. All provided bytes are read and
// interpreted as an integer in unsigned little endian convention, which
// is reduced modulo the curve subgroup order. This process cannot fail.
func (s *Scalar) DecodeReduce(src []byte) {
	scalar.DecodeReduce((*[4]uint64)(s), src, modrReduce384Partial)
}

// Encode a scalar into exactly 32 bytes. The bytes are appended to the
// provided slice; the new slice is returned. The extension is done in
// place if the provided slice has enough capacity.
func (s *Scalar) Encode(dst []byte) []byte {
	return scalar.Encode(dst, (*[4]uint64)(s), modrReduce256)
}

// Encode a scalar into exactly 32 bytes; the newly allocated slice
// is returned.
func (s *Scalar) Bytes() [32]byte {
	return scalar.ToBytes((*[4]uint64)(s), modrReduce256)
}

// Compare a scalar with zero. Returned value is 1 if the scalar is zero,
// 0 otherwise.
func (s *Scalar) IsZero() int {
	var t [4]uint64
	modrReduce256(&t, (*[4]uint64)(s))
	z := t[0] | t[1] | t[2] | t[3]
	return int(1 - ((z | -z) >> 63))
}

// Compare two scalars together. Returned value is 1 if the scalars are
// equal to each other, 0 otherwise.
func (s *Scalar) Equal(a *Scalar) int {
	var t Scalar
	t.Sub(s, a)
	return t.IsZero()
}

// Scalar addition: s is set to a + b (mod r).
// A pointer to s is returned.
func (s *Scalar) Add(a, b *Scalar) *Scalar {
	scalar.Add((*[4]uint64)(s), (*[4]uint64)(a), (*[4]uint64)(b), modrReduce256Partial)
	return s
}

// Scalar subtraction: s is set to a - b (mod r).
// A pointer to s is returned.
func (s *Scalar) Sub(a, b *Scalar) *Scalar {
	scalar.Sub((*[4]uint64)(s), (*[4]uint64)(a), (*[4]uint64)(b), modrReduce256Partial, &groupOrder)
	return s
}

// Scalar negation: s is set to -a (mod r).
// A pointer to s is returned.
func (s *Scalar) Neg(a *Scalar) *Scalar {
	var zero = [4]uint64{0, 0, 0, 0}
	scalar.Sub((*[4]uint64)(s), &zero, (*[4]uint64)(a), modrReduce256Partial, &groupOrder)
	return s
}

// If ctl == 1:  s <- a
// If ctl == 0:  s <- b
// ctl MUST be 0 or 1
func (s *Scalar) Select(a, b *Scalar, ctl uint64) *Scalar {
	ma := -ctl
	mb := ^ma
	for i := 0; i < 4; i++ {
		s[i] = (a[i] & ma) | (b[i] & mb)
	}
	return s
}

// Scalar multiplication: s is set to a*b (mod r).
// A pointer to s is returned.
func (s *Scalar) Mul(a, b *Scalar) *Scalar {
	scalar.Mul((*[4]uint64)(s), (*[4]uint64)(a), (*[4]uint64)(b), modrReduce384Partial)
	return s
}

// recode5 exposes internal/scalar's fixed 5-bit Booth recoding for this
// scalar, used by the constant-time multiplier.
func (a *Scalar) recode5(d *[52]byte) {
	scalar.Recode5(d, (*[4]uint64)(a))
}
