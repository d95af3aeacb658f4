package jq255s

import (
	"github.com/doubleodd/jq255/internal/scalar"
	"math/bits"
)

// Reduction modulo r = 2^254 + r0, r0 = 56904135270672826811114353017034461895.
// Unlike jq255e (r = 2^254 - r0), the sign here is additive: 2^254 = -r0
// mod r, so partial reduction subtracts ah*r0 instead of adding it, and
// finishing a partial reduction subtracts r rather than adding r0.
const r0Lo uint64 = 0xDCF2AC65396152C7
const r0Hi uint64 = 0x2ACF567A912B7F03
const rTop uint64 = 0x4000000000000000

const r0x4Lo uint64 = 0x73CAB194E5854B1C
const r0x4Hi uint64 = 0xAB3D59EA44ADFC0F

var groupOrder = [4]uint64{r0Lo, r0Hi, 0, rTop}

// orderSquared is r^2, used only by the vartime lattice-basis reduction
// in scalar_basis.go to seed its norm accumulator.
var orderSquared = [8]uint64{
	0xA31F34E2739216B1, 0x86A297C9835B5211,
	0x95DCE66BF04303AD, 0x8728B04D2F0F9E3C,
	0xEE7956329CB0A963, 0x1567AB3D4895BF81,
	0x0000000000000000, 0x1000000000000000,
}

// Given input 'a' (up to 2^286-1), perform a partial reduction modulo r;
// output (into 'd') fits on 255 bits and is lower than 2*r. The
// high bits of 'a' are provided as extra parameter ah.
func modrReduce256PartialWithExtra(d, a *[4]uint64, ah uint64) {
	// Truncate to 254 bits and get extra bits into ah.
	ah = (ah << 2) | (a[3] >> 62)

	// Compute ah*r0 into u0:u1:u2.
	u1, u0 := bits.Mul64(ah, r0Lo)
	u2, lo := bits.Mul64(ah, r0Hi)
	var cc uint64
	u1, cc = bits.Add64(u1, lo, 0)
	u2 += cc

	// 2^254 = -r0 mod r
	d[0], cc = bits.Sub64(a[0], u0, 0)
	d[1], cc = bits.Sub64(a[1], u1, cc)
	d[2], cc = bits.Sub64(a[2], u2, cc)
	d[3], cc = bits.Sub64(a[3]&0x3FFFFFFFFFFFFFFF, 0, cc)

	// If we got a borrow, then we must add back r. Since ah*r0 < 2^192,
	// the result will be nonnegative, but less than r.
	m := -cc
	d[0], cc = bits.Add64(d[0], m&groupOrder[0], 0)
	d[1], cc = bits.Add64(d[1], m&groupOrder[1], cc)
	d[2], cc = bits.Add64(d[2], m&groupOrder[2], cc)
	d[3] = d[3] + (m & groupOrder[3]) + cc
}

// Partial reduction ensures that the output fits on 255 bits and is
// less than 2*r.
func modrReduce256Partial(d, a *[4]uint64) {
	modrReduce256PartialWithExtra(d, a, 0)
}

// Given a partially reduced input 'a' (less than 2*r), finish reduction
// (conditional subtraction of r).
func modrReduce256Finish(d, a *[4]uint64) {
	// Try to subtract r.
	var t [4]uint64
	var cc uint64
	t[0], cc = bits.Sub64(a[0], r0Lo, 0)
	t[1], cc = bits.Sub64(a[1], r0Hi, cc)
	t[2], cc = bits.Sub64(a[2], 0, cc)
	t[3], cc = bits.Sub64(a[3], rTop, cc)

	// If the result is nonnegative, then keep it; otherwise, use the
	// original value.
	m := -cc
	for i := 0; i < 4; i++ {
		d[i] = t[i] ^ (m & (a[i] ^ t[i]))
	}
}

// Perform full reduction of a scalar.
func modrReduce256(d, a *[4]uint64) {
	modrReduce256Partial(d, a)
	modrReduce256Finish(d, d)
}

// Given a 384-bit input 'a', perform a partial reduction modulo r;
// output fits on 255 bits and is less than 2*r.
func modrReduce384Partial(d *[4]uint64, a *[6]uint64) {
	// Multiply the high third (a4:a5) by 4*r0 into tw.
	var t1, t2 [2]uint64
	var tw [4]uint64
	t1[0] = r0x4Lo
	t1[1] = r0x4Hi
	t2[0] = a[4]
	t2[1] = a[5]
	scalar.Mul128x128(&tw, &t1, &t2)

	// Subtract 4*r0*ah from the low part of 'a', then
	// add back 4*r. Since 4*r0 =~ 2^127.42, the result may be
	// slightly above 2^257, but will fit on 258 bits.
	var cc uint64
	tw[0], cc = bits.Sub64(a[0], tw[0], 0)
	tw[1], cc = bits.Sub64(a[1], tw[1], cc)
	tw[2], cc = bits.Sub64(a[2], tw[2], cc)
	tw[3], cc = bits.Sub64(a[3], tw[3], cc)
	tw4 := -cc
	tw[0], cc = bits.Add64(tw[0], r0x4Lo, 0)
	tw[1], cc = bits.Add64(tw[1], r0x4Hi, cc)
	tw[2], cc = bits.Add64(tw[2], 0, cc)
	tw[3], cc = bits.Add64(tw[3], 0, cc)
	tw4 += (cc + 1)

	// Perform partial reduction.
	modrReduce256PartialWithExtra(d, &tw, tw4)
}
