package jq255e

import (
	"github.com/doubleodd/jq255/internal/scalar"
	"math/bits"
)

// Reduction modulo r = 2^254 - r0, r0 = 131528281291764213006042413802501683931.
const r0Lo uint64 = 0xE0AD37518B27BADB
const r0Hi uint64 = 0x62F36CF0ABF873AC

var groupOrder = [4]uint64{
	0x1F52C8AE74D84525,
	0x9D0C930F54078C53,
	0xFFFFFFFFFFFFFFFF,
	0x3FFFFFFFFFFFFFFF,
}

// Given input 'a' (up to 2^258-1), perform a partial reduction modulo r;
// output (into 'd') fits on 255 bits and is (much) lower than 2*r. The
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

	// 2^254 = r0 mod r
	d[0], cc = bits.Add64(a[0], u0, 0)
	d[1], cc = bits.Add64(a[1], u1, cc)
	d[2], cc = bits.Add64(a[2], u2, cc)
	d[3] = (a[3] & 0x3FFFFFFFFFFFFFFF) + cc
}

// Partial reduction ensures that the output fits on 255 bits and is
// less than 2*r.
func modrReduce256Partial(d, a *[4]uint64) {
	modrReduce256PartialWithExtra(d, a, 0)
}

// Given a partially reduced input 'a' (less than 2*r), finish reduction
// (conditional subtraction of r).
func modrReduce256Finish(d, a *[4]uint64) {
	// Subtracting r is equivalent to adding r0, and subtracting
	// 2^254.
	var t [4]uint64
	var cc uint64
	t[0], cc = bits.Add64(a[0], r0Lo, 0)
	t[1], cc = bits.Add64(a[1], r0Hi, cc)
	t[2], cc = bits.Add64(a[2], 0, cc)
	t[3], cc = bits.Add64(a[3], 0, cc)
	t[3] -= 0x4000000000000000

	// Since the result fits on 255 bits, the top bit is a sign bit,
	// which we use to decide whether we use t[] or a[] as result.
	m := -(t[3] >> 63)
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
	// Multiply the high third (a4:a5) by r0 into tw.
	var t1, t2 [2]uint64
	var tw [4]uint64
	t1[0] = r0Lo
	t1[1] = r0Hi
	t2[0] = a[4]
	t2[1] = a[5]
	scalar.Mul128x128(&tw, &t1, &t2)

	// Compute 4*tw and add to the low part of 'a'.
	// Since 4*r0 =~ 2^128.63, the result fits on 258 bits.
	var th uint64
	th = tw[3] >> 62
	tw[3] = (tw[3] << 2) | (tw[2] >> 62)
	tw[2] = (tw[2] << 2) | (tw[1] >> 62)
	tw[1] = (tw[1] << 2) | (tw[0] >> 62)
	tw[0] = tw[0] << 2
	var cc uint64
	tw[0], cc = bits.Add64(tw[0], a[0], 0)
	tw[1], cc = bits.Add64(tw[1], a[1], cc)
	tw[2], cc = bits.Add64(tw[2], a[2], cc)
	tw[3], cc = bits.Add64(tw[3], a[3], cc)
	th += cc

	// Perform partial reduction.
	modrReduce256PartialWithExtra(d, &tw, th)
}
