package jq255e

import (
	"github.com/doubleodd/jq255/internal/scalar"
	"math/bits"
)

// GLV endomorphism splitting: writes a scalar k as k0 + k1*mu (mod r)
// for a fixed square root of -1 modulo r, with |k0|, |k1| bounded to
// 128 bits, so the constant-time multiplier can process both halves
// with half-width recodings and a single window over the point (and
// its endomorphism image).

// mulDivrRounded computes d = round(k*e / r) for a fully-reduced
// scalar k (0..r-1) and e < 2^127-2.
func mulDivrRounded(d *[2]uint64, k *[4]uint64, e *[2]uint64) {
	// z <- k*e
	var z [6]uint64
	scalar.Mul256x128(&z, k, e)

	// z <- z + (r-1)/2
	var cc uint64
	z[0], cc = bits.Add64(z[0], 0x8FA964573A6C2292, 0)
	z[1], cc = bits.Add64(z[1], 0xCE864987AA03C629, cc)
	z[2], cc = bits.Add64(z[2], 0xFFFFFFFFFFFFFFFF, cc)
	z[3], cc = bits.Add64(z[3], 0x1FFFFFFFFFFFFFFF, cc)
	z[4], cc = bits.Add64(z[4], 0, cc)
	z[5] += cc

	// y <- floor(z / 2^254) + 1
	var y [2]uint64
	y[0] = (z[3] >> 62) | (z[4] << 2)
	y[1] = (z[4] >> 62) | (z[5] << 2)
	y[0], cc = bits.Add64(y[0], 1, 0)
	y[1] += cc

	// t <- y*r0
	var r0 [2]uint64
	r0[0] = r0Lo
	r0[1] = r0Hi
	var t [4]uint64
	scalar.Mul128x128(&t, &y, &r0)

	// t <- t + z0
	// We are only interested in the high limb.
	z[3] &= 0x3FFFFFFFFFFFFFFF
	_, cc = bits.Add64(z[0], t[0], 0)
	_, cc = bits.Add64(z[1], t[1], cc)
	_, cc = bits.Add64(z[2], t[2], cc)
	th, _ := bits.Add64(z[3], t[3], cc)

	// The high limb is in th and it is lower than 2^63. If it
	// is lower than 2^62, then y is too large and we must
	// decrement it; otherwise, we keep it unchanged.
	d[0], cc = bits.Sub64(y[0], 1-(th>>62), 0)
	d[1] = y[1] - cc
}

// Lattice basis vectors for the splitting reduction.
var latticeU = [2]uint64{0x2ACCF9DEC93F6111, 0x1A509F7A53C2C6E6}
var latticeV = [2]uint64{0x0B7A31305466F77E, 0x7D440C6AFFBB3A93}

// SplitMu splits scalar k (256 bits) into k0 and k1 (128 bits each,
// signed), such that k = k0 + k1*mu mod r, where mu is a square root
// of -1 modulo r.
func (k *Scalar) SplitMu(k0, k1 *[2]uint64) {
	// Ensure that k is fully reduced modulo r.
	var t [4]uint64
	modrReduce256(&t, (*[4]uint64)(k))

	// c = round(k*v / r)
	// d = round(k*u / r)
	var c, d [2]uint64
	mulDivrRounded(&c, &t, &latticeV)
	mulDivrRounded(&d, &t, &latticeU)

	// k0 = k - d*u - c*v
	var y [2]uint64
	var cc uint64
	scalar.Mul128x128trunc(&y, &d, &latticeU)
	t[0], cc = bits.Sub64(t[0], y[0], 0)
	t[1], _ = bits.Sub64(t[1], y[1], cc)
	scalar.Mul128x128trunc(&y, &c, &latticeV)
	k0[0], cc = bits.Sub64(t[0], y[0], 0)
	k0[1], _ = bits.Sub64(t[1], y[1], cc)

	// k1 = d*v - c*u
	scalar.Mul128x128trunc(k1, &d, &latticeV)
	scalar.Mul128x128trunc(&y, &c, &latticeU)
	k1[0], cc = bits.Sub64(k1[0], y[0], 0)
	k1[1], _ = bits.Sub64(k1[1], y[1], cc)
}
