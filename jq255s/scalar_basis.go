package jq255s

import (
	"math/bits"

	"github.com/doubleodd/jq255/internal/scalar"
)

// Runtime lattice-basis reduction, jq255s's substitute for a fixed GLV
// split (jq255s has no efficient curve endomorphism to split against).
// ReduceBasisVartime finds a short vector in the lattice {(x,y) : x + y*k
// = 0 mod r} by a variant of Gaussian lattice reduction on 512-bit
// squared norms; everything here runs in variable time and must never
// touch secret scalars directly (only already-public verification
// challenges), which is why it lives apart from the constant-time
// arithmetic in scalar.go and scalar_reduce.go.

// cmp512ltVartime reports whether the 512-bit nonnegative integer a is
// strictly less than b.
func cmp512ltVartime(a, b *[8]uint64) bool {
	for i := 7; i >= 0; i-- {
		if a[i] < b[i] {
			return true
		}
		if a[i] > b[i] {
			return false
		}
	}
	return false
}

// bitlength512Vartime returns the bit length of a 512-bit signed integer
// held in two's-complement form.
func bitlength512Vartime(a *[8]uint64) int {
	m := -(a[7] >> 63)
	for i := 7; i >= 0; i-- {
		aw := a[i] ^ m
		if aw != 0 {
			return (i << 6) + 64 - bits.LeadingZeros64(aw)
		}
	}
	return 0
}

// addLshift192Vartime adds a*2^s to d, in place.
func addLshift192Vartime(d, a *[3]uint64, s int) {
	if s < 64 {
		if s == 0 {
			var cc uint64
			d[0], cc = bits.Add64(d[0], a[0], 0)
			d[1], cc = bits.Add64(d[1], a[1], cc)
			d[2], _ = bits.Add64(d[2], a[2], cc)
		} else {
			var t [3]uint64
			t[0] = a[0] << uint(s)
			t[1] = (a[1] << uint(s)) | (a[0] >> uint(64-s))
			t[2] = (a[2] << uint(s)) | (a[1] >> uint(64-s))
			var cc uint64
			d[0], cc = bits.Add64(d[0], t[0], 0)
			d[1], cc = bits.Add64(d[1], t[1], cc)
			d[2], _ = bits.Add64(d[2], t[2], cc)
		}
	} else {
		if s >= 192 {
			return
		}
		if (s & 63) == 0 {
			if s == 64 {
				var cc uint64
				d[1], cc = bits.Add64(d[1], a[0], 0)
				d[2], _ = bits.Add64(d[2], a[1], cc)
			} else { // s == 128
				d[2] += a[0]
			}
			return
		}
		if s < 128 {
			a0 := a[0] << uint(s-64)
			a1 := (a[1] << uint(s-64)) | (a[0] >> uint(128-s))
			var cc uint64
			d[1], cc = bits.Add64(d[1], a0, 0)
			d[2], _ = bits.Add64(d[2], a1, cc)
		} else {
			d[2] += a[0] << uint(s-128)
		}
	}
}

// subLshift192Vartime subtracts a*2^s from d, in place.
func subLshift192Vartime(d, a *[3]uint64, s int) {
	if s < 64 {
		if s == 0 {
			var cc uint64
			d[0], cc = bits.Sub64(d[0], a[0], 0)
			d[1], cc = bits.Sub64(d[1], a[1], cc)
			d[2], _ = bits.Sub64(d[2], a[2], cc)
		} else {
			var t [3]uint64
			t[0] = a[0] << uint(s)
			t[1] = (a[1] << uint(s)) | (a[0] >> uint(64-s))
			t[2] = (a[2] << uint(s)) | (a[1] >> uint(64-s))
			var cc uint64
			d[0], cc = bits.Sub64(d[0], t[0], 0)
			d[1], cc = bits.Sub64(d[1], t[1], cc)
			d[2], _ = bits.Sub64(d[2], t[2], cc)
		}
	} else {
		if s >= 192 {
			return
		}
		if (s & 63) == 0 {
			if s == 64 {
				var cc uint64
				d[1], cc = bits.Sub64(d[1], a[0], 0)
				d[2], _ = bits.Sub64(d[2], a[1], cc)
			} else { // s == 128
				d[2] -= a[0]
			}
			return
		}
		if s < 128 {
			a0 := a[0] << uint(s-64)
			a1 := (a[1] << uint(s-64)) | (a[0] >> uint(128-s))
			var cc uint64
			d[1], cc = bits.Sub64(d[1], a0, 0)
			d[2], _ = bits.Sub64(d[2], a1, cc)
		} else {
			d[2] -= a[0] << uint(s-128)
		}
	}
}

// addLshift512Vartime adds a*2^s to d, in place.
func addLshift512Vartime(d, a *[8]uint64, s int) {
	if s < 64 {
		if s == 0 {
			var cc uint64 = 0
			for i := 0; i < 8; i++ {
				d[i], cc = bits.Add64(d[i], a[i], cc)
			}
		} else {
			var t [8]uint64
			t[0] = a[0] << uint(s)
			for i := 1; i < 8; i++ {
				t[i] = (a[i] << uint(s)) | (a[i-1] >> uint(64-s))
			}
			var cc uint64 = 0
			for i := 0; i < 8; i++ {
				d[i], cc = bits.Add64(d[i], t[i], cc)
			}
		}
		return
	}
	if s >= 512 {
		return
	}
	j := s >> 6
	s &= 63
	var t [8]uint64
	if s == 0 {
		for i := j; i < 8; i++ {
			t[i] = a[i-j]
		}
	} else {
		t[j] = a[0] << uint(s)
		for i := j + 1; i < 8; i++ {
			t[i] = (a[i-j] << uint(s)) | (a[i-j-1] >> uint(64-s))
		}
	}
	var cc uint64 = 0
	for i := j; i < 8; i++ {
		d[i], cc = bits.Add64(d[i], t[i], cc)
	}
}

// subLshift512Vartime subtracts a*2^s from d, in place.
func subLshift512Vartime(d, a *[8]uint64, s int) {
	if s < 64 {
		if s == 0 {
			var cc uint64 = 0
			for i := 0; i < 8; i++ {
				d[i], cc = bits.Sub64(d[i], a[i], cc)
			}
		} else {
			var t [8]uint64
			t[0] = a[0] << uint(s)
			for i := 1; i < 8; i++ {
				t[i] = (a[i] << uint(s)) | (a[i-1] >> uint(64-s))
			}
			var cc uint64 = 0
			for i := 0; i < 8; i++ {
				d[i], cc = bits.Sub64(d[i], t[i], cc)
			}
		}
		return
	}
	if s >= 512 {
		return
	}
	j := s >> 6
	s &= 63
	var t [8]uint64
	if s == 0 {
		for i := j; i < 8; i++ {
			t[i] = a[i-j]
		}
	} else {
		t[j] = a[0] << uint(s)
		for i := j + 1; i < 8; i++ {
			t[i] = (a[i-j] << uint(s)) | (a[i-j-1] >> uint(64-s))
		}
	}
	var cc uint64 = 0
	for i := j; i < 8; i++ {
		d[i], cc = bits.Sub64(d[i], t[i], cc)
	}
}

// swapBasisVectors exchanges the two running lattice vectors (u0,u1) and
// (v0,v1) along with their squared norms, used at the top of each
// reduction round when v has become the shorter vector.
func swapBasisVectors(u0, u1, v0, v1 *[3]uint64, nu, nv *[8]uint64) {
	*u0, *v0 = *v0, *u0
	*u1, *v1 = *v1, *u1
	*nu, *nv = *nv, *nu
}

// signedOutVartime converts a 3-limb value known to fit in 128 bits,
// possibly represented with a nonzero top limb standing for "negative",
// into an absolute-value pair plus its sign.
func signedOutVartime(v *[3]uint64) (out [2]uint64, neg bool) {
	if v[2] == 0 {
		out[0], out[1] = v[0], v[1]
		return out, false
	}
	var cc uint64
	out[0], cc = bits.Sub64(0, v[0], 0)
	out[1], _ = bits.Sub64(0, v[1], cc)
	return out, true
}

// ReduceBasisVartime splits the (public) scalar k into shorter integers
// c0 and c1 such that k = c0/c1 mod r, with |c0| < 2^128 and |c1| <
// 2^128, using Gaussian reduction of the lattice spanned by (r,0) and
// (k,1). Signs of c0 and c1 are returned separately from their absolute
// values, in c0 and c1.
//
// THIS FUNCTION IS NOT CONSTANT-TIME and must only be applied to scalars
// with no confidentiality requirement (verification challenges).
func (k *Scalar) ReduceBasisVartime(c0, c1 *[2]uint64) (negc0 bool, negc1 bool) {
	// Algorithm from https://eprint.iacr.org/2020/454 : starting from
	// the basis {(r,0), (k,1)} of the lattice {(x,y): x+y*k = 0 mod r},
	// repeatedly reduce the longer vector against the shorter one using
	// their inner product sp, until the shorter vector's squared norm
	// fits in 255 bits.
	var vk [4]uint64
	modrReduce256(&vk, (*[4]uint64)(k))

	var u0, u1 [3]uint64
	copy(u0[:], groupOrder[:])

	var v0, v1 [3]uint64
	copy(v0[:], vk[:])
	v1[0] = 1

	var nu [8]uint64
	copy(nu[:], orderSquared[:])

	var nv [8]uint64
	scalar.Mul256x256(&nv, &vk, &vk)
	var cc uint64 = 1
	for i := 0; i < 8; i++ {
		nv[i], cc = bits.Add64(nv[i], 0, cc)
	}

	var sp [8]uint64
	scalar.Mul256x256(&sp, &vk, &groupOrder)

	for {
		if cmp512ltVartime(&nu, &nv) {
			swapBasisVectors(&u0, &u1, &v0, &v1, &nu, &nv)
		}

		// v's squared norm can always be driven down to about
		// 1.075*r, comfortably under 2^255, so this terminates.
		if bitlength512Vartime(&nv) <= 255 {
			var neg0, neg1 bool
			*c0, neg0 = signedOutVartime(&v0)
			*c1, neg1 = signedOutVartime(&v1)
			return neg0, neg1
		}

		s := bitlength512Vartime(&sp) - bitlength512Vartime(&nv)
		s &= ^(s >> 31)

		if (sp[7] >> 63) == 0 {
			subLshift192Vartime(&u0, &v0, s)
			subLshift192Vartime(&u1, &v1, s)
			addLshift512Vartime(&nu, &nv, 2*s)
			subLshift512Vartime(&nu, &sp, s+1)
			subLshift512Vartime(&sp, &nv, s)
		} else {
			addLshift192Vartime(&u0, &v0, s)
			addLshift192Vartime(&u1, &v1, s)
			addLshift512Vartime(&nu, &nv, 2*s)
			addLshift512Vartime(&nu, &sp, s+1)
			addLshift512Vartime(&sp, &nv, s)
		}
	}
}
