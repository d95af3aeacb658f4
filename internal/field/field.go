package field

import (
	"encoding/binary"
	"math/bits"
)

// Arithmetic mod p = 2^255 - mq, for a small odd constant mq (mq < 2^15
// for every field this package exposes). Values are stored as four
// little-endian 64-bit limbs and are not necessarily kept in reduced
// form between operations; every function below accepts any input in
// the full 0..2^256-1 range and, unless noted, may alias its destination
// with either source operand. This is portable Go (no assembly); it is
// constant-time as long as the underlying 64x64->128 multiplication
// (math/bits.Mul64) is, which holds on essentially all current 64-bit
// targets.

// Internal function for field addition.
// Parameters:
//   d    destination
//   a    first operand
//   b    second operand
//   mq   modulus definition parameter
func fieldAdd(d, a, b *[4]uint64, mq uint64) {
	// First pass: sum over 256 bits + carry
	var cc uint64 = 0
	for i := 0; i < 4; i++ {
		d[i], cc = bits.Add64(a[i], b[i], cc)
	}

	// Second pass: if there is a carry, subtract 2*p = 2^256 - 2*mq;
	// i.e. we add 2*mq.
	d[0], cc = bits.Add64(d[0], (mq<<1)&-cc, 0)
	for i := 1; i < 4; i++ {
		d[i], cc = bits.Add64(d[i], 0, cc)
	}

	// If there is an extra carry, then this means that the initial
	// sum was at least 2^257 - 2*mq, in which case the current low
	// limb is necessarily lower than 2*mq, and adding 2*mq again
	// won't trigger an extra carry.
	d[0] += (mq << 1) & -cc
}

// Internal function for field subtraction.
// Parameters:
//   d    destination
//   a    first operand
//   b    second operand
//   mq   modulus definition parameter
func fieldSub(d, a, b *[4]uint64, mq uint64) {
	// First pass: difference over 256 bits + borrow
	var cc uint64 = 0
	for i := 0; i < 4; i++ {
		d[i], cc = bits.Sub64(a[i], b[i], cc)
	}

	// Second pass: if there is a borrow, add 2*p = 2^256 - 2*mq;
	// i.e. we subtract 2*mq.
	d[0], cc = bits.Sub64(d[0], (mq<<1)&-cc, 0)
	for i := 1; i < 4; i++ {
		d[i], cc = bits.Sub64(d[i], 0, cc)
	}

	// If there is an extra borrow, then this means that the
	// subtraction of 2*mq above triggered a borrow, and the first
	// limb is at least 2^64 - 2*mq; we can subtract 2*mq again without
	// triggering another borrow.
	d[0] -= (mq << 1) & -cc
}

// Internal function for field negation.
// Parameters:
//   d    destination
//   a    operand
//   mq   modulus definition parameter
func fieldNeg(d, a *[4]uint64, mq uint64) {
	// First pass: compute 2*p - a over 256 bits.
	var cc uint64
	d[0], cc = bits.Sub64(-(mq << 1), a[0], 0)
	for i := 1; i < 4; i++ {
		d[i], cc = bits.Sub64(0xFFFFFFFFFFFFFFFF, a[i], cc)
	}

	// Second pass: if there is a borrow, add back p = 2^255 - mq.
	var e uint64 = -cc
	d[0], cc = bits.Add64(d[0], e&-mq, 0)
	for i := 1; i < 3; i++ {
		d[i], cc = bits.Add64(d[i], e, cc)
	}
	d[3], _ = bits.Add64(d[3], e>>1, cc)
}

// Internal function for constant-time selection. Output d is set to
// the value of a if ctl == 1, or to the value of b if ctl == 0.
// ctl MUST be 0 or 1.
// Parameters:
//   d     destination
//   a     first source
//   b     second source
//   ctl   1 to use the first source, 0 for the second source
// ctl MUST be 0 or 1
func fieldSelect(d, a, b *[4]uint64, ctl uint64) {
	ma := -ctl
	mb := ^ma
	for i := 0; i < 4; i++ {
		d[i] = (a[i] & ma) | (b[i] & mb)
	}
}

// Conditional negation: if ctl == 1, then d is set to -a; otherwise,
// if ctl == 0, then d is set to a. ctl MUST be 0 or 1.
//   d     destination
//   a     operand
//   mq    modulus definition parameter
//   ctl   control parameter
func fieldCondNeg(d, a *[4]uint64, mq uint64, ctl uint64) {
	var t [4]uint64
	fieldNeg(&t, a, mq)
	fieldSelect(d, &t, a, ctl)
}

// Internal function for multiplication.
// Parameters:
//   d    destination
//   a    first operand
//   b    second operand
//   mq   modulus definition parameter
func fieldMul(d, a, b *[4]uint64, mq uint64) {
	var t [8]uint64
	var hi, lo, cc uint64

	// Step 1: multiply the two operands as plain integers, 512-bit
	// result goes to t[]. We have 16 products a[i]*b[j] to compute
	// and add at the right place; sequence below tries to do them
	// in an order that minimizes carry propagation steps.

	// a0*b0, a1*b1, a2*b2, a3*b3
	t[1], t[0] = bits.Mul64(a[0], b[0])
	t[3], t[2] = bits.Mul64(a[1], b[1])
	t[5], t[4] = bits.Mul64(a[2], b[2])
	t[7], t[6] = bits.Mul64(a[3], b[3])

	// a0*b1, a0*b3, a2*b3
	hi, lo = bits.Mul64(a[0], b[1])
	t[1], cc = bits.Add64(t[1], lo, 0)
	t[2], cc = bits.Add64(t[2], hi, cc)
	hi, lo = bits.Mul64(a[0], b[3])
	t[3], cc = bits.Add64(t[3], lo, cc)
	t[4], cc = bits.Add64(t[4], hi, cc)
	hi, lo = bits.Mul64(a[2], b[3])
	t[5], cc = bits.Add64(t[5], lo, cc)
	t[6], cc = bits.Add64(t[6], hi, cc)
	t[7] += cc

	// a1*b0, a3*b0, a3*b2
	hi, lo = bits.Mul64(a[1], b[0])
	t[1], cc = bits.Add64(t[1], lo, 0)
	t[2], cc = bits.Add64(t[2], hi, cc)
	hi, lo = bits.Mul64(a[3], b[0])
	t[3], cc = bits.Add64(t[3], lo, cc)
	t[4], cc = bits.Add64(t[4], hi, cc)
	hi, lo = bits.Mul64(a[3], b[2])
	t[5], cc = bits.Add64(t[5], lo, cc)
	t[6], cc = bits.Add64(t[6], hi, cc)
	t[7] += cc

	// a0*b2, a1*b3
	hi, lo = bits.Mul64(a[0], b[2])
	t[2], cc = bits.Add64(t[2], lo, 0)
	t[3], cc = bits.Add64(t[3], hi, cc)
	hi, lo = bits.Mul64(a[1], b[3])
	t[4], cc = bits.Add64(t[4], lo, cc)
	t[5], cc = bits.Add64(t[5], hi, cc)
	t[6], cc = bits.Add64(t[6], 0, cc)
	t[7] += cc

	// a2*b0, a3*b1
	hi, lo = bits.Mul64(a[2], b[0])
	t[2], cc = bits.Add64(t[2], lo, 0)
	t[3], cc = bits.Add64(t[3], hi, cc)
	hi, lo = bits.Mul64(a[3], b[1])
	t[4], cc = bits.Add64(t[4], lo, cc)
	t[5], cc = bits.Add64(t[5], hi, cc)
	t[6], cc = bits.Add64(t[6], 0, cc)
	t[7] += cc

	// a1*b2, a2*b1
	var x0, x1, x2 uint64
	x1, x0 = bits.Mul64(a[1], b[2])
	hi, lo = bits.Mul64(a[2], b[1])
	x0, cc = bits.Add64(x0, lo, 0)
	x1, x2 = bits.Add64(x1, hi, cc)
	t[3], cc = bits.Add64(t[3], x0, 0)
	t[4], cc = bits.Add64(t[4], x1, cc)
	t[5], cc = bits.Add64(t[5], x2, cc)
	t[6], cc = bits.Add64(t[6], 0, cc)
	t[7] += cc

	// Step 2: fold upper half into lower half, multiplied by 2*mq.
	// Each high word (t[4..7]) is multipied by 2*mq, yielding a
	// low half (64 bits, added into the low words t[0..3]) and a
	// high half (h0..h3, value at most 2*mq-1 < 2^16).

	var h0, h1, h2, h3 uint64
	h0, lo = bits.Mul64(t[4], mq<<1)
	t[0], cc = bits.Add64(t[0], lo, 0)
	h1, lo = bits.Mul64(t[5], mq<<1)
	t[1], cc = bits.Add64(t[1], lo, cc)
	h2, lo = bits.Mul64(t[6], mq<<1)
	t[2], cc = bits.Add64(t[2], lo, cc)
	h3, lo = bits.Mul64(t[7], mq<<1)
	t[3], cc = bits.Add64(t[3], lo, cc)
	h3 += cc

	// We must still add the upper words h0..h3 into the result, at
	// their proper place. h3 is to be folded again; we also include
	// bit 255 into h3 so that this step triggers no further carry.
	// Note that (2*h3+1)*mq <= 2*mq^2 < 2^31, hence we can do that
	// multiplication with the basic operator instead of Mul64().
	// Since this step produces the final output words, we can write
	// them into the destination directly.

	h3 = (h3 << 1) | (t[3] >> 63)
	t[3] &= 0x7FFFFFFFFFFFFFFF
	d[0], cc = bits.Add64(t[0], h3*mq, 0)
	d[1], cc = bits.Add64(t[1], h0, cc)
	d[2], cc = bits.Add64(t[2], h1, cc)
	d[3], cc = bits.Add64(t[3], h2, cc)
}

// Internal function for squaring.
// Parameters:
//   d    destination
//   a    operand
//   mq   modulus definition parameter
func fieldSqr(d, a *[4]uint64, mq uint64) {
	var t [8]uint64
	var hi, lo, cc uint64

	// Step 1: square the operand as a plain integer, 512-bit
	// result goes to t[]. Sequence below tries to do them
	// in an order that minimizes carry propagation steps.

	// First the non-square products:
	//   a0*a1, a0*a2, a0*a3, a1*a2, a1*a3, a2*a3
	// This partial sum is necessarily lower than 2^448, so there
	// is no carry to spill into t[7].
	t[2], t[1] = bits.Mul64(a[0], a[1])
	t[4], t[3] = bits.Mul64(a[0], a[3])
	t[6], t[5] = bits.Mul64(a[2], a[3])
	hi, lo = bits.Mul64(a[0], a[2])
	t[2], cc = bits.Add64(t[2], lo, 0)
	t[3], cc = bits.Add64(t[3], hi, cc)
	hi, lo = bits.Mul64(a[1], a[3])
	t[4], cc = bits.Add64(t[4], lo, cc)
	t[5], cc = bits.Add64(t[5], hi, cc)
	t[6] += cc
	hi, lo = bits.Mul64(a[1], a[2])
	t[3], cc = bits.Add64(t[3], lo, 0)
	t[4], cc = bits.Add64(t[4], hi, cc)
	t[5], cc = bits.Add64(t[5], 0, cc)
	t[6] += cc

	// Double the current sum.
	t[7] = t[6] >> 63
	t[6] = (t[6] << 1) | (t[5] >> 63)
	t[5] = (t[5] << 1) | (t[4] >> 63)
	t[4] = (t[4] << 1) | (t[3] >> 63)
	t[3] = (t[3] << 1) | (t[2] >> 63)
	t[2] = (t[2] << 1) | (t[1] >> 63)
	t[1] = t[1] << 1

	// Add the squares: a0*a0, a1*a1, a2*a2, a3*a3
	hi, t[0] = bits.Mul64(a[0], a[0])
	t[1], cc = bits.Add64(t[1], hi, 0)
	hi, lo = bits.Mul64(a[1], a[1])
	t[2], cc = bits.Add64(t[2], lo, cc)
	t[3], cc = bits.Add64(t[3], hi, cc)
	hi, lo = bits.Mul64(a[2], a[2])
	t[4], cc = bits.Add64(t[4], lo, cc)
	t[5], cc = bits.Add64(t[5], hi, cc)
	hi, lo = bits.Mul64(a[3], a[3])
	t[6], cc = bits.Add64(t[6], lo, cc)
	t[7], _ = bits.Add64(t[7], hi, cc)

	// Step 2: we now have the 512-bit result in t[0..7]. We apply
	// reduction modulo p. This is the same code as in fieldMul();
	// see the comments in that function.

	var h0, h1, h2, h3 uint64
	h0, lo = bits.Mul64(t[4], mq<<1)
	t[0], cc = bits.Add64(t[0], lo, 0)
	h1, lo = bits.Mul64(t[5], mq<<1)
	t[1], cc = bits.Add64(t[1], lo, cc)
	h2, lo = bits.Mul64(t[6], mq<<1)
	t[2], cc = bits.Add64(t[2], lo, cc)
	h3, lo = bits.Mul64(t[7], mq<<1)
	t[3], cc = bits.Add64(t[3], lo, cc)
	h3 += cc

	h3 = (h3 << 1) | (t[3] >> 63)
	t[3] &= 0x7FFFFFFFFFFFFFFF
	d[0], cc = bits.Add64(t[0], h3*mq, 0)
	d[1], cc = bits.Add64(t[1], h0, cc)
	d[2], cc = bits.Add64(t[2], h1, cc)
	d[3], cc = bits.Add64(t[3], h2, cc)
}

// Internal multiplication of multiple squarings: d = a^(2^n)
// Parameters:
//   d    destination
//   a    operand
//   n    number of squarings to perform
//   mq   modulus definition parameter
func fieldSqrX(d, a *[4]uint64, n uint, mq uint64) {
	if n == 0 {
		copy(d[:], a[:])
		return
	}
	fieldSqr(d, a, mq)
	for n -= 1; n != 0; n-- {
		fieldSqr(d, d, mq)
	}
}

// Internal function for halving (division by 2).
// Parameters:
//   d    destination
//   a    operand
//   mq   modulus definition parameter
func fieldHalf(d, a *[4]uint64, mq uint64) {
	// We right shift, and add (p+1)/2 = 2^254 - ((mq-1)/2) conditionally
	// on the least significant bit of the source.
	var e uint64 = -(a[0] & 1)
	var cc uint64
	d[0], cc = bits.Add64((a[0]>>1)|(a[1]<<63), e&-((mq-1)>>1), 0)
	for i := 1; i < 3; i++ {
		d[i], cc = bits.Add64((a[i]>>1)|(a[i+1]<<63), e, cc)
	}
	d[3], _ = bits.Add64(a[3]>>1, e>>2, cc)
}

// Internal function for left-shifting by some bits.
// Parameters:
//   d    destination
//   a    operand
//   n    shift count (at least 1, at most 15).
//   mq   modulus definition parameter
func fieldLsh(d, a *[4]uint64, n uint, mq uint64) {
	// First pass: left shift, extra bits in g.
	var g uint64 = a[0] >> (64 - n)
	d[0] = a[0] << n
	for i := 1; i < 4; i++ {
		w := a[i]
		d[i] = (w << n) | g
		g = w >> (64 - n)
	}

	// Second pass: reduction of extra bits (with the top bit of the
	// value).
	g = (g << 1) | (d[3] >> 63)
	var cc uint64
	d[0], cc = bits.Add64(d[0], g*mq, 0)
	for i := 1; i < 3; i++ {
		d[i], cc = bits.Add64(d[i], 0, cc)
	}
	d[3] = (d[3] & 0x7FFFFFFFFFFFFFFF) + cc
}

// Internal function for normalization. This function ensures that the
// output is in the 0..p-1 range. It is meant to be called prior to
// encoding, or for comparisons.
//   d    destination
//   a    operand
//   mq   modulus definition parameter
func fieldNormalize(d, a *[4]uint64, mq uint64) {
	// Fold the top bit to ensure a value of at most 2^255 + mq-1.
	var cc uint64
	d[0], cc = bits.Add64(a[0], mq&-(a[3]>>63), 0)
	for i := 1; i < 3; i++ {
		d[i], cc = bits.Add64(a[i], 0, cc)
	}
	d[3] = (a[3] & 0x7FFFFFFFFFFFFFFF) + cc

	// Subtract p.
	d[0], cc = bits.Sub64(d[0], -mq, 0)
	for i := 1; i < 3; i++ {
		d[i], cc = bits.Sub64(d[i], 0xFFFFFFFFFFFFFFFF, cc)
	}
	d[3], cc = bits.Sub64(d[3], 0x7FFFFFFFFFFFFFFF, cc)

	// If there is a borrow, add p back.
	var e uint64 = -cc
	d[0], cc = bits.Add64(d[0], e&-mq, 0)
	for i := 1; i < 3; i++ {
		d[i], cc = bits.Add64(d[i], e, cc)
	}
	d[3], cc = bits.Add64(d[3], e>>1, cc)
}

// Internal function for comparing a value with zero. This function
// returns 1 if the value is equal to 0 modulo p; otherwise, it returns 0.
//   a    operand
//   mq   modulus definition parameter
func fieldIsZero(a *[4]uint64, mq uint64) uint64 {
	// There are three possible representations for zero: 0, p and 2*p.
	t0 := a[0]
	t1 := a[0] + mq
	t2 := a[0] + (mq << 1)
	for i := 1; i < 3; i++ {
		t0 |= a[i]
		t1 |= ^a[i]
		t2 |= ^a[i]
	}
	t0 |= a[3]
	t1 |= a[3] ^ 0x7FFFFFFFFFFFFFFF
	t2 |= ^a[3]
	return 1 - (((t0 | -t0) & (t1 | -t1) & (t2 | -t2)) >> 63)
}

// Internal function for comparing two values. This function returns 1
// the values are equal modulo p, 0 otherwise.
//   a    first operand
//   b    second operand
//   mq   modulus definition parameter
func fieldEqual(a, b *[4]uint64, mq uint64) uint64 {
	var t [4]uint64
	fieldSub(&t, a, b, mq)
	return fieldIsZero(&t, mq)
}

// Internal function for encoding a field element into 32 bytes. The
// encoded element is appended to the specified slice; the new slice
// (with the appended data) is returned.
func fieldEncode(b []byte, a *[4]uint64, mq uint64) []byte {
	len1 := len(b)
	len2 := len1 + 32
	var b2 []byte
	if cap(b) >= len2 {
		b2 = b[:len2]
	} else {
		b2 = make([]byte, len2)
		copy(b2, b)
	}
	dst := b2[len1:]
	var t [4]uint64
	fieldNormalize(&t, a, mq)
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint64(dst[8*i:], t[i])
	}
	return b2
}

// Internal function for decoding a field element from 32 bytes. If the
// source is not in the valid range (0..p-1), then the destination is
// set to all zeros, and 0 is returned; otherwise, 1 is returned.
func fieldDecode(d *[4]uint64, src []byte, mq uint64) uint64 {
	for i := 0; i < 4; i++ {
		d[i] = binary.LittleEndian.Uint64(src[8*i:])
	}
	// Compare with the modulus. If there is a borrow (cc == 1),
	// then the value is correct; otherwise (cc == 0) it is out of
	// range and shall be cleared.
	_, cc := bits.Sub64(d[0], -mq, 0)
	_, cc = bits.Sub64(d[1], 0xFFFFFFFFFFFFFFFF, cc)
	_, cc = bits.Sub64(d[2], 0xFFFFFFFFFFFFFFFF, cc)
	_, cc = bits.Sub64(d[3], 0x7FFFFFFFFFFFFFFF, cc)
	for i := 0; i < 4; i++ {
		d[i] &= -cc
	}
	return cc
}

// Internal function for decoding a field element from bytes, with
// reduction. An arbitrary number of input bytes can be used. This
// process cannot fail.
func fieldDecodeReduce(d *[4]uint64, src []byte, mq uint64) {
	var t [8]uint64

	// Initialize the low half of t with the rightmost bytes; we use
	// j bytes such that len(src)-j is a multiple of 32.
	n := len(src)
	j := n & 31
	if j == 0 && n != 0 {
		j = 32
	}
	n -= j
	var buf [32]byte
	copy(buf[:], src[n:])
	for i := 0; i < 4; i++ {
		t[i] = binary.LittleEndian.Uint64(buf[8*i:])
	}

	// For all remaining chunks of 32 bytes (right-to-left order),
	// shift the current value, add the next chunk, and reduce.
	for n > 0 {
		n -= 32
		copy(t[4:], t[:4])
		for i := 0; i < 4; i++ {
			t[i] = binary.LittleEndian.Uint64(src[n+8*i:])
		}

		// Fold upper half into lower half, multiplied by 2*mq.
		// Each high word (t[4..7]) is multipied by 2*mq,
		// yielding a low half (64 bits, added into the low
		// words t[0..3]) and a high half (h0..h3, value at most
		// 2*mq-1 < 2^16).
		var h0, h1, h2, h3 uint64
		var lo, cc uint64
		h0, lo = bits.Mul64(t[4], mq<<1)
		t[0], cc = bits.Add64(t[0], lo, 0)
		h1, lo = bits.Mul64(t[5], mq<<1)
		t[1], cc = bits.Add64(t[1], lo, cc)
		h2, lo = bits.Mul64(t[6], mq<<1)
		t[2], cc = bits.Add64(t[2], lo, cc)
		h3, lo = bits.Mul64(t[7], mq<<1)
		t[3], cc = bits.Add64(t[3], lo, cc)
		h3 += cc

		// We must still add the upper words h0..h3 into the
		// result, at their proper place. h3 is to be folded
		// again; we also include bit 255 into h3 so that this
		// step triggers no further carry. Note that
		// (2*h3+1)*mq <= 2*mq^2 < 2^31, hence we can do that
		// multiplication with the basic operator instead of
		// Mul64(). Since this step produces the final output
		// words, we can write them into the destination
		// directly.
		h3 = (h3 << 1) | (t[3] >> 63)
		t[3] &= 0x7FFFFFFFFFFFFFFF
		t[0], cc = bits.Add64(t[0], h3*mq, 0)
		t[1], cc = bits.Add64(t[1], h0, cc)
		t[2], cc = bits.Add64(t[2], h1, cc)
		t[3], cc = bits.Add64(t[3], h2, cc)
	}

	// Copy the result.
	copy(d[:], t[:4])
}
