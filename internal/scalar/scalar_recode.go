package scalar

import "math/bits"

// Signed digit recodings used by the multiplier layer: Recode5 and its
// small-integer variants feed the constant-time multiplies (fixed
// 5-bit digit width, so every digit is looked up regardless of value),
// while RecodeWNAF feeds the variable-time verification combined
// multiply (sparse, data-dependent digit placement).

// Recode5 expresses a into 52 signed digits in the -15..+16 range such
// that a = sum_{i=0}^{51} d[i]*2^(5*i). The top digit, d[51], is always
// nonnegative; if a < 2^255 it is 0 or 1. Each digit is packed into a
// byte as sign+magnitude: bits 0-4 hold the absolute value (0..16) and
// bit 7 is set for a negative digit (with the single exception that
// d[51] is never encoded as negative zero).
func Recode5(d *[52]byte, a *[4]uint64) {
	acc := a[0]
	accLen := 64
	j := 1
	var carry uint = 0
	for i := 0; i < 51; i++ {
		var b uint
		if accLen < 5 {
			next := a[j]
			j++
			b = uint(acc|(next<<uint(accLen))) & 31
			acc = next >> uint(5-accLen)
			accLen = 59 + accLen
		} else {
			b = uint(acc) & 31
			acc >>= 5
			accLen -= 5
		}
		b += carry
		m := (16 - b) >> 8
		b ^= m & (b ^ (160 - b))
		carry = m & 1
		d[i] = byte(b)
	}
	d[51] = byte(uint(acc) + carry)
}

// recode5Digits performs the shared bit-peeling loop behind Recode5Small
// and Recode5SmallSigned: t holds the bits not yet consumed (refilled
// from hi partway through), db carries the running Booth adjustment.
func recode5Digits(d []byte, t uint64, hi uint64) {
	var db uint64 = 0
	for i := 0; i < 12; i++ {
		b := (t & 0x1F) + db
		m := (16 - b) >> 8
		b ^= m & (b ^ (160 - b))
		db = m & 1
		d[i] = byte(b)
		t >>= 5
	}

	t |= hi << 4
	for i := 12; i < 24; i++ {
		b := (t & 0x1F) + db
		m := (16 - b) >> 8
		b ^= m & (b ^ (160 - b))
		db = m & 1
		d[i] = byte(b)
		t >>= 5
	}

	t = hi >> 56
	b := (t & 0x1F) + db
	m := (16 - b) >> 8
	b ^= m & (b ^ (160 - b))
	db = m & 1
	d[24] = byte(b)
	t >>= 5
	d[25] = byte(t + db)
}

// Recode5Small recodes a nonnegative 128-bit integer into 26 signed
// 5-bit digits (same encoding as Recode5). The top digit is always
// nonnegative.
func Recode5Small(d *[26]byte, k *[2]uint64) {
	recode5Digits(d[:], k[0], k[1])
}

// Recode5SmallSigned recodes the absolute value of a signed 128-bit
// integer the same way Recode5Small does, and returns the integer's
// original sign (1 for negative, 0 for zero or positive).
func Recode5SmallSigned(d *[26]byte, k *[2]uint64) uint64 {
	sign := k[1] >> 63
	x0, cc := bits.Add64(k[0]^-sign, sign, 0)
	x1 := (k[1] ^ -sign) + cc
	recode5Digits(d[:], x0, x1)
	return sign
}

// RecodeWNAF fills dst with the width-5 windowed non-adjacent form of
// the nonnegative integer held in x (little-endian 64-bit limbs).
// Every nonzero digit is odd and lies in the -15..+15 range; any two
// nonzero digits in dst are at least five positions apart (at least
// four digits equal to zero between them). A variable-time combined-multiply loop can use this
// property to skip a doubling step whenever the current digit window
// is all-zero.
//
// len(dst) may exceed the bit length of x; the extra high-order
// digits are then zero. This function is used only for variable-time
// combined multiplication during signature verification, on public
// values, so it makes no attempt at constant-time execution.
func RecodeWNAF(dst []int8, x []uint64) {
	// A local copy is mutated in place as each digit is peeled off;
	// one extra limb of headroom absorbs the carry from subtracting a
	// negative-signed digit near the top of x.
	work := make([]uint64, len(x)+1)
	copy(work, x)

	bitAt := func(i int) uint64 {
		limb := i >> 6
		if limb >= len(work) {
			return 0
		}
		return (work[limb] >> uint(i&63)) & 1
	}

	// subShifted removes v*2^i from work, where v is odd and
	// |v| <= 15; it is added back instead when v is negative.
	subShifted := func(i int, v int64) {
		neg := v < 0
		m := uint64(v)
		if neg {
			m = uint64(-v)
		}
		limb := i >> 6
		sh := uint(i & 63)
		lo := m << sh
		var hi uint64
		if sh != 0 {
			hi = m >> (64 - sh)
		}
		if !neg {
			var bw uint64
			work[limb], bw = bits.Sub64(work[limb], lo, 0)
			if limb+1 < len(work) {
				work[limb+1], bw = bits.Sub64(work[limb+1], hi, bw)
			}
			for k := limb + 2; bw != 0 && k < len(work); k++ {
				work[k], bw = bits.Sub64(work[k], 0, bw)
			}
		} else {
			var cy uint64
			work[limb], cy = bits.Add64(work[limb], lo, 0)
			if limb+1 < len(work) {
				work[limb+1], cy = bits.Add64(work[limb+1], hi, cy)
			}
			for k := limb + 2; cy != 0 && k < len(work); k++ {
				work[k], cy = bits.Add64(work[k], 0, cy)
			}
		}
	}

	for i := 0; i < len(dst); i++ {
		if bitAt(i) == 0 {
			dst[i] = 0
			continue
		}
		var w int64
		for j := 0; j < 5; j++ {
			w |= int64(bitAt(i+j)) << uint(j)
		}
		if w >= 16 {
			w -= 32
		}
		dst[i] = int8(w)
		subShifted(i, w)
	}
}
