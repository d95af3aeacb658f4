package scalar

import (
	"crypto/sha512"
	"encoding/binary"
	"math/big"
	"testing"
)

// Small deterministic byte generator, seeded from a string, used only
// so that test failures are reproducible.
type prng struct {
	buf [64]byte
	ptr int
}

func (p *prng) init(seed string) {
	hv := sha512.Sum512([]byte(seed))
	copy(p.buf[:], hv[:])
	p.ptr = 0
}

func (p *prng) generate(d []byte) {
	n := len(d)
	for n > 0 {
		c := 32 - p.ptr
		if c == 0 {
			hv := sha512.Sum512(p.buf[:])
			copy(p.buf[:], hv[:])
			p.ptr = 0
			c = 32
		}
		if c > n {
			c = n
		}
		copy(d, p.buf[p.ptr:p.ptr+c])
		d = d[c:]
		n -= c
		p.ptr += c
	}
}

func (p *prng) limbs(n int) []uint64 {
	buf := make([]byte, 8*n)
	p.generate(buf)
	out := make([]uint64, n)
	for i := 0; i < n; i++ {
		out[i] = binary.LittleEndian.Uint64(buf[8*i:])
	}
	return out
}

// checkWNAF verifies the three invariants a width-5 wNAF recoding must
// satisfy: the digits reconstruct the source value, every nonzero
// digit is odd and bounded by 15 in absolute value, and any two
// nonzero digits are at least five positions apart (at least four
// zero digits between them).
func checkWNAF(t *testing.T, x []uint64, dst []int8) {
	t.Helper()

	want := new(big.Int)
	for i := len(x) - 1; i >= 0; i-- {
		want.Lsh(want, 64)
		want.Or(want, new(big.Int).SetUint64(x[i]))
	}

	got := new(big.Int)
	lastNonzero := -100
	for i, d := range dst {
		if d == 0 {
			continue
		}
		if d%2 == 0 || d > 15 || d < -15 {
			t.Fatalf("digit %d at position %d is not a valid wNAF digit", d, i)
		}
		if i-lastNonzero < 5 && lastNonzero >= 0 {
			t.Fatalf("nonzero digits at %d and %d are closer than 5 apart", lastNonzero, i)
		}
		lastNonzero = i
		term := new(big.Int).Lsh(big.NewInt(int64(d)), uint(i))
		got.Add(got, term)
	}

	if got.Cmp(want) != 0 {
		t.Fatalf("wNAF digits do not reconstruct source value:\n got  %x\n want %x", got, want)
	}
}

func TestRecodeWNAF128(t *testing.T) {
	var rng prng
	rng.init("test RecodeWNAF 128-bit")
	for i := 0; i < 200; i++ {
		x := rng.limbs(2)
		if i < 4 {
			x[i&1] = 0
		}
		var dst [130]int8
		RecodeWNAF(dst[:], x)
		checkWNAF(t, x, dst[:])
	}
}

func TestRecodeWNAF256(t *testing.T) {
	var rng prng
	rng.init("test RecodeWNAF 256-bit")
	for i := 0; i < 200; i++ {
		x := rng.limbs(4)
		if i < 4 {
			x[i] = 0
		}
		// A 256-bit value can need a digit at position 256.
		var dst [257]int8
		RecodeWNAF(dst[:], x)
		checkWNAF(t, x, dst[:])
	}
}

func TestRecodeWNAFZero(t *testing.T) {
	x := []uint64{0, 0}
	var dst [130]int8
	RecodeWNAF(dst[:], x)
	for i, d := range dst {
		if d != 0 {
			t.Fatalf("expected all-zero digits for a zero input, got nonzero at %d", i)
		}
	}
}
