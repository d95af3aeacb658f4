package jq255e

import "testing"

func TestScalarSelect(t *testing.T) {
	var rng prng
	rng.init("test scalar select")
	for i := 0; i < 100; i++ {
		var bufA, bufB [32]byte
		rng.generate(bufA[:])
		rng.generate(bufB[:])
		var a, b Scalar
		a.DecodeReduce(bufA[:])
		b.DecodeReduce(bufB[:])

		var r Scalar
		r.Select(&a, &b, 1)
		if r.Equal(&a) != 1 {
			t.Fatalf("Select(a, b, 1) did not yield a")
		}
		r.Select(&a, &b, 0)
		if r.Equal(&b) != 1 {
			t.Fatalf("Select(a, b, 0) did not yield b")
		}
	}
}
