package jq255s

import (
	"testing"
)

func TestMulAddVartime(t *testing.T) {
	var rng prng
	rng.init("test MulAddVartime jq255s")
	for i := 0; i < 200; i++ {
		var n, k0 Scalar
		var k1 [2]uint64
		rng.mk256((*[4]uint64)(&n))
		rng.mk256((*[4]uint64)(&k0))
		rng.mk128(&k1)
		if i < 8 {
			if (i & 1) == 0 {
				n = Scalar{0, 0, 0, 0}
			}
			if (i & 2) == 0 {
				k0 = Scalar{0, 0, 0, 0}
			}
			if (i & 4) == 0 {
				k1 = [2]uint64{0, 0}
			}
		}
		k1Scalar := Scalar{k1[0], k1[1], 0, 0}

		var P, ref, M Point
		P.MulGen(&n)
		ref.MulGen(&k0)
		M.Mul(&P, &k1Scalar)
		ref.Add(&ref, &M)

		var got Point
		got.MulAddVartime(&P, &k0, &k1)
		if got.Equal(&ref) != 1 {
			t.Fatalf("MulAddVartime mismatch at iteration %d", i)
		}

		if !P.VerifyHelperVartime(&k0, &k1Scalar, ref.Encode(nil)) {
			t.Fatalf("VerifyHelperVartime failed to confirm matching R at iteration %d", i)
		}
		var bogus Point
		bogus.Generator()
		bogus.Add(&bogus, &ref)
		if P.VerifyHelperVartime(&k0, &k1Scalar, bogus.Encode(nil)) {
			t.Fatalf("VerifyHelperVartime accepted a mismatching R at iteration %d", i)
		}
	}
}

func TestMapBytesDeterministic(t *testing.T) {
	var rng prng
	rng.init("test MapBytes jq255s")
	for i := 0; i < 100; i++ {
		var bb [48]byte
		rng.generate(bb[:])
		var P1, P2 Point
		P1.MapBytes(bb[:])
		P2.MapBytes(bb[:])
		if P1.Equal(&P2) != 1 {
			t.Fatalf("MapBytes is not deterministic at iteration %d", i)
		}
		if P1.IsNeutral() == 0 {
			var enc [32]byte
			P1.Encode(enc[:0])
			var Q Point
			if Q.Decode(enc[:]) != 1 {
				t.Fatalf("MapBytes produced a point that fails to re-decode at iteration %d", i)
			}
		}
	}
}
