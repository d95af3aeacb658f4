package jq255s

import (
	"bytes"
	"testing"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	sk := PrivateKeyFromSeed([]byte("test-seed-0"))
	pk := sk.Public()

	msg := []byte("hello")
	sig, err := sk.Sign(nil, "", msg)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if len(sig) != 48 {
		t.Fatalf("signature has length %d, want 48", len(sig))
	}
	if !pk.VerifyVartime("", msg, sig) {
		t.Fatalf("signature does not verify")
	}

	bad := bytes.Clone(sig)
	bad[47] ^= 0xFF
	if pk.VerifyVartime("", msg, bad) {
		t.Fatalf("corrupted signature should not verify")
	}

	bad2 := bytes.Clone(sig)
	bad2[0] ^= 0x01
	if pk.VerifyVartime("", msg, bad2) {
		t.Fatalf("signature with corrupted challenge should not verify")
	}

	if pk.VerifyVartime("", []byte("goodbye"), sig) {
		t.Fatalf("signature should not verify against a different message")
	}
}

func TestSignDeterministic(t *testing.T) {
	sk := PrivateKeyFromSeed([]byte("test-seed-0"))
	msg := []byte("hello")
	sig1, _ := sk.Sign(nil, "", msg)
	sig2, _ := sk.Sign(nil, "", msg)
	if !bytes.Equal(sig1, sig2) {
		t.Fatalf("deterministic signatures (empty seed) differ")
	}

	sig3, _ := sk.Sign(nil, "sha256", []byte("deadbeef"))
	if bytes.Equal(sig1, sig3) {
		t.Fatalf("signatures over different domains collided")
	}
}

func TestMulGenScalarOne(t *testing.T) {
	var one Scalar
	one[0] = 1
	var P Point
	P.MulGen(&one)
	enc := P.Encode(nil)
	want := make([]byte, 32)
	want[0] = 3
	if !bytes.Equal(enc, want) {
		t.Fatalf("mulgen(1) encoded to %x, want %x", enc, want)
	}
}

func TestDoublingMatchesAdd(t *testing.T) {
	var two Scalar
	two[0] = 2
	var Pd, Pa, G Point
	G.Generator()
	Pd.MulGen(&two)
	Pa.Add(&G, &G)
	if Pd.Equal(&Pa) != 1 {
		t.Fatalf("mulgen(2) != add(G, G)")
	}
}

func TestECDHSymmetry(t *testing.T) {
	a := PrivateKeyFromSeed([]byte("alice"))
	b := PrivateKeyFromSeed([]byte("bob"))
	apk := a.Public()
	bpk := b.Public()

	s1, ok1 := ECDH(a, bpk.Encode(nil))
	s2, ok2 := ECDH(b, apk.Encode(nil))
	if !ok1 || !ok2 {
		t.Fatalf("ECDH reported failure for valid peers")
	}
	if s1 != s2 {
		t.Fatalf("ECDH(A,B) != ECDH(B,A): %x vs %x", s1, s2)
	}
}

func TestECDHInvalidPeer(t *testing.T) {
	a := PrivateKeyFromSeed([]byte("alice"))
	var identity [32]byte // all-zero: the identity's encoding

	s, ok := ECDH(a, identity[:])
	if ok {
		t.Fatalf("ECDH with identity peer should report failure")
	}

	s2, ok2 := ECDH(a, identity[:])
	if ok2 || s != s2 {
		t.Fatalf("ECDH failure path is not deterministic")
	}

	b := PrivateKeyFromSeed([]byte("bob"))
	legit, _ := ECDH(a, b.Public().Encode(nil))
	if s == legit {
		t.Fatalf("ECDH failure output collided with a legitimate shared secret")
	}
}

func TestHashToCurveDeterministic(t *testing.T) {
	P1 := HashToCurve("", []byte("some input"))
	P2 := HashToCurve("", []byte("some input"))
	if P1.Equal(P2) != 1 {
		t.Fatalf("HashToCurve is not deterministic")
	}
	P3 := HashToCurve("", []byte("other input"))
	if P1.Equal(P3) == 1 {
		t.Fatalf("HashToCurve collided on different inputs")
	}
}

func TestIdentityDecodeAndUse(t *testing.T) {
	var zero [32]byte
	pk, err := DecodePublicKey(zero[:])
	if err != nil {
		t.Fatalf("decoding the identity should succeed: %v", err)
	}
	if !pk.IsIdentity() {
		t.Fatalf("decoded all-zero key should be the identity")
	}
	if pk.VerifyVartime("", []byte("x"), make([]byte, 48)) {
		t.Fatalf("verification against the identity key should fail")
	}
}
