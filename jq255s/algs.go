package jq255s

import (
	"crypto"
	cryptorand "crypto/rand"
	"encoding/binary"
	"errors"
	"io"

	"golang.org/x/crypto/blake2s"
)

// This file implements the scheme layer over jq255s:
//
//   - Key pair generation
//   - Key exchange (ECDH)
//   - Signature generation and verification
//   - Hash-to-curve
//
// The hash collaborator throughout is BLAKE2s (golang.org/x/crypto/blake2s),
// used with its default 32-byte output and no key.

// Domain-separation bytes, applied to signing, verification and
// hash-to-curve: 0x52 tags a raw message, 0x48 tags a message that
// was pre-hashed by the caller (followed by the null-terminated hash
// name). ECDH uses its own pair, 0x53 (success) and 0x46 (failure).
const (
	domainRaw     byte = 0x52
	domainHashed  byte = 0x48
	domainECDHOK  byte = 0x53
	domainECDHBad byte = 0x46
)

// A private key structure contains a private key, i.e. a non-zero
// scalar for jq255s. For efficiency reasons, it internally caches a
// copy of the public key as well.
type PrivateKey struct {
	d    Scalar
	pub  Point
	epub [32]byte
}

// A public key structure contains a non-neutral group element, along
// with its encoding (kept so that re-encoding is free).
type PublicKey struct {
	pub  Point
	epub [32]byte
}

// Test whether a public key is equal to another.
func (pk PublicKey) Equal(other crypto.PublicKey) bool {
	pk2, ok := other.(PublicKey)
	if !ok {
		return false
	}
	var t byte = 0
	for i := 0; i < 32; i++ {
		t |= pk.epub[i] ^ pk2.epub[i]
	}
	return t == 0
}

// Report whether the public key decodes to the neutral (identity)
// element. Identity is a syntactically valid point encoding, but it
// is never an acceptable signer or ECDH peer.
func (pk *PublicKey) IsIdentity() bool {
	return pk.pub.IsNeutral() != 0
}

// Decode a private key from bytes. This function expects exactly
// 32 bytes. If the provided slice does not have length exactly 32,
// or if what it contains is not the canonical encoding of a valid
// non-zero scalar for jq255s, then this function returns nil and an
// error.
func DecodePrivateKey(src []byte) (*PrivateKey, error) {
	if len(src) != 32 {
		return nil, errors.New("jq255s: invalid private key")
	}
	sk := new(PrivateKey)
	if sk.d.Decode(src) != 1 {
		return nil, errors.New("jq255s: invalid private key")
	}
	sk.pub.MulGen(&sk.d)
	sk.pub.Encode(sk.epub[:0])
	return sk, nil
}

// Encode a private key into bytes. The private key (exactly 32 bytes)
// is appended to the provided slice. If 'dst' has enough capacity, then
// it is returned; otherwise, a new slice is allocated, and receives
// the concatenation of the current contents of 'dst' and the encoded
// private key.
func (sk *PrivateKey) Encode(dst []byte) []byte {
	return sk.d.Encode(dst)
}

// Get the public key corresponding to a given private key.
func (sk *PrivateKey) Public() *PublicKey {
	pk := new(PublicKey)
	pk.pub.Set(&sk.pub)
	copy(pk.epub[:], sk.epub[:])
	return pk
}

// Decode a public key from bytes. This function expects exactly
// 32 bytes. If the provided slice does not have length exactly 32,
// or if what it contains is not the canonical encoding of a valid
// jq255s element, then this function returns nil and an error. The
// all-zero encoding (identity) decodes successfully; callers relying
// on the key for sign/verify/ECDH should check IsIdentity.
func DecodePublicKey(src []byte) (*PublicKey, error) {
	if len(src) != 32 {
		return nil, errors.New("jq255s: invalid public key")
	}
	pk := new(PublicKey)
	if pk.pub.Decode(src) < 0 {
		return nil, errors.New("jq255s: invalid public key")
	}
	copy(pk.epub[:], src)
	return pk, nil
}

// Encode a public key into bytes. The public key (exactly 32 bytes)
// is appended to the provided slice. If 'dst' has enough capacity, then
// it is returned; otherwise, a new slice is allocated, and receives
// the concatenation of the current contents of 'dst' and the encoded
// public key.
func (pk *PublicKey) Encode(dst []byte) []byte {
	n := len(dst)
	n2 := n + 32
	var dst2 []byte
	if cap(dst) >= n2 {
		dst2 = dst[:n2]
	} else {
		dst2 = make([]byte, n2)
		copy(dst2, dst)
	}
	copy(dst2[n:], pk.epub[:])
	return dst2
}

// Derive a private key directly from seed bytes, by scalar-decode-
// reducing them (no hash pass). This is the literal
// scalar_decode_reduce(seed) construction used by test fixtures and
// other callers that already hold a uniformly-random or
// deterministically-agreed scalar seed; GenerateKeyPair, below, is the
// hash-then-reduce pipeline meant for fresh CSPRNG output.
func PrivateKeyFromSeed(seed []byte) *PrivateKey {
	sk := new(PrivateKey)
	sk.d.DecodeReduce(seed)
	if sk.d.IsZero() != 0 {
		sk.d = Scalar{1, 0, 0, 0}
	}
	sk.pub.MulGen(&sk.d)
	sk.pub.Encode(sk.epub[:0])
	return sk
}

// Key pair generation with jq255s: from a random source 'rand', a
// seed of 32 bytes is read and hashed (BLAKE2s) into a 32-byte value,
// which is then scalar-decode-reduced into the private key (the zero
// scalar, which cannot occur except by a negligible-probability
// coincidence, is replaced by 1). The random source MUST be
// cryptographically secure. If 'rand' is nil, then crypto/rand.Reader
// is used (this is the recommended way).
func GenerateKeyPair(rand io.Reader) (*PrivateKey, error) {
	if rand == nil {
		rand = cryptorand.Reader
	}
	var seed [32]byte
	if _, err := io.ReadFull(rand, seed[:]); err != nil {
		return nil, err
	}
	h, _ := blake2s.New256(nil)
	h.Write(seed[:])
	hv := h.Sum(nil)
	sk := new(PrivateKey)
	sk.d.DecodeReduce(hv)
	if sk.d.IsZero() != 0 {
		sk.d = Scalar{1, 0, 0, 0}
	}
	sk.pub.MulGen(&sk.d)
	sk.pub.Encode(sk.epub[:0])
	return sk, nil
}

// Write the domain-separation tag for a signing/verification/hash-to-
// curve operation: 0x52 alone for raw messages, or 0x48 followed by
// the null-terminated hash name for pre-hashed messages.
func writeDomain(h io.Writer, hashName string) {
	if hashName == "" {
		h.Write([]byte{domainRaw})
	} else {
		h.Write([]byte{domainHashed})
		io.WriteString(h, hashName)
		h.Write([]byte{0x00})
	}
}

// Compute the 16-byte signature challenge over (Renc, Qenc, domain,
// hv).
func challenge(Renc, Qenc []byte, hashName string, hv []byte) (c [16]byte) {
	h, _ := blake2s.New256(nil)
	h.Write(Renc)
	h.Write(Qenc)
	writeDomain(h, hashName)
	h.Write(hv)
	sum := h.Sum(nil)
	copy(c[:], sum[:16])
	return
}

// Decode a 16-byte little-endian challenge into the low two limbs of
// a scalar (a 128-bit value is always already below the group order).
func challengeScalar(c []byte) (s Scalar) {
	s[0] = binary.LittleEndian.Uint64(c[0:8])
	s[1] = binary.LittleEndian.Uint64(c[8:16])
	return
}

// Signature with jq255s: the message is provided as 'hv', either raw
// data (hashName == "") or an already-hashed value (hashName names
// the hash that produced it, e.g. "sha256"). The signature process is
// deterministic for a given 'seed' (nil or empty seed yields strictly
// deterministic signatures). The signature is returned as a newly
// allocated 48-byte slice: 16 bytes of challenge followed by 32 bytes
// of scalar.
func (sk *PrivateKey) signWithSeed(seed []byte, hashName string, hv []byte) ([]byte, error) {
	h, _ := blake2s.New256(nil)
	var senc [32]byte
	sk.d.Encode(senc[:0])
	h.Write(senc[:])
	h.Write(sk.epub[:])
	var ln [8]byte
	binary.LittleEndian.PutUint64(ln[:], uint64(len(seed)))
	h.Write(ln[:])
	h.Write(seed)
	writeDomain(h, hashName)
	h.Write(hv)
	kb := h.Sum(nil)

	var k Scalar
	k.DecodeReduce(kb)

	var R Point
	R.MulGen(&k)
	var Renc [32]byte
	R.Encode(Renc[:0])

	c := challenge(Renc[:], sk.epub[:], hashName, hv)
	cs := challengeScalar(c[:])

	var s Scalar
	s.Mul(&cs, &sk.d)
	s.Add(&s, &k)

	sig := make([]byte, 48)
	copy(sig[:16], c[:])
	s.Encode(sig[16:16])
	return sig, nil
}

// Signature with jq255s. If 'rand' is nil, the signature is strictly
// deterministic (no per-signature seed). If 'rand' is not nil, 32
// bytes are read from it to randomize the nonce derivation.
func (sk *PrivateKey) Sign(rand io.Reader, hashName string, hv []byte) (signature []byte, err error) {
	if rand == nil {
		return sk.signWithSeed(nil, hashName, hv)
	}
	var seed [32]byte
	if _, err = io.ReadFull(rand, seed[:]); err != nil {
		return nil, err
	}
	return sk.signWithSeed(seed[:], hashName, hv)
}

// Verify a signature on a message, relatively to a public key. This
// function is not constant-time, under the assumption that public
// keys and signatures are public data.
func (pk *PublicKey) VerifyVartime(hashName string, hv []byte, sig []byte) bool {
	if len(sig) != 48 {
		return false
	}
	if pk.IsIdentity() {
		return false
	}

	var s Scalar
	if s.Decode(sig[16:48]) < 0 {
		return false
	}
	c := challengeScalar(sig[:16])

	// MulAddVartime wants a nonnegative 128-bit multiplier; rather
	// than reduce -c through the full group order, negate the point
	// side of the combination instead.
	var negQ Point
	negQ.Neg(&pk.pub)
	c1 := [2]uint64{c[0], c[1]}

	var Rp Point
	Rp.MulAddVartime(&negQ, &s, &c1)
	var Renc [32]byte
	Rp.Encode(Renc[:0])

	c2 := challenge(Renc[:], pk.epub[:], hashName, hv)
	var t byte = 0
	for i := 0; i < 16; i++ {
		t |= c2[i] ^ sig[i]
	}
	return t == 0
}

// Diffie-Hellman key exchange with jq255s: given our private key and
// the peer's encoded public key, a 32-byte shared secret is derived.
// If the peer key does not decode to a valid, non-identity point, the
// exchange fails (ok == false); the returned bytes are still
// deterministic in (sk, peerPk) and indistinguishable from a genuine
// shared secret to an outside observer.
func ECDH(sk *PrivateKey, peerPk []byte) (shared [32]byte, ok bool) {
	var P Point
	var eppk [32]byte
	decOK := 0
	if len(peerPk) == 32 {
		decOK = P.Decode(peerPk)
		copy(eppk[:], peerPk)
	} else {
		P.Neutral()
	}
	bad := decOK != 1 || P.IsNeutral() != 0
	ok = !bad

	var Z Point
	Z.Mul(&P, &sk.d)
	var zenc [32]byte
	Z.Encode(zenc[:0])

	var senc [32]byte
	sk.d.Encode(senc[:0])

	var badMask byte
	if bad {
		badMask = 0xFF
	}
	var sh [32]byte
	for i := 0; i < 32; i++ {
		sh[i] = (zenc[i] &^ badMask) | (senc[i] & badMask)
	}

	// Order the two public-key encodings as little-endian integers
	// (constant-time comparison, carry propagated low to high).
	var cc uint
	for i := 0; i < 32; i++ {
		x := uint(sk.epub[i]) - uint(eppk[i]) - cc
		cc = (x >> 8) & 1
	}
	m := byte(-cc)
	var low, high [32]byte
	for i := 0; i < 32; i++ {
		low[i] = (sk.epub[i] & m) | (eppk[i] & ^m)
		high[i] = (sk.epub[i] & ^m) | (eppk[i] & m)
	}

	domain := domainECDHOK
	if bad {
		domain = domainECDHBad
	}
	h, _ := blake2s.New256(nil)
	h.Write(low[:])
	h.Write(high[:])
	h.Write([]byte{domain})
	h.Write(sh[:])
	copy(shared[:], h.Sum(nil))
	return
}

// Hash arbitrary input bytes into a curve point. The mapping is not
// injective or surjective, and not uniform among possible outputs;
// however, any given point has only a limited number of possible
// pre-images by the map. This is a package-level convenience built on
// top of the curve's map-to-point formula; it is not used by
// Sign/VerifyVartime/ECDH.
func HashToCurve(hashName string, hv []byte) *Point {
	h1, _ := blake2s.New256(nil)
	writeDomain(h1, hashName)
	h1.Write(hv)
	b1 := h1.Sum(nil)

	h2, _ := blake2s.New256(nil)
	h2.Write(b1)
	b2 := h2.Sum(nil)

	var P1, P2 Point
	P1.MapBytes(b1)
	P2.MapBytes(b2)
	return NewPoint().Add(&P1, &P2)
}
