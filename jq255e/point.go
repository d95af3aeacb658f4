package jq255e

import (
	"sync"

	gf "github.com/doubleodd/jq255/internal/field"
	"github.com/doubleodd/jq255/internal/scalar"
)

// This file implements operations on curve points for jq255e, on elements
// of the prime order group defined over the curve
//   -5*x^2 = x^3 - 2
// (equivalently: a = 0, b = -2 in the Weierstrass-like do255 family).
//
// Internally, points use the extended (E:Z:U:T) representation:
//   E != 0, Z != 0
//   E^2*Z^2 = (a^2-4*b)*U^4 - 2*a*U^2*Z^2 + Z^4
//   U^2 = T*Z
// A point in (extended) affine coordinates has Z == 1.
//
// API: a point is represented in memory by a Point structure. Contents
// of such a structure are opaque. These structures are mutable; the
// various methods such as Add() modify the point on which they are
// called. It is always acceptable to also use the destination structure
// as one of the operands. All such functions return a pointer to the
// structure on which they were called, so that calls may be
// syntactically chained.
//
// Unless explicitly documented, all functions here are constant-time.

// Point is the type for a jq255e point.
//
// Default value for a point structure is not valid. The NewPoint()
// function makes sure to return only initialized structures. If
// allocating a point structure manually, make sure to properly set it
// to a valid point before using it as source.
type Point struct {
	e, z, u, t gf.GF255e
}

// Internal type for a point in extended affine (E, U, T) coordinates,
// i.e. Z implicitly equal to 1. This is used to speed up fixed-base
// multiplication and verification helpers.
type pointAffine struct {
	e, u, t gf.GF255e
}

// Preallocated neutral point. Do not modify.
var neutral = Point{
	e: gf.GF255e{1, 0, 0, 0},
	z: gf.GF255e{1, 0, 0, 0},
	u: gf.GF255e{0, 0, 0, 0},
	t: gf.GF255e{0, 0, 0, 0},
}

var affineNeutral = pointAffine{
	e: gf.GF255e{1, 0, 0, 0},
	u: gf.GF255e{0, 0, 0, 0},
	t: gf.GF255e{0, 0, 0, 0},
}

// Preallocated conventional generator point. Do not modify.
var generator = Point{
	e: gf.GF255e{3, 0, 0, 0},
	z: gf.GF255e{1, 0, 0, 0},
	u: gf.GF255e{1, 0, 0, 0},
	t: gf.GF255e{1, 0, 0, 0},
}

// Square root of -1 in the field, used by the jq255e endomorphism.
var eta = gf.GF255e{
	0xD99E0F1BAA938AEE, 0xA60D864FB30E6336,
	0xE414983FE53688E3, 0x10ED2DB33C69B85F,
}
var minusEta = gf.GF255e{
	0x2661F0E4556C2C37, 0x59F279B04CF19CC9,
	0x1BEB67C01AC9771C, 0x6F12D24CC39647A0,
}

// Create a new point. The point is set to the group neutral element (N).
func NewPoint() *Point {
	P := new(Point)
	*P = neutral
	return P
}

// Set the point P to the neutral element (N).
// A pointer to this structure is returned.
func (P *Point) Neutral() *Point {
	*P = neutral
	return P
}

// Set the point P to the conventional generator (G).
// A pointer to this structure is returned.
func (P *Point) Generator() *Point {
	*P = generator
	return P
}

// Encode a point into exactly 32 bytes. The bytes are appended to the
// provided slice; the new slice is returned. The extension is done in
// place if the provided slice has enough capacity.
func (P *Point) Encode(dst []byte) []byte {
	// Get the affine (e,u) coordinates. If e is negative, then choose
	// the other representant P+N = (-e,-u).
	var iz, e, u gf.GF255e
	iz.Inv(&P.z)
	e.Mul(&P.e, &iz)
	u.Mul(&P.u, &iz)
	u.CondNeg(&u, e.IsNegative()&1)
	return u.Encode(dst)
}

// Encode a point into exactly 32 bytes.
func (P *Point) Bytes() [32]byte {
	var d [32]byte
	P.Encode(d[:0])
	return d
}

// Decode a point from exactly 32 bytes. Returned value is 1 if the
// point could be successfully decoded into a non-neutral group element,
// 0 if it could be successfully decoded as the neutral point N, or -1
// if it could not be decoded. If the decoding was not successful, then
// the destination structure is set to the neutral N.
//
// This function is constant-time with regard to the decoded value and
// also with regard to the validity status.
//
// Returned value is:
//    1   valid encoding of a non-neutral group element
//    0   valid encoding of the neutral point N
//   -1   invalid encoding
func (P *Point) Decode(src []byte) int {
	var u, uu, ee, e gf.GF255e

	r := u.Decode(src)
	zz := r & u.IsZero()

	// ee <- 8*u^4 + 1   (a = 0, b = -2 for jq255e)
	uu.Sqr(&u)
	ee.Sqr(&uu)
	ee.Lsh(&ee, 3)
	ee.Add(&ee, &gf.GF255e_ONE)

	r &= e.Sqrt(&ee)

	var minusOne gf.GF255e
	minusOne.Neg(&gf.GF255e_ONE)

	P.e.Select(&e, &minusOne, r)
	P.z.Set(&gf.GF255e_ONE)
	P.u.Select(&u, &gf.GF255e_ZERO, r)
	P.t.Select(&uu, &gf.GF255e_ZERO, r)

	return int(int64((zz - 1) & ((r << 1) - 1)))
}

// Test whether a point is the neutral element N.
// Returned value is 1 for the neutral, 0 otherwise.
func (P *Point) IsNeutral() int {
	return int(P.u.IsZero())
}

// Test whether this structure (P) represents the same point as the
// provided other structure (Q).
// Returned value is 1 if both points are the same, 0 otherwise.
func (P *Point) Equal(Q *Point) int {
	var g1, g2 gf.GF255e
	g1.Mul(&P.u, &Q.e)
	g2.Mul(&P.e, &Q.u)
	return int(g1.Eq(&g2))
}

// Copy a point structure into another.
// A pointer to this structure is returned.
func (P *Point) Set(Q *Point) *Point {
	P.e.Set(&Q.e)
	P.z.Set(&Q.z)
	P.u.Set(&Q.u)
	P.t.Set(&Q.t)
	return P
}

// If ctl == 1, then copy point Q1 into P.
// If ctl == 0, then copy point Q2 into P.
// ctl MUST be 0 or 1.
func (P *Point) Select(Q1, Q2 *Point, ctl uint64) *Point {
	P.e.Select(&Q1.e, &Q2.e, ctl)
	P.z.Select(&Q1.z, &Q2.z, ctl)
	P.u.Select(&Q1.u, &Q2.u, ctl)
	P.t.Select(&Q1.t, &Q2.t, ctl)
	return P
}

// Set this point to the sum of the two provided points.
// A pointer to this structure (P) is returned.
func (P *Point) Add(P1, P2 *Point) *Point {
	var e1e2, u1u2, z1z2, t1t2, eu, zt, hd, g1, g2, g3 gf.GF255e

	e1e2.Mul(&P1.e, &P2.e)
	u1u2.Mul(&P1.u, &P2.u)
	z1z2.Mul(&P1.z, &P2.z)
	t1t2.Mul(&P1.t, &P2.t)

	// eu <- E1*U2 + E2*U1
	g1.Add(&P1.e, &P1.u)
	g2.Add(&P2.e, &P2.u)
	eu.Mul(&g1, &g2)
	g3.Add(&e1e2, &u1u2)
	eu.Sub(&eu, &g3)

	// zt <- Z1*T2 + Z2*T1
	g1.Add(&P1.z, &P1.t)
	g2.Add(&P2.z, &P2.t)
	zt.Mul(&g1, &g2)
	g3.Add(&z1z2, &t1t2)
	zt.Sub(&zt, &g3)

	// a' = 0, b' = 8
	g1.Lsh(&t1t2, 3)
	hd.Sub(&z1z2, &g1)
	g1.Add(&z1z2, &g1)
	g1.Mul(&g1, &e1e2)
	g2.Lsh(&u1u2, 4)
	g2.Mul(&g2, &zt)
	P.e.Add(&g1, &g2)

	P.z.Sqr(&hd)
	P.t.Sqr(&eu)

	g1.Add(&hd, &eu)
	g1.Sqr(&g1)
	g2.Add(&P.z, &P.t)
	g1.Sub(&g1, &g2)
	P.u.Half(&g1)

	return P
}

// Set this point to the sum of the two provided points, the second of
// which being in extended affine coordinates (Z == 1).
// A pointer to this structure (P) is returned.
func (P *Point) addAffine(P1 *Point, P2 *pointAffine) *Point {
	var e1e2, u1u2, t1t2, eu, zt, hd, g1, g2, g3 gf.GF255e

	e1e2.Mul(&P1.e, &P2.e)
	u1u2.Mul(&P1.u, &P2.u)
	t1t2.Mul(&P1.t, &P2.t)

	g1.Add(&P1.e, &P1.u)
	g2.Add(&P2.e, &P2.u)
	eu.Mul(&g1, &g2)
	g3.Add(&e1e2, &u1u2)
	eu.Sub(&eu, &g3)

	// zt <- Z1*T2 + T1  (since Z2 == 1)
	g1.Mul(&P1.z, &P2.t)
	zt.Add(&g1, &P1.t)

	g1.Lsh(&t1t2, 3)
	hd.Sub(&P1.z, &g1)
	g1.Add(&P1.z, &g1)
	g1.Mul(&g1, &e1e2)
	g2.Lsh(&u1u2, 4)
	g2.Mul(&g2, &zt)
	P.e.Add(&g1, &g2)

	P.z.Sqr(&hd)
	P.t.Sqr(&eu)

	g1.Add(&hd, &eu)
	g1.Sqr(&g1)
	g2.Add(&P.z, &P.t)
	g1.Sub(&g1, &g2)
	P.u.Half(&g1)

	return P
}

// Set P to the opposite of point Q.
// A pointer to this structure (P) is returned.
func (P *Point) Neg(Q *Point) *Point {
	P.e.Set(&Q.e)
	P.z.Set(&Q.z)
	P.u.Neg(&Q.u)
	P.t.Set(&Q.t)
	return P
}

// Set this point to the difference of the two provided points (P1 - P2).
// A pointer to this structure (P) is returned.
func (P *Point) Sub(P1, P2 *Point) *Point {
	var np2 Point
	np2.Neg(P2)
	return P.Add(P1, &np2)
}

// Set this point to the difference of the two provided points, the
// second of which being in extended affine coordinates.
// A pointer to this structure (P) is returned.
func (P *Point) subAffine(P1 *Point, P2 *pointAffine) *Point {
	var np2 pointAffine
	np2.e.Set(&P2.e)
	np2.u.Neg(&P2.u)
	np2.t.Set(&P2.t)
	return P.addAffine(P1, &np2)
}

// Set this point (P) to (2^n)*Q (i.e. perform n successive doublings).
// This function is constant-time with regard to the point values, but
// not to the number of doublings (n); computation time is proportional
// to n.
// A pointer to this structure (P) is returned.
func (P *Point) DoubleX(Q *Point, n uint) *Point {
	if n == 0 {
		P.Set(Q)
		return P
	}

	var x, w, j, g1, g2 gf.GF255e

	// First doubling: P (ezut) -> 2*P (xwj)
	//   ee = E^2
	//   X' = ee^2
	//   W' = 2*Z^2 - ee
	//   J' = 2*E*U
	g1.Sqr(&Q.e)
	j.Mul(&Q.e, &Q.u)
	x.Sqr(&g1)
	w.Sqr(&Q.z)
	j.Lsh(&j, 1)
	w.Lsh(&w, 1)
	w.Sub(&w, &g1)

	for n--; n > 0; n-- {
		var ww gf.GF255e
		ww.Sqr(&w)
		g1.Lsh(&x, 1)
		g1.Sub(&ww, &g1)
		g2.Sqr(&g1)

		g1.Mul(&g1, &w)
		g1.Lsh(&g1, 1)
		j.Mul(&j, &g1)

		ww.Sqr(&ww)
		ww.Lsh(&ww, 1)
		w.Sub(&g2, &ww)

		x.Sqr(&g2)
	}

	// Conversion xwj -> ezut
	//   Z = W^2, T = J^2, U = W*J, E = 2*X - Z
	P.z.Sqr(&w)
	P.t.Sqr(&j)
	P.u.Mul(&w, &j)
	g1.Lsh(&x, 1)
	P.e.Sub(&g1, &P.z)

	return P
}

// Set this point (P) to the double of the provided point Q.
// A pointer to this structure (P) is returned.
func (P *Point) Double(Q *Point) *Point {
	return P.DoubleX(Q, 1)
}

// Multiply a point Q by a given scalar n.
// A pointer to this structure (P) is returned.
func (P *Point) Mul(Q *Point, n *Scalar) *Point {
	// Split input scalar into k0 and k1 using the GLV endomorphism.
	var k0, k1 [2]uint64
	n.SplitMu(&k0, &k1)

	var sd0 [26]byte
	sg := scalar.Recode5SmallSigned(&sd0, &k0)
	M := *Q
	M.u.CondNeg(&M.u, sg)

	var win0 [16]Point
	win0[0] = M
	win0[1].Double(&M)
	for i := 3; i <= 15; i += 2 {
		win0[i-1].Add(&win0[i-2], &M)
		win0[i].Double(&win0[((i+1)>>1)-1])
	}

	var sd1 [26]byte
	sg ^= scalar.Recode5SmallSigned(&sd1, &k1)

	var endo gf.GF255e
	endo.CondNeg(&eta, sg)
	var win1 [16]Point
	for i := 0; i < 16; i++ {
		win1[i].e = win0[i].e
		win1[i].z = win0[i].z
		win1[i].u.Mul(&win0[i].u, &endo)
		win1[i].t.Neg(&win0[i].t)
	}

	lookupWindow(P, &win0, uint(sd0[25]))
	lookupWindow(&M, &win1, uint(sd1[25]))
	P.Add(P, &M)

	for i := 24; i >= 0; i-- {
		P.DoubleX(P, 5)
		lookupWindow(&M, &win0, uint(sd0[i]&0x1F))
		M.u.CondNeg(&M.u, uint64(sd0[i]>>7))
		P.Add(P, &M)
		lookupWindow(&M, &win1, uint(sd1[i]&0x1F))
		M.u.CondNeg(&M.u, uint64(sd1[i]>>7))
		P.Add(P, &M)
	}

	return P
}

// Constant-time lookup of a point in a window. Provided window has 16
// elements (win[i] holds (i+1)*P for some reference point P). Input
// index is in the 0..16 range; index 0 yields the neutral element.
func lookupWindow(P *Point, win *[16]Point, index uint) {
	P.e = gf.GF255e_ZERO
	P.z = gf.GF255e_ZERO
	P.u = gf.GF255e_ZERO
	P.t = gf.GF255e_ZERO

	for i := 0; i < 16; i++ {
		m := int64(index) - int64(i+1)
		mm := ^uint64((m | -m) >> 63)
		P.e.CondOrFrom(&win[i].e, mm)
		P.z.CondOrFrom(&win[i].z, mm)
		P.u.CondOrFrom(&win[i].u, mm)
		P.t.CondOrFrom(&win[i].t, mm)
	}

	mz := uint64((int64(index) - 1) >> 63)
	P.e.CondOrFrom(&gf.GF255e_ONE, mz)
	P.z.CondOrFrom(&gf.GF255e_ONE, mz)
}

// Constant-time lookup of a point in an affine window.
func lookupWindowAffine(P *pointAffine, win *[16]pointAffine, index uint) {
	P.e = gf.GF255e_ZERO
	P.u = gf.GF255e_ZERO
	P.t = gf.GF255e_ZERO

	for i := 0; i < 16; i++ {
		m := int64(index) - int64(i+1)
		mm := ^uint64((m | -m) >> 63)
		P.e.CondOrFrom(&win[i].e, mm)
		P.u.CondOrFrom(&win[i].u, mm)
		P.t.CondOrFrom(&win[i].t, mm)
	}

	mz := uint64((int64(index) - 1) >> 63)
	P.e.CondOrFrom(&gf.GF255e_ONE, mz)
}

// Convert a point to extended affine coordinates.
func (P *Point) toAffine() pointAffine {
	var iz gf.GF255e
	iz.Inv(&P.z)
	var a pointAffine
	a.e.Mul(&P.e, &iz)
	a.u.Mul(&P.u, &iz)
	a.t.Mul(&P.t, &iz)
	return a
}

// Fixed-base windows, computed once on first use rather than compiled
// in as literal tables: baseWin[i] holds (i+1)*G, baseWin65 holds
// (i+1)*2^65*G, baseWin130 holds (i+1)*2^130*G, baseWin195 holds
// (i+1)*2^195*G.
var (
	baseWinOnce                                     sync.Once
	baseWin, baseWin65, baseWin130, baseWin195      [16]pointAffine
)

func fillAffineWindow(win *[16]pointAffine, base *Point) {
	var w [16]Point
	w[0] = *base
	w[1].Double(base)
	for i := 3; i <= 15; i += 2 {
		w[i-1].Add(&w[i-2], base)
		w[i].Double(&w[((i+1)>>1)-1])
	}
	for i := 0; i < 16; i++ {
		win[i] = w[i].toAffine()
	}
}

func ensureBaseWindows() {
	baseWinOnce.Do(func() {
		var g65, g130, g195 Point
		g65.DoubleX(&generator, 65)
		g130.DoubleX(&generator, 130)
		g195.DoubleX(&generator, 195)
		fillAffineWindow(&baseWin, &generator)
		fillAffineWindow(&baseWin65, &g65)
		fillAffineWindow(&baseWin130, &g130)
		fillAffineWindow(&baseWin195, &g195)
	})
}

// Multiply the conventional generator by a given scalar n. This is
// functionally equivalent to (but faster than) P.Generator().Mul(P, n).
// A pointer to this structure (P) is returned.
func (P *Point) MulGen(n *Scalar) *Point {
	ensureBaseWindows()

	var sd [52]byte
	n.recode5(&sd)

	var qa pointAffine
	lookupWindowAffine(&qa, &baseWin195, uint(sd[51]))
	P.e = qa.e
	P.z = gf.GF255e_ONE
	P.u = qa.u
	P.t = qa.t

	lookupWindowAffine(&qa, &baseWin, uint(sd[12]&0x1F))
	qa.u.CondNeg(&qa.u, uint64(sd[12]>>7))
	P.addAffine(P, &qa)
	lookupWindowAffine(&qa, &baseWin65, uint(sd[25]&0x1F))
	qa.u.CondNeg(&qa.u, uint64(sd[25]>>7))
	P.addAffine(P, &qa)
	lookupWindowAffine(&qa, &baseWin130, uint(sd[38]&0x1F))
	qa.u.CondNeg(&qa.u, uint64(sd[38]>>7))
	P.addAffine(P, &qa)

	for i := 11; i >= 0; i-- {
		P.DoubleX(P, 5)
		lookupWindowAffine(&qa, &baseWin, uint(sd[i]&0x1F))
		qa.u.CondNeg(&qa.u, uint64(sd[i]>>7))
		P.addAffine(P, &qa)
		lookupWindowAffine(&qa, &baseWin65, uint(sd[i+13]&0x1F))
		qa.u.CondNeg(&qa.u, uint64(sd[i+13]>>7))
		P.addAffine(P, &qa)
		lookupWindowAffine(&qa, &baseWin130, uint(sd[i+26]&0x1F))
		qa.u.CondNeg(&qa.u, uint64(sd[i+26]>>7))
		P.addAffine(P, &qa)
		lookupWindowAffine(&qa, &baseWin195, uint(sd[i+39]&0x1F))
		qa.u.CondNeg(&qa.u, uint64(sd[i+39]>>7))
		P.addAffine(P, &qa)
	}

	return P
}

// Fixed-base odd-multiple windows for the wNAF combined multiply:
// oddBaseWin[i] holds (2i+1)*G, oddBaseWin130[i] holds (2i+1)*2^130*G.
// Computed once on first use.
var (
	oddBaseWinOnce            sync.Once
	oddBaseWin, oddBaseWin130 [8]pointAffine
)

func fillOddAffineWindow(win *[8]pointAffine, base *Point) {
	var w [8]Point
	w[0] = *base
	var d2 Point
	d2.Double(base)
	w[1].Add(&d2, base)
	for i := 2; i < 8; i++ {
		w[i].Add(&w[i-1], &d2)
	}
	for i := 0; i < 8; i++ {
		win[i] = w[i].toAffine()
	}
}

func ensureOddBaseWindows() {
	oddBaseWinOnce.Do(func() {
		var g130 Point
		g130.DoubleX(&generator, 130)
		fillOddAffineWindow(&oddBaseWin, &generator)
		fillOddAffineWindow(&oddBaseWin130, &g130)
	})
}

// Apply a wNAF digit d (odd, in -15..15, or 0 for a no-op) taken from
// an 8-entry window of odd multiples of some point Q, folding it into
// the running accumulator M. ndbl pending doublings are flushed first
// (skipped while M is still the untouched neutral accumulator, zz).
// THIS IS NOT CONSTANT-TIME.
func wnafApplyPoint(M *Point, zz *bool, ndbl *int, win *[8]Point, d int8) {
	if d == 0 {
		return
	}
	if *ndbl > 0 {
		if !*zz {
			M.DoubleX(M, uint(*ndbl))
		}
		*ndbl = 0
	}
	neg := d < 0
	j := d
	if neg {
		j = -j
	}
	idx := (int(j) - 1) >> 1
	if *zz {
		*M = win[idx]
		if neg {
			M.u.Neg(&M.u)
		}
		*zz = false
	} else if neg {
		M.Sub(M, &win[idx])
	} else {
		M.Add(M, &win[idx])
	}
}

// Same as wnafApplyPoint, but the window holds affine points (used
// for the two fixed generator-based windows).
// THIS IS NOT CONSTANT-TIME.
func wnafApplyAffine(M *Point, zz *bool, ndbl *int, win *[8]pointAffine, d int8) {
	if d == 0 {
		return
	}
	if *ndbl > 0 {
		if !*zz {
			M.DoubleX(M, uint(*ndbl))
		}
		*ndbl = 0
	}
	neg := d < 0
	j := d
	if neg {
		j = -j
	}
	a := win[(int(j)-1)>>1]
	if neg {
		a.u.Neg(&a.u)
	}
	if *zz {
		M.e = a.e
		M.z = gf.GF255e_ONE
		M.u = a.u
		M.t = a.t
		*zz = false
	} else {
		M.addAffine(M, &a)
	}
}

// Compute k0*G + k1*P1 (with G being the conventional generator) and
// store the result into P. k1 is bounded to 128 bits: this function
// backs signature verification, where the caller reduces a 128-bit
// challenge against a public key point (negating the point rather
// than the challenge when the combination actually needed is a
// difference).
//
// The combined multiply recodes k1 into a width-5 wNAF over 130
// digits, and k0 (fully reduced modulo r first) into a width-5 wNAF
// over 256 digits, then walks both
// digit streams together, applying at most one doubling batch between
// any two nonzero digits (of either stream).
// IT IS NOT CONSTANT-TIME; thus, it should be used only on public
// elements (which is normally the case when verifying signatures).
func (P *Point) MulAddVartime(P1 *Point, k0 *Scalar, k1 *[2]uint64) *Point {
	ensureOddBaseWindows()

	if P1.IsNeutral() != 0 {
		P.MulGen(k0)
		return P
	}

	var win [8]Point
	win[0] = *P1
	var d2 Point
	d2.Double(P1)
	win[1].Add(&d2, P1)
	for i := 2; i < 8; i++ {
		win[i].Add(&win[i-1], &d2)
	}

	var sdu [130]int8
	scalar.RecodeWNAF(sdu[:], k1[:])
	var sdv [256]int8
	var k0r [4]uint64
	modrReduce256(&k0r, (*[4]uint64)(k0))
	scalar.RecodeWNAF(sdv[:], k0r[:])

	var M Point
	zz := true
	ndbl := 0
	for i := 129; i >= 0; i-- {
		ndbl++
		wnafApplyPoint(&M, &zz, &ndbl, &win, sdu[i])
		wnafApplyAffine(&M, &zz, &ndbl, &oddBaseWin, sdv[i])
		if i < 126 {
			wnafApplyAffine(&M, &zz, &ndbl, &oddBaseWin130, sdv[i+130])
		}
	}

	if zz {
		P.Neutral()
	} else {
		if ndbl > 0 {
			M.DoubleX(&M, uint(ndbl))
		}
		P.Set(&M)
	}
	return P
}

// Check whether k0*G + k1*P (with G being the conventional generator)
// yields a point which would encode to the specified sequence of bytes
// encR. IT IS NOT CONSTANT-TIME.
func (P *Point) VerifyHelperVartime(k0 *Scalar, k1 *[2]uint64, encR []byte) bool {
	var Rw gf.GF255e
	if Rw.Decode(encR) != 1 {
		return false
	}
	var M Point
	M.MulAddVartime(P, k0, k1)
	if M.IsNeutral() != 0 {
		return Rw.IsZero() == 1
	}
	var iz, e, u gf.GF255e
	iz.Inv(&M.z)
	e.Mul(&M.e, &iz)
	u.Mul(&M.u, &iz)
	u.CondNeg(&u, e.IsNegative()&1)
	return Rw.Eq(&u) == 1
}

// Map a sequence of bytes into a curve element. The mapping is not
// injective or surjective, and not uniform among possible outputs;
// however, any given point has only a limited number of possible
// pre-images by the map.
func (P *Point) MapBytes(bb []byte) *Point {
	var e gf.GF255e
	e.DecodeReduce(bb)
	ez := e.IsZero()

	var e2, e3, e4, e5, e7 gf.GF255e
	e2.Sqr(&e)
	e4.Sqr(&e2)
	e3.Mul(&e, &e2)
	e5.Mul(&e3, &e2)
	e7.Mul(&e5, &e2)

	var x1num, x2num, x12den gf.GF255e
	x1num.Lsh(&e2, 2)
	x1num.Sub(&x1num, &gf.GF255e_SEVEN)
	x2num.Lsh(&e2, 2)
	x2num.Add(&x2num, &gf.GF255e_SEVEN)
	x2num.Mul(&x2num, &eta)
	x12den.Lsh(&e, 2)

	var yy1num, yy2num, y12den, tt gf.GF255e
	yy1num.Lsh(&e7, 6)
	yy2num.Set(&yy1num)
	tt.Mul(&e5, &gf.GF255e_HUNDREDSEVENTYSIX)
	yy1num.Add(&yy1num, &tt)
	yy2num.Sub(&yy2num, &tt)
	tt.Mul(&e3, &gf.GF255e_THREEHUNDREDEIGHT)
	yy1num.Sub(&yy1num, &tt)
	yy2num.Sub(&yy2num, &tt)
	tt.Mul(&e, &gf.GF255e_THREEHUNDREDFORTYTHREE)
	yy1num.Sub(&yy1num, &tt)
	yy2num.Add(&yy2num, &tt)
	yy2num.Mul(&yy2num, &minusEta)
	y12den.Lsh(&e2, 3)

	var x3num, x3den, yy3num, y3den gf.GF255e
	x3num.Mul(&x1num, &x2num)
	x3den.Lsh(&e2, 4)
	yy3num.Mul(&yy1num, &yy2num)
	y3den.Lsh(&e4, 6)

	ls1 := yy1num.Legendre()
	ls2 := yy2num.Legendre()
	qr1 := 1 - (ls1 >> 63)
	qr2 := 1 - (ls2 >> 63)

	var xnum, xden, yynum, yden gf.GF255e
	xnum.Select(&x1num, &x2num, qr1)
	xnum.Select(&xnum, &x3num, qr1|qr2)
	xden.Select(&x12den, &x3den, qr1|qr2)
	yynum.Select(&yy1num, &yy2num, qr1)
	yynum.Select(&yynum, &yy3num, qr1|qr2)
	yden.Select(&y12den, &y3den, qr1|qr2)

	var ynum gf.GF255e
	ynum.Sqrt(&yynum)

	var unum, uden gf.GF255e
	unum.Mul(&xnum, &yden)
	uden.Mul(&xden, &ynum)

	// Apply the 2-isogeny theta'_{1/2} that carries the dual-curve
	// point (xnum/xden, ynum/yden) onto a fractional representative
	// (tu:tt) of a point of the prime-order group (up to the common
	// scale shared with the other two isogeny coordinates):
	//   tu = 2*xnum*xden*uden
	//   tt = (xnum^2 - 8*xden^2)*unum
	// The exported affine coordinate of that group point is, up to
	// sign, w = tu/tt, which is invariant under the common scaling (the
	// sign only chooses between a point and its opposite). w is then
	// re-decoded through the ordinary curve equation to obtain
	// proper (E:Z:U:T) coordinates.
	var iu, it, tmp gf.GF255e
	iu.Mul(&xnum, &xden).Mul(&iu, &uden).Lsh(&iu, 1)
	tmp.Sqr(&xden).Lsh(&tmp, 3)
	it.Sqr(&xnum).Sub(&it, &tmp).Mul(&it, &unum)

	var w, wInv gf.GF255e
	wInv.Inv(&it)
	w.Mul(&wInv, &iu)

	var w2, ee, ew gf.GF255e
	w2.Sqr(&w)
	ee.Sqr(&w2)
	ee.Lsh(&ee, 3)
	ee.Add(&ee, &gf.GF255e_ONE)
	ew.Sqrt(&ee)

	P.e.Select(&gf.GF255e_ONE, &ew, ez)
	P.z.Set(&gf.GF255e_ONE)
	P.u.Select(&gf.GF255e_ZERO, &w, ez)
	P.t.Select(&gf.GF255e_ZERO, &w2, ez)

	return P
}
