package jq255s

import (
	"sync"

	gf "github.com/doubleodd/jq255/internal/field"
	"github.com/doubleodd/jq255/internal/scalar"
)

// This file implements operations on curve points for jq255s, on elements
// of the prime order group associated with a = -1, b = 1/2 in the
// do255 family (a' = 2, b' = -1 in the addition formulas below).
//
// Internally, points use the extended (E:Z:U:T) representation:
//   E != 0, Z != 0
//   E^2*Z^2 = (a^2-4*b)*U^4 - 2*a*U^2*Z^2 + Z^4
//   U^2 = T*Z
// A point in (extended) affine coordinates has Z == 1.
//
// Unless explicitly documented, all functions here are constant-time.

// Point is the type for a jq255s point.
//
// Default value for a point structure is not valid. The NewPoint()
// function makes sure to return only initialized structures.
type Point struct {
	e, z, u, t gf.GF255s
}

// Internal type for a point in extended affine (E, U, T) coordinates,
// i.e. Z implicitly equal to 1.
type pointAffine struct {
	e, u, t gf.GF255s
}

// Preallocated neutral point. Do not modify.
var neutral = Point{
	e: gf.GF255s{1, 0, 0, 0},
	z: gf.GF255s{1, 0, 0, 0},
	u: gf.GF255s{0, 0, 0, 0},
	t: gf.GF255s{0, 0, 0, 0},
}

var affineNeutral = pointAffine{
	e: gf.GF255s{1, 0, 0, 0},
	u: gf.GF255s{0, 0, 0, 0},
	t: gf.GF255s{0, 0, 0, 0},
}

// Preallocated conventional generator point. Do not modify.
var generator = Point{
	e: gf.GF255s{
		0x104220CDA2789410, 0x6D7386B2348CC437,
		0x55E452A64612D10E, 0x0F520B1BA747ADAC,
	},
	z: gf.GF255s{1, 0, 0, 0},
	u: gf.GF255s{3, 0, 0, 0},
	t: gf.GF255s{9, 0, 0, 0},
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
	var iz, e, u gf.GF255s
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

// Decode a point from exactly 32 bytes. Returned value is:
//    1   valid encoding of a non-neutral group element
//    0   valid encoding of the neutral point N
//   -1   invalid encoding
func (P *Point) Decode(src []byte) int {
	var u, uu, ee, e gf.GF255s

	r := u.Decode(src)
	zz := r & u.IsZero()

	// ee <- 2*u^2 - u^4 + 1   (a = -1, b = 1/2 for jq255s)
	uu.Sqr(&u)
	ee.Sqr(&uu)
	ee.Sub(&uu, &ee)
	ee.Add(&ee, &uu)
	ee.Add(&ee, &gf.GF255s_ONE)

	r &= e.Sqrt(&ee)

	var minusOne gf.GF255s
	minusOne.Neg(&gf.GF255s_ONE)

	P.e.Select(&e, &minusOne, r)
	P.z.Set(&gf.GF255s_ONE)
	P.u.Select(&u, &gf.GF255s_ZERO, r)
	P.t.Select(&uu, &gf.GF255s_ZERO, r)

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
	var g1, g2 gf.GF255s
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
	var e1e2, u1u2, z1z2, t1t2, eu, zt, hd, g1, g2, g3 gf.GF255s

	e1e2.Mul(&P1.e, &P2.e)
	u1u2.Mul(&P1.u, &P2.u)
	z1z2.Mul(&P1.z, &P2.z)
	t1t2.Mul(&P1.t, &P2.t)

	g1.Add(&P1.e, &P1.u)
	g2.Add(&P2.e, &P2.u)
	eu.Mul(&g1, &g2)
	g3.Add(&e1e2, &u1u2)
	eu.Sub(&eu, &g3)

	g1.Add(&P1.z, &P1.t)
	g2.Add(&P2.z, &P2.t)
	zt.Mul(&g1, &g2)
	g3.Add(&z1z2, &t1t2)
	zt.Sub(&zt, &g3)

	// a' = 2, b' = -1
	hd.Add(&z1z2, &t1t2)
	g1.Sub(&z1z2, &t1t2)
	g2.Add(&u1u2, &u1u2)
	g3.Add(&e1e2, &g2)
	g1.Mul(&g3, &g1)
	g2.Mul(&g2, &zt)
	P.e.Sub(&g1, &g2)

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
	var e1e2, u1u2, t1t2, eu, zt, hd, g1, g2, g3 gf.GF255s

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

	// a' = 2, b' = -1
	hd.Add(&P1.z, &t1t2)
	g1.Sub(&P1.z, &t1t2)
	g2.Add(&u1u2, &u1u2)
	g3.Add(&e1e2, &g2)
	g1.Mul(&g3, &g1)
	g2.Mul(&g2, &zt)
	P.e.Sub(&g1, &g2)

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

	var x, w, j, g1, g2, g3 gf.GF255s

	// First doubling: P (ezut) -> 2*P+N (xwj)
	//   uu = U^2
	//   X' = 8*uu^2
	//   W' = 2*uu - (T+Z)^2
	//   J' = 2*E*U
	g1.Sqr(&Q.u)
	j.Mul(&Q.e, &Q.u)
	j.Add(&j, &j)
	x.Sqr(&g1)
	x.Lsh(&x, 3)
	g2.Add(&Q.t, &Q.z)
	w.Add(&g1, &g1)
	g2.Sqr(&g2)
	w.Sub(&w, &g2)

	for n--; n > 0; n-- {
		g1.Mul(&w, &j)
		g3.Add(&w, &j)
		g2.Add(&g1, &g1)
		g3.Sqr(&g3)
		j.Add(&x, &x)
		g3.Sub(&g3, &g2)
		j.Sub(&j, &g3)
		g2.Sqr(&g1)
		j.Mul(&j, &g1)
		g3.Sqr(&g3)
		x.Sqr(&g2)
		g3.Half(&g3)
		x.Add(&x, &x)
		w.Sub(&g2, &g3)
	}

	// Conversion xwj -> ezut
	//   Z = W^2, T = J^2, U = W*J, E = 2*X - Z - T
	P.z.Sqr(&w)
	P.t.Sqr(&j)
	P.u.Mul(&w, &j)
	g1.Add(&x, &x)
	g1.Sub(&g1, &P.z)
	P.e.Sub(&g1, &P.t)

	return P
}

// Set this point (P) to the double of the provided point Q.
// A pointer to this structure (P) is returned.
func (P *Point) Double(Q *Point) *Point {
	return P.DoubleX(Q, 1)
}

// Constant-time lookup of a point in a window. Provided window has 16
// elements (win[i] holds (i+1)*P for some reference point P). Input
// index is in the 0..16 range; index 0 yields the neutral element.
func lookupWindow(P *Point, win *[16]Point, index uint) {
	P.e = gf.GF255s_ZERO
	P.z = gf.GF255s_ZERO
	P.u = gf.GF255s_ZERO
	P.t = gf.GF255s_ZERO

	for i := 0; i < 16; i++ {
		m := int64(index) - int64(i+1)
		mm := ^uint64((m | -m) >> 63)
		P.e.CondOrFrom(&win[i].e, mm)
		P.z.CondOrFrom(&win[i].z, mm)
		P.u.CondOrFrom(&win[i].u, mm)
		P.t.CondOrFrom(&win[i].t, mm)
	}

	mz := uint64((int64(index) - 1) >> 63)
	P.e.CondOrFrom(&gf.GF255s_ONE, mz)
	P.z.CondOrFrom(&gf.GF255s_ONE, mz)
}

// Constant-time lookup of a point in an affine window.
func lookupWindowAffine(P *pointAffine, win *[16]pointAffine, index uint) {
	P.e = gf.GF255s_ZERO
	P.u = gf.GF255s_ZERO
	P.t = gf.GF255s_ZERO

	for i := 0; i < 16; i++ {
		m := int64(index) - int64(i+1)
		mm := ^uint64((m | -m) >> 63)
		P.e.CondOrFrom(&win[i].e, mm)
		P.u.CondOrFrom(&win[i].u, mm)
		P.t.CondOrFrom(&win[i].t, mm)
	}

	mz := uint64((int64(index) - 1) >> 63)
	P.e.CondOrFrom(&gf.GF255s_ONE, mz)
}

// Convert a point to extended affine coordinates.
func (P *Point) toAffine() pointAffine {
	var iz gf.GF255s
	iz.Inv(&P.z)
	var a pointAffine
	a.e.Mul(&P.e, &iz)
	a.u.Mul(&P.u, &iz)
	a.t.Mul(&P.t, &iz)
	return a
}

// Multiply a point Q by a given scalar n. jq255s has no efficiently
// computable endomorphism available to the addition formulas used
// here, so this is a plain constant-time 5-bit-window double-and-add.
// A pointer to this structure (P) is returned.
func (P *Point) Mul(Q *Point, n *Scalar) *Point {
	var sd [52]byte
	n.recode5(&sd)

	var win [16]Point
	win[0] = *Q
	win[1].Double(Q)
	for i := 3; i <= 15; i += 2 {
		win[i-1].Add(&win[i-2], Q)
		win[i].Double(&win[((i+1)>>1)-1])
	}

	lookupWindow(P, &win, uint(sd[51]))

	for i := 50; i >= 0; i-- {
		P.DoubleX(P, 5)
		var M Point
		lookupWindow(&M, &win, uint(sd[i]&0x1F))
		M.u.CondNeg(&M.u, uint64(sd[i]>>7))
		P.Add(P, &M)
	}

	return P
}

// Fixed-base windows, computed once on first use: baseWin[i] holds
// (i+1)*G, baseWin65 holds (i+1)*2^65*G, baseWin130 holds
// (i+1)*2^130*G, baseWin195 holds (i+1)*2^195*G.
var (
	baseWinOnce                                sync.Once
	baseWin, baseWin65, baseWin130, baseWin195 [16]pointAffine
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

// Map a sequence of bytes into a curve element. The mapping is not
// injective or surjective, and not uniform among possible outputs;
// however, any given point has only a limited number of possible
// pre-images by the map.
func (P *Point) MapBytes(bb []byte) *Point {
	var e gf.GF255s
	e.DecodeReduce(bb)

	// Map onto the dual curve y^2 = x*(x^2 + aa*x + bb), with
	// aa = 2, bb = -1, using a fixed non-square d = -1:
	//   x1num = -2          x2num = 2*e^2          xden = 1 - e^2
	//   yy1num = -2*e^6 + 14*e^4 - 14*e^2 + 2
	//   yy2num = -yy1num*e^2
	var e2, e4, e6 gf.GF255s
	e2.Sqr(&e)
	e4.Sqr(&e2)
	e6.Mul(&e2, &e4)

	var yy1num, yy2num, tt1, tt2 gf.GF255s
	tt1.Sub(&e4, &e2)
	tt2.Lsh(&tt1, 3).Sub(&tt2, &tt1)
	tt1.Sub(&tt2, &e6).Add(&tt1, &gf.GF255s_ONE)
	yy1num.Lsh(&tt1, 1)
	yy2num.Mul(&yy1num, &e2).Neg(&yy2num)

	ls := yy1num.Legendre()
	qr1 := 1 - (ls >> 63)

	var X, Z, T gf.GF255s
	X.Neg(&gf.GF255s_ONE).Select(&X, &e2, qr1).Lsh(&X, 1)
	Z.Sub(&gf.GF255s_ONE, &e2)
	T.Select(&yy1num, &yy2num, qr1).Sqrt(&T)
	T.CondNeg(&T, 1-qr1)

	// For the point of the prime-order group reached through the
	// 2-isogeny theta'_{1/2}, the exported affine coordinate
	// w = t/u (in the (E:Z:U:T) sense) reduces, after the U factor
	// common to both numerator and denominator cancels, up to sign
	// (which only chooses between a point and its opposite), to:
	//   w = (2*T) / (X^2 + Z^2)
	// T is zero exactly when the dual-curve point maps to the
	// neutral (e == 0 or e == +/-1).
	tz := T.IsZero()

	var w, iz2t, sum gf.GF255s
	sum.Sqr(&X)
	Z.Sqr(&Z)
	sum.Add(&sum, &Z)
	iz2t.Lsh(&T, 1)
	sum.Inv(&sum)
	w.Mul(&iz2t, &sum)

	var w2, ee, ew gf.GF255s
	w2.Sqr(&w)
	ee.Sqr(&w2)
	ee.Sub(&w2, &ee)
	ee.Add(&ee, &w2)
	ee.Add(&ee, &gf.GF255s_ONE)
	ew.Sqrt(&ee)

	P.e.Select(&gf.GF255s_ONE, &ew, tz)
	P.z.Set(&gf.GF255s_ONE)
	P.u.Select(&gf.GF255s_ZERO, &w, tz)
	P.t.Select(&gf.GF255s_ZERO, &w2, tz)

	return P
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
	P.z = gf.GF255s_ONE
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

// Add to point P a point from a window, given an encoded index.
// THIS IS NOT CONSTANT-TIME.
func (P *Point) addFromWindowVartime(win *[16]Point, ej byte) {
	j := int(ej & 0x1F)
	if j != 0 {
		if ej < 0x80 {
			P.Add(P, &win[j-1])
		} else {
			P.Sub(P, &win[j-1])
		}
	}
}

// Add to point P a point from an affine window, given an encoded index.
// THIS IS NOT CONSTANT-TIME.
func (P *Point) addFromWindowAffineVartime(win *[16]pointAffine, ej byte) {
	j := int(ej & 0x1F)
	if j != 0 {
		if ej < 0x80 {
			P.addAffine(P, &win[j-1])
		} else {
			P.subAffine(P, &win[j-1])
		}
	}
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
		M.z = gf.GF255s_ONE
		M.u = a.u
		M.t = a.t
		*zz = false
	} else {
		M.addAffine(M, &a)
	}
}

// Compute k0*G + k1*P1 (with G being the conventional generator) and
// store the result into P. k1 is bounded to 128 bits: this backs
// signature verification, where the caller reduces a 128-bit
// challenge against a public key point (negating the point rather
// than the challenge, so k1 never needs a full-order reduction).
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
// encR. This function is meant to support signature verification.
// IT IS NOT CONSTANT-TIME; thus, it should be used only on public
// elements (which is normally the case when verifying signatures).
// Returned value is true on match, false otherwise.
//
// jq255s has no efficient endomorphism to split k1 the way jq255e
// does; instead, the lattice basis reduction in k1.ReduceBasisVartime
// produces a pair of half-size coefficients c0, c1 with k1 = c0/c1
// (mod r), turning the check into (k0*c1)*G + c0*P - c1*R == N.
func (P *Point) VerifyHelperVartime(k0, k1 *Scalar, encR []byte) bool {
	var R Point
	if R.Decode(encR) < 0 {
		return false
	}

	ensureBaseWindows()

	if P.IsNeutral() != 0 || k1.IsZero() != 0 {
		var M Point
		M.MulGen(k0)
		return M.Equal(&R) != 0
	}

	var winP, winR [16]Point
	var c0, c1 [2]uint64
	negc0, negc1 := k1.ReduceBasisVartime(&c0, &c1)
	if negc0 {
		winP[0].Neg(P)
	} else {
		winP[0] = *P
	}
	if negc1 {
		winR[0] = R
	} else {
		winR[0].Neg(&R)
	}
	winP[1].Double(&winP[0])
	for i := 3; i <= 15; i += 2 {
		winP[i-1].Add(&winP[i-2], &winP[0])
		winP[i].Double(&winP[((i+1)>>1)-1])
	}
	winR[1].Double(&winR[0])
	for i := 3; i <= 15; i += 2 {
		winR[i-1].Add(&winR[i-2], &winR[0])
		winR[i].Double(&winR[((i+1)>>1)-1])
	}

	// Need k0*c1 mod r, with the sign of c1 applied.
	var sd0 [52]byte
	var kt Scalar
	kt[0] = c1[0]
	kt[1] = c1[1]
	kt.Mul(&kt, k0)
	if negc1 {
		kt.Neg(&kt)
	}
	kt.recode5(&sd0)
	var sdP, sdR [26]byte
	scalar.Recode5Small(&sdP, &c0)
	scalar.Recode5Small(&sdR, &c1)

	var M Point
	if sdP[25] != 0 {
		M = winP[int(sdP[25])-1]
	} else {
		M.Neutral()
	}
	M.addFromWindowVartime(&winR, sdR[25])
	M.addFromWindowAffineVartime(&baseWin, sd0[25])
	M.addFromWindowAffineVartime(&baseWin130, sd0[51])

	for i := 24; i >= 0; i-- {
		M.DoubleX(&M, 5)
		M.addFromWindowVartime(&winP, sdP[i])
		M.addFromWindowVartime(&winR, sdR[i])
		M.addFromWindowAffineVartime(&baseWin, sd0[i])
		M.addFromWindowAffineVartime(&baseWin130, sd0[26+i])
	}

	return M.IsNeutral() != 0
}
