// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package rng implements the interval (range) abstract domain used to
// over-approximate the set of values a numeric symbolic expression can take.
// A Range is closed on both ends, `[start,end]`, over rationals extended
// with three flavours of infinity; see internal/rng/infrat.go.
package rng

import (
	"fmt"
	"math/big"
)

// Range is a closed interval `[Start,End]`.  The zero Range does not mean
// "no information": Start and End are both the zero InfRat, i.e. `[0,0]`,
// the valid singleton range {0} — callers should use Top/FromConst/GenGte/
// GenLte rather than a bare zero value when they mean "no information".
type Range struct {
	Start InfRat
	End   InfRat
}

// Top returns the unconstrained range (-inf, +inf).
func Top() Range {
	return Range{NegInf, PosInf}
}

// FromConst returns the singleton range [c,c].
func FromConst(c big.Rat) Range {
	v := FromRat(c)
	return Range{v, v}
}

// FromConstInt returns the singleton range [c,c] for an integer constant.
func FromConstInt(c int64) Range {
	v := FromInt(c)
	return Range{v, v}
}

// GenGte returns the range [k,+inf).
func GenGte(k InfRat) Range {
	return Range{k, PosInf}
}

// GenLte returns the range (-inf,k].
func GenLte(k InfRat) Range {
	return Range{NegInf, k}
}

// Valid returns false iff Start > End, i.e. this range describes an empty
// set of values.
func (r Range) Valid() bool {
	return r.Start.Cmp(r.End) <= 0
}

// IsConst returns the constant value of this range, and true, if it is a
// singleton (i.e. Start == End and both finite).
func (r Range) IsConst() (big.Rat, bool) {
	if r.Start.IsFinite() && r.End.IsFinite() && r.Start.Cmp(r.End) == 0 {
		return r.Start.RatVal(), true
	}

	return big.Rat{}, false
}

// Contains returns true iff n lies within this range.
func (r Range) Contains(n big.Rat) bool {
	v := FromRat(n)
	return r.Start.Cmp(v) <= 0 && r.End.Cmp(v) >= 0
}

// Neg negates a range: `[-End,-Start]`.
func (r Range) Neg() Range {
	return Range{r.End.Negate(), r.Start.Negate()}
}

// Add computes the transfer function for `+`: `[a+c, b+d]`.
func (r Range) Add(o Range) Range {
	return Range{r.Start.Add(o.Start), r.End.Add(o.End)}
}

// Sub computes the transfer function for `-`: `[a-d, b-c]`.
func (r Range) Sub(o Range) Range {
	return Range{r.Start.Sub(o.End), r.End.Sub(o.Start)}
}

// Mul computes the transfer function for `*` via endpoint enumeration:
// `[min(ac,ad,bc,bd), max(ac,ad,bc,bd)]`.
func (r Range) Mul(o Range) Range {
	var (
		ac = r.Start.Mul(o.Start)
		ad = r.Start.Mul(o.End)
		bc = r.End.Mul(o.Start)
		bd = r.End.Mul(o.End)
	)

	min := ac.Min(ad).Min(bc.Min(bd))
	max := ac.Max(ad).Max(bc.Max(bd))

	return Range{min, max}
}

// TrueDiv computes the transfer function for `/`.  Division by a range which
// straddles (or touches) zero returns Top, since the result is unbounded (or
// undefined) somewhere in the divisor's range.
func (r Range) TrueDiv(o Range) Range {
	if o.Contains(*big.NewRat(0, 1)) {
		return Top()
	}

	var (
		ac = r.Start.divide(o.Start)
		ad = r.Start.divide(o.End)
		bc = r.End.divide(o.Start)
		bd = r.End.divide(o.End)
	)

	min := ac.Min(ad).Min(bc.Min(bd))
	max := ac.Max(ad).Max(bc.Max(bd))

	return Range{min, max}
}

// FloorDiv computes the transfer function for integer floor-division.
// Endpoints round towards -inf on the lower bound and towards +inf on the
// upper bound, per spec: "Integer operations (floordiv, mod) must round
// endpoints toward -inf on the lower bound and toward +inf on the upper
// bound".
func (r Range) FloorDiv(o Range) Range {
	d := r.TrueDiv(o)

	return Range{d.Start.Floor(), d.End.Ceil()}
}

// Mod computes the transfer function for `%`.  If the modulus is a positive
// integer constant m, the result is exactly [0, m-1]; in every other case the
// result is unbounded (Top), since the sign and magnitude of a symbolic
// modulus cannot be related soundly to the dividend's range.
func (r Range) Mod(o Range) Range {
	if m, ok := o.IsConst(); ok && m.Sign() > 0 && m.IsInt() {
		one := big.NewRat(1, 1)
		upper := new(big.Rat).Sub(&m, one)

		return Range{FromInt(0), FromRat(*upper)}
	}

	return Top()
}

// Ceil computes the transfer function for ceiling: monotone, so each
// endpoint maps independently.
func (r Range) Ceil() Range {
	return Range{r.Start.Ceil(), r.End.Ceil()}
}

// Floor computes the transfer function for floor: monotone, so each
// endpoint maps independently.
func (r Range) Floor() Range {
	return Range{r.Start.Floor(), r.End.Floor()}
}

// Abs computes the transfer function for absolute value.  A range entirely
// on one side of zero maps monotonically (or anti-monotonically); a range
// straddling zero maps to `[0, max(|Start|,|End|)]`.
func (r Range) Abs() Range {
	zero := FromInt(0)

	switch {
	case r.Start.Cmp(zero) >= 0:
		return r
	case r.End.Cmp(zero) <= 0:
		return Range{r.End.Negate(), r.Start.Negate()}
	default:
		return Range{zero, r.Start.Negate().Max(r.End)}
	}
}

// Max computes the transfer function for the binary max operator:
// `[max(a,c), max(b,d)]`.
func (r Range) Max(o Range) Range {
	return Range{r.Start.Max(o.Start), r.End.Max(o.End)}
}

// Min computes the transfer function for the binary min operator:
// `[min(a,c), min(b,d)]`.
func (r Range) Min(o Range) Range {
	return Range{r.Start.Min(o.Start), r.End.Min(o.End)}
}

// Intersect computes the meet (greatest lower bound) of two ranges in the
// interval lattice: `[max(a,c), min(b,d)]`.  The result may be invalid
// (Valid() == false) if the ranges are disjoint.
func (r Range) Intersect(o Range) Range {
	return Range{r.Start.Max(o.Start), r.End.Min(o.End)}
}

// Union computes the join (least upper bound): `[min(a,c), max(b,d)]`.
func (r Range) Union(o Range) Range {
	return Range{r.Start.Min(o.Start), r.End.Max(o.End)}
}

// LtRange returns true iff every value in r is strictly less than every
// value in o, i.e. `r.End < o.Start`.
func (r Range) LtRange(o Range) bool {
	return r.End.Cmp(o.Start) < 0
}

// LteRange returns true iff every value in r is less-than-or-equal to every
// value in o, i.e. `r.End <= o.Start`.
func (r Range) LteRange(o Range) bool {
	return r.End.Cmp(o.Start) <= 0
}

// Disjoint returns true iff r and o share no values, in either direction.
func (r Range) Disjoint(o Range) bool {
	return r.LtRange(o) || o.LtRange(r)
}

func (r Range) String() string {
	return fmt.Sprintf("[%s..%s]", r.Start.String(), r.End.String())
}

// Eq returns true iff r and o are both singleton and equal.
func (r Range) Eq(o Range) bool {
	rc, rok := r.IsConst()
	oc, ook := o.IsConst()

	return rok && ook && rc.Cmp(&oc) == 0
}

// divide is only ever called by TrueDiv once the divisor's range has been
// confirmed not to straddle (or touch) zero, so a zero divisor endpoint
// cannot arise here.
func (p InfRat) divide(o InfRat) InfRat {
	switch {
	case p.sign == infinity || o.sign == infinity:
		return Inf
	case p.sign == notAnInfinity && o.sign == notAnInfinity:
		var val big.Rat
		val.Quo(&p.val, &o.val)

		return InfRat{val, notAnInfinity}
	case o.sign == notAnInfinity:
		return p.signedInfinity(o.val.Sign())
	case p.sign == notAnInfinity:
		return FromInt(0)
	case p.sign == o.sign:
		return PosInf
	default:
		return NegInf
	}
}
