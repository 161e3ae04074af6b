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
package rng

import (
	"fmt"
	"math/big"
)

const (
	notAnInfinity    = 0
	negativeInfinity = 1
	positiveInfinity = 2
	infinity         = 3
)

// PosInf represents positive infinity.
var PosInf = InfRat{big.Rat{}, positiveInfinity}

// NegInf represents negative infinity.
var NegInf = InfRat{big.Rat{}, negativeInfinity}

// Inf represents plain infinity, which covers both negative and positive
// values simultaneously.
var Inf = InfRat{big.Rat{}, infinity}

// InfRat represents an unbounded rational value which can, additionally, be
// either negative infinity, positive infinity or just infinity (i.e. which
// covers all negative and positive values).
type InfRat struct {
	val  big.Rat
	sign uint8
}

// FromInt constructs a finite InfRat from an int64.
func FromInt(v int64) InfRat {
	var r InfRat
	r.val.SetInt64(v)

	return r
}

// FromRat constructs a finite InfRat from a big.Rat.
func FromRat(v big.Rat) InfRat {
	var r InfRat
	r.val.Set(&v)

	return r
}

// IsFinite returns true if this represents a finite rational value.
func (p InfRat) IsFinite() bool {
	return p.sign == notAnInfinity
}

// RatVal converts a finite InfRat into a big.Rat.  Panics if this is an
// infinity.
func (p InfRat) RatVal() big.Rat {
	if p.sign != notAnInfinity {
		panic("cannot cast infinity into a rational")
	}

	return p.val
}

// Cmp compares two (potentially infinite) values.  Panics if either value is
// plain infinity.
func (p InfRat) Cmp(o InfRat) int {
	switch {
	case p.sign == infinity || o.sign == infinity:
		panic("cannot compare against infinity")
	case p.sign == notAnInfinity && o.sign == notAnInfinity:
		return p.val.Cmp(&o.val)
	case p.sign == o.sign:
		return 0
	case p.sign == negativeInfinity || o.sign == positiveInfinity:
		return -1
	case p.sign == positiveInfinity || o.sign == negativeInfinity:
		return 1
	default:
		panic(fmt.Sprintf("unreachable (%s ~ %s)", p.String(), o.String()))
	}
}

// Min determines the least of two values.  Observe the semantics here are
// odd, as the minimum of plain infinity and anything is negative infinity.
func (p InfRat) Min(o InfRat) InfRat {
	switch {
	case p.sign == notAnInfinity && o.sign == notAnInfinity:
		if p.val.Cmp(&o.val) <= 0 {
			return p
		}

		return o
	case p.sign == infinity || o.sign == infinity:
		return NegInf
	case p.sign == positiveInfinity:
		return o
	case o.sign == positiveInfinity:
		return p
	default:
		return NegInf
	}
}

// Max determines the greatest of two values.  Observe the semantics here are
// odd, as the maximum of plain infinity and anything is positive infinity.
func (p InfRat) Max(o InfRat) InfRat {
	switch {
	case p.sign == notAnInfinity && o.sign == notAnInfinity:
		if p.val.Cmp(&o.val) >= 0 {
			return p
		}

		return o
	case p.sign == infinity || o.sign == infinity:
		return PosInf
	case p.sign == negativeInfinity:
		return o
	case o.sign == negativeInfinity:
		return p
	default:
		return PosInf
	}
}

// Add two (potentially infinite) values together.
func (p InfRat) Add(o InfRat) InfRat {
	var val big.Rat

	switch {
	case p.sign == notAnInfinity && o.sign == notAnInfinity:
		val.Add(&p.val, &o.val)
		return InfRat{val, notAnInfinity}
	case p.sign == infinity || o.sign == infinity:
		return Inf
	case p.sign == notAnInfinity:
		return o
	case o.sign == notAnInfinity:
		return p
	case p.sign == o.sign:
		return p
	default:
		return Inf
	}
}

// Negate this (potentially infinite) value.
func (p InfRat) Negate() InfRat {
	switch p.sign {
	case positiveInfinity:
		return NegInf
	case negativeInfinity:
		return PosInf
	case infinity:
		return Inf
	default:
		var val big.Rat
		val.Neg(&p.val)

		return InfRat{val, notAnInfinity}
	}
}

// Sub subtracts a (potentially infinite) value from this one.
func (p InfRat) Sub(o InfRat) InfRat {
	return p.Add(o.Negate())
}

// Mul multiplies two (potentially infinite) values.  If either operand is an
// infinity, some kind of infinity is always returned (the sign determined by
// the usual rule of signs, treating an infinity's own sign as unknown when
// it is "plain" infinity).
func (p InfRat) Mul(o InfRat) InfRat {
	switch {
	case p.IsZero() || o.IsZero():
		if p.sign == notAnInfinity && o.sign == notAnInfinity {
			return FromInt(0)
		}
		// zero times an infinity: treat conservatively as plain infinity,
		// since the other operand's magnitude is unknown to us.
		return Inf
	case p.sign == notAnInfinity && o.sign == notAnInfinity:
		var val big.Rat
		val.Mul(&p.val, &o.val)

		return InfRat{val, notAnInfinity}
	case p.sign == infinity || o.sign == infinity:
		return Inf
	case p.sign == notAnInfinity:
		return o.signedInfinity(p.val.Sign())
	case o.sign == notAnInfinity:
		return p.signedInfinity(o.val.Sign())
	case p.sign == o.sign:
		return PosInf
	default:
		return NegInf
	}
}

// IsZero returns true iff this is the finite value zero.
func (p InfRat) IsZero() bool {
	return p.sign == notAnInfinity && p.val.Sign() == 0
}

// signedInfinity flips an infinite receiver according to the sign of a
// finite multiplicand (sign is -1, 0 or +1).
func (p InfRat) signedInfinity(sign int) InfRat {
	switch {
	case sign == 0:
		return Inf
	case p.sign == infinity:
		return Inf
	case sign < 0:
		return p.Negate()
	default:
		return p
	}
}

// Floor rounds a finite value down towards negative infinity, returning a
// finite integral InfRat.  Infinities are fixed points of Floor.
func (p InfRat) Floor() InfRat {
	if p.sign != notAnInfinity {
		return p
	}

	var (
		q   big.Int
		r   big.Int
		val big.Rat
	)

	q.QuoRem(p.val.Num(), p.val.Denom(), &r)

	if r.Sign() != 0 && (r.Sign() < 0) != (p.val.Denom().Sign() < 0) {
		q.Sub(&q, big.NewInt(1))
	}

	val.SetInt(&q)

	return InfRat{val, notAnInfinity}
}

// Ceil rounds a finite value up towards positive infinity.  Infinities are
// fixed points of Ceil.
func (p InfRat) Ceil() InfRat {
	if p.sign != notAnInfinity {
		return p
	}

	neg := p.Negate()
	flo := neg.Floor()

	return flo.Negate()
}

// Abs returns the absolute value.  NegInf and PosInf both map to PosInf;
// plain Inf maps to itself.
func (p InfRat) Abs() InfRat {
	switch p.sign {
	case negativeInfinity, positiveInfinity:
		return PosInf
	case infinity:
		return Inf
	default:
		var val big.Rat
		val.Abs(&p.val)

		return InfRat{val, notAnInfinity}
	}
}

func (p InfRat) String() string {
	switch p.sign {
	case negativeInfinity:
		return "-inf"
	case positiveInfinity:
		return "+inf"
	case infinity:
		return "inf"
	default:
		if p.val.IsInt() {
			return p.val.Num().String()
		}

		return p.val.RatString()
	}
}
