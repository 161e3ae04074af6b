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

// Package decide implements the immediate decision procedure (component D):
// a structural-plus-interval classifier that tries to settle a constraint to
// true or false without invoking an external solver, falling back to
// unknown whenever neither the ranges nor the expression shapes pin it down.
package decide

import (
	"math/big"

	"github.com/pytea-go/constraint-engine/internal/rng"
	"github.com/pytea-go/constraint-engine/internal/simplify"
	"github.com/pytea-go/constraint-engine/internal/symx"
)

// Verdict is the three-valued outcome of Decide.
type Verdict uint8

// The three possible outcomes of Decide.
const (
	Unknown Verdict = iota
	True
	False
)

func (v Verdict) String() string {
	switch v {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}

func negate(v Verdict) Verdict {
	switch v {
	case True:
		return False
	case False:
		return True
	default:
		return Unknown
	}
}

// Context is everything Decide needs from the owning constraint-set
// snapshot: the same symbol-range/shape lookup the simplifier uses, plus a
// string-value lookup for deciding string equality. Defined here (rather
// than importing cset) for the same reason as simplify.Lookup: it lets
// *cset.Set satisfy this interface structurally without an import cycle.
type Context interface {
	simplify.Lookup
	// StringValue returns the concrete value of a Str expression, and true,
	// if it is already known (cset's getCachedString).
	StringValue(s symx.Str) (string, bool)
}

// Decide classifies a constraint as true, false, or unknown. When enabled is
// false (the caller's bulk-analysis performance switch, spec.md §4.D), it
// always returns Unknown without inspecting the constraint at all.
func Decide(c symx.Constraint, ctx Context, enabled bool) Verdict {
	if !enabled {
		return Unknown
	}

	return decideConstraint(c, ctx)
}

func decideConstraint(c symx.Constraint, ctx Context) Verdict {
	switch x := c.(type) {
	case *symx.ExpBool:
		return evalBool(x.Expr, ctx)
	case *symx.Equal:
		return decideOperandEq(x.Lhs, x.Rhs, ctx)
	case *symx.NotEqual:
		return decideNotEqual(x, ctx)
	case *symx.LessThan:
		return decideLt(x, ctx)
	case *symx.LessEq:
		return decideLe(x, ctx)
	case *symx.Conjunct:
		return decideConjunct(x, ctx)
	case *symx.Disjunct:
		return decideDisjunct(x, ctx)
	case *symx.Negation:
		return negate(decideConstraint(x.Arg, ctx))
	case *symx.Broadcastable:
		return decideBroadcastable(x, ctx)
	case *symx.Forall:
		return Unknown
	case *symx.Fail:
		return False
	default:
		return Unknown
	}
}

func evalBool(b symx.Bool, ctx Context) Verdict {
	switch x := b.(type) {
	case *symx.BoolConst:
		if x.Value {
			return True
		}

		return False
	case *symx.BoolSymbol:
		if r, ok := ctx.SymbolRange(x.Sym.ID); ok {
			if c, isConst := r.IsConst(); isConst {
				if c.Sign() == 0 {
					return False
				}

				return True
			}
		}

		return Unknown
	default:
		return Unknown
	}
}

func decideOperandEq(lhs, rhs symx.Operand, ctx Context) Verdict {
	if lhs.Kind() != rhs.Kind() {
		return False
	}

	switch lhs.Kind() {
	case symx.NumOperand:
		ln, _ := lhs.AsNum()
		rn, _ := rhs.AsNum()

		return decideNumEq(ln, rn, ctx)
	case symx.BoolOperand:
		lb, _ := lhs.AsBool()
		rb, _ := rhs.AsBool()

		lv, rv := evalBool(lb, ctx), evalBool(rb, ctx)
		if lv == Unknown || rv == Unknown {
			return Unknown
		}

		if lv == rv {
			return True
		}

		return False
	case symx.ShapeOperand:
		ls, _ := lhs.AsShape()
		rs, _ := rhs.AsShape()

		return decideShapeEq(ls, rs, ctx)
	case symx.StrOperand:
		lstr, _ := lhs.AsStr()
		rstr, _ := rhs.AsStr()

		return decideStrEq(lstr, rstr, ctx)
	default:
		return Unknown
	}
}

func decideNumEq(l, r symx.Num, ctx Context) Verdict {
	ls, rs := simplify.NumX(l, ctx), simplify.NumX(r, ctx)
	lr, rr := rangeOf(ls, ctx), rangeOf(rs, ctx)

	if lc, lok := lr.IsConst(); lok {
		if rc, rok := rr.IsConst(); rok {
			if lc.Cmp(&rc) == 0 {
				return True
			}

			return False
		}
	}

	if symx.NumEq(ls, rs) {
		return True
	}

	return Unknown
}

func decideShapeEq(l, r symx.Shape, ctx Context) Verdict {
	ls, rs := simplify.ShapeX(l, ctx), simplify.ShapeX(r, ctx)

	lc, lok := ls.(*symx.ShapeConst)
	rc, rok := rs.(*symx.ShapeConst)

	if lok && rok {
		if len(lc.Dims) != len(rc.Dims) {
			return False
		}

		for i := range lc.Dims {
			lv, lvOk := rangeOf(lc.Dims[i], ctx).IsConst()
			rv, rvOk := rangeOf(rc.Dims[i], ctx).IsConst()

			if lvOk && rvOk && lv.Cmp(&rv) != 0 {
				return False
			}
		}

		return Unknown
	}

	if symx.ShapeEq(ls, rs) {
		return True
	}

	return Unknown
}

func decideStrEq(l, r symx.Str, ctx Context) Verdict {
	ls, rs := simplify.StrX(l, ctx), simplify.StrX(r, ctx)

	if lv, ok := ctx.StringValue(ls); ok {
		if rv, ok2 := ctx.StringValue(rs); ok2 {
			if lv == rv {
				return True
			}

			return False
		}
	}

	if symx.StrEq(ls, rs) {
		return True
	}

	return Unknown
}

func decideNotEqual(c *symx.NotEqual, ctx Context) Verdict {
	if c.Lhs.Kind() == symx.NumOperand && c.Rhs.Kind() == symx.NumOperand {
		ln, _ := c.Lhs.AsNum()
		rn, _ := c.Rhs.AsNum()

		return decideNumNotEq(ln, rn, ctx)
	}

	return negate(decideOperandEq(c.Lhs, c.Rhs, ctx))
}

func decideNumNotEq(l, r symx.Num, ctx Context) Verdict {
	ls, rs := simplify.NumX(l, ctx), simplify.NumX(r, ctx)
	lr, rr := rangeOf(ls, ctx), rangeOf(rs, ctx)

	if lr.LtRange(rr) || rr.LtRange(lr) {
		return True
	}

	if symx.NumEq(ls, rs) {
		return False
	}

	return Unknown
}

func decideLt(c *symx.LessThan, ctx Context) Verdict {
	lr := rangeOf(simplify.NumX(c.Lhs, ctx), ctx)
	rr := rangeOf(simplify.NumX(c.Rhs, ctx), ctx)

	switch {
	case lr.LtRange(rr):
		return True
	case rr.LteRange(lr):
		return False
	default:
		return Unknown
	}
}

func decideLe(c *symx.LessEq, ctx Context) Verdict {
	lr := rangeOf(simplify.NumX(c.Lhs, ctx), ctx)
	rr := rangeOf(simplify.NumX(c.Rhs, ctx), ctx)

	switch {
	case lr.LteRange(rr):
		return True
	case rr.LtRange(lr):
		return False
	default:
		return Unknown
	}
}

func decideConjunct(c *symx.Conjunct, ctx Context) Verdict {
	lv := decideConstraint(c.Lhs, ctx)
	if lv == False {
		return False
	}

	rv := decideConstraint(c.Rhs, ctx)
	if rv == False {
		return False
	}

	if lv == True && rv == True {
		return True
	}

	return Unknown
}

func decideDisjunct(c *symx.Disjunct, ctx Context) Verdict {
	lv := decideConstraint(c.Lhs, ctx)
	if lv == True {
		return True
	}

	rv := decideConstraint(c.Rhs, ctx)
	if rv == True {
		return True
	}

	if lv == False && rv == False {
		return False
	}

	return Unknown
}

type bcResult uint8

const (
	bcUnknown bcResult = iota
	bcKnown
	bcFalse
)

func decideBroadcastable(c *symx.Broadcastable, ctx Context) Verdict {
	ls, rs := simplify.ShapeX(c.Left, ctx), simplify.ShapeX(c.Right, ctx)

	lc, lok := ls.(*symx.ShapeConst)
	rc, rok := rs.(*symx.ShapeConst)

	if !lok || !rok {
		return Unknown
	}

	n := max(len(lc.Dims), len(rc.Dims))
	lDims := padLeft(lc.Dims, n)
	rDims := padLeft(rc.Dims, n)

	allKnown := true

	for i := 0; i < n; i++ {
		switch selectBroadcastable(lDims[i], rDims[i], ctx) {
		case bcFalse:
			return False
		case bcUnknown:
			allKnown = false
		}
	}

	if allKnown {
		return True
	}

	return Unknown
}

// padLeft pads dims with implicit leading size-1 dimensions up to length n,
// matching NumPy/PyTorch's right-aligned broadcasting rule.
func padLeft(dims []symx.Num, n int) []symx.Num {
	if len(dims) >= n {
		return dims
	}

	out := make([]symx.Num, n)
	pad := n - len(dims)

	for i := 0; i < pad; i++ {
		out[i] = symx.ConstInt(1)
	}

	copy(out[pad:], dims)

	return out
}

var one = big.NewRat(1, 1)

// selectBroadcastable implements the eight-rule table of spec.md §4.D for a
// single paired dimension.
func selectBroadcastable(a, b symx.Num, ctx Context) bcResult {
	ar, br := rangeOf(a, ctx), rangeOf(b, ctx)

	aConst, aOk := ar.IsConst()
	bConst, bOk := br.IsConst()

	if aOk && aConst.Cmp(one) == 0 {
		return bcKnown
	}

	if bOk && bConst.Cmp(one) == 0 {
		return bcKnown
	}

	if aOk && bOk {
		if aConst.Cmp(&bConst) == 0 {
			return bcKnown
		}

		return bcFalse
	}

	if aOk && !br.Contains(aConst) {
		return bcFalse
	}

	if bOk && !ar.Contains(bConst) {
		return bcFalse
	}

	if ar.Disjoint(br) {
		return bcFalse
	}

	if symx.NumEq(a, b) {
		return bcKnown
	}

	return bcUnknown
}

// rangeOf computes the interval abstraction of a numeric expression,
// consulting ctx for symbol ranges and first running the peephole
// simplifier so that a foldable dim/numel projection gets a chance to
// become a concrete constant before range transfer functions run.
func rangeOf(n symx.Num, ctx Context) rng.Range {
	n = simplify.NumX(n, ctx)

	switch x := n.(type) {
	case *symx.NumConst:
		return rng.FromConst(x.Value)
	case *symx.NumSymbol:
		if r, ok := ctx.SymbolRange(x.Sym.ID); ok {
			return r
		}

		return rng.Top()
	case *symx.NumUnary:
		arg := rangeOf(x.Arg, ctx)

		switch x.Op {
		case symx.NegOp:
			return arg.Neg()
		case symx.CeilOp:
			return arg.Ceil()
		case symx.FloorOp:
			return arg.Floor()
		case symx.AbsOp:
			return arg.Abs()
		default:
			return rng.Top()
		}
	case *symx.NumBinary:
		l, r := rangeOf(x.Lhs, ctx), rangeOf(x.Rhs, ctx)

		switch x.Op {
		case symx.AddOp:
			return l.Add(r)
		case symx.SubOp:
			return l.Sub(r)
		case symx.MulOp:
			return l.Mul(r)
		case symx.TrueDivOp:
			return l.TrueDiv(r)
		case symx.FloorDivOp:
			return l.FloorDiv(r)
		case symx.ModOp:
			return l.Mod(r)
		default:
			return rng.Top()
		}
	case *symx.NumExtreme:
		if len(x.Args) == 0 {
			return rng.Top()
		}

		acc := rangeOf(x.Args[0], ctx)

		for _, a := range x.Args[1:] {
			ar := rangeOf(a, ctx)
			if x.IsMax {
				acc = acc.Max(ar)
			} else {
				acc = acc.Min(ar)
			}
		}

		return acc
	default:
		return rng.Top()
	}
}
