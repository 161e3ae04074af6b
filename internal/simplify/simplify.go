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

// Package simplify implements the peephole expression simplifier (component
// C): bottom-up constant folding, identity elision, and shape-index
// projection.  It is called on demand and its results are never cached
// persistently — the caller re-simplifies whenever it needs a normal form.
package simplify

import (
	"math/big"

	"github.com/pytea-go/constraint-engine/internal/rng"
	"github.com/pytea-go/constraint-engine/internal/symx"
)

// Lookup gives the simplifier read-only access to the parts of a
// constraint-set snapshot it needs to specialize symbols: a symbol's
// current range (to fold a Num symbol whose range has narrowed to a single
// point) and a shape symbol's known dimensions (to project dim/numel
// through it). Defined as an interface here, rather than importing the
// cset package directly, to avoid a cset -> simplify -> cset import cycle:
// *cset.Set satisfies this interface structurally.
type Lookup interface {
	SymbolRange(id uint64) (rng.Range, bool)
	SymbolShape(id uint64) ([]symx.Num, bool)
}

// noLookup is used when a caller has no constraint-set context at hand
// (e.g. simplifying a freshly-built expression before it is ever installed).
type noLookup struct{}

func (noLookup) SymbolRange(uint64) (rng.Range, bool)    { return rng.Range{}, false }
func (noLookup) SymbolShape(uint64) ([]symx.Num, bool) { return nil, false }

// NoContext is a Lookup with no symbol information at all.
var NoContext Lookup = noLookup{}

// NumX simplifies a numeric expression bottom-up.
func NumX(n symx.Num, ctx Lookup) symx.Num {
	switch x := n.(type) {
	case *symx.NumConst:
		return x
	case *symx.NumSymbol:
		if r, ok := ctx.SymbolRange(x.Sym.ID); ok {
			if c, isConst := r.IsConst(); isConst {
				return &symx.NumConst{Value: c, IsFloat: x.Sym.Kind == symx.Float}
			}
		}

		return x
	case *symx.NumUnary:
		return simplifyUnary(x, ctx)
	case *symx.NumBinary:
		return simplifyBinary(x, ctx)
	case *symx.NumExtreme:
		return simplifyExtreme(x, ctx)
	case *symx.NumDim:
		return simplifyDim(x, ctx)
	case *symx.NumNumel:
		return simplifyNumel(x, ctx)
	default:
		return n
	}
}

func simplifyUnary(u *symx.NumUnary, ctx Lookup) symx.Num {
	arg := NumX(u.Arg, ctx)

	if c, ok := arg.(*symx.NumConst); ok {
		var v big.Rat

		switch u.Op {
		case symx.NegOp:
			v.Neg(&c.Value)
		case symx.CeilOp:
			v = rng.FromRat(c.Value).Ceil().RatVal()
		case symx.FloorOp:
			v = rng.FromRat(c.Value).Floor().RatVal()
		case symx.AbsOp:
			v.Abs(&c.Value)
		}

		return &symx.NumConst{Value: v, IsFloat: c.IsFloat}
	}
	// fold nested neg: neg(neg(x)) == x
	if u.Op == symx.NegOp {
		if inner, ok := arg.(*symx.NumUnary); ok && inner.Op == symx.NegOp {
			return inner.Arg
		}
	}

	return symx.Unary(u.Op, arg)
}

func simplifyBinary(b *symx.NumBinary, ctx Lookup) symx.Num {
	lhs := NumX(b.Lhs, ctx)
	rhs := NumX(b.Rhs, ctx)

	lc, lok := lhs.(*symx.NumConst)
	rc, rok := rhs.(*symx.NumConst)

	if lok && rok {
		if v, ok := foldConstBinary(b.Op, lc.Value, rc.Value); ok {
			return &symx.NumConst{Value: v, IsFloat: lc.IsFloat || rc.IsFloat}
		}
	}
	// identities
	switch b.Op {
	case symx.AddOp:
		if rok && isZero(rc.Value) {
			return lhs
		}

		if lok && isZero(lc.Value) {
			return rhs
		}
	case symx.SubOp:
		if rok && isZero(rc.Value) {
			return lhs
		}
	case symx.MulOp:
		if (rok && isZero(rc.Value)) || (lok && isZero(lc.Value)) {
			return symx.ConstInt(0)
		}

		if rok && isOne(rc.Value) {
			return lhs
		}

		if lok && isOne(lc.Value) {
			return rhs
		}
	case symx.TrueDivOp, symx.FloorDivOp:
		if rok && isOne(rc.Value) {
			return lhs
		}
	}

	return symx.Binary(b.Op, lhs, rhs)
}

func foldConstBinary(op symx.BinOp, l, r big.Rat) (big.Rat, bool) {
	var v big.Rat

	switch op {
	case symx.AddOp:
		v.Add(&l, &r)
	case symx.SubOp:
		v.Sub(&l, &r)
	case symx.MulOp:
		v.Mul(&l, &r)
	case symx.TrueDivOp:
		if r.Sign() == 0 {
			return big.Rat{}, false
		}

		v.Quo(&l, &r)
	case symx.FloorDivOp:
		if r.Sign() == 0 {
			return big.Rat{}, false
		}

		var q big.Rat
		q.Quo(&l, &r)
		v = rng.FromRat(q).Floor().RatVal()
	case symx.ModOp:
		if r.Sign() == 0 || !r.IsInt() || !l.IsInt() {
			return big.Rat{}, false
		}

		var m, rem big.Int
		m.Abs(r.Num())
		rem.Mod(l.Num(), &m)
		v.SetInt(&rem)
	default:
		return big.Rat{}, false
	}

	return v, true
}

func isZero(v big.Rat) bool { return v.Sign() == 0 }
func isOne(v big.Rat) bool  { one := big.NewRat(1, 1); return v.Cmp(one) == 0 }

func simplifyExtreme(e *symx.NumExtreme, ctx Lookup) symx.Num {
	args := make([]symx.Num, len(e.Args))
	for i, a := range e.Args {
		args[i] = NumX(a, ctx)
	}

	if len(args) == 1 {
		return args[0]
	}

	allConst := true

	best := big.Rat{}

	for i, a := range args {
		c, ok := a.(*symx.NumConst)
		if !ok {
			allConst = false
			break
		}

		if i == 0 {
			best = c.Value
			continue
		}

		cmp := c.Value.Cmp(&best)
		if (e.IsMax && cmp > 0) || (!e.IsMax && cmp < 0) {
			best = c.Value
		}
	}

	if allConst {
		return &symx.NumConst{Value: best}
	}

	return &symx.NumExtreme{IsMax: e.IsMax, Args: args}
}

func simplifyDim(d *symx.NumDim, ctx Lookup) symx.Num {
	base := ShapeX(d.Base, ctx)
	index := NumX(d.Index, ctx)

	if sc, ok := base.(*symx.ShapeConst); ok {
		if ic, ok := index.(*symx.NumConst); ok && ic.Value.IsInt() {
			i := ic.Value.Num().Int64()
			if i >= 0 && int(i) < len(sc.Dims) {
				return sc.Dims[i]
			}
		}
	}

	if set, ok := base.(*symx.ShapeSet); ok {
		if axisConst, aok := set.Axis.(*symx.NumConst); aok {
			if idxConst, iok := index.(*symx.NumConst); iok && axisConst.Value.Cmp(&idxConst.Value) == 0 {
				return set.NewDim
			}
		} else if symx.NumEq(set.Axis, index) {
			return set.NewDim
		}
	}

	return symx.Dim(base, index)
}

func simplifyNumel(n *symx.NumNumel, ctx Lookup) symx.Num {
	base := ShapeX(n.Base, ctx)

	if sc, ok := base.(*symx.ShapeConst); ok {
		allConst := true
		prod := big.NewRat(1, 1)

		for _, d := range sc.Dims {
			c, ok := d.(*symx.NumConst)
			if !ok {
				allConst = false
				break
			}

			prod.Mul(prod, &c.Value)
		}

		if allConst {
			return &symx.NumConst{Value: *prod}
		}
	}

	return symx.Numel(base)
}

// BoolX simplifies a boolean expression.  There is little to fold here: Bool
// symbols are only specialized when the decision procedure consults their
// {0,1} range directly (spec.md §4.D), not by this peephole pass.
func BoolX(b symx.Bool, _ Lookup) symx.Bool {
	return b
}

// ShapeX simplifies a shape expression bottom-up: simplifying the operands
// of `set` (a `set` node itself is kept, not folded into a constant shape),
// forwarding `slice` over constant shapes, and resolving a shape symbol to
// its cached concrete dimensions when known.
func ShapeX(s symx.Shape, ctx Lookup) symx.Shape {
	switch x := s.(type) {
	case *symx.ShapeConst:
		dims := make([]symx.Num, len(x.Dims))
		for i, d := range x.Dims {
			dims[i] = NumX(d, ctx)
		}

		return &symx.ShapeConst{Dims: dims}
	case *symx.ShapeSymbol:
		if dims, ok := ctx.SymbolShape(x.Sym.ID); ok {
			return &symx.ShapeConst{Dims: dims}
		}

		return x
	case *symx.ShapeSet:
		return &symx.ShapeSet{Base: ShapeX(x.Base, ctx), Axis: NumX(x.Axis, ctx), NewDim: NumX(x.NewDim, ctx)}
	case *symx.ShapeSlice:
		base := ShapeX(x.Base, ctx)
		start := NumX(x.Start, ctx)
		end := NumX(x.End, ctx)

		if sc, ok := base.(*symx.ShapeConst); ok {
			if sv, sok := start.(*symx.NumConst); sok && sv.Value.IsInt() {
				if ev, eok := end.(*symx.NumConst); eok && ev.Value.IsInt() {
					lo := normalizeIndex(sv.Value.Num().Int64(), len(sc.Dims))
					hi := normalizeIndex(ev.Value.Num().Int64(), len(sc.Dims))

					if lo >= 0 && hi >= lo && hi <= len(sc.Dims) {
						return &symx.ShapeConst{Dims: sc.Dims[lo:hi]}
					}
				}
			}
		}

		return &symx.ShapeSlice{Base: base, Start: start, End: end}
	case *symx.ShapeConcat:
		left := ShapeX(x.Left, ctx)
		right := ShapeX(x.Right, ctx)

		if lc, lok := left.(*symx.ShapeConst); lok {
			if rc, rok := right.(*symx.ShapeConst); rok {
				dims := append(append([]symx.Num{}, lc.Dims...), rc.Dims...)
				return &symx.ShapeConst{Dims: dims}
			}
		}

		return &symx.ShapeConcat{Left: left, Right: right}
	case *symx.ShapeBroadcast:
		return &symx.ShapeBroadcast{Left: ShapeX(x.Left, ctx), Right: ShapeX(x.Right, ctx)}
	default:
		return s
	}
}

// normalizeIndex applies the standard absolute-index-modulo-length rule: a
// negative index counts back from the end.
func normalizeIndex(i int64, length int) int {
	if i < 0 {
		i += int64(length)
	}

	return int(i)
}

// StrX simplifies a string expression bottom-up: folding `concat` when both
// sides are known constants, and resolving `slice` when the base and both
// bounds are constant.
func StrX(s symx.Str, ctx Lookup) symx.Str {
	switch x := s.(type) {
	case *symx.StrConst:
		return x
	case *symx.StrSymbol:
		return x
	case *symx.StrConcat:
		left := StrX(x.Left, ctx)
		right := StrX(x.Right, ctx)

		if lc, lok := left.(*symx.StrConst); lok {
			if rc, rok := right.(*symx.StrConst); rok {
				return &symx.StrConst{Value: lc.Value + rc.Value}
			}
		}

		return &symx.StrConcat{Left: left, Right: right}
	case *symx.StrSlice:
		base := StrX(x.Base, ctx)
		start := NumX(x.Start, ctx)
		end := NumX(x.End, ctx)

		if bc, ok := base.(*symx.StrConst); ok {
			if sv, sok := start.(*symx.NumConst); sok && sv.Value.IsInt() {
				if ev, eok := end.(*symx.NumConst); eok && ev.Value.IsInt() {
					lo := normalizeIndex(sv.Value.Num().Int64(), len(bc.Value))
					hi := normalizeIndex(ev.Value.Num().Int64(), len(bc.Value))

					if lo >= 0 && hi >= lo && hi <= len(bc.Value) {
						return &symx.StrConst{Value: bc.Value[lo:hi]}
					}
				}
			}
		}

		return &symx.StrSlice{Base: base, Start: start, End: end}
	default:
		return s
	}
}

// OperandX simplifies whichever of Num/Bool/Shape/Str an Operand wraps,
// re-wrapping the result at the same kind.
func OperandX(o symx.Operand, ctx Lookup) symx.Operand {
	switch o.Kind() {
	case symx.NumOperand:
		n, _ := o.AsNum()
		return symx.OfNum(NumX(n, ctx))
	case symx.BoolOperand:
		b, _ := o.AsBool()
		return symx.OfBool(BoolX(b, ctx))
	case symx.ShapeOperand:
		s, _ := o.AsShape()
		return symx.OfShape(ShapeX(s, ctx))
	case symx.StrOperand:
		s, _ := o.AsStr()
		return symx.OfStr(StrX(s, ctx))
	default:
		return o
	}
}

// ConstraintX simplifies a constraint bottom-up by simplifying its operands
// in place, preserving the constraint's id and source location (spec.md
// §4.E: "getConstraints() returns simplified snapshots of the pool" — the
// pool entry's identity doesn't change, only its operands normalize).
func ConstraintX(c symx.Constraint, ctx Lookup) symx.Constraint {
	switch x := c.(type) {
	case *symx.ExpBool:
		return symx.NewExpBool(x.CtrID(), x.Location(), BoolX(x.Expr, ctx))
	case *symx.Equal:
		return symx.NewEqual(x.CtrID(), x.Location(), OperandX(x.Lhs, ctx), OperandX(x.Rhs, ctx))
	case *symx.NotEqual:
		return symx.NewNotEqual(x.CtrID(), x.Location(), OperandX(x.Lhs, ctx), OperandX(x.Rhs, ctx))
	case *symx.LessThan:
		return symx.NewLessThan(x.CtrID(), x.Location(), NumX(x.Lhs, ctx), NumX(x.Rhs, ctx))
	case *symx.LessEq:
		return symx.NewLessEq(x.CtrID(), x.Location(), NumX(x.Lhs, ctx), NumX(x.Rhs, ctx))
	case *symx.Conjunct:
		return symx.NewConjunct(x.CtrID(), x.Location(), ConstraintX(x.Lhs, ctx), ConstraintX(x.Rhs, ctx))
	case *symx.Disjunct:
		return symx.NewDisjunct(x.CtrID(), x.Location(), ConstraintX(x.Lhs, ctx), ConstraintX(x.Rhs, ctx))
	case *symx.Negation:
		return symx.NewNegation(x.CtrID(), x.Location(), ConstraintX(x.Arg, ctx))
	case *symx.Broadcastable:
		return symx.NewBroadcastable(x.CtrID(), x.Location(), ShapeX(x.Left, ctx), ShapeX(x.Right, ctx))
	case *symx.Forall:
		return symx.RebuildForall(x, NumX(x.Lo, ctx), NumX(x.Hi, ctx), ConstraintX(x.Body, ctx))
	case *symx.Fail:
		return x
	default:
		return c
	}
}
