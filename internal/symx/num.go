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
package symx

import (
	"math/big"

	"github.com/pytea-go/constraint-engine/internal/pretty"
)

// Num is a numeric-result-kind expression: constants, symbol references,
// unary/binary arithmetic, max/min over a sequence, and the two
// shape-derived numeric operators (dim, numel).  Constructors never
// normalize (SymbolRef, Max and Min panic on misuse); see internal/simplify
// for peephole normalization.
type Num interface {
	// Lisp renders this node as an S-expression, for pretty-printing.
	Lisp() pretty.SExp
	numNode()
}

// UnaryOp identifies a unary numeric operator.
type UnaryOp uint8

// Unary numeric operators.
const (
	NegOp UnaryOp = iota
	CeilOp
	FloorOp
	AbsOp
)

func (op UnaryOp) String() string {
	switch op {
	case NegOp:
		return "neg"
	case CeilOp:
		return "ceil"
	case FloorOp:
		return "floor"
	case AbsOp:
		return "abs"
	default:
		return "?"
	}
}

// BinOp identifies a binary numeric operator.
type BinOp uint8

// Binary numeric operators.
const (
	AddOp BinOp = iota
	SubOp
	MulOp
	TrueDivOp
	FloorDivOp
	ModOp
)

func (op BinOp) String() string {
	switch op {
	case AddOp:
		return "+"
	case SubOp:
		return "-"
	case MulOp:
		return "*"
	case TrueDivOp:
		return "/"
	case FloorDivOp:
		return "//"
	case ModOp:
		return "%"
	default:
		return "?"
	}
}

// NumConst is a constant numeric value.  IsFloat distinguishes a literal
// float (e.g. `1.0`) from an integer literal (`1`) with the same value, for
// display purposes; the Range domain treats both identically as rationals.
type NumConst struct {
	Value   big.Rat
	IsFloat bool
}

// ConstInt constructs an integer numeric constant.
func ConstInt(v int64) *NumConst {
	var r big.Rat
	r.SetInt64(v)

	return &NumConst{Value: r}
}

// ConstFloat constructs a floating-point numeric constant from a rational
// value.
func ConstFloat(v big.Rat) *NumConst {
	return &NumConst{Value: v, IsFloat: true}
}

func (*NumConst) numNode() {}

// Lisp implements Num.
func (c *NumConst) Lisp() pretty.SExp {
	return pretty.NewSymbol(c.Value.RatString())
}

// NumSymbol is a reference to a numeric (Int or Float) symbol.
type NumSymbol struct {
	Sym Symbol
}

// SymbolRef constructs a numeric symbol reference.  Panics if sym is not
// Int or Float (a usage error: this is a programmer mistake, not a runtime
// condition).
func SymbolRef(sym Symbol) *NumSymbol {
	if sym.Kind != Int && sym.Kind != Float {
		panic("symbol reference used as Num must be Int or Float")
	}

	return &NumSymbol{Sym: sym}
}

func (*NumSymbol) numNode() {}

// Lisp implements Num.
func (s *NumSymbol) Lisp() pretty.SExp {
	return pretty.NewSymbol(s.Sym.Name)
}

// NumUnary applies a unary operator to a numeric argument.
type NumUnary struct {
	Op  UnaryOp
	Arg Num
}

// Unary constructs a unary numeric expression.
func Unary(op UnaryOp, arg Num) *NumUnary {
	return &NumUnary{Op: op, Arg: arg}
}

func (*NumUnary) numNode() {}

// Lisp implements Num.
func (u *NumUnary) Lisp() pretty.SExp {
	return pretty.NewList([]pretty.SExp{pretty.NewSymbol(u.Op.String()), u.Arg.Lisp()})
}

// NumBinary applies a binary operator to two numeric arguments.
type NumBinary struct {
	Op       BinOp
	Lhs, Rhs Num
}

// Binary constructs a binary numeric expression.
func Binary(op BinOp, lhs, rhs Num) *NumBinary {
	return &NumBinary{Op: op, Lhs: lhs, Rhs: rhs}
}

func (*NumBinary) numNode() {}

// Lisp implements Num.
func (b *NumBinary) Lisp() pretty.SExp {
	return pretty.NewList([]pretty.SExp{pretty.NewSymbol(b.Op.String()), b.Lhs.Lisp(), b.Rhs.Lisp()})
}

// NumExtreme is a max or min over a non-empty sequence of numeric
// arguments.
type NumExtreme struct {
	IsMax bool
	Args  []Num
}

// Max constructs a max-over-sequence expression.  Panics (usage error) if
// given zero arguments.
func Max(args ...Num) *NumExtreme {
	if len(args) == 0 {
		panic("max requires at least one argument")
	}

	return &NumExtreme{IsMax: true, Args: args}
}

// Min constructs a min-over-sequence expression.  Panics (usage error) if
// given zero arguments.
func Min(args ...Num) *NumExtreme {
	if len(args) == 0 {
		panic("min requires at least one argument")
	}

	return &NumExtreme{IsMax: false, Args: args}
}

func (*NumExtreme) numNode() {}

// Lisp implements Num.
func (e *NumExtreme) Lisp() pretty.SExp {
	name := "min"
	if e.IsMax {
		name = "max"
	}

	elems := make([]pretty.SExp, 1+len(e.Args))
	elems[0] = pretty.NewSymbol(name)

	for i, a := range e.Args {
		elems[i+1] = a.Lisp()
	}

	return pretty.NewList(elems)
}

// NumDim projects the Index'th dimension out of a Shape: `dim(shape, i)`.
type NumDim struct {
	Base  Shape
	Index Num
}

// Dim constructs a shape-index projection.
func Dim(base Shape, index Num) *NumDim {
	return &NumDim{Base: base, Index: index}
}

func (*NumDim) numNode() {}

// Lisp implements Num.
func (d *NumDim) Lisp() pretty.SExp {
	return pretty.NewList([]pretty.SExp{pretty.NewSymbol("dim"), d.Base.Lisp(), d.Index.Lisp()})
}

// NumNumel computes the product of all dimensions of a Shape.
type NumNumel struct {
	Base Shape
}

// Numel constructs a numel (element-count) expression.
func Numel(base Shape) *NumNumel {
	return &NumNumel{Base: base}
}

func (*NumNumel) numNode() {}

// Lisp implements Num.
func (n *NumNumel) Lisp() pretty.SExp {
	return pretty.NewList([]pretty.SExp{pretty.NewSymbol("numel"), n.Base.Lisp()})
}
