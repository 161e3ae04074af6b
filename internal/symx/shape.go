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

import "github.com/pytea-go/constraint-engine/internal/pretty"

// Shape is a tensor-shape-result-kind expression: `[d0,...,dn-1]` constants,
// a symbol carrying its own rank expression, and the four shape-algebra
// operators used by the interpreter's tensor-op shims.
type Shape interface {
	Lisp() pretty.SExp
	shapeNode()
}

// ShapeConst is a constant shape, e.g. `[3, 4, 5]`.
type ShapeConst struct {
	Dims []Num
}

// ConstShape constructs a constant shape expression.
func ConstShape(dims ...Num) *ShapeConst {
	return &ShapeConst{Dims: dims}
}

func (*ShapeConst) shapeNode() {}

// Lisp implements Shape.
func (c *ShapeConst) Lisp() pretty.SExp {
	elems := make([]pretty.SExp, len(c.Dims))
	for i, d := range c.Dims {
		elems[i] = d.Lisp()
	}

	return pretty.NewList(append([]pretty.SExp{pretty.NewSymbol("shape")}, elems...))
}

// ShapeSymbol is a reference to a Shape-kind symbol.  Its rank is carried on
// the referenced Symbol itself (Symbol.Rank), since a shape symbol's rank
// may be symbolic before its dimensions are known.
type ShapeSymbol struct {
	Sym Symbol
}

// ShapeRef constructs a shape symbol reference.  Panics if sym is not a
// Shape symbol.
func ShapeRef(sym Symbol) *ShapeSymbol {
	if sym.Kind != Shape {
		panic("symbol reference used as Shape must be Shape-kinded")
	}

	return &ShapeSymbol{Sym: sym}
}

func (*ShapeSymbol) shapeNode() {}

// Lisp implements Shape.
func (s *ShapeSymbol) Lisp() pretty.SExp {
	return pretty.NewSymbol(s.Sym.Name)
}

// ShapeSet replaces the dimension at Axis in Base with NewDim:
// `set(base, axis, newDim)`.
type ShapeSet struct {
	Base   Shape
	Axis   Num
	NewDim Num
}

// SetDim constructs a dimension-replacement expression.
func SetDim(base Shape, axis, newDim Num) *ShapeSet {
	return &ShapeSet{Base: base, Axis: axis, NewDim: newDim}
}

func (*ShapeSet) shapeNode() {}

// Lisp implements Shape.
func (s *ShapeSet) Lisp() pretty.SExp {
	return pretty.NewList([]pretty.SExp{
		pretty.NewSymbol("set"), s.Base.Lisp(), s.Axis.Lisp(), s.NewDim.Lisp(),
	})
}

// ShapeSlice takes the half-open range of dimensions `[start,end)` from
// Base: `slice(base, start, end)`.
type ShapeSlice struct {
	Base       Shape
	Start, End Num
}

// SliceDims constructs a dimension-slice expression.
func SliceDims(base Shape, start, end Num) *ShapeSlice {
	return &ShapeSlice{Base: base, Start: start, End: end}
}

func (*ShapeSlice) shapeNode() {}

// Lisp implements Shape.
func (s *ShapeSlice) Lisp() pretty.SExp {
	return pretty.NewList([]pretty.SExp{
		pretty.NewSymbol("slice"), s.Base.Lisp(), s.Start.Lisp(), s.End.Lisp(),
	})
}

// ShapeConcat concatenates the dimension lists of Left and Right:
// `concat(left, right)`.
type ShapeConcat struct {
	Left, Right Shape
}

// ConcatShapes constructs a shape-concatenation expression.
func ConcatShapes(left, right Shape) *ShapeConcat {
	return &ShapeConcat{Left: left, Right: right}
}

func (*ShapeConcat) shapeNode() {}

// Lisp implements Shape.
func (c *ShapeConcat) Lisp() pretty.SExp {
	return pretty.NewList([]pretty.SExp{pretty.NewSymbol("concat"), c.Left.Lisp(), c.Right.Lisp()})
}

// ShapeBroadcast computes the NumPy/PyTorch broadcast shape of Left and
// Right: `broadcast(left, right)`.
type ShapeBroadcast struct {
	Left, Right Shape
}

// BroadcastShapes constructs a broadcast-shape expression.
func BroadcastShapes(left, right Shape) *ShapeBroadcast {
	return &ShapeBroadcast{Left: left, Right: right}
}

func (*ShapeBroadcast) shapeNode() {}

// Lisp implements Shape.
func (b *ShapeBroadcast) Lisp() pretty.SExp {
	return pretty.NewList([]pretty.SExp{pretty.NewSymbol("broadcast"), b.Left.Lisp(), b.Right.Lisp()})
}
