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

// Structural equality compares tags then recurses; it is a sound
// under-approximation of semantic equality (spec.md §4.A, §9): it may
// report false for two expressions which are in fact always equal (e.g.
// `x+1` vs `1+x`), but never reports true for two expressions which can
// differ.  This is intentional and load-bearing for the decision
// procedure's monotonicity — it must not be "improved" into a full
// semantic equivalence check.

// NumEq tests two Num expressions for structural equality.
func NumEq(a, b Num) bool {
	switch x := a.(type) {
	case *NumConst:
		y, ok := b.(*NumConst)
		return ok && x.Value.Cmp(&y.Value) == 0
	case *NumSymbol:
		y, ok := b.(*NumSymbol)
		return ok && x.Sym.ID == y.Sym.ID
	case *NumUnary:
		y, ok := b.(*NumUnary)
		return ok && x.Op == y.Op && NumEq(x.Arg, y.Arg)
	case *NumBinary:
		y, ok := b.(*NumBinary)
		return ok && x.Op == y.Op && NumEq(x.Lhs, y.Lhs) && NumEq(x.Rhs, y.Rhs)
	case *NumExtreme:
		y, ok := b.(*NumExtreme)
		if !ok || x.IsMax != y.IsMax || len(x.Args) != len(y.Args) {
			return false
		}

		for i := range x.Args {
			if !NumEq(x.Args[i], y.Args[i]) {
				return false
			}
		}

		return true
	case *NumDim:
		y, ok := b.(*NumDim)
		return ok && ShapeEq(x.Base, y.Base) && NumEq(x.Index, y.Index)
	case *NumNumel:
		y, ok := b.(*NumNumel)
		return ok && ShapeEq(x.Base, y.Base)
	default:
		return false
	}
}

// BoolEq tests two Bool expressions for structural equality.
func BoolEq(a, b Bool) bool {
	switch x := a.(type) {
	case *BoolConst:
		y, ok := b.(*BoolConst)
		return ok && x.Value == y.Value
	case *BoolSymbol:
		y, ok := b.(*BoolSymbol)
		return ok && x.Sym.ID == y.Sym.ID
	default:
		return false
	}
}

// ShapeEq tests two Shape expressions for structural equality.
func ShapeEq(a, b Shape) bool {
	switch x := a.(type) {
	case *ShapeConst:
		y, ok := b.(*ShapeConst)
		if !ok || len(x.Dims) != len(y.Dims) {
			return false
		}

		for i := range x.Dims {
			if !NumEq(x.Dims[i], y.Dims[i]) {
				return false
			}
		}

		return true
	case *ShapeSymbol:
		y, ok := b.(*ShapeSymbol)
		return ok && x.Sym.ID == y.Sym.ID
	case *ShapeSet:
		y, ok := b.(*ShapeSet)
		return ok && ShapeEq(x.Base, y.Base) && NumEq(x.Axis, y.Axis) && NumEq(x.NewDim, y.NewDim)
	case *ShapeSlice:
		y, ok := b.(*ShapeSlice)
		return ok && ShapeEq(x.Base, y.Base) && NumEq(x.Start, y.Start) && NumEq(x.End, y.End)
	case *ShapeConcat:
		y, ok := b.(*ShapeConcat)
		return ok && ShapeEq(x.Left, y.Left) && ShapeEq(x.Right, y.Right)
	case *ShapeBroadcast:
		y, ok := b.(*ShapeBroadcast)
		return ok && ShapeEq(x.Left, y.Left) && ShapeEq(x.Right, y.Right)
	default:
		return false
	}
}

// StrEq tests two Str expressions for structural equality.
func StrEq(a, b Str) bool {
	switch x := a.(type) {
	case *StrConst:
		y, ok := b.(*StrConst)
		return ok && x.Value == y.Value
	case *StrSymbol:
		y, ok := b.(*StrSymbol)
		return ok && x.Sym.ID == y.Sym.ID
	case *StrConcat:
		y, ok := b.(*StrConcat)
		return ok && StrEq(x.Left, y.Left) && StrEq(x.Right, y.Right)
	case *StrSlice:
		y, ok := b.(*StrSlice)
		return ok && StrEq(x.Base, y.Base) && NumEq(x.Start, y.Start) && NumEq(x.End, y.End)
	default:
		return false
	}
}

// OperandEq tests two Operands for structural equality.  Operands of
// different Kind() are never structurally equal.
func OperandEq(a, b Operand) bool {
	if a.kind != b.kind {
		return false
	}

	switch a.kind {
	case NumOperand:
		return NumEq(a.num, b.num)
	case BoolOperand:
		return BoolEq(a.bool_, b.bool_)
	case ShapeOperand:
		return ShapeEq(a.shape, b.shape)
	case StrOperand:
		return StrEq(a.str, b.str)
	default:
		return false
	}
}
