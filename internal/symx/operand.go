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

// OperandKind identifies which of the four result-kinds an Operand wraps.
type OperandKind uint8

// The four expression result-kinds an Eq/NotEq constraint can compare.
const (
	NumOperand OperandKind = iota
	BoolOperand
	ShapeOperand
	StrOperand
)

// Operand is a kind-polymorphic wrapper around exactly one of Num, Bool,
// Shape or Str, used as the operand type of Eq and NotEq — the only two
// constraint forms the spec allows to compare across all four result-kinds.
// Every other constraint form (Lt, Le, Broadcastable, ...) takes its
// naturally-kinded argument directly.
type Operand struct {
	kind  OperandKind
	num   Num
	bool_ Bool
	shape Shape
	str   Str
}

// OfNum wraps a Num expression as an Operand.
func OfNum(n Num) Operand { return Operand{kind: NumOperand, num: n} }

// OfBool wraps a Bool expression as an Operand.
func OfBool(b Bool) Operand { return Operand{kind: BoolOperand, bool_: b} }

// OfShape wraps a Shape expression as an Operand.
func OfShape(s Shape) Operand { return Operand{kind: ShapeOperand, shape: s} }

// OfStr wraps a Str expression as an Operand.
func OfStr(s Str) Operand { return Operand{kind: StrOperand, str: s} }

// Kind returns which result-kind this Operand wraps.
func (o Operand) Kind() OperandKind { return o.kind }

// AsNum returns the wrapped Num expression, and true, iff Kind() == NumOperand.
func (o Operand) AsNum() (Num, bool) {
	if o.kind != NumOperand {
		return nil, false
	}

	return o.num, true
}

// AsBool returns the wrapped Bool expression, and true, iff Kind() == BoolOperand.
func (o Operand) AsBool() (Bool, bool) {
	if o.kind != BoolOperand {
		return nil, false
	}

	return o.bool_, true
}

// AsShape returns the wrapped Shape expression, and true, iff Kind() == ShapeOperand.
func (o Operand) AsShape() (Shape, bool) {
	if o.kind != ShapeOperand {
		return nil, false
	}

	return o.shape, true
}

// AsStr returns the wrapped Str expression, and true, iff Kind() == StrOperand.
func (o Operand) AsStr() (Str, bool) {
	if o.kind != StrOperand {
		return nil, false
	}

	return o.str, true
}

// Lisp renders the wrapped expression.
func (o Operand) Lisp() pretty.SExp {
	switch o.kind {
	case NumOperand:
		return o.num.Lisp()
	case BoolOperand:
		return o.bool_.Lisp()
	case ShapeOperand:
		return o.shape.Lisp()
	case StrOperand:
		return o.str.Lisp()
	default:
		return pretty.NewSymbol("?")
	}
}
