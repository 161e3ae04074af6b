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

import "testing"

func mustPanic(t *testing.T, name string, f func()) {
	t.Helper()

	defer func() {
		if recover() == nil {
			t.Fatalf("%s: expected a panic, got none", name)
		}
	}()

	f()
}

func TestNewSymbol_RejectsShapeKind(t *testing.T) {
	mustPanic(t, "NewSymbol(Shape)", func() {
		NewSymbol(1, Shape, "x", nil)
	})
}

func TestSymbolRef_RejectsNonNumericKind(t *testing.T) {
	sym := NewSymbol(1, Bool, "b", nil)

	mustPanic(t, "SymbolRef(bool)", func() {
		SymbolRef(sym)
	})
}

func TestBoolRef_RejectsNonBoolKind(t *testing.T) {
	sym := NewSymbol(1, Int, "x", nil)

	mustPanic(t, "BoolRef(int)", func() {
		BoolRef(sym)
	})
}

func TestStrRef_RejectsNonStringKind(t *testing.T) {
	sym := NewSymbol(1, Int, "x", nil)

	mustPanic(t, "StrRef(int)", func() {
		StrRef(sym)
	})
}

func TestShapeRef_RejectsNonShapeSymbol(t *testing.T) {
	sym := NewSymbol(1, Int, "x", nil)

	mustPanic(t, "ShapeRef(int)", func() {
		ShapeRef(sym)
	})
}

func TestMax_Min_PanicOnNoArgs(t *testing.T) {
	mustPanic(t, "Max()", func() { Max() })
	mustPanic(t, "Min()", func() { Min() })
}

func TestNewForall_RejectsNonIntSymbol(t *testing.T) {
	sym := NewSymbol(1, Float, "i", nil)
	body := NewExpBool(2, nil, True)

	mustPanic(t, "NewForall(float)", func() {
		NewForall(3, nil, sym, ConstInt(0), ConstInt(9), body)
	})
}

func TestNumEq_StructuralNotSemantic(t *testing.T) {
	x := NewSymbol(1, Int, "x", nil)

	// x+1 and 1+x are semantically equal but not structurally equal: NumEq
	// must report false here, since the decision procedure relies on it
	// never over-claiming equality.
	a := Binary(AddOp, SymbolRef(x), ConstInt(1))
	b := Binary(AddOp, ConstInt(1), SymbolRef(x))

	if NumEq(a, b) {
		t.Fatalf("NumEq(x+1, 1+x) = true, want false (structural, not semantic)")
	}

	if !NumEq(a, a) {
		t.Fatalf("NumEq(x+1, x+1) = false, want true")
	}
}

func TestShapeEq_DifferentRank(t *testing.T) {
	a := ConstShape(ConstInt(1), ConstInt(2))
	b := ConstShape(ConstInt(1), ConstInt(2), ConstInt(3))

	if ShapeEq(a, b) {
		t.Fatalf("shapes of different rank compared equal")
	}
}

func TestStrEq_ConcatRecurses(t *testing.T) {
	a := ConcatStr(ConstStr("foo"), ConstStr("bar"))
	b := ConcatStr(ConstStr("foo"), ConstStr("bar"))
	c := ConcatStr(ConstStr("foo"), ConstStr("baz"))

	if !StrEq(a, b) {
		t.Fatalf("StrEq(foo++bar, foo++bar) = false, want true")
	}

	if StrEq(a, c) {
		t.Fatalf("StrEq(foo++bar, foo++baz) = true, want false")
	}
}

func TestHasSingleVar(t *testing.T) {
	x := NewSymbol(1, Int, "x", nil)
	y := NewSymbol(2, Int, "y", nil)

	none := NewExpBool(1, nil, True)
	if _, mult := HasSingleVar(FreeSymbolsConstraint(none)); mult != NoVars {
		t.Fatalf("HasSingleVar(const) = %v, want NoVars", mult)
	}

	one := NewLessThan(1, nil, ConstInt(0), SymbolRef(x))
	if sym, mult := HasSingleVar(FreeSymbolsConstraint(one)); mult != OneVar || sym.ID != x.ID {
		t.Fatalf("HasSingleVar(0<x) = (%v, %v), want (x, OneVar)", sym, mult)
	}

	many := NewLessThan(1, nil, SymbolRef(x), SymbolRef(y))
	if _, mult := HasSingleVar(FreeSymbolsConstraint(many)); mult != ManyVars {
		t.Fatalf("HasSingleVar(x<y) = %v, want ManyVars", mult)
	}
}

func TestOperand_KindAccessorsRejectWrongKind(t *testing.T) {
	n := OfNum(ConstInt(1))

	if _, ok := n.AsBool(); ok {
		t.Fatalf("AsBool() on a Num operand should fail")
	}

	if _, ok := n.AsShape(); ok {
		t.Fatalf("AsShape() on a Num operand should fail")
	}

	if _, ok := n.AsStr(); ok {
		t.Fatalf("AsStr() on a Num operand should fail")
	}

	if v, ok := n.AsNum(); !ok || !NumEq(v, ConstInt(1)) {
		t.Fatalf("AsNum() on a Num operand should succeed with the original value")
	}
}
