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
package decide

import (
	"testing"

	"github.com/pytea-go/constraint-engine/internal/rng"
	"github.com/pytea-go/constraint-engine/internal/symx"
)

type fakeCtx struct {
	ranges  map[uint64]rng.Range
	strings map[string]string
}

func (f fakeCtx) SymbolRange(id uint64) (rng.Range, bool) {
	r, ok := f.ranges[id]
	return r, ok
}

func (f fakeCtx) SymbolShape(uint64) ([]symx.Num, bool) { return nil, false }

func (f fakeCtx) StringValue(s symx.Str) (string, bool) {
	if c, ok := s.(*symx.StrConst); ok {
		return c.Value, true
	}

	v, ok := f.strings[s.Lisp().String(false)]

	return v, ok
}

func numSym(id uint64) symx.Symbol { return symx.NewSymbol(id, symx.Int, "x", nil) }

func TestDecide_DisabledAlwaysUnknown(t *testing.T) {
	ctx := fakeCtx{}
	c := symx.NewFail(1, nil, "boom")

	if got := Decide(c, ctx, false); got != Unknown {
		t.Fatalf("got %s, want unknown", got)
	}
}

func TestDecide_Fail(t *testing.T) {
	ctx := fakeCtx{}
	c := symx.NewFail(1, nil, "boom")

	if got := Decide(c, ctx, true); got != False {
		t.Fatalf("got %s, want false", got)
	}
}

func TestDecide_Forall_AlwaysUnknown(t *testing.T) {
	ctx := fakeCtx{}
	sym := numSym(1)
	body := symx.NewExpBool(2, nil, symx.True)
	c := symx.NewForall(3, nil, sym, symx.ConstInt(0), symx.ConstInt(9), body)

	if got := Decide(c, ctx, true); got != Unknown {
		t.Fatalf("got %s, want unknown", got)
	}
}

func TestDecide_NumEq_SingletonRanges(t *testing.T) {
	ctx := fakeCtx{ranges: map[uint64]rng.Range{1: rng.FromConstInt(5)}}
	lhs := symx.OfNum(symx.SymbolRef(numSym(1)))
	rhs := symx.OfNum(symx.ConstInt(5))
	c := symx.NewEqual(1, nil, lhs, rhs)

	if got := Decide(c, ctx, true); got != True {
		t.Fatalf("got %s, want true", got)
	}
}

func TestDecide_NumEq_DisjointConsts(t *testing.T) {
	ctx := fakeCtx{}
	lhs := symx.OfNum(symx.ConstInt(5))
	rhs := symx.OfNum(symx.ConstInt(6))
	c := symx.NewEqual(1, nil, lhs, rhs)

	if got := Decide(c, ctx, true); got != False {
		t.Fatalf("got %s, want false", got)
	}
}

func TestDecide_NumEq_MismatchedKind(t *testing.T) {
	ctx := fakeCtx{}
	lhs := symx.OfNum(symx.ConstInt(5))
	rhs := symx.OfBool(symx.True)
	c := symx.NewEqual(1, nil, lhs, rhs)

	if got := Decide(c, ctx, true); got != False {
		t.Fatalf("got %s, want false", got)
	}
}

func TestDecide_NumNotEq_DisjointRanges(t *testing.T) {
	ctx := fakeCtx{ranges: map[uint64]rng.Range{1: rng.GenLte(rng.FromInt(0))}}
	lhs := symx.OfNum(symx.SymbolRef(numSym(1)))
	rhs := symx.OfNum(symx.ConstInt(5))
	c := symx.NewNotEqual(1, nil, lhs, rhs)

	if got := Decide(c, ctx, true); got != True {
		t.Fatalf("got %s, want true", got)
	}
}

func TestDecide_Lt(t *testing.T) {
	ctx := fakeCtx{}
	c := symx.NewLessThan(1, nil, symx.ConstInt(1), symx.ConstInt(5))

	if got := Decide(c, ctx, true); got != True {
		t.Fatalf("got %s, want true", got)
	}
}

func TestDecide_Lt_False(t *testing.T) {
	ctx := fakeCtx{}
	c := symx.NewLessThan(1, nil, symx.ConstInt(5), symx.ConstInt(5))

	if got := Decide(c, ctx, true); got != False {
		t.Fatalf("got %s, want false", got)
	}
}

func TestDecide_Le_True(t *testing.T) {
	ctx := fakeCtx{}
	c := symx.NewLessEq(1, nil, symx.ConstInt(5), symx.ConstInt(5))

	if got := Decide(c, ctx, true); got != True {
		t.Fatalf("got %s, want true", got)
	}
}

func TestDecide_Conjunct_ShortCircuitsFalse(t *testing.T) {
	ctx := fakeCtx{}
	lhs := symx.NewFail(1, nil, "no")
	rhs := symx.NewForall(2, nil, numSym(1), symx.ConstInt(0), symx.ConstInt(9), symx.NewFail(3, nil, "n/a"))
	c := symx.NewConjunct(4, nil, lhs, rhs)

	if got := Decide(c, ctx, true); got != False {
		t.Fatalf("got %s, want false", got)
	}
}

func TestDecide_Disjunct_ShortCircuitsTrue(t *testing.T) {
	ctx := fakeCtx{}
	lhs := symx.NewExpBool(1, nil, symx.True)
	rhs := symx.NewFail(2, nil, "n/a")
	c := symx.NewDisjunct(3, nil, lhs, rhs)

	if got := Decide(c, ctx, true); got != True {
		t.Fatalf("got %s, want true", got)
	}
}

func TestDecide_Negation(t *testing.T) {
	ctx := fakeCtx{}
	c := symx.NewNegation(1, nil, symx.NewFail(2, nil, "no"))

	if got := Decide(c, ctx, true); got != True {
		t.Fatalf("got %s, want true", got)
	}
}

func TestDecide_Broadcastable_SingletonDimAndEqualDim(t *testing.T) {
	ctx := fakeCtx{}
	left := symx.ConstShape(symx.ConstInt(1), symx.ConstInt(3))
	right := symx.ConstShape(symx.ConstInt(5), symx.ConstInt(3))
	c := symx.NewBroadcastable(1, nil, left, right)

	if got := Decide(c, ctx, true); got != True {
		t.Fatalf("got %s, want true", got)
	}
}

func TestDecide_Broadcastable_IncompatibleConstDims(t *testing.T) {
	ctx := fakeCtx{}
	left := symx.ConstShape(symx.ConstInt(4), symx.ConstInt(3))
	right := symx.ConstShape(symx.ConstInt(5), symx.ConstInt(3))
	c := symx.NewBroadcastable(1, nil, left, right)

	if got := Decide(c, ctx, true); got != False {
		t.Fatalf("got %s, want false", got)
	}
}

func TestDecide_Broadcastable_PadsShorterShape(t *testing.T) {
	ctx := fakeCtx{}
	left := symx.ConstShape(symx.ConstInt(3))
	right := symx.ConstShape(symx.ConstInt(5), symx.ConstInt(3))
	c := symx.NewBroadcastable(1, nil, left, right)

	if got := Decide(c, ctx, true); got != True {
		t.Fatalf("got %s, want true", got)
	}
}

func TestDecide_ExpBool_Const(t *testing.T) {
	ctx := fakeCtx{}
	c := symx.NewExpBool(1, nil, symx.False)

	if got := Decide(c, ctx, true); got != False {
		t.Fatalf("got %s, want false", got)
	}
}
