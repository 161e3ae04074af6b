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
package cset

import (
	"strings"
	"testing"

	"github.com/segmentio/encoding/json"

	"github.com/pytea-go/constraint-engine/internal/decide"
	"github.com/pytea-go/constraint-engine/internal/idgen"
	"github.com/pytea-go/constraint-engine/internal/rng"
	"github.com/pytea-go/constraint-engine/internal/symx"
)

func root() *Set {
	return New(idgen.New())
}

func mustConstRange(t *testing.T, r rng.Range, ok bool) rng.Range {
	t.Helper()

	if !ok {
		t.Fatalf("expected a defined range")
	}

	return r
}

// rangesEqual compares two ranges endpoint-wise; rng.Range embeds big.Rat
// values, which Go won't let us compare with == (it isn't a comparable
// type once big.Int's internal slice is accounted for).
func rangesEqual(a, b rng.Range) bool {
	return a.Start.Cmp(b.Start) == 0 && a.End.Cmp(b.End) == 0
}

// S1: two nested GenSymIntGte calls narrow y's range immediately and leave
// x<y undecidable, but -1<x decidable.
func TestScenario_S1(t *testing.T) {
	s0 := root()
	x, s1 := s0.GenSymIntGte("x", 0, nil)
	y, s2 := s1.GenSymIntGte("y", 3, nil)

	r, ok := s2.GetCachedRange(symx.SymbolRef(y))
	got := mustConstRange(t, r, ok)
	want := rng.GenGte(rng.FromInt(3))

	if !rangesEqual(got, want) {
		t.Fatalf("range(y) = %s, want %s", got, want)
	}

	lt := symx.NewLessThan(1000, nil, symx.SymbolRef(x), symx.SymbolRef(y))
	if v := s2.CheckImmediate(lt); v != decide.Unknown {
		t.Fatalf("checkImmediate(x<y) = %s, want unknown", v)
	}

	ltNeg := symx.NewLessThan(1001, nil, symx.ConstInt(-1), symx.SymbolRef(x))
	if v := s2.CheckImmediate(ltNeg); v != decide.True {
		t.Fatalf("checkImmediate(-1<x) = %s, want true", v)
	}
}

// S2: a soft Eq constraint never narrows the range cache.
func TestScenario_S2(t *testing.T) {
	s0 := root()
	x, s1 := s0.GenSymIntGte("x", 0, nil)
	_, s2 := s1.GenSymIntGte("y", 3, nil)

	eq := s2.GenEquality(symx.OfNum(symx.SymbolRef(x)), symx.OfNum(symx.ConstInt(5)), true, nil)
	s3 := s2.Require(eq)

	if !s3.Valid() {
		t.Fatalf("s3 should remain valid")
	}

	r, ok := s3.GetCachedRange(symx.SymbolRef(x))
	got := mustConstRange(t, r, ok)
	want := rng.GenGte(rng.FromInt(0))

	if !rangesEqual(got, want) {
		t.Fatalf("range(x) = %s, want %s (soft Eq must not narrow)", got, want)
	}

	if s3.Count() != 3 {
		t.Fatalf("count() = %d, want 3", s3.Count())
	}
}

// S3: a hard Eq constraint pins the range to a singleton.
func TestScenario_S3(t *testing.T) {
	s0 := root()
	x, s1 := s0.GenSymIntGte("x", 0, nil)
	y, s2 := s1.GenSymIntGte("y", 3, nil)

	eq := s2.GenEquality(symx.OfNum(symx.SymbolRef(x)), symx.OfNum(symx.ConstInt(5)), true, nil)
	s3 := s2.Guarantee(eq)

	r, ok := s3.GetCachedRange(symx.SymbolRef(x))
	got := mustConstRange(t, r, ok)
	want := rng.FromConstInt(5)

	if !rangesEqual(got, want) {
		t.Fatalf("range(x) = %s, want %s", got, want)
	}

	lt := symx.NewLessThan(1000, nil, symx.SymbolRef(x), symx.SymbolRef(y))
	if v := s3.CheckImmediate(lt); v != decide.Unknown {
		t.Fatalf("checkImmediate(x<y) = %s, want unknown", v)
	}

	le := symx.NewLessEq(1001, nil, symx.SymbolRef(x), symx.ConstInt(5))
	if v := s3.CheckImmediate(le); v != decide.True {
		t.Fatalf("checkImmediate(x<=5) = %s, want true", v)
	}
}

// S4: broadcastability of [1,3,1] against [4,1,5] is true; against [4,2,5]
// it's false.
func TestScenario_S4(t *testing.T) {
	s := root()

	a := symx.ConstShape(symx.ConstInt(1), symx.ConstInt(3), symx.ConstInt(1))
	bOK := symx.ConstShape(symx.ConstInt(4), symx.ConstInt(1), symx.ConstInt(5))
	bBad := symx.ConstShape(symx.ConstInt(4), symx.ConstInt(2), symx.ConstInt(5))

	ctrOK := symx.NewBroadcastable(1, nil, a, bOK)
	if v := s.CheckImmediate(ctrOK); v != decide.True {
		t.Fatalf("broadcastable(a,bOK) = %s, want true", v)
	}

	ctrBad := symx.NewBroadcastable(2, nil, a, bBad)
	if v := s.CheckImmediate(ctrBad); v != decide.False {
		t.Fatalf("broadcastable(a,bBad) = %s, want false", v)
	}
}

// S5: casting a literal true Bool to Int folds immediately to the
// singleton range {1}.
func TestScenario_S5(t *testing.T) {
	s := root()
	n, s1 := s.CastBoolToInt(symx.True, nil)

	r, ok := s1.GetCachedRange(n)
	got := mustConstRange(t, r, ok)
	want := rng.FromConstInt(1)

	if !rangesEqual(got, want) {
		t.Fatalf("range(n) = %s, want %s", got, want)
	}
}

// S6: guaranteeing a trivially-false constant equality invalidates the
// snapshot but still records it.
func TestScenario_S6(t *testing.T) {
	s := root()

	eq := s.GenEquality(symx.OfNum(symx.ConstInt(1)), symx.OfNum(symx.ConstInt(2)), true, nil)
	s1 := s.Guarantee(eq)

	if s1.Valid() {
		t.Fatalf("s1 should be invalid")
	}

	if s1.Count() != 1 {
		t.Fatalf("count() = %d, want 1", s1.Count())
	}

	if _, ok := s1.pool[0].(*symx.Equal); !ok {
		t.Fatalf("pool[0] should be an Eq constraint, got %T", s1.pool[0])
	}
}

func TestGuarantee_Idempotent(t *testing.T) {
	s0 := root()
	x, s1 := s0.GenSymIntGte("x", 0, nil)

	eq := s1.GenEquality(symx.OfNum(symx.SymbolRef(x)), symx.OfNum(symx.ConstInt(5)), true, nil)

	once := s1.Guarantee(eq)
	twice := once.Guarantee(eq)

	if twice.Count() != once.Count() {
		t.Fatalf("re-guaranteeing the same constraint should be a no-op: %d != %d", twice.Count(), once.Count())
	}

	rOnce, okOnce := once.GetCachedRange(symx.SymbolRef(x))
	gotOnce := mustConstRange(t, rOnce, okOnce)
	rTwice, okTwice := twice.GetCachedRange(symx.SymbolRef(x))
	gotTwice := mustConstRange(t, rTwice, okTwice)

	if !rangesEqual(gotOnce, gotTwice) {
		t.Fatalf("range(x) changed on re-guarantee: %s != %s", gotOnce, gotTwice)
	}
}

func TestIndices_StayWithinPoolBounds(t *testing.T) {
	s0 := root()
	x, s1 := s0.GenSymIntGte("x", 0, nil)
	_, s2 := s1.GenSymIntGte("y", 3, nil)

	eq := s2.GenEquality(symx.OfNum(symx.SymbolRef(x)), symx.OfNum(symx.ConstInt(5)), true, nil)
	s3 := s2.Require(eq)

	n := s3.Count()
	for _, idx := range append(append(append([]int{}, s3.hardIdx...), s3.softIdx...), s3.pathIdx...) {
		if idx < 0 || idx >= n {
			t.Fatalf("index %d out of pool bounds [0,%d)", idx, n)
		}
	}
}

func TestCount_MonotoneAndEqualsPoolLength(t *testing.T) {
	s0 := root()

	if s0.Count() != 0 {
		t.Fatalf("root count = %d, want 0", s0.Count())
	}

	x, s1 := s0.GenSymIntGte("x", 0, nil)
	if s1.Count() != 1 {
		t.Fatalf("count after one guarantee = %d, want 1", s1.Count())
	}

	eq := s1.GenEquality(symx.OfNum(symx.SymbolRef(x)), symx.OfNum(symx.ConstInt(5)), true, nil)
	s2 := s1.Require(eq)

	if s2.Count() != 2 || s2.Count() != len(s2.GetConstraints()) {
		t.Fatalf("count = %d, want 2 and == len(getConstraints())", s2.Count())
	}
}

func TestAddIf_TracksPathIndex(t *testing.T) {
	s0 := root()
	x, s1 := s0.GenSymIntGte("x", 0, nil)

	cond := symx.NewLessThan(500, nil, symx.ConstInt(0), symx.SymbolRef(x))
	s2 := s1.AddIf(cond)

	if len(s2.pathIdx) != 1 {
		t.Fatalf("expected exactly one path constraint, got %d", len(s2.pathIdx))
	}
}

func TestNotEqString_ThenEq_Invalidates(t *testing.T) {
	s := root()
	sym := s.GenSymString("name", nil)
	ref := symx.StrRef(sym)

	notEq := s.GenEquality(symx.OfStr(ref), symx.OfStr(symx.ConstStr("banana")), false, nil)
	s1 := s.Guarantee(notEq)

	if !s1.Valid() {
		t.Fatalf("s1 should still be valid")
	}

	eq := s1.GenEquality(symx.OfStr(ref), symx.OfStr(symx.ConstStr("banana")), true, nil)
	s2 := s1.Guarantee(eq)

	if s2.Valid() {
		t.Fatalf("s2 should be invalid: equating to a previously excluded string")
	}
}

func TestString_ColorsHardAndPath(t *testing.T) {
	s0 := root()
	x, s1 := s0.GenSymIntGte("x", 0, nil)

	cond := symx.NewLessThan(500, nil, symx.ConstInt(0), symx.SymbolRef(x))
	s2 := s1.AddIf(cond)

	out := s2.render(true)
	if !strings.Contains(out, "\033[35m") {
		t.Fatalf("expected a magenta escape for the hard constraint, got %q", out)
	}

	if !strings.Contains(out, "\033[33m") {
		t.Fatalf("expected a yellow escape for the path constraint, got %q", out)
	}
}

func TestRelatedShapeConstraints_TracksBroadcastable(t *testing.T) {
	s0 := root()
	sym := s0.GenSymShape("a", nil, symx.ConstInt(2))
	ref := symx.ShapeRef(sym)

	other := symx.ConstShape(symx.ConstInt(4), symx.ConstInt(1))
	ctr := s0.GenBroad(ref, other, nil)
	s1 := s0.AddIf(ctr)

	related := s1.RelatedShapeConstraints(sym)
	if len(related) != 1 || related[0] != ctr {
		t.Fatalf("expected ctr to be tracked against sym, got %v", related)
	}

	unrelated := s1.RelatedShapeConstraints(s0.GenSymShape("b", nil, symx.ConstInt(1)))
	if len(unrelated) != 0 {
		t.Fatalf("expected no constraints tracked for an unrelated shape symbol, got %v", unrelated)
	}
}

func TestGetConstraintJSON_RoundTripsIndicesAndCount(t *testing.T) {
	s0 := root()
	x, s1 := s0.GenSymIntGte("x", 0, nil)

	eq := s1.GenEquality(symx.OfNum(symx.SymbolRef(x)), symx.OfNum(symx.ConstInt(5)), true, nil)
	s2 := s1.Require(eq)

	raw, err := s2.GetConstraintJSON()
	if err != nil {
		t.Fatalf("GetConstraintJSON: %v", err)
	}

	var bundle jsonBundle
	if err := json.Unmarshal(raw, &bundle); err != nil {
		t.Fatalf("unmarshal bundle: %v", err)
	}

	if len(bundle.CtrPool) != s2.Count() {
		t.Fatalf("ctrPool length = %d, want %d", len(bundle.CtrPool), s2.Count())
	}

	if len(bundle.HardCtr) != len(s2.hardIdx) || len(bundle.SoftCtr) != len(s2.softIdx) || len(bundle.PathCtr) != len(s2.pathIdx) {
		t.Fatalf("index list lengths don't match: %+v", bundle)
	}
}
