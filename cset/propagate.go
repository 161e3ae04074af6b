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
	"math/big"

	"github.com/pytea-go/constraint-engine/internal/rng"
	"github.com/pytea-go/constraint-engine/internal/simplify"
	"github.com/pytea-go/constraint-engine/internal/symx"
)

// propagate is the local propagator (spec.md §4.F): a handful of syntactic
// narrowing rules applied to a single just-installed hard or path
// constraint. It mutates next's caches in place — next is always a snapshot
// install() has just cloned and not yet handed to anyone else, so there is
// no aliasing hazard. Anything it can't recognize is left for the external
// solver; this is a narrowing heuristic, not a complete decision procedure.
func propagate(next *Set, c symx.Constraint) {
	switch x := c.(type) {
	case *symx.LessEq:
		propagateLe(next, x.Lhs, x.Rhs)
	case *symx.LessThan:
		propagateLt(next, x.Lhs, x.Rhs)
	case *symx.Equal:
		propagateEq(next, x.Lhs, x.Rhs)
	case *symx.NotEqual:
		propagateNotEq(next, x.Lhs, x.Rhs)
	}

	trackShapeRelated(next, c)
}

// trackShapeRelated indexes c under every shape symbol it mentions, so a
// caller investigating why a shape symbol is constrained (e.g. to report a
// shape error) can list every constraint touching it without scanning the
// whole pool. This is a convenience index, not a decision input: the
// decision procedure always rechecks against the pool directly, so leaving
// a constraint untracked here costs completeness of the index, never
// soundness.
func trackShapeRelated(next *Set, c symx.Constraint) {
	shapeSyms := symx.FreeSymbolsConstraint(c).ByKind(symx.Shape)
	if len(shapeSyms) == 0 {
		return
	}

	m := make(map[uint64][]symx.Constraint, len(next.shapeCtrCache)+len(shapeSyms))
	for k, v := range next.shapeCtrCache {
		m[k] = v
	}

	for _, sym := range shapeSyms {
		m[sym.ID] = append(append([]symx.Constraint{}, m[sym.ID]...), c)
	}

	next.shapeCtrCache = m
}

// propagateLe handles Le(k, symbol) and Le(symbol, k) for a constant k,
// intersecting the symbol's cached range with [k,+inf) or (-inf,k].
func propagateLe(next *Set, lhs, rhs symx.Num) {
	if sym, ok := asSymbolRef(lhs); ok {
		if k, ok := asConst(next, rhs); ok {
			next.narrowRange(sym.ID, rng.GenLte(rng.FromRat(k)))
			return
		}
	}

	if sym, ok := asSymbolRef(rhs); ok {
		if k, ok := asConst(next, lhs); ok {
			next.narrowRange(sym.ID, rng.GenGte(rng.FromRat(k)))
		}
	}
}

// propagateLt is the strict analogue of propagateLe, narrowing by k+1/k-1.
// Only Int symbols get a sound closed-interval narrowing this way; a
// strict bound on a Float symbol can't be expressed as a closed endpoint,
// so it is left unnarrowed.
func propagateLt(next *Set, lhs, rhs symx.Num) {
	one := big.NewRat(1, 1)

	if sym, ok := asSymbolRef(lhs); ok && sym.Kind == symx.Int {
		if k, ok := asConst(next, rhs); ok {
			bound := new(big.Rat).Sub(&k, one)
			next.narrowRange(sym.ID, rng.GenLte(rng.FromRat(*bound)))

			return
		}
	}

	if sym, ok := asSymbolRef(rhs); ok && sym.Kind == symx.Int {
		if k, ok := asConst(next, lhs); ok {
			bound := new(big.Rat).Add(&k, one)
			next.narrowRange(sym.ID, rng.GenGte(rng.FromRat(*bound)))
		}
	}
}

// propagateEq dispatches Eq narrowing by operand kind: numeric pins a
// symbol's range to a singleton, string and shape set the matching cache.
func propagateEq(next *Set, lhs, rhs symx.Operand) {
	if ln, lok := lhs.AsNum(); lok {
		if rn, rok := rhs.AsNum(); rok {
			propagateEqNum(next, ln, rn)
			return
		}
	}

	if ls, lok := lhs.AsStr(); lok {
		if rs, rok := rhs.AsStr(); rok {
			propagateEqStr(next, ls, rs)
			return
		}
	}

	if lsh, lok := lhs.AsShape(); lok {
		if rsh, rok := rhs.AsShape(); rok {
			propagateEqShape(next, lsh, rsh)
		}
	}
}

func propagateEqNum(next *Set, lhs, rhs symx.Num) {
	if sym, ok := asSymbolRef(lhs); ok {
		if k, ok := asConst(next, rhs); ok {
			next.narrowRange(sym.ID, rng.FromConst(k))
			return
		}
	}

	if sym, ok := asSymbolRef(rhs); ok {
		if k, ok := asConst(next, lhs); ok {
			next.narrowRange(sym.ID, rng.FromConst(k))
		}
	}
}

func propagateEqStr(next *Set, lhs, rhs symx.Str) {
	if sym, ok := asStrSymbol(lhs); ok {
		if v, ok := asConstStr(rhs); ok {
			next.setStringValue(sym.ID, v)
			return
		}
	}

	if sym, ok := asStrSymbol(rhs); ok {
		if v, ok := asConstStr(lhs); ok {
			next.setStringValue(sym.ID, v)
		}
	}
}

// propagateNotEq handles NotEq(symbol, const-string): the only NotEq shape
// the propagator narrows (spec.md §4.F doesn't mention a numeric NotEq
// narrowing, only the immediate decision procedure's disjoint-ranges check).
func propagateNotEq(next *Set, lhs, rhs symx.Operand) {
	ls, ok := lhs.AsStr()
	if !ok {
		return
	}

	rs, ok := rhs.AsStr()
	if !ok {
		return
	}

	if sym, ok := asStrSymbol(ls); ok {
		if v, ok := asConstStr(rs); ok {
			next.addNonString(sym.ID, v)
			return
		}
	}

	if sym, ok := asStrSymbol(rs); ok {
		if v, ok := asConstStr(ls); ok {
			next.addNonString(sym.ID, v)
		}
	}
}

func propagateEqShape(next *Set, lhs, rhs symx.Shape) {
	if sym, dims, ok := shapeSymbolAndConstDims(lhs, rhs); ok {
		next.setShape(sym, dims)
		return
	}

	if sym, dims, ok := shapeSymbolAndConstDims(rhs, lhs); ok {
		next.setShape(sym, dims)
	}
}

func shapeSymbolAndConstDims(a, b symx.Shape) (symx.Symbol, []symx.Num, bool) {
	sym, ok := a.(*symx.ShapeSymbol)
	if !ok {
		return symx.Symbol{}, nil, false
	}

	konst, ok := b.(*symx.ShapeConst)
	if !ok {
		return symx.Symbol{}, nil, false
	}

	return sym.Sym, konst.Dims, true
}

func asSymbolRef(n symx.Num) (symx.Symbol, bool) {
	sym, ok := n.(*symx.NumSymbol)
	if !ok {
		return symx.Symbol{}, false
	}

	return sym.Sym, true
}

func asStrSymbol(e symx.Str) (symx.Symbol, bool) {
	sym, ok := e.(*symx.StrSymbol)
	if !ok {
		return symx.Symbol{}, false
	}

	return sym.Sym, true
}

func asConstStr(e symx.Str) (string, bool) {
	c, ok := e.(*symx.StrConst)
	if !ok {
		return "", false
	}

	return c.Value, true
}

// asConst simplifies n against next's own caches and reports whether it
// folded down to a literal constant.
func asConst(next *Set, n symx.Num) (big.Rat, bool) {
	folded := simplify.NumX(n, next)

	c, ok := folded.(*symx.NumConst)
	if !ok {
		return big.Rat{}, false
	}

	return c.Value, true
}

// narrowRange intersects id's cached range (defaulting to Top) with r,
// marking the snapshot invalid if the result is empty.
func (s *Set) narrowRange(id uint64, r rng.Range) {
	cur, ok := s.rangeCache[id]
	if !ok {
		cur = rng.Top()
	}

	next := cur.Intersect(r)

	m := make(map[uint64]rng.Range, len(s.rangeCache)+1)
	for k, v := range s.rangeCache {
		m[k] = v
	}

	m[id] = next
	s.rangeCache = m

	if !next.Valid() {
		s.valid = TriFalse
	}
}

// setStringValue pins id's string cache entry to v, invalidating the
// snapshot if v was previously ruled out for id via NotEq.
func (s *Set) setStringValue(id uint64, v string) {
	m := make(map[uint64]string, len(s.stringCache)+1)
	for k, val := range s.stringCache {
		m[k] = val
	}

	m[id] = v
	s.stringCache = m

	if bad, ok := s.nonStringCache[id]; ok {
		if _, found := bad[v]; found {
			s.valid = TriFalse
		}
	}
}

// addNonString records that id is known to differ from v.
func (s *Set) addNonString(id uint64, v string) {
	m := make(map[uint64]map[string]struct{}, len(s.nonStringCache))
	for k, set := range s.nonStringCache {
		m[k] = set
	}

	existing := m[id]
	clone := make(map[string]struct{}, len(existing)+1)

	for k := range existing {
		clone[k] = struct{}{}
	}

	clone[v] = struct{}{}
	m[id] = clone
	s.nonStringCache = m
}

// setShape pins sym's shape cache entry to dims, invalidating the snapshot
// if sym's own rank expression is already known and disagrees with len(dims).
func (s *Set) setShape(sym symx.Symbol, dims []symx.Num) {
	if sym.Rank != nil {
		if rankR, ok := s.GetCachedRange(sym.Rank); ok {
			if rv, ok := rankR.IsConst(); ok && rv.IsInt() {
				if int(rv.Num().Int64()) != len(dims) {
					s.valid = TriFalse
					return
				}
			}
		}
	}

	m := make(map[uint64][]symx.Num, len(s.shapeCache)+1)
	for k, v := range s.shapeCache {
		m[k] = v
	}

	m[sym.ID] = dims
	s.shapeCache = m
}
