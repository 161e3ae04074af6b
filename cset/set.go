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

// Package cset implements the constraint set: an immutable, copy-on-write
// snapshot of every constraint installed so far, split into three ordered
// classes (hard, soft, path), plus the narrowing caches the local propagator
// maintains as hard and path constraints are added. Every mutator returns a
// new *Set rather than touching the receiver, so a caller can fork freely
// (e.g. to explore both branches of a conditional) without the branches
// seeing each other's constraints.
package cset

import (
	"fmt"
	"math/big"

	"github.com/bits-and-blooms/bitset"
	log "github.com/sirupsen/logrus"

	"github.com/pytea-go/constraint-engine/internal/decide"
	"github.com/pytea-go/constraint-engine/internal/idgen"
	"github.com/pytea-go/constraint-engine/internal/pretty"
	"github.com/pytea-go/constraint-engine/internal/rng"
	"github.com/pytea-go/constraint-engine/internal/simplify"
	"github.com/pytea-go/constraint-engine/internal/symx"
)

// UsageError marks a programmer mistake in driving the Set API (e.g. a
// negative rank passed to GenShaped), as distinct from a constraint that is
// merely unsatisfiable. Callers that recover from a panic can type-assert
// for it to tell the two apart.
type UsageError struct{ Msg string }

func (e UsageError) Error() string { return e.Msg }

// Tri is the three-valued validity flag carried by a Set.
type Tri uint8

// The three outcomes a Set's validity can take.
const (
	// Undef is the zero value; no Set constructed via New ever carries it,
	// but it guards against a zero-value Set being mistaken for a valid one.
	Undef Tri = iota
	TriTrue
	TriFalse
)

type constraintClass uint8

const (
	classHard constraintClass = iota
	classSoft
	classPath
)

// Set is an immutable snapshot of the constraints installed along one
// interpreter path. Every field is either append-only (pool, the index
// slices) or copy-on-write (the caches): a mutator clones what it needs to
// change and leaves the receiver's fields untouched, so two snapshots may
// share backing storage for everything they agree on.
type Set struct {
	ids *idgen.Ids

	pool []symx.Constraint

	hardIdx []int
	softIdx []int
	pathIdx []int

	// ctrIDSeen dedups re-installation by constraint id: appending the same
	// id twice is a no-op (spec.md §8, invariant 2).
	ctrIDSeen *bitset.BitSet

	rangeCache     map[uint64]rng.Range
	shapeCtrCache  map[uint64][]symx.Constraint
	shapeCache     map[uint64][]symx.Num
	stringCache    map[uint64]string
	nonStringCache map[uint64]map[string]struct{}

	valid Tri

	immediateCheckEnabled bool
}

// Option configures a root Set at construction time.
type Option func(*Set)

// WithImmediateCheck toggles the immediate decision procedure. Bulk analysis
// passes that don't need per-step diagnostics can disable it to skip the
// structural/range-comparison work on every install (spec.md §4.D).
func WithImmediateCheck(enabled bool) Option {
	return func(s *Set) { s.immediateCheckEnabled = enabled }
}

// New returns an empty root snapshot sharing ids with every descendant
// forked from it.
func New(ids *idgen.Ids, opts ...Option) *Set {
	s := &Set{
		ids:                   ids,
		ctrIDSeen:             bitset.New(0),
		rangeCache:            map[uint64]rng.Range{},
		shapeCtrCache:         map[uint64][]symx.Constraint{},
		shapeCache:            map[uint64][]symx.Num{},
		stringCache:           map[uint64]string{},
		nonStringCache:        map[uint64]map[string]struct{}{},
		valid:                 TriTrue,
		immediateCheckEnabled: true,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// clone returns a shallow copy of s: every field is still shared with the
// receiver, on the understanding that the caller will replace (never
// mutate-in-place) any field it intends to change.
func (s *Set) clone() *Set {
	next := *s
	return &next
}

// Valid reports whether this snapshot is still free of any detected
// contradiction.
func (s *Set) Valid() bool { return s.valid != TriFalse }

// Count returns the number of constraints installed so far, across all
// three classes.
func (s *Set) Count() int { return len(s.pool) }

// GetConstraints returns a simplified snapshot of the installed constraint
// pool, in installation order (spec.md §4.E): each entry is normalized
// against this snapshot's own caches (a pinned symbol folds to its point, a
// `dim(...)` projection resolves through a known shape, ...) without
// touching the pool itself.
func (s *Set) GetConstraints() []symx.Constraint {
	out := make([]symx.Constraint, len(s.pool))
	for i, c := range s.pool {
		out[i] = simplify.ConstraintX(c, s)
	}

	return out
}

// ---- symbol minters (unconstrained) ----

// GenSymInt mints a fresh Int symbol. Minting alone never touches the
// constraint set: only the shared id-manager advances.
func (s *Set) GenSymInt(name string, source *symx.Location) symx.Symbol {
	return symx.NewSymbol(s.ids.NextSymbolID(), symx.Int, name, source)
}

// GenSymFloat mints a fresh Float symbol.
func (s *Set) GenSymFloat(name string, source *symx.Location) symx.Symbol {
	return symx.NewSymbol(s.ids.NextSymbolID(), symx.Float, name, source)
}

// GenSymBool mints a fresh Bool symbol.
func (s *Set) GenSymBool(name string, source *symx.Location) symx.Symbol {
	return symx.NewSymbol(s.ids.NextSymbolID(), symx.Bool, name, source)
}

// GenSymString mints a fresh String symbol.
func (s *Set) GenSymString(name string, source *symx.Location) symx.Symbol {
	return symx.NewSymbol(s.ids.NextSymbolID(), symx.String, name, source)
}

// GenSymShape mints a fresh Shape symbol with the given rank expression.
func (s *Set) GenSymShape(name string, source *symx.Location, rank symx.Num) symx.Symbol {
	return symx.NewShapeSymbol(s.ids.NextSymbolID(), name, source, rank)
}

// ---- pure constraint factories ----
//
// Each mints a fresh constraint id from the shared id-manager but otherwise
// only builds a symx.Constraint value: the set itself is untouched until
// the result is passed to Require/Guarantee/AddIf.

// GenFromBool lifts a bare Bool expression into a Constraint.
func (s *Set) GenFromBool(e symx.Bool, source *symx.Location) symx.Constraint {
	return symx.NewExpBool(s.ids.NextConstraintID(), source, e)
}

// GenEquality builds an Eq constraint when equal is true, or a NotEq
// constraint otherwise.
func (s *Set) GenEquality(lhs, rhs symx.Operand, equal bool, source *symx.Location) symx.Constraint {
	id := s.ids.NextConstraintID()
	if equal {
		return symx.NewEqual(id, source, lhs, rhs)
	}

	return symx.NewNotEqual(id, source, lhs, rhs)
}

// GenNumCompare builds an Lt constraint when strict is true, or an Le
// constraint otherwise.
func (s *Set) GenNumCompare(lhs, rhs symx.Num, strict bool, source *symx.Location) symx.Constraint {
	id := s.ids.NextConstraintID()
	if strict {
		return symx.NewLessThan(id, source, lhs, rhs)
	}

	return symx.NewLessEq(id, source, lhs, rhs)
}

// GenAnd builds a Conjunct constraint.
func (s *Set) GenAnd(lhs, rhs symx.Constraint, source *symx.Location) symx.Constraint {
	return symx.NewConjunct(s.ids.NextConstraintID(), source, lhs, rhs)
}

// GenOr builds a Disjunct constraint.
func (s *Set) GenOr(lhs, rhs symx.Constraint, source *symx.Location) symx.Constraint {
	return symx.NewDisjunct(s.ids.NextConstraintID(), source, lhs, rhs)
}

// GenNot builds a Negation constraint.
func (s *Set) GenNot(arg symx.Constraint, source *symx.Location) symx.Constraint {
	return symx.NewNegation(s.ids.NextConstraintID(), source, arg)
}

// GenBroad builds a Broadcastable constraint.
func (s *Set) GenBroad(left, right symx.Shape, source *symx.Location) symx.Constraint {
	return symx.NewBroadcastable(s.ids.NextConstraintID(), source, left, right)
}

// GenForall builds a Forall constraint over the closed range [lo, hi].
// Constant bounds with lo > hi are a usage error.
func (s *Set) GenForall(sym symx.Symbol, lo, hi symx.Num, body symx.Constraint, source *symx.Location) symx.Constraint {
	if loC, ok := lo.(*symx.NumConst); ok {
		if hiC, ok := hi.(*symx.NumConst); ok && loC.Value.Cmp(&hiC.Value) > 0 {
			panic(UsageError{Msg: "genForall: lo > hi"})
		}
	}

	return symx.NewForall(s.ids.NextConstraintID(), source, sym, lo, hi, body)
}

// GenFail builds an explicit, unconditional contradiction.
func (s *Set) GenFail(reason string, source *symx.Location) symx.Constraint {
	return symx.NewFail(s.ids.NextConstraintID(), source, reason)
}

// ---- mutators ----

// Require installs c as a soft constraint: an assertion the caller must
// separately prove, never narrowed by the local propagator.
func (s *Set) Require(c symx.Constraint) *Set { return s.install(c, classSoft) }

// RequireAll folds Require over cs, left to right.
func (s *Set) RequireAll(cs []symx.Constraint) *Set {
	cur := s
	for _, c := range cs {
		cur = cur.Require(c)
	}

	return cur
}

// Guarantee installs c as a hard constraint, known to hold along this path.
// If the immediate decision procedure can't immediately confirm it, the
// local propagator narrows the relevant caches.
func (s *Set) Guarantee(c symx.Constraint) *Set { return s.install(c, classHard) }

// GuaranteeAll folds Guarantee over cs, left to right.
func (s *Set) GuaranteeAll(cs []symx.Constraint) *Set {
	cur := s
	for _, c := range cs {
		cur = cur.Guarantee(c)
	}

	return cur
}

// AddIf installs c as a path constraint: the branch condition that led the
// interpreter down this path. Narrowed exactly like a hard constraint, but
// tracked under its own index so the SMT bundle can tell the two apart.
func (s *Set) AddIf(c symx.Constraint) *Set { return s.install(c, classPath) }

// AddIfAll folds AddIf over cs, left to right.
func (s *Set) AddIfAll(cs []symx.Constraint) *Set {
	cur := s
	for _, c := range cs {
		cur = cur.AddIf(c)
	}

	return cur
}

func (s *Set) install(c symx.Constraint, class constraintClass) *Set {
	if s.ctrIDSeen.Test(uint(c.CtrID())) {
		return s
	}

	verdict := s.CheckImmediate(c)
	if verdict == decide.True {
		return s
	}

	next := s.clone()

	idx := len(next.pool)
	pool := make([]symx.Constraint, idx+1)
	copy(pool, next.pool)
	pool[idx] = c
	next.pool = pool

	next.ctrIDSeen = next.ctrIDSeen.Clone()
	next.ctrIDSeen.Set(uint(c.CtrID()))

	switch class {
	case classHard:
		next.hardIdx = appendIdx(s.hardIdx, idx)
	case classSoft:
		next.softIdx = appendIdx(s.softIdx, idx)
	case classPath:
		next.pathIdx = appendIdx(s.pathIdx, idx)
	}

	if verdict == decide.False {
		log.WithFields(log.Fields{"ctrId": c.CtrID(), "lisp": c.Lisp().String(false)}).
			Debug("constraint decided false at install; snapshot invalidated")

		next.valid = TriFalse
	}

	// Soft constraints are an assertion the caller must prove elsewhere, so
	// they never feed the local propagator (spec.md §4.F).
	if class != classSoft {
		propagate(next, c)
	}

	return next
}

func appendIdx(s []int, idx int) []int {
	out := make([]int, len(s)+1)
	copy(out, s)
	out[len(s)] = idx

	return out
}

// ---- special generators ----

// GenSymIntGte mints a fresh Int symbol constrained to be >= k and returns
// it alongside the snapshot carrying that guarantee.
func (s *Set) GenSymIntGte(name string, k int64, source *symx.Location) (symx.Symbol, *Set) {
	sym := s.GenSymInt(name, source)
	ref := symx.SymbolRef(sym)
	ctr := s.GenNumCompare(symx.ConstInt(k), ref, false, source)

	return sym, s.Guarantee(ctr)
}

// GenSymFloatGte mints a fresh Float symbol constrained to be >= k and
// returns it alongside the snapshot carrying that guarantee.
func (s *Set) GenSymFloatGte(name string, k big.Rat, source *symx.Location) (symx.Symbol, *Set) {
	sym := s.GenSymFloat(name, source)
	ref := symx.SymbolRef(sym)
	ctr := s.GenNumCompare(symx.ConstFloat(k), ref, false, source)

	return sym, s.Guarantee(ctr)
}

// GenShaped produces a Shape of the given rank. If dims is nil, it mints
// rank fresh non-negative Int symbols (one guarantee each); otherwise dims
// is lifted directly into a constant shape and no new symbols are minted.
// A negative rank is a usage error, not a decidable constraint.
func (s *Set) GenShaped(name string, rank int, dims []int64, source *symx.Location) (symx.Shape, *Set) {
	if rank < 0 {
		panic(UsageError{Msg: "genShaped: negative rank"})
	}

	if dims != nil {
		nums := make([]symx.Num, len(dims))
		for i, d := range dims {
			nums[i] = symx.ConstInt(d)
		}

		return symx.ConstShape(nums...), s
	}

	cur := s
	nums := make([]symx.Num, rank)

	for i := 0; i < rank; i++ {
		dimSym, withSym := cur.genShapedDim(name, i, source)
		cur = withSym
		nums[i] = symx.SymbolRef(dimSym)
	}

	return symx.ConstShape(nums...), cur
}

func (s *Set) genShapedDim(name string, axis int, source *symx.Location) (symx.Symbol, *Set) {
	sym := s.GenSymInt(fmt.Sprintf("%s#%d", name, axis), source)
	ref := symx.SymbolRef(sym)
	nonNeg := s.GenNumCompare(symx.ConstInt(0), ref, false, source)

	return sym, s.Guarantee(nonNeg)
}

// CastBoolToInt converts a Bool expression to a 0/1 Int expression,
// constant-folding when e is already a literal and otherwise minting a
// fresh symbol tied to e by a guaranteed disjunction.
func (s *Set) CastBoolToInt(e symx.Bool, source *symx.Location) (symx.Num, *Set) {
	if c, ok := e.(*symx.BoolConst); ok {
		if c.Value {
			return symx.ConstInt(1), s
		}

		return symx.ConstInt(0), s
	}

	sym := s.GenSymInt("cast", source)
	n := symx.SymbolRef(sym)

	eIsTrue := s.GenFromBool(e, source)
	nEq1 := s.GenEquality(symx.OfNum(n), symx.OfNum(symx.ConstInt(1)), true, source)
	left := s.GenAnd(eIsTrue, nEq1, source)

	notE := s.GenNot(eIsTrue, source)
	nEq0 := s.GenEquality(symx.OfNum(n), symx.OfNum(symx.ConstInt(0)), true, source)
	right := s.GenAnd(notE, nEq0, source)

	disjunct := s.GenOr(left, right, source)

	return n, s.Guarantee(disjunct)
}

// CastNumToBool converts a numeric expression to a Bool, deciding by range
// when possible and otherwise minting a fresh symbol tied to e by a
// guaranteed disjunction.
func (s *Set) CastNumToBool(e symx.Num, source *symx.Location) (symx.Bool, *Set) {
	if r, ok := s.GetCachedRange(e); ok {
		if c, isConst := r.IsConst(); isConst {
			if c.Sign() == 0 {
				return symx.False, s
			}

			return symx.True, s
		}
	}

	sym := s.GenSymBool("cast", source)
	b := symx.BoolRef(sym)

	bTrue := s.GenFromBool(b, source)
	eNeq0 := s.GenEquality(symx.OfNum(e), symx.OfNum(symx.ConstInt(0)), false, source)
	left := s.GenAnd(bTrue, eNeq0, source)

	notB := s.GenNot(bTrue, source)
	eEq0 := s.GenEquality(symx.OfNum(e), symx.OfNum(symx.ConstInt(0)), true, source)
	right := s.GenAnd(notB, eEq0, source)

	disjunct := s.GenOr(left, right, source)

	return b, s.Guarantee(disjunct)
}

// GenFalsy is a documented stub. The interpreter's heap values (lists,
// dicts, tensors, None, ...) have a structural falsy test distinct from
// the numeric/boolean zero-check CastNumToBool performs, but the source
// this engine was distilled from never implements it either (the stub
// returns nothing for every case there too). Left unspecified per
// spec.md §9 rather than guessed at; callers must not rely on the
// returned ok value being true.
func (s *Set) GenFalsy(v symx.Operand, source *symx.Location) (symx.Constraint, bool) {
	return nil, false
}

// ---- decision-procedure plumbing ----

// CheckImmediate runs the immediate decision procedure against this
// snapshot's caches.
func (s *Set) CheckImmediate(c symx.Constraint) decide.Verdict {
	return decide.Decide(c, s, s.immediateCheckEnabled)
}

// HasSingleVar reports whether c mentions exactly one free symbol.
func (s *Set) HasSingleVar(c symx.Constraint) (symx.Symbol, symx.Multiplicity) {
	return symx.HasSingleVar(symx.FreeSymbolsConstraint(c))
}

// SymbolRange implements simplify.Lookup and decide.Context: a raw cache
// lookup with no fallback to Top, so callers can distinguish "no
// information yet" from "the unconstrained range".
func (s *Set) SymbolRange(id uint64) (rng.Range, bool) {
	r, ok := s.rangeCache[id]
	return r, ok
}

// SymbolShape implements simplify.Lookup and decide.Context.
func (s *Set) SymbolShape(id uint64) ([]symx.Num, bool) {
	d, ok := s.shapeCache[id]
	return d, ok
}

// RelatedShapeConstraints returns every hard or path constraint installed so
// far that mentions sym, in installation order. Used by callers reporting a
// shape error to explain which constraints pinned a shape symbol, not by the
// decision procedure itself.
func (s *Set) RelatedShapeConstraints(sym symx.Symbol) []symx.Constraint {
	out := s.shapeCtrCache[sym.ID]
	cp := make([]symx.Constraint, len(out))
	copy(cp, out)

	return cp
}

// StringValue implements decide.Context.
func (s *Set) StringValue(e symx.Str) (string, bool) {
	return s.GetCachedString(e)
}

// GetSymbolRange returns the raw cached range for sym, with no default.
func (s *Set) GetSymbolRange(sym symx.Symbol) (rng.Range, bool) {
	return s.SymbolRange(sym.ID)
}

// GetCachedRange recursively evaluates a numeric expression's range,
// defaulting an unconstrained symbol to Top. It returns false if any
// subexpression can't be evaluated, or if the composed result is invalid.
func (s *Set) GetCachedRange(n symx.Num) (rng.Range, bool) {
	n = simplify.NumX(n, s)

	switch x := n.(type) {
	case *symx.NumConst:
		return rng.FromConst(x.Value), true
	case *symx.NumSymbol:
		if r, ok := s.rangeCache[x.Sym.ID]; ok {
			return r, r.Valid()
		}

		return rng.Top(), true
	case *symx.NumUnary:
		arg, ok := s.GetCachedRange(x.Arg)
		if !ok {
			return rng.Range{}, false
		}

		var result rng.Range

		switch x.Op {
		case symx.NegOp:
			result = arg.Neg()
		case symx.CeilOp:
			result = arg.Ceil()
		case symx.FloorOp:
			result = arg.Floor()
		case symx.AbsOp:
			result = arg.Abs()
		}

		return result, result.Valid()
	case *symx.NumBinary:
		l, lok := s.GetCachedRange(x.Lhs)
		r, rok := s.GetCachedRange(x.Rhs)

		if !lok || !rok {
			return rng.Range{}, false
		}

		var result rng.Range

		switch x.Op {
		case symx.AddOp:
			result = l.Add(r)
		case symx.SubOp:
			result = l.Sub(r)
		case symx.MulOp:
			result = l.Mul(r)
		case symx.TrueDivOp:
			result = l.TrueDiv(r)
		case symx.FloorDivOp:
			result = l.FloorDiv(r)
		case symx.ModOp:
			result = l.Mod(r)
		}

		return result, result.Valid()
	case *symx.NumExtreme:
		if len(x.Args) == 0 {
			return rng.Range{}, false
		}

		acc, ok := s.GetCachedRange(x.Args[0])
		if !ok {
			return rng.Range{}, false
		}

		for _, a := range x.Args[1:] {
			ar, ok := s.GetCachedRange(a)
			if !ok {
				return rng.Range{}, false
			}

			if x.IsMax {
				acc = acc.Max(ar)
			} else {
				acc = acc.Min(ar)
			}
		}

		return acc, acc.Valid()
	default:
		return rng.Range{}, false
	}
}

// GetCachedShape returns the dim-vector for constant shapes, cached
// symbol-shapes, or set(base, const-axis, d) over a known base. Symbolic
// slice/concat/broadcast shapes are not resolved here.
func (s *Set) GetCachedShape(e symx.Shape) ([]symx.Num, bool) {
	switch x := e.(type) {
	case *symx.ShapeConst:
		return x.Dims, true
	case *symx.ShapeSymbol:
		d, ok := s.shapeCache[x.Sym.ID]
		return d, ok
	case *symx.ShapeSet:
		base, ok := s.GetCachedShape(x.Base)
		if !ok {
			return nil, false
		}

		axisR, ok := s.GetCachedRange(x.Axis)
		if !ok {
			return nil, false
		}

		av, ok := axisR.IsConst()
		if !ok || !av.IsInt() {
			return nil, false
		}

		idx := int(av.Num().Int64())
		if idx < 0 || idx >= len(base) {
			return nil, false
		}

		out := append([]symx.Num{}, base...)
		out[idx] = x.NewDim

		return out, true
	default:
		return nil, false
	}
}

// GetCachedString folds concatenation when both sides are known and resolves
// a slice when base and both bounds are constant, using the standard
// negative-index-wraps-from-end rule.
func (s *Set) GetCachedString(e symx.Str) (string, bool) {
	switch x := e.(type) {
	case *symx.StrConst:
		return x.Value, true
	case *symx.StrSymbol:
		v, ok := s.stringCache[x.Sym.ID]
		return v, ok
	case *symx.StrConcat:
		l, lok := s.GetCachedString(x.Left)
		r, rok := s.GetCachedString(x.Right)

		if lok && rok {
			return l + r, true
		}

		return "", false
	case *symx.StrSlice:
		base, ok := s.GetCachedString(x.Base)
		if !ok {
			return "", false
		}

		startR, ok := s.GetCachedRange(x.Start)
		if !ok {
			return "", false
		}

		endR, ok := s.GetCachedRange(x.End)
		if !ok {
			return "", false
		}

		sv, ok := startR.IsConst()
		if !ok || !sv.IsInt() {
			return "", false
		}

		ev, ok := endR.IsConst()
		if !ok || !ev.IsInt() {
			return "", false
		}

		lo := normalizeStrIndex(sv.Num().Int64(), len(base))
		hi := normalizeStrIndex(ev.Num().Int64(), len(base))

		if lo < 0 || hi < lo || hi > len(base) {
			return "", false
		}

		return base[lo:hi], true
	default:
		return "", false
	}
}

func normalizeStrIndex(i int64, length int) int {
	if i < 0 {
		i += int64(length)
	}

	return int(i)
}

// CheckNonString reports whether exp is structurally known to differ from
// str, either because its value is known and differs, or because it was
// previously ruled out via NotEq.
func (s *Set) CheckNonString(e symx.Str, str string) bool {
	if v, ok := s.GetCachedString(e); ok {
		return v != str
	}

	sym, ok := e.(*symx.StrSymbol)
	if !ok {
		return false
	}

	bad, ok := s.nonStringCache[sym.Sym.ID]
	if !ok {
		return false
	}

	_, found := bad[str]

	return found
}

// GetConstraintJSON renders the external-solver bundle for this snapshot:
// every installed constraint plus its class-indexed pool positions (spec.md
// §6).
func (s *Set) GetConstraintJSON() ([]byte, error) {
	return s.marshalBundle()
}

// String renders every installed constraint, newline-separated, with hard
// constraints in magenta and path constraints in yellow, using the
// human-readable S-expression grammar (spec.md §6).
func (s *Set) String() string {
	return s.render(pretty.ColourEnabled())
}

func (s *Set) render(colour bool) string {
	classOf := make(map[int]constraintClass, len(s.hardIdx)+len(s.pathIdx))
	for _, i := range s.hardIdx {
		classOf[i] = classHard
	}

	for _, i := range s.pathIdx {
		classOf[i] = classPath
	}

	var out []byte

	for i, c := range s.pool {
		line := c.Lisp().String(false)

		switch classOf[i] {
		case classHard:
			line = pretty.Magenta(line, colour)
		case classPath:
			line = pretty.Yellow(line, colour)
		}

		out = append(out, line...)
		out = append(out, '\n')
	}

	return string(out)
}
