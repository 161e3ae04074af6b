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

// Constraint is a tagged record `{id, source?, ...}` in the eleven variants
// named by spec.md §3: ExpBool, Eq, NotEq, Lt, Le, And, Or, Not,
// Broadcastable, Forall, Fail.  Constraint ids are minted by the owning
// constraint set (component E) from the same idgen.Ids as symbol ids, but
// are drawn from an independent counter.
type Constraint interface {
	// CtrID returns this constraint's unique id.
	CtrID() uint64
	// Location returns this constraint's (possibly nil) source location.
	Location() *Location
	// Lisp renders this constraint as an S-expression.
	Lisp() pretty.SExp
	constraintNode()
}

type base struct {
	ID  uint64
	Src *Location
}

// CtrID implements Constraint.
func (b base) CtrID() uint64 { return b.ID }

// Location implements Constraint.
func (b base) Location() *Location { return b.Src }

// ExpBool lifts a bare Bool expression into a Constraint.
type ExpBool struct {
	base
	Expr Bool
}

// NewExpBool constructs an ExpBool constraint.
func NewExpBool(id uint64, source *Location, e Bool) *ExpBool {
	return &ExpBool{base{id, source}, e}
}

func (*ExpBool) constraintNode() {}

// Lisp implements Constraint.
func (c *ExpBool) Lisp() pretty.SExp { return c.Expr.Lisp() }

// Equal asserts that Lhs and Rhs denote the same value.  Lhs and Rhs must
// have the same Operand.Kind(); mismatched kinds are a decision-procedure
// concern (always false), not a construction-time usage error, since the
// interpreter may legitimately build such a comparison before simplifying.
type Equal struct {
	base
	Lhs, Rhs Operand
}

// NewEqual constructs an Eq constraint.
func NewEqual(id uint64, source *Location, lhs, rhs Operand) *Equal {
	return &Equal{base{id, source}, lhs, rhs}
}

func (*Equal) constraintNode() {}

// Lisp implements Constraint.
func (c *Equal) Lisp() pretty.SExp {
	return pretty.NewList([]pretty.SExp{pretty.NewSymbol("=="), c.Lhs.Lisp(), c.Rhs.Lisp()})
}

// NotEqual asserts that Lhs and Rhs do not denote the same value.
type NotEqual struct {
	base
	Lhs, Rhs Operand
}

// NewNotEqual constructs a NotEq constraint.
func NewNotEqual(id uint64, source *Location, lhs, rhs Operand) *NotEqual {
	return &NotEqual{base{id, source}, lhs, rhs}
}

func (*NotEqual) constraintNode() {}

// Lisp implements Constraint.
func (c *NotEqual) Lisp() pretty.SExp {
	return pretty.NewList([]pretty.SExp{pretty.NewSymbol("!="), c.Lhs.Lisp(), c.Rhs.Lisp()})
}

// LessThan asserts Lhs < Rhs over the numeric domain.
type LessThan struct {
	base
	Lhs, Rhs Num
}

// NewLessThan constructs an Lt constraint.
func NewLessThan(id uint64, source *Location, lhs, rhs Num) *LessThan {
	return &LessThan{base{id, source}, lhs, rhs}
}

func (*LessThan) constraintNode() {}

// Lisp implements Constraint.
func (c *LessThan) Lisp() pretty.SExp {
	return pretty.NewList([]pretty.SExp{pretty.NewSymbol("<"), c.Lhs.Lisp(), c.Rhs.Lisp()})
}

// LessEq asserts Lhs <= Rhs over the numeric domain.
type LessEq struct {
	base
	Lhs, Rhs Num
}

// NewLessEq constructs a Le constraint.
func NewLessEq(id uint64, source *Location, lhs, rhs Num) *LessEq {
	return &LessEq{base{id, source}, lhs, rhs}
}

func (*LessEq) constraintNode() {}

// Lisp implements Constraint.
func (c *LessEq) Lisp() pretty.SExp {
	return pretty.NewList([]pretty.SExp{pretty.NewSymbol("<="), c.Lhs.Lisp(), c.Rhs.Lisp()})
}

// Conjunct asserts that both Lhs and Rhs hold.
type Conjunct struct {
	base
	Lhs, Rhs Constraint
}

// NewConjunct constructs an And constraint.
func NewConjunct(id uint64, source *Location, lhs, rhs Constraint) *Conjunct {
	return &Conjunct{base{id, source}, lhs, rhs}
}

func (*Conjunct) constraintNode() {}

// Lisp implements Constraint.
func (c *Conjunct) Lisp() pretty.SExp {
	return pretty.NewList([]pretty.SExp{pretty.NewSymbol("and"), c.Lhs.Lisp(), c.Rhs.Lisp()})
}

// Disjunct asserts that at least one of Lhs or Rhs holds.
type Disjunct struct {
	base
	Lhs, Rhs Constraint
}

// NewDisjunct constructs an Or constraint.
func NewDisjunct(id uint64, source *Location, lhs, rhs Constraint) *Disjunct {
	return &Disjunct{base{id, source}, lhs, rhs}
}

func (*Disjunct) constraintNode() {}

// Lisp implements Constraint.
func (c *Disjunct) Lisp() pretty.SExp {
	return pretty.NewList([]pretty.SExp{pretty.NewSymbol("or"), c.Lhs.Lisp(), c.Rhs.Lisp()})
}

// Negation asserts that Arg does not hold.
type Negation struct {
	base
	Arg Constraint
}

// NewNegation constructs a Not constraint.
func NewNegation(id uint64, source *Location, arg Constraint) *Negation {
	return &Negation{base{id, source}, arg}
}

func (*Negation) constraintNode() {}

// Lisp implements Constraint.
func (c *Negation) Lisp() pretty.SExp {
	return pretty.NewList([]pretty.SExp{pretty.NewSymbol("not"), c.Arg.Lisp()})
}

// Broadcastable asserts that Left and Right are NumPy/PyTorch-broadcastable
// shapes.
type Broadcastable struct {
	base
	Left, Right Shape
}

// NewBroadcastable constructs a Broadcastable constraint.
func NewBroadcastable(id uint64, source *Location, left, right Shape) *Broadcastable {
	return &Broadcastable{base{id, source}, left, right}
}

func (*Broadcastable) constraintNode() {}

// Lisp implements Constraint.
func (c *Broadcastable) Lisp() pretty.SExp {
	return pretty.NewList([]pretty.SExp{pretty.NewSymbol("broadcastable"), c.Left.Lisp(), c.Right.Lisp()})
}

// Forall asserts that Body holds for every integer value of Sym in the
// closed range [Lo, Hi].  The decision procedure always classifies this as
// unknown (spec.md §4.D): it is recorded so the SMT bundle can hand it to
// the solver, not so the engine can reason about it directly.
type Forall struct {
	base
	Sym    Symbol
	Lo, Hi Num
	Body   Constraint
}

// NewForall constructs a Forall constraint.  Panics (usage error) if Sym is
// not Int-kinded, or if Lo and Hi are both constant and Lo > Hi (symmetric
// with GenShaped's negative-rank check: a malformed bound is a caller bug,
// not a constraint the engine should silently install).
func NewForall(id uint64, source *Location, sym Symbol, lo, hi Num, body Constraint) *Forall {
	if sym.Kind != Int {
		panic("forall quantifies only over Int symbols")
	}

	if loC, ok := lo.(*NumConst); ok {
		if hiC, ok := hi.(*NumConst); ok {
			if loC.Value.Cmp(&hiC.Value) > 0 {
				panic("forall: lo > hi")
			}
		}
	}

	return &Forall{base{id, source}, sym, lo, hi, body}
}

// RebuildForall reconstructs a Forall with simplified Lo/Hi/Body, skipping
// the lo>hi check NewForall performs: the original Forall already passed it
// at construction, and simplification only narrows symbols to points it
// already knows are consistent with the installed pool, never introduces a
// fresh bound pair to validate. Used by the simplifier (component C) when
// normalizing an already-installed constraint for display/export.
func RebuildForall(orig *Forall, lo, hi Num, body Constraint) *Forall {
	return &Forall{orig.base, orig.Sym, lo, hi, body}
}

func (*Forall) constraintNode() {}

// Lisp implements Constraint.
func (c *Forall) Lisp() pretty.SExp {
	return pretty.NewList([]pretty.SExp{
		pretty.NewSymbol("forall"),
		pretty.NewSymbol(c.Sym.Name),
		c.Lo.Lisp(),
		c.Hi.Lisp(),
		c.Body.Lisp(),
	})
}

// Fail is an explicit, unconditional contradiction carrying a human-readable
// reason.  The decision procedure always classifies it as false (spec.md
// §4.D); the reason appears verbatim in diagnostics (spec.md §7).
type Fail struct {
	base
	Reason string
}

// NewFail constructs a Fail constraint.
func NewFail(id uint64, source *Location, reason string) *Fail {
	return &Fail{base{id, source}, reason}
}

func (*Fail) constraintNode() {}

// Lisp implements Constraint.
func (c *Fail) Lisp() pretty.SExp {
	return pretty.NewList([]pretty.SExp{pretty.NewSymbol("fail"), pretty.NewSymbol(c.Reason)})
}
