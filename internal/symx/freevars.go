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

import "sort"

// SymbolSet accumulates the set of symbols referenced by an expression or
// constraint, deduplicated by id.
type SymbolSet struct {
	byID map[uint64]Symbol
}

// NewSymbolSet returns an empty SymbolSet.
func NewSymbolSet() *SymbolSet {
	return &SymbolSet{byID: make(map[uint64]Symbol)}
}

func (s *SymbolSet) add(sym Symbol) {
	s.byID[sym.ID] = sym
}

// Merge folds the contents of o into s.
func (s *SymbolSet) Merge(o *SymbolSet) {
	for id, sym := range o.byID {
		s.byID[id] = sym
	}
}

// Len returns the number of distinct symbols in this set.
func (s *SymbolSet) Len() int { return len(s.byID) }

// All returns every symbol in this set, sorted by id for determinism.
func (s *SymbolSet) All() []Symbol {
	out := make([]Symbol, 0, len(s.byID))
	for _, sym := range s.byID {
		out = append(out, sym)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// ByKind returns every symbol of a given Kind in this set, sorted by id.
func (s *SymbolSet) ByKind(k Kind) []Symbol {
	var out []Symbol

	for _, sym := range s.All() {
		if sym.Kind == k {
			out = append(out, sym)
		}
	}

	return out
}

// Multiplicity classifies how many distinct symbols an expression mentions.
type Multiplicity uint8

// The three possible outcomes of HasSingleVar.
const (
	NoVars Multiplicity = iota
	OneVar
	ManyVars
)

// HasSingleVar returns "this set mentions exactly one symbol" (used for
// range-narrowing heuristics): if so, it returns that symbol and OneVar; if
// the set is empty it returns NoVars; if it holds more than one symbol it
// returns ManyVars.
func HasSingleVar(s *SymbolSet) (Symbol, Multiplicity) {
	switch s.Len() {
	case 0:
		return Symbol{}, NoVars
	case 1:
		for _, sym := range s.byID {
			return sym, OneVar
		}

		panic("unreachable")
	default:
		return Symbol{}, ManyVars
	}
}

// FreeSymbolsNum collects the free symbols of a Num expression.
func FreeSymbolsNum(n Num) *SymbolSet {
	out := NewSymbolSet()
	collectNum(n, out)

	return out
}

func collectNum(n Num, out *SymbolSet) {
	switch x := n.(type) {
	case *NumConst:
	case *NumSymbol:
		out.add(x.Sym)
	case *NumUnary:
		collectNum(x.Arg, out)
	case *NumBinary:
		collectNum(x.Lhs, out)
		collectNum(x.Rhs, out)
	case *NumExtreme:
		for _, a := range x.Args {
			collectNum(a, out)
		}
	case *NumDim:
		collectShape(x.Base, out)
		collectNum(x.Index, out)
	case *NumNumel:
		collectShape(x.Base, out)
	}
}

// FreeSymbolsBool collects the free symbols of a Bool expression.
func FreeSymbolsBool(b Bool) *SymbolSet {
	out := NewSymbolSet()
	collectBool(b, out)

	return out
}

func collectBool(b Bool, out *SymbolSet) {
	switch x := b.(type) {
	case *BoolConst:
	case *BoolSymbol:
		out.add(x.Sym)
	}
}

// FreeSymbolsShape collects the free symbols of a Shape expression.
func FreeSymbolsShape(s Shape) *SymbolSet {
	out := NewSymbolSet()
	collectShape(s, out)

	return out
}

func collectShape(s Shape, out *SymbolSet) {
	switch x := s.(type) {
	case *ShapeConst:
		for _, d := range x.Dims {
			collectNum(d, out)
		}
	case *ShapeSymbol:
		out.add(x.Sym)

		if x.Sym.Rank != nil {
			collectNum(x.Sym.Rank, out)
		}
	case *ShapeSet:
		collectShape(x.Base, out)
		collectNum(x.Axis, out)
		collectNum(x.NewDim, out)
	case *ShapeSlice:
		collectShape(x.Base, out)
		collectNum(x.Start, out)
		collectNum(x.End, out)
	case *ShapeConcat:
		collectShape(x.Left, out)
		collectShape(x.Right, out)
	case *ShapeBroadcast:
		collectShape(x.Left, out)
		collectShape(x.Right, out)
	}
}

// FreeSymbolsStr collects the free symbols of a Str expression.
func FreeSymbolsStr(s Str) *SymbolSet {
	out := NewSymbolSet()
	collectStr(s, out)

	return out
}

func collectStr(s Str, out *SymbolSet) {
	switch x := s.(type) {
	case *StrConst:
	case *StrSymbol:
		out.add(x.Sym)
	case *StrConcat:
		collectStr(x.Left, out)
		collectStr(x.Right, out)
	case *StrSlice:
		collectStr(x.Base, out)
		collectNum(x.Start, out)
		collectNum(x.End, out)
	}
}

// FreeSymbolsOperand collects the free symbols of an Operand.
func FreeSymbolsOperand(o Operand) *SymbolSet {
	switch o.kind {
	case NumOperand:
		return FreeSymbolsNum(o.num)
	case BoolOperand:
		return FreeSymbolsBool(o.bool_)
	case ShapeOperand:
		return FreeSymbolsShape(o.shape)
	case StrOperand:
		return FreeSymbolsStr(o.str)
	default:
		return NewSymbolSet()
	}
}

// FreeSymbolsConstraint collects the free symbols of a Constraint,
// recursing through every sub-constraint and operand.
func FreeSymbolsConstraint(c Constraint) *SymbolSet {
	out := NewSymbolSet()
	collectConstraint(c, out)

	return out
}

func collectConstraint(c Constraint, out *SymbolSet) {
	switch x := c.(type) {
	case *ExpBool:
		collectBool(x.Expr, out)
	case *Equal:
		out.Merge(FreeSymbolsOperand(x.Lhs))
		out.Merge(FreeSymbolsOperand(x.Rhs))
	case *NotEqual:
		out.Merge(FreeSymbolsOperand(x.Lhs))
		out.Merge(FreeSymbolsOperand(x.Rhs))
	case *LessThan:
		collectNum(x.Lhs, out)
		collectNum(x.Rhs, out)
	case *LessEq:
		collectNum(x.Lhs, out)
		collectNum(x.Rhs, out)
	case *Conjunct:
		collectConstraint(x.Lhs, out)
		collectConstraint(x.Rhs, out)
	case *Disjunct:
		collectConstraint(x.Lhs, out)
		collectConstraint(x.Rhs, out)
	case *Negation:
		collectConstraint(x.Arg, out)
	case *Broadcastable:
		collectShape(x.Left, out)
		collectShape(x.Right, out)
	case *Forall:
		out.add(x.Sym)
		collectNum(x.Lo, out)
		collectNum(x.Hi, out)
		collectConstraint(x.Body, out)
	case *Fail:
	}
}
