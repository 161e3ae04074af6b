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

// Str is a string-result-kind expression: constants, symbol references,
// concatenation and slicing.  Named Str (not String) to avoid shadowing the
// builtin string type and the Kind value of the same name.
type Str interface {
	Lisp() pretty.SExp
	strNode()
}

// StrConst is a constant string value.
type StrConst struct {
	Value string
}

// ConstStr constructs a constant string expression.
func ConstStr(v string) *StrConst {
	return &StrConst{Value: v}
}

func (*StrConst) strNode() {}

// Lisp implements Str.
func (c *StrConst) Lisp() pretty.SExp {
	return pretty.NewSymbol(c.Value)
}

// StrSymbol is a reference to a String-kind symbol.
type StrSymbol struct {
	Sym Symbol
}

// StrRef constructs a string symbol reference.  Panics if sym is not a
// String symbol.
func StrRef(sym Symbol) *StrSymbol {
	if sym.Kind != String {
		panic("symbol reference used as Str must be String-kinded")
	}

	return &StrSymbol{Sym: sym}
}

func (*StrSymbol) strNode() {}

// Lisp implements Str.
func (s *StrSymbol) Lisp() pretty.SExp {
	return pretty.NewSymbol(s.Sym.Name)
}

// StrConcat concatenates two string expressions: `concat(left, right)`.
type StrConcat struct {
	Left, Right Str
}

// ConcatStr constructs a string-concatenation expression.
func ConcatStr(left, right Str) *StrConcat {
	return &StrConcat{Left: left, Right: right}
}

func (*StrConcat) strNode() {}

// Lisp implements Str.
func (c *StrConcat) Lisp() pretty.SExp {
	return pretty.NewList([]pretty.SExp{pretty.NewSymbol("concat"), c.Left.Lisp(), c.Right.Lisp()})
}

// StrSlice takes the half-open substring `[start,end)` of Base, using the
// standard absolute-index-modulo-length rule for negative indices (applied
// when the slice is resolved, not at construction time): `slice(base, start,
// end)`.
type StrSlice struct {
	Base       Str
	Start, End Num
}

// SliceStr constructs a string-slice expression.
func SliceStr(base Str, start, end Num) *StrSlice {
	return &StrSlice{Base: base, Start: start, End: end}
}

func (*StrSlice) strNode() {}

// Lisp implements Str.
func (s *StrSlice) Lisp() pretty.SExp {
	return pretty.NewList([]pretty.SExp{pretty.NewSymbol("slice"), s.Base.Lisp(), s.Start.Lisp(), s.End.Lisp()})
}
