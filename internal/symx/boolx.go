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

// Bool is a boolean-result-kind expression: a constant or a symbol
// reference.  Logical connectives (and/or/not) are not expressed here —
// they live one level up, in the Constraint sum type, which embeds a Bool
// leaf via ExpBool when a bare boolean expression needs to appear where a
// Constraint is expected.
type Bool interface {
	Lisp() pretty.SExp
	boolNode()
}

// BoolConst is a constant boolean value.
type BoolConst struct {
	Value bool
}

// True is the constant boolean expression `true`.
var True = &BoolConst{Value: true}

// False is the constant boolean expression `false`.
var False = &BoolConst{Value: false}

func (*BoolConst) boolNode() {}

// Lisp implements Bool.
func (c *BoolConst) Lisp() pretty.SExp {
	if c.Value {
		return pretty.NewSymbol("true")
	}

	return pretty.NewSymbol("false")
}

// BoolSymbol is a reference to a Bool-kind symbol.
type BoolSymbol struct {
	Sym Symbol
}

// BoolRef constructs a boolean symbol reference.  Panics if sym is not a
// Bool symbol.
func BoolRef(sym Symbol) *BoolSymbol {
	if sym.Kind != Bool {
		panic("symbol reference used as Bool must be Bool-kinded")
	}

	return &BoolSymbol{Sym: sym}
}

func (*BoolSymbol) boolNode() {}

// Lisp implements Bool.
func (s *BoolSymbol) Lisp() pretty.SExp {
	return pretty.NewSymbol(s.Sym.Name)
}
