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

// Package symx implements the purely-functional symbolic-expression algebra:
// Symbol, the tagged Num/Bool/Shape/String expression trees, and the
// Constraint sum type built on top of them.  Nothing in this package
// mutates; every constructor produces a tree without any normalization
// (that is internal/simplify's job), and a few reject misuse (e.g. a
// wrongly-kinded symbol reference) with a panic.
package symx

import "fmt"

// Kind identifies the result-kind of a Symbol (and, by extension, of any Num
// / Bool / Shape / String expression that references it).
type Kind uint8

const (
	// Int identifies an integer-valued symbol.
	Int Kind = iota
	// Float identifies a floating-point-valued symbol.
	Float
	// Bool identifies a boolean-valued symbol.
	Bool
	// String identifies a string-valued symbol.
	String
	// Shape identifies a tensor-shape-valued symbol.
	Shape
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case String:
		return "string"
	case Shape:
		return "shape"
	default:
		return "?"
	}
}

// Location is a sanitized source position, matching the
// `{file, line, column}` shape the external-solver JSON bundle requires
// (§6).
type Location struct {
	File   string
	Line   int
	Column int
}

// Symbol is `(id, kind, display-name, optional source-location, and for
// Shape an expression for rank)`, per spec.md §3.  Ids are minted by
// internal/idgen and are globally monotone across all snapshots descended
// from a common root.
type Symbol struct {
	ID     uint64
	Kind   Kind
	Name   string
	Source *Location
	// Rank is only meaningful when Kind == Shape: a Num expression for the
	// symbol's rank (number of dimensions), which may itself be symbolic.
	Rank Num
}

// NewSymbol constructs a non-Shape symbol.  Panics (a usage error, per §7)
// if called with Kind == Shape; use NewShapeSymbol instead.
func NewSymbol(id uint64, kind Kind, name string, source *Location) Symbol {
	if kind == Shape {
		panic("use NewShapeSymbol to construct a Shape symbol")
	}

	return Symbol{ID: id, Kind: kind, Name: name, Source: source}
}

// NewShapeSymbol constructs a Shape symbol with a given rank expression.
func NewShapeSymbol(id uint64, name string, source *Location, rank Num) Symbol {
	return Symbol{ID: id, Kind: Shape, Name: name, Source: source, Rank: rank}
}

func (s Symbol) String() string {
	return fmt.Sprintf("%s@%d", s.Name, s.ID)
}
