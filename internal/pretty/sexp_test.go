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
package pretty

import "testing"

func TestSymbol_String(t *testing.T) {
	s := NewSymbol("foo")
	if got := s.String(false); got != "foo" {
		t.Errorf("got %q, want %q", got, "foo")
	}
}

func TestSymbol_QuotesWhitespace(t *testing.T) {
	s := NewSymbol("has space")

	if got := s.String(true); got != `"has space"` {
		t.Errorf("got %q, want %q", got, `"has space"`)
	}

	if got := s.String(false); got != "has space" {
		t.Errorf("unquoted form got %q, want %q", got, "has space")
	}
}

func TestList_String(t *testing.T) {
	l := NewList([]SExp{NewSymbol("+"), NewSymbol("1"), NewSymbol("2")})

	if got := l.String(false); got != "(+ 1 2)" {
		t.Errorf("got %q, want %q", got, "(+ 1 2)")
	}
}

func TestList_Nested(t *testing.T) {
	inner := NewList([]SExp{NewSymbol("world")})
	outer := NewList([]SExp{NewSymbol("hello"), inner})

	if got := outer.String(false); got != "(hello (world))" {
		t.Errorf("got %q, want %q", got, "(hello (world))")
	}
}

func TestList_Empty(t *testing.T) {
	l := NewList(nil)
	if got := l.String(false); got != "()" {
		t.Errorf("got %q, want %q", got, "()")
	}
}
