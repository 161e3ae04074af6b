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
package idgen

import "testing"

func TestNextSymbolID_Monotone(t *testing.T) {
	ids := New()

	a := ids.NextSymbolID()
	b := ids.NextSymbolID()

	if b != a+1 {
		t.Fatalf("NextSymbolID() = %d, %d; want consecutive", a, b)
	}
}

func TestNextConstraintID_IndependentFromSymbolID(t *testing.T) {
	ids := New()

	ids.NextSymbolID()
	ids.NextSymbolID()

	c := ids.NextConstraintID()
	if c != 0 {
		t.Fatalf("NextConstraintID() = %d, want 0 (symbol and constraint ids are independent counters)", c)
	}
}

func TestIds_SharedAcrossForks(t *testing.T) {
	ids := New()

	first := ids.NextSymbolID()

	// Two snapshots that fork from the same root but advance the shared
	// counter independently must never observe the same id.
	second := ids.NextSymbolID()
	third := ids.NextSymbolID()

	seen := map[uint64]bool{first: true}
	for _, id := range []uint64{second, third} {
		if seen[id] {
			t.Fatalf("duplicate id %d observed across forks", id)
		}

		seen[id] = true
	}
}
