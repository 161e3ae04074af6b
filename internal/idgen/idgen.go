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

// Package idgen provides the one piece of process-wide mutable state in the
// constraint engine: the shared symbol/constraint id-manager.  Every
// snapshot descended from a common root references (never copies) the same
// *Ids, so that forked branches never collide on an id even though they
// otherwise share no mutable state.
package idgen

import "sync/atomic"

// Ids is a handle onto two monotone counters.  Mixing two Ids handles across
// a single fork (i.e. building one branch's symbols against one manager and
// another branch's against a different manager) is a caller bug: ids are
// only guaranteed unique program-wide when every descendant of a root
// shares the same *Ids.
type Ids struct {
	nextSymId uint64
	nextCtrId uint64
}

// New creates a fresh id-manager, to be shared by a root snapshot and all of
// its descendants.
func New() *Ids {
	return &Ids{}
}

// NextSymbolID mints a new, globally unique symbol id.
func (p *Ids) NextSymbolID() uint64 {
	return atomic.AddUint64(&p.nextSymId, 1) - 1
}

// NextConstraintID mints a new, globally unique constraint id.  Constraint
// ids and symbol ids are drawn from independent counters, so a symbol and a
// constraint may legitimately share the same numeric id.
func (p *Ids) NextConstraintID() uint64 {
	return atomic.AddUint64(&p.nextCtrId, 1) - 1
}
