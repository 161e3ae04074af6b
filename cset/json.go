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
	"github.com/segmentio/encoding/json"

	"github.com/pytea-go/constraint-engine/internal/simplify"
	"github.com/pytea-go/constraint-engine/internal/symx"
)

// jsonLocation is the sanitized `{file, line, column}` shape the external
// solver bundle requires (spec.md §6); a nil source location renders as
// JSON null.
type jsonLocation struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

type jsonConstraint struct {
	Lisp   string        `json:"lisp"`
	Source *jsonLocation `json:"source"`
}

type jsonBundle struct {
	CtrPool []jsonConstraint `json:"ctrPool"`
	HardCtr []int            `json:"hardCtr"`
	SoftCtr []int            `json:"softCtr"`
	PathCtr []int            `json:"pathCtr"`
}

func sanitizeLocation(loc *symx.Location) *jsonLocation {
	if loc == nil {
		return nil
	}

	return &jsonLocation{File: loc.File, Line: loc.Line, Column: loc.Column}
}

// marshalBundle builds the `{ctrPool, hardCtr, softCtr, pathCtr}` bundle
// handed to the external SMT solver: every installed constraint, simplified
// against this snapshot's own caches and rendered as its S-expression plus
// sanitized source location, and the three class-indexed position lists
// (spec.md §4.E, §6).
func (s *Set) marshalBundle() ([]byte, error) {
	bundle := jsonBundle{
		CtrPool: make([]jsonConstraint, len(s.pool)),
		HardCtr: append([]int{}, s.hardIdx...),
		SoftCtr: append([]int{}, s.softIdx...),
		PathCtr: append([]int{}, s.pathIdx...),
	}

	for i, c := range s.pool {
		bundle.CtrPool[i] = jsonConstraint{
			Lisp:   simplify.ConstraintX(c, s).Lisp().String(false),
			Source: sanitizeLocation(c.Location()),
		}
	}

	return json.Marshal(bundle)
}
