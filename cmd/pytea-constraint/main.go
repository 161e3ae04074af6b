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

// Command pytea-constraint is a small demonstration front-end for the
// constraint engine: it builds a toy shape-error scenario, prints the
// resulting constraint set, and emits the external solver bundle.
package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pytea-go/constraint-engine/cset"
	"github.com/pytea-go/constraint-engine/internal/idgen"
	"github.com/pytea-go/constraint-engine/internal/symx"
)

var rootCmd = &cobra.Command{
	Use:   "pytea-constraint",
	Short: "Demonstrates the PyTea constraint engine.",
	Long:  "Builds a small tensor-shape scenario against the constraint engine and prints the result.",
	Run:   runDemo,
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.Flags().Bool("json", false, "emit the external solver bundle instead of the pretty listing")
	rootCmd.Flags().Bool("no-immediate-check", false, "disable the immediate decision procedure on every install")
	rootCmd.Flags().Int("rank", 2, "rank of the toy shape generated by the demo scenario")
}

func runDemo(cmd *cobra.Command, args []string) {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		log.SetLevel(log.DebugLevel)
	}

	defer func() {
		if r := recover(); r != nil {
			if usageErr, ok := r.(cset.UsageError); ok {
				fmt.Println("error:", usageErr.Error())
				os.Exit(1)
			}

			panic(r)
		}
	}()

	noImmediateCheck, _ := cmd.Flags().GetBool("no-immediate-check")
	s := cset.New(idgen.New(), cset.WithImmediateCheck(!noImmediateCheck))

	rows, s := s.GenSymIntGte("rows", 1, nil)
	cols, s := s.GenSymIntGte("cols", 1, nil)

	eqRows := s.GenEquality(symx.OfNum(symx.SymbolRef(rows)), symx.OfNum(symx.ConstInt(3)), true, nil)
	s = s.Guarantee(eqRows)

	eqCols := s.GenEquality(symx.OfNum(symx.SymbolRef(cols)), symx.OfNum(symx.ConstInt(4)), true, nil)
	s = s.Guarantee(eqCols)

	broadcast := s.GenBroad(
		symx.ConstShape(symx.SymbolRef(rows), symx.ConstInt(1)),
		symx.ConstShape(symx.ConstInt(1), symx.SymbolRef(cols)),
		nil)
	s = s.AddIf(broadcast)

	rank, _ := cmd.Flags().GetInt("rank")
	_, s = s.GenShaped("weight", rank, nil, nil)

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		raw, err := s.GetConstraintJSON()
		if err != nil {
			fmt.Println("error marshalling constraint bundle:", err)
			os.Exit(1)
		}

		fmt.Println(string(raw))

		return
	}

	fmt.Println(s.String())

	if !s.Valid() {
		fmt.Println("constraint set is unsatisfiable")
		os.Exit(1)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
