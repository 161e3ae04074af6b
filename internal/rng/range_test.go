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
package rng

import (
	"math/big"
	"testing"
)

func rat(n int64) big.Rat {
	var r big.Rat
	r.SetInt64(n)

	return r
}

func Test_Range_Add_Soundness(t *testing.T) {
	checkBinary(t, Range.Add, func(a, b int64) int64 { return a + b })
}

func Test_Range_Sub_Soundness(t *testing.T) {
	checkBinary(t, Range.Sub, func(a, b int64) int64 { return a - b })
}

func Test_Range_Mul_Soundness(t *testing.T) {
	checkBinary(t, Range.Mul, func(a, b int64) int64 { return a * b })
}

func Test_Range_Max_Soundness(t *testing.T) {
	checkBinary(t, Range.Max, func(a, b int64) int64 {
		if a > b {
			return a
		}

		return b
	})
}

func Test_Range_Min_Soundness(t *testing.T) {
	checkBinary(t, Range.Min, func(a, b int64) int64 {
		if a < b {
			return a
		}

		return b
	})
}

// checkBinary brute-forces every pair of small integer ranges and checks
// that, for every concrete a in R_a and b in R_b, op(a,b) lies within the
// interval the transfer function computes for (R_a, R_b).
func checkBinary(t *testing.T, transfer func(Range, Range) Range, concrete func(int64, int64) int64) {
	t.Helper()

	bounds := []int64{-3, -1, 0, 1, 2, 4}

	for _, a1 := range bounds {
		for _, a2 := range bounds {
			if a2 < a1 {
				continue
			}

			for _, b1 := range bounds {
				for _, b2 := range bounds {
					if b2 < b1 {
						continue
					}

					ra := Range{FromInt(a1), FromInt(a2)}
					rb := Range{FromInt(b1), FromInt(b2)}
					result := transfer(ra, rb)

					for a := a1; a <= a2; a++ {
						for b := b1; b <= b2; b++ {
							c := concrete(a, b)
							if !result.Contains(rat(c)) {
								t.Errorf("transfer(%v,%v) = %v does not contain concrete result %d (from %d,%d)",
									ra, rb, result, c, a, b)
							}
						}
					}
				}
			}
		}
	}
}

func Test_Range_Mod_Const(t *testing.T) {
	r := Range{FromInt(-7), FromInt(20)}
	m := FromConstInt(5)

	result := r.Mod(m)
	if result.Start.Cmp(FromInt(0)) != 0 || result.End.Cmp(FromInt(4)) != 0 {
		t.Errorf("expected [0,4], got %v", result)
	}
}

func Test_Range_Mod_NonConst_IsTop(t *testing.T) {
	r := Range{FromInt(0), FromInt(10)}
	m := Range{FromInt(2), FromInt(5)}

	result := r.Mod(m)
	if result.Start.Cmp(NegInf) != 0 || result.End.Cmp(PosInf) != 0 {
		t.Errorf("expected top, got %v", result)
	}
}

func Test_Range_TrueDiv_StraddlesZero_IsTop(t *testing.T) {
	r := Range{FromInt(1), FromInt(10)}
	d := Range{FromInt(-2), FromInt(3)}

	result := r.TrueDiv(d)
	if result.Start.Cmp(NegInf) != 0 || result.End.Cmp(PosInf) != 0 {
		t.Errorf("expected top, got %v", result)
	}
}

func Test_Range_Intersect(t *testing.T) {
	a := Range{FromInt(0), FromInt(10)}
	b := Range{FromInt(5), FromInt(20)}

	result := a.Intersect(b)
	if result.Start.Cmp(FromInt(5)) != 0 || result.End.Cmp(FromInt(10)) != 0 {
		t.Errorf("expected [5,10], got %v", result)
	}
}

func Test_Range_Intersect_Disjoint_Invalid(t *testing.T) {
	a := Range{FromInt(0), FromInt(2)}
	b := Range{FromInt(5), FromInt(10)}

	result := a.Intersect(b)
	if result.Valid() {
		t.Errorf("expected invalid range, got %v", result)
	}
}

func Test_Range_LtRange(t *testing.T) {
	a := Range{FromInt(0), FromInt(2)}
	b := Range{FromInt(3), FromInt(10)}

	if !a.LtRange(b) {
		t.Errorf("expected %v < %v", a, b)
	}

	if b.LtRange(a) {
		t.Errorf("did not expect %v < %v", b, a)
	}
}

func Test_Range_Floor_Ceil(t *testing.T) {
	half := big.NewRat(3, 2)
	v := FromRat(*half)

	if v.Floor().Cmp(FromInt(1)) != 0 {
		t.Errorf("floor(3/2) should be 1, got %s", v.Floor())
	}

	if v.Ceil().Cmp(FromInt(2)) != 0 {
		t.Errorf("ceil(3/2) should be 2, got %s", v.Ceil())
	}

	negHalf := big.NewRat(-3, 2)
	nv := FromRat(*negHalf)

	if nv.Floor().Cmp(FromInt(-2)) != 0 {
		t.Errorf("floor(-3/2) should be -2, got %s", nv.Floor())
	}

	if nv.Ceil().Cmp(FromInt(-1)) != 0 {
		t.Errorf("ceil(-3/2) should be -1, got %s", nv.Ceil())
	}
}

func Test_Range_Top(t *testing.T) {
	top := Top()
	if !top.Valid() {
		t.Errorf("top should be valid")
	}

	if !top.Contains(rat(1000000)) {
		t.Errorf("top should contain everything")
	}
}
