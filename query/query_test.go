/*
 * Copyright 2024 The fastjson Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package query

import (
	"reflect"
	"testing"
)

func ints(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// TestFilterTransformFold mirrors the spec's end-to-end scenario:
// from([1..10]).filter(even).transform(square).fold(0, +) == 220, and
// the parallel driver must agree.
func TestFilterTransformFold(t *testing.T) {
	even := func(x int) bool { return x%2 == 0 }
	square := func(x int) int { return x * x }
	sum := func(acc, x int) int { return acc + x }

	seq := Fold(Transform(From(ints(10)).Filter(even), square), 0, sum)
	if seq != 220 {
		t.Errorf("sequential = %d, want 220", seq)
	}

	par := Fold(Transform(FromParallel(ints(10), 4).Filter(even), square), 0, sum)
	if par != 220 {
		t.Errorf("parallel = %d, want 220", par)
	}
}

func TestSumMatchesSequentialAndParallel(t *testing.T) {
	seq := Sum(From(ints(1000)))
	par := Sum(FromParallel(ints(1000), 8))
	if seq != par {
		t.Errorf("sequential sum %d != parallel sum %d", seq, par)
	}
	if seq != 500500 {
		t.Errorf("sum = %d, want 500500", seq)
	}
}

func TestScanInclusiveAndSeeded(t *testing.T) {
	add := func(acc, x int) int { return acc + x }
	inclusive := Scan(From(ints(5)), add).ToSlice()
	want := []int{1, 3, 6, 10, 15}
	if !reflect.DeepEqual(inclusive, want) {
		t.Errorf("Scan = %v, want %v", inclusive, want)
	}

	seeded := ScanSeeded(From(ints(5)), 100, add).ToSlice()
	wantSeeded := []int{100, 101, 103, 106, 110, 115}
	if !reflect.DeepEqual(seeded, wantSeeded) {
		t.Errorf("ScanSeeded = %v, want %v", seeded, wantSeeded)
	}
}

// TestScanLaw checks spec §8 property 5: from(S).scan(+).last() ==
// from(S).fold(0, +), for the associative operator + with identity 0.
func TestScanLaw(t *testing.T) {
	add := func(acc, x int) int { return acc + x }
	items := ints(9)

	scanned := Scan(From(items), add).ToSlice()
	last := scanned[len(scanned)-1]

	folded := Fold(From(items), 0, add)

	if last != folded {
		t.Errorf("scan.last() = %d, fold(0, +) = %d; scan law violated", last, folded)
	}
}

func TestSortStableAndOrderByAlias(t *testing.T) {
	type kv struct {
		key, order int
	}
	items := []kv{{1, 0}, {2, 1}, {1, 2}, {2, 3}, {1, 4}}
	less := func(a, b kv) bool { return a.key < b.key }

	sorted := From(items).Sort(less).ToSlice()
	// Stability: equal keys must keep their relative input order.
	var ones, twos []int
	for _, v := range sorted {
		if v.key == 1 {
			ones = append(ones, v.order)
		} else {
			twos = append(twos, v.order)
		}
	}
	if !reflect.DeepEqual(ones, []int{0, 2, 4}) {
		t.Errorf("key==1 order = %v, want [0 2 4]", ones)
	}
	if !reflect.DeepEqual(twos, []int{1, 3}) {
		t.Errorf("key==2 order = %v, want [1 3]", twos)
	}

	orderBy := From(items).OrderBy(less).ToSlice()
	if !reflect.DeepEqual(sorted, orderBy) {
		t.Errorf("OrderBy and Sort disagree")
	}
}

func TestDistinctPreservesFirstOccurrence(t *testing.T) {
	items := []int{3, 1, 3, 2, 1, 4}
	out := Distinct(From(items), func(x int) int { return x }).ToSlice()
	want := []int{3, 1, 2, 4}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("Distinct = %v, want %v", out, want)
	}
}

func TestGroupByPreservesOrder(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6}
	groups := GroupBy(From(items), func(x int) int { return x % 2 }).ToSlice()
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].Key != 1 || !reflect.DeepEqual(groups[0].Items, []int{1, 3, 5}) {
		t.Errorf("odd group = %+v", groups[0])
	}
	if groups[1].Key != 0 || !reflect.DeepEqual(groups[1].Items, []int{2, 4, 6}) {
		t.Errorf("even group = %+v", groups[1])
	}
}

func TestZipTerminatesAtShorter(t *testing.T) {
	a := From([]int{1, 2, 3, 4})
	b := From([]string{"a", "b", "c"})
	pairs := Zip(a, b).ToSlice()
	if len(pairs) != 3 {
		t.Fatalf("got %d pairs, want 3", len(pairs))
	}
	if pairs[2].First != 3 || pairs[2].Second != "c" {
		t.Errorf("pairs[2] = %+v", pairs[2])
	}
}

func TestTakeSkipTakeWhile(t *testing.T) {
	items := ints(10)
	if got := From(items).Take(3).ToSlice(); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Errorf("Take(3) = %v", got)
	}
	if got := From(items).Skip(7).ToSlice(); !reflect.DeepEqual(got, []int{8, 9, 10}) {
		t.Errorf("Skip(7) = %v", got)
	}
	if got := From(items).TakeWhile(func(x int) bool { return x < 5 }).ToSlice(); !reflect.DeepEqual(got, []int{1, 2, 3, 4}) {
		t.Errorf("TakeWhile = %v", got)
	}
}

func TestAnyAllFindSequentialAndParallel(t *testing.T) {
	items := ints(100)
	isHundred := func(x int) bool { return x == 100 }

	if !Any(From(items), isHundred) || !Any(FromParallel(items, 8), isHundred) {
		t.Errorf("Any should find 100")
	}
	if Any(From(items), func(x int) bool { return x > 1000 }) {
		t.Errorf("Any should not find > 1000")
	}
	if !All(From(items), func(x int) bool { return x > 0 }) {
		t.Errorf("All(x > 0) should hold")
	}
	if All(From(items), func(x int) bool { return x > 1 }) {
		t.Errorf("All(x > 1) should not hold (1 is present)")
	}

	v, ok := Find(From(items), func(x int) bool { return x > 50 })
	if !ok || v != 51 {
		t.Errorf("Find(sequential) = (%d, %v), want (51, true)", v, ok)
	}
	vp, okp := Find(FromParallel(items, 8), func(x int) bool { return x > 50 })
	if !okp || vp != 51 {
		t.Errorf("Find(parallel) = (%d, %v), want (51, true) — earliest by index, not wall-clock", vp, okp)
	}

	idx, ok := FindIndex(From(items), func(x int) bool { return x == 51 })
	if !ok || idx != 50 {
		t.Errorf("FindIndex = (%d, %v), want (50, true)", idx, ok)
	}
}

func TestMinMax(t *testing.T) {
	items := []int{5, 3, 9, 1, 7}
	less := func(a, b int) bool { return a < b }
	min, ok := Min(From(items), less)
	if !ok || min != 1 {
		t.Errorf("Min = (%d, %v), want (1, true)", min, ok)
	}
	max, ok := Max(From(items), less)
	if !ok || max != 9 {
		t.Errorf("Max = (%d, %v), want (9, true)", max, ok)
	}
	_, ok = Min(From([]int{}), less)
	if ok {
		t.Errorf("Min of empty chain should report false")
	}
}

func TestAsSequentialAsParallelTransitions(t *testing.T) {
	c := FromParallel(ints(20), 4)
	if !c.IsParallel() {
		t.Fatalf("expected parallel chain")
	}
	s := c.AsSequential()
	if s.IsParallel() {
		t.Errorf("AsSequential should clear parallel mode")
	}
	p := s.AsParallel(2)
	if !p.IsParallel() {
		t.Errorf("AsParallel should set parallel mode")
	}
}
