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

// Package query implements a lazy operator chain over a logical sequence
// of values (fluent API a C++ reader would recognize as LINQ-style),
// sharing the value model and execution strategy of the parser package
// it sits alongside. Stateless-per-element nodes (Filter/Transform) fuse
// into a single pass over root index ranges and can fan out across
// workers; stateful and collection-wide nodes (Take, Skip, Scan, Sort,
// Distinct, GroupBy, Zip) are eager boundaries that materialize their
// input before re-wrapping it as a fresh lazy chain.
package query

// runRange walks root indices [lo, hi) of the underlying source, calling
// yield for each value the chain produces from that range, in order. It
// stops early if yield returns false. Every stage composes a new runRange
// around its predecessor's, so the whole pipeline fuses into one pass
// with no intermediate allocation for stateless stages.
type runRange[T any] func(lo, hi int, yield func(T) bool)

// Chain is a lazy operator chain over a sequence of T (spec C10). Every
// non-terminal method or package-level function returns a new Chain; no
// element is visited until a terminal is evaluated.
type Chain[T any] struct {
	total    int
	run      runRange[T]
	parallel bool
	workers  int
}

// From builds a sequential chain over items. The slice is retained, not
// copied; later stages read it in order.
func From[T any](items []T) *Chain[T] {
	return &Chain[T]{
		total: len(items),
		run: func(lo, hi int, yield func(T) bool) {
			for i := lo; i < hi; i++ {
				if !yield(items[i]) {
					return
				}
			}
		},
	}
}

// FromParallel builds a chain whose stateless stages and short-circuit
// terminals (Any/All/Find) fan out across workers goroutines (GOMAXPROCS
// if workers <= 0), partitioned into contiguous root-index spans the way
// the parser's C8 driver partitions a top-level array.
func FromParallel[T any](items []T, workers int) *Chain[T] {
	c := From(items)
	c.parallel = true
	c.workers = workers
	return c
}

// AsSequential returns an equivalent chain that evaluates entirely on the
// calling goroutine.
func (c *Chain[T]) AsSequential() *Chain[T] {
	return &Chain[T]{total: c.total, run: c.run}
}

// AsParallel returns an equivalent chain whose stateless stages and
// short-circuit terminals fan out across workers goroutines.
func (c *Chain[T]) AsParallel(workers int) *Chain[T] {
	return &Chain[T]{total: c.total, run: c.run, parallel: true, workers: workers}
}

// Run walks the full chain sequentially on the calling goroutine, calling
// yield for each produced value in order; it stops early if yield returns
// false. Run ignores the chain's parallel flag — it is the building block
// Fold, Min, Max and FindIndex use internally. The eager boundaries (Take,
// Sort, ...) go through ToSlice instead, which honors the parallel flag.
func (c *Chain[T]) Run(yield func(T) bool) {
	c.run(0, c.total, yield)
}

// ToSlice materializes the chain, honoring its parallel/sequential mode.
// This is the terminal "to-sequence" operator (spec §4.10).
func (c *Chain[T]) ToSlice() []T {
	if c.parallel {
		return materializeParallel(c)
	}
	out := make([]T, 0, c.total)
	c.Run(func(v T) bool {
		out = append(out, v)
		return true
	})
	return out
}

// Filter returns a chain yielding only the elements for which pred holds.
// Stateless-per-element (spec §4.10): fused into the existing pass, never
// buffered.
func (c *Chain[T]) Filter(pred func(T) bool) *Chain[T] {
	prev := c.run
	return &Chain[T]{
		total: c.total,
		run: func(lo, hi int, yield func(T) bool) {
			prev(lo, hi, func(v T) bool {
				if pred(v) {
					return yield(v)
				}
				return true
			})
		},
		parallel: c.parallel,
		workers:  c.workers,
	}
}

// Where is a fluent alias for Filter.
func (c *Chain[T]) Where(pred func(T) bool) *Chain[T] { return c.Filter(pred) }

// eager materializes the chain (respecting its current mode) and rewraps
// the result as a fresh sequential-source chain carrying the same mode
// forward, so a stateful/collection-wide stage can still be followed by
// further lazy, parallelizable stages.
func (c *Chain[T]) eager(items []T) *Chain[T] {
	nc := From(items)
	nc.parallel = c.parallel
	nc.workers = c.workers
	return nc
}

// Take returns a chain yielding at most n leading elements. Order-
// preserving stateful (spec §4.10): an eager boundary.
func (c *Chain[T]) Take(n int) *Chain[T] {
	items := c.ToSlice()
	if n < 0 {
		n = 0
	}
	if n < len(items) {
		items = items[:n]
	}
	return c.eager(items)
}

// TakeWhile returns a chain yielding elements up to (not including) the
// first one for which pred fails.
func (c *Chain[T]) TakeWhile(pred func(T) bool) *Chain[T] {
	items := c.ToSlice()
	end := len(items)
	for i, v := range items {
		if !pred(v) {
			end = i
			break
		}
	}
	return c.eager(items[:end])
}

// Skip returns a chain that drops the first n elements.
func (c *Chain[T]) Skip(n int) *Chain[T] {
	items := c.ToSlice()
	if n < 0 {
		n = 0
	}
	if n > len(items) {
		n = len(items)
	}
	return c.eager(items[n:])
}

// Sort returns a chain over a stably-sorted copy of the elements, using
// less as the order relation. Stable in both sequential and parallel mode
// (spec §4.10: "Sort in parallel mode is still stable").
func (c *Chain[T]) Sort(less func(a, b T) bool) *Chain[T] {
	items := c.ToSlice()
	sortStable(items, less)
	return c.eager(items)
}

// OrderBy is a fluent alias for Sort.
func (c *Chain[T]) OrderBy(less func(a, b T) bool) *Chain[T] { return c.Sort(less) }

// Len reports how many root elements feed the chain (before any Filter
// narrows what is actually yielded).
func (c *Chain[T]) Len() int { return c.total }

// IsParallel reports whether the chain currently evaluates in parallel
// mode.
func (c *Chain[T]) IsParallel() bool { return c.parallel }
