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
	"runtime"
	"sync"
	"sync/atomic"
)

// resolveWorkers picks the effective worker count for a chain: its own
// setting if positive, else GOMAXPROCS, clipped to [1, total].
func resolveWorkers(requested, total int) int {
	n := requested
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	if n > total {
		n = total
	}
	if n < 1 {
		n = 1
	}
	return n
}

// splitSpans divides [0, total) into n contiguous, as-even-as-possible
// root-index ranges — the same adjacent-span partitioning the parser's
// C8 driver uses for a top-level array.
func splitSpans(total, n int) [][2]int {
	if n <= 0 {
		n = 1
	}
	base := total / n
	rem := total % n
	spans := make([][2]int, n)
	cursor := 0
	for i := 0; i < n; i++ {
		size := base
		if i < rem {
			size++
		}
		spans[i] = [2]int{cursor, cursor + size}
		cursor += size
	}
	return spans
}

// materializeParallel evaluates c's stateless stages across resolveWorkers
// goroutines, one per contiguous root-index span, then concatenates the
// per-span outputs in span order to preserve the overall sequence order.
func materializeParallel[T any](c *Chain[T]) []T {
	if c.total == 0 {
		return nil
	}
	n := resolveWorkers(c.workers, c.total)
	spans := splitSpans(c.total, n)
	partials := make([][]T, n)

	var wg sync.WaitGroup
	for i, sp := range spans {
		wg.Add(1)
		go func(i int, lo, hi int) {
			defer wg.Done()
			var out []T
			c.run(lo, hi, func(v T) bool {
				out = append(out, v)
				return true
			})
			partials[i] = out
		}(i, sp[0], sp[1])
	}
	wg.Wait()

	total := 0
	for _, p := range partials {
		total += len(p)
	}
	result := make([]T, 0, total)
	for _, p := range partials {
		result = append(result, p...)
	}
	return result
}

// Any reports whether pred holds for at least one element, short-
// circuiting across workers in parallel mode: once any shard finds a
// match, shards to its right stop scanning (spec §4.10: "a worker finding
// a match signals others to stop"). A shard already past its last
// cancellation check may still finish its current element.
func Any[T any](c *Chain[T], pred func(T) bool) bool {
	if !c.parallel {
		found := false
		c.Run(func(v T) bool {
			if pred(v) {
				found = true
				return false
			}
			return true
		})
		return found
	}
	idx, _ := shardSearch(c, pred)
	return idx >= 0
}

// All reports whether pred holds for every element, short-circuiting in
// parallel mode the same way Any does, over the negated predicate.
func All[T any](c *Chain[T], pred func(T) bool) bool {
	return !Any(c, func(v T) bool { return !pred(v) })
}

// Find returns the first element satisfying pred, plus true if one
// exists. In parallel mode the result is the match with the smallest
// input index, not the first shard to finish (spec §4.10).
func Find[T any](c *Chain[T], pred func(T) bool) (T, bool) {
	var zero T
	if !c.parallel {
		var found T
		ok := false
		c.Run(func(v T) bool {
			if pred(v) {
				found, ok = v, true
				return false
			}
			return true
		})
		if !ok {
			return zero, false
		}
		return found, true
	}
	idx, result := shardSearch(c, pred)
	if idx < 0 {
		return zero, false
	}
	return result, true
}

// FindIndex returns the position (within the chain's produced sequence)
// of the first element satisfying pred, plus true if one exists. Always
// evaluated sequentially: the index is only well-defined relative to
// elements already yielded, which a shard cannot know on its own.
func FindIndex[T any](c *Chain[T], pred func(T) bool) (int, bool) {
	idx := -1
	i := 0
	c.Run(func(v T) bool {
		if pred(v) {
			idx = i
			return false
		}
		i++
		return true
	})
	if idx < 0 {
		return 0, false
	}
	return idx, true
}

// shardSearch partitions c into workers contiguous spans and returns the
// root index and value of the leftmost match, or (-1, zero) if none
// exists. A span stops scanning, at its next element boundary, once a
// match has been found in a span at or to its left (spec §4.10: "find
// returns the earliest by input index, not by wall-clock").
func shardSearch[T any](c *Chain[T], pred func(T) bool) (int, T) {
	var zero T
	if c.total == 0 {
		return -1, zero
	}
	n := resolveWorkers(c.workers, c.total)
	spans := splitSpans(c.total, n)

	var bestSpan atomic.Int64
	bestSpan.Store(int64(len(spans)))
	matchIdx := make([]int, len(spans))
	matchVal := make([]T, len(spans))
	for i := range matchIdx {
		matchIdx[i] = -1
	}

	var wg sync.WaitGroup
	for i, sp := range spans {
		wg.Add(1)
		go func(i int, lo, hi int) {
			defer wg.Done()
			cursor := lo
			c.run(lo, hi, func(v T) bool {
				if int64(i) > bestSpan.Load() {
					return false
				}
				if pred(v) {
					matchIdx[i] = cursor
					matchVal[i] = v
					for {
						cur := bestSpan.Load()
						if int64(i) >= cur || bestSpan.CompareAndSwap(cur, int64(i)) {
							break
						}
					}
					return false
				}
				cursor++
				return true
			})
		}(i, sp[0], sp[1])
	}
	wg.Wait()

	for i, idx := range matchIdx {
		if idx >= 0 {
			return idx, matchVal[i]
		}
	}
	return -1, zero
}
