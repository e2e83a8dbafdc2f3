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

import "sync"

// Transform maps every element of c through fn, returning a chain of the
// mapped type. Stateless-per-element (spec §4.10): fuses into the
// existing pass, same as Filter. A free function, not a method, because
// Go forbids a method from introducing a type parameter the receiver
// doesn't already carry.
func Transform[T, U any](c *Chain[T], fn func(T) U) *Chain[U] {
	prev := c.run
	return &Chain[U]{
		total: c.total,
		run: func(lo, hi int, yield func(U) bool) {
			prev(lo, hi, func(v T) bool {
				return yield(fn(v))
			})
		},
		parallel: c.parallel,
		workers:  c.workers,
	}
}

// Select is a fluent alias for Transform.
func Select[T, U any](c *Chain[T], fn func(T) U) *Chain[U] { return Transform(c, fn) }

// Pair is the element type Zip produces.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Zip pairs a's and b's elements positionally, terminating at the
// shorter of the two (spec §4.10).
func Zip[A, B any](a *Chain[A], b *Chain[B]) *Chain[Pair[A, B]] {
	as := a.ToSlice()
	bs := b.ToSlice()
	n := len(as)
	if len(bs) < n {
		n = len(bs)
	}
	out := make([]Pair[A, B], n)
	for i := 0; i < n; i++ {
		out[i] = Pair[A, B]{First: as[i], Second: bs[i]}
	}
	zc := From(out)
	zc.parallel = a.parallel || b.parallel
	if a.workers > b.workers {
		zc.workers = a.workers
	} else {
		zc.workers = b.workers
	}
	return zc
}

// Fold reduces the chain to a single accumulator of type A via seed and
// combine, always evaluated as a single sequential pass: a general fold
// combine function has no identity element to merge per-shard partials
// with, so fanning it out across workers cannot be done without risking
// silently wrong results for non-associative or non-commutative combine
// functions. Terminal (spec §4.10).
func Fold[T, A any](c *Chain[T], seed A, combine func(acc A, x T) A) A {
	acc := seed
	c.Run(func(v T) bool {
		acc = combine(acc, v)
		return true
	})
	return acc
}

// Aggregate is a fluent alias for Fold.
func Aggregate[T, A any](c *Chain[T], seed A, combine func(acc A, x T) A) A {
	return Fold(c, seed, combine)
}

// ReduceParallel reduces the chain to a single T via an associative
// combine with the given identity element, fanning out across workers in
// parallel mode (spec §4.10: "fans out... fold operations across
// workers"): each shard reduces from identity independently, and the
// per-shard partials are combined together in span order. Correct only
// when combine is associative and identity is a true identity for it;
// the caller must guarantee this the same way parallel mode's data-race
// contract is the caller's to keep.
func ReduceParallel[T any](c *Chain[T], identity T, combine func(a, b T) T) T {
	if !c.parallel {
		return Fold(c, identity, combine)
	}
	n := resolveWorkers(c.workers, c.total)
	if c.total == 0 {
		return identity
	}
	spans := splitSpans(c.total, n)
	partials := make([]T, len(spans))

	var wg sync.WaitGroup
	for i, sp := range spans {
		wg.Add(1)
		go func(i int, lo, hi int) {
			defer wg.Done()
			acc := identity
			c.run(lo, hi, func(v T) bool {
				acc = combine(acc, v)
				return true
			})
			partials[i] = acc
		}(i, sp[0], sp[1])
	}
	wg.Wait()

	result := identity
	for _, p := range partials {
		result = combine(result, p)
	}
	return result
}

// Number constrains Sum to the built-in arithmetic types.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Sum adds every element, fanning out across workers in parallel mode
// (addition is associative and commutative, so ReduceParallel applies
// directly).
func Sum[T Number](c *Chain[T]) T {
	var zero T
	return ReduceParallel(c, zero, func(a, b T) T { return a + b })
}

// Min returns the smallest element by less, plus false if the chain is
// empty.
func Min[T any](c *Chain[T], less func(a, b T) bool) (T, bool) {
	var best T
	found := false
	c.Run(func(v T) bool {
		if !found || less(v, best) {
			best, found = v, true
		}
		return true
	})
	return best, found
}

// Max returns the largest element by less, plus false if the chain is
// empty.
func Max[T any](c *Chain[T], less func(a, b T) bool) (T, bool) {
	var best T
	found := false
	c.Run(func(v T) bool {
		if !found || less(best, v) {
			best, found = v, true
		}
		return true
	})
	return best, found
}
