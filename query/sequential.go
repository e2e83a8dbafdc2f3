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

import "sort"

// sortStable is the single sort implementation every Sort/OrderBy call
// goes through, sequential or parallel (spec §4.10: stability is not
// optional in either mode).
func sortStable[T any](items []T, less func(a, b T) bool) {
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
}

// Scan returns a chain of n running-fold outputs for n inputs (inclusive
// scan, spec §4.10): output[i] = combine(combine(...combine(input[0]))),
// i.e. the first output is input[0] itself. An eager boundary: the whole
// input must be known to thread the accumulator.
func Scan[T any](c *Chain[T], combine func(acc, x T) T) *Chain[T] {
	items := c.ToSlice()
	out := make([]T, len(items))
	for i, v := range items {
		if i == 0 {
			out[i] = v
			continue
		}
		out[i] = combine(out[i-1], v)
	}
	return c.eager(out)
}

// ScanSeeded is Scan with an explicit seed: it produces n+1 outputs for n
// inputs, the first of which is seed itself (spec §4.10).
func ScanSeeded[T any](c *Chain[T], seed T, combine func(acc, x T) T) *Chain[T] {
	items := c.ToSlice()
	out := make([]T, 0, len(items)+1)
	acc := seed
	out = append(out, acc)
	for _, v := range items {
		acc = combine(acc, v)
		out = append(out, acc)
	}
	return c.eager(out)
}

// Distinct returns a chain retaining only the first element to produce
// each key, preserving the order of first occurrence. Collection-wide
// (spec §4.10): an eager boundary.
func Distinct[T any, K comparable](c *Chain[T], key func(T) K) *Chain[T] {
	items := c.ToSlice()
	seen := make(map[K]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, v := range items {
		k := key(v)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, v)
	}
	return c.eager(out)
}

// Group is one bucket produced by GroupBy: all elements sharing Key, in
// their original relative order.
type Group[K comparable, T any] struct {
	Key   K
	Items []T
}

// GroupBy partitions the chain's elements by key, preserving the order in
// which each distinct key was first seen and the relative order of items
// within a group. Collection-wide (spec §4.10): an eager boundary.
func GroupBy[T any, K comparable](c *Chain[T], key func(T) K) *Chain[Group[K, T]] {
	items := c.ToSlice()
	index := make(map[K]int, len(items))
	var groups []Group[K, T]
	for _, v := range items {
		k := key(v)
		if i, ok := index[k]; ok {
			groups[i].Items = append(groups[i].Items, v)
			continue
		}
		index[k] = len(groups)
		groups = append(groups, Group[K, T]{Key: k, Items: []T{v}})
	}
	out := From(groups)
	out.parallel = c.parallel
	out.workers = c.workers
	return out
}
