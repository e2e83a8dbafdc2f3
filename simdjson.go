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

// Package simdjson is a high-throughput JSON codec: it parses bytes into
// an in-memory Value tree (C5), serializes a Value tree back to bytes
// (C9), and is the foundation for the query package's lazy pipelines
// (C10). The core is a two-phase parser — structural indexing (C6) then
// sequential (C7) or parallel (C8) materialization — built on
// SIMD-width-generic primitives (C2) selected by a one-time CPU feature
// probe (C1).
package simdjson

// Parse parses b using DefaultConfig. Spec §6.
func Parse(b []byte) (*Value, error) {
	return ParseWith(b, DefaultConfig())
}

// ParseWith parses b using an explicit configuration, built from
// DefaultConfig and any ParserOptions. Spec §6.
//
// When len(b) >= cfg.ParallelThreshold and the top-level value is a JSON
// array, the parallel parser (C8) is engaged; otherwise the sequential
// parser (C7) runs directly. Per spec §8 property 3, both paths either
// agree structurally or fail with the same ErrorKind.
func ParseWith(b []byte, cfg Config, opts ...ParserOption) (*Value, error) {
	cfg = cfg.apply(opts)
	if cfg.SIMDEnabled {
		_ = Features() // warm the one-time probe; primitives consult it directly
	}
	if len(b) >= cfg.ParallelThreshold {
		return parseParallel(b, cfg)
	}
	return parseSequential(b, cfg)
}
