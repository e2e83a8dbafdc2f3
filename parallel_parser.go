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

package simdjson

import (
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/oldboldpilot/fastjson/numa"
)

// driverState names the states of the parallel driver's state machine,
// spec §4.8/§5: Idle -> Scanning -> Partitioning -> Parallel-parse ->
// Stitching -> Done | Error.
type driverState int

const (
	stateIdle driverState = iota
	stateScanning
	statePartitioning
	stateParallelParse
	stateStitching
	stateDone
	stateError
)

// parseParallel implements C8. ParseWith calls it whenever len(input) is at
// least cfg.ParallelThreshold; it checks for itself that the top-level
// value is a JSON array. Any failure of that precondition (or trailing
// data after the array) falls back to the sequential parser.
func parseParallel(input []byte, cfg Config) (*Value, error) {
	state := stateIdle
	_ = state

	if hasBOM(input) {
		return nil, newParseError(ErrInvalidSyntax, 0, input, "leading byte-order mark is not accepted")
	}
	start := SkipWhitespace(input, 0)
	if start >= len(input) {
		return nil, newParseError(ErrEmptyInput, 0, input, "empty input")
	}

	state = stateScanning
	idx, err := BuildStructuralIndex(input)
	if err != nil {
		return nil, err
	}
	if len(idx) == 0 || idx[0].Offset != start || idx[0].Kind != '[' {
		// Not a top-level array: spec §4.8, "fall back to C7".
		return parseSequential(input, cfg)
	}

	state = statePartitioning
	outerOpen, outerClose, seps, err := topLevelArraySeparators(idx)
	if err != nil {
		return parseSequential(input, cfg)
	}

	trailing := SkipWhitespace(input, outerClose+1)
	if trailing != len(input) {
		// Extra tokens after the array; let the sequential parser
		// produce the precise error (and position) for this case.
		return parseSequential(input, cfg)
	}

	if SkipWhitespace(input, outerOpen+1) == outerClose {
		// No value between '[' and ']': a genuinely empty array, not a
		// single (empty) element span.
		return &Value{typ: TypeArray}, nil
	}
	numElements := len(seps) + 1

	workerCount := cfg.WorkerCount
	if workerCount <= 0 {
		workerCount = runtime.GOMAXPROCS(0)
	}
	if workerCount > numElements {
		workerCount = numElements
	}
	if workerCount < 1 {
		workerCount = 1
	}

	binder := numa.Binder(numa.Mode(cfg.NumaBinding))

	counts := splitCounts(numElements, workerCount)
	type span struct{ elemStart, elemEnd int }
	spans := make([]span, len(counts))
	{
		cursor := 0
		for i, c := range counts {
			spans[i] = span{elemStart: cursor, elemEnd: cursor + c}
			cursor += c
		}
	}

	state = stateParallelParse
	results := make([][]*Value, len(spans))
	errs := make([]*ParseError, len(spans))
	var cancelled atomic.Bool
	var wg sync.WaitGroup
	for wIdx, sp := range spans {
		wg.Add(1)
		go func(wIdx int, sp span) {
			defer wg.Done()
			binder.BindWorker(wIdx)

			spanStart := outerOpen + 1
			if sp.elemStart > 0 {
				spanStart = seps[sp.elemStart-1].Offset + 1
			}
			spanEnd := outerClose
			if sp.elemEnd < numElements {
				spanEnd = seps[sp.elemEnd-1].Offset
			}

			lo := sort.Search(len(idx), func(i int) bool { return idx[i].Offset >= spanStart })
			hi := sort.Search(len(idx), func(i int) bool { return idx[i].Offset >= spanEnd })

			wp := &parser{
				input:  input,
				idx:    idx[lo:hi],
				cfg:    cfg,
				depth:  1,
				cancel: &cancelled,
			}
			items, err := wp.parseSequenceUntil(spanStart, spanEnd)
			if err != nil {
				if pe, ok := err.(*ParseError); ok {
					errs[wIdx] = pe
				} else {
					errs[wIdx] = newParseError(ErrInvalidSyntax, spanStart, input, "%v", err)
				}
				cancelled.Store(true)
				return
			}
			results[wIdx] = items
		}(wIdx, sp)
	}
	wg.Wait()

	if first := firstErrorByOffset(errs); first != nil {
		state = stateError
		return nil, first
	}

	state = stateStitching
	all := make([]*Value, 0, numElements)
	for _, r := range results {
		all = append(all, r...)
	}
	state = stateDone
	return &Value{typ: TypeArray, arr: all}, nil
}

// topLevelArraySeparators walks idx (which must begin with the outer
// array's '[') tracking nesting depth, returning the outer array's open
// and close byte offsets and every depth-1 comma (spec §4.8 step 2,
// GLOSSARY "depth-1 comma").
func topLevelArraySeparators(idx []StructPos) (openOffset, closeOffset int, seps []StructPos, err error) {
	if len(idx) == 0 || idx[0].Kind != '[' {
		return 0, 0, nil, Sentinel(ErrInvalidSyntax)
	}
	depth := 0
	for _, e := range idx {
		switch e.Kind {
		case '[', '{':
			depth++
		case ']', '}':
			depth--
			if depth == 0 {
				return idx[0].Offset, e.Offset, seps, nil
			}
		case ',':
			if depth == 1 {
				seps = append(seps, e)
			}
		}
	}
	return 0, 0, nil, Sentinel(ErrUnexpectedEnd)
}

// splitCounts divides total items into n contiguous, as-even-as-possible
// group sizes. Spec §4.8 step 3 "partition into worker_count groups of
// adjacent element-spans".
func splitCounts(total, n int) []int {
	if n <= 0 {
		n = 1
	}
	if n > total {
		n = total
	}
	if n == 0 {
		return nil
	}
	base := total / n
	rem := total % n
	counts := make([]int, n)
	for i := range counts {
		counts[i] = base
		if i < rem {
			counts[i]++
		}
	}
	return counts
}

// firstErrorByOffset implements the aggregation policy of spec §7: "the
// parallel driver aggregates worker errors and reports the one with the
// lowest byte offset."
func firstErrorByOffset(errs []*ParseError) *ParseError {
	var best *ParseError
	for _, e := range errs {
		if e == nil {
			continue
		}
		if best == nil || e.ByteOffset < best.ByteOffset {
			best = e
		}
	}
	return best
}

// parseSequenceUntil parses zero or more comma-separated values starting
// at pos, stopping once the cursor reaches end. It is the body of a
// parallel worker's span (no surrounding brackets); parseArray and
// parseObject run their own loops for the bracketed cases. Cooperative cancellation
// (spec §5) is observed between elements: a worker may complete one
// in-flight element after cancellation is requested before stopping.
func (p *parser) parseSequenceUntil(pos, end int) ([]*Value, error) {
	var items []*Value
	for {
		if p.cancel != nil && p.cancel.Load() {
			return items, nil
		}
		val, newPos, err := p.parseValue(pos)
		if err != nil {
			return nil, err
		}
		items = append(items, val)
		pos = SkipWhitespace(p.input, newPos)
		if pos >= end {
			break
		}
		if p.input[pos] != ',' {
			return nil, newParseError(ErrInvalidSyntax, pos, p.input, "expected ',' between array elements")
		}
		if err := p.consumeStruct(pos, ','); err != nil {
			return nil, err
		}
		pos = SkipWhitespace(p.input, pos+1)
	}
	return items, nil
}
