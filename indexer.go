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

// chunkWidth is the structural-scan chunk size, modeled after the
// teacher's 64-byte stage-1 iteration (find_structural_indices in
// stage1_find_marks.go).
const chunkWidth = 64

// quoteState carries backslash-run parity and in-string state across
// chunk boundaries (spec §4.6, §9 "Quote-state bitmap for SIMD
// classification").
type quoteState struct {
	oddBackslashCarry bool
	insideQuoteCarry  bool
}

// buildInsideStringMask scans buf in chunkWidth-byte chunks and returns a
// same-length bool slice where inside[i] is true iff buf[i] lies strictly
// between an opening and closing quote (the quotes themselves are never
// marked inside, since they are structural characters in their own
// right). The backslash-parity carry is threaded across chunks exactly as
// spec §9 requires.
func buildInsideStringMask(buf []byte) []bool {
	inside := make([]bool, len(buf))
	var st quoteState
	for start := 0; start < len(buf); start += chunkWidth {
		end := start + chunkWidth
		if end > len(buf) {
			end = len(buf)
		}
		processChunk(buf[start:end], inside[start:end], &st)
	}
	return inside
}

// processChunk handles one chunk, updating st in place.
func processChunk(chunk []byte, inside []bool, st *quoteState) {
	oddBackslash := st.oddBackslashCarry
	for i, c := range chunk {
		if c == '\\' {
			// Toggle backslash-run parity; a backslash is always
			// "inside" in the sense that it can never itself be a bare
			// structural/quote terminator.
			if st.insideQuoteCarry {
				inside[i] = true
			}
			oddBackslash = !oddBackslash
			continue
		}
		if c == '"' && !oddBackslash {
			// An unescaped quote: flips in/out of string state. The
			// quote byte itself is structural, never "inside".
			inside[i] = false
			st.insideQuoteCarry = !st.insideQuoteCarry
			oddBackslash = false
			continue
		}
		inside[i] = st.insideQuoteCarry
		oddBackslash = false
	}
	st.oddBackslashCarry = oddBackslash
}

// BuildStructuralIndex runs Phase 1 (C6): it scans input once and returns
// the ordered sequence of structural-character positions, after verifying
// that brackets and braces balance overall (a cheap precheck before Phase
// 2, spec §4.6).
func BuildStructuralIndex(input []byte) ([]StructPos, error) {
	inside := buildInsideStringMask(input)
	var out []StructPos
	for start := 0; start < len(input); start += chunkWidth {
		length := chunkWidth
		if start+length > len(input) {
			length = len(input) - start
		}
		out = ClassifyStructural(input, start, length, inside[start:], out)
	}
	if err := checkBalance(input, out); err != nil {
		return nil, err
	}
	return out, nil
}

// checkBalance is the cheap bracket/brace balance precheck of spec §4.6:
// it does not validate full grammar (that's Phase 2's job), only that
// every opener has a matching closer of the same kind, in order.
func checkBalance(input []byte, idx []StructPos) error {
	var stack []byte
	for _, p := range idx {
		switch p.Kind {
		case '{', '[':
			stack = append(stack, p.Kind)
		case '}':
			if len(stack) == 0 || stack[len(stack)-1] != '{' {
				return newParseError(ErrInvalidSyntax, p.Offset, input, "unbalanced '}'")
			}
			stack = stack[:len(stack)-1]
		case ']':
			if len(stack) == 0 || stack[len(stack)-1] != '[' {
				return newParseError(ErrInvalidSyntax, p.Offset, input, "unbalanced ']'")
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) != 0 {
		return newParseError(ErrUnexpectedEnd, len(input), input, "unbalanced brackets at end of input")
	}
	return nil
}
