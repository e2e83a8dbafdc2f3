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
	"fmt"

	"github.com/google/uuid"
)

// ErrorKind classifies a parse failure. The zero value is never returned
// from a failed parse.
type ErrorKind uint8

const (
	_ ErrorKind = iota
	ErrEmptyInput
	ErrExtraTokens
	ErrMaxDepthExceeded
	ErrUnexpectedEnd
	ErrInvalidSyntax
	ErrInvalidLiteral
	ErrInvalidNumber
	ErrInvalidString
	ErrInvalidEscape
	ErrInvalidUnicode
)

func (k ErrorKind) String() string {
	switch k {
	case ErrEmptyInput:
		return "empty_input"
	case ErrExtraTokens:
		return "extra_tokens"
	case ErrMaxDepthExceeded:
		return "max_depth_exceeded"
	case ErrUnexpectedEnd:
		return "unexpected_end"
	case ErrInvalidSyntax:
		return "invalid_syntax"
	case ErrInvalidLiteral:
		return "invalid_literal"
	case ErrInvalidNumber:
		return "invalid_number"
	case ErrInvalidString:
		return "invalid_string"
	case ErrInvalidEscape:
		return "invalid_escape"
	case ErrInvalidUnicode:
		return "invalid_unicode"
	default:
		return "unknown"
	}
}

// ParseError is the concrete error type returned by every failing parse
// call. It carries enough position information for a human-readable
// diagnostic, plus a random correlation ID that a caller driving many
// concurrent parses can record in its own logs.
type ParseError struct {
	Kind       ErrorKind
	Message    string
	ByteOffset int
	Line       int
	Column     int

	// CorrelationID is a fresh random UUID generated when this error is
	// created; the package records it nowhere else. It has no meaning
	// beyond log correlation.
	CorrelationID uuid.UUID
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at line %d, column %d (offset %d): %s",
		e.Kind, e.Line, e.Column, e.ByteOffset, e.Message)
}

// Is allows errors.Is(err, simdjson.Sentinel(simdjson.ErrInvalidNumber))
// style checks by comparing Kind against a sentinel *ParseError carrying
// only a Kind.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinel returns a *ParseError usable only with errors.Is, e.g.
//
//	if errors.Is(err, simdjson.Sentinel(simdjson.ErrInvalidUnicode)) { ... }
func Sentinel(kind ErrorKind) error {
	return &ParseError{Kind: kind}
}

func newParseError(kind ErrorKind, offset int, input []byte, format string, args ...interface{}) *ParseError {
	line, col := lineColumn(input, offset)
	return &ParseError{
		Kind:          kind,
		Message:       fmt.Sprintf(format, args...),
		ByteOffset:    offset,
		Line:          line,
		Column:        col,
		CorrelationID: uuid.New(),
	}
}

// lineColumn computes 1-based line and column for a byte offset within
// input. Column counts bytes since the last newline, not runes: good
// enough for a diagnostic, and cheap.
func lineColumn(input []byte, offset int) (line, col int) {
	if offset > len(input) {
		offset = len(input)
	}
	line = 1
	lastNL := -1
	for i := 0; i < offset; i++ {
		if input[i] == '\n' {
			line++
			lastNL = i
		}
	}
	col = offset - lastNL
	return line, col
}
