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
	"bytes"
	"strconv"
	"strings"
	"testing"
)

func TestParseBasicValues(t *testing.T) {
	cases := []struct {
		input string
		check func(t *testing.T, v *Value)
	}{
		{"null", func(t *testing.T, v *Value) {
			if !v.IsNull() {
				t.Errorf("expected null")
			}
		}},
		{"true", func(t *testing.T, v *Value) {
			if !v.IsBoolean() || !v.AsBool() {
				t.Errorf("expected true")
			}
		}},
		{`"hello"`, func(t *testing.T, v *Value) {
			if !v.IsString() || v.AsString() != "hello" {
				t.Errorf("got %q", v.AsString())
			}
		}},
		{"[1,2,3]", func(t *testing.T, v *Value) {
			if v.ArrayLen() != 3 {
				t.Errorf("len = %d", v.ArrayLen())
			}
		}},
		{`{"a":1,"b":2}`, func(t *testing.T, v *Value) {
			if v.ObjectLen() != 2 {
				t.Errorf("len = %d", v.ObjectLen())
			}
			a, ok := v.ObjectGet("a")
			if !ok || a.AsFloat64() != 1 {
				t.Errorf("a = %v, ok = %v", a, ok)
			}
		}},
	}
	for _, c := range cases {
		v, err := Parse([]byte(c.input))
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", c.input, err)
		}
		c.check(t, v)
	}
}

func TestParseEmptyInput(t *testing.T) {
	_, err := Parse([]byte("   "))
	if err == nil {
		t.Fatal("expected error for empty input")
	}
	pe := err.(*ParseError)
	if pe.Kind != ErrEmptyInput {
		t.Errorf("kind = %v, want ErrEmptyInput", pe.Kind)
	}
}

func TestParseExtraTokens(t *testing.T) {
	_, err := Parse([]byte("1 2"))
	if err == nil {
		t.Fatal("expected error")
	}
	pe := err.(*ParseError)
	if pe.Kind != ErrExtraTokens {
		t.Errorf("kind = %v, want ErrExtraTokens", pe.Kind)
	}
}

func TestParseMaxDepthExceeded(t *testing.T) {
	input := strings.Repeat("[", 10) + strings.Repeat("]", 10)
	_, err := ParseWith([]byte(input), DefaultConfig(), WithMaxDepth(5))
	if err == nil {
		t.Fatal("expected error")
	}
	pe := err.(*ParseError)
	if pe.Kind != ErrMaxDepthExceeded {
		t.Errorf("kind = %v, want ErrMaxDepthExceeded", pe.Kind)
	}
}

func TestParseDuplicateKeysLastWriteWins(t *testing.T) {
	v, err := Parse([]byte(`{"a":1,"a":2}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.ObjectLen() != 1 {
		t.Fatalf("expected duplicate key collapsed, got len %d", v.ObjectLen())
	}
	a, _ := v.ObjectGet("a")
	if a.AsFloat64() != 2 {
		t.Errorf("a = %v, want 2 (last write wins)", a.AsFloat64())
	}
}

func TestParseRejectsLeadingBOM(t *testing.T) {
	_, err := Parse(append([]byte{0xEF, 0xBB, 0xBF}, []byte("{}")...))
	if err == nil {
		t.Fatal("expected error for leading BOM")
	}
}

func TestRoundTripSerialize(t *testing.T) {
	inputs := []string{
		`{"a":[1,2.5,true,false,null,"x"],"b":{}}`,
		`[]`,
		`{}`,
		`[1,[2,[3,[4]]]]`,
	}
	for _, in := range inputs {
		v, err := Parse([]byte(in))
		if err != nil {
			t.Fatalf("%q: parse error: %v", in, err)
		}
		out := Serialize(v)
		v2, err := Parse(out)
		if err != nil {
			t.Fatalf("%q: re-parse of %q failed: %v", in, out, err)
		}
		out2 := Serialize(v2)
		if !bytes.Equal(out, out2) {
			t.Errorf("%q: serialize not idempotent: %q vs %q", in, out, out2)
		}
	}
}

func TestSerializePrettyIndents(t *testing.T) {
	v, err := Parse([]byte(`{"a":[1,2]}`))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	out := string(SerializePretty(v, "  "))
	if !strings.Contains(out, "\n  \"a\"") {
		t.Errorf("expected indented key, got %q", out)
	}
}

func TestSerializeNaNAsNull(t *testing.T) {
	v := NaNValue()
	out := string(Serialize(v))
	if out != "null" {
		t.Errorf("NaN serialized as %q, want \"null\"", out)
	}
}

func TestParallelThresholdZeroAlwaysEngagesParallelPath(t *testing.T) {
	// parallel_threshold = 0 means "every input qualifies" (spec §3, §8
	// scenario 2), not "parallel disabled". WithParallelThreshold(1<<30)
	// should never take the parallel driver; WithParallelThreshold(0)
	// always should, even for a tiny input.
	input := []byte(`[1,2,3,4,5]`)
	cfg := DefaultConfig().apply([]ParserOption{WithParallelThreshold(0)})
	if cfg.ParallelThreshold != 0 || len(input) < cfg.ParallelThreshold {
		t.Fatalf("expected parallel gate to admit len(input)=%d at threshold 0", len(input))
	}

	// Call the parallel driver directly so the test is not itself at the
	// mercy of the gate in ParseWith.
	v, err := parseParallel(input, cfg)
	if err != nil {
		t.Fatalf("parseParallel error: %v", err)
	}
	if v.ArrayLen() != 5 {
		t.Fatalf("ArrayLen() = %d, want 5", v.ArrayLen())
	}

	seqVal, err := ParseWith(input, DefaultConfig(), WithParallelThreshold(1<<30))
	if err != nil {
		t.Fatalf("sequential parse error: %v", err)
	}
	if !bytes.Equal(Serialize(seqVal), Serialize(v)) {
		t.Errorf("sequential and parallel parse trees differ")
	}
}

func TestParallelParserMatchesSequential(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i := 0; i < 5000; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(`{"i":`)
		buf.WriteString(strconv.Itoa(i))
		buf.WriteString(`,"s":"value"}`)
	}
	buf.WriteByte(']')
	input := buf.Bytes()

	seqVal, err := ParseWith(input, DefaultConfig(), WithParallelThreshold(1<<30))
	if err != nil {
		t.Fatalf("sequential parse error: %v", err)
	}
	// parseParallel is invoked directly (rather than solely through
	// ParseWith's threshold gate) so this test pins the parallel driver
	// itself, independent of the gate's own correctness.
	parVal, err := parseParallel(input, DefaultConfig().apply([]ParserOption{WithWorkerCount(8)}))
	if err != nil {
		t.Fatalf("parallel parse error: %v", err)
	}

	if seqVal.ArrayLen() != parVal.ArrayLen() {
		t.Fatalf("length mismatch: seq %d, par %d", seqVal.ArrayLen(), parVal.ArrayLen())
	}
	if !bytes.Equal(Serialize(seqVal), Serialize(parVal)) {
		t.Errorf("sequential and parallel parse trees differ")
	}

	// Also confirm ParseWith's own gate takes the parallel path at
	// threshold 0 for this input, matching the same result.
	viaGate, err := ParseWith(input, DefaultConfig(), WithParallelThreshold(0), WithWorkerCount(8))
	if err != nil {
		t.Fatalf("ParseWith parallel parse error: %v", err)
	}
	if !bytes.Equal(Serialize(parVal), Serialize(viaGate)) {
		t.Errorf("ParseWith(threshold=0) did not match direct parseParallel result")
	}
}

func TestParallelParserErrorReportsEarliestOffset(t *testing.T) {
	// Second element is malformed; the parallel driver must surface this
	// error even though later workers might finish first.
	input := []byte(`[{"a":1},{"b":},{"c":3}]`)
	_, err := parseParallel(input, DefaultConfig().apply([]ParserOption{WithWorkerCount(4)}))
	if err == nil {
		t.Fatal("expected error")
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("error type = %T, want *ParseError", err)
	}
	if want := bytes.Index(input, []byte(":}")) + 1; pe.ByteOffset != want {
		t.Errorf("ByteOffset = %d, want %d (the '}' of the malformed second element)", pe.ByteOffset, want)
	}
}

func TestParallelParserEmptyArray(t *testing.T) {
	// A genuinely empty array has zero depth-1 commas, not one element
	// spanning an empty byte range (spec §4.8, invariant 3: parallel and
	// sequential must agree on every input, including "[]").
	v, err := parseParallel([]byte(`[]`), DefaultConfig())
	if err != nil {
		t.Fatalf("parseParallel([]) error: %v", err)
	}
	if !v.IsArray() || v.ArrayLen() != 0 {
		t.Fatalf("parseParallel([]) = %+v, want empty array", v)
	}

	// Also reachable through ParseWith at a threshold low enough to
	// engage the parallel driver for this tiny input.
	v2, err := ParseWith([]byte(`[]`), DefaultConfig(), WithParallelThreshold(1))
	if err != nil {
		t.Fatalf("ParseWith([]) error: %v", err)
	}
	if !v2.IsArray() || v2.ArrayLen() != 0 {
		t.Fatalf("ParseWith([]) = %+v, want empty array", v2)
	}

	// An array containing only whitespace between the brackets is the
	// same case with padding.
	v3, err := parseParallel([]byte(`[   ]`), DefaultConfig())
	if err != nil {
		t.Fatalf("parseParallel([   ]) error: %v", err)
	}
	if !v3.IsArray() || v3.ArrayLen() != 0 {
		t.Fatalf("parseParallel([   ]) = %+v, want empty array", v3)
	}
}
