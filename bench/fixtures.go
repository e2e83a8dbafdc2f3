// Package bench compares this module's parser against encoding/json and two
// popular third-party decoders on synthetic payloads shaped like the
// fixture families the upstream simdjson benchmark suite exercises (a flat
// numeric array, a deeply nested object tree, and a string-heavy record
// list). There is no bundled testdata/ corpus here, so fixtures are built
// in-process instead of loaded from disk.
package bench

import (
	"bytes"
	"fmt"
)

// buildNumbers returns a JSON array of n floating point numbers, modeling
// the upstream "numbers" / "canada" fixture family (coordinate lists).
func buildNumbers(n int) []byte {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "%.6f", float64(i)*1.0000001)
	}
	buf.WriteByte(']')
	return buf.Bytes()
}

// buildRecords returns a JSON array of n small objects mixing strings,
// numbers and booleans, modeling the upstream "twitter" / "github_events"
// fixture family (record-shaped API payloads).
func buildRecords(n int) []byte {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, `{"id":%d,"name":"user-%d","active":%t,"tags":["a","b","c"]}`,
			i, i, i%2 == 0)
	}
	buf.WriteByte(']')
	return buf.Bytes()
}

// buildNested returns a JSON document nested depth levels deep, modeling the
// upstream "mesh" / "marine_ik" fixture family (deep homogeneous trees).
func buildNested(depth int) []byte {
	var buf bytes.Buffer
	for i := 0; i < depth; i++ {
		buf.WriteString(`{"child":`)
	}
	buf.WriteString(`{"leaf":true,"value":42}`)
	for i := 0; i < depth; i++ {
		buf.WriteByte('}')
	}
	return buf.Bytes()
}
