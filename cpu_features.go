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
	"sync"

	"github.com/klauspost/cpuid/v2"
	"golang.org/x/sys/cpu"
)

// LaneWidth is the widest SIMD register width a primitive implementation
// may assume is available.
type LaneWidth int

const (
	Lane64  LaneWidth = 64 // scalar fallback, always available
	Lane128 LaneWidth = 128
	Lane256 LaneWidth = 256
	Lane512 LaneWidth = 512
)

// Capabilities is the immutable result of the one-time CPU feature probe
// (C1). It is safe for concurrent use by any number of goroutines because
// it is never mutated after Detect runs.
type Capabilities struct {
	Best LaneWidth

	HasSSE2    bool
	HasAVX2    bool
	HasAVX512  bool // AVX-512BW-equivalent byte-comparison instructions
	HasNEON    bool
	HasFMA     bool
	HasCLMUL   bool // carryless multiply; reported only, the indexer's quote-mask carry does not use it
}

var (
	probeOnce sync.Once
	features  Capabilities
)

// Features returns the process-wide capability set, running the detection
// exactly once. Detection failure (an unrecognized or exotic CPU) degrades
// to the scalar fallback rather than aborting, per spec §4.1.
func Features() Capabilities {
	probeOnce.Do(detectFeatures)
	return features
}

func detectFeatures() {
	defer func() {
		// A panicking feature probe (e.g. on an unusual emulator) must
		// never take the process down with it.
		if recover() != nil {
			features = Capabilities{Best: Lane64}
		}
	}()

	c := Capabilities{Best: Lane64}

	c.HasSSE2 = cpuid.CPU.Supports(cpuid.SSE2)
	c.HasAVX2 = cpuid.CPU.Supports(cpuid.AVX2)
	c.HasAVX512 = cpuid.CPU.Supports(cpuid.AVX512BW)
	c.HasFMA = cpuid.CPU.Supports(cpuid.FMA3)
	c.HasCLMUL = cpuid.CPU.Supports(cpuid.CLMUL)

	// x/sys/cpu covers ARM platforms that klauspost/cpuid does not probe
	// as precisely; used here purely as a secondary source for NEON.
	c.HasNEON = cpu.ARM64.HasASIMD || cpu.ARM.HasNEON

	switch {
	case c.HasAVX512:
		c.Best = Lane512
	case c.HasAVX2:
		c.Best = Lane256
	case c.HasSSE2, c.HasNEON:
		c.Best = Lane128
	default:
		c.Best = Lane64
	}

	features = c
}

// SupportedCPU reports whether the host CPU supports any accelerated lane
// width at all. Unlike the teacher (which hard-fails parsing on an
// unsupported CPU), this module always has a scalar fallback, so
// SupportedCPU is informational only.
func SupportedCPU() bool {
	f := Features()
	return f.Best > Lane64
}

// resetFeaturesForTest clears the memoized probe result; test-only helper.
func resetFeaturesForTest() {
	probeOnce = sync.Once{}
	features = Capabilities{}
}
