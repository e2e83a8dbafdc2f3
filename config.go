package simdjson

// NumaBinding selects how the parallel parser should place per-worker
// arenas relative to NUMA nodes. The parser only consumes the abstract
// capability; topology discovery itself is an external collaborator
// (see the numa package).
type NumaBinding uint8

const (
	NumaNone NumaBinding = iota
	NumaLocal
	NumaInterleaved
)

func (b NumaBinding) String() string {
	switch b {
	case NumaLocal:
		return "local"
	case NumaInterleaved:
		return "interleaved"
	default:
		return "none"
	}
}

// Config is the parse configuration enumerated in spec §3. The zero value
// is not valid; use DefaultConfig() as a base.
type Config struct {
	MaxDepth          int         `yaml:"max_depth"`
	MaxStringLength   int         `yaml:"max_string_length"`
	ParallelThreshold int         `yaml:"parallel_threshold"`
	WorkerCount       int         `yaml:"worker_count"`
	SIMDEnabled       bool        `yaml:"simd_enabled"`
	NumaBinding       NumaBinding `yaml:"numa_binding"`

	// CopyStrings controls whether string values are copied out of the
	// input buffer or reference it directly. Mirrors the teacher's
	// WithCopyStrings; default true, matching the teacher's documented
	// rationale (safety when the input buffer is reused or streamed).
	CopyStrings bool `yaml:"copy_strings"`
}

const (
	defaultMaxDepth          = 1000
	defaultMaxStringLength   = 1 << 28 // 256 MiB
	defaultParallelThreshold = 4 << 20 // 4 MiB, matches the teacher's rough order of magnitude for its own buffered stream chunk size
)

// DefaultConfig returns the configuration used by Parse.
func DefaultConfig() Config {
	return Config{
		MaxDepth:          defaultMaxDepth,
		MaxStringLength:   defaultMaxStringLength,
		ParallelThreshold: defaultParallelThreshold,
		WorkerCount:       0,
		SIMDEnabled:       true,
		NumaBinding:       NumaNone,
		CopyStrings:       true,
	}
}

// ParserOption mutates a Config in place. Named after, and interchangeable
// in spirit with, the teacher's ParserOption.
type ParserOption func(*Config)

// WithMaxDepth overrides the recursion depth limit.
func WithMaxDepth(n int) ParserOption {
	return func(c *Config) { c.MaxDepth = n }
}

// WithMaxStringLength bounds the length of any single string literal.
func WithMaxStringLength(n int) ParserOption {
	return func(c *Config) { c.MaxStringLength = n }
}

// WithParallelThreshold sets the minimum input size (bytes) required to
// engage the parallel parser (C8) for a top-level array.
func WithParallelThreshold(n int) ParserOption {
	return func(c *Config) { c.ParallelThreshold = n }
}

// WithWorkerCount sets the number of parallel parser workers; 0 selects
// GOMAXPROCS workers at parse time.
func WithWorkerCount(n int) ParserOption {
	return func(c *Config) { c.WorkerCount = n }
}

// WithSIMDEnabled sets Config.SIMDEnabled. ParseWith only uses it to decide
// whether to warm the CPU feature probe up front; the primitives (C2) run
// the same portable body at every lane width, so false does not select a
// different code path.
func WithSIMDEnabled(b bool) ParserOption {
	return func(c *Config) { c.SIMDEnabled = b }
}

// WithNumaBinding selects the NUMA placement policy for parallel worker
// arenas.
func WithNumaBinding(b NumaBinding) ParserOption {
	return func(c *Config) { c.NumaBinding = b }
}

// WithCopyStrings controls whether string values are copied out of the
// source buffer. Default: true.
func WithCopyStrings(b bool) ParserOption {
	return func(c *Config) { c.CopyStrings = b }
}

func (c Config) apply(opts []ParserOption) Config {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
