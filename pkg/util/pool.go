package util

import "runtime"

// GetOptimalPoolSize returns the pool size for CPU-bound work.
//
// Formula: min(max(runtime.NumCPU() * 2, 4), 32)
//
// Used for both the parser pools and the lint worker pool; the two must
// match so workers never wait on a parser.
func GetOptimalPoolSize() int {
	poolSize := runtime.NumCPU() * 2
	if poolSize < 4 {
		poolSize = 4
	}
	if poolSize > 32 {
		poolSize = 32
	}
	return poolSize
}

// GetOptimalPoolSizeWithOverride returns override when positive, otherwise
// GetOptimalPoolSize().
func GetOptimalPoolSizeWithOverride(override int) int {
	if override > 0 {
		return override
	}
	return GetOptimalPoolSize()
}
