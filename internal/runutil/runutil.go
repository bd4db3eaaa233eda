// internal/runutil/runutil.go
package runutil

import "runtime"

// EffectiveThreads resolves a --threads value: 0 or less means all CPUs.
func EffectiveThreads(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// SplitEven cuts n items into parts consecutive [start, end) ranges whose
// sizes differ by at most one, larger parts first. Empty ranges are
// omitted, so fewer than parts ranges come back when n < parts.
func SplitEven(n, parts int) [][2]int {
	if n <= 0 {
		return nil
	}
	if parts < 1 {
		parts = 1
	}
	size, rem := n/parts, n%parts
	out := make([][2]int, 0, parts)
	start := 0
	for i := 0; i < parts; i++ {
		sz := size
		if i < rem {
			sz++
		}
		if sz == 0 {
			break
		}
		out = append(out, [2]int{start, start + sz})
		start += sz
	}
	return out
}

// BatchCount is the number of batches used for n items at a nominal batch
// size: n/batchSize + 1, which keeps every batch at or below batchSize.
func BatchCount(n, batchSize int) int {
	if batchSize < 1 {
		batchSize = 1
	}
	return n/batchSize + 1
}
