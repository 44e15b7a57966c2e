package master

import (
	"fmt"
	"sync/atomic"
)

// fetchAddSeq atomically increments counter and returns the value it held
// before the increment, truncated to 16 bits. This gives the classic
// fetch-and-add sequence discipline spec.md §5 requires: the nth call
// returns n-1, and wraps silently past 0xFFFF because the truncation
// discards the high bits of the underlying uint32.
func fetchAddSeq(counter *uint32) uint16 {
	old := atomic.AddUint32(counter, 1) - 1
	return uint16(old)
}

func errMTUExceeds(requested, max int) error {
	return fmt.Errorf("requested MTU %d exceeds maximum %d", requested, max)
}
