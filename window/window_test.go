package window

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestAcceptFirstSeenIsFresh(t *testing.T) {
	w := New(time.Second, 0)
	now := time.Unix(0, 0)
	if got := w.Accept(5, now); got != Fresh {
		t.Fatalf("Accept(5) = %v, want Fresh", got)
	}
}

func TestAcceptRepeatIsDuplicate(t *testing.T) {
	w := New(time.Second, 0)
	now := time.Unix(0, 0)
	w.Accept(5, now)
	if got := w.Accept(5, now); got != Duplicate {
		t.Fatalf("second Accept(5) = %v, want Duplicate", got)
	}
}

// WRAP-OK: with seqnr advancing from 0xFFFE to 0x0001, duplicate discard
// correctly accepts all four frames as fresh across the 16-bit wrap.
func TestWrapAroundAcceptsAllAsFresh(t *testing.T) {
	w := New(time.Second, 0)
	now := time.Unix(0, 0)
	for _, seq := range []uint16{0xFFFE, 0xFFFF, 0x0000, 0x0001} {
		if got := w.Accept(seq, now); got != Fresh {
			t.Fatalf("Accept(%#x) = %v, want Fresh", seq, got)
		}
	}
}

func TestEntriesExpireAfterForgetTime(t *testing.T) {
	w := New(10 * time.Millisecond, 0)
	start := time.Unix(0, 0)
	w.Accept(1, start)

	later := start.Add(20 * time.Millisecond)
	if got := w.Accept(1, later); got != Fresh {
		t.Fatalf("Accept(1) after forget time = %v, want Fresh", got)
	}
}

func TestWindowBoundedToMaxEntries(t *testing.T) {
	w := New(time.Hour, 0)
	now := time.Unix(0, 0)
	for i := 0; i < maxEntries+10; i++ {
		w.Accept(uint16(i), now)
	}
	if len(w.entries) != maxEntries {
		t.Fatalf("len(entries) = %d, want %d", len(w.entries), maxEntries)
	}
	// The oldest ten sequence numbers fell out of the bound, so they
	// read as fresh again.
	if got := w.Accept(0, now); got != Fresh {
		t.Fatalf("Accept(0) after eviction = %v, want Fresh", got)
	}
}

func TestNodeRebootIntervalResetsWindow(t *testing.T) {
	w := New(time.Hour, 500*time.Millisecond)
	start := time.Unix(0, 0)
	if got := w.Accept(7, start); got != Fresh {
		t.Fatalf("Accept(7) = %v, want Fresh", got)
	}

	// Silence shorter than the reboot interval: the peer is still
	// remembered, so the repeat is a duplicate.
	soon := start.Add(100 * time.Millisecond)
	if got := w.Accept(7, soon); got != Duplicate {
		t.Fatalf("Accept(7) after short silence = %v, want Duplicate", got)
	}

	// Silence longer than the reboot interval: the peer is assumed to
	// have restarted its sequence numbers, so the same seqnr reads fresh.
	rebooted := start.Add(time.Second)
	if got := w.Accept(7, rebooted); got != Fresh {
		t.Fatalf("Accept(7) after reboot-length silence = %v, want Fresh", got)
	}
}

func TestResetForgetsEverything(t *testing.T) {
	w := New(time.Hour, 0)
	now := time.Unix(0, 0)
	w.Accept(42, now)
	w.Reset()
	if got := w.Accept(42, now); got != Fresh {
		t.Fatalf("Accept(42) after Reset = %v, want Fresh", got)
	}
}

// A sequence of distinct, never-repeating sequence numbers accepted within
// the memory horizon must all be Fresh, regardless of where in the 16-bit
// space they fall or how they wrap.
func TestDistinctSequenceAlwaysFresh(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(1, maxEntries).Draw(t, "count")
		start := rapid.Uint16().Draw(t, "start")

		w := New(time.Hour, 0)
		now := time.Unix(0, 0)
		for i := 0; i < count; i++ {
			seq := start + uint16(i)
			assert.Equalf(t, Fresh, w.Accept(seq, now), "seq %#x should be fresh", seq)
		}
	})
}

// Re-submitting any sequence number already accepted within the current
// bounded window must report Duplicate.
func TestRepeatedWithinWindowIsDuplicate(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seq := rapid.Uint16().Draw(t, "seq")

		w := New(time.Hour, 0)
		now := time.Unix(0, 0)
		w.Accept(seq, now)
		assert.Equal(t, Duplicate, w.Accept(seq, now))
	})
}
