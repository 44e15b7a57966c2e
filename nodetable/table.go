// Package nodetable implements the PRP node table: a concurrent MAC-keyed
// map of remote peers, each entry carrying per-LAN last-seen timestamps,
// SAN/DANP classification, and a duplicate-discard window.
package nodetable

import (
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/ramv33/prp/window"
)

// nbuckets is the fixed bucket count. Kept a power of two so the
// reduction is a mask rather than a division.
const nbuckets = 256

// hashSeed matches the constant original PRP node-table implementations
// seed their MAC hash with, so bucket distribution is reproducible across
// runs.
const hashSeed = 0x533d15deadbeef11

// LAN indexes the two parallel LANs for per-LAN fields: 0 for LAN A, 1 for
// LAN B.
type LAN int

const (
	LANA LAN = 0
	LANB LAN = 1
)

// Entry is a single remote peer's node-table record. Fields are only ever
// mutated by a caller holding the owning Table's write lock.
type Entry struct {
	MAC [6]byte

	LastSeen [2]time.Time

	// SanA and SanB classify the peer. A fresh entry has both true,
	// meaning "unclassified". Exactly one true means a confirmed SAN on
	// that LAN. Both false means a confirmed DANP.
	SanA, SanB bool

	// Window is the duplicate-discard state for this peer. Nil until the
	// peer is upgraded to DANP or the RX path sees a tagged data frame
	// from it, whichever comes first.
	Window *window.Window

	SupSeqnrLast uint16
}

// IsDANP reports whether the entry is classified as a doubly-attached
// node (both san_a and san_b false).
func (e *Entry) IsDANP() bool {
	return !e.SanA && !e.SanB
}

// IsConfirmedSAN reports whether the entry is a confirmed singly-attached
// node: exactly one of san_a/san_b is true.
func (e *Entry) IsConfirmedSAN() bool {
	return e.SanA != e.SanB
}

// Table is a fixed-bucket concurrent hash map of Entry, keyed by MAC
// address. A single reader-writer lock guards the bucket arrays: the RX
// path holds the write guard for the duration of one packet, since it may
// create or mutate an entry, while the TX lookup takes only the read
// guard.
type Table struct {
	mu                 sync.RWMutex
	buckets            [nbuckets][]*Entry
	entryForgetTime    time.Duration
	nodeForgetTime     time.Duration
	nodeRebootInterval time.Duration
}

// New returns an empty Table. entryForgetTime sizes each peer's
// duplicate-discard window; nodeForgetTime governs Prune;
// nodeRebootInterval governs when a peer's window is reset after a gap in
// activity long enough to imply it rebooted.
func New(entryForgetTime, nodeForgetTime, nodeRebootInterval time.Duration) *Table {
	return &Table{
		entryForgetTime:    entryForgetTime,
		nodeForgetTime:     nodeForgetTime,
		nodeRebootInterval: nodeRebootInterval,
	}
}

func bucketOf(mac [6]byte) int {
	d := xxhash.New()
	var seed [8]byte
	for i := range seed {
		seed[i] = byte(hashSeed >> (8 * i))
	}
	d.Write(seed[:])
	d.Write(mac[:])
	return int(d.Sum64() % nbuckets)
}

// Lookup returns the entry for mac, or nil if none exists. Callers must
// hold at least a read lock (RLock/RUnlock) for the duration of use.
func (t *Table) Lookup(mac [6]byte) *Entry {
	b := t.buckets[bucketOf(mac)]
	for _, e := range b {
		if e.MAC == mac {
			return e
		}
	}
	return nil
}

// GetOrCreate returns the existing entry for mac, or creates one with
// san_a = san_b = true and last_seen[lan] = now. Callers must hold the
// write lock.
func (t *Table) GetOrCreate(mac [6]byte, lan LAN, now time.Time) *Entry {
	idx := bucketOf(mac)
	for _, e := range t.buckets[idx] {
		if e.MAC == mac {
			return e
		}
	}
	e := &Entry{MAC: mac, SanA: true, SanB: true}
	e.LastSeen[lan] = now
	t.buckets[idx] = append(t.buckets[idx], e)
	return e
}

// UpgradeToDANP clears both san_* flags and lazily allocates the entry's
// duplicate-discard window if absent. Callers must hold the write lock.
func (t *Table) UpgradeToDANP(e *Entry) {
	e.SanA = false
	e.SanB = false
	if e.Window == nil {
		e.Window = window.New(t.entryForgetTime, t.nodeRebootInterval)
	}
}

// MarkSAN sets the given LAN's san_* flag true and the other false,
// reflecting a non-PRP receive on that LAN. Callers must hold the write
// lock.
func (t *Table) MarkSAN(e *Entry, lan LAN) {
	switch lan {
	case LANA:
		e.SanA, e.SanB = true, false
	case LANB:
		e.SanA, e.SanB = false, true
	}
}

// Prune removes entries whose last_seen on both LANs is older than the
// table's nodeForgetTime. Callers must hold the write lock.
func (t *Table) Prune(now time.Time) int {
	removed := 0
	for i := range t.buckets {
		b := t.buckets[i]
		kept := b[:0]
		for _, e := range b {
			if now.Sub(e.LastSeen[LANA]) < t.nodeForgetTime || now.Sub(e.LastSeen[LANB]) < t.nodeForgetTime {
				kept = append(kept, e)
				continue
			}
			removed++
		}
		t.buckets[i] = kept
	}
	return removed
}

// Lock and Unlock expose the table's write guard to callers mutating an
// entry (RX and supervision processing).
func (t *Table) Lock()   { t.mu.Lock() }
func (t *Table) Unlock() { t.mu.Unlock() }

// RLock and RUnlock expose the table's read guard to the lookup fast path.
func (t *Table) RLock()   { t.mu.RLock() }
func (t *Table) RUnlock() { t.mu.RUnlock() }

// Len returns the total number of entries across all buckets. Intended
// for tests and diagnostics; callers should hold at least a read lock.
func (t *Table) Len() int {
	n := 0
	for _, b := range t.buckets {
		n += len(b)
	}
	return n
}
