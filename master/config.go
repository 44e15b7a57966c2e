package master

import "time"

// Config holds the timing constants a PRP master is parameterized by. The
// Go-native equivalent of the module load parameters a kernel PRP driver
// would expose.
type Config struct {
	// LifeCheckInterval is the supervision timer period.
	LifeCheckInterval time.Duration
	// NodeForgetTime is how long a peer may go unheard-from on both LANs
	// before the pruner removes its entry.
	NodeForgetTime time.Duration
	// EntryForgetTime sizes a peer's duplicate-discard window.
	EntryForgetTime time.Duration
	// NodeRebootInterval is how long a peer must be silent before its
	// sequence numbers are assumed to have restarted from 0.
	NodeRebootInterval time.Duration
	// SupervisionMulticast is the destination address supervision
	// frames are sent to, and the address the RX path matches against
	// to recognize one.
	SupervisionMulticast [6]byte
}

// DefaultSupervisionMulticast is the default supervision multicast
// address, 01:15:4E:00:01:00.
var DefaultSupervisionMulticast = [6]byte{0x01, 0x15, 0x4E, 0x00, 0x01, 0x00}

// DefaultConfig returns the default timing constants.
func DefaultConfig() Config {
	return Config{
		LifeCheckInterval:    2000 * time.Millisecond,
		NodeForgetTime:       60000 * time.Millisecond,
		EntryForgetTime:      400 * time.Millisecond,
		NodeRebootInterval:   500 * time.Millisecond,
		SupervisionMulticast: DefaultSupervisionMulticast,
	}
}
