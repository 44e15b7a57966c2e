// Package stats implements master.Stats with Prometheus counters for the
// rx/tx/drop/error fields spec.md §4.6 and §7 name.
package stats

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ramv33/prp/rct"
)

// Collector is a Prometheus-backed implementation of master.Stats, one
// per PRP master instance.
type Collector struct {
	rx        *prometheus.CounterVec
	tx        *prometheus.CounterVec
	drops     *prometheus.CounterVec
	wrongLAN  *prometheus.CounterVec
	badLSDU   prometheus.Counter
	duplicate prometheus.Counter
}

// New constructs a Collector labeled with the master's name (e.g. the
// logical device name, "prp0"), and registers its metrics with reg.
func New(reg prometheus.Registerer, master string) *Collector {
	constLabels := prometheus.Labels{"master": master}

	c := &Collector{
		rx: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "prp",
			Name:        "rx_frames_total",
			Help:        "Frames received per LAN.",
			ConstLabels: constLabels,
		}, []string{"lan"}),
		tx: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "prp",
			Name:        "tx_frames_total",
			Help:        "Frames transmitted per LAN.",
			ConstLabels: constLabels,
		}, []string{"lan"}),
		drops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "prp",
			Name:        "drops_total",
			Help:        "Frames dropped, labeled by reason.",
			ConstLabels: constLabels,
		}, []string{"reason"}),
		wrongLAN: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "prp",
			Name:        "wrong_lan_total",
			Help:        "Frames whose RCT lan_id did not match the receiving port.",
			ConstLabels: constLabels,
		}, []string{"lan"}),
		badLSDU: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "prp",
			Name:        "bad_lsdu_total",
			Help:        "Frames with an RCT lsdu_size mismatch.",
			ConstLabels: constLabels,
		}),
		duplicate: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "prp",
			Name:        "duplicates_total",
			Help:        "Frames discarded as duplicates.",
			ConstLabels: constLabels,
		}),
	}

	reg.MustRegister(c.rx, c.tx, c.drops, c.wrongLAN, c.badLSDU, c.duplicate)
	return c
}

func (c *Collector) RX(lan rct.LANID)       { c.rx.WithLabelValues(lan.String()).Inc() }
func (c *Collector) TX(lan rct.LANID)       { c.tx.WithLabelValues(lan.String()).Inc() }
func (c *Collector) Drop(reason string)     { c.drops.WithLabelValues(reason).Inc() }
func (c *Collector) WrongLAN(lan rct.LANID) { c.wrongLAN.WithLabelValues(lan.String()).Inc() }
func (c *Collector) BadLSDU()               { c.badLSDU.Inc() }
func (c *Collector) Duplicate()             { c.duplicate.Inc() }
