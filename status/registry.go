// Package status holds lock-free metrics shared between the simulation and the renderer
package status

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metric names written by the sandbox
const (
	MetricShotsFired     = "turret.shots"
	MetricTargetsFound   = "turret.acquired"
	MetricTargetsLost    = "turret.lost"
	MetricLastEvent      = "events.last"
	MetricTicksPerSecond = "sim.tps"
	MetricTurretsEnabled = "turret.enabled"
)

// Registry is the central metrics facade
// Writers cache pointers once and store to the atomics, the renderer reads them from its own goroutine
type Registry struct {
	flags    *table[atomic.Bool]
	counters *table[atomic.Int64]
	gauges   *table[Gauge]
	texts    *table[Text]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		flags:    newTable[atomic.Bool](),
		counters: newTable[atomic.Int64](),
		gauges:   newTable[Gauge](),
		texts:    newTable[Text](),
	}
}

// Counter returns the named integer metric
func (r *Registry) Counter(name string) *atomic.Int64 { return r.counters.get(name) }

// Gauge returns the named float metric
func (r *Registry) Gauge(name string) *Gauge { return r.gauges.get(name) }

// Flag returns the named boolean metric
func (r *Registry) Flag(name string) *atomic.Bool { return r.flags.get(name) }

// Text returns the named string metric
func (r *Registry) Text(name string) *Text { return r.texts.get(name) }

// Len returns the number of registered metrics of all kinds
func (r *Registry) Len() int {
	return r.flags.len() + r.counters.len() + r.gauges.len() + r.texts.len()
}

// Summary formats the counters and gauges in key order as "name=value" pairs
func (r *Registry) Summary() string {
	var parts []string
	r.counters.each(func(name string, v *atomic.Int64) {
		parts = append(parts, fmt.Sprintf("%s=%d", shortName(name), v.Load()))
	})
	r.gauges.each(func(name string, v *Gauge) {
		parts = append(parts, fmt.Sprintf("%s=%.1f", shortName(name), v.Value()))
	})
	return strings.Join(parts, " ")
}

func shortName(key string) string {
	if i := strings.LastIndexByte(key, '.'); i >= 0 {
		return key[i+1:]
	}
	return key
}
