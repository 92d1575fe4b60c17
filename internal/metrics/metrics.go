// Package metrics records browser activity as Prometheus metrics on a
// private registry: rebuild counts, subsystem counts per category and
// category visibility toggles.
package metrics

import (
	"fmt"
	"io"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/papapumpkin/sysbrowse/internal/browser"
	"github.com/papapumpkin/sysbrowse/internal/registry"
)

const namespace = "sysbrowse"

// Recorder owns the metric collectors. A nil *Recorder is a valid no-op.
type Recorder struct {
	reg        *prometheus.Registry
	rebuilds   prometheus.Counter
	generation prometheus.Gauge
	subsystems *prometheus.GaugeVec
	toggles    *prometheus.CounterVec
}

// New creates a Recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		rebuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_rebuilds_total",
			Help:      "Number of full model rebuilds.",
		}),
		generation: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_generation",
			Help:      "Current model generation.",
		}),
		subsystems: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "subsystems",
			Help:      "Subsystem instances per category after the last rebuild.",
		}, []string{"world", "category"}),
		toggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "category_toggles_total",
			Help:      "Category visibility changes.",
		}, []string{"category", "visible"}),
	}
	r.reg.MustRegister(r.rebuilds, r.generation, r.subsystems, r.toggles)
	return r
}

// ObserveRebuild records a completed rebuild. Gauges from the previous world
// are dropped.
func (r *Recorder) ObserveRebuild(st browser.RebuildStats) {
	if r == nil {
		return
	}
	r.rebuilds.Inc()
	r.generation.Set(float64(st.Generation))
	r.subsystems.Reset()
	for id, n := range st.PerCategory {
		r.subsystems.WithLabelValues(st.World, string(id)).Set(float64(n))
	}
}

// ObserveToggle records a category being shown or hidden.
func (r *Recorder) ObserveToggle(id registry.CategoryID, visible bool) {
	if r == nil {
		return
	}
	r.toggles.WithLabelValues(string(id), strconv.FormatBool(visible)).Inc()
}

// Gather returns the current metric families sorted by name. A nil
// Recorder has none.
func (r *Recorder) Gather() ([]*dto.MetricFamily, error) {
	if r == nil {
		return nil, nil
	}
	families, err := r.reg.Gather()
	if err != nil {
		return nil, fmt.Errorf("metrics: gather: %w", err)
	}
	return families, nil
}

// WriteText writes every metric family in the Prometheus text format.
func (r *Recorder) WriteText(w io.Writer) error {
	families, err := r.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("metrics: write %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
