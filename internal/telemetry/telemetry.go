// Package telemetry records which actions users invoke.
package telemetry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/chmouel/lazyscm/internal/buildinfo"
	log "github.com/chmouel/lazyscm/internal/log"
)

// Reporter receives one event per dispatched action. Implementations must
// not block and have no way to fail the caller.
type Reporter interface {
	SendEvent(name string, props map[string]string)
}

// Nop discards every event.
type Nop struct{}

// SendEvent implements Reporter.
func (Nop) SendEvent(string, map[string]string) {}

// Prometheus counts events per name in its own registry and logs each one
// under a unique event id.
type Prometheus struct {
	registry    *prometheus.Registry
	invocations *prometheus.CounterVec
	build       map[string]string
	newID       func() string
}

// Option configures a Prometheus reporter.
type Option func(*Prometheus)

// WithBuild exports info as lazyscm_build_info and tags every event with it.
func WithBuild(info buildinfo.Info) Option {
	return func(p *Prometheus) {
		p.build = info.Labels()
		gauge := prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "lazyscm_build_info",
			Help:        "Build metadata of the running binary.",
			ConstLabels: p.build,
		})
		gauge.Set(1)
		p.registry.MustRegister(gauge)
	}
}

// NewPrometheus returns a reporter with a fresh registry.
func NewPrometheus(opts ...Option) *Prometheus {
	invocations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lazyscm_command_invocations_total",
			Help: "Number of dispatched actions, by action id.",
		},
		[]string{"command"},
	)
	registry := prometheus.NewRegistry()
	registry.MustRegister(invocations)
	p := &Prometheus{
		registry:    registry,
		invocations: invocations,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SendEvent implements Reporter.
func (p *Prometheus) SendEvent(name string, props map[string]string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("telemetry: dropped event %q: %v", name, r)
		}
	}()
	p.invocations.WithLabelValues(name).Inc()
	log.Printf("telemetry: event=%s id=%s%s", name, p.newID(), formatProps(p.withBuild(props)))
}

// Gatherer exposes the collected metrics.
func (p *Prometheus) Gatherer() prometheus.Gatherer {
	return p.registry
}

// Count returns how many times name was reported.
func (p *Prometheus) Count(name string) float64 {
	families, err := p.registry.Gather()
	if err != nil {
		return 0
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "command" && l.GetValue() == name {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

// WriteMetrics writes the text exposition format to path.
func (p *Prometheus) WriteMetrics(path string) error {
	if err := prometheus.WriteToTextfile(path, p.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}

func (p *Prometheus) withBuild(props map[string]string) map[string]string {
	if len(p.build) == 0 {
		return props
	}
	merged := make(map[string]string, len(p.build)+len(props))
	for k, v := range p.build {
		merged["build."+k] = v
	}
	for k, v := range props {
		merged[k] = v
	}
	return merged
}

func formatProps(props map[string]string) string {
	if len(props) == 0 {
		return ""
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%q", k, props[k])
	}
	return b.String()
}
