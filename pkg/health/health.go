// Package health exposes liveness and readiness checks for shared memory
// regions, with optional prometheus instrumentation of check results and
// mapped bytes.
package health

import (
	"fmt"

	"github.com/heptiolabs/healthcheck"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/slickquant/shm-go/pkg/shm"
)

// RegionCheck reports healthy while the named region exists in the host
// namespace. On Linux the check starts failing after Remove; on Windows
// after the last handle anywhere is released.
func RegionCheck(name string) healthcheck.Check {
	return func() error {
		if !shm.Exists(name) {
			return fmt.Errorf("shared memory region %q does not exist", name)
		}
		return nil
	}
}

// RegistryCheck reports healthy while every handle tracked by reg still
// holds a mapping.
func RegistryCheck(reg *shm.Registry) healthcheck.Check {
	return func() error {
		for _, name := range reg.Names() {
			m, ok := reg.Get(name)
			if !ok {
				continue
			}
			if !m.IsValid() {
				return fmt.Errorf("region %q is tracked but no longer mapped", name)
			}
		}
		return nil
	}
}

// NewHandler builds a healthcheck handler with the registry as a liveness
// check and each named region as a readiness check. reg may be nil.
func NewHandler(reg *shm.Registry, regions ...string) healthcheck.Handler {
	return addChecks(healthcheck.NewHandler(), reg, regions)
}

// NewMetricsHandler is NewHandler with check results additionally exported
// as prometheus gauges on promReg, under the "shm" namespace.
func NewMetricsHandler(promReg prometheus.Registerer, reg *shm.Registry, regions ...string) healthcheck.Handler {
	return addChecks(healthcheck.NewMetricsHandler(promReg, "shm"), reg, regions)
}

func addChecks(h healthcheck.Handler, reg *shm.Registry, regions []string) healthcheck.Handler {
	if reg != nil {
		h.AddLivenessCheck("shm-registry", RegistryCheck(reg))
	}
	for _, name := range regions {
		h.AddReadinessCheck("shm-region-"+name, RegionCheck(name))
	}
	return h
}

// RegisterMappedBytes registers a gauge on promReg exporting the total
// bytes currently mapped by the registry's handles.
func RegisterMappedBytes(promReg prometheus.Registerer, reg *shm.Registry) error {
	return promReg.Register(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "shm",
		Name:      "mapped_bytes",
		Help:      "Total bytes currently mapped by tracked shared memory handles.",
	}, func() float64 {
		return float64(reg.MappedBytes())
	}))
}
