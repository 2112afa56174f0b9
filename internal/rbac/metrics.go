package rbac

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	resolutionsOnce sync.Once              //nolint:gochecknoglobals
	resolutions     *prometheus.CounterVec //nolint:gochecknoglobals
)

// resolutionCounter returns the process wide counter of permission resolutions.
func resolutionCounter() *prometheus.CounterVec {
	resolutionsOnce.Do(func() {
		resolutions = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "churchadmin",
				Name:      "permission_resolutions_total",
				Help:      "Number of effective permission resolutions, by role and whether an override applied.",
			},
			[]string{"role", "overridden"},
		)
	})

	return resolutions
}

func countResolution(r Role, overridden bool) {
	resolutionCounter().WithLabelValues(string(r), strconv.FormatBool(overridden)).Inc()
}
