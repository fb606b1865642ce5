package metrics

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/regen/internal/core/ports"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	p := NewPrometheus(reg)

	p.ChangeDetected("native")
	p.ChangeDetected("native")
	p.ChangeDetected("poll")
	p.BuildFinished(ports.OutcomeSuccess, 250*time.Millisecond)
	p.BuildFinished(ports.OutcomeFailure, 100*time.Millisecond)
	p.GraphRefreshed()
	p.SetPendingRoutes(3)

	families, err := reg.Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			key := family.GetName()
			for _, label := range metric.GetLabel() {
				key += "/" + label.GetValue()
			}
			switch {
			case metric.GetCounter() != nil:
				values[key] = metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				values[key] = metric.GetGauge().GetValue()
			}
		}
	}

	assert.Equal(t, 2.0, values["regen_change_events_total/native"])
	assert.Equal(t, 1.0, values["regen_change_events_total/poll"])
	assert.Equal(t, 1.0, values["regen_build_outcomes_total/success"])
	assert.Equal(t, 1.0, values["regen_build_outcomes_total/failure"])
	assert.Equal(t, 1.0, values["regen_graph_refresh_total"])
	assert.Equal(t, 3.0, values["regen_pending_routes"])
}

func TestNoopRecorder(t *testing.T) {
	var recorder ports.Recorder = Noop{}

	recorder.ChangeDetected("poll")
	recorder.BuildFinished(ports.OutcomeSkipped, time.Second)
	recorder.GraphRefreshed()
	recorder.SetPendingRoutes(0)
}
