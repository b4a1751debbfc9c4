package metrics

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.ShelfSync(nil)
	m.ShelfSync(nil)
	m.ShelfSync(errors.New("offline"))
	m.SearchResponse(SearchApplied)
	m.SearchResponse(SearchStale)
	m.SearchResponse(SearchStale)
	m.CatalogRequest(http.MethodGet, 200, 20*time.Millisecond)

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	assert.Len(t, families, 4)

	assert.Equal(t, 2.0, counterValue(families, "myreads_shelf_sync_total", "result", "ok"))
	assert.Equal(t, 1.0, counterValue(families, "myreads_shelf_sync_total", "result", "error"))
	assert.Equal(t, 1.0, counterValue(families, "myreads_search_responses_total", "outcome", SearchApplied))
	assert.Equal(t, 2.0, counterValue(families, "myreads_search_responses_total", "outcome", SearchStale))
	assert.Equal(t, 1.0, counterValue(families, "myreads_catalog_requests_total", "status", "200"))
}

// counterValue finds the counter in name whose label has value
func counterValue(families []*dto.MetricFamily, name, label, value string) float64 {
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, lp := range metric.GetLabel() {
				if lp.GetName() == label && lp.GetValue() == value {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestNilMetricsIsNoOp(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ShelfSync(nil)
		m.SearchResponse(SearchFailed)
		m.CatalogRequest(http.MethodPut, 0, time.Second)
	})
}

func TestServe(t *testing.T) {
	// Reserve a free port
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	m := New()
	m.ShelfSync(nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Serve(ctx, addr, nil) }()

	var body string
	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/metrics")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		data, _ := io.ReadAll(resp.Body)
		body = string(data)
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	assert.Contains(t, body, `myreads_shelf_sync_total{result="ok"} 1`)

	cancel()
	assert.NoError(t, <-done)
}
