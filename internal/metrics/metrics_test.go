// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-repair-desk/models"
)

func TestLifecycleCounters(t *testing.T) {
	m := New()

	m.RequestCreated()
	m.RequestCreated()
	m.StatusChanged(models.StatusNew, models.StatusInRepair)
	m.StatusChanged("Lost", models.StatusReadyForPickup)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestTransitions.WithLabelValues("New", "In repair")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestTransitions.WithLabelValues("other", "Ready for pickup")))
}

func TestSetStatusCounts(t *testing.T) {
	m := New()

	m.SetStatusCounts([]models.StatusCount{
		{Status: models.StatusNew, TotalRequests: 3},
		{Status: models.StatusReadyForPickup, TotalRequests: 1},
	})

	assert.Equal(t, 3.0, testutil.ToFloat64(m.requestsByStatus.WithLabelValues("New")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.requestsByStatus.WithLabelValues("Awaiting parts")))
	assert.Equal(t, 4, testutil.CollectAndCount(m.requestsByStatus))

	m.SetStatusCounts(nil)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.requestsByStatus.WithLabelValues("New")))
}

func TestHTTPStarted(t *testing.T) {
	m := New()

	done := m.HTTPStarted("get")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpInFlight))

	done("/api/requests/{id}", http.StatusOK)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.httpInFlight))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/requests/{id}", "200")))

	m.HTTPStarted("POST")("", http.StatusNotFound)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("POST", "unmatched", "404")))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	m := New()
	m.RequestCreated()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "repair_desk_repair_requests_created_total 1")
	assert.Contains(t, string(body), "go_goroutines")
}
