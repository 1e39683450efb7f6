package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAuthorityCall(t *testing.T) {
	c := NewCollector("client-api")

	c.RecordAuthorityCall("verified")
	c.RecordAuthorityCall("verified")
	c.RecordAuthorityCall("rejected")

	assert.Equal(t, float64(2), testutil.ToFloat64(c.authorityCalls.WithLabelValues("verified")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.authorityCalls.WithLabelValues("rejected")))
}

func TestRecordStoreCall(t *testing.T) {
	c := NewCollector("admin-api")

	c.RecordStoreCall("accounts", "created")
	c.RecordStoreCall("accounts", "conflict")
	c.RecordStoreCall("accounts", "conflict")

	assert.Equal(t, float64(1), testutil.ToFloat64(c.storeCalls.WithLabelValues("accounts", "created")))
	assert.Equal(t, float64(2), testutil.ToFloat64(c.storeCalls.WithLabelValues("accounts", "conflict")))
}

func TestNilCollectorIsNoOp(t *testing.T) {
	var c *Collector

	assert.NotPanics(t, func() {
		c.RecordAuthorityCall("verified")
		c.RecordStoreCall("accounts", "created")
	})
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := NewCollector("client-api")
	c.RecordAuthorityCall("verified")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	require.NoError(t, c.Handler()(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "mailhub_authority_calls_total")
	assert.Contains(t, rec.Body.String(), `service="client-api"`)
}

func TestSeparateCollectorsDoNotCollide(t *testing.T) {
	assert.NotPanics(t, func() {
		NewCollector("client-api")
		NewCollector("client-api")
	})
}
