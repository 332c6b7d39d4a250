package monitoring

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/uirender/internal/shared/types"
)

func TestInstancesAreIndependent(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.RecordNode("card", types.StatusRendered)

	assert.Equal(t, 1.0, testutil.ToFloat64(a.NodesRendered.WithLabelValues("card", "rendered")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.NodesRendered.WithLabelValues("card", "rendered")))
}

func TestSnapshot(t *testing.T) {
	m := NewMetrics()

	m.RecordNode("card", types.StatusRendered)
	m.RecordNode("ghost", types.StatusFallback)
	m.RecordNode("chart", types.StatusError)
	m.ObserveRender(2 * time.Millisecond)
	m.ObserveRender(4 * time.Millisecond)
	m.RecordHTTPRequest("GET", "/health", "200", time.Millisecond, 0, 10)
	m.RecordHTTPRequest("POST", "/render", "422", time.Millisecond, 10, 10)

	snap := m.Snapshot()
	assert.Equal(t, int64(1), snap.NodesRendered)
	assert.Equal(t, int64(1), snap.NodesFallback)
	assert.Equal(t, int64(1), snap.NodesFailed)
	assert.Equal(t, int64(2), snap.TotalRequests)
	assert.Equal(t, int64(1), snap.TotalErrors)
	assert.InDelta(t, 3.0, snap.AverageRenderMs, 0.001)
}

func TestMiddlewareUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()
	router := gin.New()
	router.Use(Middleware(m))
	router.GET("/catalog/components/:name", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/catalog/components/card", nil))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/catalog/components/:name", "200")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := NewMetrics()
	m.SetCatalogComponents(7)
	m.RecordAgentJob("completed", time.Second)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), "uirender_catalog_components 7")
	assert.Contains(t, string(body), `uirender_agent_jobs_total{status="completed"} 1`)
	assert.Contains(t, string(body), "uirender_uptime_seconds")
}

func TestInstancesDoNotShareSeries(t *testing.T) {
	a, b := NewMetrics(), NewMetrics()
	a.SetCatalogComponents(3)
	b.SetCatalogComponents(9)

	scrape := func(m *Metrics) string {
		w := httptest.NewRecorder()
		m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		require.Equal(t, http.StatusOK, w.Code)
		return w.Body.String()
	}

	assert.Contains(t, scrape(a), "uirender_catalog_components 3")
	assert.Contains(t, scrape(b), "uirender_catalog_components 9")
}
