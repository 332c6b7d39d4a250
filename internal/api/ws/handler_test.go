package ws

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/uirender/internal/agent"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/domain/normalizer"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/domain/pipeline"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/domain/registry"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/domain/renderer"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/shared/types"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/widgets"
)

type stubFetcher struct {
	result any
	err    error
}

func (s stubFetcher) Fetch(context.Context, string) (any, error) { return s.result, s.err }

func dial(t *testing.T, fetcher agent.Fetcher) (*websocket.Conn, *monitoring.Metrics) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg := registry.New(nil)
	registry.NewSeeder(reg, nil).SeedModules(widgets.Modules()...)
	metrics := monitoring.NewMetrics()
	p := pipeline.New(normalizer.New(), renderer.New(reg), fetcher, nil)

	router := gin.New()
	router.GET("/stream", NewHandler(p, metrics, nil).HandleConnection)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/stream", nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	greeting := read(t, conn)
	require.Equal(t, TypeSystem, greeting.Type)
	return conn, metrics
}

func read(t *testing.T, conn *websocket.Conn) types.WSMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg types.WSMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestRenderMessage(t *testing.T) {
	conn, metrics := dial(t, nil)

	require.NoError(t, conn.WriteJSON(map[string]any{
		"id":   "r1",
		"type": "render",
		"spec": map[string]any{"type": "heading", "props": map[string]any{"text": "Live"}},
	}))

	msg := read(t, conn)
	assert.Equal(t, TypeResult, msg.Type)
	assert.Equal(t, "r1", msg.ID)
	require.NotNil(t, msg.Result)
	assert.False(t, msg.Result.Fallback)
	assert.Equal(t, "heading", msg.Result.Spec.Identifier)
	assert.Contains(t, string(msg.Result.Output.HTML), "Live")

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.WSMessages.WithLabelValues("in", "render")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.WSConnections))
}

func TestRenderMessageFallback(t *testing.T) {
	conn, _ := dial(t, nil)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "render", "spec": "garbage"}))
	msg := read(t, conn)
	require.Equal(t, TypeResult, msg.Type)
	assert.True(t, msg.Result.Fallback)
}

func TestRenderMessageWithoutSpec(t *testing.T) {
	conn, _ := dial(t, nil)

	require.NoError(t, conn.WriteJSON(map[string]any{"id": "x", "type": "render"}))
	msg := read(t, conn)
	assert.Equal(t, TypeError, msg.Type)
	assert.Equal(t, "x", msg.ID)
}

func TestGenerateMessage(t *testing.T) {
	conn, _ := dial(t, stubFetcher{result: map[string]any{
		"type":  "alert",
		"props": map[string]any{"message": "from agent"},
	}})

	require.NoError(t, conn.WriteJSON(map[string]any{"id": "g1", "type": "generate", "prompt": "make an alert"}))

	status := read(t, conn)
	assert.Equal(t, TypeStatus, status.Type)
	assert.Equal(t, "g1", status.ID)

	msg := read(t, conn)
	require.Equal(t, TypeResult, msg.Type)
	assert.Contains(t, string(msg.Result.Output.HTML), "from agent")
}

func TestGenerateWithoutAgent(t *testing.T) {
	conn, _ := dial(t, nil)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "generate", "prompt": "anything"}))
	msg := read(t, conn)
	assert.Equal(t, TypeError, msg.Type)
	assert.Equal(t, pipeline.ErrNoAgent.Error(), msg.Message)
}

func TestPingAndUnknown(t *testing.T) {
	conn, _ := dial(t, nil)

	require.NoError(t, conn.WriteJSON(map[string]any{"id": "p", "type": "ping"}))
	msg := read(t, conn)
	assert.Equal(t, TypePong, msg.Type)
	assert.Equal(t, "p", msg.ID)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "teleport"}))
	msg = read(t, conn)
	assert.Equal(t, TypeError, msg.Type)
	assert.Equal(t, "unknown message type", msg.Message)
}
