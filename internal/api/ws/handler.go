package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/uirender/internal/domain/pipeline"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/shared/types"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/shared/utils"
)

// Message types
const (
	TypeRender   = "render"
	TypeGenerate = "generate"
	TypePing     = "ping"
	TypePong     = "pong"
	TypeSystem   = "system"
	TypeStatus   = "status"
	TypeResult   = "result"
	TypeError    = "error"
)

const (
	writeWait       = 10 * time.Second
	generateTimeout = 3 * time.Minute
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler manages WebSocket connections
type Handler struct {
	pipeline *pipeline.Pipeline
	metrics  *monitoring.Metrics
	logger   *zap.Logger
}

// NewHandler creates a new WebSocket handler. metrics may be nil.
func NewHandler(p *pipeline.Pipeline, metrics *monitoring.Metrics, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		pipeline: p,
		metrics:  metrics,
		logger:   logger,
	}
}

// HandleConnection handles WebSocket upgrade and messages
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(utils.MaxJSONSize)

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}

	reqCtx := c.Request.Context()
	h.send(conn, types.WSMessage{Type: TypeSystem, Message: "Connected to uirender stream"})

	for {
		var msg types.WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debug("WebSocket read error", zap.Error(err))
			}
			return
		}
		h.record("in", inboundLabel(msg.Type))

		switch msg.Type {
		case TypeRender:
			h.handleRender(conn, msg)
		case TypeGenerate:
			h.handleGenerate(reqCtx, conn, msg)
		case TypePing:
			h.send(conn, types.WSMessage{ID: msg.ID, Type: TypePong})
		default:
			h.sendError(conn, msg.ID, "unknown message type")
		}
	}
}

func (h *Handler) handleRender(conn *websocket.Conn, msg types.WSMessage) {
	if msg.Spec == nil {
		h.sendError(conn, msg.ID, "render message requires a spec")
		return
	}
	result := h.pipeline.RenderRaw(msg.Spec)
	h.send(conn, types.WSMessage{ID: msg.ID, Type: TypeResult, Result: &result})
}

func (h *Handler) handleGenerate(reqCtx context.Context, conn *websocket.Conn, msg types.WSMessage) {
	if err := utils.ValidatePrompt(msg.Prompt); err != nil {
		h.sendError(conn, msg.ID, err.Error())
		return
	}
	if !h.pipeline.HasAgent() {
		h.sendError(conn, msg.ID, pipeline.ErrNoAgent.Error())
		return
	}

	h.send(conn, types.WSMessage{ID: msg.ID, Type: TypeStatus, Message: "Generating interface..."})

	ctx, cancel := context.WithTimeout(reqCtx, generateTimeout)
	defer cancel()

	result, err := h.pipeline.Generate(ctx, msg.Prompt)
	if err != nil {
		h.logger.Warn("Stream generation failed", zap.Error(err))
		h.sendError(conn, msg.ID, err.Error())
		return
	}
	h.send(conn, types.WSMessage{ID: msg.ID, Type: TypeResult, Result: &result})
}

func (h *Handler) send(conn *websocket.Conn, msg types.WSMessage) {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(msg); err != nil {
		h.logger.Debug("WebSocket write failed", zap.String("type", msg.Type), zap.Error(err))
		return
	}
	h.record("out", msg.Type)
}

func (h *Handler) sendError(conn *websocket.Conn, id, message string) {
	h.send(conn, types.WSMessage{ID: id, Type: TypeError, Message: message})
}

func inboundLabel(msgType string) string {
	switch msgType {
	case TypeRender, TypeGenerate, TypePing:
		return msgType
	default:
		return "unknown"
	}
}

func (h *Handler) record(direction, msgType string) {
	if h.metrics != nil {
		h.metrics.RecordWSMessage(direction, msgType)
	}
}
