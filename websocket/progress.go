package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"copyforge/models"
	"copyforge/services"
)

var upgrader = websocket.Upgrader{
	// In production, adjust the CheckOrigin function to allow only trusted origins.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message is the wire frame sent to the client while a generation runs.
// Type is one of "progress", "result", "error".
type Message struct {
	Type   string                   `json:"type"`
	Stage  string                   `json:"stage,omitempty"`
	Detail string                   `json:"detail,omitempty"`
	Result *models.GenerationResult `json:"result,omitempty"`
	Error  string                   `json:"error,omitempty"`
}

// ProgressHandler streams generation progress over a websocket. The client
// sends one GenerationRequest as JSON, receives a "progress" frame per
// pipeline stage, then a final "result" or "error" frame, and the connection
// closes.
type ProgressHandler struct {
	Pipeline *services.Pipeline
}

func NewProgressHandler(pipeline *services.Pipeline) *ProgressHandler {
	return &ProgressHandler{Pipeline: pipeline}
}

func (h *ProgressHandler) Handle(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Error("websocket upgrade failed")
		return
	}
	defer conn.Close()

	var req models.GenerationRequest
	if err := conn.ReadJSON(&req); err != nil {
		conn.WriteJSON(Message{Type: "error", Error: "invalid generation request: " + err.Error()})
		return
	}

	notify := func(stage, detail string) {
		if err := conn.WriteJSON(Message{Type: "progress", Stage: stage, Detail: detail}); err != nil {
			logrus.WithError(err).Warn("progress write failed")
		}
	}

	result, err := h.Pipeline.GenerateWithProgress(c.Request.Context(), req, notify)
	if err != nil {
		conn.WriteJSON(Message{Type: "error", Error: err.Error()})
		return
	}
	conn.WriteJSON(Message{Type: "result", Result: result})
}
