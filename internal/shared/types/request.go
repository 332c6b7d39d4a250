package types

// GenerateRequest asks the agent for a new UI
type GenerateRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// RenderResponse is returned by the render endpoints
type RenderResponse struct {
	Spec     *Spec  `json:"spec"`
	Output   Output `json:"output"`
	Fallback bool   `json:"fallback"`
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type"`
	Prompt  string          `json:"prompt,omitempty"`
	Spec    any             `json:"spec,omitempty"`
	Message string          `json:"message,omitempty"`
	Result  *RenderResponse `json:"result,omitempty"`
}
