// internal/server/handlers/assistant.go

package handlers

import (
	"log/slog"
	"net/http"

	"talkclass/internal/domain/assistant"
)

// AssistantHandler handles analytical questions
type AssistantHandler struct {
	service assistant.Service
	logger  *slog.Logger
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(service assistant.Service, logger *slog.Logger) *AssistantHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AssistantHandler{
		service: service,
		logger:  logger,
	}
}

// Ask answers a question about the supplied analytics context
func (h *AssistantHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req assistant.Request
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.logger, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	respondWithJSON(w, http.StatusOK, h.service.Answer(r.Context(), req))
}
