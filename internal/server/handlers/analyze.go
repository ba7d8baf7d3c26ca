// internal/server/handlers/analyze.go

package handlers

import (
	"log/slog"
	"net/http"

	"talkclass/internal/domain/feedback"
)

// AnalyzeRequest is the body of POST /analyze
type AnalyzeRequest struct {
	Texts []feedback.Comment `json:"texts"`
}

// AnalyzeHandler handles per-comment sentiment analysis
type AnalyzeHandler struct {
	analyzer feedback.Analyzer
	logger   *slog.Logger
}

// NewAnalyzeHandler creates a new analyze handler
func NewAnalyzeHandler(analyzer feedback.Analyzer, logger *slog.Logger) *AnalyzeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalyzeHandler{
		analyzer: analyzer,
		logger:   logger,
	}
}

// Analyze returns one analysis per submitted comment
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.logger, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	respondWithJSON(w, http.StatusOK, h.analyzer.Analyze(r.Context(), req.Texts))
}
