// internal/server/handlers/keywords.go

package handlers

import (
	"log/slog"
	"net/http"

	"talkclass/internal/domain/feedback"
)

// KeywordsRequest is the body of POST /keywords
type KeywordsRequest struct {
	Texts   []feedback.Comment `json:"texts"`
	Top     *int               `json:"top,omitempty"`
	MinFreq *int               `json:"min_freq,omitempty"`
}

// KeywordDefaults are applied when a request omits top or min_freq
type KeywordDefaults struct {
	Top          int
	MinFrequency int
}

// KeywordsHandler handles keyword aggregation requests
type KeywordsHandler struct {
	aggregator feedback.Aggregator
	events     feedback.EventPublisher
	defaults   KeywordDefaults
	logger     *slog.Logger
}

// NewKeywordsHandler creates a new keywords handler. events may be nil.
func NewKeywordsHandler(
	aggregator feedback.Aggregator,
	events feedback.EventPublisher,
	defaults KeywordDefaults,
	logger *slog.Logger,
) *KeywordsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &KeywordsHandler{
		aggregator: aggregator,
		events:     events,
		defaults:   defaults,
		logger:     logger,
	}
}

// Aggregate ranks positive and negative keywords across the submitted comments
func (h *KeywordsHandler) Aggregate(w http.ResponseWriter, r *http.Request) {
	var req KeywordsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.logger, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	top, minFreq := h.defaults.Top, h.defaults.MinFrequency
	if req.Top != nil {
		top = *req.Top
	}
	if req.MinFreq != nil {
		minFreq = *req.MinFreq
	}

	result := h.aggregator.Aggregate(req.Texts, top, minFreq)

	if h.events != nil {
		if err := h.events.PublishKeywords(len(req.Texts), len(result.Pos), len(result.Neg)); err != nil {
			h.logger.Warn("failed to publish keywords event", "error", err)
		}
	}

	respondWithJSON(w, http.StatusOK, result)
}
