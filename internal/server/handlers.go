// Package server exposes the mapping engine over HTTP.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"github.com/trilhasedu/interest-engine/internal/catalog"
	"github.com/trilhasedu/interest-engine/internal/database"
	"github.com/trilhasedu/interest-engine/internal/engine"
	apperrors "github.com/trilhasedu/interest-engine/internal/errors"
	"github.com/trilhasedu/interest-engine/internal/monitoring"
)

// Handler bundles the engine with its HTTP collaborators. The repository
// is optional; without it mappings are served but not persisted.
type Handler struct {
	engine  *engine.Engine
	catalog *catalog.Catalog
	repo    *database.Repository
	logger  *monitoring.Logger
	metrics *monitoring.Metrics
}

// NewHandler creates the handler set.
func NewHandler(eng *engine.Engine, cat *catalog.Catalog, repo *database.Repository, logger *monitoring.Logger, metrics *monitoring.Metrics) *Handler {
	return &Handler{
		engine:  eng,
		catalog: cat,
		repo:    repo,
		logger:  logger,
		metrics: metrics,
	}
}

// SubmitRequest is the mapping submission payload.
type SubmitRequest struct {
	Responses    []catalog.Response `json:"responses" binding:"required"`
	TextResponse string             `json:"text_response"`
}

// Health reports service liveness and whether the text channel is up.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"text_enabled": h.engine.TextEnabled(),
		"uptime":       time.Since(h.metrics.StartTime).String(),
	})
}

// Questions returns the questionnaire in declaration order.
func (h *Handler) Questions(c *gin.Context) {
	questions := h.catalog.Ordered()
	c.JSON(http.StatusOK, gin.H{
		"questions":       questions,
		"total_questions": len(questions),
	})
}

// Submit validates and scores a full submission.
func (h *Handler) Submit(c *gin.Context) {
	start := time.Now()

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.IncrementValidationFailure()
		apperrors.RespondWithError(c, apperrors.NewValidationError("invalid request body", map[string]string{
			"body": err.Error(),
		}))
		return
	}

	// Bound enforced here so the engine never sees unbounded input.
	if len(req.TextResponse) > 5000 {
		h.metrics.IncrementValidationFailure()
		apperrors.RespondWithError(c, apperrors.NewValidationError("text response exceeds 5000 characters", nil))
		return
	}

	result, err := h.engine.MapInterests(c.Request.Context(), h.catalog, req.Responses, req.TextResponse)
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok && appErr.Category == apperrors.CategoryValidation {
			h.metrics.IncrementValidationFailure()
		} else {
			h.metrics.IncrementError()
		}
		apperrors.RespondWithError(c, err)
		return
	}

	textUsed := len(result.TextScores) > 0
	h.metrics.IncrementMapping(textUsed)
	h.logger.MappingLogger(result.RecommendedArea, result.Confidence, result.TextQuality, textUsed, time.Since(start))

	if h.repo != nil {
		h.persist(c.ClientIP(), result)
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) persist(clientKey string, result *engine.MappingResult) {
	payload, err := json.Marshal(result)
	if err != nil {
		h.logger.Error("failed to encode mapping for storage", "error", err)
		return
	}
	rec := database.NewMappingRecord(clientKey, result.RecommendedArea, result.Confidence, result.TextQuality, string(payload))
	if err := h.repo.SaveMapping(rec); err != nil {
		// Persistence is best effort; the learner still gets the result.
		h.logger.Error("failed to save mapping record", "error", err)
	}
}

// History returns the caller's recent mappings.
func (h *Handler) History(c *gin.Context) {
	if h.repo == nil {
		c.JSON(http.StatusOK, gin.H{"mappings": []any{}})
		return
	}
	records, err := h.repo.ListByClient(c.ClientIP(), 20)
	if err != nil {
		h.metrics.IncrementError()
		apperrors.RespondWithError(c, apperrors.NewInternalError("failed to load mapping history", err))
		return
	}

	out := make([]gin.H, 0, len(records))
	for _, rec := range records {
		var result engine.MappingResult
		if err := json.Unmarshal([]byte(rec.ResultJSON), &result); err != nil {
			h.logger.Warn("skipping unreadable mapping record", "id", rec.ID, "error", err)
			continue
		}
		out = append(out, gin.H{
			"id":         rec.ID,
			"result":     result,
			"created_at": rec.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"mappings": out})
}

// Stats exposes in-process counters.
func (h *Handler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.metrics.Snapshot())
}
