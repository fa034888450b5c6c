package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sakhi-health/toxiscan/internal/application/scoring"
	"github.com/sakhi-health/toxiscan/internal/infrastructure/monitoring/logging"
)

// ToxicityHandler serves product toxicity scoring requests.
type ToxicityHandler struct {
	scorer *scoring.Scorer
	logger logging.Logger
}

// NewToxicityHandler builds a handler over the scorer.
func NewToxicityHandler(scorer *scoring.Scorer, logger logging.Logger) *ToxicityHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &ToxicityHandler{scorer: scorer, logger: logger.Named("handler.toxicity")}
}

// Score handles POST /api/v1/toxicity/score.  The request body is a
// scoring.Request; the response is the full toxicity score.
func (h *ToxicityHandler) Score(c *gin.Context) {
	var req scoring.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	score, err := h.scorer.ScoreProduct(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, score)
}
