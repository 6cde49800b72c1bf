package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moodpick/moodpick-backend/internal/domain"
	"github.com/moodpick/moodpick-backend/internal/http/response"
	"github.com/moodpick/moodpick-backend/internal/platform/apierr"
	"github.com/moodpick/moodpick-backend/internal/recommend"
)

type RecommendationHandler struct {
	svc *recommend.Service
}

func NewRecommendationHandler(svc *recommend.Service) *RecommendationHandler {
	return &RecommendationHandler{svc: svc}
}

type recommendReq struct {
	Query string `json:"query"`
}

// POST /api/recommendations
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	var req recommendReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	turn, err := h.svc.Recommend(c.Request.Context(), req.Query)
	if err != nil {
		response.RespondAPIError(c, classifyTurnError(err))
		return
	}
	response.RespondOK(c, gin.H{"turn": turn})
}

func classifyTurnError(err error) *apierr.Error {
	switch {
	case errors.Is(err, domain.ErrEmptyQuery):
		return apierr.New(http.StatusBadRequest, "empty_query", err)
	case errors.Is(err, domain.ErrOracleUnavailable):
		return apierr.New(http.StatusBadGateway, "oracle_unavailable", err)
	default:
		return apierr.New(http.StatusInternalServerError, "recommend_failed", err)
	}
}
