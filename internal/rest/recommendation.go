package rest

import (
	"context"
	"net/http"
	"time"

	"ashiato/domain"
	"ashiato/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	RecommendationHandler struct {
		validate              *validator.Validate
		recommendationService RecommendationService
	}

	RecommendationService interface {
		GetPersonalizedRecommendations(ctx context.Context, userID uint, limit int) ([]domain.RecommendationScore, error)
		RecordInteraction(ctx context.Context, userID, spotID uint, interactionType string) error
		UpdateUserPreferences(ctx context.Context, userID uint) error
	}

	RecommendQuery struct {
		N int `query:"n"`
	}

	InteractionRequest struct {
		SpotID          uint   `json:"spot_id" validate:"required"`
		InteractionType string `json:"interaction_type" validate:"required"`
	}
)

func NewRecommendationHandler(svc RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		validate:              validator.New(),
		recommendationService: svc,
	}
}

// GET /api/v1/recommendations?n=10
func (h *RecommendationHandler) Recommend(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var q RecommendQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if q.N <= 0 {
		q.N = 10
	}

	start := time.Now()
	recs, err := h.recommendationService.GetPersonalizedRecommendations(c.Request().Context(), userID, q.N)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	metrics.RecommendLatency.Observe(time.Since(start).Seconds())
	metrics.RecommendRequests.Inc()

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}

// POST /api/v1/recommendations/interactions
func (h *RecommendationHandler) RecordInteraction(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req InteractionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.recommendationService.RecordInteraction(c.Request().Context(), userID, req.SpotID, req.InteractionType); err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("interaction recorded"))
}

// POST /api/v1/recommendations/preferences/refresh
func (h *RecommendationHandler) RefreshPreferences(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	if err := h.recommendationService.UpdateUserPreferences(c.Request().Context(), userID); err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("preferences refreshed"))
}
