package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"ashiato/domain"
	"ashiato/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type SpotService interface {
	CreateSpot(ctx context.Context, spot *domain.Spot) (*domain.Spot, error)
	GetSpotByID(ctx context.Context, id uint) (domain.Spot, error)
	GetSpotsByOwner(ctx context.Context, userID uint) ([]domain.Spot, error)
	GetSpotsByList(ctx context.Context, userID uint, listName string) ([]domain.Spot, error)
	GetSpotsByRegion(ctx context.Context, region string) ([]domain.Spot, error)
	UpdateSpot(ctx context.Context, userID uint, spot *domain.Spot) (*domain.Spot, error)
	DeleteSpot(ctx context.Context, userID, id uint) error
}

type SpotHandler struct {
	spotService SpotService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewSpotHandler(spotService SpotService) *SpotHandler {
	return &SpotHandler{
		spotService: spotService,
		validator:   validator.New(),
		timeout:     10 * time.Second,
	}
}

type CreateSpotRequest struct {
	ListName  string `json:"list_name" validate:"required"`
	Region    string `json:"region"`
	PlaceName string `json:"place_name"`
	URL       string `json:"url" validate:"omitempty,url"`
	Comment   string `json:"comment"`
}

type UpdateSpotRequest struct {
	ListName  string `json:"list_name" validate:"required"`
	Region    string `json:"region"`
	PlaceName string `json:"place_name" validate:"required"`
	URL       string `json:"url" validate:"omitempty,url"`
	Comment   string `json:"comment"`
}

func (h *SpotHandler) CreateSpot(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req CreateSpotRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate spot request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	spot := &domain.Spot{
		UserID:    userID,
		ListName:  req.ListName,
		Region:    req.Region,
		PlaceName: req.PlaceName,
		URL:       req.URL,
		Comment:   req.Comment,
	}

	newSpot, err := h.spotService.CreateSpot(ctx, spot)
	if err != nil {
		logger.Error("Failed to create spot", err)
		if err.Error() == "list name is required" ||
			err.Error() == "place name is required" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "spot successfully created",
		"spot":    newSpot,
	})
}

func (h *SpotHandler) GetSpotByID(c echo.Context) error {
	spotID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logger.Error("Invalid spot id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	spot, err := h.spotService.GetSpotByID(ctx, uint(spotID))
	if err != nil {
		if err.Error() == "spot not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully find spot by id",
		"spot":    spot,
	})
}

// GetMySpots lists the authenticated user's spots, optionally filtered by
// list name or region via query params.
func (h *SpotHandler) GetMySpots(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	var (
		spots []domain.Spot
		err   error
	)

	if listName := c.QueryParam("list"); listName != "" {
		spots, err = h.spotService.GetSpotsByList(ctx, userID, listName)
	} else {
		spots, err = h.spotService.GetSpotsByOwner(ctx, userID)
	}
	if err != nil {
		logger.Error("Failed to find spots", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully get spots",
		"spots":   spots,
	})
}

func (h *SpotHandler) GetSpotsByRegion(c echo.Context) error {
	region := c.QueryParam("region")
	if region == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "region is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	spots, err := h.spotService.GetSpotsByRegion(ctx, region)
	if err != nil {
		logger.Error("Failed to find spots by region", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully get spots by region",
		"spots":   spots,
	})
}

func (h *SpotHandler) UpdateSpot(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	spotID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logger.Error("Invalid spot id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req UpdateSpotRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate spot request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	spot := &domain.Spot{
		ID:        uint(spotID),
		ListName:  req.ListName,
		Region:    req.Region,
		PlaceName: req.PlaceName,
		URL:       req.URL,
		Comment:   req.Comment,
	}

	updated, err := h.spotService.UpdateSpot(ctx, userID, spot)
	if err != nil {
		logger.Error("Failed to update spot", err)
		if err.Error() == "spot not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if err.Error() == "spot does not belong to user" {
			return c.JSON(http.StatusForbidden, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully update spot",
		"spot":    updated,
	})
}

func (h *SpotHandler) DeleteSpot(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	spotID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logger.Error("Invalid spot id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.spotService.DeleteSpot(ctx, userID, uint(spotID)); err != nil {
		logger.Error("Failed to delete spot", err)
		if err.Error() == "spot not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if err.Error() == "spot does not belong to user" {
			return c.JSON(http.StatusForbidden, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "spot successfully deleted",
		"spot_id": spotID,
	})
}
