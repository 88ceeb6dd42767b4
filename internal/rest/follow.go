package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"ashiato/domain"
	"ashiato/pkg/logger"

	"github.com/labstack/echo/v4"
)

type FollowService interface {
	Follow(ctx context.Context, followerID, followingID uint) error
	Unfollow(ctx context.Context, followerID, followingID uint) error
	GetFollowing(ctx context.Context, userID uint) ([]domain.User, error)
	GetFollowers(ctx context.Context, userID uint) ([]domain.User, error)
}

type FollowHandler struct {
	followService FollowService
	timeout       time.Duration
}

func NewFollowHandler(followService FollowService) *FollowHandler {
	return &FollowHandler{
		followService: followService,
		timeout:       10 * time.Second,
	}
}

func (h *FollowHandler) Follow(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	followingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logger.Error("Invalid user id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.followService.Follow(ctx, userID, uint(followingID)); err != nil {
		logger.Error("Failed to follow user", err)
		if err.Error() == "cannot follow yourself" || err.Error() == "already following" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		if err.Error() == "user not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":      "successfully followed user",
		"following_id": followingID,
	})
}

func (h *FollowHandler) Unfollow(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	followingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logger.Error("Invalid user id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.followService.Unfollow(ctx, userID, uint(followingID)); err != nil {
		logger.Error("Failed to unfollow user", err)
		if err.Error() == "follow not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":      "successfully unfollowed user",
		"following_id": followingID,
	})
}

func (h *FollowHandler) GetFollowing(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	users, err := h.followService.GetFollowing(ctx, userID)
	if err != nil {
		logger.Error("Failed to get following", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "successfully get following",
		"following": users,
	})
}

func (h *FollowHandler) GetFollowers(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	users, err := h.followService.GetFollowers(ctx, userID)
	if err != nil {
		logger.Error("Failed to get followers", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "successfully get followers",
		"followers": users,
	})
}
