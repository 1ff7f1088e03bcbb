package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sociafam/backend/internal/models"
	"github.com/sociafam/backend/internal/repositories"
	"github.com/sociafam/backend/pkg/logger"
)

// LikeHandler handles HTTP requests related to post reactions
type LikeHandler struct {
	likeRepository repositories.LikeRepository
	postRepository repositories.PostRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeRepo repositories.LikeRepository, postRepo repositories.PostRepository) *LikeHandler {
	return &LikeHandler{
		likeRepository: likeRepo,
		postRepository: postRepo,
	}
}

// RegisterLikeRoutes registers reaction-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/reactions", h.ReactToPost)
	g.GET("/posts/:post_id/reactions", h.GetReactions)
}

// ReactToPost applies a reaction with toggle semantics: reacting with the
// current kind removes it, a different kind replaces it, none adds it.
func (h *LikeHandler) ReactToPost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	postID := c.Param("post_id")

	var req models.ReactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Verify post exists
	if _, err := h.postRepository.GetPostByID(c.Request().Context(), postID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	result, err := h.likeRepository.Toggle(postID, currentUserID, req.Reaction)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Sync the display counter on the post document
	if err := h.postRepository.SetLikesCount(c.Request().Context(), postID, result.LikesCount); err != nil {
		logger.Warnf("failed to sync likes count for post %s: %v", postID, err)
	}

	return c.JSON(http.StatusOK, result)
}

// GetReactions returns per-kind reaction counts and the viewer's own state
func (h *LikeHandler) GetReactions(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	postID := c.Param("post_id")

	// Verify post exists
	if _, err := h.postRepository.GetPostByID(c.Request().Context(), postID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	likes, err := h.likeRepository.GetLikesByPostID(postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	counts := make(map[string]int)
	viewerReaction := ""
	for _, like := range likes {
		counts[like.Reaction]++
		if like.UserID == currentUserID {
			viewerReaction = like.Reaction
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"post_id":         postID,
		"likes_count":     len(likes),
		"reactions":       counts,
		"viewer_liked":    viewerReaction != "",
		"viewer_reaction": viewerReaction,
	})
}
