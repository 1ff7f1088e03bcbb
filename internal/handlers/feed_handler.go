package handlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
	"github.com/sociafam/backend/internal/models"
	"github.com/sociafam/backend/internal/repositories"
)

// FeedHandler composes the personalized feed for a viewer
type FeedHandler struct {
	postRepository         repositories.PostRepository
	userRepository         repositories.UserRepository
	relationshipRepository repositories.RelationshipRepository
	likeRepository         repositories.LikeRepository
	commentRepository      repositories.CommentRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	relationshipRepo repositories.RelationshipRepository,
	likeRepo repositories.LikeRepository,
	commentRepo repositories.CommentRepository,
) *FeedHandler {
	return &FeedHandler{
		postRepository:         postRepo,
		userRepository:         userRepo,
		relationshipRepository: relationshipRepo,
		likeRepository:         likeRepo,
		commentRepository:      commentRepo,
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// EnrichedPost is a post with author info and viewer-specific reaction state
type EnrichedPost struct {
	models.Post
	Author         models.UserCompact `json:"author"`
	ViewerLiked    bool               `json:"viewer_liked"`
	ViewerReaction string             `json:"viewer_reaction,omitempty"`
}

// GetFeed returns the posts visible to the viewer: their own plus those of
// accepted friends, newest first, offset-paginated.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}

	friendIDs, err := h.relationshipRepository.AcceptedFriendIDs(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	// The viewer always sees their own posts
	authorIDs := append(friendIDs, currentUserID)

	ctx := c.Request().Context()
	skip := int64((page - 1) * limit)

	posts, err := h.postRepository.GetPostsByAuthors(ctx, authorIDs, skip, int64(limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	totalItems, err := h.postRepository.CountPostsByAuthors(ctx, authorIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Build author summaries for the authors on this page
	pageAuthors := lo.Uniq(lo.Map(posts, func(p models.Post, _ int) uint { return p.UserID }))
	userMap := make(map[uint]models.UserCompact, len(pageAuthors))
	for _, id := range pageAuthors {
		if user, err := h.userRepository.GetUserByID(id); err == nil {
			userMap[id] = user.ToCompact()
		}
	}

	enrichedPosts := make([]EnrichedPost, len(posts))
	for i, p := range posts {
		pid := p.ID.Hex()

		likes, err := h.likeRepository.GetLikesByPostID(pid)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		commentsCount, err := h.commentRepository.CountByPostID(pid)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}

		// Like rows are authoritative; the document counter is display-only
		p.LikesCount = len(likes)
		p.CommentsCount = int(commentsCount)

		enrichedPosts[i] = EnrichedPost{
			Post:   p,
			Author: userMap[p.UserID],
		}
		// At most one like per (user, post), so the first match is the only one
		for _, like := range likes {
			if like.UserID == currentUserID {
				enrichedPosts[i].ViewerLiked = true
				enrichedPosts[i].ViewerReaction = like.Reaction
				break
			}
		}
	}

	totalPages := int(math.Ceil(float64(totalItems) / float64(limit)))

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"posts": enrichedPosts,
		},
		"meta": echo.Map{
			"currentPage":     page,
			"totalPages":      totalPages,
			"totalItems":      totalItems,
			"itemsPerPage":    limit,
			"hasNextPage":     page < totalPages,
			"hasPreviousPage": page > 1,
		},
	})
}
