package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sociafam/backend/internal/models"
	"github.com/sociafam/backend/internal/repositories"
)

// FriendshipHandler handles HTTP requests related to the friendship graph
type FriendshipHandler struct {
	relationshipRepository repositories.RelationshipRepository
	userRepository         repositories.UserRepository
}

// NewFriendshipHandler creates a new FriendshipHandler
func NewFriendshipHandler(relationshipRepo repositories.RelationshipRepository, userRepo repositories.UserRepository) *FriendshipHandler {
	return &FriendshipHandler{
		relationshipRepository: relationshipRepo,
		userRepository:         userRepo,
	}
}

// RegisterFriendshipRoutes registers friendship-related routes
func (h *FriendshipHandler) RegisterFriendshipRoutes(g *echo.Group) {
	g.POST("/friends/request", h.SendFriendRequest)
	g.GET("/friends/requests/pending", h.GetPendingFriendRequests)
	g.PUT("/friends/request/:id/accept", h.AcceptFriendRequest)
	g.GET("/friends", h.GetFriends)
	g.DELETE("/friends/:id", h.DeleteFriend) // Unfriend
	g.PUT("/friends/:id/close", h.SetCloseFriend)
}

// SendFriendRequest handles sending a friend request. The pending row and
// the target's notification are created together or not at all.
func (h *FriendshipHandler) SendFriendRequest(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateFriendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	initiator, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Authenticated user not found in database")
	}

	// Check if the target exists
	if _, err := h.userRepository.GetUserByID(req.FriendID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Target user not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	relationship, err := h.relationshipRepository.SendRequest(initiator, req.FriendID)
	if err != nil {
		var conflict *repositories.ConflictError
		switch {
		case errors.Is(err, repositories.ErrSelfRequest):
			return echo.NewHTTPError(http.StatusBadRequest, "Cannot send a friend request to yourself")
		case errors.As(err, &conflict):
			return echo.NewHTTPError(http.StatusConflict, echo.Map{
				"message": conflict.Error(),
				"state":   conflict.State,
			})
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, relationship)
}

// PendingFriendRequest is a pending request with its sender attached
type PendingFriendRequest struct {
	models.Relationship
	Sender models.UserCompact `json:"sender"`
}

// GetPendingFriendRequests retrieves pending friend requests targeting the
// authenticated user
func (h *FriendshipHandler) GetPendingFriendRequests(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	requests, err := h.relationshipRepository.GetPendingRequests(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	enriched := make([]PendingFriendRequest, len(requests))
	for i, req := range requests {
		enriched[i] = PendingFriendRequest{Relationship: req}
		if sender, err := h.userRepository.GetUserByID(req.UserID); err == nil {
			enriched[i].Sender = sender.ToCompact()
		}
	}

	return c.JSON(http.StatusOK, enriched)
}

// AcceptFriendRequest accepts a pending friend request. Only the target of
// the request may accept it.
func (h *FriendshipHandler) AcceptFriendRequest(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request ID")
	}

	relationship, err := h.relationshipRepository.AcceptRequest(currentUserID, uint(requestID))
	if err != nil {
		var conflict *repositories.ConflictError
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Friend request not found")
		case errors.Is(err, repositories.ErrUnauthorized):
			return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to accept this friend request")
		case errors.As(err, &conflict):
			return echo.NewHTTPError(http.StatusConflict, echo.Map{
				"message": conflict.Error(),
				"state":   conflict.State,
			})
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, relationship)
}

// GetFriends retrieves the list of friends for the authenticated user
func (h *FriendshipHandler) GetFriends(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	friends, err := h.relationshipRepository.GetFriends(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, friends)
}

// DeleteFriend handles unfriending (deleting an accepted relationship)
func (h *FriendshipHandler) DeleteFriend(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	friendUserID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid friend user ID")
	}

	if err := h.relationshipRepository.Unfriend(currentUserID, uint(friendUserID)); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Friendship not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// SetCloseFriend toggles the close-friend flag on an accepted friendship
func (h *FriendshipHandler) SetCloseFriend(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	friendUserID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid friend user ID")
	}

	var req struct {
		IsCloseFriend bool `json:"is_close_friend"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	if err := h.relationshipRepository.SetCloseFriend(currentUserID, uint(friendUserID), req.IsCloseFriend); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Friendship not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"friend_id": friendUserID, "is_close_friend": req.IsCloseFriend})
}
