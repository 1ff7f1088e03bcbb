package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sociafam/backend/internal/models"
	"github.com/sociafam/backend/internal/repositories"
	"github.com/sociafam/backend/pkg/logger"
	"github.com/sociafam/backend/pkg/redis"
)

// MessageHandler handles direct-message HTTP requests
type MessageHandler struct {
	messageRepository repositories.MessageRepository
	userRepository    repositories.UserRepository
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageRepo repositories.MessageRepository, userRepo repositories.UserRepository) *MessageHandler {
	return &MessageHandler{
		messageRepository: messageRepo,
		userRepository:    userRepo,
	}
}

// RegisterMessageRoutes registers message-related routes
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.POST("/messages", h.SendMessage)
	g.GET("/messages/unread-count", h.GetUnreadCount)
	g.GET("/messages/:user_id", h.GetConversation)
	g.PUT("/messages/:user_id/read", h.MarkConversationRead)
}

// SendMessage stores a direct message to another user
func (h *MessageHandler) SendMessage(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if req.ReceiverID == currentUserID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot message yourself")
	}

	if _, err := h.userRepository.GetUserByID(req.ReceiverID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Receiver not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	message := &models.Message{
		SenderID:   currentUserID,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
	}
	if err := h.messageRepository.CreateMessage(message); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Advisory counter; SQL stays authoritative
	if err := redis.IncrementUnreadCount(req.ReceiverID); err != nil {
		logger.Warnf("failed to bump unread counter for user %d: %v", req.ReceiverID, err)
	}

	return c.JSON(http.StatusCreated, message)
}

// GetConversation lists the messages exchanged with another user, oldest first
func (h *MessageHandler) GetConversation(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	otherID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 200 {
		limit = 50
	}

	messages, err := h.messageRepository.GetConversation(currentUserID, uint(otherID), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, messages)
}

// GetUnreadCount returns the number of unread messages for the viewer,
// served from Redis when available
func (h *MessageHandler) GetUnreadCount(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if count, err := redis.GetUnreadCount(currentUserID); err == nil && count >= 0 {
		return c.JSON(http.StatusOK, echo.Map{"count": count})
	}

	count, err := h.messageRepository.GetUnreadCount(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := redis.SetUnreadCount(currentUserID, count); err != nil {
		logger.Debugf("failed to seed unread counter for user %d: %v", currentUserID, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"count": count})
}

// MarkConversationRead marks every message from another user as read
func (h *MessageHandler) MarkConversationRead(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	otherID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if err := h.messageRepository.MarkConversationRead(currentUserID, uint(otherID)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := redis.ResetUnreadCount(currentUserID); err != nil {
		logger.Debugf("failed to reset unread counter for user %d: %v", currentUserID, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
