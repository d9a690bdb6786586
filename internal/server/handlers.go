package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/spacesedan/sentidesk/internal/models"
	"github.com/spacesedan/sentidesk/internal/session"
	"github.com/spacesedan/sentidesk/internal/support"
)

const (
	maxBodyBytes = 64 << 10
	// maxMessageLength is in runes and bounds fuzzy retrieval work per turn.
	maxMessageLength  = 4000
	maxHistoryEntries = 200
)

var (
	errBlankMessage   = errors.New("message is required")
	errMessageTooLong = fmt.Errorf("message is longer than %d characters", maxMessageLength)
	errHistoryTooLong = fmt.Errorf("history has more than %d entries", maxHistoryEntries)
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "analyzer_healthy": s.healthy.Load()})
}

func (s *Server) handleArticles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"articles": s.assistant.Articles()})
}

func (s *Server) handleArticle(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "article id must be an integer"})
		return
	}

	article, ok := s.assistant.Article(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}
	c.JSON(http.StatusOK, article)
}

func (s *Server) handleRAG(c *gin.Context) {
	req, ok := bindChatRequest(c)
	if !ok {
		return
	}

	result := s.assistant.Respond(c.Request.Context(), toTurn(req))
	c.JSON(http.StatusOK, models.NewChatResponse("", result))
}

func (s *Server) handleCreateSession(c *gin.Context) {
	id, err := s.conversation.Start(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"session_id": id})
}

func (s *Server) handleGetSession(c *gin.Context) {
	id := c.Param("id")
	history, err := s.conversation.History(c.Request.Context(), id)
	if errors.Is(err, session.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SessionResponse{SessionID: id, History: history})
}

func (s *Server) handleDeleteSession(c *gin.Context) {
	if err := s.conversation.End(c.Request.Context(), c.Param("id")); err != nil {
		internalError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleSessionMessage(c *gin.Context) {
	req, ok := bindChatRequest(c)
	if !ok {
		return
	}

	id := c.Param("id")
	result, err := s.conversation.Send(c.Request.Context(), id, toTurn(req))
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewChatResponse(id, result))
}

func bindChatRequest(c *gin.Context) (models.ChatRequest, bool) {
	var req models.ChatRequest
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("request body is larger than %d bytes", maxBodyBytes)})
			return req, false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return req, false
	}

	var invalid error
	switch {
	case strings.TrimSpace(req.Message) == "":
		invalid = errBlankMessage
	case utf8.RuneCountInString(req.Message) > maxMessageLength:
		invalid = errMessageTooLong
	case len(req.History) > maxHistoryEntries:
		invalid = errHistoryTooLong
	}
	if invalid != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error()})
		return req, false
	}
	return req.WithDefaults(), true
}

func toTurn(req models.ChatRequest) support.Turn {
	turn := support.Turn{
		Message:  req.Message,
		History:  req.History,
		UserName: req.UserName,
		Category: req.Category,
		Urgency:  req.Urgency,
	}
	if req.Feedback != nil {
		turn.Feedback = *req.Feedback
	}
	return turn
}

func internalError(c *gin.Context, err error) {
	slog.Error("[Server] Request failed",
		slog.String("path", c.FullPath()),
		slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
