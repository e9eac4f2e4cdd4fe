package handlers

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/planetaketo/forum-service/internal/analytics"
	"github.com/planetaketo/forum-service/internal/store"
)

// Handler combines all handler types
type Handler struct {
	Forum      *ForumHandler
	Comment    *CommentHandler
	Reply      *ReplyHandler
	Review     *ReviewHandler
	Moderation *ModerationHandler
	Analytics  *AnalyticsHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(st *store.Store, recorder *analytics.Recorder) *Handler {
	return &Handler{
		Forum:      NewForumHandler(st),
		Comment:    NewCommentHandler(st),
		Reply:      NewReplyHandler(st),
		Review:     NewReviewHandler(st),
		Moderation: NewModerationHandler(st),
		Analytics:  NewAnalyticsHandler(recorder),
	}
}

// respondError maps store errors onto the uniform {"error": string} envelope.
func respondError(c *gin.Context, err error) {
	switch {
	case store.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrInvalidAction), errors.Is(err, store.ErrNeedsContent):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotOwner), errors.Is(err, store.ErrPostLocked):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
	}
}

// RequireToken guards administrative endpoints with a bearer token compared
// against an environment-configured secret. An empty secret denies everyone.
func RequireToken(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		supplied, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || token == "" ||
			subtle.ConstantTimeCompare([]byte(supplied), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No autorizado"})
			return
		}
		c.Next()
	}
}
