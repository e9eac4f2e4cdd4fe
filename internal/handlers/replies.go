package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/planetaketo/forum-service/internal/models"
	"github.com/planetaketo/forum-service/internal/store"
)

type ReplyHandler struct {
	store *store.Store
}

func NewReplyHandler(st *store.Store) *ReplyHandler {
	return &ReplyHandler{store: st}
}

func (h *ReplyHandler) GetReplies(c *gin.Context) {
	postID := c.Query("postId")
	if postID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El parámetro postId es obligatorio"})
		return
	}

	replies, err := h.store.ListReplies(c.Request.Context(), postID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"replies": replies})
}

func (h *ReplyHandler) CreateReply(c *gin.Context) {
	var input models.CreateReplyRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cuerpo de la solicitud no válido"})
		return
	}
	if input.PostID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "postId es obligatorio"})
		return
	}

	reply, err := h.store.CreateReply(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Respuesta publicada exitosamente",
		"reply":   reply,
	})
}

func (h *ReplyHandler) UpdateReply(c *gin.Context) {
	var input models.UpdateReplyRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cuerpo de la solicitud no válido"})
		return
	}
	if input.ReplyID == "" || input.AuthorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "replyId y authorId son obligatorios"})
		return
	}

	reply, err := h.store.UpdateReply(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Respuesta actualizada exitosamente",
		"reply":   reply,
	})
}

func (h *ReplyHandler) DeleteReply(c *gin.Context) {
	var input models.DeleteReplyRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cuerpo de la solicitud no válido"})
		return
	}
	if input.ReplyID == "" || input.AuthorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "replyId y authorId son obligatorios"})
		return
	}

	if err := h.store.DeleteReply(c.Request.Context(), input); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Respuesta eliminada exitosamente"})
}
