package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/planetaketo/forum-service/internal/models"
	"github.com/planetaketo/forum-service/internal/store"
)

type CommentHandler struct {
	store *store.Store
}

func NewCommentHandler(st *store.Store) *CommentHandler {
	return &CommentHandler{store: st}
}

// GetComments returns the two-level comment tree for a post.
func (h *CommentHandler) GetComments(c *gin.Context) {
	postID := c.Param("postId")

	tree, err := h.store.CommentTree(c.Request.Context(), postID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": tree})
}

// CreateComment adds a comment or a one-level reply. The response carries
// the rebuilt tree so clients never merge incrementally.
func (h *CommentHandler) CreateComment(c *gin.Context) {
	postID := c.Param("postId")

	var input models.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cuerpo de la solicitud no válido"})
		return
	}

	comment, tree, err := h.store.CreateComment(c.Request.Context(), postID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Comentario publicado exitosamente",
		"comment":  comment,
		"comments": tree,
	})
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	commentID := c.Param("commentId")

	var input models.UpdateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cuerpo de la solicitud no válido"})
		return
	}
	if input.AuthorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "authorId es obligatorio"})
		return
	}

	comment, tree, err := h.store.UpdateComment(c.Request.Context(), commentID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Comentario actualizado exitosamente",
		"comment":  comment,
		"comments": tree,
	})
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID := c.Param("commentId")

	var input struct {
		AuthorID string `json:"authorId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.AuthorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "authorId es obligatorio"})
		return
	}

	tree, err := h.store.DeleteComment(c.Request.Context(), commentID, input.AuthorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Comentario eliminado exitosamente",
		"comments": tree,
	})
}

// LikeComment applies an atomic increment at the store level.
func (h *CommentHandler) LikeComment(c *gin.Context) {
	commentID := c.Param("commentId")

	tree, err := h.store.LikeComment(c.Request.Context(), commentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": tree})
}

// UnlikeComment decrements, clamped at zero.
func (h *CommentHandler) UnlikeComment(c *gin.Context) {
	commentID := c.Param("commentId")

	tree, err := h.store.UnlikeComment(c.Request.Context(), commentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": tree})
}
