package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/planetaketo/forum-service/internal/models"
	"github.com/planetaketo/forum-service/internal/store"
)

type ForumHandler struct {
	store *store.Store
}

func NewForumHandler(st *store.Store) *ForumHandler {
	return &ForumHandler{store: st}
}

// GetPosts returns a page of forum posts, optionally filtered by category.
func (h *ForumHandler) GetPosts(c *gin.Context) {
	category := c.DefaultQuery("category", "all")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := h.store.ListPosts(c.Request.Context(), category, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// GetPost returns a single post with its comment tree and counts the view.
func (h *ForumHandler) GetPost(c *gin.Context) {
	postID := c.Param("postId")

	post, tree, err := h.store.GetPost(c.Request.Context(), postID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"post":     post,
		"comments": tree,
	})
}

func (h *ForumHandler) CreatePost(c *gin.Context) {
	var input models.CreatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cuerpo de la solicitud no válido"})
		return
	}

	post, err := h.store.CreatePost(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Publicación creada exitosamente",
		"post":    post,
	})
}

func (h *ForumHandler) UpdatePost(c *gin.Context) {
	var input models.UpdatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cuerpo de la solicitud no válido"})
		return
	}
	if input.PostID == "" || input.AuthorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "postId y authorId son obligatorios"})
		return
	}

	post, err := h.store.UpdatePost(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Publicación actualizada exitosamente",
		"post":    post,
	})
}

func (h *ForumHandler) DeletePost(c *gin.Context) {
	var input models.DeletePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cuerpo de la solicitud no válido"})
		return
	}
	if input.PostID == "" || input.AuthorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "postId y authorId son obligatorios"})
		return
	}

	if err := h.store.DeletePost(c.Request.Context(), input.PostID, input.AuthorID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Publicación eliminada exitosamente"})
}

// Search substring-matches posts (and parent posts of matching replies).
func (h *ForumHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El parámetro q es obligatorio"})
		return
	}
	category := c.DefaultQuery("category", "all")

	posts, err := h.store.SearchPosts(c.Request.Context(), query, category)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": posts,
		"total": len(posts),
	})
}
