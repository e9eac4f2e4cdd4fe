package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/planetaketo/forum-service/internal/models"
	"github.com/planetaketo/forum-service/internal/store"
)

type ReviewHandler struct {
	store *store.Store
}

func NewReviewHandler(st *store.Store) *ReviewHandler {
	return &ReviewHandler{store: st}
}

func (h *ReviewHandler) GetRecipeComments(c *gin.Context) {
	recipeID := c.Query("recipeId")
	if recipeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El parámetro recipeId es obligatorio"})
		return
	}

	comments, err := h.store.ListRecipeComments(c.Request.Context(), recipeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// CreateRecipeComment records a recipe comment and refreshes the recipe's
// averageRating/totalRatings aggregates.
func (h *ReviewHandler) CreateRecipeComment(c *gin.Context) {
	var input models.CreateRecipeCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cuerpo de la solicitud no válido"})
		return
	}
	if input.RecipeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipeId es obligatorio"})
		return
	}

	comment, err := h.store.CreateRecipeComment(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Comentario publicado exitosamente",
		"comment": comment,
	})
}

func (h *ReviewHandler) GetBlogComments(c *gin.Context) {
	postID := c.Query("postId")
	if postID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El parámetro postId es obligatorio"})
		return
	}

	comments, err := h.store.ListBlogComments(c.Request.Context(), postID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

func (h *ReviewHandler) CreateBlogComment(c *gin.Context) {
	var input models.CreateBlogCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cuerpo de la solicitud no válido"})
		return
	}
	if input.PostID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "postId es obligatorio"})
		return
	}

	comment, err := h.store.CreateBlogComment(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Comentario publicado exitosamente",
		"comment": comment,
	})
}
