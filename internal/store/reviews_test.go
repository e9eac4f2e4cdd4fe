package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planetaketo/forum-service/internal/models"
)

func validRecipeCommentRequest(recipeID string, rating int) models.CreateRecipeCommentRequest {
	return models.CreateRecipeCommentRequest{
		RecipeID:    recipeID,
		Content:     "El pan quedó esponjoso y con muy buen sabor.",
		AuthorName:  "Carmen Soto",
		AuthorEmail: "carmen@example.com",
		Rating:      &rating,
	}
}

func TestCreateRecipeComment_RecomputesRating(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	recipe := seedRecipe(t, s, "recipe-pan")

	for _, rating := range []int{5, 4, 3} {
		_, err := s.CreateRecipeComment(ctx, validRecipeCommentRequest(recipe.ID, rating))
		require.NoError(t, err)
	}

	// An unrated comment contributes text but never skews the aggregates.
	req := validRecipeCommentRequest(recipe.ID, 0)
	req.Rating = nil
	_, err := s.CreateRecipeComment(ctx, req)
	require.NoError(t, err)

	var stored models.Recipe
	require.NoError(t, s.db.First(&stored, "id = ?", recipe.ID).Error)
	assert.Equal(t, 4.0, stored.AverageRating)
	assert.Equal(t, 3, stored.TotalRatings)
}

func TestCreateRecipeComment_RatingBounds(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	recipe := seedRecipe(t, s, "recipe-pan")

	for _, rating := range []int{0, 6} {
		_, err := s.CreateRecipeComment(ctx, validRecipeCommentRequest(recipe.ID, rating))
		require.Error(t, err, "rating %d", rating)
		assert.True(t, IsValidation(err), "rating %d", rating)
	}
	for _, rating := range []int{1, 5} {
		_, err := s.CreateRecipeComment(ctx, validRecipeCommentRequest(recipe.ID, rating))
		assert.NoError(t, err, "rating %d", rating)
	}
}

func TestCreateRecipeComment_UnknownRecipe(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateRecipeComment(context.Background(), validRecipeCommentRequest("recipe-missing", 5))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecipeRating_ExcludesModeratedComments(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	recipe := seedRecipe(t, s, "recipe-pan")

	low, err := s.CreateRecipeComment(ctx, validRecipeCommentRequest(recipe.ID, 1))
	require.NoError(t, err)
	_, err = s.CreateRecipeComment(ctx, validRecipeCommentRequest(recipe.ID, 5))
	require.NoError(t, err)

	require.NoError(t, s.Moderate(ctx, low.ID, "", ActionDelete))

	var stored models.Recipe
	require.NoError(t, s.db.First(&stored, "id = ?", recipe.ID).Error)
	assert.Equal(t, 5.0, stored.AverageRating)
	assert.Equal(t, 1, stored.TotalRatings)
}

func TestListRecipeComments_HidesDeleted(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	recipe := seedRecipe(t, s, "recipe-pan")

	kept, err := s.CreateRecipeComment(ctx, validRecipeCommentRequest(recipe.ID, 4))
	require.NoError(t, err)
	removed, err := s.CreateRecipeComment(ctx, validRecipeCommentRequest(recipe.ID, 2))
	require.NoError(t, err)
	require.NoError(t, s.Moderate(ctx, removed.ID, "", ActionDelete))

	comments, err := s.ListRecipeComments(ctx, recipe.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, kept.ID, comments[0].ID)
}

func TestBlogComments(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	post := seedBlogPost(t, s, "blog-cetosis")

	comment, err := s.CreateBlogComment(ctx, models.CreateBlogCommentRequest{
		PostID:      post.ID,
		Content:     "Muy claro, por fin entiendo la cetosis.",
		AuthorName:  "Diego Alonso",
		AuthorEmail: "diego@example.com",
	})
	require.NoError(t, err)
	assert.True(t, comment.Approved)

	comments, err := s.ListBlogComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, comment.ID, comments[0].ID)

	_, err = s.CreateBlogComment(ctx, models.CreateBlogCommentRequest{
		PostID:      "blog-missing",
		Content:     "Comentario a un artículo inexistente.",
		AuthorName:  "Diego Alonso",
		AuthorEmail: "diego@example.com",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}
