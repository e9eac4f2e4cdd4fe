package store

import (
	"context"
	"database/sql"
	"math"

	"go.uber.org/zap"

	"github.com/planetaketo/forum-service/internal/models"
)

func (s *Store) ListRecipeComments(ctx context.Context, recipeID string) ([]models.RecipeComment, error) {
	var comments []models.RecipeComment
	err := s.db.WithContext(ctx).
		Where("recipe_id = ? AND is_deleted = ? AND approved = ?", recipeID, false, true).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []models.RecipeComment{}
	}
	return comments, nil
}

// CreateRecipeComment stores an auto-approved comment and recomputes the
// recipe's rating aggregates from scratch.
func (s *Store) CreateRecipeComment(ctx context.Context, req models.CreateRecipeCommentRequest) (*models.RecipeComment, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).Where("id = ?", req.RecipeID).First(&recipe).Error; err != nil {
		return nil, notFoundOr(err)
	}
	if err := validateLength("content", req.Content, commentContentMin, commentContentMax); err != nil {
		return nil, err
	}
	if err := validateAuthor(req.AuthorName, req.AuthorEmail); err != nil {
		return nil, err
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		return nil, invalid("rating", "La valoración debe ser un número entero entre 1 y 5")
	}

	comment := models.RecipeComment{
		ID:          newID(KindRecipeComment),
		RecipeID:    req.RecipeID,
		Content:     req.Content,
		AuthorName:  req.AuthorName,
		AuthorEmail: req.AuthorEmail,
		Rating:      req.Rating,
		Approved:    true,
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, err
	}

	s.bestEffort("rating recompute failed", s.recomputeRecipeRating(ctx, req.RecipeID), zap.String("recipeId", req.RecipeID))

	return &comment, nil
}

// recomputeRecipeRating rebuilds averageRating (mean over approved,
// non-deleted, rated comments, rounded to one decimal) and totalRatings.
func (s *Store) recomputeRecipeRating(ctx context.Context, recipeID string) error {
	row := s.db.WithContext(ctx).Model(&models.RecipeComment{}).
		Select("AVG(rating), COUNT(rating)").
		Where("recipe_id = ? AND is_deleted = ? AND approved = ? AND rating IS NOT NULL", recipeID, false, true).
		Row()

	var avg sql.NullFloat64
	var total int64
	if err := row.Scan(&avg, &total); err != nil {
		return err
	}

	average := 0.0
	if avg.Valid {
		average = math.Round(avg.Float64*10) / 10
	}

	return s.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("id = ?", recipeID).
		Updates(map[string]interface{}{
			"average_rating": average,
			"total_ratings":  total,
		}).Error
}

func (s *Store) ListBlogComments(ctx context.Context, postID string) ([]models.BlogComment, error) {
	var comments []models.BlogComment
	err := s.db.WithContext(ctx).
		Where("post_id = ? AND is_deleted = ? AND approved = ?", postID, false, true).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []models.BlogComment{}
	}
	return comments, nil
}

func (s *Store) CreateBlogComment(ctx context.Context, req models.CreateBlogCommentRequest) (*models.BlogComment, error) {
	var post models.BlogPost
	if err := s.db.WithContext(ctx).Where("id = ?", req.PostID).First(&post).Error; err != nil {
		return nil, notFoundOr(err)
	}
	if err := validateLength("content", req.Content, commentContentMin, commentContentMax); err != nil {
		return nil, err
	}
	if err := validateAuthor(req.AuthorName, req.AuthorEmail); err != nil {
		return nil, err
	}

	comment := models.BlogComment{
		ID:          newID(KindBlogComment),
		PostID:      req.PostID,
		Content:     req.Content,
		AuthorName:  req.AuthorName,
		AuthorEmail: req.AuthorEmail,
		Approved:    true,
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}
