package store

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/planetaketo/forum-service/internal/models"
)

const (
	postTitleMin   = 5
	postTitleMax   = 200
	postContentMin = 10
	postContentMax = 5000
)

type PostList struct {
	Posts   []models.ForumPost `json:"posts"`
	Total   int64              `json:"total"`
	HasMore bool               `json:"hasMore"`
}

func (s *Store) publicPosts(ctx context.Context, category string) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&models.ForumPost{}).
		Where("is_deleted = ? AND approved = ?", false, true)
	if category != "" && category != "all" {
		q = q.Where("category = ?", category)
	}
	return q
}

// ListPosts returns a page of visible posts, pinned first, then by most
// recent activity.
func (s *Store) ListPosts(ctx context.Context, category string, limit, offset int) (*PostList, error) {
	maxLimit(&limit, 20, 100)
	if offset < 0 {
		offset = 0
	}

	var total int64
	if err := s.publicPosts(ctx, category).Count(&total).Error; err != nil {
		return nil, err
	}

	var posts []models.ForumPost
	err := s.publicPosts(ctx, category).
		Order("is_pinned DESC").
		Order("last_activity_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []models.ForumPost{}
	}

	return &PostList{
		Posts:   posts,
		Total:   total,
		HasMore: int64(offset+limit) < total,
	}, nil
}

func validatePostFields(title, content, category string) error {
	if err := validateLength("title", title, postTitleMin, postTitleMax); err != nil {
		return err
	}
	if err := validateLength("content", content, postContentMin, postContentMax); err != nil {
		return err
	}
	if category == "" {
		return invalid("category", "La categoría es obligatoria")
	}
	return nil
}

func (s *Store) CreatePost(ctx context.Context, req models.CreatePostRequest) (*models.ForumPost, error) {
	if err := validatePostFields(req.Title, req.Content, req.Category); err != nil {
		return nil, err
	}
	if err := validateAuthor(req.AuthorName, req.AuthorEmail); err != nil {
		return nil, err
	}
	if req.AuthorID == "" {
		return nil, invalid("authorId", "El identificador del autor es obligatorio")
	}

	slug, err := s.allocatePostSlug(ctx, req.Title)
	if err != nil {
		return nil, err
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	post := models.ForumPost{
		ID:             newID(KindForumPost),
		Title:          req.Title,
		Slug:           slug,
		Content:        req.Content,
		AuthorName:     req.AuthorName,
		AuthorEmail:    req.AuthorEmail,
		AuthorID:       req.AuthorID,
		Category:       req.Category,
		Tags:           tags,
		Approved:       true,
		LastActivityAt: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPost returns a visible post with its comment tree and bumps the view
// counter with an atomic increment.
func (s *Store) GetPost(ctx context.Context, postID string) (*models.ForumPost, []CommentNode, error) {
	var post models.ForumPost
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", postID, false).
		First(&post).Error
	if err != nil {
		return nil, nil, notFoundOr(err)
	}

	s.bestEffort("view counter update failed",
		s.db.WithContext(ctx).Model(&models.ForumPost{}).
			Where("id = ?", postID).
			UpdateColumn("views", gorm.Expr("views + 1")).Error,
		zap.String("postId", postID))
	post.Views++

	tree, err := s.CommentTree(ctx, postID)
	if err != nil {
		return nil, nil, err
	}
	return &post, tree, nil
}

func (s *Store) UpdatePost(ctx context.Context, req models.UpdatePostRequest) (*models.ForumPost, error) {
	var post models.ForumPost
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", req.PostID, false).
		First(&post).Error
	if err != nil {
		return nil, notFoundOr(err)
	}
	if post.AuthorID != req.AuthorID {
		return nil, ErrNotOwner
	}
	if err := validatePostFields(req.Title, req.Content, req.Category); err != nil {
		return nil, err
	}

	post.Title = req.Title
	post.Content = req.Content
	post.Category = req.Category
	if req.Tags != nil {
		post.Tags = req.Tags
	}
	post.IsEdited = true
	if err := s.db.WithContext(ctx).Save(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost soft-deletes: the row stays, content becomes a placeholder.
func (s *Store) DeletePost(ctx context.Context, postID, authorID string) error {
	var post models.ForumPost
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", postID, false).
		First(&post).Error
	if err != nil {
		return notFoundOr(err)
	}
	if post.AuthorID != authorID {
		return ErrNotOwner
	}
	return s.db.WithContext(ctx).Model(&models.ForumPost{}).
		Where("id = ?", postID).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"content":    deletedPostPlaceholder,
		}).Error
}

func (s *Store) bumpActivity(ctx context.Context, postID string) error {
	return s.db.WithContext(ctx).Model(&models.ForumPost{}).
		Where("id = ?", postID).
		UpdateColumn("last_activity_at", time.Now().UTC()).Error
}
