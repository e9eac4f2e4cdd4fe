package store

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/planetaketo/forum-service/internal/models"
)

const (
	commentContentMin = 5
	commentContentMax = 1000
)

// CommentNode is a root comment with its direct replies. The tree is exactly
// two levels deep: replies to replies do not exist.
type CommentNode struct {
	models.ForumComment
	Replies []models.ForumComment `json:"replies"`
}

// CommentTree returns the visible comments of a post: roots newest-first,
// each root's replies oldest-first. Rebuilt in full on every read and after
// every comment mutation.
func (s *Store) CommentTree(ctx context.Context, postID string) ([]CommentNode, error) {
	var roots []models.ForumComment
	err := s.db.WithContext(ctx).
		Where("post_id = ? AND parent_id IS NULL AND is_deleted = ? AND approved = ?", postID, false, true).
		Order("created_at DESC").
		Find(&roots).Error
	if err != nil {
		return nil, err
	}

	var children []models.ForumComment
	err = s.db.WithContext(ctx).
		Where("post_id = ? AND parent_id IS NOT NULL AND is_deleted = ? AND approved = ?", postID, false, true).
		Order("created_at ASC").
		Find(&children).Error
	if err != nil {
		return nil, err
	}

	byParent := make(map[string][]models.ForumComment, len(roots))
	for _, child := range children {
		byParent[*child.ParentID] = append(byParent[*child.ParentID], child)
	}

	tree := make([]CommentNode, 0, len(roots))
	for _, root := range roots {
		replies := byParent[root.ID]
		if replies == nil {
			replies = []models.ForumComment{}
		}
		tree = append(tree, CommentNode{ForumComment: root, Replies: replies})
	}
	return tree, nil
}

func (s *Store) visiblePost(ctx context.Context, postID string) (*models.ForumPost, error) {
	var post models.ForumPost
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", postID, false).
		First(&post).Error
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &post, nil
}

// CreateComment adds a comment (or a depth-1 reply when ParentID is set) and
// returns the created comment plus the rebuilt tree. The comment is
// auto-approved; moderation is after-the-fact.
func (s *Store) CreateComment(ctx context.Context, postID string, req models.CreateCommentRequest) (*models.ForumComment, []CommentNode, error) {
	post, err := s.visiblePost(ctx, postID)
	if err != nil {
		return nil, nil, err
	}
	if post.IsLocked {
		return nil, nil, ErrPostLocked
	}
	if err := validateLength("content", req.Content, commentContentMin, commentContentMax); err != nil {
		return nil, nil, err
	}
	if err := validateAuthor(req.AuthorName, req.AuthorEmail); err != nil {
		return nil, nil, err
	}
	if req.AuthorID == "" {
		return nil, nil, invalid("authorId", "El identificador del autor es obligatorio")
	}

	if req.ParentID != nil {
		var parent models.ForumComment
		err := s.db.WithContext(ctx).
			Where("id = ? AND post_id = ? AND is_deleted = ?", *req.ParentID, postID, false).
			First(&parent).Error
		if err != nil {
			return nil, nil, notFoundOr(err)
		}
		if parent.ParentID != nil {
			return nil, nil, invalid("parentId", "Solo se permite un nivel de respuestas")
		}
	}

	comment := models.ForumComment{
		ID:          newID(KindForumComment),
		PostID:      postID,
		ParentID:    req.ParentID,
		Content:     req.Content,
		AuthorName:  req.AuthorName,
		AuthorEmail: req.AuthorEmail,
		AuthorID:    req.AuthorID,
		Approved:    true,
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, nil, err
	}

	s.bestEffort("reply count resync failed", s.resyncReplyCount(ctx, postID), zap.String("postId", postID))
	s.bestEffort("activity bump failed", s.bumpActivity(ctx, postID), zap.String("postId", postID))

	tree, err := s.CommentTree(ctx, postID)
	if err != nil {
		return nil, nil, err
	}
	return &comment, tree, nil
}

func (s *Store) ownedComment(ctx context.Context, commentID, authorID string) (*models.ForumComment, error) {
	var comment models.ForumComment
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", commentID, false).
		First(&comment).Error
	if err != nil {
		return nil, notFoundOr(err)
	}
	if comment.AuthorID != authorID {
		return nil, ErrNotOwner
	}
	return &comment, nil
}

func (s *Store) UpdateComment(ctx context.Context, commentID string, req models.UpdateCommentRequest) (*models.ForumComment, []CommentNode, error) {
	comment, err := s.ownedComment(ctx, commentID, req.AuthorID)
	if err != nil {
		return nil, nil, err
	}
	if err := validateLength("content", req.Content, commentContentMin, commentContentMax); err != nil {
		return nil, nil, err
	}

	comment.Content = req.Content
	comment.IsEdited = true
	if err := s.db.WithContext(ctx).Save(comment).Error; err != nil {
		return nil, nil, err
	}

	tree, err := s.CommentTree(ctx, comment.PostID)
	if err != nil {
		return nil, nil, err
	}
	return comment, tree, nil
}

func (s *Store) DeleteComment(ctx context.Context, commentID, authorID string) ([]CommentNode, error) {
	comment, err := s.ownedComment(ctx, commentID, authorID)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Model(&models.ForumComment{}).
		Where("id = ?", commentID).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"content":    deletedCommentPlaceholder,
		}).Error
	if err != nil {
		return nil, err
	}

	s.bestEffort("reply count resync failed", s.resyncReplyCount(ctx, comment.PostID), zap.String("postId", comment.PostID))

	return s.CommentTree(ctx, comment.PostID)
}

// LikeComment increments the like counter with a single atomic UPDATE, safe
// under concurrent likers.
func (s *Store) LikeComment(ctx context.Context, commentID string) ([]CommentNode, error) {
	postID, err := s.commentForLike(ctx, commentID)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Model(&models.ForumComment{}).
		Where("id = ?", commentID).
		UpdateColumn("likes", gorm.Expr("likes + 1")).Error
	if err != nil {
		return nil, err
	}
	return s.CommentTree(ctx, postID)
}

// UnlikeComment decrements atomically but never below zero: the likes > 0
// guard makes a surplus unlike a no-op instead of driving the count negative.
func (s *Store) UnlikeComment(ctx context.Context, commentID string) ([]CommentNode, error) {
	postID, err := s.commentForLike(ctx, commentID)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Model(&models.ForumComment{}).
		Where("id = ? AND likes > 0", commentID).
		UpdateColumn("likes", gorm.Expr("likes - 1")).Error
	if err != nil {
		return nil, err
	}
	return s.CommentTree(ctx, postID)
}

func (s *Store) commentForLike(ctx context.Context, commentID string) (string, error) {
	var comment models.ForumComment
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", commentID, false).
		First(&comment).Error
	if err != nil {
		return "", notFoundOr(err)
	}
	return comment.PostID, nil
}
