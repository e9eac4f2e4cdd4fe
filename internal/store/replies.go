package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/planetaketo/forum-service/internal/models"
)

const (
	replyContentMin = 5
	replyContentMax = 2000
)

// ListReplies returns the visible replies of a post, oldest first.
func (s *Store) ListReplies(ctx context.Context, postID string) ([]models.ForumReply, error) {
	var replies []models.ForumReply
	err := s.db.WithContext(ctx).
		Where("post_id = ? AND is_deleted = ? AND approved = ?", postID, false, true).
		Order("created_at ASC").
		Find(&replies).Error
	if err != nil {
		return nil, err
	}
	if replies == nil {
		replies = []models.ForumReply{}
	}
	return replies, nil
}

func (s *Store) CreateReply(ctx context.Context, req models.CreateReplyRequest) (*models.ForumReply, error) {
	post, err := s.visiblePost(ctx, req.PostID)
	if err != nil {
		return nil, err
	}
	if post.IsLocked {
		return nil, ErrPostLocked
	}
	if err := validateLength("content", req.Content, replyContentMin, replyContentMax); err != nil {
		return nil, err
	}
	if err := validateAuthor(req.AuthorName, req.AuthorEmail); err != nil {
		return nil, err
	}
	if req.AuthorID == "" {
		return nil, invalid("authorId", "El identificador del autor es obligatorio")
	}

	reply := models.ForumReply{
		ID:          newID(KindForumReply),
		PostID:      req.PostID,
		Content:     req.Content,
		AuthorName:  req.AuthorName,
		AuthorEmail: req.AuthorEmail,
		AuthorID:    req.AuthorID,
		Approved:    true,
	}
	if err := s.db.WithContext(ctx).Create(&reply).Error; err != nil {
		return nil, err
	}

	s.bestEffort("reply count resync failed", s.resyncReplyCount(ctx, req.PostID), zap.String("postId", req.PostID))
	s.bestEffort("activity bump failed", s.bumpActivity(ctx, req.PostID), zap.String("postId", req.PostID))

	return &reply, nil
}

func (s *Store) ownedReply(ctx context.Context, replyID, authorID string) (*models.ForumReply, error) {
	var reply models.ForumReply
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", replyID, false).
		First(&reply).Error
	if err != nil {
		return nil, notFoundOr(err)
	}
	if reply.AuthorID != authorID {
		return nil, ErrNotOwner
	}
	return &reply, nil
}

func (s *Store) UpdateReply(ctx context.Context, req models.UpdateReplyRequest) (*models.ForumReply, error) {
	reply, err := s.ownedReply(ctx, req.ReplyID, req.AuthorID)
	if err != nil {
		return nil, err
	}
	if err := validateLength("content", req.Content, replyContentMin, replyContentMax); err != nil {
		return nil, err
	}

	reply.Content = req.Content
	reply.IsEdited = true
	if err := s.db.WithContext(ctx).Save(reply).Error; err != nil {
		return nil, err
	}
	return reply, nil
}

func (s *Store) DeleteReply(ctx context.Context, req models.DeleteReplyRequest) error {
	reply, err := s.ownedReply(ctx, req.ReplyID, req.AuthorID)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Model(&models.ForumReply{}).
		Where("id = ?", req.ReplyID).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"content":    deletedReplyPlaceholder,
		}).Error
	if err != nil {
		return err
	}

	s.bestEffort("reply count resync failed", s.resyncReplyCount(ctx, reply.PostID), zap.String("postId", reply.PostID))
	return nil
}
