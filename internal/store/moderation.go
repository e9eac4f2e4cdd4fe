package store

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/planetaketo/forum-service/internal/models"
)

// Action is a moderation state transition.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionDelete  Action = "delete"
	ActionEdit    Action = "edit"
)

// kindProbeOrder is the fallback resolution order for IDs without a usable
// kind prefix.
var kindProbeOrder = []Kind{KindForumPost, KindForumReply, KindRecipeComment, KindBlogComment}

func modelForKind(kind Kind) (interface{}, bool) {
	switch kind {
	case KindForumPost:
		return &models.ForumPost{}, true
	case KindForumComment:
		return &models.ForumComment{}, true
	case KindForumReply:
		return &models.ForumReply{}, true
	case KindRecipeComment:
		return &models.RecipeComment{}, true
	case KindBlogComment:
		return &models.BlogComment{}, true
	default:
		return nil, false
	}
}

// ResolveKind maps an item ID to its content kind: an explicit hint wins,
// then the ID's kind prefix (O(1)), and only then an ordered existence probe
// across the candidate kinds.
func (s *Store) ResolveKind(ctx context.Context, itemID, hint string) (Kind, error) {
	if hint != "" {
		if _, ok := modelForKind(Kind(hint)); ok {
			return Kind(hint), nil
		}
	}

	if i := strings.IndexByte(itemID, '_'); i > 0 {
		if _, ok := modelForKind(Kind(itemID[:i])); ok {
			return Kind(itemID[:i]), nil
		}
	}

	for _, kind := range kindProbeOrder {
		model, _ := modelForKind(kind)
		var count int64
		if err := s.db.WithContext(ctx).Model(model).Where("id = ?", itemID).Count(&count).Error; err != nil {
			return "", err
		}
		if count > 0 {
			return kind, nil
		}
	}
	return "", ErrNotFound
}

// Moderate applies a single transition table shared by every moderation
// endpoint:
//
//	approve: approved=true, moderatedAt stamped (idempotent)
//	reject:  approved=false, moderatedAt stamped (a reversible flag, not a delete)
//	delete:  soft delete, content replaced with a placeholder
//	edit:    declared but unimplemented
func (s *Store) Moderate(ctx context.Context, itemID, kindHint string, action Action) error {
	switch action {
	case ActionApprove, ActionReject, ActionDelete:
	case ActionEdit:
		return ErrNeedsContent
	default:
		return ErrInvalidAction
	}

	kind, err := s.ResolveKind(ctx, itemID, kindHint)
	if err != nil {
		return err
	}
	model, _ := modelForKind(kind)

	now := time.Now().UTC()
	var updates map[string]interface{}
	switch action {
	case ActionApprove:
		updates = map[string]interface{}{"approved": true, "moderated_at": now}
	case ActionReject:
		updates = map[string]interface{}{"approved": false, "moderated_at": now}
	case ActionDelete:
		updates = map[string]interface{}{"is_deleted": true, "content": moderatedPlaceholder, "moderated_at": now}
	}

	res := s.db.WithContext(ctx).Model(model).Where("id = ?", itemID).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	s.moderationSideEffects(ctx, kind, itemID)
	return nil
}

// moderationSideEffects rebuilds the denormalized aggregates a transition
// may have invalidated. Best effort: reconciliation catches stragglers.
func (s *Store) moderationSideEffects(ctx context.Context, kind Kind, itemID string) {
	switch kind {
	case KindForumComment:
		var comment models.ForumComment
		if err := s.db.WithContext(ctx).Select("post_id").Where("id = ?", itemID).First(&comment).Error; err == nil {
			s.bestEffort("reply count resync failed", s.resyncReplyCount(ctx, comment.PostID), zap.String("postId", comment.PostID))
		}
	case KindForumReply:
		var reply models.ForumReply
		if err := s.db.WithContext(ctx).Select("post_id").Where("id = ?", itemID).First(&reply).Error; err == nil {
			s.bestEffort("reply count resync failed", s.resyncReplyCount(ctx, reply.PostID), zap.String("postId", reply.PostID))
		}
	case KindRecipeComment:
		var comment models.RecipeComment
		if err := s.db.WithContext(ctx).Select("recipe_id").Where("id = ?", itemID).First(&comment).Error; err == nil {
			s.bestEffort("rating recompute failed", s.recomputeRecipeRating(ctx, comment.RecipeID), zap.String("recipeId", comment.RecipeID))
		}
	}
}

// ModerationItem is the kind-agnostic row the dashboard consumes.
type ModerationItem struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Content     string     `json:"content"`
	AuthorName  string     `json:"authorName"`
	AuthorEmail string     `json:"authorEmail"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	ModeratedAt *time.Time `json:"moderatedAt,omitempty"`
}

const queueBucketCap = 50

type queueStatus string

const (
	statusPending  queueStatus = "pending"
	statusApproved queueStatus = "approved"
	statusRejected queueStatus = "rejected"
)

func (st queueStatus) scope(q *gorm.DB) *gorm.DB {
	switch st {
	case statusApproved:
		return q.Where("approved = ? AND is_deleted = ?", true, false)
	case statusRejected:
		return q.Where("approved = ? AND moderated_at IS NOT NULL AND is_deleted = ?", false, false)
	default:
		return q.Where("approved = ? AND moderated_at IS NULL AND is_deleted = ?", false, false)
	}
}

// PendingQueue is the union of unmoderated, unapproved content across the
// four moderatable kinds. The queue is a read-time view; nothing persists.
func (s *Store) PendingQueue(ctx context.Context) ([]ModerationItem, error) {
	return s.collectQueue(ctx, statusPending, 0)
}

// QueueOverview partitions the queue into pending/approved/rejected, the
// latter two capped at the 50 most recent items each (a recency sample, not
// a full listing).
func (s *Store) QueueOverview(ctx context.Context) (map[string][]ModerationItem, error) {
	overview := make(map[string][]ModerationItem, 3)
	for _, st := range []queueStatus{statusPending, statusApproved, statusRejected} {
		limit := queueBucketCap
		if st == statusPending {
			limit = 0
		}
		items, err := s.collectQueue(ctx, st, limit)
		if err != nil {
			return nil, err
		}
		overview[string(st)] = items
	}
	return overview, nil
}

func (s *Store) collectQueue(ctx context.Context, status queueStatus, limit int) ([]ModerationItem, error) {
	items := []ModerationItem{}
	for _, kind := range kindProbeOrder {
		kindItems, err := s.queueForKind(ctx, kind, status, limit)
		if err != nil {
			return nil, err
		}
		items = append(items, kindItems...)
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) queueForKind(ctx context.Context, kind Kind, status queueStatus, limit int) ([]ModerationItem, error) {
	model, _ := modelForKind(kind)
	q := status.scope(s.db.WithContext(ctx).Model(model)).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var items []ModerationItem
	appendItem := func(id, content, name, email string, createdAt time.Time, moderatedAt *time.Time) {
		items = append(items, ModerationItem{
			ID:          id,
			Type:        string(kind),
			Content:     content,
			AuthorName:  name,
			AuthorEmail: email,
			Status:      string(status),
			CreatedAt:   createdAt,
			ModeratedAt: moderatedAt,
		})
	}

	switch kind {
	case KindForumPost:
		var rows []models.ForumPost
		if err := q.Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, r := range rows {
			appendItem(r.ID, r.Content, r.AuthorName, r.AuthorEmail, r.CreatedAt, r.ModeratedAt)
		}
	case KindForumReply:
		var rows []models.ForumReply
		if err := q.Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, r := range rows {
			appendItem(r.ID, r.Content, r.AuthorName, r.AuthorEmail, r.CreatedAt, r.ModeratedAt)
		}
	case KindRecipeComment:
		var rows []models.RecipeComment
		if err := q.Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, r := range rows {
			appendItem(r.ID, r.Content, r.AuthorName, r.AuthorEmail, r.CreatedAt, r.ModeratedAt)
		}
	case KindBlogComment:
		var rows []models.BlogComment
		if err := q.Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, r := range rows {
			appendItem(r.ID, r.Content, r.AuthorName, r.AuthorEmail, r.CreatedAt, r.ModeratedAt)
		}
	}
	return items, nil
}

// PurgePost hard-deletes a post together with its comments and replies.
// This is the only true deletion path; everything else soft-deletes.
func (s *Store) PurgePost(ctx context.Context, postID string) error {
	var post models.ForumPost
	if err := s.db.WithContext(ctx).Where("id = ?", postID).First(&post).Error; err != nil {
		return notFoundOr(err)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&models.ForumComment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.ForumReply{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", postID).Delete(&models.ForumPost{}).Error
	})
}
