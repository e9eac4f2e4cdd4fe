package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/planetaketo/forum-service/internal/models"
)

// ReconcileCounters rebuilds every denormalized counter from its source of
// truth. The counters are a cache: any path that failed to update one is
// repaired here on the next cron tick.
func (s *Store) ReconcileCounters(ctx context.Context) error {
	var failed int

	var postIDs []string
	if err := s.db.WithContext(ctx).Model(&models.ForumPost{}).
		Where("is_deleted = ?", false).
		Pluck("id", &postIDs).Error; err != nil {
		return err
	}
	for _, id := range postIDs {
		if err := s.resyncReplyCount(ctx, id); err != nil {
			failed++
			s.logger.Warn("reconcile: reply count resync failed", zap.String("postId", id), zap.Error(err))
		}
	}

	var recipeIDs []string
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Pluck("id", &recipeIDs).Error; err != nil {
		return err
	}
	for _, id := range recipeIDs {
		if err := s.recomputeRecipeRating(ctx, id); err != nil {
			failed++
			s.logger.Warn("reconcile: rating recompute failed", zap.String("recipeId", id), zap.Error(err))
		}
	}

	if failed > 0 {
		return fmt.Errorf("reconcile finished with %d failed resyncs", failed)
	}
	s.logger.Info("counters reconciled",
		zap.Int("posts", len(postIDs)),
		zap.Int("recipes", len(recipeIDs)))
	return nil
}
