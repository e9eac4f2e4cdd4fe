package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/planetaketo/forum-service/internal/database"
	"github.com/planetaketo/forum-service/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "forum.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return New(db, zap.NewNop())
}

func validPostRequest() models.CreatePostRequest {
	return models.CreatePostRequest{
		Title:       "Mi primera semana con la dieta keto",
		Content:     "Después de siete días ya noto mucha más energía por las mañanas.",
		Category:    "experiencias",
		AuthorName:  "Ana García",
		AuthorEmail: "ana@example.com",
		AuthorID:    "user-ana",
	}
}

func seedPost(t *testing.T, s *Store) *models.ForumPost {
	t.Helper()
	post, err := s.CreatePost(context.Background(), validPostRequest())
	require.NoError(t, err)
	return post
}

func validCommentRequest() models.CreateCommentRequest {
	return models.CreateCommentRequest{
		Content:     "Muy buen aporte, gracias por compartir.",
		AuthorName:  "Luis Pérez",
		AuthorEmail: "luis@example.com",
		AuthorID:    "user-luis",
	}
}

func seedRecipe(t *testing.T, s *Store, id string) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{ID: id, Title: "Pan keto de almendras", Slug: "pan-keto-de-almendras"}
	require.NoError(t, s.db.Create(recipe).Error)
	return recipe
}

func seedBlogPost(t *testing.T, s *Store, id string) *models.BlogPost {
	t.Helper()
	post := &models.BlogPost{ID: id, Title: "Qué es la cetosis", Slug: "que-es-la-cetosis"}
	require.NoError(t, s.db.Create(post).Error)
	return post
}

// pause keeps created_at ordering deterministic on fast machines.
func pause() { time.Sleep(2 * time.Millisecond) }
