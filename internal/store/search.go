package store

import (
	"context"
	"strings"

	"github.com/planetaketo/forum-service/internal/models"
)

const searchResultCap = 20

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE metacharacters so user input always matches
// literally.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

// SearchPosts substring-matches title, content and author name of visible
// posts, unions in the parent posts of matching replies, de-duplicates, and
// caps the result at 20.
func (s *Store) SearchPosts(ctx context.Context, query, category string) ([]models.ForumPost, error) {
	term := "%" + escapeLike(strings.ToLower(strings.TrimSpace(query))) + "%"

	q := s.publicPosts(ctx, category).
		Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(content) LIKE ? ESCAPE '\' OR LOWER(author_name) LIKE ? ESCAPE '\'`, term, term, term).
		Order("last_activity_at DESC").
		Limit(searchResultCap)

	var posts []models.ForumPost
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(posts))
	for _, p := range posts {
		seen[p.ID] = true
	}

	if len(posts) < searchResultCap {
		var parentIDs []string
		err := s.db.WithContext(ctx).Model(&models.ForumReply{}).
			Where(`is_deleted = ? AND approved = ? AND LOWER(content) LIKE ? ESCAPE '\'`, false, true, term).
			Distinct().
			Pluck("post_id", &parentIDs).Error
		if err != nil {
			return nil, err
		}

		unseen := parentIDs[:0]
		for _, id := range parentIDs {
			if !seen[id] {
				unseen = append(unseen, id)
			}
		}

		if len(unseen) > 0 {
			var parents []models.ForumPost
			err := s.publicPosts(ctx, category).
				Where("id IN ?", unseen).
				Order("last_activity_at DESC").
				Limit(searchResultCap - len(posts)).
				Find(&parents).Error
			if err != nil {
				return nil, err
			}
			posts = append(posts, parents...)
		}
	}

	if posts == nil {
		posts = []models.ForumPost{}
	}
	return posts, nil
}
