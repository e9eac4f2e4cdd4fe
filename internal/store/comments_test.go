package store

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planetaketo/forum-service/internal/models"
)

func TestCommentTree_Shape(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	post := seedPost(t, s)

	var roots []*models.ForumComment
	for i := 0; i < 3; i++ {
		root, _, err := s.CreateComment(ctx, post.ID, validCommentRequest())
		require.NoError(t, err)
		roots = append(roots, root)
		pause()
	}

	// Two replies under the first root, one under the second.
	for _, parentID := range []string{roots[0].ID, roots[0].ID, roots[1].ID} {
		req := validCommentRequest()
		pid := parentID
		req.ParentID = &pid
		_, _, err := s.CreateComment(ctx, post.ID, req)
		require.NoError(t, err)
		pause()
	}

	tree, err := s.CommentTree(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, tree, 3)

	// Roots newest-first.
	assert.Equal(t, roots[2].ID, tree[0].ID)
	assert.Equal(t, roots[1].ID, tree[1].ID)
	assert.Equal(t, roots[0].ID, tree[2].ID)

	assert.Len(t, tree[0].Replies, 0)
	assert.Len(t, tree[1].Replies, 1)
	require.Len(t, tree[2].Replies, 2)

	// Replies oldest-first.
	assert.True(t, tree[2].Replies[0].CreatedAt.Before(tree[2].Replies[1].CreatedAt))
}

func TestCreateComment_DepthLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	post := seedPost(t, s)

	root, _, err := s.CreateComment(ctx, post.ID, validCommentRequest())
	require.NoError(t, err)

	req := validCommentRequest()
	req.ParentID = &root.ID
	reply, _, err := s.CreateComment(ctx, post.ID, req)
	require.NoError(t, err)

	// A reply to a reply is rejected: the tree is exactly two levels deep.
	nested := validCommentRequest()
	nested.ParentID = &reply.ID
	_, _, err = s.CreateComment(ctx, post.ID, nested)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestCreateComment_ValidationBoundaries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	post := seedPost(t, s)

	cases := []struct {
		name    string
		content string
		wantOK  bool
	}{
		{"4 chars rejected", strings.Repeat("x", 4), false},
		{"5 chars accepted", strings.Repeat("x", 5), true},
		{"1000 chars accepted", strings.Repeat("x", 1000), true},
		{"1001 chars rejected", strings.Repeat("x", 1001), false},
		// Bounds count characters, not bytes: "ñ" is one character but
		// two bytes in UTF-8.
		{"4 accented chars rejected", strings.Repeat("ñ", 4), false},
		{"5 accented chars accepted", strings.Repeat("ñ", 5), true},
		{"1000 accented chars accepted", strings.Repeat("á", 1000), true},
		{"1001 accented chars rejected", strings.Repeat("é", 1001), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCommentRequest()
			req.Content = tc.content
			_, _, err := s.CreateComment(ctx, post.ID, req)
			if tc.wantOK {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, IsValidation(err))
			}
		})
	}
}

func TestCreateComment_LockedPost(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	post := seedPost(t, s)
	require.NoError(t, s.db.Model(&models.ForumPost{}).Where("id = ?", post.ID).UpdateColumn("is_locked", true).Error)

	_, _, err := s.CreateComment(ctx, post.ID, validCommentRequest())
	assert.ErrorIs(t, err, ErrPostLocked)
}

func TestDeleteComment_SoftDeleteVisibility(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	post := seedPost(t, s)

	comment, _, err := s.CreateComment(ctx, post.ID, validCommentRequest())
	require.NoError(t, err)

	tree, err := s.DeleteComment(ctx, comment.ID, comment.AuthorID)
	require.NoError(t, err)
	assert.Empty(t, tree)

	// Gone from the tree, still present in storage with placeholder content.
	var stored models.ForumComment
	require.NoError(t, s.db.First(&stored, "id = ?", comment.ID).Error)
	assert.True(t, stored.IsDeleted)
	assert.Equal(t, deletedCommentPlaceholder, stored.Content)
}

func TestReplyCountResync(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	post := seedPost(t, s)

	var ids []string
	for i := 0; i < 3; i++ {
		comment, _, err := s.CreateComment(ctx, post.ID, validCommentRequest())
		require.NoError(t, err)
		ids = append(ids, comment.ID)
	}

	var stored models.ForumPost
	require.NoError(t, s.db.First(&stored, "id = ?", post.ID).Error)
	assert.Equal(t, 3, stored.ReplyCount)

	_, err := s.DeleteComment(ctx, ids[0], "user-luis")
	require.NoError(t, err)

	require.NoError(t, s.db.First(&stored, "id = ?", post.ID).Error)
	assert.Equal(t, 2, stored.ReplyCount)
}

func TestReplyCount_IncludesBothKinds(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	post := seedPost(t, s)

	_, _, err := s.CreateComment(ctx, post.ID, validCommentRequest())
	require.NoError(t, err)
	_, err = s.CreateReply(ctx, models.CreateReplyRequest{
		PostID:      post.ID,
		Content:     "Yo también lo probé y me funcionó.",
		AuthorName:  "Marta Ruiz",
		AuthorEmail: "marta@example.com",
		AuthorID:    "user-marta",
	})
	require.NoError(t, err)

	var stored models.ForumPost
	require.NoError(t, s.db.First(&stored, "id = ?", post.ID).Error)
	assert.Equal(t, 2, stored.ReplyCount)
}

func TestUpdateComment_Ownership(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	post := seedPost(t, s)

	comment, _, err := s.CreateComment(ctx, post.ID, validCommentRequest())
	require.NoError(t, err)

	_, _, err = s.UpdateComment(ctx, comment.ID, models.UpdateCommentRequest{
		AuthorID: "user-impostor",
		Content:  "Contenido manipulado por otro usuario",
	})
	assert.ErrorIs(t, err, ErrNotOwner)

	updated, _, err := s.UpdateComment(ctx, comment.ID, models.UpdateCommentRequest{
		AuthorID: comment.AuthorID,
		Content:  "Comentario corregido por su autor",
	})
	require.NoError(t, err)
	assert.True(t, updated.IsEdited)
	assert.Equal(t, "Comentario corregido por su autor", updated.Content)
}

func TestLikeComment_AtomicAndClamped(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	post := seedPost(t, s)

	comment, _, err := s.CreateComment(ctx, post.ID, validCommentRequest())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := s.LikeComment(ctx, comment.ID)
		require.NoError(t, err)
	}

	var stored models.ForumComment
	require.NoError(t, s.db.First(&stored, "id = ?", comment.ID).Error)
	assert.Equal(t, 3, stored.Likes)

	// Five unlikes against three likes: the counter floors at zero.
	for i := 0; i < 5; i++ {
		_, err := s.UnlikeComment(ctx, comment.ID)
		require.NoError(t, err)
	}

	require.NoError(t, s.db.First(&stored, "id = ?", comment.ID).Error)
	assert.Equal(t, 0, stored.Likes)
}

func TestLikeComment_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.LikeComment(context.Background(), "forumComment_missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
