package models

import "time"

// ForumComment hangs off a forum post. A comment with a ParentID is a reply
// to another root comment; nesting stops there (depth exactly 1).
type ForumComment struct {
	ID          string     `gorm:"primaryKey" json:"id"`
	PostID      string     `gorm:"index;not null" json:"postId"`
	ParentID    *string    `gorm:"index" json:"parentId,omitempty"`
	Content     string     `gorm:"not null" json:"content"`
	AuthorName  string     `json:"authorName"`
	AuthorEmail string     `json:"authorEmail"`
	AuthorID    string     `gorm:"index" json:"authorId"`
	Approved    bool       `json:"approved"`
	IsEdited    bool       `json:"isEdited"`
	IsDeleted   bool       `gorm:"index" json:"isDeleted"`
	Likes       int        `json:"likes"`
	ModeratedAt *time.Time `json:"moderatedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type CreateCommentRequest struct {
	Content     string  `json:"content"`
	AuthorName  string  `json:"authorName"`
	AuthorEmail string  `json:"authorEmail"`
	AuthorID    string  `json:"authorId"`
	ParentID    *string `json:"parentId,omitempty"`
}

type UpdateCommentRequest struct {
	AuthorID string `json:"authorId"`
	Content  string `json:"content"`
}
