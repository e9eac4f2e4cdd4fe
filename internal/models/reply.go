package models

import "time"

// ForumReply is the older flat reply kind that coexists with ForumComment.
// It attaches directly to a post and cannot be nested.
type ForumReply struct {
	ID          string     `gorm:"primaryKey" json:"id"`
	PostID      string     `gorm:"index;not null" json:"postId"`
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

type CreateReplyRequest struct {
	PostID      string `json:"postId"`
	Content     string `json:"content"`
	AuthorName  string `json:"authorName"`
	AuthorEmail string `json:"authorEmail"`
	AuthorID    string `json:"authorId"`
}

type UpdateReplyRequest struct {
	ReplyID  string `json:"replyId"`
	AuthorID string `json:"authorId"`
	Content  string `json:"content"`
}

type DeleteReplyRequest struct {
	ReplyID  string `json:"replyId"`
	AuthorID string `json:"authorId"`
}
