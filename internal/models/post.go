package models

import "time"

type ForumPost struct {
	ID             string     `gorm:"primaryKey" json:"id"`
	Title          string     `gorm:"not null" json:"title"`
	Slug           string     `gorm:"index" json:"slug"`
	Content        string     `gorm:"not null" json:"content"`
	AuthorName     string     `json:"authorName"`
	AuthorEmail    string     `json:"authorEmail"`
	AuthorID       string     `gorm:"index" json:"authorId"`
	Category       string     `gorm:"index" json:"category"`
	Tags           []string   `gorm:"serializer:json" json:"tags"`
	IsPinned       bool       `json:"isPinned"`
	IsLocked       bool       `json:"isLocked"`
	Approved       bool       `json:"approved"`
	IsEdited       bool       `json:"isEdited"`
	IsDeleted      bool       `gorm:"index" json:"isDeleted"`
	Views          int        `json:"views"`
	Likes          int        `json:"likes"`
	ReplyCount     int        `json:"replyCount"`
	LastActivityAt time.Time  `json:"lastActivityAt"`
	ModeratedAt    *time.Time `json:"moderatedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type CreatePostRequest struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Category    string   `json:"category"`
	AuthorName  string   `json:"authorName"`
	AuthorEmail string   `json:"authorEmail"`
	AuthorID    string   `json:"authorId"`
	Tags        []string `json:"tags"`
}

type UpdatePostRequest struct {
	PostID   string   `json:"postId"`
	AuthorID string   `json:"authorId"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

type DeletePostRequest struct {
	PostID   string `json:"postId"`
	AuthorID string `json:"authorId"`
}
