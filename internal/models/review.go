package models

import "time"

// RecipeComment carries an optional 1-5 rating that feeds the parent
// recipe's averageRating/totalRatings aggregates.
type RecipeComment struct {
	ID          string     `gorm:"primaryKey" json:"id"`
	RecipeID    string     `gorm:"index;not null" json:"recipeId"`
	Content     string     `gorm:"not null" json:"content"`
	AuthorName  string     `json:"authorName"`
	AuthorEmail string     `json:"authorEmail"`
	Rating      *int       `json:"rating,omitempty"`
	Approved    bool       `json:"approved"`
	IsDeleted   bool       `gorm:"index" json:"isDeleted"`
	ModeratedAt *time.Time `json:"moderatedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type BlogComment struct {
	ID          string     `gorm:"primaryKey" json:"id"`
	PostID      string     `gorm:"index;not null" json:"postId"`
	Content     string     `gorm:"not null" json:"content"`
	AuthorName  string     `json:"authorName"`
	AuthorEmail string     `json:"authorEmail"`
	Approved    bool       `json:"approved"`
	IsDeleted   bool       `gorm:"index" json:"isDeleted"`
	ModeratedAt *time.Time `json:"moderatedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Recipe and BlogPost rows are synced in from the CMS; only the fields the
// community backend reads or maintains are modeled here.
type Recipe struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	Title         string    `json:"title"`
	Slug          string    `gorm:"index" json:"slug"`
	AverageRating float64   `json:"averageRating"`
	TotalRatings  int       `json:"totalRatings"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type BlogPost struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Title     string    `json:"title"`
	Slug      string    `gorm:"index" json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateRecipeCommentRequest struct {
	RecipeID    string `json:"recipeId"`
	AuthorName  string `json:"authorName"`
	AuthorEmail string `json:"authorEmail"`
	Content     string `json:"content"`
	Rating      *int   `json:"rating,omitempty"`
}

type CreateBlogCommentRequest struct {
	PostID      string `json:"postId"`
	AuthorName  string `json:"authorName"`
	AuthorEmail string `json:"authorEmail"`
	Content     string `json:"content"`
}
