package domain

import "time"

type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UserID    int64     `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type NewPost struct {
	Title   string
	Content string
	UserID  int64
}

type PostChanges struct {
	Title   *string
	Content *string
}

// PostDeleted is the payload of post.deleted.
type PostDeleted struct {
	ID int64 `json:"id"`
}
