package models

// Story is a short post filed under a free-text category.
// Username references the author by value; there is no foreign key.
type Story struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"type:varchar(100);not null;index"`
	Category string `json:"category" gorm:"type:varchar(100);not null;index"`
	Content  string `json:"content" gorm:"type:text;not null"`
}

// StoryDetail is a story together with its aggregated like count.
type StoryDetail struct {
	Story
	Likes int64 `json:"likes" gorm:"column:like_count"`
}

// CategoryStory is a StoryDetail with its comments in storage order, as
// shown on category pages. Comments is never nil.
type CategoryStory struct {
	StoryDetail
	Comments []Comment `json:"comments"`
}

// LikeResult is the state of a story after a like toggle.
type LikeResult struct {
	Likes int64 `json:"likes"`
	Liked bool  `json:"liked"`
}
