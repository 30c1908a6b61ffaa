package models

// Like marks that a user liked a story. At most one row exists per
// (story_id, username) pair.
type Like struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	StoryID  uint   `json:"story_id" gorm:"not null;uniqueIndex:idx_likes_story_user"`
	Username string `json:"username" gorm:"type:varchar(100);not null;uniqueIndex:idx_likes_story_user"`
}
