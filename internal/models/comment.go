package models

// Comment is a remark left on a story. StoryID is not checked against
// existing stories.
type Comment struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	StoryID  uint   `json:"story_id" gorm:"not null;index"`
	Username string `json:"username" gorm:"type:varchar(100);not null;index"`
	Comment  string `json:"comment" gorm:"type:text;not null"`
}
