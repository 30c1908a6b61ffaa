package models

import "time"

// Event types published after a successful write.
const (
	EventStoryCreated   = "story.created"
	EventStoryLiked     = "story.liked"
	EventStoryUnliked   = "story.unliked"
	EventCommentAdded   = "comment.added"
	EventAccountDeleted = "account.deleted"
)

// StoryEvent is the message body sent to the story events queue.
type StoryEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Username   string    `json:"username"`
	StoryID    uint      `json:"story_id,omitempty"`
	CommentID  uint      `json:"comment_id,omitempty"`
	Category   string    `json:"category,omitempty"`
	Likes      int64     `json:"likes,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
