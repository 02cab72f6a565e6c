package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment belongs to a single post. Comments carry no authorship.
type Comment struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Content   string    `json:"content" db:"content" gorm:"type:text;not null"`
	PostID    uuid.UUID `json:"postId" db:"post_id" gorm:"type:uuid;not null;index:idx_comment_post_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`

	Post Post `json:"post,omitempty" gorm:"foreignKey:PostID;references:ID"`
}
