package models

import (
	"time"

	"github.com/google/uuid"
)

// Post is a blog entry. AuthorID is set server-side to the authenticated
// caller at creation and is never client-supplied. LastUpdated is bumped
// whenever a comment on the post is saved.
type Post struct {
	ID          uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title       string     `json:"title" db:"title" gorm:"type:text;not null"`
	Content     string     `json:"content" db:"content" gorm:"type:text;not null"`
	AuthorID    uuid.UUID  `json:"authorId" db:"author_id" gorm:"type:uuid;not null;index:idx_post_author_id"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	LastUpdated *time.Time `json:"lastUpdated,omitempty" db:"last_updated" gorm:"type:timestamp"`

	Author   User      `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID"`
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
}
