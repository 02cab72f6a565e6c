package models

import "github.com/google/uuid"

// Author is a standalone writer profile. No uniqueness is enforced on email.
type Author struct {
	ID    uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name  string    `json:"name" db:"name" gorm:"type:text;not null"`
	Email string    `json:"email" db:"email" gorm:"type:text;not null"`
	Bio   *string   `json:"bio,omitempty" db:"bio" gorm:"type:text"`
}
