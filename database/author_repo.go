package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/blog-graphql-backend/models"
)

type AuthorRepo struct {
	db *gorm.DB
}

func NewAuthorRepo(db *gorm.DB) *AuthorRepo {
	return &AuthorRepo{db}
}

// FindAll returns all authors from the database
func (r *AuthorRepo) FindAll() ([]*models.Author, error) {
	var authors []*models.Author
	err := r.db.Find(&authors).Error
	return authors, err
}

// FindByID returns an author by its ID
func (r *AuthorRepo) FindByID(id uuid.UUID) (*models.Author, error) {
	var author models.Author
	err := r.db.First(&author, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// Add inserts a new author into the database
func (r *AuthorRepo) Add(author *models.Author) error {
	return r.db.Create(author).Error
}

// Update updates an existing author in the database
func (r *AuthorRepo) Update(author *models.Author) error {
	return r.db.Save(author).Error
}

// Delete removes an author from the database by id
func (r *AuthorRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Author{}, "id = ?", id).Error
}
