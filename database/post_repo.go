package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/blog-graphql-backend/models"
)

// DefaultPostLimit is the page size applied when a caller does not ask for one.
const DefaultPostLimit = 10

// PostFilter narrows a post listing. All fields are optional and combine
// with logical AND. Skip/Limit slice the filtered set as [skip, skip+limit);
// a Limit of zero or less falls back to DefaultPostLimit, so callers that
// want an empty page must not reach the store at all.
type PostFilter struct {
	AuthorID        *uuid.UUID
	TitleContains   string
	ContentContains string
	Skip            int
	Limit           int
}

type PostRepo struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{db}
}

// Find returns posts matching the filter, ordered by creation time
func (r *PostRepo) Find(filter PostFilter) ([]*models.Post, error) {
	query := r.db.Model(&models.Post{})
	if filter.AuthorID != nil {
		query = query.Where("author_id = ?", *filter.AuthorID)
	}
	if filter.TitleContains != "" {
		query = query.Where("title ILIKE ?", "%"+filter.TitleContains+"%")
	}
	if filter.ContentContains != "" {
		query = query.Where("content ILIKE ?", "%"+filter.ContentContains+"%")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultPostLimit
	}
	skip := filter.Skip
	if skip < 0 {
		skip = 0
	}

	var posts []*models.Post
	err := query.Order("created_at").Offset(skip).Limit(limit).Find(&posts).Error
	return posts, err
}

// FindByID returns a post by its ID
func (r *PostRepo) FindByID(id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := r.db.First(&post, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Add inserts a new post into the database
func (r *PostRepo) Add(post *models.Post) error {
	return r.db.Create(post).Error
}

// Update updates an existing post in the database
func (r *PostRepo) Update(post *models.Post) error {
	return r.db.Save(post).Error
}

// Delete removes a post from the database by id. Its comments go with it
// via the ON DELETE CASCADE constraint.
func (r *PostRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Post{}, "id = ?", id).Error
}
