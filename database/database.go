package database

import (
	"gorm.io/gorm"
)

type Database struct {
	authorRepo  *AuthorRepo
	userRepo    *UserRepo
	postRepo    *PostRepo
	commentRepo *CommentRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		authorRepo:  NewAuthorRepo(db),
		userRepo:    NewUserRepo(db),
		postRepo:    NewPostRepo(db),
		commentRepo: NewCommentRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) AuthorRepo() *AuthorRepo {
	return d.authorRepo
}

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) PostRepo() *PostRepo {
	return d.postRepo
}

func (d Database) CommentRepo() *CommentRepo {
	return d.commentRepo
}
