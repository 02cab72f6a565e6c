package graph

import (
	"errors"
	"fmt"

	"github.com/graphql-go/graphql"
	"gorm.io/gorm"

	"github.com/rpupo63/blog-graphql-backend/database"
	"github.com/rpupo63/blog-graphql-backend/models"
)

// queryFields is the registry of read operations. None of them require
// authentication.
func (r *Resolver) queryFields() graphql.Fields {
	return graphql.Fields{
		"allAuthors":     r.allAuthorsField(),
		"allPosts":       r.allPostsField(),
		"postById":       r.postByIDField(),
		"commentsByPost": r.commentsByPostField(),
	}
}

func (r *Resolver) allAuthorsField() *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewList(r.authorType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			authors, err := r.db.AuthorRepo().FindAll()
			if err != nil {
				return nil, fmt.Errorf("Error fetching authors: %v", err)
			}
			return authors, nil
		},
	}
}

func (r *Resolver) allPostsField() *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewList(r.postType),
		Args: graphql.FieldConfigArgument{
			"authorId":        &graphql.ArgumentConfig{Type: graphql.ID},
			"titleContains":   &graphql.ArgumentConfig{Type: graphql.String},
			"contentContains": &graphql.ArgumentConfig{Type: graphql.String},
			"skip":            &graphql.ArgumentConfig{Type: graphql.Int},
			"limit":           &graphql.ArgumentConfig{Type: graphql.Int},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			// An explicit non-positive limit asks for an empty page; only
			// an absent limit falls back to the default.
			if raw, ok := p.Args["limit"]; ok {
				if n, isInt := raw.(int); isInt && n <= 0 {
					return []*models.Post{}, nil
				}
			}
			filter := database.PostFilter{
				Skip:  argInt(p, "skip", 0),
				Limit: argInt(p, "limit", database.DefaultPostLimit),
			}
			// A null or empty authorId means unfiltered, not invalid
			if raw, ok := p.Args["authorId"]; ok && raw != nil && fmt.Sprint(raw) != "" {
				authorID, err := argID(p, "authorId")
				if err != nil {
					return nil, err
				}
				filter.AuthorID = &authorID
			}
			if s, ok := argString(p, "titleContains"); ok {
				filter.TitleContains = s
			}
			if s, ok := argString(p, "contentContains"); ok {
				filter.ContentContains = s
			}

			posts, err := r.db.PostRepo().Find(filter)
			if err != nil {
				return nil, fmt.Errorf("Error fetching posts: %v", err)
			}
			return posts, nil
		},
	}
}

func (r *Resolver) postByIDField() *graphql.Field {
	return &graphql.Field{
		Type: r.postType,
		Args: graphql.FieldConfigArgument{
			"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			id, err := argID(p, "id")
			if err != nil {
				return nil, err
			}
			post, err := r.db.PostRepo().FindByID(id)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.New("Post not found")
			}
			if err != nil {
				return nil, fmt.Errorf("Error fetching post: %v", err)
			}
			return post, nil
		},
	}
}

func (r *Resolver) commentsByPostField() *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewList(r.commentType),
		Args: graphql.FieldConfigArgument{
			"postId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			// No existence check on the post; an unknown id just yields
			// an empty list.
			postID, err := argID(p, "postId")
			if err != nil {
				return nil, err
			}
			comments, err := r.db.CommentRepo().FindByPostID(postID)
			if err != nil {
				return nil, fmt.Errorf("Error fetching comments: %v", err)
			}
			return comments, nil
		},
	}
}
