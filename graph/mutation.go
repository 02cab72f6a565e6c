package graph

import (
	"errors"
	"fmt"

	"github.com/graphql-go/graphql"
	"gorm.io/gorm"

	"github.com/rpupo63/blog-graphql-backend/auth"
	"github.com/rpupo63/blog-graphql-backend/models"
)

// mutationFields composes the per-concern registries into the single
// mutation root.
func (r *Resolver) mutationFields() graphql.Fields {
	fields := graphql.Fields{}
	for name, field := range r.authorMutationFields() {
		fields[name] = field
	}
	for name, field := range r.postMutationFields() {
		fields[name] = field
	}
	for name, field := range r.commentMutationFields() {
		fields[name] = field
	}
	for name, field := range r.tokenMutationFields() {
		fields[name] = field
	}
	return fields
}

// Author mutations are entirely open; any caller, anonymous included, may
// create, update, or delete author profiles.
func (r *Resolver) authorMutationFields() graphql.Fields {
	return graphql.Fields{
		"createAuthor": &graphql.Field{
			Type: r.authorType,
			Args: graphql.FieldConfigArgument{
				"name":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"email": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"bio":   &graphql.ArgumentConfig{Type: graphql.String},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				name, _ := argString(p, "name")
				email, _ := argString(p, "email")
				author := &models.Author{Name: name, Email: email}
				if bio, ok := argString(p, "bio"); ok {
					author.Bio = &bio
				}
				if err := r.db.AuthorRepo().Add(author); err != nil {
					return nil, fmt.Errorf("Error creating author: %v", err)
				}
				return author, nil
			},
		},
		"updateAuthor": &graphql.Field{
			Type: r.authorType,
			Args: graphql.FieldConfigArgument{
				"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				"name":  &graphql.ArgumentConfig{Type: graphql.String},
				"email": &graphql.ArgumentConfig{Type: graphql.String},
				"bio":   &graphql.ArgumentConfig{Type: graphql.String},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				id, err := argID(p, "id")
				if err != nil {
					return nil, err
				}
				author, err := r.db.AuthorRepo().FindByID(id)
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, errors.New("Author not found")
				}
				if err != nil {
					return nil, fmt.Errorf("Error updating author: %v", err)
				}
				if name, ok := argString(p, "name"); ok && name != "" {
					author.Name = name
				}
				if email, ok := argString(p, "email"); ok && email != "" {
					author.Email = email
				}
				if bio, ok := argString(p, "bio"); ok && bio != "" {
					author.Bio = &bio
				}
				if err := r.db.AuthorRepo().Update(author); err != nil {
					return nil, fmt.Errorf("Error updating author: %v", err)
				}
				return author, nil
			},
		},
		"deleteAuthor": &graphql.Field{
			Type: graphql.Boolean,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				id, err := argID(p, "id")
				if err != nil {
					return nil, err
				}
				if _, err := r.db.AuthorRepo().FindByID(id); err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return nil, errors.New("Author not found")
					}
					return nil, fmt.Errorf("Error deleting author: %v", err)
				}
				if err := r.db.AuthorRepo().Delete(id); err != nil {
					return nil, fmt.Errorf("Error deleting author: %v", err)
				}
				return true, nil
			},
		},
	}
}

// Post mutations carry the only ownership rules on the surface: creating a
// post requires an authenticated caller and forces authorship to them, and
// updating is restricted to the original author. Deletion is deliberately
// left open to any caller; see DESIGN.md before "fixing" this.
func (r *Resolver) postMutationFields() graphql.Fields {
	return graphql.Fields{
		"createPost": &graphql.Field{
			Type: r.postType,
			Args: graphql.FieldConfigArgument{
				"title":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"content": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				userID, ok := auth.UserIDFromCtx(p.Context)
				if !ok {
					return nil, errors.New("You must be logged in to create a post.")
				}
				title, _ := argString(p, "title")
				content, _ := argString(p, "content")
				post := &models.Post{Title: title, Content: content, AuthorID: userID}
				if err := r.db.PostRepo().Add(post); err != nil {
					return nil, fmt.Errorf("Error creating post: %v", err)
				}
				return post, nil
			},
		},
		"updatePost": &graphql.Field{
			Type: r.postType,
			Args: graphql.FieldConfigArgument{
				"id":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				"title":   &graphql.ArgumentConfig{Type: graphql.String},
				"content": &graphql.ArgumentConfig{Type: graphql.String},
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
					return nil, fmt.Errorf("Error updating post: %v", err)
				}
				userID, ok := auth.UserIDFromCtx(p.Context)
				if !ok || post.AuthorID != userID {
					return nil, errors.New("You can only update your own posts.")
				}
				if title, ok := argString(p, "title"); ok && title != "" {
					post.Title = title
				}
				if content, ok := argString(p, "content"); ok && content != "" {
					post.Content = content
				}
				if err := r.db.PostRepo().Update(post); err != nil {
					return nil, fmt.Errorf("Error updating post: %v", err)
				}
				return post, nil
			},
		},
		"deletePost": &graphql.Field{
			Type: graphql.Boolean,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				id, err := argID(p, "id")
				if err != nil {
					return nil, err
				}
				if _, err := r.db.PostRepo().FindByID(id); err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return nil, errors.New("Post not found")
					}
					return nil, fmt.Errorf("Error deleting post: %v", err)
				}
				if err := r.db.PostRepo().Delete(id); err != nil {
					return nil, fmt.Errorf("Error deleting post: %v", err)
				}
				return true, nil
			},
		},
	}
}

// Comment mutations are open to any caller; comments carry no authorship.
// Every comment save bumps the owning post's lastUpdated through the store.
func (r *Resolver) commentMutationFields() graphql.Fields {
	return graphql.Fields{
		"createComment": &graphql.Field{
			Type: r.commentType,
			Args: graphql.FieldConfigArgument{
				"content": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"postId":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				postID, err := argID(p, "postId")
				if err != nil {
					return nil, err
				}
				if _, err := r.db.PostRepo().FindByID(postID); err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return nil, errors.New("Post not found")
					}
					return nil, fmt.Errorf("Error creating comment: %v", err)
				}
				content, _ := argString(p, "content")
				comment := &models.Comment{Content: content, PostID: postID}
				if err := r.db.CommentRepo().Add(comment); err != nil {
					return nil, fmt.Errorf("Error creating comment: %v", err)
				}
				return comment, nil
			},
		},
		"updateComment": &graphql.Field{
			Type: r.commentType,
			Args: graphql.FieldConfigArgument{
				"id":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				"content": &graphql.ArgumentConfig{Type: graphql.String},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				id, err := argID(p, "id")
				if err != nil {
					return nil, err
				}
				comment, err := r.db.CommentRepo().FindByID(id)
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, errors.New("Comment not found")
				}
				if err != nil {
					return nil, fmt.Errorf("Error updating comment: %v", err)
				}
				if content, ok := argString(p, "content"); ok && content != "" {
					comment.Content = content
				}
				if err := r.db.CommentRepo().Update(comment); err != nil {
					return nil, fmt.Errorf("Error updating comment: %v", err)
				}
				return comment, nil
			},
		},
		"deleteComment": &graphql.Field{
			Type: graphql.Boolean,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				id, err := argID(p, "id")
				if err != nil {
					return nil, err
				}
				if _, err := r.db.CommentRepo().FindByID(id); err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return nil, errors.New("Comment not found")
					}
					return nil, fmt.Errorf("Error deleting comment: %v", err)
				}
				if err := r.db.CommentRepo().Delete(id); err != nil {
					return nil, fmt.Errorf("Error deleting comment: %v", err)
				}
				return true, nil
			},
		},
	}
}

// tokenAuth mirrors the REST token endpoint for clients that prefer to stay
// on the GraphQL surface. Unknown user and wrong password produce the same
// error.
func (r *Resolver) tokenMutationFields() graphql.Fields {
	return graphql.Fields{
		"tokenAuth": &graphql.Field{
			Type: r.tokenPayloadType,
			Args: graphql.FieldConfigArgument{
				"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				username, _ := argString(p, "username")
				password, _ := argString(p, "password")

				user, err := r.db.UserRepo().FindByUsername(username)
				if err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						r.logger.Debug().Str("username", username).Msg("token auth failed")
						return nil, errors.New("Invalid credentials")
					}
					return nil, fmt.Errorf("Error fetching user: %v", err)
				}
				if !auth.CheckPassword(user.PasswordHash, password) {
					r.logger.Debug().Str("username", username).Msg("token auth failed")
					return nil, errors.New("Invalid credentials")
				}
				access, err := r.tokens.IssueAccessToken(user.ID)
				if err != nil {
					return nil, fmt.Errorf("Error issuing token: %v", err)
				}
				refresh, err := r.tokens.IssueRefreshToken(user.ID)
				if err != nil {
					return nil, fmt.Errorf("Error issuing token: %v", err)
				}
				return map[string]interface{}{
					"token":        access,
					"refreshToken": refresh,
				}, nil
			},
		},
	}
}
