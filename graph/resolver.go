package graph

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/graphql-go/graphql"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/blog-graphql-backend/auth"
	"github.com/rpupo63/blog-graphql-backend/database"
	"github.com/rpupo63/blog-graphql-backend/models"
)

// Resolver owns the GraphQL object types and backs every query and mutation
// field with the entity store. One Resolver serves all requests.
type Resolver struct {
	db     database.Database
	tokens *auth.TokenManager
	logger zerolog.Logger

	userType         *graphql.Object
	authorType       *graphql.Object
	postType         *graphql.Object
	commentType      *graphql.Object
	tokenPayloadType *graphql.Object
}

func NewResolver(db database.Database, tokens *auth.TokenManager) *Resolver {
	r := &Resolver{
		db:     db,
		tokens: tokens,
		logger: log.With().Str("handlerName", "graphResolver").Logger(),
	}
	r.buildTypes()
	return r
}

func (r *Resolver) buildTypes() {
	r.userType = graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":       &graphql.Field{Type: graphql.ID},
			"username": &graphql.Field{Type: graphql.String},
			"email":    &graphql.Field{Type: graphql.String},
		},
	})

	r.authorType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Author",
		Fields: graphql.Fields{
			"id":    &graphql.Field{Type: graphql.ID},
			"name":  &graphql.Field{Type: graphql.String},
			"email": &graphql.Field{Type: graphql.String},
			"bio":   &graphql.Field{Type: graphql.String},
		},
	})

	r.postType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Post",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.ID},
			"title":       &graphql.Field{Type: graphql.String},
			"content":     &graphql.Field{Type: graphql.String},
			"createdAt":   &graphql.Field{Type: graphql.DateTime},
			"updatedAt":   &graphql.Field{Type: graphql.DateTime},
			"lastUpdated": &graphql.Field{Type: graphql.DateTime},
		},
	})

	r.commentType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Comment",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.ID},
			"content":   &graphql.Field{Type: graphql.String},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
		},
	})

	// Relationship fields are attached after both sides exist; Post and
	// Comment reference each other.
	r.postType.AddFieldConfig("author", &graphql.Field{
		Type: r.userType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			post, ok := p.Source.(*models.Post)
			if !ok {
				return nil, nil
			}
			return r.db.UserRepo().FindByID(post.AuthorID)
		},
	})
	r.postType.AddFieldConfig("comments", &graphql.Field{
		Type: graphql.NewList(r.commentType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			post, ok := p.Source.(*models.Post)
			if !ok {
				return nil, nil
			}
			return r.db.CommentRepo().FindByPostID(post.ID)
		},
	})
	r.commentType.AddFieldConfig("post", &graphql.Field{
		Type: r.postType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			comment, ok := p.Source.(*models.Comment)
			if !ok {
				return nil, nil
			}
			return r.db.PostRepo().FindByID(comment.PostID)
		},
	})

	r.tokenPayloadType = graphql.NewObject(graphql.ObjectConfig{
		Name: "TokenPayload",
		Fields: graphql.Fields{
			"token":        &graphql.Field{Type: graphql.String},
			"refreshToken": &graphql.Field{Type: graphql.String},
		},
	})
}

// argID parses a required ID argument into a uuid.
func argID(p graphql.ResolveParams, name string) (uuid.UUID, error) {
	raw, ok := p.Args[name]
	if !ok {
		return uuid.Nil, fmt.Errorf("missing %s", name)
	}
	id, err := uuid.Parse(fmt.Sprint(raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// argString returns a string argument; ok is false when absent.
func argString(p graphql.ResolveParams, name string) (string, bool) {
	raw, ok := p.Args[name]
	if !ok {
		return "", false
	}
	s, ok := raw.(string)
	return s, ok
}

// argInt returns an int argument or the given default.
func argInt(p graphql.ResolveParams, name string, defaultValue int) int {
	raw, ok := p.Args[name]
	if !ok {
		return defaultValue
	}
	n, ok := raw.(int)
	if !ok {
		return defaultValue
	}
	return n
}
