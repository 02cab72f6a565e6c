package graph

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rpupo63/blog-graphql-backend/auth"
	"github.com/rpupo63/blog-graphql-backend/database"
)

func newTestSchema(t *testing.T) (graphql.Schema, sqlmock.Sqlmock, *auth.TokenManager) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	dialector := postgres.New(postgres.Config{
		Conn:                 mockDB,
		DriverName:           "postgres",
		PreferSimpleProtocol: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	tokens := auth.NewTokenManager("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
	schema, err := NewSchema(NewResolver(database.New(db), tokens))
	require.NoError(t, err)

	return schema, mock, tokens
}

func execute(schema graphql.Schema, ctx context.Context, query string) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: query,
		Context:       ctx,
	})
}

func errorMessages(result *graphql.Result) []string {
	var messages []string
	for _, err := range result.Errors {
		messages = append(messages, err.Message)
	}
	return messages
}

func TestCreatePostRequiresAuthentication(t *testing.T) {
	schema, mock, _ := newTestSchema(t)

	result := execute(schema, context.Background(),
		`mutation { createPost(title: "T", content: "C") { id } }`)

	assert.Contains(t, errorMessages(result), "You must be logged in to create a post.")
	// No write may reach the store for a rejected anonymous mutation
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePostForcesAuthorToCaller(t *testing.T) {
	schema, mock, _ := newTestSchema(t)
	userID := uuid.New()
	postID := uuid.New()

	// The insert must carry the caller's id as author, never a client value
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "posts"`).
		WithArgs("T", "C", userID.String(), sqlmock.AnyArg(), sqlmock.AnyArg(), nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(postID.String()))
	mock.ExpectCommit()

	ctx := auth.CtxWithUserID(context.Background(), userID)
	result := execute(schema, ctx,
		`mutation { createPost(title: "T", content: "C") { id title } }`)

	require.Empty(t, result.Errors)
	data := result.Data.(map[string]interface{})
	created := data["createPost"].(map[string]interface{})
	assert.Equal(t, "T", created["title"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostByIDNotFound(t *testing.T) {
	schema, mock, _ := newTestSchema(t)

	mock.ExpectQuery(`SELECT (.+) FROM "posts" WHERE id =`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "content", "author_id", "created_at", "updated_at", "last_updated"}))

	result := execute(schema, context.Background(),
		`query { postById(id: "`+uuid.NewString()+`") { id } }`)

	assert.Contains(t, errorMessages(result), "Post not found")
	data := result.Data.(map[string]interface{})
	assert.Nil(t, data["postById"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePostRejectsNonOwner(t *testing.T) {
	schema, mock, _ := newTestSchema(t)
	owner := uuid.New()
	caller := uuid.New()
	postID := uuid.New()

	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM "posts" WHERE id =`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "content", "author_id", "created_at", "updated_at", "last_updated"}).
			AddRow(postID.String(), "Original", "Body", owner.String(), now, now, nil))

	ctx := auth.CtxWithUserID(context.Background(), caller)
	result := execute(schema, ctx,
		`mutation { updatePost(id: "`+postID.String()+`", title: "Hijacked") { id } }`)

	assert.Contains(t, errorMessages(result), "You can only update your own posts.")
	// No UPDATE statement may follow the rejected ownership check
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePostRejectsAnonymous(t *testing.T) {
	schema, mock, _ := newTestSchema(t)
	owner := uuid.New()
	postID := uuid.New()

	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM "posts" WHERE id =`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "content", "author_id", "created_at", "updated_at", "last_updated"}).
			AddRow(postID.String(), "Original", "Body", owner.String(), now, now, nil))

	result := execute(schema, context.Background(),
		`mutation { updatePost(id: "`+postID.String()+`", title: "Hijacked") { id } }`)

	assert.Contains(t, errorMessages(result), "You can only update your own posts.")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllAuthors(t *testing.T) {
	schema, mock, _ := newTestSchema(t)

	mock.ExpectQuery(`SELECT (.+) FROM "authors"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "bio"}).
			AddRow(uuid.NewString(), "Ada", "ada@example.com", nil).
			AddRow(uuid.NewString(), "Linus", "linus@example.com", "kernel person"))

	result := execute(schema, context.Background(),
		`query { allAuthors { name email } }`)

	require.Empty(t, result.Errors)
	data := result.Data.(map[string]interface{})
	authors := data["allAuthors"].([]interface{})
	require.Len(t, authors, 2)
	first := authors[0].(map[string]interface{})
	assert.Equal(t, "Ada", first["name"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCommentBumpsPostTimestamp(t *testing.T) {
	schema, mock, _ := newTestSchema(t)
	postID := uuid.New()
	commentID := uuid.New()

	now := time.Now()
	// Existence check on the post
	mock.ExpectQuery(`SELECT (.+) FROM "posts" WHERE id =`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "content", "author_id", "created_at", "updated_at", "last_updated"}).
			AddRow(postID.String(), "T", "C", uuid.NewString(), now, now, nil))
	// Comment insert and post bump share one transaction
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "comments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(commentID.String()))
	mock.ExpectExec(`UPDATE "posts" SET "last_updated"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result := execute(schema, context.Background(),
		`mutation { createComment(postId: "`+postID.String()+`", content: "nice") { content } }`)

	require.Empty(t, result.Errors)
	data := result.Data.(map[string]interface{})
	created := data["createComment"].(map[string]interface{})
	assert.Equal(t, "nice", created["content"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCommentOnMissingPost(t *testing.T) {
	schema, mock, _ := newTestSchema(t)

	mock.ExpectQuery(`SELECT (.+) FROM "posts" WHERE id =`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "content", "author_id", "created_at", "updated_at", "last_updated"}))

	result := execute(schema, context.Background(),
		`mutation { createComment(postId: "`+uuid.NewString()+`", content: "nice") { id } }`)

	assert.Contains(t, errorMessages(result), "Post not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenAuthIssuesVerifiableTokens(t *testing.T) {
	schema, mock, tokens := newTestSchema(t)
	userID := uuid.New()

	hash, err := auth.HashPassword("correct horse")
	require.NoError(t, err)

	userRow := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
			AddRow(userID.String(), "alice", "alice@example.com", hash, time.Now())
	}

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE username =`).
		WithArgs("alice", 1).
		WillReturnRows(userRow())

	result := execute(schema, context.Background(),
		`mutation { tokenAuth(username: "alice", password: "correct horse") { token refreshToken } }`)

	require.Empty(t, result.Errors)
	data := result.Data.(map[string]interface{})
	payload := data["tokenAuth"].(map[string]interface{})

	claims, err := tokens.ParseAccessToken(payload["token"].(string))
	require.NoError(t, err)
	subject, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, subject)

	_, err = tokens.ParseRefreshToken(payload["refreshToken"].(string))
	assert.NoError(t, err)
}

func TestTokenAuthWrongPassword(t *testing.T) {
	schema, mock, _ := newTestSchema(t)

	hash, err := auth.HashPassword("correct horse")
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE username =`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
			AddRow(uuid.NewString(), "alice", "alice@example.com", hash, time.Now()))

	result := execute(schema, context.Background(),
		`mutation { tokenAuth(username: "alice", password: "battery staple") { token } }`)

	assert.Contains(t, errorMessages(result), "Invalid credentials")
	data := result.Data.(map[string]interface{})
	assert.Nil(t, data["tokenAuth"])
}

func TestTokenAuthUnknownUser(t *testing.T) {
	schema, mock, _ := newTestSchema(t)

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE username =`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}))

	result := execute(schema, context.Background(),
		`mutation { tokenAuth(username: "nobody", password: "whatever") { token } }`)

	assert.Contains(t, errorMessages(result), "Invalid credentials")
}

func TestTokenAuthStoreFailure(t *testing.T) {
	schema, mock, _ := newTestSchema(t)

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE username =`).
		WillReturnError(errors.New("connection refused"))

	result := execute(schema, context.Background(),
		`mutation { tokenAuth(username: "alice", password: "hunter2") { token } }`)

	// A failing store surfaces its own error, not a credential rejection
	assert.Contains(t, errorMessages(result), "Error fetching user: connection refused")
	assert.NotContains(t, errorMessages(result), "Invalid credentials")
}

func TestAllPostsPassesFilterArguments(t *testing.T) {
	schema, mock, _ := newTestSchema(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "title", "content", "author_id", "created_at", "updated_at", "last_updated"}).
		AddRow(uuid.NewString(), "Go intro", "Body", uuid.NewString(), now, now, nil)

	mock.ExpectQuery(`SELECT (.+) FROM "posts" WHERE title ILIKE (.+) ORDER BY created_at LIMIT (.+) OFFSET`).
		WithArgs(driver.Value("%Go%"), 1, 2).
		WillReturnRows(rows)

	result := execute(schema, context.Background(),
		`query { allPosts(titleContains: "Go", skip: 2, limit: 1) { title } }`)

	require.Empty(t, result.Errors)
	data := result.Data.(map[string]interface{})
	posts := data["allPosts"].([]interface{})
	require.Len(t, posts, 1)
	assert.Equal(t, "Go intro", posts[0].(map[string]interface{})["title"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllPostsExplicitZeroLimit(t *testing.T) {
	schema, mock, _ := newTestSchema(t)

	result := execute(schema, context.Background(),
		`query { allPosts(limit: 0) { id } }`)

	require.Empty(t, result.Errors)
	data := result.Data.(map[string]interface{})
	assert.Empty(t, data["allPosts"])
	// An empty page needs no trip to the store
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllPostsNullAuthorIDUnfiltered(t *testing.T) {
	schema, mock, _ := newTestSchema(t)

	now := time.Now()
	// The statement must carry no author_id predicate
	mock.ExpectQuery(`SELECT (.+) FROM "posts" ORDER BY created_at LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "content", "author_id", "created_at", "updated_at", "last_updated"}).
			AddRow(uuid.NewString(), "Go intro", "Body", uuid.NewString(), now, now, nil))

	result := execute(schema, context.Background(),
		`query { allPosts(authorId: null) { title } }`)

	require.Empty(t, result.Errors)
	data := result.Data.(map[string]interface{})
	posts := data["allPosts"].([]interface{})
	require.Len(t, posts, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
