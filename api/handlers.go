package api

import (
	"net/http"

	"github.com/graphql-go/graphql"
	gqlhandler "github.com/graphql-go/handler"

	"github.com/rpupo63/blog-graphql-backend/auth"
	"github.com/rpupo63/blog-graphql-backend/database"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	tokenHandler tokenHandler
	graphql      http.Handler
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, tokens *auth.TokenManager, schema graphql.Schema) *routeHandlers {
	return &routeHandlers{
		tokenHandler: newTokenHandler(database.UserRepo(), tokens),
		// POST executes documents; GET serves the interactive explorer.
		graphql: gqlhandler.New(&gqlhandler.Config{
			Schema:   &schema,
			Pretty:   true,
			GraphiQL: true,
		}),
	}
}

// welcome is the informational root response; it is not part of the API
// contract.
func (h *routeHandlers) welcome() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("Welcome to the blog API. Queries and mutations live at /graphql; tokens at /api/token.\n"))
	}
}
