package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the public surface: the informational root, the token
// pair endpoints, and the query/mutation endpoint.
func setupRoutes(r chi.Router, handlers *routeHandlers, identity identityMiddleware) {
	r.Get("/", handlers.welcome())

	// Credential issuance and renewal
	r.Post("/api/token", handlers.tokenHandler.obtainPair())
	r.Post("/api/token/refresh", handlers.tokenHandler.refresh())

	// Query/mutation endpoint. Identity is attached here and only here;
	// a bad bearer token never rejects the request at this layer.
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(identity.attachIdentity)

		r.Handle("/graphql", handlers.graphql)
	})
}
