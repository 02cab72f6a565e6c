package graph

import (
	"github.com/graphql-go/graphql"
)

// NewSchema composes the query and mutation registries into the executable
// schema. Registration happens here, at startup, rather than as a side
// effect of type declarations.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	return graphql.NewSchema(graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{
			Name:   "Query",
			Fields: r.queryFields(),
		}),
		Mutation: graphql.NewObject(graphql.ObjectConfig{
			Name:   "Mutation",
			Fields: r.mutationFields(),
		}),
	})
}
