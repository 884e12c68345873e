package tools

import (
	"context"
	"fmt"

	logx "github.com/algotutor-core/server/pkg/logger"
	"github.com/cloudwego/eino/schema"
)

func structuredLookupNotFound(concept string) string {
	return fmt.Sprintf("Sorry, I couldn't find a definition for '%s'.", concept)
}

// newStructuredLookupTool matches a concept against the static knowledge
// table. A miss is a sentinel answer, never an error.
func newStructuredLookupTool(deps Deps) *textTool {
	return &textTool{
		info: &schema.ToolInfo{
			Name: ToolStructuredLookup,
			Desc: "Look up a specific data structure or algorithm concept in the structured knowledge base (textbook). Use this when the user asks about a well-known DSA concept such as binary search tree, hash table, or big-O notation.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"concept": {
					Type:     "string",
					Desc:     "Name of the concept to look up, e.g. 'binary search tree', 'hash table', 'merge sort'.",
					Required: true,
				},
			}),
		},
		run: func(ctx context.Context, args map[string]any) string {
			concept := stringArg(args, "concept")
			if concept == "" {
				return "structured_lookup needs a 'concept' argument naming the topic to look up."
			}

			logx.Debug().Str("concept", concept).Msg("querying knowledge base")
			c, err := deps.Knowledge.LookupConcept(ctx, concept)
			if err != nil {
				logx.Error().Err(err).Str("concept", concept).Msg("knowledge base lookup failed")
				return fmt.Sprintf("Error connecting to knowledge base: %v", err)
			}
			if c == nil {
				return structuredLookupNotFound(concept)
			}
			return c.Explanation
		},
	}
}
