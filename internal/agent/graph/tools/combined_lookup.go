package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/algotutor-core/server/internal/cache"
	logx "github.com/algotutor-core/server/pkg/logger"
	"github.com/cloudwego/eino/schema"
)

// Section labels for the combined answer.
const (
	combinedMemoryLabel    = "From my memory of past interactions:"
	combinedKnowledgeLabel = "From the knowledge base:"
)

func combinedNotFound(concept string) string {
	return fmt.Sprintf("Sorry, I couldn't find anything about '%s' in my memory or knowledge base.", concept)
}

// newCombinedLookupTool queries the semantic cache at a lower threshold and
// the structured knowledge table, concatenating both hits with labeled
// sections. The not-found sentinel is returned only when BOTH are empty.
func newCombinedLookupTool(deps Deps) *textTool {
	return &textTool{
		info: &schema.ToolInfo{
			Name: ToolCombinedLookup,
			Desc: "Search both the memory of past interactions and the structured knowledge base for a concept, combining whatever is found. The preferred tool for DSA questions.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"concept": {
					Type:     "string",
					Desc:     "The concept or question to search for in memory and the knowledge base.",
					Required: true,
				},
			}),
		},
		run: func(ctx context.Context, args map[string]any) string {
			concept := stringArg(args, "concept")
			if concept == "" {
				return "combined_lookup needs a 'concept' argument."
			}

			var sections []string

			if deps.Memory != nil {
				res, err := deps.Memory.Get(ctx, concept, deps.combinedThreshold())
				if err != nil {
					logx.Warn().Err(err).Str("concept", concept).Msg("semantic side of combined lookup failed")
				} else if res.Kind == cache.MatchFound {
					sections = append(sections, combinedMemoryLabel+"\n"+res.Entry.Answer)
				}
			}

			if deps.Knowledge != nil {
				c, err := deps.Knowledge.LookupConcept(ctx, concept)
				if err != nil {
					logx.Warn().Err(err).Str("concept", concept).Msg("knowledge side of combined lookup failed")
				} else if c != nil {
					sections = append(sections, combinedKnowledgeLabel+"\n"+c.Explanation)
				}
			}

			if len(sections) == 0 {
				return combinedNotFound(concept)
			}
			return strings.Join(sections, "\n\n")
		},
	}
}
