package tools

import (
	"context"
	"fmt"

	"github.com/algotutor-core/server/internal/cache"
	logx "github.com/algotutor-core/server/pkg/logger"
	"github.com/cloudwego/eino/schema"
)

const (
	semanticUnavailable = "Semantic memory is not available - embeddings not configured."
	semanticNoMatch     = "I don't have a similar past answer for that yet."
)

// newSemanticLookupTool queries only the semantic cache of learned
// question/answer pairs.
func newSemanticLookupTool(deps Deps) *textTool {
	return &textTool{
		info: &schema.ToolInfo{
			Name: ToolSemanticLookup,
			Desc: "Search the memory of past interactions for an answer to a semantically similar question. Use when the question sounds like something that may have been asked and answered before.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"question": {
					Type:     "string",
					Desc:     "The question to match against remembered past interactions.",
					Required: true,
				},
				"threshold": {
					Type: "number",
					Desc: "Optional minimum cosine similarity in (0, 1]; defaults to 0.7.",
				},
			}),
		},
		run: func(ctx context.Context, args map[string]any) string {
			question := stringArg(args, "question")
			if question == "" {
				return "semantic_lookup needs a 'question' argument."
			}
			if deps.Memory == nil {
				return semanticUnavailable
			}
			threshold := floatArg(args, "threshold", deps.semanticThreshold())

			res, err := deps.Memory.Get(ctx, question, threshold)
			if err != nil {
				logx.Error().Err(err).Str("question", question).Msg("semantic lookup failed")
				return fmt.Sprintf("Error reading semantic memory: %v", err)
			}
			switch res.Kind {
			case cache.MatchFound:
				logx.Debug().Float64("score", res.Score).Str("matched", res.Entry.Question).Msg("semantic memory hit")
				return res.Entry.Answer
			case cache.MatchUnavailable:
				return semanticUnavailable
			default:
				return semanticNoMatch
			}
		},
	}
}
