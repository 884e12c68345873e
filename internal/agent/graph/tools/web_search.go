package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/algotutor-core/server/internal/cache"
	errx "github.com/algotutor-core/server/internal/core/error"
	logx "github.com/algotutor-core/server/pkg/logger"
	"github.com/cloudwego/eino/schema"
)

// Sentinel answers for the web search tool.
const (
	webSearchUnavailable = "Web search is not available - API key not configured."
	webSearchTimedOut    = "Web search timed out. Please try again."
	webSearchNoResults   = "No web search results found."
)

// newWebSearchTool queries the search provider through the deterministic
// cache. Empty provider result lists are deliberately NOT cached so a flaky
// empty response never shadows later real hits.
func newWebSearchTool(deps Deps) *textTool {
	return &textTool{
		info: &schema.ToolInfo{
			Name: ToolWebSearch,
			Desc: "Perform a web search for real-time or recent information that is not in the knowledge base, such as new language releases, library versions, or current events.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"topic": {
					Type:     "string",
					Desc:     "The topic to search the web for.",
					Required: true,
				},
			}),
		},
		run: func(ctx context.Context, args map[string]any) string {
			topic := stringArg(args, "topic")
			if topic == "" {
				return "web_search needs a 'topic' argument describing what to search for."
			}
			if deps.Search == nil || !deps.Search.Available() {
				return webSearchUnavailable
			}

			if deps.ToolCache != nil {
				if answer, hit, err := deps.ToolCache.Get(ctx, cache.NamespaceWebSearch, topic); err != nil {
					logx.Warn().Err(err).Str("topic", topic).Msg("tool cache read failed; searching anyway")
				} else if hit {
					logx.Debug().Str("topic", topic).Msg("web search served from cache")
					return answer
				}
			}

			logx.Debug().Str("topic", topic).Msg("searching the web")
			results, err := deps.Search.Search(ctx, topic)
			if err != nil {
				if errx.IsKind(err, errx.KindProviderTimeout) {
					return webSearchTimedOut
				}
				if errx.IsKind(err, errx.KindConfigUnavailable) {
					return webSearchUnavailable
				}
				return fmt.Sprintf("Error during web search: %v", err)
			}
			if len(results) == 0 {
				return webSearchNoResults
			}

			snippets := make([]string, 0, len(results))
			for _, res := range results {
				snippets = append(snippets, fmt.Sprintf("Title: %s\nSnippet: %s", res.Title, res.Description))
			}
			answer := strings.Join(snippets, "\n\n")

			if deps.ToolCache != nil {
				if err := deps.ToolCache.Put(ctx, cache.NamespaceWebSearch, topic, answer); err != nil {
					logx.Warn().Err(err).Str("topic", topic).Msg("tool cache write failed")
				}
			}
			return answer
		},
	}
}
