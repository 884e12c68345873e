package tools

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/algotutor-core/server/internal/cache"
	logx "github.com/algotutor-core/server/pkg/logger"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

// Delimiters wrapping the Mermaid payload in a diagram answer, placed inline
// after the explanation paragraph for downstream rendering.
const (
	DiagramStart = "%%MERMAID%%"
	DiagramEnd   = "%%/MERMAID%%"
)

const diagramUnavailable = "Diagram generation is not available - diagram model not configured."

//go:embed template/diagram_structure_prompt.txt
var diagramStructurePrompt string

//go:embed template/diagram_explanation_prompt.txt
var diagramExplanationPrompt string

// renderDiagramPrompt formats one of the diagram prompt templates via the
// Eino prompt component so prompt callbacks fire.
func renderDiagramPrompt(ctx context.Context, tplText, query string) ([]*schema.Message, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.UserMessage(tplText),
	)
	msgs, err := tpl.Format(ctx, map[string]any{"Query": query})
	if err != nil {
		return nil, fmt.Errorf("diagram prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return nil, fmt.Errorf("diagram prompt render: empty result")
	}
	return msgs, nil
}

// stripCodeFence removes markdown code fences the model may add despite
// instructions.
func stripCodeFence(code string) string {
	code = strings.TrimSpace(code)
	if !strings.HasPrefix(code, "```") {
		return code
	}
	code = strings.TrimPrefix(code, "```")
	if idx := strings.Index(code, "\n"); idx >= 0 {
		// drop a language hint on the fence line
		code = code[idx+1:]
	}
	code = strings.TrimSuffix(strings.TrimSpace(code), "```")
	return strings.TrimSpace(code)
}

// newDiagramTool runs two sequential model calls: Mermaid structure first,
// then a short explanation, concatenated as explanation paragraph plus
// delimited diagram payload. Results go through the deterministic cache.
func newDiagramTool(deps Deps) *textTool {
	return &textTool{
		info: &schema.ToolInfo{
			Name: ToolDiagramGenerate,
			Desc: "Generate a Mermaid.js diagram visualizing an algorithm flow or a data structure, with a short explanation. Use when the user asks to see, draw, or visualize something.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"query": {
					Type:     "string",
					Desc:     "Natural language description of the diagram to generate, e.g. 'a binary search tree with 7 nodes'.",
					Required: true,
				},
			}),
		},
		run: func(ctx context.Context, args map[string]any) string {
			query := stringArg(args, "query")
			if query == "" {
				return "diagram_generate needs a 'query' argument describing the diagram."
			}
			if deps.DiagramModel == nil {
				return diagramUnavailable
			}

			if deps.ToolCache != nil {
				if answer, hit, err := deps.ToolCache.Get(ctx, cache.NamespaceDiagram, query); err != nil {
					logx.Warn().Err(err).Str("query", query).Msg("tool cache read failed; generating anyway")
				} else if hit {
					logx.Debug().Str("query", query).Msg("diagram served from cache")
					return answer
				}
			}

			logx.Debug().Str("query", query).Msg("generating diagram")

			// first call: diagram structure
			structMsgs, err := renderDiagramPrompt(ctx, diagramStructurePrompt, query)
			if err != nil {
				return fmt.Sprintf("Error generating diagram: %v", err)
			}
			structOut, err := deps.DiagramModel.Generate(ctx, structMsgs)
			if err != nil {
				logx.Error().Err(err).Str("query", query).Msg("diagram structure generation failed")
				return fmt.Sprintf("Error generating diagram: %v", err)
			}
			code := stripCodeFence(structOut.Content)
			if code == "" {
				return fmt.Sprintf("Error generating diagram: model returned no structure for '%s'", query)
			}

			// second call: explanation paragraph
			explMsgs, err := renderDiagramPrompt(ctx, diagramExplanationPrompt, query)
			if err != nil {
				return fmt.Sprintf("Error generating diagram: %v", err)
			}
			explOut, err := deps.DiagramModel.Generate(ctx, explMsgs)
			if err != nil {
				logx.Error().Err(err).Str("query", query).Msg("diagram explanation generation failed")
				return fmt.Sprintf("Error generating diagram: %v", err)
			}
			explanation := strings.TrimSpace(explOut.Content)

			answer := fmt.Sprintf("%s\n\n%s\n%s\n%s", explanation, DiagramStart, code, DiagramEnd)

			if deps.ToolCache != nil {
				if err := deps.ToolCache.Put(ctx, cache.NamespaceDiagram, query, answer); err != nil {
					logx.Warn().Err(err).Str("query", query).Msg("tool cache write failed")
				}
			}
			return answer
		},
	}
}
