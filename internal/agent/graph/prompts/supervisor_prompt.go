package prompts

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/algotutor-core/server/internal/agent/graph/tools"
)

//go:embed template/supervisor_prompt.txt
var supervisorSystemPrompt string

// RenderSupervisorSystem renders the supervisor system prompt via the Eino
// prompt component (Go template), which both formats and emits prompt
// callbacks.
func RenderSupervisorSystem(ctx context.Context) (string, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(supervisorSystemPrompt),
	)
	vars := map[string]any{
		"StructuredTool": tools.ToolStructuredLookup,
		"SearchTool":     tools.ToolWebSearch,
		"DiagramTool":    tools.ToolDiagramGenerate,
		"SemanticTool":   tools.ToolSemanticLookup,
		"CombinedTool":   tools.ToolCombinedLookup,
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("supervisor prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("supervisor prompt render: empty result")
	}
	return msgs[0].Content, nil
}
