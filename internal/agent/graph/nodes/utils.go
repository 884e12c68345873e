package nodes

import (
	"encoding/json"
	"fmt"

	"github.com/algotutor-core/server/internal/agent/graph/tools"
)

// toolStatusMessage renders the human-facing tool-status line emitted right
// before a tool runs.
func toolStatusMessage(toolName, argsJSON string) string {
	arg := firstToolArg(argsJSON)
	switch toolName {
	case tools.ToolCombinedLookup:
		return fmt.Sprintf("🧠 Searching both memory and knowledge base for '%s'...", arg)
	case tools.ToolSemanticLookup:
		return fmt.Sprintf("💭 Checking my learning memory for '%s'...", arg)
	default:
		return fmt.Sprintf("⚙️ Executing: %s with query '%s'...", toolName, arg)
	}
}

// firstToolArg pulls the primary string argument out of a tool-call arguments
// payload without caring which parameter name the tool uses.
func firstToolArg(argsJSON string) string {
	var args map[string]any
	if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
		return ""
	}
	for _, key := range []string{"concept", "question", "topic", "query"} {
		if v, ok := args[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
