package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/algotutor-core/server/internal/agent/model"
	"github.com/algotutor-core/server/internal/cache"
	"github.com/algotutor-core/server/internal/provider/websearch"
	logx "github.com/algotutor-core/server/pkg/logger"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
)

// Tool names. The registry is a closed set: dispatch is a map lookup, never
// dynamic attribute access.
const (
	ToolStructuredLookup = "structured_lookup"
	ToolWebSearch        = "web_search"
	ToolDiagramGenerate  = "diagram_generate"
	ToolSemanticLookup   = "semantic_lookup"
	ToolCombinedLookup   = "combined_lookup"
)

// Default similarity thresholds for the memory-backed tools.
const (
	DefaultSemanticThreshold = 0.7
	CombinedLookupThreshold  = 0.6
)

// Searcher is the web search capability the registry needs. Satisfied by
// *websearch.Client; may be nil when the provider is not configured.
type Searcher interface {
	Available() bool
	Search(ctx context.Context, topic string) ([]websearch.Result, error)
}

// Deps carries every collaborator the built-in tools use. Optional fields
// (Search, DiagramModel, Memory's embedder) degrade to sentinel answers when
// absent instead of failing the turn.
type Deps struct {
	Knowledge    model.KnowledgeRepository
	Search       Searcher
	ToolCache    cache.DeterministicCache
	Memory       *cache.SemanticCache
	DiagramModel einomodel.BaseChatModel

	SemanticThreshold float64
	CombinedThreshold float64
}

func (d *Deps) semanticThreshold() float64 {
	if d.SemanticThreshold > 0 {
		return d.SemanticThreshold
	}
	return DefaultSemanticThreshold
}

func (d *Deps) combinedThreshold() float64 {
	if d.CombinedThreshold > 0 {
		return d.CombinedThreshold
	}
	return CombinedLookupThreshold
}

// textTool adapts a plain text-returning function to the uniform eino tool
// contract. Every built-in tool returns free-form text and never an error:
// provider faults are converted to descriptive text at this boundary so the
// executor always receives a usable result.
type textTool struct {
	info *schema.ToolInfo
	run  func(ctx context.Context, args map[string]any) string
}

func (t *textTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return t.info, nil
}

func (t *textTool) InvokableRun(ctx context.Context, argumentsInJSON string, _ ...tool.Option) (string, error) {
	args := map[string]any{}
	if s := strings.TrimSpace(argumentsInJSON); s != "" {
		if err := json.Unmarshal([]byte(s), &args); err != nil {
			// keep going with empty args; the tool reports the missing argument
			logx.Warn().Err(err).Str("tool", t.info.Name).Msg("malformed tool arguments; ignoring")
		}
	}
	return t.run(ctx, args), nil
}

var _ tool.InvokableTool = (*textTool)(nil)

// Registry holds the fixed set of named, schema-typed tools the orchestrator
// may invoke.
type Registry struct {
	tools map[string]tool.InvokableTool
	infos []*schema.ToolInfo
}

// NewRegistry builds the built-in tool set from deps.
func NewRegistry(ctx context.Context, deps Deps) (*Registry, error) {
	all := []tool.InvokableTool{
		newStructuredLookupTool(deps),
		newWebSearchTool(deps),
		newDiagramTool(deps),
		newSemanticLookupTool(deps),
		newCombinedLookupTool(deps),
	}

	r := &Registry{tools: make(map[string]tool.InvokableTool, len(all))}
	for _, t := range all {
		info, err := t.Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("tool info: %w", err)
		}
		if _, dup := r.tools[info.Name]; dup {
			return nil, fmt.Errorf("duplicate tool name %q", info.Name)
		}
		r.tools[info.Name] = t
		r.infos = append(r.infos, info)
	}
	return r, nil
}

// Lookup returns the named tool, or false when it is not registered.
func (r *Registry) Lookup(name string) (tool.InvokableTool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Infos returns the schema of every registered tool, for binding to the
// supervisor model.
func (r *Registry) Infos() []*schema.ToolInfo {
	return r.infos
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.tools)
}

// ===== Argument helpers =====

func stringArg(args map[string]any, key string) string {
	v, ok := args[key]
	if !ok {
		return ""
	}
	switch vv := v.(type) {
	case string:
		return strings.TrimSpace(vv)
	default:
		// coerce non-string to string
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func floatArg(args map[string]any, key string, fallback float64) float64 {
	v, ok := args[key]
	if !ok {
		return fallback
	}
	switch vv := v.(type) {
	case float64:
		// JSON numbers decode as float64
		return vv
	case string:
		var f float64
		if _, err := fmt.Sscanf(strings.TrimSpace(vv), "%g", &f); err == nil {
			return f
		}
	}
	return fallback
}
