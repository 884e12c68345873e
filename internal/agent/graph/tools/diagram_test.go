package tools

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/algotutor-core/server/internal/cache"
)

func TestDiagramUnavailableWithoutModel(t *testing.T) {
	tool := newDiagramTool(Deps{})
	out := runTool(t, tool, `{"query":"a linked list"}`)
	assert.Equal(t, diagramUnavailable, out)
}

func TestDiagramGeneratesExplanationAndPayload(t *testing.T) {
	model := &fakeChatModel{responses: []string{
		"graph TD\n  A --> B\n  B --> C",
		"A linked list chains nodes through next pointers.",
	}}
	tool := newDiagramTool(Deps{DiagramModel: model})

	out := runTool(t, tool, `{"query":"a linked list"}`)
	assert.Equal(t, fmt.Sprintf(
		"A linked list chains nodes through next pointers.\n\n%s\ngraph TD\n  A --> B\n  B --> C\n%s",
		DiagramStart, DiagramEnd), out)
	assert.Equal(t, 2, model.calls, "structure and explanation are separate calls")
}

func TestDiagramStripsCodeFence(t *testing.T) {
	model := &fakeChatModel{responses: []string{
		"```mermaid\ngraph TD\n  A --> B\n```",
		"Two nodes.",
	}}
	tool := newDiagramTool(Deps{DiagramModel: model})

	out := runTool(t, tool, `{"query":"two nodes"}`)
	assert.Contains(t, out, DiagramStart+"\ngraph TD\n  A --> B\n"+DiagramEnd)
	assert.NotContains(t, out, "```")
}

func TestDiagramServedFromCacheOnRepeat(t *testing.T) {
	model := &fakeChatModel{responses: []string{
		"graph TD\n  A --> B",
		"Two nodes.",
	}}
	deps := Deps{DiagramModel: model, ToolCache: cache.NewMemoryDeterministicCache()}
	tool := newDiagramTool(deps)

	first := runTool(t, tool, `{"query":"Two Nodes"}`)
	second := runTool(t, tool, `{"query":"two nodes"}`)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, model.calls, "cached repeat must not call the model again")
}

func TestDiagramModelFailureBecomesText(t *testing.T) {
	model := &fakeChatModel{err: errors.New("quota exceeded")}
	tool := newDiagramTool(Deps{DiagramModel: model})

	out := runTool(t, tool, `{"query":"a heap"}`)
	assert.Contains(t, out, "Error generating diagram")
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"graph TD\n  A --> B", "graph TD\n  A --> B"},
		{"```mermaid\ngraph TD\n```", "graph TD"},
		{"```\ngraph TD\n```", "graph TD"},
		{"  ```mermaid\ngraph TD\n```  ", "graph TD"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripCodeFence(tt.in), "input: %q", tt.in)
	}
}

func TestDiagramEmptyStructureIsError(t *testing.T) {
	model := &fakeChatModel{responses: []string{"```mermaid\n```", "unused"}}
	tool := newDiagramTool(Deps{DiagramModel: model})

	out := runTool(t, tool, `{"query":"a heap"}`)
	assert.True(t, strings.HasPrefix(out, "Error generating diagram"), "got: %s", out)
}
