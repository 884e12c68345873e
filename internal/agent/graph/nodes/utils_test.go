package nodes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/algotutor-core/server/internal/agent/graph/tools"
)

func TestFirstToolArg(t *testing.T) {
	assert.Equal(t, "binary search tree", firstToolArg(`{"concept":"binary search tree"}`))
	assert.Equal(t, "what is a heap", firstToolArg(`{"question":"what is a heap"}`))
	assert.Equal(t, "go 1.25", firstToolArg(`{"topic":"go 1.25"}`))
	assert.Equal(t, "a linked list", firstToolArg(`{"query":"a linked list"}`))

	// concept wins when several keys are present
	assert.Equal(t, "bst", firstToolArg(`{"query":"x","concept":"bst"}`))

	assert.Equal(t, "", firstToolArg(`{}`))
	assert.Equal(t, "", firstToolArg(`not json`))
	assert.Equal(t, "", firstToolArg(`{"threshold":0.5}`))
}

func TestToolStatusMessage(t *testing.T) {
	msg := toolStatusMessage(tools.ToolCombinedLookup, `{"concept":"heap"}`)
	assert.Contains(t, msg, "memory and knowledge base")
	assert.Contains(t, msg, "'heap'")

	msg = toolStatusMessage(tools.ToolSemanticLookup, `{"question":"what is a heap"}`)
	assert.Contains(t, msg, "learning memory")

	msg = toolStatusMessage(tools.ToolWebSearch, `{"topic":"go release"}`)
	assert.Contains(t, msg, tools.ToolWebSearch)
	assert.Contains(t, msg, "'go release'")
}
