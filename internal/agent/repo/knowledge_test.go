package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/algotutor-core/server/internal/agent/model"
)

func TestStaticKnowledgeLookup(t *testing.T) {
	ctx := context.Background()
	r := NewStaticKnowledgeRepository()

	tests := []struct {
		query     string
		wantTitle string
	}{
		{"binary search tree", "Binary Search Tree"},
		{"Binary Search Tree", "Binary Search Tree"},
		{"what is a bst", "Binary Search Tree"},
		{"hash table", "Hash Table"},
		{"big-o notation", "Big-O Notation"},
		{"linked list", "Linked List"},
	}
	for _, tt := range tests {
		c, err := r.LookupConcept(ctx, tt.query)
		require.NoError(t, err, tt.query)
		require.NotNil(t, c, "expected a hit for %q", tt.query)
		assert.Equal(t, tt.wantTitle, c.Title, tt.query)
		assert.NotEmpty(t, c.Explanation)
	}
}

func TestStaticKnowledgeLookupMiss(t *testing.T) {
	ctx := context.Background()
	r := NewStaticKnowledgeRepository()

	c, err := r.LookupConcept(ctx, "skip list")
	require.NoError(t, err)
	assert.Nil(t, c, "a miss is nil, never an error")

	c, err = r.LookupConcept(ctx, "   ")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestStaticKnowledgeCustomConcepts(t *testing.T) {
	ctx := context.Background()
	r := NewStaticKnowledgeRepositoryWith([]model.Concept{
		{Title: "Bloom Filter", Explanation: "A probabilistic set membership structure.", Keywords: []string{"bloom"}},
	})

	c, err := r.LookupConcept(ctx, "bloom filter")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Bloom Filter", c.Title)

	c, err = r.LookupConcept(ctx, "binary search tree")
	require.NoError(t, err)
	assert.Nil(t, c, "custom table replaces the default concepts")
}
