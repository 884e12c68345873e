package model

import "context"

// Concept is one entry of the structured knowledge table.
type Concept struct {
	Title       string   `json:"title"`
	Explanation string   `json:"explanation"`
	Keywords    []string `json:"keywords,omitempty"`
}

// KnowledgeRepository is the read port over the structured knowledge table.
// LookupConcept returns nil (not an error) when no concept matches.
type KnowledgeRepository interface {
	LookupConcept(ctx context.Context, concept string) (*Concept, error)
}
