package model

import (
	"github.com/cloudwego/eino/schema"
)

// Turn event types, emitted in order: zero or more thinking events, zero or
// one tool-status event, exactly one final event.
const (
	EventThinking   = "thinking"
	EventToolStatus = "tool-status"
	EventFinal      = "final"
)

// TurnEvent is one element of the ordered, append-only event sequence a turn
// produces for downstream consumers (UI streaming). The sequence is produced
// once and is not replayable.
type TurnEvent struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// AppState stores per-invocation state for the Eino Graph.
// Concurrency model:
//   - This struct is registered as Graph Local State via compose.WithGenLocalState.
//   - All reads/writes happen only inside Eino state handlers:
//     WithStatePreHandler, WithStatePostHandler, or compose.ProcessState.
//   - Eino serializes access to state within these handlers, so no additional
//     mutex/atomic is required as long as you never touch it outside handlers.
//   - State is destroyed at end of invocation; durable facts are written
//     through the conversation repository and the caches instead.
type AppState struct {
	TurnID    string
	SessionID string // opaque, used only for audit/learning attribution
	UserID    string // opaque, used only for audit/learning attribution
	Question  string // the original user question, paired with the final answer when learning

	History   []*schema.Message // mutated only inside Eino state handlers
	Reasoning string            // extracted reasoning segment, excluded from the final answer
	ToolUsed  string            // name of the single honored tool call, if any
	Events    []TurnEvent       // ordered turn event stream

	ToolCallIDSeq int // local sequence to synthesize tool_call_id when provider omits

	// Accumulated total LLM cost (USD) across model invocations for this turn
	TotalCostUSD float64
}

// AppendEvent appends to the ordered event stream. Call only from inside
// Eino state handlers.
func (s *AppState) AppendEvent(eventType, content string) {
	s.Events = append(s.Events, TurnEvent{Type: eventType, Content: content})
}

// QueryInput represents the input for processing one user turn.
type QueryInput struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id,omitempty"`
	Query     string `json:"query"`
}

// TurnResult is the terminal output of one turn: the user-visible answer with
// reasoning markup stripped, the extracted reasoning trace (may be empty), and
// the full event sequence.
type TurnResult struct {
	TurnID    string      `json:"turn_id"`
	SessionID string      `json:"session_id"`
	Answer    string      `json:"answer"`
	Reasoning string      `json:"reasoning,omitempty"`
	ToolUsed  string      `json:"tool_used,omitempty"`
	Events    []TurnEvent `json:"events"`

	TotalCostUSD float64 `json:"total_cost_usd"`
}
