package nodes

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"

	"github.com/algotutor-core/server/internal/agent/graph/conversations"
	"github.com/algotutor-core/server/internal/agent/graph/parsers"
	"github.com/algotutor-core/server/internal/agent/graph/prompts"
	"github.com/algotutor-core/server/internal/agent/graph/tools"
	"github.com/algotutor-core/server/internal/agent/model"
	"github.com/algotutor-core/server/internal/cache"
	errx "github.com/algotutor-core/server/internal/core/error"
	logx "github.com/algotutor-core/server/pkg/logger"
)

// Node names in the turn state machine: Decide (supervisor) → Act (tool
// executor, conditional) → Present (terminal).
const (
	NodeInputConverter = "InputConverter"
	NodeSupervisor     = "Supervisor"
	NodeToolExecutor   = "ToolExecutor"
	NodePresenter      = "Presenter"
)

// NewInputConverterPreHandler seeds the per-turn state before anything runs.
func NewInputConverterPreHandler() func(context.Context, model.QueryInput, *model.AppState) (model.QueryInput, error) {
	return func(ctx context.Context, in model.QueryInput, s *model.AppState) (model.QueryInput, error) {
		s.TurnID = uuid.NewString()
		s.SessionID = in.SessionID
		s.UserID = in.UserID
		s.Question = in.Query
		// Reset turn-scoped accumulators for each new query
		s.Events = nil
		s.Reasoning = ""
		s.ToolUsed = ""
		s.ToolCallIDSeq = 0
		s.TotalCostUSD = 0
		return in, nil
	}
}

// NewInputConverterNode saves the user message, loads recent history and
// prepends the supervisor system prompt.
func NewInputConverterNode(mm *conversations.MessagesManager) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, input model.QueryInput) ([]*schema.Message, error) {
		history, err := mm.ProcessUserMessage(ctx, input.SessionID, input.Query)
		if err != nil {
			return nil, fmt.Errorf("error getting conversation context: %w", err)
		}

		// Generate system prompt via Eino prompt component (enables prompt callbacks)
		systemPrompt, err := prompts.RenderSupervisorSystem(ctx)
		if err != nil {
			return nil, fmt.Errorf("render supervisor system prompt: %w", err)
		}

		messages := make([]*schema.Message, 0, len(history)+1)
		messages = append(messages, schema.SystemMessage(systemPrompt))
		messages = append(messages, history...)

		return messages, nil
	})
}

// NewSupervisorPreHandler records the outbound context in state.
func NewSupervisorPreHandler() func(context.Context, []*schema.Message, *model.AppState) ([]*schema.Message, error) {
	return func(ctx context.Context, in []*schema.Message, state *model.AppState) ([]*schema.Message, error) {
		state.History = append(state.History, in...)
		logx.Debug().Str("turn_id", state.TurnID).Msg("AI thinking...")
		return in, nil
	}
}

// NewSupervisorPostHandler consumes the Decide output: accounts usage cost,
// extracts the reasoning segment into thinking events, honors only the FIRST
// tool call when several are requested, and emits the tool-status event.
func NewSupervisorPostHandler(modelName string) func(context.Context, *schema.Message, *model.AppState) (*schema.Message, error) {
	return func(ctx context.Context, out *schema.Message, state *model.AppState) (*schema.Message, error) {
		if model.CostEnabled() && out != nil && out.ResponseMeta != nil && out.ResponseMeta.Usage != nil {
			pricing := model.ResolvePricing(modelName)
			inC, outC, totalC := model.ComputeCost(out.ResponseMeta.Usage, pricing)
			logx.Debug().
				Str("session_id", state.SessionID).
				Str("node", NodeSupervisor).
				Str("model", modelName).
				Int("prompt_tokens", out.ResponseMeta.Usage.PromptTokens).
				Int("completion_tokens", out.ResponseMeta.Usage.CompletionTokens).
				Int("total_tokens", out.ResponseMeta.Usage.TotalTokens).
				Float64("input_cost_usd", inC).
				Float64("output_cost_usd", outC).
				Float64("total_cost_usd", totalC).
				Msg("LLM usage")
			state.TotalCostUSD += totalC
		}
		if out == nil {
			return nil, fmt.Errorf("supervisor returned nil message")
		}

		// Reasoning segment → thinking events; answer text keeps only the
		// user-visible remainder.
		reasoning, answer := parsers.ExtractReasoning(out.Content)
		state.Reasoning = reasoning
		for _, line := range parsers.ReasoningLines(reasoning) {
			state.AppendEvent(model.EventThinking, "🤔 "+line)
		}
		out.Content = answer

		// Only the first tool call is honored; extras are dropped. Documented
		// simplification, not an error.
		if len(out.ToolCalls) > 1 {
			logx.Warn().
				Int("requested", len(out.ToolCalls)).
				Str("honored", out.ToolCalls[0].Function.Name).
				Msg("multiple tool calls requested; honoring only the first")
			out.ToolCalls = out.ToolCalls[:1]
		}
		if len(out.ToolCalls) == 1 {
			tc := &out.ToolCalls[0]
			// some providers omit tool_call IDs; synthesize one
			if strings.TrimSpace(tc.ID) == "" {
				state.ToolCallIDSeq++
				tc.ID = fmt.Sprintf("call_%d", state.ToolCallIDSeq)
			}
			state.ToolUsed = tc.Function.Name
			state.AppendEvent(model.EventToolStatus, toolStatusMessage(tc.Function.Name, tc.Function.Arguments))
			logx.Debug().Str("tool", tc.Function.Name).Msg("Routing to tool")
		} else {
			logx.Debug().Msg("Direct answer, no tool call")
		}

		state.History = append(state.History, out)
		return out, nil
	}
}

// NewDecideCondition routes Decide output: exactly one tool call goes to Act,
// everything else goes straight to Present.
func NewDecideCondition() func(context.Context, *schema.Message) (string, error) {
	return func(ctx context.Context, input *schema.Message) (string, error) {
		if len(input.ToolCalls) > 0 {
			return NodeToolExecutor, nil
		}
		return NodePresenter, nil
	}
}

// NewToolExecutorNode performs the Act state: look the tool up by name and
// invoke it synchronously. An unregistered name is fatal to the turn; a
// tool's internal failure was already converted to text at the tool boundary,
// so Act always produces a ToolResult otherwise.
func NewToolExecutorNode(registry *tools.Registry) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in *schema.Message) (*schema.Message, error) {
		if len(in.ToolCalls) == 0 {
			return nil, fmt.Errorf("tool executor invoked without a tool call")
		}
		tc := in.ToolCalls[0]

		t, ok := registry.Lookup(tc.Function.Name)
		if !ok {
			logx.Error().Str("tool", tc.Function.Name).Msg("unknown tool requested; failing the turn")
			return nil, errx.UnknownTool(tc.Function.Name)
		}

		out, err := t.InvokableRun(ctx, tc.Function.Arguments)
		if err != nil {
			// belt and braces: built-in tools never error, but keep the
			// invariant that Act always yields a ToolResult
			logx.Error().Err(err).Str("tool", tc.Function.Name).Msg("tool invocation failed")
			out = fmt.Sprintf("Error executing %s: %v", tc.Function.Name, err)
		}

		return &schema.Message{
			Role:       schema.Tool,
			Content:    out,
			ToolCallID: tc.ID,
		}, nil
	})
}

// NewPresenterNode performs the Present state: fold the tool result or direct
// answer into the final answer, persist the assistant turn, emit the final
// event and trigger best-effort learning with the ORIGINAL user question.
func NewPresenterNode(mm *conversations.MessagesManager, learner *cache.Learner) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in *schema.Message) (*model.TurnResult, error) {
		var result *model.TurnResult
		err := compose.ProcessState(ctx, func(_ context.Context, state *model.AppState) error {
			// strip any reasoning markup that survived into the answer
			answer := parsers.StripReasoning(in.Content)
			if answer == "" {
				answer = "I don't have an answer for that."
			}

			state.History = append(state.History, in)
			state.AppendEvent(model.EventFinal, answer)

			// persist the assistant turn; failures are logged, never propagated
			if err := mm.SaveResponse(ctx, state.SessionID, answer); err != nil {
				logx.Error().
					Err(err).
					Str("session_id", state.SessionID).
					Msg("error saving assistant response")
			}

			// best-effort learning keyed on the original question
			if learner != nil {
				if learner.Learn(ctx, state.Question, answer) {
					logx.Debug().
						Str("session_id", state.SessionID).
						Str("user_id", state.UserID).
						Msg("learned from interaction")
				}
			}

			result = &model.TurnResult{
				TurnID:       state.TurnID,
				SessionID:    state.SessionID,
				Answer:       answer,
				Reasoning:    state.Reasoning,
				ToolUsed:     state.ToolUsed,
				Events:       state.Events,
				TotalCostUSD: state.TotalCostUSD,
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to access state: %w", err)
		}
		return result, nil
	})
}
