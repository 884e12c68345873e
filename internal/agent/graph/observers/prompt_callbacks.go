package observers

import (
	"context"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components/prompt"
	callbackHelper "github.com/cloudwego/eino/utils/callbacks"

	logx "github.com/algotutor-core/server/pkg/logger"
)

// newPromptHandler builds a typed PromptCallbackHandler (not yet wrapped).
func newPromptHandler() *callbackHelper.PromptCallbackHandler {
	return &callbackHelper.PromptCallbackHandler{
		OnStart: func(ctx context.Context, info *einocb.RunInfo, input *prompt.CallbackInput) context.Context {
			logx.Debug().
				Str("component", string(info.Type)).
				Str("node", info.Name).
				Msg("prompt render start")
			return ctx
		},
		OnEnd: func(ctx context.Context, info *einocb.RunInfo, output *prompt.CallbackOutput) context.Context {
			ev := logx.Debug().
				Str("component", string(info.Type)).
				Str("node", info.Name)
			if output != nil && len(output.Result) > 0 && output.Result[0] != nil {
				ev = ev.Int("rendered_len", len(output.Result[0].Content))
			}
			ev.Msg("prompt render end")
			return ctx
		},
		OnError: func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			logx.Error().
				Err(err).
				Str("component", string(info.Type)).
				Str("node", info.Name).
				Msg("prompt render failed")
			return ctx
		},
	}
}

// NewPromptCallbacks constructs a callbacks.Handler for prompt lifecycle events.
func NewPromptCallbacks() einocb.Handler {
	return callbackHelper.NewHandlerHelper().
		Prompt(newPromptHandler()).
		Handler()
}
