package nodes

import (
	"context"
	"fmt"

	logx "github.com/algotutor-core/server/pkg/logger"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"github.com/algotutor-core/server/internal/agent/model"
)

// ChatModelConfig holds the configuration for chat model creation
type ChatModelConfig struct {
	APIKey        string
	BaseURL       string
	SupervisorCfg *model.SupervisorModelConfig
	DiagramCfg    *model.DiagramModelConfig
}

// ChatModels holds the supervisor (reasoning/tool-calling) model and the
// diagram generation model. Interfaces rather than concrete Gemini types so
// tests can inject scripted models.
type ChatModels struct {
	Supervisor          einomodel.ToolCallingChatModel
	Diagram             einomodel.BaseChatModel
	SupervisorModelName string
	DiagramModelName    string
}

// NewChatModels creates both chat models with the given configuration
func NewChatModels(ctx context.Context, config ChatModelConfig) (*ChatModels, error) {

	clientCfg := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = config.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	// Create Supervisor Chat Model
	chatModelSupervisor, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.SupervisorCfg.Model,
		Temperature: &config.SupervisorCfg.Temperature,
		MaxTokens:   &config.SupervisorCfg.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Supervisor model")
		return nil, fmt.Errorf("error creating Supervisor model: %w", err)
	}

	// Create Diagram Chat Model
	chatModelDiagram, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.DiagramCfg.Model,
		Temperature: &config.DiagramCfg.Temperature,
		MaxTokens:   &config.DiagramCfg.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Diagram model")
		return nil, fmt.Errorf("error creating Diagram model: %w", err)
	}

	return &ChatModels{
		Supervisor:          chatModelSupervisor,
		Diagram:             chatModelDiagram,
		SupervisorModelName: config.SupervisorCfg.Model,
		DiagramModelName:    config.DiagramCfg.Model,
	}, nil
}

// BindToolsToSupervisor binds the registry's tool schemas to the supervisor
// model, replacing the held model with the tool-bound instance.
func (cm *ChatModels) BindToolsToSupervisor(ctx context.Context, tools []*schema.ToolInfo) error {
	bound, err := cm.Supervisor.WithTools(tools)
	if err != nil {
		logx.Error().Err(err).Msg("Failed to bind tools")
		return fmt.Errorf("failed to bind tools: %w", err)
	}
	cm.Supervisor = bound

	logx.Debug().Msg("Successfully bound tools to supervisor model")
	return nil
}
