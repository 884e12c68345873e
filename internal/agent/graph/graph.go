package graph

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	"github.com/algotutor-core/server/internal/agent/graph/conversations"
	"github.com/algotutor-core/server/internal/agent/graph/nodes"
	"github.com/algotutor-core/server/internal/agent/graph/observers"
	"github.com/algotutor-core/server/internal/agent/graph/tools"
	"github.com/algotutor-core/server/internal/agent/model"
	"github.com/algotutor-core/server/internal/cache"
	logx "github.com/algotutor-core/server/pkg/logger"
)

// Runner is a thin wrapper to execute the compiled graph with the public QueryInput.
type Runner interface {
	Invoke(ctx context.Context, in model.QueryInput) (*model.TurnResult, error)
}

// Config holds everything needed to compose the full turn graph end-to-end.
// This is a convenience layer over GraphConfig that also constructs ChatModels,
// the tool registry and the MessagesManager.
type Config struct {
	APIKey           string
	BaseURL          string
	Supervisor       model.SupervisorModelConfig
	Diagram          model.DiagramModelConfig
	Conversation     model.ConversationConfig
	MemoryCfg        model.MemoryConfig
	ConversationRepo model.ConversationRepository
	Knowledge        model.KnowledgeRepository

	// Optional capabilities; nil disables the tool gracefully.
	Search    tools.Searcher
	ToolCache cache.DeterministicCache
	Memory    *cache.SemanticCache
	Learner   *cache.Learner
}

// GraphConfig holds all configuration needed to build the graph
type GraphConfig struct {
	ChatModels      *nodes.ChatModels
	MessagesManager *conversations.MessagesManager
	Registry        *tools.Registry
	Learner         *cache.Learner
}

// GraphBuilder handles the construction of the agent turn graph
type GraphBuilder struct {
	config *GraphConfig
	graph  *compose.Graph[model.QueryInput, *model.TurnResult]
}

type graphRunner struct {
	runnable compose.Runnable[model.QueryInput, *model.TurnResult]
}

func (r *graphRunner) Invoke(ctx context.Context, in model.QueryInput) (*model.TurnResult, error) {
	out, err := r.runnable.Invoke(ctx, in, compose.WithCallbacks(observers.NewAllCallbacks()))
	if err != nil {
		return nil, err
	}
	return out, nil
}

// BuildTurnGraph composes ChatModels, the tool registry and the
// MessagesManager, builds the graph, and returns a Runner.
func BuildTurnGraph(ctx context.Context, cfg Config) (Runner, error) {
	if cfg.ConversationRepo == nil {
		return nil, fmt.Errorf("conversation repo is nil")
	}
	if cfg.Knowledge == nil {
		return nil, fmt.Errorf("knowledge repo is nil")
	}

	// Create chat models
	cms, err := nodes.NewChatModels(ctx, nodes.ChatModelConfig{
		APIKey:        cfg.APIKey,
		BaseURL:       cfg.BaseURL,
		SupervisorCfg: &cfg.Supervisor,
		DiagramCfg:    &cfg.Diagram,
	})
	if err != nil {
		return nil, err
	}

	// Create tool registry; optional deps degrade the matching tool, never
	// the registry itself
	registry, err := tools.NewRegistry(ctx, tools.Deps{
		Knowledge:         cfg.Knowledge,
		Search:            cfg.Search,
		ToolCache:         cfg.ToolCache,
		Memory:            cfg.Memory,
		DiagramModel:      cms.Diagram,
		SemanticThreshold: cfg.MemoryCfg.SemanticThreshold,
		CombinedThreshold: cfg.MemoryCfg.CombinedThreshold,
	})
	if err != nil {
		return nil, err
	}

	// Create messages manager
	mm := conversations.NewMessagesManager(cfg.ConversationRepo, cfg.Conversation)

	// Build runnable graph
	runnable, err := BuildGraph(ctx, &GraphConfig{
		ChatModels:      cms,
		MessagesManager: mm,
		Registry:        registry,
		Learner:         cfg.Learner,
	})
	if err != nil {
		return nil, err
	}

	logx.Debug().Msg("Turn graph built successfully")
	return &graphRunner{runnable: runnable}, nil
}

// BuildGraph constructs and returns the compiled agent graph
func BuildGraph(ctx context.Context, config *GraphConfig) (compose.Runnable[model.QueryInput, *model.TurnResult], error) {
	// Basic config validation
	if config == nil {
		return nil, fmt.Errorf("graph config is nil")
	}
	if config.ChatModels == nil || config.ChatModels.Supervisor == nil {
		return nil, fmt.Errorf("chat models are not properly initialized")
	}
	if config.MessagesManager == nil {
		return nil, fmt.Errorf("messages manager is nil")
	}
	if config.Registry == nil || config.Registry.Len() == 0 {
		return nil, fmt.Errorf("tool registry is empty")
	}

	builder := &GraphBuilder{
		config: config,
		graph: compose.NewGraph[model.QueryInput, *model.TurnResult](
			compose.WithGenLocalState(func(ctx context.Context) *model.AppState {
				return &model.AppState{}
			}),
		),
	}

	if err := builder.bindTools(ctx); err != nil {
		return nil, err
	}

	builder.addNodes()
	builder.addEdges()

	if err := builder.addBranches(); err != nil {
		return nil, err
	}

	return builder.compile(ctx)
}

// bindTools advertises the registry's tool schemas to the supervisor model
func (b *GraphBuilder) bindTools(ctx context.Context) error {
	if err := b.config.ChatModels.BindToolsToSupervisor(ctx, b.config.Registry.Infos()); err != nil {
		logx.Error().Err(err).Msg("Failed to bind tools to supervisor model")
		return fmt.Errorf("failed to bind tools to supervisor model: %w", err)
	}
	return nil
}

// addNodes adds all processing nodes to the graph
func (b *GraphBuilder) addNodes() {
	b.graph.AddLambdaNode(nodes.NodeInputConverter,
		nodes.NewInputConverterNode(b.config.MessagesManager),
		compose.WithStatePreHandler(nodes.NewInputConverterPreHandler()),
	)

	b.graph.AddChatModelNode(nodes.NodeSupervisor,
		b.config.ChatModels.Supervisor,
		compose.WithStatePreHandler(nodes.NewSupervisorPreHandler()),
		compose.WithStatePostHandler(nodes.NewSupervisorPostHandler(b.config.ChatModels.SupervisorModelName)),
	)

	b.graph.AddLambdaNode(nodes.NodeToolExecutor,
		nodes.NewToolExecutorNode(b.config.Registry),
	)

	b.graph.AddLambdaNode(nodes.NodePresenter,
		nodes.NewPresenterNode(b.config.MessagesManager, b.config.Learner),
	)
}

// addEdges creates the main flow connections between nodes
func (b *GraphBuilder) addEdges() {
	edges := [][2]string{
		{compose.START, nodes.NodeInputConverter},
		{nodes.NodeInputConverter, nodes.NodeSupervisor},
		{nodes.NodeToolExecutor, nodes.NodePresenter},
		{nodes.NodePresenter, compose.END},
	}

	for _, edge := range edges {
		b.graph.AddEdge(edge[0], edge[1])
	}
}

// addBranches creates the Decide routing branch
func (b *GraphBuilder) addBranches() error {
	decisionBranch := compose.NewGraphBranch(
		nodes.NewDecideCondition(),
		map[string]bool{
			nodes.NodeToolExecutor: true,
			nodes.NodePresenter:    true,
		},
	)
	if err := b.graph.AddBranch(nodes.NodeSupervisor, decisionBranch); err != nil {
		logx.Error().Err(err).Msg("Error adding decision branch")
		return fmt.Errorf("error adding decision branch: %w", err)
	}

	return nil
}

// compile finalizes and compiles the graph
func (b *GraphBuilder) compile(ctx context.Context) (compose.Runnable[model.QueryInput, *model.TurnResult], error) {
	// The turn flow is strictly feed-forward, so a small step ceiling is
	// enough to contain any future loops
	runnable, err := b.graph.Compile(ctx, compose.WithMaxRunSteps(10))
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}

	logx.Debug().Msg("Graph compiled successfully")
	return runnable, nil
}
