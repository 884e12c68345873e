package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/algotutor-core/server/internal/agent/graph"
	"github.com/algotutor-core/server/internal/agent/graph/tools"
	"github.com/algotutor-core/server/internal/agent/model"
	"github.com/algotutor-core/server/internal/agent/repo"
	"github.com/algotutor-core/server/internal/cache"
	"github.com/algotutor-core/server/internal/provider/embeddings"
	"github.com/algotutor-core/server/internal/provider/websearch"
	pkgredis "github.com/algotutor-core/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the tutor agent,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	// Infrastructure; Redis is optional and falls back to in-memory stores
	Redis pkgredis.Config

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Agent configs
	Supervisor   model.SupervisorModelConfig
	Diagram      model.DiagramModelConfig
	Embedding    model.EmbeddingConfig
	Search       model.SearchConfig
	Memory       model.MemoryConfig
	Conversation model.ConversationConfig
}

func main() {
	fmt.Println("Starting DSA tutor agent...")
	ctx := context.Background()
	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Load structured config from env
	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	ttl, err := time.ParseDuration(envCfg.Conversation.TTL)
	if err != nil {
		log.Fatalf("Invalid CONVERSATION_TTL '%s': %v", envCfg.Conversation.TTL, err)
	}

	// ====================================================
	// Storage: Redis when configured, in-memory otherwise
	var (
		conversationRepo model.ConversationRepository
		toolCache        cache.DeterministicCache
		entryStore       cache.EntryStore
	)
	if envCfg.Redis.URL != "" {
		rdb, err := envCfg.Redis.New()
		if err != nil {
			log.Fatalf("Failed to initialise Redis client: %v", err)
		}
		defer rdb.Close()
		fmt.Println("Connected to Redis successfully")

		conversationRepo = repo.NewRedisConversationRepository(rdb, ttl)
		toolCache = cache.NewRedisDeterministicCache(rdb)
		entryStore = cache.NewRedisEntryStore(rdb)
	} else {
		fmt.Println("REDIS_URL not set, using in-memory storage")
		conversationRepo = repo.NewMemoryConversationRepository()
		toolCache = cache.NewMemoryDeterministicCache()
		entryStore = cache.NewMemoryEntryStore()
	}

	// ====================================================
	// Semantic memory: embeddings are optional, the memory degrades to
	// unavailable without them
	var embedder cache.EmbeddingProvider
	if e, err := embeddings.NewGeminiEmbedder(ctx, envCfg.APIKey, envCfg.BaseURL, envCfg.Embedding); err != nil {
		log.Printf("Warning: embeddings unavailable: %v", err)
	} else {
		embedder = e
	}
	memory := cache.NewSemanticCache(entryStore, embedder)

	filter := cache.DefaultValueFilter()
	if envCfg.Memory.MinQuestionLen > 0 {
		filter.MinQuestionLen = envCfg.Memory.MinQuestionLen
	}
	if envCfg.Memory.MinAnswerLen > 0 {
		filter.MinAnswerLen = envCfg.Memory.MinAnswerLen
	}
	learner := cache.NewLearner(filter, memory)

	// Web search: optional, gated on BRAVE_API_KEY
	var search tools.Searcher
	if brave := websearch.New(envCfg.Search); brave.Available() {
		search = brave
	} else {
		log.Printf("Warning: BRAVE_API_KEY not set, web search disabled")
	}

	cfg := graph.Config{
		APIKey:           envCfg.APIKey,
		BaseURL:          envCfg.BaseURL,
		Supervisor:       envCfg.Supervisor,
		Diagram:          envCfg.Diagram,
		Conversation:     envCfg.Conversation,
		MemoryCfg:        envCfg.Memory,
		ConversationRepo: conversationRepo,
		Knowledge:        repo.NewStaticKnowledgeRepository(),
		Search:           search,
		ToolCache:        toolCache,
		Memory:           memory,
		Learner:          learner,
	}

	runner, err := graph.BuildTurnGraph(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to build graph: %v", err)
	}

	testQueries := []struct {
		description string
		query       string
	}{
		{
			description: "Knowledge base lookup",
			query:       "What is a binary search tree?",
		},
		{
			description: "Diagram request",
			query:       "Can you draw me a diagram of a linked list?",
		},
		{
			description: "Semantic memory replay",
			query:       "Explain binary search trees to me",
		},
		{
			description: "Direct answer, no tool needed",
			query:       "Thanks, that was helpful!",
		},
	}

	sessionID := uuid.NewString()
	userID := "demo-user"

	for i, test := range testQueries {
		fmt.Printf("\n🚀 Turn %d: %s\n", i+1, test.description)
		fmt.Printf("Query: \"%s\"\n", test.query)
		fmt.Println("Processing...")

		result, err := runner.Invoke(ctx, model.QueryInput{
			SessionID: sessionID,
			UserID:    userID,
			Query:     test.query,
		})
		if err != nil {
			log.Fatalf("Failed to invoke graph for turn %d: %v", i+1, err)
		}

		for _, ev := range result.Events {
			if ev.Type != model.EventFinal {
				fmt.Printf("  [%s] %s\n", ev.Type, ev.Content)
			}
		}
		fmt.Printf("✅ Answer %d: %s\n", i+1, result.Answer)
		if result.ToolUsed != "" {
			fmt.Printf("   (tool: %s)\n", result.ToolUsed)
		}
		fmt.Println("─────────────────────────────────────────────")

		// add slight delay between turns for readability
		time.Sleep(500 * time.Millisecond)
	}

	fmt.Println("🎉 All tutor turns completed successfully!")
}
