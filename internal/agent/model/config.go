package model

// ================ Config ================
type ConversationConfig struct {
	TTL      string `envconfig:"CONVERSATION_TTL" default:"15m"`
	MaxTurns int    `envconfig:"CONVERSATION_MAX_TURNS" default:"20"`
}

type SupervisorModelConfig struct {
	Model       string  `envconfig:"SUPERVISOR_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"SUPERVISOR_MAX_TOKENS" default:"2000"`
	Temperature float32 `envconfig:"SUPERVISOR_TEMPERATURE" default:"0.4"`
}

type DiagramModelConfig struct {
	Model       string  `envconfig:"DIAGRAM_MODEL" default:"gemini-2.5-flash-lite"`
	MaxTokens   int     `envconfig:"DIAGRAM_MAX_TOKENS" default:"1500"`
	Temperature float32 `envconfig:"DIAGRAM_TEMPERATURE" default:"0.1"`
}

type EmbeddingConfig struct {
	Model      string `envconfig:"EMBEDDING_MODEL" default:"gemini-embedding-001"`
	Dimensions int    `envconfig:"EMBEDDING_DIMENSIONS" default:"768"`
}

type SearchConfig struct {
	APIKey         string `envconfig:"BRAVE_API_KEY"`
	Endpoint       string `envconfig:"BRAVE_ENDPOINT" default:"https://api.search.brave.com/res/v1/web/search"`
	TimeoutSeconds int    `envconfig:"SEARCH_TIMEOUT" default:"10"`
	MaxResults     int    `envconfig:"SEARCH_MAX_RESULTS" default:"3"`
}

type MemoryConfig struct {
	SemanticThreshold float64 `envconfig:"MEMORY_SEMANTIC_THRESHOLD" default:"0.7"`
	CombinedThreshold float64 `envconfig:"MEMORY_COMBINED_THRESHOLD" default:"0.6"`
	MinQuestionLen    int     `envconfig:"MEMORY_MIN_QUESTION_LEN" default:"10"`
	MinAnswerLen      int     `envconfig:"MEMORY_MIN_ANSWER_LEN" default:"50"`
}
