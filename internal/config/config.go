package config

import (
	"os"
	"strconv"
)

type Config struct {
	ServerAddr string
	PgConn     string

	// Generation backend: "local" (LM Studio style endpoint, word-split
	// streaming), "hosted" (OpenAI-compatible API with real streaming)
	// or "replicate".
	Backend        string
	LLMBaseURL     string
	LLMAPIKey      string
	ChatModel      string
	ReplicateToken string
	ReplicateModel string

	EmbedModel string
	EmbedDim   int

	ChunkSize    int
	ChunkOverlap int

	ResumePath  string
	ProfilePath string
	SourceTag   string
}

func Load() *Config {
	return &Config{
		ServerAddr: getenv("SERVER_ADDR", ":8080"),
		PgConn:     getenv("PG_CONN", "host=localhost port=5432 user=postgres password=postgres dbname=profile_ai sslmode=disable"),

		Backend:        getenv("LLM_BACKEND", "local"),
		LLMBaseURL:     getenv("LLM_BASE_URL", "http://localhost:1234/v1"),
		LLMAPIKey:      getenv("LLM_API_KEY", "not-needed"),
		ChatModel:      getenv("LLM_MODEL", "meta-llama/Llama-3.2-1B-Instruct"),
		ReplicateToken: getenv("REPLICATE_API_TOKEN", ""),
		ReplicateModel: getenv("REPLICATE_MODEL", "meta/llama-2-7b-chat"),

		EmbedModel: getenv("EMBED_MODEL", "text-embedding-nomic-embed-text-v1.5"),
		EmbedDim:   getenvInt("EMBED_DIM", 768),

		ChunkSize:    getenvInt("CHUNK_SIZE", 500),
		ChunkOverlap: getenvInt("CHUNK_OVERLAP", 50),

		ResumePath:  getenv("RESUME_PATH", "data/resume.pdf"),
		ProfilePath: getenv("PROFILE_PATH", "data/profile.json"),
		SourceTag:   getenv("SOURCE_TAG", "resume"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
