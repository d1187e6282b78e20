// Package config loads Praxis configuration from an optional YAML file and
// PRAXIS_-prefixed environment variables, with explicit defaults.
package config

import (
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Log       LogConfig       `koanf:"log"`
	LLM       LLMConfig       `koanf:"llm"`
	Agent     AgentConfig     `koanf:"agent"`
	Retrieval RetrievalConfig `koanf:"retrieval"`
	Memory    MemoryConfig    `koanf:"memory"`
	SMTP      SMTPConfig      `koanf:"smtp"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

type LogConfig struct {
	Level     string `koanf:"level"`
	Format    string `koanf:"format"` // json, text
	AddSource bool   `koanf:"add_source"`
}

type LLMConfig struct {
	Provider string `koanf:"provider"` // openai, ollama
	Model    string `koanf:"model"`
	BaseURL  string `koanf:"base_url"`
	APIKey   string `koanf:"api_key"`
}

type AgentConfig struct {
	MaxIterations    int     `koanf:"max_iterations"`
	MaxExecutionSecs int     `koanf:"max_execution_secs"` // 0 disables the wall-clock bound
	Temperature      float64 `koanf:"temperature"`
	Verbose          bool    `koanf:"verbose"`
}

type RetrievalConfig struct {
	QdrantAddr      string `koanf:"qdrant_addr"`
	EmbedderBaseURL string `koanf:"embedder_base_url"`
	EmbedderModel   string `koanf:"embedder_model"`
	VectorSize      uint64 `koanf:"vector_size"`
	TopK            int    `koanf:"top_k"`
}

type MemoryConfig struct {
	Provider   string `koanf:"provider"` // sqlite, inmemory
	SQLitePath string `koanf:"sqlite_path"`
}

type SMTPConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	From     string `koanf:"from"`
}

type TelemetryConfig struct {
	Exporter     string `koanf:"exporter"` // stdout, otlp
	OTLPEndpoint string `koanf:"otlp_endpoint"`
	OTLPInsecure bool   `koanf:"otlp_insecure"`
}

// Load reads configuration from path (optional) and the environment.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Defaults
	k.Set("log.level", "info")
	k.Set("log.format", "text")

	k.Set("llm.provider", "ollama")
	k.Set("llm.model", "qwen2.5-coder:7b-instruct-q5_K_M")
	k.Set("llm.base_url", "http://localhost:11434")

	k.Set("agent.max_iterations", 10)
	k.Set("agent.max_execution_secs", 0)
	k.Set("agent.temperature", 0.7)
	k.Set("agent.verbose", false)

	k.Set("retrieval.qdrant_addr", "localhost:6334")
	k.Set("retrieval.embedder_base_url", "http://localhost:11434")
	k.Set("retrieval.embedder_model", "nomic-embed-text")
	k.Set("retrieval.vector_size", 768)
	k.Set("retrieval.top_k", 3)

	k.Set("memory.provider", "sqlite")
	k.Set("memory.sqlite_path", "praxis.db")

	k.Set("smtp.port", 587)

	k.Set("telemetry.exporter", "stdout")

	// 1. Load from file
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// 2. Load from ENV (PRAXIS_LLM_PROVIDER -> llm.provider)
	if err := k.Load(env.Provider("PRAXIS_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, "PRAXIS_")), "_", ".", -1)
	}), nil); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
