// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Configuration holds all service configuration.
type Configuration struct {
	Service       ServiceConfig
	Kafka         KafkaConfig
	STT           STTConfig
	LLM           LLMConfig
	Observability ObservabilityConfig
}

// ServiceConfig holds identity and listener settings.
type ServiceConfig struct {
	Env       string
	Principal string
	HTTPPort  string
}

// KafkaConfig holds Kafka publisher settings.
type KafkaConfig struct {
	Enabled       bool
	Brokers       []string
	TopicQuotes   string
	TopicFailures string
	Principal     string
}

// STTConfig holds speech-to-text provider settings.
type STTConfig struct {
	Provider     string // mock or google
	LanguageCode string
	SampleRateHz int
}

// LLMConfig holds the model extraction path settings.
type LLMConfig struct {
	Enabled     bool
	BaseURL     string
	APIKey      string
	Model       string
	PromptPath  string
	Temperature float64
	Timeout     time.Duration
}

// ObservabilityConfig holds metrics and logging settings.
type ObservabilityConfig struct {
	MetricsAddr string
	LogLevel    string
}

// Load reads configuration from environment variables, applying defaults.
// A .env file in the working directory is loaded first if present.
func Load() *Configuration {
	_ = godotenv.Load()

	servicePrincipal := envOrDefault("SERVICE_PRINCIPAL", "svc-quote-extractor")

	return &Configuration{
		Service: ServiceConfig{
			Env:       envOrDefault("ENV", "prod"),
			Principal: servicePrincipal,
			HTTPPort:  envOrDefault("HTTP_PORT", "8080"),
		},
		Kafka: KafkaConfig{
			Enabled:       envOrDefaultBool("KAFKA_ENABLED", false),
			Brokers:       envOrDefaultList("KAFKA_BROKERS", nil),
			TopicQuotes:   envOrDefault("KAFKA_TOPIC_QUOTES", "market.quotes.extracted"),
			TopicFailures: envOrDefault("KAFKA_TOPIC_FAILURES", "market.quotes.failed"),
			Principal:     envOrDefault("KAFKA_PRINCIPAL", servicePrincipal),
		},
		STT: STTConfig{
			Provider:     envOrDefault("STT_PROVIDER", "mock"),
			LanguageCode: envOrDefault("STT_LANGUAGE_CODE", "en-US"),
			SampleRateHz: envOrDefaultInt("STT_SAMPLE_RATE_HZ", 16000),
		},
		LLM: LLMConfig{
			Enabled:     envOrDefaultBool("LLM_ENABLED", false),
			BaseURL:     envOrDefault("LLM_BASE_URL", ""),
			APIKey:      envOrDefault("LLM_API_KEY", ""),
			Model:       envOrDefault("LLM_MODEL", "gpt-4o-mini"),
			PromptPath:  envOrDefault("LLM_PROMPT_PATH", ""),
			Temperature: envOrDefaultFloat("LLM_TEMPERATURE", 0),
			Timeout:     envOrDefaultDuration("LLM_TIMEOUT", 30*time.Second),
		},
		Observability: ObservabilityConfig{
			MetricsAddr: envOrDefault("METRICS_ADDR", ":9090"),
			LogLevel:    envOrDefault("LOG_LEVEL", "info"),
		},
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(strings.ToLower(v))
	if err != nil {
		return def
	}
	return b
}

func envOrDefaultInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envOrDefaultFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func envOrDefaultList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
