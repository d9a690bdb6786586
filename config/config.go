package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	RetrievalExact = "exact"
	RetrievalFuzzy = "fuzzy"

	AnalyzerVADER  = "vader"
	AnalyzerRemote = "remote"
	AnalyzerOpenAI = "openai"
	AnalyzerHugot  = "hugot"

	CacheNone   = "none"
	CacheMemory = "memory"
	CacheValkey = "valkey"
)

// Config is the full runtime configuration, read from the environment after
// LoadEnv has merged the matching .env file.
type Config struct {
	Env      string
	LogLevel string
	HTTPAddr string

	Retrieval  RetrievalConfig
	Sentiment  SentimentConfig
	Escalation EscalationConfig
	Analyzer   AnalyzerConfig
	Cache      CacheConfig
	Session    SessionConfig
	Knowledge  KnowledgeConfig
	Kafka      KafkaConfig
	AWS        AWSConfig
}

type RetrievalConfig struct {
	Mode           string
	FuzzyThreshold int
}

type SentimentConfig struct {
	PositiveThreshold float64
	NegativeThreshold float64
}

type EscalationConfig struct {
	SatisfactionFloor float64
	NegativeTurnLimit int
}

type AnalyzerConfig struct {
	Backend      string
	URL          string
	HealthURL    string
	Timeout      time.Duration
	ClientID     string
	ClientSecret string
	TokenURL     string
	OpenAIKey    string
	OpenAIModel  string

	HugotModel     string
	HugotModelDir  string
	ORTLibraryPath string
}

type CacheConfig struct {
	Kind           string
	ValkeyAddress  string
	ValkeyPassword string
	ValkeyTLS      bool
	TTL            time.Duration
}

type SessionConfig struct {
	Store      string
	RedisAddr  string
	TTL        time.Duration
	MaxHistory int
}

type KnowledgeConfig struct {
	Path  string
	Table string
}

type KafkaConfig struct {
	Broker          string
	EscalationTopic string
}

type AWSConfig struct {
	Region     string
	Endpoint   string
	TurnsTable string
}

func Load() (Config, error) {
	cfg := Config{
		Env:      getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8000"),
		Retrieval: RetrievalConfig{
			Mode:           strings.ToLower(getEnv("RETRIEVAL_MODE", RetrievalExact)),
			FuzzyThreshold: getInt("FUZZY_THRESHOLD", 70),
		},
		Sentiment: SentimentConfig{
			PositiveThreshold: getFloat("SENTIMENT_POSITIVE_THRESHOLD", 0.2),
			NegativeThreshold: getFloat("SENTIMENT_NEGATIVE_THRESHOLD", -0.2),
		},
		Escalation: EscalationConfig{
			SatisfactionFloor: getFloat("ESCALATION_SATISFACTION_FLOOR", -0.3),
			NegativeTurnLimit: getInt("ESCALATION_NEGATIVE_TURNS", 2),
		},
		Analyzer: AnalyzerConfig{
			Backend:      strings.ToLower(getEnv("ANALYZER_BACKEND", AnalyzerVADER)),
			URL:          os.Getenv("ANALYZER_URL"),
			HealthURL:    os.Getenv("ANALYZER_HEALTH_URL"),
			Timeout:      getDuration("ANALYZER_TIMEOUT", 5*time.Second),
			ClientID:     os.Getenv("ANALYZER_CLIENT_ID"),
			ClientSecret: os.Getenv("ANALYZER_CLIENT_SECRET"),
			TokenURL:     os.Getenv("ANALYZER_TOKEN_URL"),
			OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
			OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),

			HugotModel:     getEnv("HUGOT_MODEL", "KnightsAnalytics/distilbert-base-uncased-finetuned-sst-2-english"),
			HugotModelDir:  getEnv("HUGOT_MODEL_DIR", "./models"),
			ORTLibraryPath: os.Getenv("ORT_LIBRARY_PATH"),
		},
		Cache: CacheConfig{
			Kind:           strings.ToLower(getEnv("POLARITY_CACHE", CacheMemory)),
			ValkeyAddress:  os.Getenv("VALKEY_INIT_ADDRESS"),
			ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),
			ValkeyTLS:      os.Getenv("VALKEY_TLS") == "true",
			TTL:            getDuration("POLARITY_CACHE_TTL", 24*time.Hour),
		},
		Session: SessionConfig{
			Store:      strings.ToLower(getEnv("SESSION_STORE", "memory")),
			RedisAddr:  getEnv("REDIS_ADDR", "localhost:6379"),
			TTL:        getDuration("SESSION_TTL", 24*time.Hour),
			MaxHistory: getInt("SESSION_MAX_HISTORY", 0),
		},
		Knowledge: KnowledgeConfig{
			Path:  os.Getenv("KNOWLEDGE_BASE_PATH"),
			Table: os.Getenv("KNOWLEDGE_BASE_TABLE"),
		},
		Kafka: KafkaConfig{
			Broker:          os.Getenv("KAFKA_BROKER"),
			EscalationTopic: getEnv("KAFKA_ESCALATION_TOPIC", "support-escalations"),
		},
		AWS: AWSConfig{
			Region:     getEnv("AWS_REGION", "us-west-2"),
			Endpoint:   os.Getenv("AWS_ENDPOINT"),
			TurnsTable: os.Getenv("TURNS_TABLE"),
		},
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Retrieval.Mode {
	case RetrievalExact, RetrievalFuzzy:
	default:
		return fmt.Errorf("unknown RETRIEVAL_MODE %q", c.Retrieval.Mode)
	}

	switch c.Analyzer.Backend {
	case AnalyzerVADER:
	case AnalyzerRemote:
		if c.Analyzer.URL == "" {
			return fmt.Errorf("ANALYZER_URL is required for the remote analyzer")
		}
	case AnalyzerOpenAI:
		if c.Analyzer.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for the openai analyzer")
		}
	case AnalyzerHugot:
		if c.Analyzer.HugotModel == "" || c.Analyzer.HugotModelDir == "" {
			return fmt.Errorf("HUGOT_MODEL and HUGOT_MODEL_DIR are required for the hugot analyzer")
		}
	default:
		return fmt.Errorf("unknown ANALYZER_BACKEND %q", c.Analyzer.Backend)
	}

	switch c.Cache.Kind {
	case CacheNone, CacheMemory:
	case CacheValkey:
		if c.Cache.ValkeyAddress == "" {
			return fmt.Errorf("VALKEY_INIT_ADDRESS is required for the valkey cache")
		}
	default:
		return fmt.Errorf("unknown POLARITY_CACHE %q", c.Cache.Kind)
	}

	if c.Sentiment.NegativeThreshold > c.Sentiment.PositiveThreshold {
		return fmt.Errorf("negative sentiment threshold %.2f is above positive threshold %.2f",
			c.Sentiment.NegativeThreshold, c.Sentiment.PositiveThreshold)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getFloat(key string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
