package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config defines server and client configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
	Transport  TransportConfig  `yaml:"transport"`
	Generation GenerationConfig `yaml:"generation"`
	Kafka      KafkaConfig      `yaml:"kafka"`
	Client     ClientConfig     `yaml:"client"`
}

type ServerConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	CORSOrigin string `yaml:"cors_origin"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// TransportConfig selects how the MCP surface is exposed: "http" mounts it
// beside the web routes, "stdio" serves MCP only over stdin/stdout.
type TransportConfig struct {
	Mode string `yaml:"mode"`
}

type GenerationConfig struct {
	Provider      string        `yaml:"provider"`
	Model         string        `yaml:"model"`
	Temperature   float64       `yaml:"temperature"`
	MaxTokens     int           `yaml:"max_tokens"`
	Timeout       time.Duration `yaml:"timeout"`
	OpenAIBaseURL string        `yaml:"openai_base_url"`
	OpenAIAPIKey  string        `yaml:"-"`
	GeminiAPIKey  string        `yaml:"-"`
}

// Default models per provider, used when no model is configured.
var defaultModels = map[string]string{
	"openai": "gpt-4o",
	"gemini": "gemini-2.5-pro",
}

// APIKey returns the credential for the configured provider.
func (g GenerationConfig) APIKey() string {
	if strings.EqualFold(g.Provider, "gemini") {
		return g.GeminiAPIKey
	}
	return g.OpenAIAPIKey
}

type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// Enabled reports whether generation events should be published.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// ClientConfig is read by the terminal front end.
type ClientConfig struct {
	ServerURL string `yaml:"server_url"`
	StorePath string `yaml:"store_path"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Log: LogConfig{
			Level: "info",
		},
		Transport: TransportConfig{
			Mode: "http",
		},
		Generation: GenerationConfig{
			Provider:    "openai",
			Temperature: 0.8,
			MaxTokens:   1000,
			Timeout:     60 * time.Second,
		},
		Kafka: KafkaConfig{
			Topic: "labcoats.generations",
		},
		Client: ClientConfig{
			ServerURL: "http://localhost:8080",
			StorePath: "labcoats.db",
		},
	}
}

// Load reads an optional .env file, an optional YAML file, and environment variables.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	if path := os.Getenv("LABCOATS_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if host := os.Getenv("LABCOATS_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("LABCOATS_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid LABCOATS_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if origin := os.Getenv("LABCOATS_CORS_ORIGIN"); origin != "" {
		cfg.Server.CORSOrigin = origin
	}
	if level := os.Getenv("LABCOATS_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if path := os.Getenv("LABCOATS_LOG_PATH"); path != "" {
		cfg.Log.Path = path
	}
	if mode := os.Getenv("LABCOATS_TRANSPORT"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if provider := os.Getenv("LABCOATS_PROVIDER"); provider != "" {
		cfg.Generation.Provider = provider
	}
	if model := os.Getenv("LABCOATS_MODEL"); model != "" {
		cfg.Generation.Model = model
	}
	if tempStr := os.Getenv("LABCOATS_TEMPERATURE"); tempStr != "" {
		temp, err := strconv.ParseFloat(tempStr, 64)
		if err != nil {
			return fmt.Errorf("invalid LABCOATS_TEMPERATURE: %w", err)
		}
		cfg.Generation.Temperature = temp
	}
	if tokStr := os.Getenv("LABCOATS_MAX_TOKENS"); tokStr != "" {
		tokens, err := strconv.Atoi(tokStr)
		if err != nil {
			return fmt.Errorf("invalid LABCOATS_MAX_TOKENS: %w", err)
		}
		cfg.Generation.MaxTokens = tokens
	}
	if timeoutStr := os.Getenv("LABCOATS_GENERATION_TIMEOUT"); timeoutStr != "" {
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return fmt.Errorf("invalid LABCOATS_GENERATION_TIMEOUT: %w", err)
		}
		cfg.Generation.Timeout = timeout
	}
	if baseURL := os.Getenv("LABCOATS_OPENAI_BASE_URL"); baseURL != "" {
		cfg.Generation.OpenAIBaseURL = baseURL
	}
	cfg.Generation.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.Generation.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	if brokers := os.Getenv("LABCOATS_KAFKA_BROKERS"); brokers != "" {
		cfg.Kafka.Brokers = splitList(brokers)
	}
	if topic := os.Getenv("LABCOATS_KAFKA_TOPIC"); topic != "" {
		cfg.Kafka.Topic = topic
	}
	if url := os.Getenv("LABCOATS_SERVER_URL"); url != "" {
		cfg.Client.ServerURL = url
	}
	if path := os.Getenv("LABCOATS_STORE_PATH"); path != "" {
		cfg.Client.StorePath = path
	}
	return nil
}

// normalize lowercases names and fills the provider's default model.
func (c *Config) normalize() {
	c.Transport.Mode = strings.ToLower(strings.TrimSpace(c.Transport.Mode))
	c.Generation.Provider = strings.ToLower(strings.TrimSpace(c.Generation.Provider))
	if c.Generation.Model == "" {
		c.Generation.Model = defaultModels[c.Generation.Provider]
	}
}

func (c Config) validate() error {
	if _, ok := defaultModels[c.Generation.Provider]; !ok {
		return fmt.Errorf("invalid provider %q: want openai or gemini", c.Generation.Provider)
	}
	switch c.Transport.Mode {
	case "http", "stdio":
	default:
		return fmt.Errorf("invalid transport mode %q: want http or stdio", c.Transport.Mode)
	}
	if c.Generation.MaxTokens <= 0 {
		return fmt.Errorf("invalid max tokens %d", c.Generation.MaxTokens)
	}
	if c.Generation.Temperature < 0 || c.Generation.Temperature > 2 {
		return fmt.Errorf("invalid temperature %v", c.Generation.Temperature)
	}
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
