package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"

	"github.com/vprudente/insta-fashion/internal/domain/valueobjects"
)

const (
	BackendGemini = "gemini"
	BackendVertex = "vertex"
	BackendOpenAI = "openai"
)

type Config struct {
	Port      string `env:"PORT" envDefault:"8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// gemini, vertex or openai
	Backend string `env:"ORACLE_BACKEND" envDefault:"gemini"`

	Gemini GeminiConfig `envPrefix:"GEMINI_"`
	Vertex VertexConfig
	OpenAI OpenAIConfig `envPrefix:"OPENAI_"`

	VisionTimeout  time.Duration `env:"VISION_TIMEOUT" envDefault:"60s"`
	PricingTimeout time.Duration `env:"PRICING_TIMEOUT" envDefault:"20s"`
	MaxImageBytes  int64         `env:"MAX_IMAGE_BYTES" envDefault:"33554432"`
	RetailersFile  string        `env:"RETAILERS_FILE"`
}

type GeminiConfig struct {
	APIKey      string `env:"API_KEY"`
	VisionModel string `env:"VISION_MODEL" envDefault:"gemini-2.5-flash"`
	TextModel   string `env:"TEXT_MODEL" envDefault:"gemini-2.5-flash"`
}

type VertexConfig struct {
	ProjectID    string `env:"PROJECT_ID"`
	CloudProject string `env:"GOOGLE_CLOUD_PROJECT"`
	Location     string `env:"LOCATION" envDefault:"us-central1"`
	VisionModel  string `env:"VERTEX_VISION_MODEL" envDefault:"gemini-2.5-flash"`
	TextModel    string `env:"VERTEX_TEXT_MODEL" envDefault:"gemini-2.5-flash"`
}

type OpenAIConfig struct {
	APIKey      string `env:"API_KEY"`
	BaseURL     string `env:"BASE_URL" envDefault:"https://api.openai.com/v1"`
	VisionModel string `env:"VISION_MODEL" envDefault:"gpt-4o"`
	TextModel   string `env:"TEXT_MODEL" envDefault:"gpt-4o-mini"`
}

// Project returns PROJECT_ID, falling back to GOOGLE_CLOUD_PROJECT.
func (v VertexConfig) Project() string {
	if v.ProjectID != "" {
		return v.ProjectID
	}
	return v.CloudProject
}

// Load loads .env (if present) and parses environment variables into Config.
func Load() (Config, error) {
	// Load .env if available; ignore error if file does not exist
	_ = godotenv.Load()

	return parse(env.Options{})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the credentials the selected backend needs.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for the gemini backend")
		}
	case BackendVertex:
		if c.Vertex.Project() == "" {
			return fmt.Errorf("環境変数 PROJECT_ID が未設定です")
		}
	case BackendOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for the openai backend")
		}
	default:
		return fmt.Errorf("unknown ORACLE_BACKEND %q (want gemini, vertex or openai)", c.Backend)
	}
	if c.VisionTimeout < 0 || c.PricingTimeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	return nil
}

// RetailersFileFromEnv reads RETAILERS_FILE without validating the rest of the config.
func RetailersFileFromEnv() string {
	_ = godotenv.Load()

	var cfg struct {
		RetailersFile string `env:"RETAILERS_FILE"`
	}
	_ = env.Parse(&cfg)
	return cfg.RetailersFile
}

// Retailers returns the retailer set from RETAILERS_FILE, or the defaults.
func (c Config) Retailers() ([]valueobjects.Retailer, error) {
	if c.RetailersFile == "" {
		return valueobjects.DefaultRetailers(), nil
	}
	return valueobjects.LoadRetailers(c.RetailersFile)
}

func (c Config) Addr() string {
	return ":" + c.Port
}
