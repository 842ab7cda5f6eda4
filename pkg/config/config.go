package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/songsbyarchit/AmritArchit-v4/internal/secrets"
)

const (
	defaultConfigPath      = "config.yaml"
	defaultCredentialsFile = "credentials.json"
	defaultOutputDir       = "./output"
	defaultProvider        = "openai"
	defaultOpenAIModel     = "gpt-4"
	defaultGeminiModel     = "gemini-1.5-flash"
	defaultGroqModel       = "llama-3.3-70b-versatile"
	defaultSystemPrompt    = "You are an AI that generates structured, engaging, and audience-focused presentation slide content."
	defaultSlideCount      = 5
	defaultBulletCount     = 5
	defaultLayout          = "TITLE_AND_BODY"
	defaultTitlePrefix     = "AI Generated: "
	defaultImageWidthEMU   = 5000000
	defaultImageHeightEMU  = 3000000
	defaultImageScale      = 0.7
	defaultTranslateXEMU   = 5000000
	defaultTranslateYEMU   = 500000
	defaultShareType       = "anyone"
	defaultShareRole       = "writer"

	// Values with this prefix are resolved from Google Secret Manager.
	secretPrefix = "sm://"
)

type Config struct {
	OpenAIAPIKey         string
	GeminiAPIKey         string
	GroqAPIKey           string
	GoogleSearchAPIKey   string
	GoogleSearchEngineID string
	CredentialsFile      string
	GCSBucket            string
	ProjectID            string

	LLM     LLMConfig     `yaml:"llm"`
	Deck    DeckConfig    `yaml:"deck"`
	Image   ImageConfig   `yaml:"image"`
	Sharing SharingConfig `yaml:"sharing"`
	Output  OutputConfig  `yaml:"output"`
}

type LLMConfig struct {
	Provider     string `yaml:"provider"` // "openai", "gemini" or "groq"
	Model        string `yaml:"model"`
	SystemPrompt string `yaml:"system_prompt"`
}

type DeckConfig struct {
	SlideCount  int    `yaml:"slide_count"`
	BulletCount int    `yaml:"bullet_count"`
	Layout      string `yaml:"layout"`
	TitlePrefix string `yaml:"title_prefix"`
}

type ImageConfig struct {
	WidthEMU      int64   `yaml:"width_emu"`
	HeightEMU     int64   `yaml:"height_emu"`
	ScaleX        float64 `yaml:"scale_x"`
	ScaleY        float64 `yaml:"scale_y"`
	TranslateXEMU int64   `yaml:"translate_x_emu"`
	TranslateYEMU int64   `yaml:"translate_y_emu"`
}

type SharingConfig struct {
	Type string `yaml:"type"`
	Role string `yaml:"role"`
}

type OutputConfig struct {
	Dir string `yaml:"dir"`
}

func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		OpenAIAPIKey:         os.Getenv("OPENAI_API_KEY"),
		GeminiAPIKey:         os.Getenv("GEMINI_API_KEY"),
		GroqAPIKey:           os.Getenv("GROQ_API_KEY"),
		GoogleSearchAPIKey:   os.Getenv("GOOGLE_API_KEY"),
		GoogleSearchEngineID: os.Getenv("GOOGLE_CSE_ID"),
		CredentialsFile:      getEnvOrDefault("GOOGLE_CREDENTIALS_FILE", defaultCredentialsFile),
		GCSBucket:            os.Getenv("GCS_BUCKET"),
		ProjectID:            os.Getenv("GOOGLE_CLOUD_PROJECT"),
	}

	loadYAMLConfig(cfg, defaultConfigPath)
	applyDefaults(cfg)

	if err := resolveSecretRefs(ctx, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadYAMLConfig(cfg *Config, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("No config.yaml found, using defaults")
		return
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		slog.Error("Failed to parse config.yaml", "error", err)
	}
}

func applyDefaults(cfg *Config) {
	applyLLMDefaults(cfg)
	applyDeckDefaults(cfg)
	applyImageDefaults(cfg)
	applySharingDefaults(cfg)
	applyOutputDefaults(cfg)
}

func applyLLMDefaults(cfg *Config) {
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = defaultProvider
	}
	if cfg.LLM.Model == "" {
		switch cfg.LLM.Provider {
		case "gemini":
			cfg.LLM.Model = defaultGeminiModel
		case "groq":
			cfg.LLM.Model = defaultGroqModel
		default:
			cfg.LLM.Model = defaultOpenAIModel
		}
	}
	if cfg.LLM.SystemPrompt == "" {
		cfg.LLM.SystemPrompt = defaultSystemPrompt
	}
}

func applyDeckDefaults(cfg *Config) {
	if cfg.Deck.SlideCount == 0 {
		cfg.Deck.SlideCount = defaultSlideCount
	}
	if cfg.Deck.BulletCount == 0 {
		cfg.Deck.BulletCount = defaultBulletCount
	}
	if cfg.Deck.Layout == "" {
		cfg.Deck.Layout = defaultLayout
	}
	if cfg.Deck.TitlePrefix == "" {
		cfg.Deck.TitlePrefix = defaultTitlePrefix
	}
}

func applyImageDefaults(cfg *Config) {
	if cfg.Image.WidthEMU == 0 {
		cfg.Image.WidthEMU = defaultImageWidthEMU
	}
	if cfg.Image.HeightEMU == 0 {
		cfg.Image.HeightEMU = defaultImageHeightEMU
	}
	if cfg.Image.ScaleX == 0 {
		cfg.Image.ScaleX = defaultImageScale
	}
	if cfg.Image.ScaleY == 0 {
		cfg.Image.ScaleY = defaultImageScale
	}
	if cfg.Image.TranslateXEMU == 0 {
		cfg.Image.TranslateXEMU = defaultTranslateXEMU
	}
	if cfg.Image.TranslateYEMU == 0 {
		cfg.Image.TranslateYEMU = defaultTranslateYEMU
	}
}

func applySharingDefaults(cfg *Config) {
	if cfg.Sharing.Type == "" {
		cfg.Sharing.Type = defaultShareType
	}
	if cfg.Sharing.Role == "" {
		cfg.Sharing.Role = defaultShareRole
	}
}

func applyOutputDefaults(cfg *Config) {
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = defaultOutputDir
	}
}

// resolveSecretRefs replaces sm:// values with their Secret Manager payloads.
// Requires GOOGLE_CLOUD_PROJECT; values without the prefix pass through.
func resolveSecretRefs(ctx context.Context, cfg *Config) error {
	refs := []*string{
		&cfg.OpenAIAPIKey,
		&cfg.GeminiAPIKey,
		&cfg.GroqAPIKey,
		&cfg.GoogleSearchAPIKey,
		&cfg.GoogleSearchEngineID,
	}

	if !hasSecretRef(refs) {
		return nil
	}
	if cfg.ProjectID == "" {
		return fmt.Errorf("sm:// config values require GOOGLE_CLOUD_PROJECT to be set")
	}

	loader, err := secrets.NewLoader(ctx, cfg.ProjectID)
	if err != nil {
		return fmt.Errorf("create secret loader: %w", err)
	}
	defer func() { _ = loader.Close() }()

	for _, ref := range refs {
		if !strings.HasPrefix(*ref, secretPrefix) {
			continue
		}
		secretID := strings.TrimPrefix(*ref, secretPrefix)
		value, err := loader.GetSecret(ctx, secretID)
		if err != nil {
			return err
		}
		*ref = value
	}

	return nil
}

func hasSecretRef(refs []*string) bool {
	for _, ref := range refs {
		if strings.HasPrefix(*ref, secretPrefix) {
			return true
		}
	}
	return false
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
