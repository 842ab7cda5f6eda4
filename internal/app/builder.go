package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	drivev3 "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	slidesv1 "google.golang.org/api/slides/v1"

	"github.com/songsbyarchit/AmritArchit-v4/internal/drive"
	"github.com/songsbyarchit/AmritArchit-v4/internal/imagesearch"
	"github.com/songsbyarchit/AmritArchit-v4/internal/llm"
	"github.com/songsbyarchit/AmritArchit-v4/internal/llm/gemini"
	"github.com/songsbyarchit/AmritArchit-v4/internal/llm/groq"
	"github.com/songsbyarchit/AmritArchit-v4/internal/llm/openai"
	"github.com/songsbyarchit/AmritArchit-v4/internal/slides"
	"github.com/songsbyarchit/AmritArchit-v4/internal/storage"
	"github.com/songsbyarchit/AmritArchit-v4/pkg/config"
	"github.com/songsbyarchit/AmritArchit-v4/pkg/prompts"
)

func BuildService(ctx context.Context, cfg *config.Config) (*Service, error) {
	p, err := prompts.Load()
	if err != nil {
		return nil, err
	}

	llmClient, err := buildLLMClient(ctx, cfg, p)
	if err != nil {
		return nil, err
	}

	tokenSource, err := googleTokenSource(ctx, cfg.CredentialsFile)
	if err != nil {
		return nil, err
	}

	slidesService, err := slides.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, err
	}

	driveService, err := drive.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, err
	}

	builder := slides.NewBuilder(slidesService, slides.BuilderConfig{
		Layout: cfg.Deck.Layout,
		Image: slides.ImageGeometry{
			WidthEMU:      cfg.Image.WidthEMU,
			HeightEMU:     cfg.Image.HeightEMU,
			ScaleX:        cfg.Image.ScaleX,
			ScaleY:        cfg.Image.ScaleY,
			TranslateXEMU: cfg.Image.TranslateXEMU,
			TranslateYEMU: cfg.Image.TranslateYEMU,
		},
	})

	publisher := drive.NewPublisher(driveService, cfg.Sharing.Type, cfg.Sharing.Role)

	var images ImageResolver
	if cfg.GoogleSearchAPIKey != "" && cfg.GoogleSearchEngineID != "" {
		images = imagesearch.NewClient(cfg.GoogleSearchAPIKey, cfg.GoogleSearchEngineID)
	} else {
		slog.Warn("Image search not configured, slides will have no images")
	}

	localStorage := storage.NewLocalStorage(cfg.Output.Dir)
	if err := localStorage.EnsureDirectories(); err != nil {
		return nil, err
	}

	var archive *storage.GCSArchive
	if cfg.GCSBucket != "" {
		archive, err = storage.NewGCSArchive(ctx, cfg.GCSBucket)
		if err != nil {
			return nil, err
		}
	}

	return NewService(ServiceOptions{
		Config:    cfg,
		LLM:       llmClient,
		Images:    images,
		Builder:   builder,
		Publisher: publisher,
		Storage:   localStorage,
		Archive:   archive,
	}), nil
}

func buildLLMClient(ctx context.Context, cfg *config.Config, p *prompts.Prompts) (llm.Client, error) {
	deckOpts := llm.DeckOptions{
		SlideCount:  cfg.Deck.SlideCount,
		BulletCount: cfg.Deck.BulletCount,
	}

	switch cfg.LLM.Provider {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
		}
		return openai.NewClient(cfg.OpenAIAPIKey, openai.Options{
			Model:        cfg.LLM.Model,
			SystemPrompt: cfg.LLM.SystemPrompt,
			Prompts:      p,
			Deck:         deckOpts,
		}), nil
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for the gemini provider")
		}
		return gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.LLM.Model, cfg.LLM.SystemPrompt, p, deckOpts)
	case "groq":
		if cfg.GroqAPIKey == "" {
			return nil, fmt.Errorf("GROQ_API_KEY is required for the groq provider")
		}
		return groq.NewClient(cfg.GroqAPIKey, cfg.LLM.Model, cfg.LLM.SystemPrompt, p, deckOpts)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}
}

func googleTokenSource(ctx context.Context, credentialsFile string) (oauth2.TokenSource, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}

	creds, err := google.CredentialsFromJSON(ctx, data, slidesv1.PresentationsScope, drivev3.DriveScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}

	return creds.TokenSource, nil
}
