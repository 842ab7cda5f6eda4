package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	slidesv1 "google.golang.org/api/slides/v1"
	"gopkg.in/yaml.v3"

	"github.com/songsbyarchit/AmritArchit-v4/internal/deck"
	"github.com/songsbyarchit/AmritArchit-v4/internal/slides"
)

// Image lookups for the slides run concurrently; everything else is one
// network call at a time.
const imageWorkers = 2

type Pipeline struct {
	service *Service
}

type Result struct {
	PresentationID string
	URL            string
	SlideCount     int
	OperationCount int
	Warnings       []string
}

type runReport struct {
	Topic          string   `yaml:"topic"`
	PresentationID string   `yaml:"presentation_id"`
	URL            string   `yaml:"url"`
	GeneratedAt    string   `yaml:"generated_at"`
	SlideCount     int      `yaml:"slide_count"`
	OperationCount int      `yaml:"operation_count"`
	Warnings       []string `yaml:"warnings,omitempty"`
}

func NewPipeline(service *Service) *Pipeline {
	return &Pipeline{service: service}
}

// Generate runs the whole workflow for one topic: model text, parsing,
// presentation assembly, image placement and sharing. The presentation is
// created before slides are populated; if a later step fails the created
// presentation is left as-is.
func (p *Pipeline) Generate(ctx context.Context, topic string) (*Result, error) {
	service := p.service
	cfg := service.Config()

	slog.Info("Generating slide content...", "topic", topic)
	raw, err := service.LLM().GenerateDeck(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("generate slide content: %w", err)
	}
	slog.Debug("Model response", "content", raw)

	p.saveOutline(ctx, topic, raw)

	parsed := deck.Parse(raw)
	slog.Info("Parsed slides", "count", len(parsed))

	presentationID, err := service.Builder().CreatePresentation(ctx, cfg.Deck.TitlePrefix+topic)
	if err != nil {
		return nil, err
	}

	images, err := p.resolveImages(ctx, parsed)
	if err != nil {
		return nil, err
	}

	var requests []*slidesv1.Request
	var warnings []string

	for i, slide := range parsed {
		slideID, err := service.Builder().CreateSlide(ctx, presentationID)
		if err != nil {
			return nil, err
		}

		placeholders, err := service.Builder().Placeholders(ctx, presentationID, slideID)
		if err != nil {
			return nil, err
		}

		if placeholders.TitleID != "" {
			requests = append(requests, slides.InsertTextRequest(placeholders.TitleID, slide.Title))
		} else {
			warnings = appendWarning(warnings, i, "no title placeholder")
		}

		if placeholders.BodyID != "" {
			requests = append(requests, slides.InsertTextRequest(placeholders.BodyID, slide.Body))
		} else {
			warnings = appendWarning(warnings, i, "no body placeholder")
		}

		if images[i] != "" {
			slog.Info("Adding image to slide", "slide", i+1, "url", images[i])
			requests = append(requests, service.Builder().CreateImageRequest(slideID, images[i]))
		} else {
			warnings = appendWarning(warnings, i, "no image found")
		}
	}

	if len(requests) == 0 {
		slog.Info("No valid slide content to add", "presentation_id", presentationID)
	} else {
		slog.Debug("Committing batch update", "operations", len(requests))
		if err := service.Builder().Commit(ctx, presentationID, requests); err != nil {
			return nil, err
		}
		slog.Info("Slides added", "operations", len(requests))
	}

	if err := service.Publisher().Share(ctx, presentationID); err != nil {
		return nil, err
	}

	result := &Result{
		PresentationID: presentationID,
		URL:            slides.PresentationURL(presentationID),
		SlideCount:     len(parsed),
		OperationCount: len(requests),
		Warnings:       warnings,
	}

	p.saveReport(ctx, topic, result)

	return result, nil
}

// resolveImages looks up one image per slide with bounded parallelism,
// keeping results in slide order. A transport failure aborts the run; a
// slide without an image gets an empty entry.
func (p *Pipeline) resolveImages(ctx context.Context, parsed []deck.Slide) ([]string, error) {
	urls := make([]string, len(parsed))

	resolver := p.service.Images()
	if resolver == nil || len(parsed) == 0 {
		return urls, nil
	}

	workers := imageWorkers
	if len(parsed) < workers {
		workers = len(parsed)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				query := parsed[i].SearchQuery()
				slog.Info("Searching image", "slide", i+1, "query", query)

				url, err := resolver.FirstImage(ctx, query)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = fmt.Errorf("resolve image for slide %d: %w", i+1, err)
					}
					mu.Unlock()
					continue
				}
				urls[i] = url
			}
		}()
	}

	for i := range parsed {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return urls, nil
}

func (p *Pipeline) saveOutline(ctx context.Context, topic, raw string) {
	path, err := p.service.Storage().SaveOutline(topic, raw)
	if err != nil {
		slog.Warn("Failed to save raw outline", "error", err)
		return
	}
	slog.Debug("Saved raw outline", "path", path)

	p.archiveArtifact(ctx, path, []byte(raw))
}

func (p *Pipeline) saveReport(ctx context.Context, topic string, result *Result) {
	report := runReport{
		Topic:          topic,
		PresentationID: result.PresentationID,
		URL:            result.URL,
		GeneratedAt:    time.Now().UTC().Format(time.RFC3339),
		SlideCount:     result.SlideCount,
		OperationCount: result.OperationCount,
		Warnings:       result.Warnings,
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		slog.Warn("Failed to marshal run report", "error", err)
		return
	}

	path, err := p.service.Storage().SaveReport(topic, data)
	if err != nil {
		slog.Warn("Failed to save run report", "error", err)
		return
	}
	slog.Debug("Saved run report", "path", path)

	p.archiveArtifact(ctx, path, data)
}

func (p *Pipeline) archiveArtifact(ctx context.Context, path string, data []byte) {
	archive := p.service.Archive()
	if archive == nil {
		return
	}

	name := filepath.Base(path)
	if err := archive.Upload(ctx, name, data); err != nil {
		slog.Warn("Failed to archive artifact", "object", name, "error", err)
	}
}

func appendWarning(warnings []string, slideIndex int, message string) []string {
	warning := fmt.Sprintf("slide %d: %s", slideIndex+1, message)
	slog.Info("Slide degraded", "slide", slideIndex+1, "reason", message)
	return append(warnings, warning)
}
