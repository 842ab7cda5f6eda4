package app

import (
	"context"
	"io"

	"github.com/songsbyarchit/AmritArchit-v4/internal/drive"
	"github.com/songsbyarchit/AmritArchit-v4/internal/llm"
	"github.com/songsbyarchit/AmritArchit-v4/internal/slides"
	"github.com/songsbyarchit/AmritArchit-v4/internal/storage"
	"github.com/songsbyarchit/AmritArchit-v4/pkg/config"
)

// ImageResolver finds one usable image URL per query. An empty result means
// no image, which is an expected outcome rather than an error.
type ImageResolver interface {
	FirstImage(ctx context.Context, query string) (string, error)
}

type Service struct {
	cfg       *config.Config
	llm       llm.Client
	images    ImageResolver
	builder   *slides.Builder
	publisher *drive.Publisher
	storage   *storage.LocalStorage
	archive   *storage.GCSArchive
}

type ServiceOptions struct {
	Config    *config.Config
	LLM       llm.Client
	Images    ImageResolver
	Builder   *slides.Builder
	Publisher *drive.Publisher
	Storage   *storage.LocalStorage
	Archive   *storage.GCSArchive
}

func NewService(opts ServiceOptions) *Service {
	return &Service{
		cfg:       opts.Config,
		llm:       opts.LLM,
		images:    opts.Images,
		builder:   opts.Builder,
		publisher: opts.Publisher,
		storage:   opts.Storage,
		archive:   opts.Archive,
	}
}

func (s *Service) Config() *config.Config        { return s.cfg }
func (s *Service) LLM() llm.Client               { return s.llm }
func (s *Service) Images() ImageResolver         { return s.images }
func (s *Service) Builder() *slides.Builder      { return s.builder }
func (s *Service) Publisher() *drive.Publisher   { return s.publisher }
func (s *Service) Storage() *storage.LocalStorage { return s.storage }
func (s *Service) Archive() *storage.GCSArchive  { return s.archive }

func (s *Service) Close() {
	if closer, ok := s.llm.(io.Closer); ok {
		_ = closer.Close()
	}
	if s.archive != nil {
		_ = s.archive.Close()
	}
}
