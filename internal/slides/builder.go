package slides

import (
	"context"
	"fmt"
	"log/slog"

	slidesv1 "google.golang.org/api/slides/v1"
)

const (
	placeholderTitle = "TITLE"
	placeholderBody  = "BODY"
)

// ImageGeometry fixes the size and placement of slide images, in EMU.
type ImageGeometry struct {
	WidthEMU      int64
	HeightEMU     int64
	ScaleX        float64
	ScaleY        float64
	TranslateXEMU int64
	TranslateYEMU int64
}

type BuilderConfig struct {
	Layout string
	Image  ImageGeometry
}

// Placeholders holds the object IDs of a slide's title and body regions.
// Either may be empty when the layout did not provide that placeholder.
type Placeholders struct {
	TitleID string
	BodyID  string
}

// Builder issues the Slides API calls that assemble a presentation.
type Builder struct {
	service Service
	cfg     BuilderConfig
}

func NewBuilder(service Service, cfg BuilderConfig) *Builder {
	return &Builder{
		service: service,
		cfg:     cfg,
	}
}

// CreatePresentation creates an empty presentation and returns its ID.
func (b *Builder) CreatePresentation(ctx context.Context, title string) (string, error) {
	presentation, err := b.service.Create(ctx, &slidesv1.Presentation{Title: title})
	if err != nil {
		return "", fmt.Errorf("create presentation: %w", err)
	}

	slog.Info("Presentation created", "presentation_id", presentation.PresentationId, "url", PresentationURL(presentation.PresentationId))
	return presentation.PresentationId, nil
}

// CreateSlide appends a slide using the configured layout and returns the
// object ID the service assigned to it.
func (b *Builder) CreateSlide(ctx context.Context, presentationID string) (string, error) {
	requests := []*slidesv1.Request{
		{
			CreateSlide: &slidesv1.CreateSlideRequest{
				SlideLayoutReference: &slidesv1.LayoutReference{
					PredefinedLayout: b.cfg.Layout,
				},
			},
		},
	}

	resp, err := b.service.BatchUpdate(ctx, presentationID, requests)
	if err != nil {
		return "", fmt.Errorf("create slide: %w", err)
	}

	if len(resp.Replies) == 0 || resp.Replies[0].CreateSlide == nil {
		return "", fmt.Errorf("create slide: no object id in reply")
	}

	return resp.Replies[0].CreateSlide.ObjectId, nil
}

// Placeholders reads the slide's page elements and picks out the title and
// body placeholder IDs. Missing placeholders are left empty, not errors.
func (b *Builder) Placeholders(ctx context.Context, presentationID, slideID string) (Placeholders, error) {
	page, err := b.service.GetPage(ctx, presentationID, slideID)
	if err != nil {
		return Placeholders{}, fmt.Errorf("get page elements: %w", err)
	}

	var ph Placeholders
	for _, element := range page.PageElements {
		if element.Shape == nil || element.Shape.Placeholder == nil {
			continue
		}

		slog.Debug("Inspecting page element", "object_id", element.ObjectId, "placeholder", element.Shape.Placeholder.Type)

		switch element.Shape.Placeholder.Type {
		case placeholderTitle:
			ph.TitleID = element.ObjectId
		case placeholderBody:
			ph.BodyID = element.ObjectId
		}
	}

	return ph, nil
}

// Commit applies all accumulated requests in a single batch update.
func (b *Builder) Commit(ctx context.Context, presentationID string, requests []*slidesv1.Request) error {
	if _, err := b.service.BatchUpdate(ctx, presentationID, requests); err != nil {
		return fmt.Errorf("batch update: %w", err)
	}
	return nil
}

// InsertTextRequest builds a text insertion operation for a placeholder.
func InsertTextRequest(objectID, text string) *slidesv1.Request {
	return &slidesv1.Request{
		InsertText: &slidesv1.InsertTextRequest{
			ObjectId: objectID,
			Text:     text,
		},
	}
}

// CreateImageRequest builds an image insertion operation with the
// configured placement geometry.
func (b *Builder) CreateImageRequest(slideID, imageURL string) *slidesv1.Request {
	geometry := b.cfg.Image
	return &slidesv1.Request{
		CreateImage: &slidesv1.CreateImageRequest{
			Url: imageURL,
			ElementProperties: &slidesv1.PageElementProperties{
				PageObjectId: slideID,
				Size: &slidesv1.Size{
					Width:  &slidesv1.Dimension{Magnitude: float64(geometry.WidthEMU), Unit: "EMU"},
					Height: &slidesv1.Dimension{Magnitude: float64(geometry.HeightEMU), Unit: "EMU"},
				},
				Transform: &slidesv1.AffineTransform{
					ScaleX:     geometry.ScaleX,
					ScaleY:     geometry.ScaleY,
					TranslateX: float64(geometry.TranslateXEMU),
					TranslateY: float64(geometry.TranslateYEMU),
					Unit:       "EMU",
				},
			},
		},
	}
}
