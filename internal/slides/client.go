// Package slides wraps the Google Slides API calls used to build a deck.
package slides

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	slidesv1 "google.golang.org/api/slides/v1"
)

// Service abstracts the Slides API for testing.
type Service interface {
	Create(ctx context.Context, presentation *slidesv1.Presentation) (*slidesv1.Presentation, error)
	BatchUpdate(ctx context.Context, presentationID string, requests []*slidesv1.Request) (*slidesv1.BatchUpdatePresentationResponse, error)
	GetPage(ctx context.Context, presentationID, pageObjectID string) (*slidesv1.Page, error)
}

type apiService struct {
	svc *slidesv1.Service
}

func NewService(ctx context.Context, opts ...option.ClientOption) (Service, error) {
	svc, err := slidesv1.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create slides service: %w", err)
	}
	return &apiService{svc: svc}, nil
}

func (s *apiService) Create(ctx context.Context, presentation *slidesv1.Presentation) (*slidesv1.Presentation, error) {
	return s.svc.Presentations.Create(presentation).Context(ctx).Do()
}

func (s *apiService) BatchUpdate(ctx context.Context, presentationID string, requests []*slidesv1.Request) (*slidesv1.BatchUpdatePresentationResponse, error) {
	return s.svc.Presentations.BatchUpdate(presentationID, &slidesv1.BatchUpdatePresentationRequest{
		Requests: requests,
	}).Context(ctx).Do()
}

func (s *apiService) GetPage(ctx context.Context, presentationID, pageObjectID string) (*slidesv1.Page, error) {
	return s.svc.Presentations.Pages.Get(presentationID, pageObjectID).Context(ctx).Do()
}

// PresentationURL returns the canonical edit URL for a presentation.
func PresentationURL(presentationID string) string {
	return fmt.Sprintf("https://docs.google.com/presentation/d/%s", presentationID)
}
