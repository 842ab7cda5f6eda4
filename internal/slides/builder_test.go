package slides

import (
	"context"
	"errors"
	"testing"

	slidesv1 "google.golang.org/api/slides/v1"
)

type fakeService struct {
	createResp    *slidesv1.Presentation
	createErr     error
	batchResp     *slidesv1.BatchUpdatePresentationResponse
	batchErr      error
	page          *slidesv1.Page
	pageErr       error
	batchRequests [][]*slidesv1.Request
}

func (f *fakeService) Create(ctx context.Context, p *slidesv1.Presentation) (*slidesv1.Presentation, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createResp, nil
}

func (f *fakeService) BatchUpdate(ctx context.Context, presentationID string, requests []*slidesv1.Request) (*slidesv1.BatchUpdatePresentationResponse, error) {
	f.batchRequests = append(f.batchRequests, requests)
	if f.batchErr != nil {
		return nil, f.batchErr
	}
	return f.batchResp, nil
}

func (f *fakeService) GetPage(ctx context.Context, presentationID, pageObjectID string) (*slidesv1.Page, error) {
	if f.pageErr != nil {
		return nil, f.pageErr
	}
	return f.page, nil
}

func testConfig() BuilderConfig {
	return BuilderConfig{
		Layout: "TITLE_AND_BODY",
		Image: ImageGeometry{
			WidthEMU:      5000000,
			HeightEMU:     3000000,
			ScaleX:        0.7,
			ScaleY:        0.7,
			TranslateXEMU: 5000000,
			TranslateYEMU: 500000,
		},
	}
}

func TestCreatePresentation(t *testing.T) {
	service := &fakeService{
		createResp: &slidesv1.Presentation{PresentationId: "pres-1", Title: "AI Generated: Rome"},
	}
	builder := NewBuilder(service, testConfig())

	id, err := builder.CreatePresentation(context.Background(), "AI Generated: Rome")
	if err != nil {
		t.Fatalf("CreatePresentation() error: %v", err)
	}
	if id != "pres-1" {
		t.Errorf("CreatePresentation() = %q, want pres-1", id)
	}
}

func TestCreatePresentationError(t *testing.T) {
	service := &fakeService{createErr: errors.New("boom")}
	builder := NewBuilder(service, testConfig())

	if _, err := builder.CreatePresentation(context.Background(), "x"); err == nil {
		t.Fatal("CreatePresentation() expected error")
	}
}

func TestCreateSlide(t *testing.T) {
	service := &fakeService{
		batchResp: &slidesv1.BatchUpdatePresentationResponse{
			Replies: []*slidesv1.Response{
				{CreateSlide: &slidesv1.CreateSlideResponse{ObjectId: "slide-1"}},
			},
		},
	}
	builder := NewBuilder(service, testConfig())

	id, err := builder.CreateSlide(context.Background(), "pres-1")
	if err != nil {
		t.Fatalf("CreateSlide() error: %v", err)
	}
	if id != "slide-1" {
		t.Errorf("CreateSlide() = %q, want slide-1", id)
	}

	if len(service.batchRequests) != 1 || len(service.batchRequests[0]) != 1 {
		t.Fatalf("expected a single batch with one request")
	}
	create := service.batchRequests[0][0].CreateSlide
	if create == nil || create.SlideLayoutReference.PredefinedLayout != "TITLE_AND_BODY" {
		t.Errorf("CreateSlide request layout = %+v, want TITLE_AND_BODY", create)
	}
}

func TestCreateSlideEmptyReply(t *testing.T) {
	service := &fakeService{batchResp: &slidesv1.BatchUpdatePresentationResponse{}}
	builder := NewBuilder(service, testConfig())

	if _, err := builder.CreateSlide(context.Background(), "pres-1"); err == nil {
		t.Fatal("CreateSlide() expected error for empty reply")
	}
}

func TestPlaceholders(t *testing.T) {
	tests := []struct {
		name     string
		elements []*slidesv1.PageElement
		want     Placeholders
	}{
		{
			name: "titleAndBody",
			elements: []*slidesv1.PageElement{
				{ObjectId: "t1", Shape: &slidesv1.Shape{Placeholder: &slidesv1.Placeholder{Type: "TITLE"}}},
				{ObjectId: "b1", Shape: &slidesv1.Shape{Placeholder: &slidesv1.Placeholder{Type: "BODY"}}},
			},
			want: Placeholders{TitleID: "t1", BodyID: "b1"},
		},
		{
			name: "titleOnly",
			elements: []*slidesv1.PageElement{
				{ObjectId: "t1", Shape: &slidesv1.Shape{Placeholder: &slidesv1.Placeholder{Type: "TITLE"}}},
			},
			want: Placeholders{TitleID: "t1"},
		},
		{
			name: "ignoresOtherElements",
			elements: []*slidesv1.PageElement{
				{ObjectId: "img"},
				{ObjectId: "shape", Shape: &slidesv1.Shape{}},
				{ObjectId: "sub", Shape: &slidesv1.Shape{Placeholder: &slidesv1.Placeholder{Type: "SUBTITLE"}}},
				{ObjectId: "b1", Shape: &slidesv1.Shape{Placeholder: &slidesv1.Placeholder{Type: "BODY"}}},
			},
			want: Placeholders{BodyID: "b1"},
		},
		{
			name:     "noElements",
			elements: nil,
			want:     Placeholders{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &fakeService{page: &slidesv1.Page{PageElements: tt.elements}}
			builder := NewBuilder(service, testConfig())

			got, err := builder.Placeholders(context.Background(), "pres-1", "slide-1")
			if err != nil {
				t.Fatalf("Placeholders() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Placeholders() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestInsertTextRequest(t *testing.T) {
	req := InsertTextRequest("obj-1", "Hello")
	if req.InsertText == nil {
		t.Fatal("InsertText is nil")
	}
	if req.InsertText.ObjectId != "obj-1" || req.InsertText.Text != "Hello" {
		t.Errorf("InsertTextRequest = %+v", req.InsertText)
	}
}

func TestCreateImageRequest(t *testing.T) {
	builder := NewBuilder(&fakeService{}, testConfig())

	req := builder.CreateImageRequest("slide-1", "https://example.com/a.jpg")
	create := req.CreateImage
	if create == nil {
		t.Fatal("CreateImage is nil")
	}
	if create.Url != "https://example.com/a.jpg" {
		t.Errorf("Url = %q", create.Url)
	}
	if create.ElementProperties.PageObjectId != "slide-1" {
		t.Errorf("PageObjectId = %q", create.ElementProperties.PageObjectId)
	}
	if create.ElementProperties.Size.Width.Magnitude != 5000000 || create.ElementProperties.Size.Width.Unit != "EMU" {
		t.Errorf("Width = %+v", create.ElementProperties.Size.Width)
	}
	if create.ElementProperties.Size.Height.Magnitude != 3000000 {
		t.Errorf("Height = %+v", create.ElementProperties.Size.Height)
	}
	transform := create.ElementProperties.Transform
	if transform.ScaleX != 0.7 || transform.ScaleY != 0.7 || transform.TranslateX != 5000000 || transform.TranslateY != 500000 {
		t.Errorf("Transform = %+v", transform)
	}
}

func TestCommit(t *testing.T) {
	service := &fakeService{batchResp: &slidesv1.BatchUpdatePresentationResponse{}}
	builder := NewBuilder(service, testConfig())

	requests := []*slidesv1.Request{InsertTextRequest("t1", "Title")}
	if err := builder.Commit(context.Background(), "pres-1", requests); err != nil {
		t.Fatalf("Commit() error: %v", err)
	}

	if len(service.batchRequests) != 1 || len(service.batchRequests[0]) != 1 {
		t.Fatalf("expected one batch with one request, got %+v", service.batchRequests)
	}
}

func TestPresentationURL(t *testing.T) {
	got := PresentationURL("abc123")
	want := "https://docs.google.com/presentation/d/abc123"
	if got != want {
		t.Errorf("PresentationURL() = %q, want %q", got, want)
	}
}
