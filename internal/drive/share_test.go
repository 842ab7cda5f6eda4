package drive

import (
	"context"
	"errors"
	"testing"

	drivev3 "google.golang.org/api/drive/v3"
)

type fakeService struct {
	err        error
	fileID     string
	permission *drivev3.Permission
}

func (f *fakeService) CreatePermission(ctx context.Context, fileID string, permission *drivev3.Permission) error {
	f.fileID = fileID
	f.permission = permission
	return f.err
}

func TestShare(t *testing.T) {
	service := &fakeService{}
	publisher := NewPublisher(service, "anyone", "writer")

	if err := publisher.Share(context.Background(), "pres-1"); err != nil {
		t.Fatalf("Share() error: %v", err)
	}

	if service.fileID != "pres-1" {
		t.Errorf("fileID = %q, want pres-1", service.fileID)
	}
	if service.permission == nil {
		t.Fatal("permission not created")
	}
	if service.permission.Type != "anyone" {
		t.Errorf("permission type = %q, want anyone", service.permission.Type)
	}
	if service.permission.Role != "writer" {
		t.Errorf("permission role = %q, want writer", service.permission.Role)
	}
}

func TestShareError(t *testing.T) {
	service := &fakeService{err: errors.New("forbidden")}
	publisher := NewPublisher(service, "anyone", "writer")

	if err := publisher.Share(context.Background(), "pres-1"); err == nil {
		t.Fatal("Share() expected error")
	}
}
