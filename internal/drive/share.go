// Package drive sets sharing permissions on generated presentations.
package drive

import (
	"context"
	"fmt"
	"log/slog"

	drivev3 "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// Service abstracts the Drive permissions API for testing.
type Service interface {
	CreatePermission(ctx context.Context, fileID string, permission *drivev3.Permission) error
}

type apiService struct {
	svc *drivev3.Service
}

func NewService(ctx context.Context, opts ...option.ClientOption) (Service, error) {
	svc, err := drivev3.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return &apiService{svc: svc}, nil
}

func (s *apiService) CreatePermission(ctx context.Context, fileID string, permission *drivev3.Permission) error {
	_, err := s.svc.Permissions.Create(fileID, permission).Context(ctx).Do()
	return err
}

// Publisher grants link-based access to files.
type Publisher struct {
	service   Service
	shareType string
	role      string
}

func NewPublisher(service Service, shareType, role string) *Publisher {
	return &Publisher{
		service:   service,
		shareType: shareType,
		role:      role,
	}
}

// Share applies the configured permission to the file. With the defaults
// ("anyone", "writer") anyone holding the link can edit.
func (p *Publisher) Share(ctx context.Context, fileID string) error {
	permission := &drivev3.Permission{
		Type: p.shareType,
		Role: p.role,
	}

	if err := p.service.CreatePermission(ctx, fileID, permission); err != nil {
		return fmt.Errorf("create permission: %w", err)
	}

	slog.Info("Presentation shared", "file_id", fileID, "type", p.shareType, "role", p.role)
	return nil
}
