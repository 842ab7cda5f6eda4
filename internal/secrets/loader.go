// Package secrets loads values from Google Secret Manager.
package secrets

import (
	"context"
	"fmt"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

type Loader struct {
	client    *secretmanager.Client
	projectID string
}

func NewLoader(ctx context.Context, projectID string) (*Loader, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create secret manager client: %w", err)
	}

	return &Loader{
		client:    client,
		projectID: projectID,
	}, nil
}

func (l *Loader) Close() error {
	return l.client.Close()
}

// GetSecret retrieves the latest version of a secret by its ID.
func (l *Loader) GetSecret(ctx context.Context, secretID string) (string, error) {
	name := fmt.Sprintf("projects/%s/secrets/%s/versions/latest", l.projectID, secretID)

	result, err := l.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: name,
	})
	if err != nil {
		return "", fmt.Errorf("failed to access secret %s: %w", secretID, err)
	}

	return string(result.Payload.Data), nil
}
