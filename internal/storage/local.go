package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// LocalStorage keeps run artifacts (raw model output, run reports) on disk.
type LocalStorage struct {
	outputDir string
}

func NewLocalStorage(outputDir string) *LocalStorage {
	return &LocalStorage{outputDir: outputDir}
}

func (s *LocalStorage) EnsureDirectories() error {
	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// SaveOutline writes the raw generation text for a topic and returns the path.
func (s *LocalStorage) SaveOutline(topic, text string) (string, error) {
	return s.save(artifactName("outline", topic, "txt"), []byte(text))
}

// SaveReport writes a run report for a topic and returns the path.
func (s *LocalStorage) SaveReport(topic string, data []byte) (string, error) {
	return s.save(artifactName("report", topic, "yaml"), data)
}

func (s *LocalStorage) save(filename string, data []byte) (string, error) {
	if err := s.EnsureDirectories(); err != nil {
		return "", err
	}

	path := filepath.Join(s.outputDir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}

	return path, nil
}

func artifactName(kind, topic, ext string) string {
	return fmt.Sprintf("%s-%s-%s.%s", kind, slugify(topic), time.Now().Format("20060102-150405"), ext)
}

func slugify(topic string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(topic) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "untitled"
	}
	if len(slug) > 40 {
		slug = slug[:40]
	}
	return slug
}
