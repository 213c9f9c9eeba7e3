package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ArtifactStorageService keeps uploaded task artifacts on local disk under a
// unique filename.
type ArtifactStorageService interface {
	SaveArtifact(file *multipart.FileHeader) (string, string, error)
	ArtifactPath(filename string) string
	DeleteArtifact(filename string) error
	EnsureUploadDir() error
}

type artifactStorageService struct {
	uploadPath string
}

func NewArtifactStorageService(uploadPath string) ArtifactStorageService {
	return &artifactStorageService{
		uploadPath: uploadPath,
	}
}

func (s *artifactStorageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}
	return nil
}

func (s *artifactStorageService) SaveArtifact(file *multipart.FileHeader) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" {
		return "", "", fmt.Errorf("invalid file extension: %s", ext)
	}

	uniqueFilename := fmt.Sprintf("artifact_%s%s", uuid.New().String(), ext)
	filePath := filepath.Join(s.uploadPath, uniqueFilename)

	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return "", "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", "", fmt.Errorf("failed to save file: %w", err)
	}

	return uniqueFilename, filePath, nil
}

func (s *artifactStorageService) ArtifactPath(filename string) string {
	return filepath.Join(s.uploadPath, filename)
}

func (s *artifactStorageService) DeleteArtifact(filename string) error {
	filePath := s.ArtifactPath(filename)
	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to delete artifact: %w", err)
	}
	return nil
}
