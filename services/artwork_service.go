package services

import (
	"fmt"
	"mime/multipart"

	"github.com/printflow/printflow-logistics-api/utils"
)

// ArtworkService handles upload, retrieval and deletion of order artwork files
type ArtworkService interface {
	// UploadArtwork validates and uploads an artwork file, returns the storage key
	UploadArtwork(fileHeader *multipart.FileHeader) (string, error)

	// GetArtworkURL generates a URL for accessing uploaded artwork
	GetArtworkURL(artworkKey string) (string, error)

	// DeleteArtwork removes an artwork file from storage
	DeleteArtwork(artworkKey string) error
}

// S3ArtworkService implements ArtworkService using AWS S3 for storage
type S3ArtworkService struct {
	s3Service S3Interface
}

// NewArtworkService creates an artwork service backed by the given S3 client.
func NewArtworkService(s3Service S3Interface) ArtworkService {
	return &S3ArtworkService{
		s3Service: s3Service,
	}
}

// UploadArtwork validates and uploads an artwork file to S3
func (s *S3ArtworkService) UploadArtwork(fileHeader *multipart.FileHeader) (string, error) {
	if err := utils.ValidateArtworkFile(fileHeader); err != nil {
		return "", err
	}

	s3Key, err := s.s3Service.UploadFile(fileHeader)
	if err != nil {
		return "", fmt.Errorf("failed to upload artwork: %w", err)
	}

	return s3Key, nil
}

// GetArtworkURL generates a presigned URL for accessing artwork
func (s *S3ArtworkService) GetArtworkURL(artworkKey string) (string, error) {
	if artworkKey == "" {
		return "", nil
	}

	url, err := s.s3Service.GetPresignedURL(artworkKey)
	if err != nil {
		return "", fmt.Errorf("failed to generate artwork URL: %w", err)
	}

	return url, nil
}

// DeleteArtwork deletes artwork from S3
func (s *S3ArtworkService) DeleteArtwork(artworkKey string) error {
	if artworkKey == "" {
		return nil
	}

	if err := s.s3Service.DeleteFile(artworkKey); err != nil {
		return fmt.Errorf("failed to delete artwork: %w", err)
	}

	return nil
}
