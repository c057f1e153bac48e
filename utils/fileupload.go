package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

const (
	// MaxArtworkSize is 10MB in bytes
	MaxArtworkSize = 10 * 1024 * 1024
)

// AllowedArtworkFormats are the file extensions accepted for order artwork.
var AllowedArtworkFormats = []string{".png", ".pdf"}

// FileUploadError represents a file upload validation error
type FileUploadError struct {
	Code    string
	Message string
}

func (e *FileUploadError) Error() string {
	return e.Message
}

// ValidateArtworkFile validates the uploaded artwork format and size
func ValidateArtworkFile(fileHeader *multipart.FileHeader) error {
	// Check file size
	if fileHeader.Size > MaxArtworkSize {
		return &FileUploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File size exceeds maximum allowed size of %d MB", MaxArtworkSize/(1024*1024)),
		}
	}

	// Check file extension
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	for _, allowed := range AllowedArtworkFormats {
		if ext == allowed {
			return nil
		}
	}
	return &FileUploadError{
		Code:    "INVALID_FILE_FORMAT",
		Message: fmt.Sprintf("Only %s files are allowed", strings.Join(AllowedArtworkFormats, ", ")),
	}
}
