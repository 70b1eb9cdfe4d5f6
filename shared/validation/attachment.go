package validation

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/itchan-dev/mediameta/shared/domain"
)

func BuildAllowedMimeMap(mimeTypes []string) map[string]bool {
	allowedMimes := make(map[string]bool, len(mimeTypes))
	for _, m := range mimeTypes {
		allowedMimes[m] = true
	}
	return allowedMimes
}

func DetectMimeType(fileHeader *multipart.FileHeader) (string, error) {
	mimeType := fileHeader.Header.Get("Content-Type")

	// If no Content-Type or it's generic, detect from extension
	if mimeType == "" || mimeType == "application/octet-stream" {
		ext := filepath.Ext(fileHeader.Filename)
		detectedType := mime.TypeByExtension(ext)
		if detectedType != "" {
			mimeType = detectedType
		}
	}

	if mimeType == "" {
		return "", fmt.Errorf("could not detect MIME type for file: %s", fileHeader.Filename)
	}

	return mimeType, nil
}

// ValidateMimeType checks an upload against the allowed MIME types and returns the detected type
func ValidateMimeType(fileHeader *multipart.FileHeader, allowed map[string]bool) (string, error) {
	mimeType, err := DetectMimeType(fileHeader)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidMimeType, err)
	}
	if !allowed[mimeType] {
		return "", fmt.Errorf("%w: %s (file: %s)", ErrInvalidMimeType, mimeType, fileHeader.Filename)
	}
	return mimeType, nil
}

// ProbeImageSize reads image dimensions from the header without decoding pixels.
func ProbeImageSize(r io.Reader) (*domain.MediaSize, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUndecodableImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: %s image has empty dimensions", ErrUndecodableImage, format)
	}
	return &domain.MediaSize{
		Width:  cfg.Width,
		Height: cfg.Height,
		Aspect: float64(cfg.Width) / float64(cfg.Height),
	}, nil
}
