package validation

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidateAndParseMultipart limits the request body to maxSize and parses the multipart form.
// When the limit is exceeded the server stops reading and the client sees a connection reset.
// Requests that are not multipart at all return http.ErrNotMultipart or http.ErrMissingBoundary.
func ValidateAndParseMultipart(r *http.Request, w http.ResponseWriter, maxSize int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
			return err
		}
		return fmt.Errorf("%w: failed to parse multipart form", ErrPayloadTooLarge)
	}

	return nil
}

// CalculateMaxRequestSize returns the maximum request size including overhead buffer.
func CalculateMaxRequestSize(maxFileSize int64, bufferSize int64) int64 {
	return maxFileSize + bufferSize
}

// FormatSizeMB converts bytes to megabytes for user-friendly error messages.
func FormatSizeMB(bytes int64) float64 {
	return float64(bytes) / (1024 * 1024)
}
