package service

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

// maxImageBytes caps attached images at 2 MiB of raw data.
const maxImageBytes = 2 << 20

// EncodeImage converts raw image bytes into a data URI suitable for storing
// on a job or worker record. Only image content types are accepted.
func EncodeImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("image is empty")
	}
	if len(data) > maxImageBytes {
		return "", fmt.Errorf("image is too large: %d bytes (max %d)", len(data), maxImageBytes)
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("not an image: detected %s", contentType)
	}

	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// IsDataURI reports whether s is already an encoded data URI. Such values
// are stored as-is instead of being re-encoded.
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, "data:")
}
