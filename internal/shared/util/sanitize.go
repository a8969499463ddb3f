package util

import (
	"errors"
	"strings"
)

// SanitizeFileName makes an uploaded file name safe to embed in a
// storage key: traversal sequences are rejected outright, path
// separators are flattened to underscores.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	cleaned := strings.TrimSpace(name)
	cleaned = strings.ReplaceAll(cleaned, "/", "_")
	cleaned = strings.ReplaceAll(cleaned, "\\", "_")
	if cleaned == "" {
		return "", errors.New("invalid file name")
	}
	return cleaned, nil
}
