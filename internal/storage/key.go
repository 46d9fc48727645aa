package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// KeyPrefix is the folder all media uploads live under.
const KeyPrefix = "uploads"

// ObjectKey builds a unique object key for an uploaded file. The original
// filename is sanitized and prefixed with the upload timestamp and a random
// component so repeated uploads of the same file never collide.
func ObjectKey(filename string) string {
	return fmt.Sprintf("%s/%d-%s-%s",
		KeyPrefix,
		time.Now().UnixMilli(),
		uuid.NewString(),
		SanitizeFilename(filename),
	)
}

// SanitizeFilename reduces a client supplied filename to a safe character
// set. Path separators and anything outside [a-zA-Z0-9._-] become hyphens.
func SanitizeFilename(filename string) string {
	if filename == "" {
		return "file"
	}

	// keep only the last path element
	if idx := strings.LastIndexAny(filename, "/\\"); idx >= 0 {
		filename = filename[idx+1:]
	}

	var b strings.Builder
	for _, r := range filename {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}

	sanitized := strings.Trim(b.String(), "-.")
	if sanitized == "" {
		return "file"
	}

	return sanitized
}
