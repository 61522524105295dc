package photo

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"
)

const (
	maxBaseLen  = 40
	defaultBase = "photo"
)

var (
	unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
	// A rune outside the BMP counts as two UTF-16 code units and becomes
	// two underscores.
	astralChars = regexp.MustCompile(`[\x{10000}-\x{10FFFF}]`)
)

// SanitizeBase reduces an uploaded filename to a safe base name without
// extension, at most 40 characters long.
func SanitizeBase(filename string) string {
	name := path.Base(filename)
	if filename == "" || name == "/" {
		name = ""
	}
	name = astralChars.ReplaceAllString(name, "__")
	name = unsafeChars.ReplaceAllString(name, "_")

	// A name made only of a leading dot and an extension, like ".jpg", is
	// treated as having no extension.
	ext := path.Ext(name)
	if ext == name || name == ".." {
		ext = ""
	}
	base := strings.TrimSuffix(name, ext)

	if len(base) > maxBaseLen {
		base = base[:maxBaseLen]
	}
	if base == "" {
		return defaultBase
	}
	return base
}

// ArtifactName is <sanitized-base>-<unix millis>.png. Two uploads with the
// same base in the same millisecond get the same name.
func ArtifactName(filename string, at time.Time) string {
	return fmt.Sprintf("%s-%d%s", SanitizeBase(filename), at.UnixMilli(), outputFileExtension)
}
