package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateSignatureName validates the artist name stamped on drawings.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 64 characters
//
// Whether the name can actually be drawn depends on the font; missing
// glyphs are skipped at layout time.
func ValidateSignatureName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "signature name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidInput, "signature name too long (max 64 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "signature name contains invalid control characters")
		}
	}

	return nil
}

// filePrefixRegex matches export file name prefixes such as "AMG" or "hex-walk_2".
var filePrefixRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateFilePrefix validates the prefix used for export file names.
// It ensures the prefix is a simple basename fragment without path components.
func ValidateFilePrefix(prefix string) error {
	if prefix == "" {
		return New(ErrCodeInvalidPath, "file prefix cannot be empty")
	}

	if strings.ContainsAny(prefix, "/\\") {
		return New(ErrCodeInvalidPath, "file prefix cannot contain path separators")
	}

	if !filePrefixRegex.MatchString(prefix) {
		return New(ErrCodeInvalidPath, "invalid file prefix: %q", prefix)
	}

	return nil
}

// ValidatePath validates an output directory or input file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateListenAddr validates a host:port listen address for the preview
// server. An empty host binds all interfaces.
func ValidateListenAddr(addr string) error {
	if addr == "" {
		return New(ErrCodeInvalidConfig, "listen address cannot be empty")
	}

	i := strings.LastIndexByte(addr, ':')
	if i < 0 || i == len(addr)-1 {
		return New(ErrCodeInvalidConfig, "listen address %q must have the form host:port", addr)
	}

	for _, r := range addr[i+1:] {
		if r < '0' || r > '9' {
			return New(ErrCodeInvalidConfig, "listen address %q has a non-numeric port", addr)
		}
	}

	return nil
}
