// Package docstore implements the document saver element: it persists text
// frames to disk with configurable naming and keeps a SQLite index of what
// was written.
package docstore

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cast"

	"github.com/demersaj/elements/internal/frame"
)

// Metadata describes a document's origin, typically set by an upstream
// object-store loader.
type Metadata struct {
	Filename string
	Key      string
	Bucket   string
}

// MetadataFromFrame pulls document metadata out of a frame's side channel.
func MetadataFromFrame(f *frame.Frame) Metadata {
	return Metadata{
		Filename: cast.ToString(f.OtherData["filename"]),
		Key:      cast.ToString(f.OtherData["key"]),
		Bucket:   cast.ToString(f.OtherData["bucket"]),
	}
}

const unnamedFile = "unnamed_file"

// invalidFilenameChars are replaced with underscores during sanitization.
const invalidFilenameChars = "<>:\"|?*\\/\x00"

// SanitizeFilename makes a name safe for the local filesystem. Invalid
// characters become underscores, leading and trailing dots and spaces are
// stripped, and an empty result becomes "unnamed_file".
func SanitizeFilename(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if strings.ContainsRune(invalidFilenameChars, r) {
			b.WriteRune('_')
		} else {
			b.WriteRune(r)
		}
	}

	cleaned := strings.Trim(b.String(), ". ")
	if cleaned == "" {
		return unnamedFile
	}
	return cleaned
}

// FormatFilename renders the filename pattern for a document. The pattern
// may reference {filename} (original name without extension), {key} (object
// key with slashes flattened) and {bucket}; the original extension is
// re-appended after formatting.
func FormatFilename(pattern string, meta Metadata) string {
	original := meta.Filename
	if original == "" {
		original = unnamedFile
	}

	ext := filepath.Ext(original)
	stem := strings.TrimSuffix(filepath.Base(original), ext)

	replacer := strings.NewReplacer(
		"{filename}", stem,
		"{key}", strings.ReplaceAll(meta.Key, "/", "_"),
		"{bucket}", meta.Bucket,
	)

	return SanitizeFilename(replacer.Replace(pattern) + ext)
}
