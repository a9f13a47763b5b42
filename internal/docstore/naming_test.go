package docstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"clean name", "report.txt", "report.txt"},
		{"invalid characters", `a<b>c:d"e|f?g*h.txt`, "a_b_c_d_e_f_g_h.txt"},
		{"path separators", "dir/sub\\file.txt", "dir_sub_file.txt"},
		{"leading trailing dots and spaces", "  ..notes.md.. ", "notes.md"},
		{"empty", "", "unnamed_file"},
		{"only invalid", " .. ", "unnamed_file"},
		{"null byte", "a\x00b", "a_b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}

func TestFormatFilename_DefaultPattern(t *testing.T) {
	meta := Metadata{Filename: "report.pdf", Key: "docs/2026/report.pdf", Bucket: "archive"}

	assert.Equal(t, "report.pdf", FormatFilename("{filename}", meta))
}

func TestFormatFilename_PatternPlaceholders(t *testing.T) {
	meta := Metadata{Filename: "report.pdf", Key: "docs/2026/report.pdf", Bucket: "archive"}

	got := FormatFilename("{bucket}_{key}", meta)
	assert.Equal(t, "archive_docs_2026_report.pdf.pdf", got)
}

func TestFormatFilename_ExtensionPreserved(t *testing.T) {
	meta := Metadata{Filename: "notes.md"}

	assert.Equal(t, "saved_notes.md", FormatFilename("saved_{filename}", meta))
}

func TestFormatFilename_MissingFilename(t *testing.T) {
	assert.Equal(t, unnamedFile, FormatFilename("{filename}", Metadata{}))
}

func TestSanitizeSubpath(t *testing.T) {
	assert.Equal(t, "docs/2026", SanitizeSubpath("docs/2026"))
	assert.Equal(t, "docs/a_b", SanitizeSubpath("docs/a:b"))
	assert.Equal(t, "docs", SanitizeSubpath("../docs/.."))
	assert.Equal(t, "", SanitizeSubpath("."))
}
