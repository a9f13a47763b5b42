package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cast"

	"github.com/demersaj/elements/internal/element"
	"github.com/demersaj/elements/internal/frame"
	"github.com/demersaj/elements/internal/types"
)

// SavedPort receives a confirmation frame for each document written.
const SavedPort = "saved"

const defaultOutputDirectory = "./downloaded_documents"

// Saver is an element that writes each text frame to disk. Naming,
// collision handling, subdirectory layout and metadata sidecars are all
// driven by settings; an optional SQLite index records every write.
type Saver struct {
	mu    sync.Mutex
	index *Index
}

func NewSaver() *Saver { return &Saver{} }

func (s *Saver) Name() string { return "document_saver" }

// Close releases the saver's index, if one was opened.
func (s *Saver) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index == nil {
		return nil
	}
	err := s.index.Close()
	s.index = nil
	return err
}

// Run persists the document carried by the incoming frame. Frames without
// text content are skipped, matching upstream loaders that emit bare
// signalling frames. A confirmation frame is emitted on the saved port.
func (s *Saver) Run(ctx context.Context, ec *element.Context, in *frame.Frame) error {
	log := ec.Log()

	if in == nil {
		log.Warn("received nil frame, skipping")
		return nil
	}

	text := cast.ToString(in.OtherData["text"])
	if strings.TrimSpace(text) == "" {
		log.Warn("empty text content, skipping", "frame_id", in.FrameID)
		return nil
	}

	outputDir := strings.TrimSpace(ec.Settings.GetString("output_directory"))
	if outputDir == "" {
		outputDir = defaultOutputDirectory
	}
	baseDir, err := filepath.Abs(outputDir)
	if err != nil {
		return types.WrapError(types.SETTINGS_VALIDATION_FAILED, "invalid output directory", err)
	}

	pattern := ec.Settings.GetString("filename_pattern")
	if pattern == "" {
		pattern = "{filename}"
	}

	meta := MetadataFromFrame(in)
	filename := FormatFilename(pattern, meta)

	targetDir := baseDir
	if subdirsEnabled(ec.Settings) && strings.Contains(meta.Key, "/") {
		targetDir = filepath.Join(baseDir, SanitizeSubpath(filepath.Dir(meta.Key)))
	}
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return types.WrapError(types.DOCSTORE_WRITE_FAILED, "failed to create output directory", err)
	}

	path := filepath.Join(targetDir, filename)
	if !ec.Settings.GetBool("overwrite_existing") {
		path = uniquePath(path)
	}

	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return types.WrapError(types.DOCSTORE_WRITE_FAILED,
			fmt.Sprintf("failed to write document %s", path), err)
	}

	if ec.Settings.GetBool("add_metadata_file") {
		if err := writeMetadataSidecar(path, in.OtherData); err != nil {
			return err
		}
	}

	if err := s.indexDocument(ctx, ec, in, filepath.Base(path), path, meta, int64(len(text))); err != nil {
		return err
	}

	log.Info("saved document", "path", path, "bytes", len(text))

	out := frame.Project(in, map[string]any{
		"saved_path":     path,
		"saved_filename": filepath.Base(path),
		"saved_bytes":    len(text),
	})
	return ec.Sink.Emit(SavedPort, out)
}

// subdirsEnabled defaults to true when the setting is absent.
func subdirsEnabled(s *element.Settings) bool {
	if !s.IsSet("create_subdirectories") {
		return true
	}
	return s.GetBool("create_subdirectories")
}

// uniquePath appends _1, _2, ... before the extension until the path does
// not collide with an existing file.
func uniquePath(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}

	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, counter, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// SanitizeSubpath sanitizes each segment of a relative directory path while
// preserving the separators between them.
func SanitizeSubpath(p string) string {
	segments := strings.Split(filepath.ToSlash(p), "/")
	cleaned := segments[:0]
	for _, seg := range segments {
		if seg == "" || seg == "." || seg == ".." {
			continue
		}
		cleaned = append(cleaned, SanitizeFilename(seg))
	}
	return filepath.Join(cleaned...)
}

// writeMetadataSidecar dumps the frame's side channel, minus the document
// body itself, next to the saved file.
func writeMetadataSidecar(docPath string, otherData map[string]any) error {
	meta := make(map[string]any, len(otherData))
	for k, v := range otherData {
		if k == "text" {
			continue
		}
		meta[k] = v
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return types.WrapError(types.DOCSTORE_WRITE_FAILED, "failed to encode metadata", err)
	}
	sidecar := docPath + ".meta.json"
	if err := os.WriteFile(sidecar, data, 0o644); err != nil {
		return types.WrapError(types.DOCSTORE_WRITE_FAILED,
			fmt.Sprintf("failed to write metadata file %s", sidecar), err)
	}
	return nil
}

// indexDocument records the write in the SQLite index when index_path is
// configured. The index is opened lazily on first use.
func (s *Saver) indexDocument(ctx context.Context, ec *element.Context, in *frame.Frame, filename, path string, meta Metadata, size int64) error {
	indexPath := ec.Settings.GetString("index_path")
	if indexPath == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index == nil || s.index.Path() != indexPath {
		if s.index != nil {
			s.index.Close()
		}
		idx, err := OpenIndex(indexPath)
		if err != nil {
			return err
		}
		s.index = idx
	}

	_, err := s.index.Insert(ctx, &Record{
		FrameID:  in.FrameID,
		Filename: filename,
		Path:     path,
		Size:     size,
		Bucket:   meta.Bucket,
		Key:      meta.Key,
	})
	return err
}
