package docstore

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"kgchat/internal/models"
)

// TextExtractor yields the plain text for a stored file. Implementations
// never fail; unreadable content degrades to a sentinel string.
type TextExtractor interface {
	Extract(ctx context.Context, path, contentType string) string
}

// Store caches extracted plain text for every ingested file, keyed by a
// stable file identifier. Insertion order is preserved so context
// injection and listings are deterministic.
type Store struct {
	mu        sync.RWMutex
	order     []string
	texts     map[string]string
	dir       string
	extractor TextExtractor
}

func NewStore(dir string, extractor TextExtractor) *Store {
	return &Store{
		texts:     make(map[string]string),
		dir:       dir,
		extractor: extractor,
	}
}

// Put records the extracted text under fileID. A record becomes visible
// to readers only once its full text is stored.
func (s *Store) Put(fileID, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.texts[fileID]; !exists {
		s.order = append(s.order, fileID)
	}
	s.texts[fileID] = text
}

func (s *Store) Get(fileID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.texts[fileID]
	return text, ok
}

// All returns every stored document in insertion order.
func (s *Store) All() []models.DocumentRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]models.DocumentRecord, 0, len(s.order))
	for _, id := range s.order {
		records = append(records, models.DocumentRecord{FileID: id, Text: s.texts[id]})
	}
	return records
}

// PreviewAll returns every stored document with its text truncated to
// maxLen runes, marking truncation with an ellipsis. Listing only; the
// full text is always used for context injection.
func (s *Store) PreviewAll(maxLen int) []models.FilePreview {
	s.mu.RLock()
	defer s.mu.RUnlock()
	previews := make([]models.FilePreview, 0, len(s.order))
	for _, id := range s.order {
		previews = append(previews, models.FilePreview{
			FileID:  id,
			Preview: truncate(s.texts[id], maxLen),
		})
	}
	return previews
}

func truncate(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "..."
}

// IngestUpload saves one uploaded file, extracts its text and stores the
// record. Files whose declared content type is not on the allow-list are
// skipped without error. The returned text is the stored content.
func (s *Store) IngestUpload(ctx context.Context, fh *multipart.FileHeader) (string, bool) {
	contentType := fh.Header.Get("Content-Type")
	if !isAllowedType(contentType) {
		return "", false
	}
	fileID := uuid.New().String() + filepath.Ext(fh.Filename)
	path := filepath.Join(s.dir, fileID)
	if err := saveUpload(fh, path); err != nil {
		log.Printf("save upload %s: %v", fh.Filename, err)
		return "", false
	}
	text := s.extractor.Extract(ctx, path, contentType)
	s.Put(fileID, text)
	return text, true
}

func saveUpload(fh *multipart.FileHeader, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}
	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()
	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// LoadDir seeds the store from a directory snapshot. Every regular file
// whose extension maps to an allowed type is ingested; per-file problems
// are logged and skipped so the store tolerates partial availability.
func (s *Store) LoadDir(ctx context.Context) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("read upload dir: %w", err)
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		contentType := contentTypeForExt(filepath.Ext(name))
		if contentType == "" {
			continue
		}
		text := s.extractor.Extract(ctx, filepath.Join(s.dir, name), contentType)
		s.Put(name, text)
		log.Printf("loaded file: %s", name)
	}
	return nil
}

func isAllowedType(contentType string) bool {
	switch contentType {
	case "application/pdf", "image/png", "image/jpeg":
		return true
	}
	return false
}

func contentTypeForExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	}
	return ""
}
