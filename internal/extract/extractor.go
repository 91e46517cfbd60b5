package extract

import (
	"context"
	"log"
	"strings"

	"github.com/cloudwego/eino-ext/components/document/loader/file"
	pdfparser "github.com/cloudwego/eino-ext/components/document/parser/pdf"
	"github.com/cloudwego/eino/components/document"
	"github.com/cloudwego/eino/components/document/parser"
)

// Sentinel strings stored in place of text that cannot or should not be
// extracted. They are part of the stored record, not errors.
const (
	ImageSentinel       = "[image content is not machine-readable]"
	UnsupportedSentinel = "[unsupported file type]"
	ParseFailedSentinel = "[document content could not be parsed]"
)

// Extractor turns stored file bytes into plain text. PDF content goes
// through the document loader; image content is never parsed.
type Extractor struct {
	loader *file.FileLoader
}

func NewExtractor(ctx context.Context) (*Extractor, error) {
	pdfParser, err := pdfparser.NewPDFParser(ctx, &pdfparser.Config{})
	if err != nil {
		return nil, err
	}
	extParser, err := parser.NewExtParser(ctx, &parser.ExtParserConfig{
		Parsers: map[string]parser.Parser{
			".pdf": pdfParser,
		},
		FallbackParser: parser.TextParser{},
	})
	if err != nil {
		return nil, err
	}
	loader, err := file.NewFileLoader(ctx, &file.FileLoaderConfig{
		UseNameAsID: true,
		Parser:      extParser,
	})
	if err != nil {
		return nil, err
	}
	return &Extractor{loader: loader}, nil
}

// Extract returns the plain text for the file at path with the given
// declared content type. It never fails: extraction problems degrade to
// a sentinel string so a single bad document cannot abort a batch.
func (e *Extractor) Extract(ctx context.Context, path, contentType string) string {
	switch {
	case contentType == "application/pdf":
		text, err := e.loadText(ctx, path)
		if err != nil {
			log.Printf("extract %s: %v", path, err)
			return ParseFailedSentinel
		}
		return text
	case strings.HasPrefix(contentType, "image/"):
		return ImageSentinel
	default:
		return UnsupportedSentinel
	}
}

func (e *Extractor) loadText(ctx context.Context, path string) (string, error) {
	docs, err := e.loader.Load(ctx, document.Source{URI: path})
	if err != nil {
		return "", err
	}
	var builder strings.Builder
	for _, doc := range docs {
		content := strings.TrimSpace(doc.Content)
		if content == "" {
			continue
		}
		builder.WriteString(content)
		builder.WriteString("\n\n")
	}
	return strings.TrimSpace(builder.String()), nil
}
