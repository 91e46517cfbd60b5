package prompt

import (
	"strings"
	"testing"

	"kgchat/internal/docstore"
	"kgchat/internal/intent"
	"kgchat/internal/models"
)

func newStore(docs map[string]string) *docstore.Store {
	store := docstore.NewStore("", nil)
	for id, text := range docs {
		store.Put(id, text)
	}
	return store
}

func TestComposePlainNeverInjectsFiles(t *testing.T) {
	store := newStore(map[string]string{"doc.pdf": "stored text"})

	messages := Compose(intent.Plain, []string{"fresh upload"}, store)
	if len(messages) != 1 {
		t.Fatalf("plain turn must carry exactly one system message, got %d", len(messages))
	}
	if messages[0].Role != models.RoleSystem {
		t.Fatalf("expected system role, got %q", messages[0].Role)
	}
	if messages[0].Content != PlainChatPrompt {
		t.Fatalf("expected plain-conversation instructions")
	}
}

func TestComposeSummarizeUsesKnowledgeGraphPrompt(t *testing.T) {
	messages := Compose(intent.Summarize, nil, newStore(nil))
	if len(messages) != 1 {
		t.Fatalf("empty sources: expected instruction only, got %d messages", len(messages))
	}
	if messages[0].Content != KnowledgeGraphPrompt {
		t.Fatalf("expected knowledge-graph instructions")
	}
	if !strings.Contains(messages[0].Content, "===RELATION_START===") {
		t.Fatalf("instruction block must name the relation markers")
	}
}

func TestComposeSummarizeInjectsFileContext(t *testing.T) {
	store := newStore(map[string]string{"doc.pdf": "stored text"})

	messages := Compose(intent.Summarize, []string{"upload one", "upload two"}, store)
	if len(messages) != 2 {
		t.Fatalf("expected instruction + file context, got %d messages", len(messages))
	}
	ctx := messages[1].Content
	if messages[1].Role != models.RoleSystem {
		t.Fatalf("file context must be a system message")
	}
	if !strings.Contains(ctx, "Newly uploaded file contents:") {
		t.Fatalf("missing new-uploads section: %q", ctx)
	}
	if strings.Index(ctx, "upload one") > strings.Index(ctx, "upload two") {
		t.Fatalf("uploads out of order: %q", ctx)
	}
	if !strings.Contains(ctx, "File name: doc.pdf") || !strings.Contains(ctx, "Content: stored text") {
		t.Fatalf("missing stored-files section: %q", ctx)
	}
	if strings.Index(ctx, "Newly uploaded") > strings.Index(ctx, "Stored file contents:") {
		t.Fatalf("new uploads must precede stored files: %q", ctx)
	}
}

func TestComposeRecallInjectsStoredOnly(t *testing.T) {
	store := newStore(map[string]string{"doc.pdf": "stored text"})

	messages := Compose(intent.RecallFileContent, nil, store)
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].Content != PlainChatPrompt {
		t.Fatalf("recall turn uses the plain instruction block")
	}
	ctx := messages[1].Content
	if strings.Contains(ctx, "Newly uploaded file contents:") {
		t.Fatalf("no new uploads, section must be absent: %q", ctx)
	}
	if !strings.Contains(ctx, "Stored file contents:") {
		t.Fatalf("expected stored files section: %q", ctx)
	}
}

func TestComposeOmitsEmptyContextBlock(t *testing.T) {
	messages := Compose(intent.RecallFileContent, nil, newStore(nil))
	if len(messages) != 1 {
		t.Fatalf("an empty context block must never be sent, got %d messages", len(messages))
	}
}
