package relation

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"kgchat/internal/models"
)

// OutputFileName is the fixed name of the relation table artifact.
const OutputFileName = "relationship.csv"

const csvHeader = "knowledge_id,knowledge_name,concept_id,concept_name,relation\n"

// Writer replaces the relation table artifact in its output directory on
// every write. Embedded commas are not escaped; a name or description
// containing a comma will misalign columns.
type Writer struct {
	dir string
}

func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Write clears every regular file in the output directory and, when
// records is non-empty, writes the header plus one row per record in
// input order. An empty record set leaves no artifact behind.
func (w *Writer) Write(records []models.RelationRecord) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("read output dir: %w", err)
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if err := os.Remove(filepath.Join(w.dir, entry.Name())); err != nil {
			log.Printf("remove %s: %v", entry.Name(), err)
		}
	}

	if len(records) == 0 {
		log.Printf("no valid relation data to write")
		return nil
	}

	var b strings.Builder
	b.WriteString(csvHeader)
	for _, r := range records {
		fmt.Fprintf(&b, "%d,%s,%d,%s,%s\n", r.KnowledgeID, r.KnowledgeName, r.ConceptID, r.ConceptName, r.Relation)
	}
	path := filepath.Join(w.dir, OutputFileName)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", OutputFileName, err)
	}
	return nil
}
