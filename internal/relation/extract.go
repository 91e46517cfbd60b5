package relation

import (
	"strings"

	"kgchat/internal/models"
)

const (
	// StartMarker and EndMarker delimit the relation block inside the
	// model's free-text reply.
	StartMarker = "===RELATION_START==="
	EndMarker   = "===RELATION_END==="
)

// entityTable assigns dense increasing ids starting at 1 in first-seen
// order. One table is created per namespace per extraction run; tables
// are never shared across runs.
type entityTable struct {
	ids  map[string]int
	next int
}

func newEntityTable() *entityTable {
	return &entityTable{ids: make(map[string]int), next: 1}
}

func (t *entityTable) assign(name string) int {
	if id, ok := t.ids[name]; ok {
		return id
	}
	id := t.next
	t.next++
	t.ids[name] = id
	return id
}

// Extract parses the delimited relation block out of generated text.
// Lines inside the block are split on comma into at most three fields;
// lines with fewer than three fields are dropped silently. Extraction
// never fails: missing markers or malformed lines yield fewer records,
// down to none.
func Extract(generated string) []models.RelationRecord {
	knowledge := newEntityTable()
	concepts := newEntityTable()

	var records []models.RelationRecord
	for _, line := range collectSection(generated, StartMarker, EndMarker) {
		parts := strings.SplitN(line, ",", 3)
		if len(parts) < 3 {
			continue
		}
		knowledgeName := strings.TrimSpace(parts[0])
		conceptName := strings.TrimSpace(parts[1])
		records = append(records, models.RelationRecord{
			KnowledgeID:   knowledge.assign(knowledgeName),
			KnowledgeName: knowledgeName,
			ConceptID:     concepts.assign(conceptName),
			ConceptName:   conceptName,
			Relation:      strings.TrimSpace(parts[2]),
		})
	}
	return records
}

// collectSection returns every trimmed non-empty line strictly between
// the first start marker line and the first subsequent end marker line.
// Without a start marker the result is empty; without an end marker
// collection runs to the end of the text.
func collectSection(text, startMarker, endMarker string) []string {
	var lines []string
	found := false
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == startMarker {
			found = true
			continue
		}
		if trimmed == endMarker {
			break
		}
		if found && trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
