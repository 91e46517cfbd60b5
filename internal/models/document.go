package models

// DocumentRecord holds the extracted plain text of one ingested file.
type DocumentRecord struct {
	FileID string `json:"file_id"`
	Text   string `json:"text"`
}

// FilePreview is the listing view of a stored document.
type FilePreview struct {
	FileID  string `json:"file_id"`
	Preview string `json:"preview"`
}

// RelationRecord is one extracted knowledge/concept relation triple.
// IDs are dense per-run counters, assigned separately for knowledge
// names and concept names in first-seen order.
type RelationRecord struct {
	KnowledgeID   int    `json:"knowledge_id"`
	KnowledgeName string `json:"knowledge_name"`
	ConceptID     int    `json:"concept_id"`
	ConceptName   string `json:"concept_name"`
	Relation      string `json:"relation"`
}
