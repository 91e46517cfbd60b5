package prompt

import (
	"fmt"
	"strings"

	"kgchat/internal/docstore"
	"kgchat/internal/intent"
	"kgchat/internal/models"
)

// KnowledgeGraphPrompt instructs the model to emit relation triples in a
// delimited block so they can be parsed into the relation table.
const KnowledgeGraphPrompt = "If the user asks you to summarize an article, condense a text or produce " +
	"an abstract, analyse the relations between the knowledge points and concepts in the text and " +
	"output the result as follows:\n" +
	"1. First analyse the text and identify its main knowledge points, concepts and the relations between them\n" +
	"2. The result must follow a special layout\n" +
	"3. Use \"===RELATION_START===\" and \"===RELATION_END===\" as the opening and closing markers\n" +
	"4. Each line has the format: \"knowledge name,concept name,relation description\"\n\n" +
	"Make sure the output has these properties:\n" +
	"- Knowledge and concept names are short and represent the key entities of the text\n" +
	"- Relation descriptions are concise and accurately reflect the semantic relation between the two entities\n" +
	"- Every important knowledge point, concept and relation of the text is covered\n" +
	"- Knowledge points and concepts are clearly distinguished and not repeated\n\n" +
	"After the block, give a short summary of which core knowledge points, concepts and relations were extracted.\n" +
	"Finally confirm that everything was emitted in the correct layout and that neither marker is missing."

// PlainChatPrompt keeps ordinary turns free of unsolicited file talk.
const PlainChatPrompt = "In ordinary conversation, do not bring up the content of uploaded files unless " +
	"the user explicitly asks for it.\n" +
	"Only quote or discuss file content when the user clearly asks about it, wants an answer based on a " +
	"file, or uses phrases like \"look at the file\" or \"what does the file say\".\n" +
	"Otherwise respond like a regular conversation assistant and do not mention that any files were uploaded."

const (
	newUploadsLabel  = "Newly uploaded file contents:\n"
	storedFilesLabel = "Stored file contents:\n"
)

// Compose builds the system messages to prepend to a conversation:
// exactly one instruction block, plus at most one file-context block for
// summarize and file-recall turns. The caller appends history and the
// current user message afterwards.
func Compose(it intent.Intent, newTexts []string, store *docstore.Store) []models.Message {
	messages := make([]models.Message, 0, 2)

	instruction := PlainChatPrompt
	if it == intent.Summarize {
		instruction = KnowledgeGraphPrompt
	}
	messages = append(messages, models.Message{Role: models.RoleSystem, Content: instruction})

	if it != intent.Summarize && it != intent.RecallFileContent {
		return messages
	}

	var b strings.Builder
	if len(newTexts) > 0 {
		b.WriteString(newUploadsLabel)
		b.WriteString(strings.Join(newTexts, "\n"))
		b.WriteString("\n\n")
	}
	if docs := store.All(); len(docs) > 0 {
		b.WriteString(storedFilesLabel)
		for _, doc := range docs {
			fmt.Fprintf(&b, "File name: %s\nContent: %s\n\n", doc.FileID, doc.Text)
		}
	}
	if b.Len() > 0 {
		messages = append(messages, models.Message{Role: models.RoleSystem, Content: b.String()})
	}
	return messages
}
