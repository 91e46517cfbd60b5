package intent

import (
	"regexp"
	"strings"
)

// Intent is the classified purpose of a user utterance. It drives which
// system instructions and which file context are injected into a turn.
type Intent string

const (
	Plain             Intent = "plain"
	Summarize         Intent = "summarize"
	RecallFileContent Intent = "recall_file_content"
)

// Match vocabularies. Any substring hit anywhere in the trimmed
// utterance counts; the lists carry the original Chinese terms alongside
// their English equivalents.
var (
	summarizeTerms = []string{
		"总结", "概括", "摘要", "归纳", "提炼", "要点", "重点", "梳理", "总览", "综述",
		"summarize", "summarise", "summary", "overview", "key points",
		"main points", "recap", "takeaways",
	}
	recallTerms = []string{
		"文件内容", "文件说什么", "查看文件", "看看文件", "文件中的", "参考文件",
		"file content", "file contents", "what does the file say",
		"look at the file", "check the file", "in the file", "refer to the file",
	}
)

var (
	summarizePattern = compileVocab(summarizeTerms)
	recallPattern    = compileVocab(recallTerms)
)

func compileVocab(terms []string) *regexp.Regexp {
	quoted := make([]string, len(terms))
	for i, term := range terms {
		quoted[i] = regexp.QuoteMeta(term)
	}
	return regexp.MustCompile("(?i)(?:" + strings.Join(quoted, "|") + ")")
}

// Classify maps an utterance to its intent. Summarize wins when both
// vocabularies match.
func Classify(utterance string) Intent {
	trimmed := strings.TrimSpace(utterance)
	if summarizePattern.MatchString(trimmed) {
		return Summarize
	}
	if recallPattern.MatchString(trimmed) {
		return RecallFileContent
	}
	return Plain
}
