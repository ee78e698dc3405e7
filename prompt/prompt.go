package prompt

import (
	_ "embed"
	"strings"
	"sync"

	"github.com/JAS0NN/youtube-summary/models"
)

//go:embed prompt.txt
var promptFile string

// fallbackPrompt is used when the embedded template resource is empty.
const fallbackPrompt = "Please summarize the following content."

var (
	once         sync.Once
	systemPrompt string
)

// SystemPrompt returns the instructional template, loaded once per process
// and never mutated afterwards.
func SystemPrompt() string {
	once.Do(func() {
		systemPrompt = strings.TrimSpace(promptFile)
		if systemPrompt == "" {
			systemPrompt = fallbackPrompt
		}
	})
	return systemPrompt
}

// Assemble merges the system template with the transcript text into a single
// request payload. The transcript is passed verbatim as the user role; no
// truncation or chunking happens here.
func Assemble(transcriptText, model string) models.SummaryRequest {
	return models.SummaryRequest{
		SystemPrompt: SystemPrompt(),
		UserContent:  transcriptText,
		Model:        model,
		Stream:       false,
	}
}

// Render flattens an assembled request into the persisted prompt layout.
func Render(req models.SummaryRequest) string {
	var sb strings.Builder
	sb.WriteString("# System Prompt\n\n")
	sb.WriteString(req.SystemPrompt)
	sb.WriteString("\n\n# User Content (Transcript)\n\n")
	sb.WriteString(req.UserContent)
	sb.WriteString("\n")
	return sb.String()
}
