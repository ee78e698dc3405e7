package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSystemPrompt(t *testing.T) {
	p := SystemPrompt()

	assert.NotEmpty(t, p)
	assert.Equal(t, p, strings.TrimSpace(p))
	// Loaded once; every call sees the same template.
	assert.Equal(t, p, SystemPrompt())
}

func TestAssemble(t *testing.T) {
	req := Assemble("# Video\n\n[00:00] hello\n", "gpt-4o")

	assert.Equal(t, SystemPrompt(), req.SystemPrompt)
	assert.Equal(t, "# Video\n\n[00:00] hello\n", req.UserContent)
	assert.Equal(t, "gpt-4o", req.Model)
	assert.False(t, req.Stream)
}

func TestRender(t *testing.T) {
	req := Assemble("transcript body", "gpt-4o")
	out := Render(req)

	assert.True(t, strings.HasPrefix(out, "# System Prompt\n\n"))
	assert.Contains(t, out, "\n\n# User Content (Transcript)\n\n")
	assert.Contains(t, out, "transcript body")
	assert.True(t, strings.HasSuffix(out, "\n"))
}
