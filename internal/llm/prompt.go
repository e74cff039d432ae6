package llm

import (
	"fmt"
	"strings"

	"github.com/sayedabdulkarim/sarim-ai/internal/profile"
)

// PromptBuilder assembles the final prompt: a fixed persona instruction,
// an optional "Context from profile:" block, the user turn, and a trailing
// role marker the model is expected to complete.
type PromptBuilder struct {
	persona string
	marker  string
}

func NewPromptBuilder(rec *profile.Record) PromptBuilder {
	persona := fmt.Sprintf(`You are %s, also known as %s, a %s at %s.
You are friendly, professional, and knowledgeable about software development.
When asked about yourself, speak in first person.
Be concise but informative in your responses.`,
		rec.Name, rec.ShortName, rec.CurrentRole, rec.CurrentCompany)
	return PromptBuilder{persona: persona, marker: rec.ShortName + ":"}
}

func (p PromptBuilder) Build(req Request) string {
	var b strings.Builder
	b.WriteString(p.persona)
	b.WriteString("\n\n")
	if req.Context != "" {
		b.WriteString("Context from profile:\n")
		b.WriteString(req.Context)
		b.WriteString("\n\n")
	}
	b.WriteString("User: ")
	b.WriteString(req.Prompt)
	b.WriteString("\n")
	b.WriteString(p.marker)
	return b.String()
}

// StripMarker removes a leading role marker the model may have echoed back.
func (p PromptBuilder) StripMarker(s string) string {
	s = strings.TrimSpace(s)
	for strings.HasPrefix(s, p.marker) {
		s = strings.TrimSpace(strings.TrimPrefix(s, p.marker))
	}
	return s
}
