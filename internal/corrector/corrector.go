// Package corrector rewrites known-incorrect entities in generated text.
// All canonical facts come from the structured profile record; nothing is
// hard-coded here.
package corrector

import (
	"strings"

	"github.com/sayedabdulkarim/sarim-ai/internal/profile"
)

var currentMarkers = []string{"currently", "now", "present"}

var workMarkers = []string{"work at", "working at", "work for", "working for", "employed at"}

// Corrector fixes hallucinated employer and role mentions. Correct (whole
// response) is context-aware; CorrectFragment is a plain dictionary
// substitution safe to run on partial token streams, a deliberately weaker
// approximation since semantic checks cannot run mid-stream.
type Corrector struct {
	company        string
	wrongCompanies []string
	roleFixes      map[string]string
}

func New(rec *profile.Record) *Corrector {
	past := make(map[string]bool, len(rec.Experience))
	for _, exp := range rec.Experience {
		past[strings.ToLower(exp.Company)] = true
	}
	// never rewrite real past employers or the current company itself
	var wrong []string
	for _, name := range rec.KnownConfusions {
		if !past[strings.ToLower(name)] && !strings.EqualFold(name, rec.CurrentCompany) {
			wrong = append(wrong, name)
		}
	}
	return &Corrector{
		company:        rec.CurrentCompany,
		wrongCompanies: wrong,
		roleFixes:      map[string]string{"CEO": rec.CurrentRole},
	}
}

// Correct rewrites wrong employer mentions in a complete response, but
// only when the response talks about the *current* workplace and the
// canonical employer is absent. Historical references to prior employers
// are left alone. It never fails; unmatched text passes through unchanged.
func (c *Corrector) Correct(text string) string {
	lower := strings.ToLower(text)
	if !containsAny(lower, workMarkers) {
		return text
	}
	if strings.Contains(lower, strings.ToLower(c.company)) {
		return text
	}
	if !containsAny(lower, currentMarkers) {
		return text
	}
	out := text
	for _, wrong := range c.wrongCompanies {
		out = strings.ReplaceAll(out, wrong, c.company)
	}
	return out
}

// CorrectFragment applies the substitution dictionary to a single stream
// fragment with no context awareness.
func (c *Corrector) CorrectFragment(fragment string) string {
	out := fragment
	for _, wrong := range c.wrongCompanies {
		out = strings.ReplaceAll(out, wrong, c.company)
	}
	for wrong, right := range c.roleFixes {
		out = strings.ReplaceAll(out, wrong, right)
	}
	return out
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
