package pdf

import (
	"fmt"
	"regexp"
	"strings"

	rscpdf "rsc.io/pdf"
)

// ExtractionError reports a document that could not be read. Callers are
// expected to fall back to canonical profile text instead of failing the
// whole indexing run.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ExtractText pulls the raw text out of a PDF file.
func ExtractText(path string) (text string, err error) {
	// rsc.io/pdf panics on malformed files rather than returning errors.
	defer func() {
		if r := recover(); r != nil {
			err = &ExtractionError{Path: path, Err: fmt.Errorf("%v", r)}
		}
	}()

	r, err := rscpdf.Open(path)
	if err != nil {
		return "", &ExtractionError{Path: path, Err: err}
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		for _, t := range p.Content().Text {
			sb.WriteString(strings.ReplaceAll(t.S, "\x00", ""))
		}
		sb.WriteString("\n")
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", &ExtractionError{Path: path, Err: fmt.Errorf("no text content")}
	}
	return sb.String(), nil
}

var multiBlank = regexp.MustCompile(`\n{3,}`)

// Sanitize normalises whitespace while keeping paragraph breaks, which the
// chunker prefers as split points.
func Sanitize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, "\t", " ")
	s = multiBlank.ReplaceAllString(s, "\n\n")
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.Join(strings.Fields(lines[i]), " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
