package llm

import (
	"io"
	"strings"
)

// wordStream replays an already-complete response one word at a time. It
// backs providers without incremental output.
type wordStream struct {
	words []string
	pos   int
}

func newWordStream(text string) *wordStream {
	return &wordStream{words: strings.Fields(text)}
}

func (s *wordStream) Recv() (string, error) {
	if s.pos >= len(s.words) {
		return "", io.EOF
	}
	w := s.words[s.pos]
	s.pos++
	return w + " ", nil
}

func (s *wordStream) Close() error {
	s.pos = len(s.words)
	return nil
}
