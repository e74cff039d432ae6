// Package chunker splits free text into length-bounded, overlapping chunks.
// It prefers paragraph and sentence boundaries before falling back to word
// boundaries and, as a last resort, hard character cuts.
package chunker

import "strings"

var separators = []string{"\n\n", "\n", ". ", " "}

type Splitter struct {
	size    int
	overlap int
}

func New(size, overlap int) *Splitter {
	if size <= 0 {
		size = 500
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}
	return &Splitter{size: size, overlap: overlap}
}

// Split breaks text into chunks of at most the configured size, with the
// tail of each chunk repeated at the head of the next for context overlap.
func (s *Splitter) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return s.merge(s.units(text, 0))
}

// units recursively decomposes text into pieces no larger than the chunk
// size, trying coarser separators first.
func (s *Splitter) units(text string, level int) []string {
	if len(text) <= s.size {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return []string{text}
	}
	if level == len(separators) {
		return s.hardCut(text)
	}
	var out []string
	for _, piece := range strings.SplitAfter(text, separators[level]) {
		out = append(out, s.units(piece, level+1)...)
	}
	return out
}

// merge packs adjacent units into chunks no larger than the chunk size.
// When a chunk is emitted, its trailing units are retained, up to the
// overlap budget, as the head of the next chunk.
func (s *Splitter) merge(units []string) []string {
	var chunks []string
	var cur []string
	total := 0
	for _, u := range units {
		if total+len(u) > s.size && len(cur) > 0 {
			if chunk := strings.TrimSpace(strings.Join(cur, "")); chunk != "" {
				chunks = append(chunks, chunk)
			}
			for len(cur) > 0 && (total > s.overlap || total+len(u) > s.size) {
				total -= len(cur[0])
				cur = cur[1:]
			}
		}
		cur = append(cur, u)
		total += len(u)
	}
	if chunk := strings.TrimSpace(strings.Join(cur, "")); chunk != "" {
		chunks = append(chunks, chunk)
	}
	return chunks
}

func (s *Splitter) hardCut(text string) []string {
	runes := []rune(text)
	step := s.size - s.overlap
	if step <= 0 {
		step = s.size
	}
	var out []string
	for i := 0; i < len(runes); i += step {
		end := i + s.size
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[i:end]))
		if end == len(runes) {
			break
		}
	}
	return out
}
