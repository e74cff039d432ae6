package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sayedabdulkarim/sarim-ai/internal/profile"
)

func builder() PromptBuilder {
	return NewPromptBuilder(&profile.Record{
		Name:           "Sayed Abdul Karim",
		ShortName:      "Sarim",
		CurrentRole:    "Senior Software Engineer",
		CurrentCompany: "Mira",
	})
}

func TestBuild_WithContext(t *testing.T) {
	p := builder()
	got := p.Build(Request{Prompt: "Where do you work?", Context: "I work at Mira"})

	assert.True(t, strings.HasPrefix(got, "You are Sayed Abdul Karim"))
	assert.Contains(t, got, "Context from profile:\nI work at Mira")
	assert.Contains(t, got, "User: Where do you work?")
	assert.True(t, strings.HasSuffix(got, "Sarim:"))
}

func TestBuild_WithoutContext(t *testing.T) {
	p := builder()
	got := p.Build(Request{Prompt: "Hello"})
	assert.NotContains(t, got, "Context from profile:")
	assert.Contains(t, got, "User: Hello")
	assert.True(t, strings.HasSuffix(got, "Sarim:"))
}

func TestStripMarker(t *testing.T) {
	p := builder()
	assert.Equal(t, "I build software.", p.StripMarker("Sarim: I build software."))
	assert.Equal(t, "I build software.", p.StripMarker("  Sarim: Sarim: I build software. "))
	assert.Equal(t, "no marker here", p.StripMarker("no marker here"))
}

func TestWordStream_ReplaysAllWords(t *testing.T) {
	s := newWordStream("hello streaming world")
	var got []string
	for {
		frag, err := s.Recv()
		if err != nil {
			break
		}
		got = append(got, frag)
	}
	assert.Equal(t, []string{"hello ", "streaming ", "world "}, got)
}

func TestWordStream_CloseStopsReplay(t *testing.T) {
	s := newWordStream("one two three")
	frag, err := s.Recv()
	require.NoError(t, err)
	assert.Equal(t, "one ", frag)

	require.NoError(t, s.Close())
	_, err = s.Recv()
	assert.Error(t, err)
}
