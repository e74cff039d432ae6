package conversation

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sayedabdulkarim/sarim-ai/internal/model"
)

func turn(role, content string) model.Turn {
	return model.Turn{Role: role, Content: content, Timestamp: time.Now()}
}

func TestMemoryStore_LazyCreateAndOrder(t *testing.T) {
	s := NewMemoryStore()
	s.Append("c1", turn(model.RoleUser, "hi"), turn(model.RoleAssistant, "hello"))
	s.Append("c1", turn(model.RoleUser, "more"), turn(model.RoleAssistant, "sure"))

	turns, err := s.History("c1")
	require.NoError(t, err)
	require.Len(t, turns, 4)
	assert.Equal(t, []string{"hi", "hello", "more", "sure"},
		[]string{turns[0].Content, turns[1].Content, turns[2].Content, turns[3].Content})
}

func TestMemoryStore_UnknownID(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.History("missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Clear("missing"), ErrNotFound)
}

func TestMemoryStore_ClearForgetsID(t *testing.T) {
	s := NewMemoryStore()
	s.Append("c1", turn(model.RoleUser, "hi"))
	require.NoError(t, s.Clear("c1"))
	_, err := s.History("c1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_HistoryIsACopy(t *testing.T) {
	s := NewMemoryStore()
	s.Append("c1", turn(model.RoleUser, "hi"))
	turns, err := s.History("c1")
	require.NoError(t, err)
	turns[0].Content = "mutated"

	again, err := s.History("c1")
	require.NoError(t, err)
	assert.Equal(t, "hi", again[0].Content)
}

func TestMemoryStore_ConcurrentAppend(t *testing.T) {
	s := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Append("c1", turn(model.RoleUser, "m"), turn(model.RoleAssistant, "a"))
		}()
	}
	wg.Wait()
	turns, err := s.History("c1")
	require.NoError(t, err)
	assert.Len(t, turns, 100)
}
