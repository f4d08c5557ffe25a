package editsession

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type form struct {
	Description string
	Amount      string
}

func blank() form { return form{} }

func TestEditIsLastWriterWins(t *testing.T) {
	s := New(blank)
	s.Edit(1, form{Description: "A", Amount: "10"})
	s.Edit(2, form{Description: "B"})

	id, editing := s.EditingID()
	assert.True(t, editing)
	assert.Equal(t, int64(2), id)
	assert.Equal(t, form{Description: "B"}, s.Form())
}

func TestTransitions(t *testing.T) {
	s := New(blank)
	assert.Equal(t, Idle, s.Mode())

	s.Begin()
	assert.Equal(t, Creating, s.Mode())
	s.Update(func(f *form) { f.Amount = "5" })
	assert.Equal(t, "5", s.Form().Amount)

	s.Edit(3, form{Description: "x"})
	assert.Equal(t, Editing, s.Mode())

	s.Cancel()
	assert.Equal(t, Idle, s.Mode())
	assert.Equal(t, form{}, s.Form())
	_, editing := s.EditingID()
	assert.False(t, editing)

	s.Edit(4, form{Description: "y"})
	s.Reset()
	assert.Equal(t, Idle, s.Mode())
	assert.Equal(t, "idle", s.Mode().String())
}

func TestTokensInvalidatedByTransitions(t *testing.T) {
	s := New(blank)
	s.Edit(1, form{})
	first := s.Issue()
	second := s.Issue()
	assert.True(t, s.Current(first))
	assert.True(t, s.Current(second))

	s.Cancel()
	assert.False(t, s.Current(first))
	assert.False(t, s.Current(second))

	third := s.Issue()
	assert.True(t, s.Current(third))
	assert.Greater(t, third, second)

	s.Update(func(f *form) { f.Amount = "1" })
	assert.True(t, s.Current(third), "field edits do not invalidate tokens")
}
