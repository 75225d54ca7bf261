package tui

import (
	"testing"

	"github.com/mark3labs/chanforum/internal/forumapi"
	"github.com/stretchr/testify/assert"
)

func TestBoardList_CursorBounds(t *testing.T) {
	l := NewBoardList()
	l.SetBoards(sampleBoards(), nil)

	l.Update(key("up"))
	b, ok := l.Selected()
	assert.True(t, ok)
	assert.Equal(t, "b1", b.ID)

	l.Update(key("down"))
	l.Update(key("down"))
	b, _ = l.Selected()
	assert.Equal(t, "b2", b.ID)
}

func TestBoardList_KeepsSelectionAcrossReload(t *testing.T) {
	l := NewBoardList()
	l.SetBoards(sampleBoards(), nil)
	l.Update(key("down"))

	reordered := []forumapi.Board{sampleBoards()[1], {ID: "b0", Name: "New"}, sampleBoards()[0]}
	l.SetBoards(reordered, nil)

	b, _ := l.Selected()
	assert.Equal(t, "b2", b.ID)
}

func TestBoardList_EmptyHasNoSelection(t *testing.T) {
	l := NewBoardList()
	l.SetBoards([]forumapi.Board{}, nil)

	_, ok := l.Selected()
	assert.False(t, ok)
	assert.Nil(t, l.Update(key("down")))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", truncate("hello", 5))
	assert.Equal(t, "hel…", truncate("hello", 4))
	assert.Equal(t, "…", truncate("hello", 1))
	assert.Equal(t, "héll…", truncate("héllo wörld", 5))
}
