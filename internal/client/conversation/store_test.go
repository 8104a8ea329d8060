package conversation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/moneytalk/internal/client/models"
)

func msg(id, text string) models.Message {
	return models.Message{ID: id, Sender: models.SenderUser, Body: models.TextBody{Text: text}}
}

func ids(msgs []models.Message) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.ID)
	}
	return out
}

func TestStore_AppendAndPrependKeepOrder(t *testing.T) {
	s := NewStore()
	s.Append(msg("3", "c"))
	s.Append(msg("4", "d"))
	s.Prepend([]models.Message{msg("1", "a"), msg("2", "b")})

	require.Equal(t, []string{"1", "2", "3", "4"}, ids(s.Messages()))

	oldest, ok := s.OldestID()
	require.True(t, ok)
	require.Equal(t, "1", oldest)

	last, ok := s.Last()
	require.True(t, ok)
	require.Equal(t, "4", last.ID)
}

func TestStore_RemoveByIDReturnsIndex(t *testing.T) {
	s := NewStore()
	s.Reset([]models.Message{msg("1", "a"), msg("2", "b"), msg("3", "c")})

	removed, index, ok := s.RemoveByID("2")
	require.True(t, ok)
	require.Equal(t, 1, index)
	require.Equal(t, "2", removed.ID)
	require.Equal(t, []string{"1", "3"}, ids(s.Messages()))

	_, _, ok = s.RemoveByID("nope")
	require.False(t, ok)
}

func TestStore_InsertRestoresAtOriginalPosition(t *testing.T) {
	s := NewStore()
	s.Reset([]models.Message{msg("1", "a"), msg("2", "b"), msg("3", "c")})

	removed, index, ok := s.RemoveByID("2")
	require.True(t, ok)
	s.Insert(index, removed)
	require.Equal(t, []string{"1", "2", "3"}, ids(s.Messages()))
}

func TestStore_InsertClampsOutOfRange(t *testing.T) {
	s := NewStore()
	s.Reset([]models.Message{msg("1", "a")})

	s.Insert(-5, msg("0", "z"))
	s.Insert(100, msg("9", "y"))
	require.Equal(t, []string{"0", "1", "9"}, ids(s.Messages()))
}

func TestStore_ReplaceByID(t *testing.T) {
	s := NewStore()
	s.Reset([]models.Message{msg("1", "a"), msg("2", "b")})

	require.True(t, s.ReplaceByID("2", msg("srv-2", "b")))
	require.Equal(t, []string{"1", "srv-2"}, ids(s.Messages()))
	require.False(t, s.ReplaceByID("2", msg("x", "x")))
}

func TestStore_MessagesReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Reset([]models.Message{msg("1", "a")})

	snapshot := s.Messages()
	s.Append(msg("2", "b"))
	require.Len(t, snapshot, 1)
	require.Equal(t, 2, s.Len())
}
